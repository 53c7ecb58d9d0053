// pkg/engine/pause.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package engine

// UICommand is an instruction from the outer application (terminal UI,
// web frontend, replay driver) that the engine itself interprets,
// rather than one of the per-aircraft events a controller would issue.
type UICommand int

const (
	UICommandPause UICommand = iota
)

// UIEvent is the engine's acknowledgement of a UICommand, surfaced back
// to the outer application.
type UIEvent int

const (
	UIEventPaused UIEvent = iota
)

// HandleUICommand applies a UICommand to the engine and returns the
// corresponding UIEvent.
func (e *Engine) HandleUICommand(cmd UICommand) UIEvent {
	switch cmd {
	case UICommandPause:
		e.SetPaused(!e.Paused())
		return UIEventPaused
	default:
		return UIEventPaused
	}
}
