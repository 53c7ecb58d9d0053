// pkg/engine/snapshot.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package engine

import (
	"github.com/brunoga/deep"

	"github.com/mmp/atcsim/pkg/aviation"
)

// Snapshot is a deep, independent copy of the engine's World, Game and
// tick counter. The RNG state and the queued inbound events are not
// captured: Snapshot leaves Rand empty and Restore does not touch the
// engine's RNG or event queue.
type Snapshot struct {
	World       *aviation.World
	Game        *aviation.Game
	Rand        []byte
	TickCounter uint64
}

// Snapshot deep-copies the engine's current World/Game so later
// mutation of the live engine can never alias into it.
func (e *Engine) Snapshot() (*Snapshot, error) {
	world, err := deep.Copy(e.World)
	if err != nil {
		return nil, err
	}
	game, err := deep.Copy(e.Game)
	if err != nil {
		return nil, err
	}
	return &Snapshot{World: world, Game: game, TickCounter: e.tickCounter}, nil
}

// Restore replaces the engine's World/Game with a deep copy of the
// snapshot's, leaving the snapshot itself untouched so it can be
// restored from again.
func (e *Engine) Restore(s *Snapshot) error {
	world, err := deep.Copy(s.World)
	if err != nil {
		return err
	}
	game, err := deep.Copy(s.Game)
	if err != nil {
		return err
	}
	e.World = world
	e.Game = game
	e.tickCounter = s.TickCounter
	return nil
}
