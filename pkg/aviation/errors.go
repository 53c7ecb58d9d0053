// pkg/aviation/errors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "errors"

// Sentinel errors, flat-var-block style: per spec §7 almost every
// malformed or out-of-order event is a silent, logged no-op rather than
// a returned error. Only conditions that prevent a tick from running at
// all, or that asset loading/pathfinding can fail with outright, are
// real errors.
var (
	ErrNotReady          = errors.New("aviation: world has no airports loaded")
	ErrUnknownAsset      = errors.New("aviation: unrecognized asset file format")
	ErrNoPath            = errors.New("aviation: no taxi path between the given nodes")
	ErrUnknownAirport    = errors.New("aviation: no such airport")
	ErrMalformedWaypoint = errors.New("aviation: flight plan waypoint missing a name or position")
)
