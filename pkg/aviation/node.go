// pkg/aviation/node.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import "github.com/mmp/atcsim/pkg/pathfinder"

// Node, NodeKind and NodeBehavior are the same types the taxi graph
// routes over (pkg/pathfinder); aviation re-exports them so callers
// never need to import pathfinder directly for anything but
// constructing an Airport's graph.
type Node = pathfinder.Node
type NodeKind = pathfinder.Kind
type NodeBehavior = pathfinder.Behavior

const (
	NodeGate    = pathfinder.Gate
	NodeTaxiway = pathfinder.Taxiway
	NodeRunway  = pathfinder.Runway
	NodeApron   = pathfinder.Apron
	NodeVOR     = pathfinder.VOR
)

const (
	BehaviorGoTo      = pathfinder.GoTo
	BehaviorPark      = pathfinder.Park
	BehaviorLineUp    = pathfinder.LineUp
	BehaviorTakeoff   = pathfinder.Takeoff
	BehaviorHoldShort = pathfinder.HoldShort
)
