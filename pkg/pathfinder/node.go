// pkg/pathfinder/node.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package pathfinder implements taxi-graph routing: a named, weighted
// graph of taxiway/gate/runway/apron/VOR nodes and shortest-path queries
// over it via gonum's Dijkstra implementation.
package pathfinder

import smath "github.com/mmp/atcsim/pkg/math"

type Kind int

const (
	Gate Kind = iota
	Taxiway
	Runway
	Apron
	VOR
)

func (k Kind) String() string {
	switch k {
	case Gate:
		return "gate"
	case Taxiway:
		return "taxiway"
	case Runway:
		return "runway"
	case Apron:
		return "apron"
	case VOR:
		return "vor"
	default:
		return "unknown"
	}
}

// Behavior tells an aircraft what to do once it reaches a node while
// following a taxi path.
type Behavior int

const (
	GoTo Behavior = iota
	Park
	LineUp
	Takeoff
	HoldShort
)

// Node is a single point (or, for a runway, line segment) in a taxi
// graph. Two nodes are the "same place" when Name and Kind match;
// Behavior and Pos may legitimately differ between the copy stored in
// the graph and the copy an aircraft is instructed to go to (callers
// commonly override Behavior/Pos on the final node of a path, e.g. to
// land precisely on a gate rather than the nearby apron entrance).
type Node struct {
	Name     string
	Kind     Kind
	Behavior Behavior
	Pos      smath.Point2f
	End      smath.Point2f // second endpoint of a Runway node's centerline; zero otherwise
}

func (n Node) NameKindEq(o Node) bool {
	return n.Name == o.Name && n.Kind == o.Kind
}

// Heading returns the compass heading of a Runway node's centerline,
// from Pos toward End.
func (n Node) Heading() float32 {
	return smath.AngleBetweenPoints(n.Pos, n.End)
}
