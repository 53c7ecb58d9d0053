// pkg/aviation/world.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import smath "github.com/mmp/atcsim/pkg/math"

// Waypoint is a named en-route fix, independent of any single airport's
// taxi graph: VORs, intersections, and the synthetic points
// ResumeOwnNavigation generates SIDs/STARs from.
type Waypoint struct {
	Name string
	Pos  smath.Point2f
}

// World is the static (load-time) scenery: airports and the shared
// en-route waypoint set. It does not change during a run except for
// the Gate.Available bits, which ComputeAvailableGates rewrites in
// place each tick.
type World struct {
	Airports  []*Airport
	Waypoints []Waypoint
	Params    EngineParams
}

func (w *World) Airport(id string) *Airport {
	for _, a := range w.Airports {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (w *World) Waypoint(name string) (Waypoint, bool) {
	for _, wp := range w.Waypoints {
		if wp.Name == name {
			return wp, true
		}
	}
	return Waypoint{}, false
}

// OtherAirports returns every airport other than the one named id, used
// by the diversion branch of handleApproachTransition to pick a new
// destination.
func (w *World) OtherAirports(id string) []*Airport {
	var out []*Airport
	for _, a := range w.Airports {
		if a.ID != id {
			out = append(out, a)
		}
	}
	return out
}

// Game is the dynamic (per-tick-mutated) aircraft population.
type Game struct {
	Aircraft []*Aircraft
}

func (g *Game) Find(id string) *Aircraft {
	for _, a := range g.Aircraft {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Remove deletes the aircraft with the given id, used by EvDelete.
func (g *Game) Remove(id string) {
	for i, a := range g.Aircraft {
		if a.ID == id {
			g.Aircraft = append(g.Aircraft[:i], g.Aircraft[i+1:]...)
			return
		}
	}
}
