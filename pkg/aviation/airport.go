// pkg/aviation/airport.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"github.com/iancoleman/orderedmap"

	smath "github.com/mmp/atcsim/pkg/math"
	"github.com/mmp/atcsim/pkg/pathfinder"
)

// Runway is one landing/departure surface; Pos and End are its two
// thresholds, so Heading() gives the inbound course.
type Runway struct {
	ID       string
	Pos, End smath.Point2f
}

func (r Runway) Heading() float32 { return smath.AngleBetweenPoints(r.Pos, r.End) }
func (r Runway) Length() float32  { return smath.Distance2f(r.Pos, r.End) }

// Gate is a single parking position at a Terminal. Available is
// recomputed every tick by ComputeAvailableGates from the set of aircraft
// currently parked or taxiing to it, rather than stored as ground
// truth.
type Gate struct {
	ID        string
	Pos       smath.Point2f
	Available bool
}

type Terminal struct {
	ID    string
	Gates []*Gate
}

// Frequencies holds the standard ATC frequencies plus any airport-
// specific named ones (e.g. "clearance", "ramp"), kept in the order
// they were loaded so that a frequency listing renders stably.
type Frequencies struct {
	Ground, Tower, Departure, Approach, Center float32
	Named                                      *orderedmap.OrderedMap
}

func NewFrequencies() Frequencies {
	return Frequencies{Named: orderedmap.New()}
}

// Resolve looks up a frequency by the name an EvNamedFrequency carries,
// checking the well-known slots before the named table.
func (f Frequencies) Resolve(name string) (float32, bool) {
	switch name {
	case "ground":
		return f.Ground, true
	case "tower":
		return f.Tower, true
	case "departure":
		return f.Departure, true
	case "approach":
		return f.Approach, true
	case "center":
		return f.Center, true
	}
	if f.Named == nil {
		return 0, false
	}
	v, ok := f.Named.Get(name)
	if !ok {
		return 0, false
	}
	switch fv := v.(type) {
	case float32:
		return fv, true
	case float64:
		return float32(fv), true
	default:
		return 0, false
	}
}

// AirportStatus holds the three automation flags spec §4.1/§4.7/§4.8
// read each tick to decide whether to run auto-approach/auto-ground and
// whether diverted arrivals land elsewhere.
type AirportStatus struct {
	AutomateAir    bool
	AutomateGround bool
	DivertArrivals bool
}

type Airport struct {
	ID         string
	Center     smath.Point2f
	Runways    []Runway
	Terminals  []*Terminal
	Graph      *pathfinder.Graph
	Frequencies Frequencies
	Status     AirportStatus
}

func NewAirport(id string, center smath.Point2f) *Airport {
	return &Airport{
		ID:          id,
		Center:      center,
		Graph:       pathfinder.NewGraph(),
		Frequencies: NewFrequencies(),
	}
}

func (a *Airport) Runway(id string) (Runway, bool) {
	for _, r := range a.Runways {
		if r.ID == id {
			return r, true
		}
	}
	return Runway{}, false
}

// Gate finds a gate by id across every terminal.
func (a *Airport) Gate(id string) (*Terminal, *Gate) {
	for _, t := range a.Terminals {
		for _, g := range t.Gates {
			if g.ID == id {
				return t, g
			}
		}
	}
	return nil, nil
}

func (a *Airport) AvailableGates() []*Gate {
	var gates []*Gate
	for _, t := range a.Terminals {
		for _, g := range t.Gates {
			if g.Available {
				gates = append(gates, g)
			}
		}
	}
	return gates
}
