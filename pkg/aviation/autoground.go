// pkg/aviation/autoground.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"math"

	"github.com/mmp/atcsim/pkg/log"
	smath "github.com/mmp/atcsim/pkg/math"
)

// ComputeAvailableGates recomputes each gate's Available flag from
// scratch: a gate is available unless some aircraft in that airport's
// airspace is parked at it, or is taxiing with it as its current
// position or a pending waypoint.
func ComputeAvailableGates(world *World, game *Game) {
	for _, airport := range world.Airports {
		for _, t := range airport.Terminals {
			for _, gate := range t.Gates {
				gate.Available = !gateOccupied(game, airport.ID, gate.ID)
			}
		}
	}
}

func gateOccupied(game *Game, airportID, gateID string) bool {
	for _, a := range game.Aircraft {
		if a.Airspace != airportID {
			continue
		}
		switch a.State.Kind {
		case StateParked:
			if a.State.ParkedAt.Name == gateID {
				return true
			}
		case StateTaxiing:
			if a.State.TaxiCurrent.Kind == NodeGate && a.State.TaxiCurrent.Name == gateID {
				return true
			}
			for _, wp := range a.State.TaxiWaypoints {
				if wp.Kind == NodeGate && wp.Name == gateID {
					return true
				}
			}
		}
	}
	return false
}

// UpdateAutoGround drives the three ground phases an automated
// airport's aircraft pass through each tick: an arrived aircraft is
// taxied to the first available gate, a parked departure is taxied to
// its best departure runway, and a fully-taxied departure is released
// for takeoff once the runway is clear. Gate assignment and takeoff
// release each act on at most one aircraft per tick (matching the
// reference implementation's early-return); departure taxi is issued
// to every parked aircraft that qualifies.
func UpdateAutoGround(world *World, game *Game, out *[]Event, lg *log.Logger) {
	updateGateAssignment(world, game, out)
	updateDepartureTaxi(world, game, out, lg)
	updateTakeoffRelease(world, game, out)
}

func updateGateAssignment(world *World, game *Game, out *[]Event) {
	for _, a := range game.Aircraft {
		airport := automatedGroundAirport(world, a)
		if airport == nil || a.Segment != SegTaxiArr || a.Speed > MaxTaxiSpeed {
			continue
		}
		if a.State.Kind != StateTaxiing {
			continue
		}
		if a.State.TaxiCurrent.Kind == NodeGate {
			continue
		}
		hasGateWaypoint := false
		for _, wp := range a.State.TaxiWaypoints {
			if wp.Kind == NodeGate {
				hasGateWaypoint = true
				break
			}
		}
		if hasGateWaypoint {
			continue
		}

		gates := airport.AvailableGates()
		if len(gates) == 0 {
			continue
		}
		*out = append(*out, Event{
			ID: a.ID, Kind: EvTaxi,
			Waypoints: []Node{{Name: gates[0].ID, Kind: NodeGate, Behavior: BehaviorPark}},
		})
		return
	}
}

func updateDepartureTaxi(world *World, game *Game, out *[]Event, lg *log.Logger) {
	for _, a := range game.Aircraft {
		airport := automatedGroundAirport(world, a)
		if airport == nil || a.Segment != SegParked || a.State.Kind != StateParked {
			continue
		}

		departure := world.Airport(a.FlightPlan.Departing)
		arrival := world.Airport(a.FlightPlan.Arriving)
		if departure == nil || arrival == nil || len(departure.Runways) == 0 {
			lg.Errorf("%s: no departure runway available for flight plan %s->%s, skipping taxi-out this tick",
				a.ID, a.FlightPlan.Departing, a.FlightPlan.Arriving)
			continue
		}

		departureAngle := smath.AngleBetweenPoints(departure.Center, arrival.Center)
		var runway Runway
		smallest := float32(math.MaxFloat32)
		for _, r := range departure.Runways {
			diff := smath.Abs(smath.DeltaAngle(r.Heading(), departureAngle))
			if diff < smallest {
				smallest, runway = diff, r
			}
		}

		runwayNode, ok := airport.Graph.Node(runway.ID, NodeRunway)
		if !ok {
			continue
		}
		entrance, ok := closestGraphNeighbor(airport, runwayNode)
		if !ok {
			continue
		}

		*out = append(*out, Event{
			ID: a.ID, Kind: EvTaxi,
			Waypoints: []Node{entrance, runwayNode},
		})
	}
}

func updateTakeoffRelease(world *World, game *Game, out *[]Event) {
	for _, a := range game.Aircraft {
		airport := automatedGroundAirport(world, a)
		if airport == nil || a.Segment != SegTaxiDep || a.State.Kind != StateTaxiing {
			continue
		}
		if a.State.TaxiCurrent.Kind != NodeRunway || len(a.State.TaxiWaypoints) != 0 {
			continue
		}

		runwayOccupied := false
		for _, other := range game.Aircraft {
			if other.Airspace == a.Airspace && other.Segment == SegTakeoff {
				runwayOccupied = true
				break
			}
		}
		if runwayOccupied {
			continue
		}

		*out = append(*out,
			Event{ID: a.ID, Kind: EvTakeoff, Str: a.State.TaxiCurrent.Name},
			Event{ID: a.ID, Kind: EvNamedFrequency, Str: "departure"},
		)
		return
	}
}

func automatedGroundAirport(world *World, a *Aircraft) *Airport {
	if a.Airspace == "" {
		return nil
	}
	ap := world.Airport(a.Airspace)
	if ap == nil || !ap.Status.AutomateGround {
		return nil
	}
	return ap
}

// closestGraphNeighbor returns the Taxiway or Apron node of the
// airport's taxi graph nearest the runway node's position by
// straight-line distance. It does not check that the node shares an
// edge with the runway node (the taxi graph has no edge-enumeration
// API exposed outside pathfinder), and edge weights play no part.
func closestGraphNeighbor(airport *Airport, runway Node) (Node, bool) {
	var best Node
	bestDist := float32(math.MaxFloat32)
	found := false
	for _, candidate := range airport.Graph.Nodes() {
		if candidate.Kind != NodeTaxiway && candidate.Kind != NodeApron {
			continue
		}
		d := smath.DistanceSquared2f(candidate.Pos, runway.Pos)
		if d < bestDist {
			best, bestDist, found = candidate, d, true
		}
	}
	return best, found
}
