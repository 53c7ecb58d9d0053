// pkg/aviation/aviation_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"testing"

	"github.com/mmp/atcsim/pkg/log"
	smath "github.com/mmp/atcsim/pkg/math"
	"github.com/mmp/atcsim/pkg/rand"
)

func newTestAircraft(id string, pos smath.Point2f, heading, altitude, speed float32) *Aircraft {
	return &Aircraft{
		ID: id, Pos: pos, Heading: heading, Altitude: altitude, Speed: speed,
		Target:      Target{Heading: heading, Altitude: altitude, Speed: speed},
		State:       NewFlyingState(),
		Segment:     SegCruise,
		Performance: DefaultPerformance(),
		Minima:      SeparationMinima{MinSpeed: 180, MaxSpeed: 280, SeparationDistance: NauticalMilesToFeet * 5, MaxDeviationAngle: 20},
	}
}

// TestTCASHeadOnTriggersRA runs the literal head-on scenario: two
// aircraft at 10000ft, 5000ft apart, headings 090/270, 250kt, with a
// climb rate tuned so ClimbRate(10000) comes out to 2000fpm. One pass
// resolves both to opposing RAs; separating them vertically by 2500ft
// and re-running clears both to idle with one CalloutTARA apiece.
func TestTCASHeadOnTriggersRA(t *testing.T) {
	perf := DefaultPerformance()
	perf.MaxClimbRate = 2307.6923 // ClimbRate(10000ft) == 2000fpm under the 5000-30000ft taper

	a := newTestAircraft("A1", smath.Point2f{0, 0}, 90, 10000, 250)
	a.Performance = perf
	b := newTestAircraft("A2", smath.Point2f{5000, 0}, 270, 10000, 250)
	b.Performance = perf
	game := &Game{Aircraft: []*Aircraft{a, b}}

	HandleTCAS(game)

	if !a.TCAS.IsRA() || !b.TCAS.IsRA() {
		t.Fatalf("expected both aircraft to receive an RA, got %v and %v", a.TCAS, b.TCAS)
	}
	if a.TCAS == b.TCAS {
		t.Fatalf("expected opposite RAs (one climb, one descend), got %v and %v", a.TCAS, b.TCAS)
	}

	b.Pos = smath.Point2f{5000, 0}
	b.Altitude = 12500 // 2500ft vertical separation, clear of both the RA and TA bands

	events := HandleTCAS(game)

	if a.TCAS != TCASIdle || b.TCAS != TCASIdle {
		t.Fatalf("expected both aircraft to clear to idle, got %v and %v", a.TCAS, b.TCAS)
	}
	var sawA, sawB bool
	for _, e := range events {
		if e.Kind != EvCalloutTARA {
			continue
		}
		switch e.ID {
		case "A1":
			sawA = true
		case "A2":
			sawB = true
		}
	}
	if !sawA || !sawB {
		t.Fatalf("expected exactly one CalloutTARA per aircraft, got %+v", events)
	}
}

func TestTCASFarApartStaysIdle(t *testing.T) {
	a := newTestAircraft("A1", smath.Point2f{0, 0}, 0, 10000, 250)
	b := newTestAircraft("A2", smath.Point2f{0, 500000}, 180, 10000, 250)
	game := &Game{Aircraft: []*Aircraft{a, b}}

	HandleTCAS(game)

	if a.TCAS != TCASIdle || b.TCAS != TCASIdle {
		t.Fatalf("expected idle, got %v and %v", a.TCAS, b.TCAS)
	}
}

func TestTCASResolvedEmitsCalloutTARA(t *testing.T) {
	a := newTestAircraft("A1", smath.Point2f{0, 0}, 0, 10000, 250)
	a.TCAS = TCASClimb
	game := &Game{Aircraft: []*Aircraft{a}}

	events := HandleTCAS(game)

	if a.TCAS != TCASIdle {
		t.Fatalf("expected TCAS to clear to idle, got %v", a.TCAS)
	}
	found := false
	for _, e := range events {
		if e.ID == "A1" && e.Kind == EvCalloutTARA {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a CalloutTARA event when an RA clears")
	}
}

func TestTaxiCollisionStopsTrailingAircraft(t *testing.T) {
	world := &World{Airports: []*Airport{NewAirport("KTST", smath.Point2f{0, 0})}}
	world.Airports[0].Status.AutomateGround = true

	lead := newTestAircraft("LEAD", smath.Point2f{0, 0}, 0, 0, 10)
	lead.State = NewTaxiingState(Node{Name: "start", Kind: NodeTaxiway}, nil)
	lead.Airspace = "KTST"

	trail := newTestAircraft("TRAIL", smath.Point2f{0, -50}, 0, 0, 10)
	trail.State = NewTaxiingState(Node{Name: "start", Kind: NodeTaxiway}, nil)
	trail.Airspace = "KTST"

	game := &Game{Aircraft: []*Aircraft{lead, trail}}

	events := TaxiCollisions(world, game)

	foundHold := false
	for _, e := range events {
		if e.ID == "TRAIL" && e.Kind == EvTaxiHold {
			foundHold = true
		}
	}
	if !foundHold {
		t.Fatal("expected the trailing aircraft to be held")
	}
	if trail.State.TaxiSub != TaxiStopped {
		t.Fatalf("expected trailing aircraft to be marked Stopped, got %v", trail.State.TaxiSub)
	}
}

func TestHandleAircraftEventSpeed(t *testing.T) {
	ac := newTestAircraft("A1", smath.Point2f{0, 0}, 0, 10000, 250)
	var out []Event
	lg := log.New("error", t.TempDir())
	r := rand.New(1)
	world := &World{}

	HandleAircraftEvent(ac, Event{ID: "A1", Kind: EvSpeedAtOrBelow, Float: 200}, &out, world, r, lg)
	if ac.Target.Speed != 200 {
		t.Fatalf("expected speed clamp to 200, got %v", ac.Target.Speed)
	}

	HandleAircraftEvent(ac, Event{ID: "A1", Kind: EvSpeedAtOrBelow, Float: 300}, &out, world, r, lg)
	if ac.Target.Speed != 200 {
		t.Fatalf("expected at-or-below to be a no-op when already satisfied, got %v", ac.Target.Speed)
	}
}

func TestHandleLandAndTouchdown(t *testing.T) {
	airport := NewAirport("KTST", smath.Point2f{0, 0})
	airport.Runways = append(airport.Runways, Runway{ID: "09", Pos: smath.Point2f{0, 0}, End: smath.Point2f{10000, 0}})
	world := &World{Airports: []*Airport{airport}}

	ac := newTestAircraft("A1", smath.Point2f{0, 0}, 90, 2000, 140)
	ac.Airspace = "KTST"
	handleLandEvent(ac, "09", world)
	if ac.State.Kind != StateLanding {
		t.Fatalf("expected Landing state, got %v", ac.State.Kind)
	}

	handleTouchdownEvent(ac)
	if ac.State.Kind != StateTaxiing {
		t.Fatalf("expected Taxiing state after touchdown, got %v", ac.State.Kind)
	}
	if ac.State.TaxiSub != TaxiOverride {
		t.Fatalf("expected TaxiOverride after touchdown, got %v", ac.State.TaxiSub)
	}
}

func TestFlightPlanAmendAndFollow(t *testing.T) {
	fp := NewFlightPlan("KTST", "KOTH", 1)
	fp.Waypoints = []PlanWaypoint{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	fp.SetIndex(1)

	fp.AmendEnd([]PlanWaypoint{{Name: "X"}, {Name: "Y"}})

	if len(fp.Waypoints) != 3 || fp.Waypoints[1].Name != "X" || fp.Waypoints[2].Name != "Y" {
		t.Fatalf("unexpected waypoints after amend: %+v", fp.Waypoints)
	}
}

func TestEventRoundTrip(t *testing.T) {
	e := Event{
		ID: "A1", Kind: EvTaxi,
		Waypoints: []Node{{Name: "G1", Kind: NodeGate, Behavior: BehaviorPark, Pos: smath.Point2f{1, 2}}},
	}
	data, err := EncodeEvent(e)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != e.ID || got.Kind != e.Kind || len(got.Waypoints) != 1 || got.Waypoints[0].Name != "G1" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestComputeAvailableGates(t *testing.T) {
	airport := NewAirport("KTST", smath.Point2f{0, 0})
	gate := &Gate{ID: "A1", Pos: smath.Point2f{0, 0}, Available: true}
	airport.Terminals = []*Terminal{{ID: "T1", Gates: []*Gate{gate}}}
	world := &World{Airports: []*Airport{airport}}

	parked := newTestAircraft("P1", smath.Point2f{0, 0}, 0, 0, 0)
	parked.Airspace = "KTST"
	parked.State = NewParkedState(Node{Name: "A1", Kind: NodeGate})

	game := &Game{Aircraft: []*Aircraft{parked}}
	ComputeAvailableGates(world, game)

	if gate.Available {
		t.Fatal("expected occupied gate to be unavailable")
	}
}

// TestAutoApproachSequencingInterpolatesSpeed runs the literal arrival
// sequencing scenario: three aircraft on the same final waypoint at 6,
// 10, and 14 NM, 5 NM separation, 170/250kt min/max. The leader holds
// max speed; the two trailers are each 4 NM behind (half-separation is
// 2.5 NM), which the interpolation puts at 218kt, not at a deviation
// offset since neither is inside the half-separation band.
func TestAutoApproachSequencingInterpolatesSpeed(t *testing.T) {
	airport := NewAirport("KARR", smath.Point2f{100000, 0})
	airport.Status.AutomateAir = true
	world := &World{Airports: []*Airport{airport}}

	final := PlanWaypoint{Name: "FINAL", Pos: smath.Point2f{0, 0}}
	minima := SeparationMinima{MinSpeed: 170, MaxSpeed: 250, SeparationDistance: NauticalMilesToFeet * 5, MaxDeviationAngle: 20}

	newArrival := func(id string, nm float32) *Aircraft {
		a := newTestAircraft(id, smath.Point2f{-NauticalMilesToFeet * nm, 0}, 90, 10000, 200)
		a.Target.Speed = 200
		a.Airspace = "KARR"
		a.Segment = SegArrival
		a.Minima = minima
		a.FlightPlan = NewFlightPlan("KDEP", "KARR", 1)
		a.FlightPlan.Waypoints = []PlanWaypoint{final}
		return a
	}

	leader := newArrival("LEAD", 6)
	second := newArrival("MID", 10)
	third := newArrival("TAIL", 14)
	game := &Game{Aircraft: []*Aircraft{leader, second, third}}

	var out []Event
	lg := log.New("error", t.TempDir())
	UpdateAutoApproach(world, game, &out, lg)

	speeds := map[string]float32{}
	for _, e := range out {
		if e.Kind == EvSpeed {
			speeds[e.ID] = e.Float
		}
	}

	if speeds["LEAD"] != 250 {
		t.Fatalf("expected leader at max speed 250, got %v", speeds["LEAD"])
	}
	if got := speeds["MID"]; smath.Abs(got-221) > 5 {
		t.Fatalf("expected second aircraft near 221kt, got %v", got)
	}
	if got := speeds["TAIL"]; smath.Abs(got-221) > 5 {
		t.Fatalf("expected third aircraft near 221kt, got %v", got)
	}
	if leader.FlightPlan.CourseOffset != 0 || second.FlightPlan.CourseOffset != 0 || third.FlightPlan.CourseOffset != 0 {
		t.Fatalf("expected no course offset for any aircraft in this spacing band")
	}
}

// TestAutoGroundDepartureTaxiRoutesToRunway runs the literal taxi-out
// scenario: a parked departure at an automated-ground airport gets
// routed to its best-matching runway via exactly the graph-neighbor
// entrance and the runway node, in that order.
func TestAutoGroundDepartureTaxiRoutesToRunway(t *testing.T) {
	departure := NewAirport("KDEP", smath.Point2f{0, 0})
	departure.Status.AutomateGround = true
	runway := Runway{ID: "09", Pos: smath.Point2f{0, 0}, End: smath.Point2f{10000, 0}}
	departure.Runways = []Runway{runway}

	runwayNode := Node{Name: "09", Kind: NodeRunway, Pos: runway.Pos, End: runway.End}
	entranceNode := Node{Name: "A1", Kind: NodeTaxiway, Pos: smath.Point2f{100, 100}}
	departure.Graph.AddNode(runwayNode)
	departure.Graph.AddNode(entranceNode)

	arrival := NewAirport("KARR", smath.Point2f{10000, 0}) // due east, matches runway heading 090

	world := &World{Airports: []*Airport{departure, arrival}}

	parked := newTestAircraft("DAL1", smath.Point2f{0, 0}, 0, 0, 0)
	parked.Airspace = "KDEP"
	parked.Segment = SegParked
	parked.State = NewParkedState(Node{Name: "GATE1", Kind: NodeGate})
	parked.FlightPlan = NewFlightPlan("KDEP", "KARR", 1)

	game := &Game{Aircraft: []*Aircraft{parked}}

	var out []Event
	lg := log.New("error", t.TempDir())
	updateDepartureTaxi(world, game, &out, lg)

	var taxi *Event
	for i := range out {
		if out[i].Kind == EvTaxi {
			taxi = &out[i]
		}
	}
	if taxi == nil {
		t.Fatal("expected a Taxi event")
	}
	if len(taxi.Waypoints) != 2 || !taxi.Waypoints[0].NameKindEq(entranceNode) || !taxi.Waypoints[1].NameKindEq(runwayNode) {
		t.Fatalf("expected [entrance, runway] waypoints, got %+v", taxi.Waypoints)
	}
}

// TestAutoGroundTakeoffGatingOnePerTick runs the literal takeoff
// gating scenario: two departures both sitting at the runway with
// empty taxi waypoints. Auto-ground clears exactly one per call (the
// first in iteration order); the second is held until the first has
// moved out of the Takeoff segment entirely.
func TestAutoGroundTakeoffGatingOnePerTick(t *testing.T) {
	airport := NewAirport("KTST", smath.Point2f{0, 0})
	airport.Status.AutomateGround = true
	world := &World{Airports: []*Airport{airport}}

	runwayNode := Node{Name: "09", Kind: NodeRunway, Pos: smath.Point2f{0, 0}, End: smath.Point2f{10000, 0}}

	newDeparture := func(id string) *Aircraft {
		a := newTestAircraft(id, runwayNode.Pos, 90, 0, 0)
		a.Airspace = "KTST"
		a.Segment = SegTaxiDep
		a.State = NewTaxiingState(runwayNode, nil)
		return a
	}
	a := newDeparture("A1")
	b := newDeparture("A2")
	game := &Game{Aircraft: []*Aircraft{a, b}}

	var out1 []Event
	updateTakeoffRelease(world, game, &out1)
	if n := countEventKind(out1, EvTakeoff); n != 1 {
		t.Fatalf("expected exactly one Takeoff event, got %d (%+v)", n, out1)
	}
	if out1[0].ID != "A1" {
		t.Fatalf("expected first aircraft in iteration order to clear first, got %s", out1[0].ID)
	}

	a.Segment = SegTakeoff // A1 now occupies the runway

	var out2 []Event
	updateTakeoffRelease(world, game, &out2)
	if n := countEventKind(out2, EvTakeoff); n != 0 {
		t.Fatalf("expected A2 held while A1 is in Takeoff, got %d events (%+v)", n, out2)
	}

	a.Segment = SegDeparture // A1 has cleared the runway

	var out3 []Event
	updateTakeoffRelease(world, game, &out3)
	if n := countEventKind(out3, EvTakeoff); n != 1 {
		t.Fatalf("expected exactly one Takeoff event once A1 clears, got %d (%+v)", n, out3)
	}
	if out3[0].ID != "A2" {
		t.Fatalf("expected A2 to clear once A1 left Takeoff, got %s", out3[0].ID)
	}
}

func countEventKind(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// TestDivertArrivalFlipsFlightPlanAndDropsOldSID runs the literal
// diversion scenario: an aircraft entering the approach segment of an
// airport with divert_arrivals=true flips its flight plan, picks a
// different airport, and rebuilds its route without the old SID —
// applying the new SID's actions immediately rather than as a
// waypoint, since it is already airborne.
func TestDivertArrivalFlipsFlightPlanAndDropsOldSID(t *testing.T) {
	arriving := NewAirport("KARR", smath.Point2f{0, 0})
	arriving.Status.DivertArrivals = true
	alternate := NewAirport("KALT", smath.Point2f{50000, 0})
	world := &World{Airports: []*Airport{arriving, alternate}, Params: DefaultEngineParams()}

	ac := newTestAircraft("A1", smath.Point2f{-10000, 0}, 90, 10000, 250)
	ac.Airspace = "KARR"
	ac.Segment = SegArrival
	ac.FlightPlan = NewFlightPlan("KDEP", "KARR", 1)
	ac.FlightPlan.Waypoints = []PlanWaypoint{{Name: "SID"}, {Name: "STAR"}}

	lg := log.New("error", t.TempDir())
	r := rand.New(1)

	var out []Event
	HandleAircraftEvent(ac, Event{ID: "A1", Kind: EvSegment, PrevSegment: SegArrival, Segment: SegApproach}, &out, world, r, lg)

	if ac.FlightPlan.Arriving == "KARR" {
		t.Fatalf("expected a diversion to change the arrival airport, still %s", ac.FlightPlan.Arriving)
	}
	if ac.FlightPlan.Departing != "KARR" {
		t.Fatalf("expected the flipped plan to depart from the original arrival airport, got %s", ac.FlightPlan.Departing)
	}

	var resume *Event
	for i := range out {
		if out[i].Kind == EvResumeOwnNavigation && out[i].Bool {
			resume = &out[i]
		}
	}
	if resume == nil {
		t.Fatalf("expected a ResumeOwnNavigation(true) event, got %+v", out)
	}

	var out2 []Event
	HandleAircraftEvent(ac, *resume, &out2, world, r, lg)

	for _, wp := range ac.FlightPlan.Waypoints {
		if wp.Name == "SID" {
			t.Fatal("expected the rebuilt plan to omit the original SID")
		}
	}
	var sawSIDSpeed bool
	for _, e := range out2 {
		if e.Kind == EvSpeedAtOrAbove {
			sawSIDSpeed = true
		}
	}
	if !sawSIDSpeed {
		t.Fatalf("expected the new SID's actions to be applied immediately, got %+v", out2)
	}
}
