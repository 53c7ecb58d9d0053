// pkg/aviation/aircraft.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import smath "github.com/mmp/atcsim/pkg/math"

// AircraftStateKind distinguishes the four movement regimes an
// aircraft can be in. It is orthogonal to FlightSegment: an aircraft
// taxiing to its gate after landing is State=Taxiing,
// Segment=TaxiArr, while one taxiing out for departure is
// State=Taxiing, Segment=TaxiDep.
type AircraftStateKind int

const (
	StateParked AircraftStateKind = iota
	StateTaxiing
	StateFlying
	StateLanding
)

type TaxiingSub int

const (
	// TaxiArmed is moving along its taxi route.
	TaxiArmed TaxiingSub = iota
	// TaxiStopped has been halted by the taxi-conflict pass and stays
	// halted until that pass finds the conflict cleared.
	TaxiStopped
	// TaxiHolding is stopped short of a clearance limit awaiting TaxiContinue.
	TaxiHolding
	// TaxiOverride steers along its route like TaxiArmed, but UpdateTaxiing
	// leaves its target speed alone and the taxi-conflict pass does not
	// stop it.
	TaxiOverride
)

type LandingSub int

const (
	LandingApproach LandingSub = iota
	LandingEstablished
	LandingTouchdown
)

func (s LandingSub) Established() bool {
	return s == LandingEstablished || s == LandingTouchdown
}

// AircraftState is a tagged union (Kind plus only the fields relevant
// to that Kind populated) standing in for the sum type the reference
// model expresses as an enum with per-variant payloads.
type AircraftState struct {
	Kind AircraftStateKind

	ParkedAt Node

	TaxiCurrent   Node
	TaxiWaypoints []Node
	TaxiSub       TaxiingSub

	LandingRunway Runway
	LandingSub    LandingSub
}

func NewParkedState(at Node) AircraftState {
	return AircraftState{Kind: StateParked, ParkedAt: at}
}

func NewTaxiingState(current Node, waypoints []Node) AircraftState {
	return AircraftState{Kind: StateTaxiing, TaxiCurrent: current, TaxiWaypoints: waypoints, TaxiSub: TaxiArmed}
}

func NewFlyingState() AircraftState { return AircraftState{Kind: StateFlying} }

func NewLandingState(rwy Runway) AircraftState {
	return AircraftState{Kind: StateLanding, LandingRunway: rwy, LandingSub: LandingApproach}
}

// TCAS is an aircraft's current collision-avoidance advisory state.
type TCAS int

const (
	TCASIdle TCAS = iota
	TCASWarning
	TCASHold
	TCASClimb
	TCASDescend
)

func (t TCAS) IsRA() bool { return t == TCASClimb || t == TCASDescend }
func (t TCAS) IsTA() bool { return t == TCASWarning || t == TCASHold }

// FlightSegment is the aircraft's position in its overall lifecycle,
// independent of AircraftState: a Parked aircraft is Boarding before
// pushback and Parked again (briefly, before going Dormant) after arrival.
type FlightSegment int

const (
	SegDormant FlightSegment = iota
	SegBoarding
	SegParked
	SegTaxiDep
	SegTakeoff
	SegDeparture
	SegClimb
	SegCruise
	SegArrival
	SegApproach
	SegLanding
	SegTaxiArr
)

// InAir reports whether a segment counts as "in the air" for automation
// grouping purposes (§4.7): arrival spacing operates over this set,
// even though Landing aircraft are then excluded from the
// speed-adjustment step specifically.
func (s FlightSegment) InAir() bool {
	switch s {
	case SegTakeoff, SegDeparture, SegClimb, SegCruise, SegArrival, SegApproach, SegLanding:
		return true
	default:
		return false
	}
}

// Target is the commanded heading/altitude/speed UpdateFromTargets
// steers an aircraft's actual values toward.
type Target struct {
	Heading  float32
	Altitude float32
	Speed    float32
}

// Aircraft is the full per-aircraft record: kinematic state, lifecycle
// state, and its flight plan.
type Aircraft struct {
	ID  string
	Pos smath.Point2f

	Altitude float32
	Heading  float32
	Speed    float32

	Target Target

	Airspace  string // airport ID the aircraft is currently inside, "" if none
	Frequency float32

	State   AircraftState
	Segment FlightSegment
	TCAS    TCAS

	FlightPlan  FlightPlan
	Performance AircraftPerformance
	Minima      SeparationMinima
}

func (a *Aircraft) InAir() bool { return a.Segment.InAir() }

func (a *Aircraft) OnGround() bool { return !a.InAir() }

// FindAirport returns the Airport the aircraft is currently inside, if
// any.
func (a *Aircraft) FindAirport(w *World) *Airport {
	if a.Airspace == "" {
		return nil
	}
	return w.Airport(a.Airspace)
}

// DistanceToEnd is a convenience wrapper used by auto-approach spacing.
func (a *Aircraft) DistanceToEnd() float32 {
	return a.FlightPlan.DistanceToEnd(a.Pos)
}

// SyncTargetsToCurrent snaps all targets to the aircraft's present
// values, used by the GoAround handler so the aircraft holds its
// present heading, altitude and speed rather than resuming motion
// toward a stale target.
func (a *Aircraft) SyncTargetsToCurrent() {
	a.Target = Target{Heading: a.Heading, Altitude: a.Altitude, Speed: a.Speed}
}
