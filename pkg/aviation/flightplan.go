// pkg/aviation/flightplan.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import smath "github.com/mmp/atcsim/pkg/math"

// VORLimit is a single altitude-or-speed restriction attached to a
// flight-plan waypoint ("at or above", "at or below").
type VORLimit struct {
	AtOrBelow bool
	Value     float32
}

type VORLimits struct {
	Altitude *VORLimit
	Speed    *VORLimit
}

func (l VORLimits) IsZero() bool { return l.Altitude == nil && l.Speed == nil }

// PlanWaypoint is one leg of a FlightPlan: a named fix, any events to
// fire on passing it (e.g. a Callout or a Frequency change baked into
// a STAR), and any altitude/speed constraint.
type PlanWaypoint struct {
	Name    string
	Pos     smath.Point2f
	Actions []Event
	Limits  VORLimits
}

// SeparationMinima are the per-aircraft thresholds arrival spacing in
// UpdateAutoApproach uses (and whose MaxSpeed the Takeoff handler
// targets); they vary with
// aircraft performance category rather than being simulation-wide
// constants.
type SeparationMinima struct {
	MinSpeed, MaxSpeed         float32
	SeparationDistance         float32
	MaxDeviationAngle          float32
}

// FlightPlan is the ordered route an aircraft is following once it
// leaves the gate: a waypoint sequence plus a cursor into it, a course
// offset in degrees that UpdateFlying adds to the bearing to the active
// waypoint (set by arrival spacing to side-step a follower), and
// a Follow flag distinguishing "fly the route" from "fly the last
// cleared heading/altitude/speed instead".
type FlightPlan struct {
	Departing, Arriving string
	CruiseAltitude      float32
	CruiseSpeed         float32
	Waypoints           []PlanWaypoint
	Index               int
	CourseOffset        float32
	Follow              bool
	turnBias            float32
}

func NewFlightPlan(departing, arriving string, turnBias float32) FlightPlan {
	return FlightPlan{Departing: departing, Arriving: arriving, Follow: true, turnBias: turnBias}
}

func (fp *FlightPlan) AtEnd() bool { return fp.Index >= len(fp.Waypoints) }

// Waypoint returns the currently-targeted waypoint, or nil if the plan
// has run off its end.
func (fp *FlightPlan) Waypoint() *PlanWaypoint {
	if fp.AtEnd() {
		return nil
	}
	return &fp.Waypoints[fp.Index]
}

// ActiveWaypoints returns every waypoint from the current index onward.
func (fp *FlightPlan) ActiveWaypoints() []PlanWaypoint {
	if fp.Index >= len(fp.Waypoints) {
		return nil
	}
	return fp.Waypoints[fp.Index:]
}

func (fp *FlightPlan) Advance() { fp.Index++ }

func (fp *FlightPlan) SetIndex(i int) { fp.Index = i }

func (fp *FlightPlan) StartFollowing() { fp.Follow = true }
func (fp *FlightPlan) StopFollowing()  { fp.Follow = false }

// Clear empties the route, used before ResumeOwnNavigation lays down a
// fresh SID/STAR.
func (fp *FlightPlan) Clear() {
	fp.Waypoints = nil
	fp.Index = 0
}

// AmendEnd replaces everything from the current waypoint onward with
// seq, implementing EvAmendAndFollow.
func (fp *FlightPlan) AmendEnd(seq []PlanWaypoint) {
	if fp.Index > len(fp.Waypoints) {
		fp.Index = len(fp.Waypoints)
	}
	fp.Waypoints = append(fp.Waypoints[:fp.Index:fp.Index], seq...)
}

// Flip swaps departure and arrival, used when a diversion turns the
// remainder of a flight plan around.
func (fp *FlightPlan) Flip() {
	fp.Departing, fp.Arriving = fp.Arriving, fp.Departing
}

// DistanceToEnd returns the straight-line distance from pos to the
// last active waypoint, or -1 if there is none.
func (fp *FlightPlan) DistanceToEnd(pos smath.Point2f) float32 {
	wps := fp.ActiveWaypoints()
	if len(wps) == 0 {
		return -1
	}
	return smath.Distance2f(pos, wps[len(wps)-1].Pos)
}

// TurnBias is a fixed +1/-1 given to NewFlightPlan when the plan is
// created that resolves which way to bank when a target heading is
// exactly 180 degrees off current heading, so two aircraft meeting
// head-on don't deterministically turn into each other.
func (fp *FlightPlan) TurnBias() float32 { return fp.turnBias }
