// pkg/aviation/kinematics.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import smath "github.com/mmp/atcsim/pkg/math"

// AirspaceRadiusNM is the radius around an Airport.Center an aircraft
// is considered to be "in" that airport's airspace, used both by
// UpdateAirspace and by UpdateSegment's Arrival->Approach detection.
const AirspaceRadiusNM = 40.0

// UpdateFromTargets steers heading/altitude/speed toward their targets
// at the aircraft's performance-limited rates for one tick of dt
// seconds. Taxiing aircraft turn at a fixed ground rate rather than the
// airborne bank-derived one.
func UpdateFromTargets(ac *Aircraft, dt float32) {
	turnRate := ac.Performance.TurnRate(ac.Speed)
	if ac.State.Kind == StateTaxiing {
		turnRate = TaxiTurnRateDegPerSec
	}

	delta := smath.DeltaAngle(ac.Heading, ac.Target.Heading)
	if smath.Abs(delta) < 0.05 {
		ac.Heading = ac.Target.Heading
	} else {
		step := turnRate * dt
		if smath.Abs(delta-180) < 1e-3 || smath.Abs(delta+180) < 1e-3 {
			// Exactly reversed: use the aircraft's fixed turn bias to
			// pick a side instead of leaving the direction undefined.
			delta = 180 * ac.FlightPlan.TurnBias()
		}
		if step >= smath.Abs(delta) {
			ac.Heading = ac.Target.Heading
		} else {
			ac.Heading = smath.NormalizeHeading(ac.Heading + step*smath.Sign(delta))
		}
	}

	if ac.Altitude != ac.Target.Altitude {
		var ratePerMin float32
		if ac.Target.Altitude > ac.Altitude {
			ratePerMin = ac.Performance.ClimbRate(ac.Altitude)
		} else {
			ratePerMin = -ac.Performance.DescentRate(ac.Altitude)
		}
		step := ratePerMin / 60 * dt
		ac.Altitude += step
		if (step > 0 && ac.Altitude > ac.Target.Altitude) || (step < 0 && ac.Altitude < ac.Target.Altitude) {
			ac.Altitude = ac.Target.Altitude
		}
	}

	if ac.Speed != ac.Target.Speed {
		rate := ac.Performance.Accel()
		if ac.Target.Speed < ac.Speed {
			rate = -ac.Performance.Decel()
		}
		step := rate * dt
		ac.Speed += step
		if (step > 0 && ac.Speed > ac.Target.Speed) || (step < 0 && ac.Speed < ac.Target.Speed) {
			ac.Speed = ac.Target.Speed
		}
	}
}

// UpdatePosition advances an aircraft's position along its current
// heading at its current ground speed.
func UpdatePosition(ac *Aircraft, dt float32) {
	feetPerSec := ac.Speed * KnotToFeetPerSecond
	ac.Pos = smath.MovePoint(ac.Pos, ac.Heading, feetPerSec*dt)
}

// UpdateAirspace recomputes which airport's airspace, if any, the
// aircraft currently occupies.
func UpdateAirspace(ac *Aircraft, world *World) {
	ac.Airspace = ""
	for _, ap := range world.Airports {
		if smath.Distance2f(ac.Pos, ap.Center) <= AirspaceRadiusNM*NauticalMilesToFeet {
			ac.Airspace = ap.ID
			return
		}
	}
}

// UpdateTaxiing advances an aircraft along its taxi route: driving it
// toward the next waypoint, consuming waypoints it reaches, and
// applying each waypoint's Behavior once arrived.
func UpdateTaxiing(ac *Aircraft, out *[]Event) {
	if ac.State.Kind != StateTaxiing || ac.State.TaxiSub == TaxiHolding {
		return
	}
	if len(ac.State.TaxiWaypoints) == 0 {
		ac.Target.Speed = 0
		return
	}

	next := ac.State.TaxiWaypoints[0]
	ac.Target.Heading = smath.AngleBetweenPoints(ac.Pos, next.Pos)
	if next.Kind == NodeRunway && next.Behavior == BehaviorHoldShort {
		ac.Target.Speed = 0
	} else if ac.State.TaxiSub == TaxiArmed {
		ac.Target.Speed = MaxTaxiSpeed
	}

	const arrivalThresholdFeet = 50
	if smath.Distance2f(ac.Pos, next.Pos) > arrivalThresholdFeet {
		return
	}

	ac.Pos = next.Pos
	ac.State.TaxiCurrent = next
	ac.State.TaxiWaypoints = ac.State.TaxiWaypoints[1:]

	switch next.Behavior {
	case BehaviorPark:
		ac.State = NewParkedState(next)
		ac.Target.Speed = 0
		ac.Speed = 0
	case BehaviorHoldShort:
		ac.State.TaxiSub = TaxiHolding
		ac.Target.Speed = 0
	case BehaviorLineUp:
		ac.Target.Heading = next.Heading()
		ac.Heading = next.Heading()
	case BehaviorTakeoff:
		*out = append(*out, Event{ID: ac.ID, Kind: EvTakeoff, Str: next.Name})
	}
}

// UpdateLanding advances an aircraft through its approach: descending
// and tracking the extended runway centerline, transitioning to
// Established once within the capture window, and firing Touchdown
// once it reaches the runway threshold.
func UpdateLanding(ac *Aircraft, out *[]Event) {
	if ac.State.Kind != StateLanding {
		return
	}
	rwy := ac.State.LandingRunway

	const captureDistanceFeet = NauticalMilesToFeet * 10
	const captureAngleDeg = 30

	distToThreshold := smath.Distance2f(ac.Pos, rwy.Pos)
	bearingToThreshold := smath.AngleBetweenPoints(ac.Pos, rwy.Pos)

	if !ac.State.LandingSub.Established() {
		if distToThreshold <= captureDistanceFeet &&
			smath.Abs(smath.DeltaAngle(rwy.Heading(), bearingToThreshold)) <= captureAngleDeg {
			ac.State.LandingSub = LandingEstablished
		} else {
			ac.Target.Heading = bearingToThreshold
			return
		}
	}

	ac.Target.Heading = rwy.Heading()
	ac.Target.Altitude = 0
	ac.Target.Speed = ac.Performance.ApproachSpeed

	const touchdownDistanceFeet = 300
	if distToThreshold <= touchdownDistanceFeet && ac.State.LandingSub != LandingTouchdown {
		ac.State.LandingSub = LandingTouchdown
		*out = append(*out, Event{ID: ac.ID, Kind: EvTouchdown})
	}
}

// UpdateFlying keeps a flying aircraft tracking its flight plan: once
// past a waypoint's capture radius, it applies the waypoint's actions,
// advances the plan, and (subject to any altitude/speed limit on the
// waypoint) steers the target heading toward the next one.
func UpdateFlying(ac *Aircraft, out *[]Event) {
	if ac.State.Kind != StateFlying || !ac.FlightPlan.Follow {
		return
	}
	wp := ac.FlightPlan.Waypoint()
	if wp == nil {
		return
	}

	bearing := smath.AngleBetweenPoints(ac.Pos, wp.Pos)
	ac.Target.Heading = smath.NormalizeHeading(bearing + ac.FlightPlan.CourseOffset)

	if wp.Limits.Altitude != nil {
		if wp.Limits.Altitude.AtOrBelow {
			if ac.Target.Altitude > wp.Limits.Altitude.Value {
				ac.Target.Altitude = wp.Limits.Altitude.Value
			}
		} else if ac.Target.Altitude < wp.Limits.Altitude.Value {
			ac.Target.Altitude = wp.Limits.Altitude.Value
		}
	}
	if wp.Limits.Speed != nil {
		if wp.Limits.Speed.AtOrBelow {
			if ac.Target.Speed > wp.Limits.Speed.Value {
				ac.Target.Speed = wp.Limits.Speed.Value
			}
		} else if ac.Target.Speed < wp.Limits.Speed.Value {
			ac.Target.Speed = wp.Limits.Speed.Value
		}
	}

	const captureRadiusFeet = 1000
	if smath.Distance2f(ac.Pos, wp.Pos) > captureRadiusFeet {
		return
	}

	for _, action := range wp.Actions {
		action.ID = ac.ID
		*out = append(*out, action)
	}
	ac.FlightPlan.Advance()
}

// UpdateSegment detects lifecycle transitions implied by kinematic
// state that aren't already driven by an explicit controller event,
// and emits the corresponding Segment events for the dispatcher to
// apply next tick.
func UpdateSegment(ac *Aircraft, world *World, out *[]Event) {
	emit := func(next FlightSegment) {
		*out = append(*out, Event{ID: ac.ID, Kind: EvSegment, PrevSegment: ac.Segment, Segment: next})
	}

	switch ac.Segment {
	case SegParked:
		if ac.State.Kind == StateTaxiing {
			emit(SegTaxiDep)
		}
	case SegTaxiDep:
		if ac.State.Kind == StateFlying {
			emit(SegTakeoff)
		}
	case SegTakeoff:
		if ac.Altitude > 500 {
			emit(SegDeparture)
		}
	case SegDeparture:
		if ac.Altitude > 10000 {
			emit(SegClimb)
		}
	case SegClimb:
		if ac.Target.Altitude > 0 && ac.Altitude >= ac.Target.Altitude-50 {
			emit(SegCruise)
		}
	case SegCruise:
		if d := ac.FlightPlan.DistanceToEnd(ac.Pos); d >= 0 && d <= NauticalMilesToFeet*120 {
			emit(SegArrival)
		}
	case SegArrival:
		if ap := world.Airport(ac.FlightPlan.Arriving); ap != nil &&
			smath.Distance2f(ac.Pos, ap.Center) <= AirspaceRadiusNM*NauticalMilesToFeet {
			emit(SegApproach)
		}
	case SegApproach:
		if ac.State.Kind == StateLanding {
			emit(SegLanding)
		}
	case SegLanding:
		if ac.State.Kind == StateTaxiing {
			emit(SegTaxiArr)
		}
	}
}
