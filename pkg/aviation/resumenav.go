// pkg/aviation/resumenav.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"github.com/mmp/atcsim/pkg/log"
	smath "github.com/mmp/atcsim/pkg/math"
)

const trackMinWaypointDistanceNM = 90.0
const transitionDistanceNM = 30.0

// resumeOwnNavigation rebuilds an aircraft's flight plan from scratch:
// a SID transition fix climbing it out on course, a chain of en-route
// waypoints kept within 45 degrees of the great-circle course the whole
// way, and a STAR transition fix descending it to the arrival
// airport's pattern altitude. On a diversion the SID's climb/frequency
// actions fire immediately instead of being attached as a waypoint,
// since the aircraft is already airborne.
func resumeOwnNavigation(ac *Aircraft, diversion bool, out *[]Event, world *World, lg *log.Logger) {
	departure := world.Airport(ac.FlightPlan.Departing)
	arrival := world.Airport(ac.FlightPlan.Arriving)
	if departure == nil || arrival == nil {
		lg.Debugf("resumeOwnNavigation: unknown departure/arrival for %s", ac.ID)
		return
	}

	mainCourse := smath.AngleBetweenPoints(departure.Center, arrival.Center)

	transitionSID := smath.MoveTowards(departure.Center, arrival.Center, NauticalMilesToFeet*transitionDistanceNM)
	transitionSTAR := smath.MoveTowards(arrival.Center, departure.Center, NauticalMilesToFeet*transitionDistanceNM)

	cruiseAlt := world.Params.WestCruiseAltitude
	if mainCourse >= 0 && mainCourse < 180 {
		cruiseAlt = world.Params.EastCruiseAltitude
	}

	sidActions := []Event{
		{ID: ac.ID, Kind: EvSpeedAtOrAbove, Float: ac.FlightPlan.CruiseSpeed},
		{ID: ac.ID, Kind: EvAltitudeAtOrAbove, Float: cruiseAlt},
		{ID: ac.ID, Kind: EvFrequency, Float: departure.Frequencies.Center},
	}
	wpSID := PlanWaypoint{Name: "SID", Pos: transitionSID, Actions: sidActions}

	below := world.Params.ArrivalAltitude
	belowSpeed := float32(250)
	wpSTAR := PlanWaypoint{
		Name: "STAR", Pos: transitionSTAR,
		Limits: VORLimits{
			Altitude: &VORLimit{AtOrBelow: true, Value: below},
			Speed:    &VORLimit{AtOrBelow: true, Value: belowSpeed},
		},
	}

	minDistSq := smath.Sqr(float32(NauticalMilesToFeet * trackMinWaypointDistanceNM))
	cmp := departure.Center

	var waypoints []PlanWaypoint
	for {
		best, bestDelta, found := Waypoint{}, float32(0), false
		for _, w := range world.Waypoints {
			if w.Pos == cmp {
				continue
			}
			toW := smath.AngleBetweenPoints(cmp, w.Pos)
			if smath.Abs(smath.DeltaAngle(mainCourse, toW)) > 45 {
				continue
			}
			toArrival := smath.AngleBetweenPoints(w.Pos, arrival.Center)
			if smath.Abs(smath.DeltaAngle(mainCourse, toArrival)) > 45 {
				continue
			}
			if smath.DistanceSquared2f(cmp, w.Pos) > minDistSq {
				continue
			}
			delta := smath.Abs(smath.DeltaAngle(mainCourse, toW))
			if !found || delta < bestDelta {
				best, bestDelta, found = w, delta, true
			}
		}
		if !found {
			break
		}
		cmp = best.Pos
		waypoints = append(waypoints, PlanWaypoint{Name: best.Name, Pos: best.Pos})
	}

	waypoints = append(waypoints, wpSTAR)

	if !diversion {
		waypoints = append([]PlanWaypoint{wpSID}, waypoints...)
	} else {
		for _, action := range sidActions {
			*out = append(*out, action)
		}
	}

	ac.FlightPlan.Clear()
	ac.FlightPlan.Waypoints = waypoints
}
