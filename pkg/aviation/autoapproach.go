// pkg/aviation/autoapproach.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import (
	"math"
	"sort"

	"github.com/mmp/atcsim/pkg/log"
	smath "github.com/mmp/atcsim/pkg/math"
)

type approachGroupKey struct {
	Airspace, LastWaypoint string
}

type approachEntry struct {
	aircraft *Aircraft
	distance float32
}

// UpdateAutoApproach groups in-air aircraft heading to or from the same
// automated airspace by the last fix on their route, spaces them along
// that group by interpolating speed between each aircraft's min/max,
// and — for aircraft on final into an automated airport — generates the
// crosswind/downwind/base/final pattern, resequencing or clearing to
// land as appropriate.
func UpdateAutoApproach(world *World, game *Game, out *[]Event, lg *log.Logger) {
	groups := make(map[approachGroupKey][]approachEntry)

	for _, a := range game.Aircraft {
		if !a.Segment.InAir() {
			continue
		}
		airspace := a.Airspace
		if airspace != "" {
			ap := world.Airport(airspace)
			if !((airspace == a.FlightPlan.Arriving || airspace == a.FlightPlan.Departing) && ap != nil && ap.Status.AutomateAir) {
				continue
			}
		}

		key := approachGroupKey{Airspace: airspace, LastWaypoint: lastWaypointName(a)}
		if key.Airspace == "" {
			key.Airspace = a.FlightPlan.Arriving
		}
		dist := a.FlightPlan.DistanceToEnd(a.Pos)
		if dist < 0 {
			dist = math.MaxFloat32
		}
		groups[key] = append(groups[key], approachEntry{a, dist})
	}

	type speedCmd struct {
		id     string
		speed  float32
		offset float32
	}
	var speeds []speedCmd

	for _, entries := range groups {
		sort.Slice(entries, func(i, j int) bool { return entries[i].distance < entries[j].distance })

		first := entries[0]
		speeds = append(speeds, speedCmd{first.aircraft.ID, first.aircraft.Minima.MaxSpeed, 0})
		current := first.distance

		for _, e := range entries[1:] {
			minima := e.aircraft.Minima
			diff := e.distance - current

			if diff < minima.SeparationDistance {
				halfSep := minima.SeparationDistance * 0.5
				if diff < halfSep {
					direction := -float32(smath.Sign3(e.aircraft.FlightPlan.TurnBias()))
					speeds = append(speeds, speedCmd{e.aircraft.ID, minima.MinSpeed, minima.MaxDeviationAngle * direction})
				} else {
					t := smath.Clamp((diff-halfSep)/halfSep, 0, 1)
					speed := smath.Min(minima.MinSpeed+t*(minima.MaxSpeed-minima.MinSpeed), minima.MaxSpeed)
					speeds = append(speeds, speedCmd{e.aircraft.ID, speed, 0})
				}
			} else {
				speeds = append(speeds, speedCmd{e.aircraft.ID, minima.MaxSpeed, 0})
			}
			current = e.distance
		}
	}

	for _, s := range speeds {
		a := game.Find(s.id)
		if a == nil || a.Segment == SegLanding {
			continue
		}
		if a.FlightPlan.CourseOffset != s.offset {
			a.FlightPlan.CourseOffset = s.offset
		}
		if a.Target.Speed != s.speed {
			*out = append(*out, Event{ID: a.ID, Kind: EvSpeed, Float: s.speed})
		}
	}

	for _, a := range game.Aircraft {
		if a.Segment == SegApproach {
			if ap := world.Airport(a.Airspace); ap != nil && ap.Status.AutomateAir {
				updateApproachPattern(world, game, ap, a, out, lg)
			}
		} else if a.Segment == SegLanding {
			if a.State.Kind == StateLanding && a.State.LandingSub.Established() {
				*out = append(*out, Event{ID: a.ID, Kind: EvNamedFrequency, Str: "tower"})
			}
		}
	}
}

func lastWaypointName(a *Aircraft) string {
	wps := a.FlightPlan.ActiveWaypoints()
	if len(wps) == 0 {
		return ""
	}
	return wps[len(wps)-1].Name
}

func updateApproachPattern(world *World, game *Game, airport *Airport, a *Aircraft, out *[]Event, lg *log.Logger) {
	star, ok := findPlanWaypoint(&a.FlightPlan, "STAR")
	if !ok {
		lg.Errorf("%s: no STAR waypoint found, skipping approach pattern generation this tick", a.ID)
		return
	}

	runway := closestRunwayByHeadingAndThreshold(airport, star.Pos)
	directions := smath.NewDirections(runway.Heading())

	const patternLength = NauticalMilesToFeet * 10
	finalFix := smath.MovePoint(runway.Pos, directions.Backward, patternLength)

	patternDirection := directions.Left
	if smath.DeltaAngle(runway.Heading(), smath.AngleBetweenPoints(a.Pos, finalFix)) < 0 {
		patternDirection = directions.Right
	}

	baseFix := smath.MovePoint(finalFix, patternDirection, NauticalMilesToFeet*5)

	reverseDownwind := smath.Abs(smath.DeltaAngle(smath.AngleBetweenPoints(a.Pos, finalFix), directions.Forward)) < 90
	var downwindFix smath.Point2f
	if reverseDownwind {
		downwindFix = smath.MovePoint(baseFix, directions.Backward, patternLength)
	} else {
		downwindFix = smath.MovePoint(baseFix, directions.Forward, patternLength)
	}
	crosswindFix := smath.MovePoint(downwindFix, patternDirection, -NauticalMilesToFeet*5)

	downwindName := "DW"
	if reverseDownwind {
		downwindName = "UW"
	}

	pattern := []PlanWaypoint{
		{Name: "CW", Pos: crosswindFix},
		{Name: downwindName, Pos: downwindFix},
		{Name: "BS", Pos: baseFix},
		{Name: runway.ID, Pos: finalFix},
	}

	if a.FlightPlan.AtEnd() {
		*out = append(*out, Event{ID: a.ID, Kind: EvAmendAndFollow, Amend: pattern})
	}

	const maxApproachAltitude = 4000
	if a.Target.Altitude > maxApproachAltitude {
		*out = append(*out, Event{ID: a.ID, Kind: EvAltitude, Float: maxApproachAltitude})
	}

	wp := a.FlightPlan.Waypoint()
	if wp == nil || wp.Pos != finalFix {
		return
	}

	const landDistance = NauticalMilesToFeet * 1.5
	const minLandingSeparation = NauticalMilesToFeet * 3.5

	if smath.DistanceSquared2f(wp.Pos, a.Pos) > smath.Sqr(float32(landDistance)) {
		return
	}

	for _, other := range game.Aircraft {
		if other.ID == a.ID || other.Airspace != a.Airspace || other.Segment != SegLanding {
			continue
		}
		if smath.DistanceSquared2f(other.Pos, a.Pos) < smath.Sqr(float32(minLandingSeparation)) {
			dw := smath.MovePoint(runway.Pos, directions.Forward, NauticalMilesToFeet*5)
			cw := smath.MovePoint(dw, patternDirection, NauticalMilesToFeet*5)
			resequence := []PlanWaypoint{{Name: "DW", Pos: dw}, {Name: "CW", Pos: cw}}
			*out = append(*out, Event{ID: a.ID, Kind: EvAmendAndFollow, Amend: resequence})
			return
		}
	}

	*out = append(*out,
		Event{ID: a.ID, Kind: EvSpeedAtOrBelow, Float: 180},
		Event{ID: a.ID, Kind: EvLand, Str: runway.ID},
	)
}

func findPlanWaypoint(fp *FlightPlan, name string) (PlanWaypoint, bool) {
	for _, wp := range fp.Waypoints {
		if wp.Name == name {
			return wp, true
		}
	}
	return PlanWaypoint{}, false
}

// closestRunwayByHeadingAndThreshold picks the runway whose threshold
// is nearest the STAR transition fix.
func closestRunwayByHeadingAndThreshold(airport *Airport, starPos smath.Point2f) Runway {
	if len(airport.Runways) == 0 {
		return Runway{}
	}
	best, bestDist := airport.Runways[0], float32(math.MaxFloat32)
	for _, r := range airport.Runways {
		d := smath.DistanceSquared2f(starPos, r.Pos)
		if d < bestDist {
			best, bestDist = r, d
		}
	}
	return best
}
