// pkg/aviation/tcas.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import smath "github.com/mmp/atcsim/pkg/math"

// HandleTCAS runs the pairwise collision-avoidance pass over every
// flying aircraft and returns the CalloutTARA events produced by
// advisories clearing. Resolutions (Climb/Descend/Hold/Warning) are
// written directly onto Aircraft.TCAS; a later pair in iteration order
// that also involves an aircraft already resolved this tick overwrites
// the earlier resolution, matching the reference implementation's
// last-write-wins map insert.
func HandleTCAS(game *Game) []Event {
	var out []Event
	resolved := make(map[string]TCAS, len(game.Aircraft))

	for i := 0; i < len(game.Aircraft); i++ {
		for j := i + 1; j < len(game.Aircraft); j++ {
			a, b := game.Aircraft[i], game.Aircraft[j]

			if a.State.Kind != StateFlying || b.State.Kind != StateFlying {
				continue
			}
			if a.Altitude <= 2000 || b.Altitude <= 2000 {
				continue
			}

			distSq := smath.DistanceSquared2f(a.Pos, b.Pos)
			vertDist := smath.Abs(a.Altitude - b.Altitude)

			aFeetToDescend := (500 / climbSpeed(a)) * a.Speed * KnotToFeetPerSecond
			bFeetToDescend := (500 / climbSpeed(b)) * b.Speed * KnotToFeetPerSecond
			totalDist := aFeetToDescend + bFeetToDescend

			aAngle := smath.DeltaAngle(a.Heading, smath.AngleBetweenPoints(a.Pos, b.Pos))
			bAngle := smath.DeltaAngle(b.Heading, smath.AngleBetweenPoints(b.Pos, a.Pos))
			facing := smath.Abs(aAngle) < 90 || smath.Abs(bAngle) < 90
			if !facing {
				continue
			}

			inTA := vertDist < 2000 && distSq <= smath.Sqr(totalDist*2)
			inRA := vertDist < 1000 && distSq <= smath.Sqr(totalDist)

			switch {
			case inRA:
				if a.Altitude < b.Altitude {
					resolved[a.ID] = TCASDescend
					resolved[b.ID] = TCASClimb
				} else {
					resolved[a.ID] = TCASClimb
					resolved[b.ID] = TCASDescend
				}
			case inTA:
				if a.TCAS.IsRA() {
					resolved[a.ID] = TCASHold
				} else {
					resolved[a.ID] = TCASWarning
				}
				if b.TCAS.IsRA() {
					resolved[b.ID] = TCASHold
				} else {
					resolved[b.ID] = TCASWarning
				}
			}
		}
	}

	for _, a := range game.Aircraft {
		if t, ok := resolved[a.ID]; ok {
			a.TCAS = t
			continue
		}
		if a.TCAS != TCASIdle {
			if a.TCAS.IsRA() {
				out = append(out, Event{ID: a.ID, Kind: EvCalloutTARA})
			}
			a.TCAS = TCASIdle
		}
	}

	return out
}

// climbSpeed is the rate (feet/second) an aircraft is assumed able to
// climb or descend at for the purposes of computing TCAS separation:
// its performance-table climb rate at its current altitude, converted
// from feet/minute to feet/second to match feetToDescend's other
// per-second term (KnotToFeetPerSecond).
func climbSpeed(a *Aircraft) float32 {
	r := a.Performance.ClimbRate(a.Altitude) / 60
	if r <= 0 {
		return 1
	}
	return r
}
