// pkg/aviation/performance.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

import smath "github.com/mmp/atcsim/pkg/math"

// AircraftPerformance models the speed/altitude-dependent rate table
// spec §4.3 leaves to the implementer: climb/descent rate falls off
// above the transition altitude the way a real jet's does, turn rate
// derives from a fixed bank angle at the current speed, and
// acceleration/deceleration are flat per-category values. Grounded on
// the shape of the teacher's AircraftPerformance.Rate/Speed/Turn
// tables (pkg/aviation/db.go), simplified to what the simulation core
// actually consumes.
type AircraftPerformance struct {
	MaxClimbRate   float32 // feet/minute at low altitude
	MaxDescentRate float32 // feet/minute, positive
	MaxBankAngle   float32 // degrees, used to derive turn rate
	MaxAccel       float32 // knots/second
	MaxDecel       float32 // knots/second
	CruiseSpeed    float32
	ApproachSpeed  float32
	Category       string
}

// DefaultPerformance is a generic narrow-body table used when assets
// don't specify one.
func DefaultPerformance() AircraftPerformance {
	return AircraftPerformance{
		MaxClimbRate:   2500,
		MaxDescentRate: 1800,
		MaxBankAngle:   25,
		MaxAccel:       2.0,
		MaxDecel:       2.5,
		CruiseSpeed:    450,
		ApproachSpeed:  140,
		Category:       "jet",
	}
}

// ClimbRate returns the achievable climb rate at the given altitude:
// full rate below 5000ft, tapering linearly to a third of that by
// 30000ft, matching how a loaded jet's climb performance degrades with
// altitude.
func (p AircraftPerformance) ClimbRate(altitude float32) float32 {
	const taperStart, taperEnd = 5000, 30000
	if altitude <= taperStart {
		return p.MaxClimbRate
	}
	if altitude >= taperEnd {
		return p.MaxClimbRate / 3
	}
	frac := (altitude - taperStart) / (taperEnd - taperStart)
	return smath.Lerp(frac, p.MaxClimbRate, p.MaxClimbRate/3)
}

func (p AircraftPerformance) DescentRate(altitude float32) float32 {
	return p.MaxDescentRate
}

// TurnRate returns degrees/second achievable at the given ground speed
// for a standard-bank turn; speed is floored to avoid a divide blowup
// near zero (taxiing aircraft use a fixed taxi turn rate instead).
func (p AircraftPerformance) TurnRate(speedKts float32) float32 {
	const gravityConst = 1091 // knots^2 per degree of bank-to-rate conversion at g=32.2ft/s^2
	s := smath.Max(speedKts, 30)
	rate := gravityConst * smath.Tan(smath.Radians(p.MaxBankAngle)) / s
	return smath.Clamp(rate, 0.5, 5)
}

const TaxiTurnRateDegPerSec = 10.0

func (p AircraftPerformance) Accel() float32 { return p.MaxAccel }
func (p AircraftPerformance) Decel() float32 { return p.MaxDecel }
