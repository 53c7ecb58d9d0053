// pkg/aviation/constants.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aviation

const (
	NauticalMilesToFeet      = 6076.12
	KnotToFeetPerSecond      = 1.68781
	MaxTaxiSpeed      float32 = 20.0

	DefaultTickRateTPS = 15
)

// EngineParams bundles the configuration-supplied constants spec.md §6
// calls out as inputs rather than compile-time constants: arrival
// altitude and the east/west cruise altitudes used by ResumeOwnNavigation
// (§4.9).
type EngineParams struct {
	ArrivalAltitude   float32
	EastCruiseAltitude float32
	WestCruiseAltitude float32
}

func DefaultEngineParams() EngineParams {
	return EngineParams{
		ArrivalAltitude:    10000,
		EastCruiseAltitude: 35000,
		WestCruiseAltitude: 36000,
	}
}
