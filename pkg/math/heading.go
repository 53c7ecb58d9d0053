// pkg/math/heading.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// NormalizeHeading reduces h into [0,360).
func NormalizeHeading(h float32) float32 {
	h = Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h -= 360
	}
	return h
}

func OppositeHeading(h float32) float32 {
	return NormalizeHeading(h + 180)
}

// HeadingDifference returns the minimum difference between two headings,
// always in [0,180].
func HeadingDifference(a, b float32) float32 {
	d := Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// DeltaAngle returns the signed difference target-from, normalized into
// [-180,180]: positive means target is clockwise of from.
func DeltaAngle(from, target float32) float32 {
	d := NormalizeHeading(target - from)
	if d > 180 {
		d -= 360
	}
	return d
}

// AngleBetweenPoints returns the compass bearing from a to b.
func AngleBetweenPoints(a, b Point2f) float32 {
	v := Sub2f(b, a)
	return NormalizeHeading(Degrees(Atan2(v[0], v[1])))
}

// Directions bundles the four cardinal offsets of a runway/pattern
// heading, used to lay out a traffic pattern (§4.7).
type Directions struct {
	Forward, Backward, Left, Right float32
}

func NewDirections(heading float32) Directions {
	return Directions{
		Forward:  NormalizeHeading(heading),
		Backward: OppositeHeading(heading),
		Left:     NormalizeHeading(heading - 90),
		Right:    NormalizeHeading(heading + 90),
	}
}
