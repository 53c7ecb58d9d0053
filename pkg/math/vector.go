// pkg/math/vector.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// Point2f is a 2D point/vector in a flat, feet-denominated plane. The
// simulation works in a local tangent-plane projection rather than
// lat/long, so a plain [2]float32 (as the teacher uses internally for
// screen-space math) is all that's needed here.
type Point2f [2]float32

func Add2f(a, b Point2f) Point2f   { return Point2f{a[0] + b[0], a[1] + b[1]} }
func Sub2f(a, b Point2f) Point2f   { return Point2f{a[0] - b[0], a[1] - b[1]} }
func Scale2f(a Point2f, s float32) Point2f { return Point2f{a[0] * s, a[1] * s} }
func Mid2f(a, b Point2f) Point2f   { return Scale2f(Add2f(a, b), 0.5) }
func Dot2f(a, b Point2f) float32   { return a[0]*b[0] + a[1]*b[1] }

func Length2f(v Point2f) float32 { return Sqrt(v[0]*v[0] + v[1]*v[1]) }

func Distance2f(a, b Point2f) float32 { return Length2f(Sub2f(a, b)) }

// DistanceSquared2f avoids the Sqrt when only relative comparisons (or a
// squared threshold) are needed, as in the TCAS and taxi-conflict passes.
func DistanceSquared2f(a, b Point2f) float32 {
	d := Sub2f(a, b)
	return d[0]*d[0] + d[1]*d[1]
}

func Normalize2f(a Point2f) Point2f {
	l := Length2f(a)
	if l == 0 {
		return Point2f{0, 0}
	}
	return Scale2f(a, 1/l)
}

func Lerp2f(x float32, a, b Point2f) Point2f {
	return Point2f{(1-x)*a[0] + x*b[0], (1-x)*a[1] + x*b[1]}
}

// Heading2f returns the unit vector pointing along the compass heading
// hdg (0 = north/+y, 90 = east/+x).
func Heading2f(hdg float32) Point2f {
	r := Radians(hdg)
	return Point2f{Sin(r), Cos(r)}
}

// MovePoint translates p by dist feet along compass heading hdg.
func MovePoint(p Point2f, hdg float32, dist float32) Point2f {
	return Add2f(p, Scale2f(Heading2f(hdg), dist))
}

// MoveTowards translates from p dist feet towards to, clamped so it
// never overshoots to.
func MoveTowards(p, to Point2f, dist float32) Point2f {
	full := Distance2f(p, to)
	if full <= dist || full == 0 {
		return to
	}
	return Add2f(p, Scale2f(Normalize2f(Sub2f(to, p)), dist))
}
