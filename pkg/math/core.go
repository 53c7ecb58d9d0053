// pkg/math/core.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package math collects the small scalar and vector helpers the
// simulation core needs: angle normalization, clamping, and 2D vector
// arithmetic. It shadows the standard "math" package name the way the
// teacher's pkg/math does, so call sites alias the stdlib import.
package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

func Sin(a float32) float32   { return float32(gomath.Sin(float64(a))) }
func Cos(a float32) float32   { return float32(gomath.Cos(float64(a))) }
func Tan(a float32) float32   { return float32(gomath.Tan(float64(a))) }
func Atan2(y, x float32) float32 {
	return float32(gomath.Atan2(float64(y), float64(x)))
}
func Sqrt(a float32) float32 { return float32(gomath.Sqrt(float64(a))) }

func Degrees(r float32) float32 { return r * 180 / gomath.Pi }
func Radians(d float32) float32 { return d * gomath.Pi / 180 }

func Mod(a, b float32) float32 { return float32(gomath.Mod(float64(a), float64(b))) }

func Sign(v float32) float32 {
	if v < 0 {
		return -1
	} else if v > 0 {
		return 1
	}
	return 0
}

// Sign3 returns -1, 0, or 1, matching the sign3() helper the original
// engine uses to pick a side-step direction from a turn bias.
func Sign3[V constraints.Integer | constraints.Float](v V) int {
	if v < 0 {
		return -1
	} else if v > 0 {
		return 1
	}
	return 0
}

func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

func Sqr[V constraints.Integer | constraints.Float](v V) V { return v * v }

func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

func Lerp(x, a, b float32) float32 {
	return (1-x)*a + x*b
}

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
