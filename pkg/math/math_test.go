// pkg/math/math_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import "testing"

func TestNormalizeHeading(t *testing.T) {
	cases := []struct{ in, want float32 }{
		{0, 0}, {360, 0}, {720, 0}, {-90, 270}, {-360, 0}, {450, 90},
	}
	for _, c := range cases {
		if got := NormalizeHeading(c.in); got != c.want {
			t.Errorf("NormalizeHeading(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestHeadingDifference(t *testing.T) {
	cases := []struct {
		a, b, want float32
	}{
		{10, 20, 10},
		{350, 10, 20},
		{0, 180, 180},
		{90, 90, 0},
	}
	for _, c := range cases {
		if got := HeadingDifference(c.a, c.b); got != c.want {
			t.Errorf("HeadingDifference(%v,%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestDeltaAngle(t *testing.T) {
	cases := []struct {
		from, to, want float32
	}{
		{0, 90, 90},
		{0, 270, -90},
		{350, 10, 20},
		{10, 350, -20},
	}
	for _, c := range cases {
		if got := DeltaAngle(c.from, c.to); got != c.want {
			t.Errorf("DeltaAngle(%v,%v) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestAngleBetweenPoints(t *testing.T) {
	if got := AngleBetweenPoints(Point2f{0, 0}, Point2f{0, 100}); got != 0 {
		t.Errorf("expected north bearing 0, got %v", got)
	}
	if got := AngleBetweenPoints(Point2f{0, 0}, Point2f{100, 0}); got != 90 {
		t.Errorf("expected east bearing 90, got %v", got)
	}
}

func TestClampSign(t *testing.T) {
	if Clamp(5, 0, 10) != 5 {
		t.Error("Clamp failed in-range")
	}
	if Clamp(-5, 0, 10) != 0 {
		t.Error("Clamp failed below range")
	}
	if Clamp(15, 0, 10) != 10 {
		t.Error("Clamp failed above range")
	}
	if Sign3(-3) != -1 || Sign3(0) != 0 || Sign3(3) != 1 {
		t.Error("Sign3 returned unexpected value")
	}
}

func TestMovePoint(t *testing.T) {
	p := MovePoint(Point2f{0, 0}, 90, 100)
	if Abs(p[0]-100) > 1e-3 || Abs(p[1]) > 1e-3 {
		t.Errorf("MovePoint east got %v", p)
	}
}
