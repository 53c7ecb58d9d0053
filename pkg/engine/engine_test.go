// pkg/engine/engine_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package engine

import (
	"context"
	"testing"

	"github.com/mmp/atcsim/pkg/aviation"
	"github.com/mmp/atcsim/pkg/log"
	smath "github.com/mmp/atcsim/pkg/math"
)

func testLogger(t *testing.T) *log.Logger {
	t.Helper()
	return log.New("error", t.TempDir())
}

func emptyWorldEngine(t *testing.T) *Engine {
	return New(DefaultConfig(), &aviation.World{}, testLogger(t))
}

func TestTickOnEmptyWorldReturnsErrNotReady(t *testing.T) {
	e := emptyWorldEngine(t)
	_, err := e.Tick(context.Background())
	if err != aviation.ErrNotReady {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func oneAirportWorld() *aviation.World {
	ap := aviation.NewAirport("KTST", smath.Point2f{0, 0})
	ap.Runways = append(ap.Runways, aviation.Runway{ID: "09", Pos: smath.Point2f{0, 0}, End: smath.Point2f{10000, 0}})
	return &aviation.World{Airports: []*aviation.Airport{ap}, Params: aviation.DefaultEngineParams()}
}

func TestTickAdvancesCounterAndIsIdempotentWhenPaused(t *testing.T) {
	e := New(DefaultConfig(), oneAirportWorld(), testLogger(t))

	if _, err := e.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.TickCounter() != 1 {
		t.Fatalf("expected tick counter 1, got %d", e.TickCounter())
	}

	e.SetPaused(true)
	for i := 0; i < 3; i++ {
		events, err := e.Tick(context.Background())
		if err != nil {
			t.Fatalf("unexpected error while paused: %v", err)
		}
		if events != nil {
			t.Fatalf("expected nil events while paused, got %v", events)
		}
	}
	if e.TickCounter() != 1 {
		t.Fatalf("expected tick counter to stay at 1 while paused, got %d", e.TickCounter())
	}
}

func TestFlyingAircraftAdvancesPosition(t *testing.T) {
	e := New(DefaultConfig(), oneAirportWorld(), testLogger(t))
	ac := &aviation.Aircraft{
		ID: "A1", Pos: smath.Point2f{0, 0}, Heading: 90, Altitude: 10000, Speed: 300,
		Target:      aviation.Target{Heading: 90, Altitude: 10000, Speed: 300},
		State:       aviation.NewFlyingState(),
		Segment:     aviation.SegCruise,
		Performance: aviation.DefaultPerformance(),
		FlightPlan:  aviation.NewFlightPlan("KTST", "KTST", 1),
	}
	e.Game.Aircraft = append(e.Game.Aircraft, ac)

	if _, err := e.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ac.Pos[0] <= 0 {
		t.Fatalf("expected eastbound aircraft to move in +x, got %v", ac.Pos)
	}
}

func TestGoAroundReturnsToFlyingWithClimbAndSpeedEvents(t *testing.T) {
	e := New(DefaultConfig(), oneAirportWorld(), testLogger(t))
	ac := &aviation.Aircraft{
		ID: "A1", Pos: smath.Point2f{-500, 0}, Heading: 90, Altitude: 500, Speed: 140,
		Target:      aviation.Target{Heading: 90, Altitude: 0, Speed: 140},
		Segment:     aviation.SegApproach,
		Performance: aviation.DefaultPerformance(),
	}
	ac.State = aviation.NewLandingState(aviation.Runway{ID: "09", Pos: smath.Point2f{0, 0}, End: smath.Point2f{10000, 0}})
	e.Game.Aircraft = append(e.Game.Aircraft, ac)

	e.QueueEvent(aviation.Event{ID: "A1", Kind: aviation.EvGoAround})
	events, err := e.Tick(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ac.State.Kind != aviation.StateFlying {
		t.Fatalf("expected Flying after go-around, got %v", ac.State.Kind)
	}

	var sawClimb, sawSpeed bool
	for _, e := range events {
		if e.ID == "A1" && e.Kind == aviation.EvAltitudeAtOrAbove && e.Float == 3000 {
			sawClimb = true
		}
		if e.ID == "A1" && e.Kind == aviation.EvSpeedAtOrAbove && e.Float == 250 {
			sawSpeed = true
		}
	}
	if !sawClimb || !sawSpeed {
		t.Fatalf("expected go-around climb/speed events, got %+v", events)
	}
}

func TestSnapshotRestoreIsolatesMutation(t *testing.T) {
	e := New(DefaultConfig(), oneAirportWorld(), testLogger(t))
	ac := &aviation.Aircraft{ID: "A1", Pos: smath.Point2f{0, 0}, Performance: aviation.DefaultPerformance(), State: aviation.NewFlyingState()}
	e.Game.Aircraft = append(e.Game.Aircraft, ac)

	snap, err := e.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	e.Game.Aircraft[0].Pos = smath.Point2f{9999, 9999}

	if snap.Game.Aircraft[0].Pos != (smath.Point2f{0, 0}) {
		t.Fatalf("snapshot was mutated by a later change to the live engine: %v", snap.Game.Aircraft[0].Pos)
	}

	if err := e.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if e.Game.Aircraft[0].Pos != (smath.Point2f{0, 0}) {
		t.Fatalf("expected restore to roll position back, got %v", e.Game.Aircraft[0].Pos)
	}
}
