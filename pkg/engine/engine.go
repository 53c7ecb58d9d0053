// pkg/engine/engine.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package engine drives the deterministic per-tick simulation loop:
// applying inbound events, running kinematics and automation, and
// producing the tick's outbound event buffer.
package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/mmp/atcsim/pkg/aviation"
	"github.com/mmp/atcsim/pkg/log"
	"github.com/mmp/atcsim/pkg/rand"
)

// Mode mirrors the reference engine's collision-check toggle: Minimal
// skips the TCAS and taxi-conflict passes entirely (useful for replay
// or load testing), Full runs everything.
type Mode int

const (
	ModeMinimal Mode = iota
	ModeFull
)

func (m Mode) RunCollisions() bool { return m == ModeFull }

type Config struct {
	TickRateTPS int
	Mode        Mode
	Seed        uint64
}

func DefaultConfig() Config {
	return Config{TickRateTPS: aviation.DefaultTickRateTPS, Mode: ModeFull}
}

// Engine owns the single mutable copy of World/Game state plus the
// inbound/outbound event buffers and the one RNG the whole simulation
// draws from.
type Engine struct {
	Config Config
	Logger *log.Logger
	Rand   *rand.Rand

	World *aviation.World
	Game  *aviation.Game

	SessionID string

	events      []aviation.Event
	tickCounter uint64

	paused bool
}

func New(cfg Config, world *aviation.World, lg *log.Logger) *Engine {
	return &Engine{
		Config:    cfg,
		Logger:    lg,
		Rand:      rand.New(cfg.Seed),
		World:     world,
		Game:      &aviation.Game{},
		SessionID: uuid.NewString(),
	}
}

func (e *Engine) TickCounter() uint64 { return e.tickCounter }

// AddAircraft inserts an aircraft, reassigning its id if a collision
// with an existing aircraft id occurs (the engine's RNG is the only
// legitimate source of such a replacement callsign, keeping tie-break
// order deterministic).
func (e *Engine) AddAircraft(a *aviation.Aircraft, randomCallsign func(*rand.Rand) string) {
	for e.Game.Find(a.ID) != nil {
		a.ID = randomCallsign(e.Rand)
	}
	e.Game.Aircraft = append(e.Game.Aircraft, a)
}

// QueueEvent adds an inbound event to be applied on the next Tick.
func (e *Engine) QueueEvent(ev aviation.Event) {
	e.events = append(e.events, ev)
}

// SetPaused sets the pause latch; while it is set, Tick returns nil
// without advancing the simulation.
func (e *Engine) SetPaused(p bool) { e.paused = p }
func (e *Engine) Paused() bool     { return e.paused }

// Tick runs exactly one fixed-size simulation step and returns every
// event it produced. Calling Tick while paused is an idempotent no-op:
// it returns nil without mutating World/Game/tickCounter, so repeated
// calls while paused never diverge from a single call.
func (e *Engine) Tick(ctx context.Context) ([]aviation.Event, error) {
	if len(e.World.Airports) == 0 {
		return nil, aviation.ErrNotReady
	}
	if e.paused {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dt := 1.0 / float32(e.Config.TickRateTPS)

	var out []aviation.Event

	if e.Config.Mode.RunCollisions() {
		out = append(out, aviation.HandleTCAS(e.Game)...)
	}

	for _, ac := range e.Game.Aircraft {
		for _, ev := range e.events {
			if ev.ID == ac.ID {
				aviation.HandleAircraftEvent(ac, ev, &out, e.World, e.Rand, e.Logger)
			}
		}

		aviation.UpdateTaxiing(ac, &out)
		aviation.UpdateLanding(ac, &out)
		aviation.UpdateFlying(ac, &out)

		aviation.UpdateFromTargets(ac, dt)
		aviation.UpdatePosition(ac, dt)
		aviation.UpdateAirspace(ac, e.World)
		aviation.UpdateSegment(ac, e.World, &out)
	}

	aviation.ComputeAvailableGates(e.World, e.Game)

	aviation.UpdateAutoApproach(e.World, e.Game, &out, e.Logger)
	aviation.UpdateAutoGround(e.World, e.Game, &out, e.Logger)

	if e.Config.Mode.RunCollisions() {
		out = append(out, aviation.TaxiCollisions(e.World, e.Game)...)
	}

	applyDeletions(e.Game, out)

	e.tickCounter++
	e.events = out

	return append([]aviation.Event(nil), out...), nil
}

func applyDeletions(game *aviation.Game, events []aviation.Event) {
	for _, ev := range events {
		if ev.Kind == aviation.EvDelete {
			game.Remove(ev.ID)
		}
	}
}
