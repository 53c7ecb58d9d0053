// cmd/atcsim/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apenwarr/fixconsole"
	"github.com/goforj/godump"

	"github.com/mmp/atcsim/pkg/aviation"
	"github.com/mmp/atcsim/pkg/engine"
	"github.com/mmp/atcsim/pkg/log"
)

var (
	logLevel    = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir      = flag.String("logdir", "", "log file directory")
	assetsPath  = flag.String("assets", "", "path to a scenario JSON (or .json.zst) file")
	tickRate    = flag.Int("tickrate", aviation.DefaultTickRateTPS, "simulation ticks per second")
	minimalMode = flag.Bool("minimal", false, "run without TCAS/taxi-conflict collision checks")
	seed        = flag.Uint64("seed", 0, "deterministic RNG seed")
	dumpWorld   = flag.Bool("dump", false, "dump the loaded world and exit without running the simulation")
)

func main() {
	flag.Parse()

	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Fprintf(os.Stderr, "unable to fix console: %v\n", err)
	}

	lg := log.New(*logLevel, *logDir)

	if *assetsPath == "" {
		lg.Errorf("an -assets path is required")
		os.Exit(1)
	}

	world, err := aviation.LoadAssets(*assetsPath)
	if err != nil {
		lg.Errorf("failed to load assets: %v", err)
		os.Exit(1)
	}

	if *dumpWorld {
		godump.Dump(world)
		return
	}

	cfg := engine.Config{TickRateTPS: *tickRate, Mode: engine.ModeFull, Seed: *seed}
	if *minimalMode {
		cfg.Mode = engine.ModeMinimal
	}

	e := engine.New(cfg, world, lg)
	lg.Infof("engine %s starting with %d airports at %d tps", e.SessionID, len(world.Airports), cfg.TickRateTPS)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		lg.Infof("caught signal, shutting down")
		cancel()
	}()

	interval := time.Second / time.Duration(cfg.TickRateTPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			events, err := e.Tick(ctx)
			if err != nil {
				lg.Errorf("tick failed: %v", err)
				return
			}
			for _, ev := range events {
				lg.Debugf("event: %+v", ev)
			}
		}
	}
}
