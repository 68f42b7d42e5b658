package main

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/sailsim/config"
	"github.com/plus3/sailsim/sim"
)

// runHeadless steps the world at a fixed rate with the configured controls
// held down and writes a report to out.
func runHeadless(cfg *config.Config, log *zap.Logger, out io.Writer) error {
	held, err := cfg.HeldKeys()
	if err != nil {
		return err
	}

	var keys sim.KeyState
	names := make([]string, 0, len(held))
	for _, k := range held {
		keys.Press(k)
		names = append(names, k.String())
	}

	world, err := sim.NewWorld(cfg.Constants(), &keys, sim.WithLogger(log))
	if err != nil {
		return fmt.Errorf("create world: %w", err)
	}

	report := &Report{
		Frames:         cfg.Headless.Frames,
		Step:           cfg.Headless.Step,
		Held:           names,
		ResetEvery:     cfg.Headless.ResetEvery,
		GCPauseMetrics: cfg.Headless.GCPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0, cfg.Headless.Frames),
		},
	}

	log.Info("headless run started", zap.Int("frames", report.Frames), zap.Strings("held", names))

	runtime.ReadMemStats(&report.MemStatsStart)
	startTime := time.Now()
	for frame := 1; frame <= report.Frames; frame++ {
		if report.ResetEvery > 0 && frame%report.ResetEvery == 0 {
			world.RequestReset()
		}

		before, resets := world.ShipTransform().Position, world.Resets()
		updateStart := time.Now()
		world.Step(report.Step)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

		// a reset teleports the hull, which is not sailing
		if world.Resets() == resets {
			report.Distance += world.ShipTransform().Position.Sub(before).Len()
		}
		report.MaxSpeed = max(report.MaxSpeed, world.ShipVelocity().Len())
		report.SimTime += report.Step
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.capture(world)

	log.Info("headless run finished", zap.Duration("elapsed", report.TotalTime), zap.Int("resets", report.Resets))

	return report.Generate(out)
}
