package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/plus3/sailsim/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML or YAML config file. Defaults are used when empty.")
	headless := flag.Bool("headless", false, "Run without a window and print a report.")
	overlay := flag.Bool("overlay", true, "Show the Dear ImGui debug overlay.")
	frames := flag.Int("frames", 0, "Override the number of headless frames.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the headless report.")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if *frames > 0 {
		cfg.Headless.Frames = *frames
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "overlay":
			cfg.Window.Overlay = *overlay
		case "gc-pause-metrics":
			cfg.Headless.GCPauseMetrics = *gcPauseMetrics
		}
	})

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("configuration loaded",
		zap.String("path", *configPath),
		zap.Bool("headless", *headless),
		zap.Any("physics", cfg.Physics),
	)

	if *headless {
		return runHeadless(cfg, log, os.Stdout)
	}
	return runWindow(cfg, log)
}
