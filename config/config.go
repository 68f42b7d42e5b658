package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/plus3/sailsim/sim"
)

type Config struct {
	Physics  PhysicsConfig     `toml:"physics" yaml:"physics"`
	Keys     map[string]string `toml:"keys" yaml:"keys"` // logical control -> ebiten key name
	Logging  LoggingConfig     `toml:"logging" yaml:"logging"`
	Window   WindowConfig      `toml:"window" yaml:"window"`
	Headless HeadlessConfig    `toml:"headless" yaml:"headless"`
}

type PhysicsConfig struct {
	BoatMass                float64    `toml:"boat_mass" yaml:"boat_mass"`
	BoatFrictionCoefficient float64    `toml:"boat_friction_coefficient" yaml:"boat_friction_coefficient"`
	SailSecsPerRev          float64    `toml:"sail_secs_per_rev" yaml:"sail_secs_per_rev"`
	WindChangeSpeed         float64    `toml:"wind_change_speed" yaml:"wind_change_speed"`
	BoatTurnRadius          float64    `toml:"boat_turn_radius" yaml:"boat_turn_radius"`
	InitialWind             [2]float64 `toml:"initial_wind" yaml:"initial_wind"`
	SailDragCoefficient     float64    `toml:"sail_drag_coefficient" yaml:"sail_drag_coefficient"`
	TurnArcFactor           float64    `toml:"turn_arc_factor" yaml:"turn_arc_factor"` // 2π keeps the reference turn rate
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

type WindowConfig struct {
	Title       string     `toml:"title" yaml:"title"`
	Width       int        `toml:"width" yaml:"width"`
	Height      int        `toml:"height" yaml:"height"`
	GizmoAnchor [2]float64 `toml:"gizmo_anchor" yaml:"gizmo_anchor"` // world space
	Overlay     bool       `toml:"overlay" yaml:"overlay"`
}

type HeadlessConfig struct {
	Frames         int      `toml:"frames" yaml:"frames"`
	Step           float64  `toml:"step" yaml:"step"` // seconds per frame
	Hold           []string `toml:"hold" yaml:"hold"` // logical controls held for the whole run
	ResetEvery     int      `toml:"reset_every" yaml:"reset_every"`
	GCPauseMetrics bool     `toml:"gc_pause_metrics" yaml:"gc_pause_metrics"`
}

// Load reads a TOML or YAML file (chosen by extension) over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := defaults()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Physics: PhysicsConfig{
			BoatMass:                1.0,
			BoatFrictionCoefficient: 0.01,
			SailSecsPerRev:          3.0,
			WindChangeSpeed:         50.0,
			BoatTurnRadius:          400.0,
			InitialWind:             [2]float64{0, 30},
			SailDragCoefficient:     0.3,
			TurnArcFactor:           2 * math.Pi,
		},
		Keys: map[string]string{
			"reset":      "r",
			"sail-left":  "q",
			"sail-right": "e",
			"wind-up":    "w",
			"wind-down":  "s",
			"turn-left":  "a",
			"turn-right": "d",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Window: WindowConfig{
			Title:       "Sailing Simulator?!",
			Width:       1280,
			Height:      720,
			GizmoAnchor: [2]float64{300, -200},
			Overlay:     true,
		},
		Headless: HeadlessConfig{
			Frames: 600,
			Step:   1.0 / 60,
			Hold:   []string{"sail-left"},
		},
	}
}

// Constants converts the physics section into simulation constants.
func (c *Config) Constants() sim.Constants {
	p := c.Physics
	return sim.Constants{
		BoatMass:                p.BoatMass,
		BoatFrictionCoefficient: p.BoatFrictionCoefficient,
		SailSecsPerRev:          p.SailSecsPerRev,
		WindChangeSpeed:         p.WindChangeSpeed,
		BoatTurnRadius:          p.BoatTurnRadius,
		InitialWind:             mgl64.Vec2(p.InitialWind),
		SailDragCoefficient:     p.SailDragCoefficient,
		TurnArcFactor:           p.TurnArcFactor,
	}
}

// Bindings resolves the key section to logical controls. Unbound controls are omitted.
func (c *Config) Bindings() (map[sim.Key]string, error) {
	bindings := make(map[sim.Key]string, len(c.Keys))
	for name, physical := range c.Keys {
		key, err := sim.ParseKey(name)
		if err != nil {
			return nil, fmt.Errorf("keys: %w", err)
		}
		physical = strings.ToLower(strings.TrimSpace(physical))
		if physical == "" {
			continue
		}
		bindings[key] = physical
	}
	return bindings, nil
}

// HeldKeys resolves the headless hold list.
func (c *Config) HeldKeys() ([]sim.Key, error) {
	keys := make([]sim.Key, 0, len(c.Headless.Hold))
	for _, name := range c.Headless.Hold {
		key, err := sim.ParseKey(name)
		if err != nil {
			return nil, fmt.Errorf("headless.hold: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (c *Config) Validate() error {
	var errs []error
	if err := c.Constants().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Bindings(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.HeldKeys(); err != nil {
		errs = append(errs, err)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Headless.Frames < 0 || c.Headless.Step <= 0 || c.Headless.ResetEvery < 0 {
		errs = append(errs, errors.New("headless run needs frames >= 0, step > 0 and reset_every >= 0"))
	}
	return errors.Join(errs...)
}
