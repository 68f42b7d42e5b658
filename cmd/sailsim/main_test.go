package main

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/plus3/sailsim/config"
	"github.com/plus3/sailsim/ecs"
	"github.com/plus3/sailsim/sim"
)

func TestRunHeadless(t *testing.T) {
	cfg := config.Default()
	cfg.Headless.Frames = 120
	cfg.Headless.Hold = []string{"sail-left", "turn-left"}
	cfg.Headless.ResetEvery = 100

	var out bytes.Buffer
	require.NoError(t, runHeadless(cfg, zaptest.NewLogger(t), &out))

	report := out.String()
	assert.Contains(t, report, "# Sailing Simulation Report")
	assert.Contains(t, report, "- **Frames:** 120")
	assert.Contains(t, report, "sail-left, turn-left")
	assert.Contains(t, report, "- **Resets Applied:** 1")
	assert.Contains(t, report, "- InputSystem: avg")
	assert.Contains(t, report, "- ResetSystem: avg")
	assert.Contains(t, report, "## Memory Usage")
	assert.NotContains(t, report, "## GC Pause Durations")
}

func TestRunHeadlessGCPauseMetrics(t *testing.T) {
	cfg := config.Default()
	cfg.Headless.Frames = 10
	cfg.Headless.GCPauseMetrics = true

	var out bytes.Buffer
	require.NoError(t, runHeadless(cfg, zaptest.NewLogger(t), &out))
	assert.Contains(t, out.String(), "## GC Pause Durations")
}

func TestRunHeadlessRejectsUnknownControl(t *testing.T) {
	cfg := config.Default()
	cfg.Headless.Hold = []string{"jibe"}

	err := runHeadless(cfg, zaptest.NewLogger(t), &bytes.Buffer{})
	assert.ErrorContains(t, err, "jibe")
}

func TestCamera(t *testing.T) {
	cam := &camera{width: 800, height: 600}

	x, y := cam.toScreen(mgl64.Vec2{0, 0})
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 300.0, y)

	x, y = cam.toScreen(mgl64.Vec2{300, -200})
	assert.Equal(t, 700.0, x)
	assert.Equal(t, 500.0, y)

	assert.Equal(t, mgl64.Vec2{300, -200}, cam.toWorld(700, 500))
}

func TestNewKeyboard(t *testing.T) {
	bindings, err := config.Default().Bindings()
	require.NoError(t, err)

	kb, err := newKeyboard(bindings)
	require.NoError(t, err)
	assert.Equal(t, ebiten.KeyR, kb.bindings[sim.KeyReset])
	assert.Equal(t, ebiten.KeyQ, kb.bindings[sim.KeySailLeft])
	assert.Equal(t, ebiten.KeyD, kb.bindings[sim.KeyTurnRight])

	kb, err = newKeyboard(map[sim.Key]string{sim.KeyReset: "space"})
	require.NoError(t, err)
	assert.Equal(t, ebiten.KeySpace, kb.bindings[sim.KeyReset])

	_, err = newKeyboard(map[sim.Key]string{sim.KeyReset: "hyper"})
	assert.ErrorContains(t, err, "hyper")
}

type fakeMouse struct {
	x, y        int
	pressed     map[ebiten.MouseButton]bool
	justPressed map[ebiten.MouseButton]bool
}

func (m *fakeMouse) CursorPosition() (int, int) { return m.x, m.y }

func (m *fakeMouse) Pressed(b ebiten.MouseButton) bool { return m.pressed[b] }

func (m *fakeMouse) JustPressed(b ebiten.MouseButton) bool { return m.justPressed[b] }

func TestMouseTrackerSystem(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	mouse := ecs.NewResource[MousePos](storage)
	source := &fakeMouse{
		x: 500, y: 200,
		pressed:     map[ebiten.MouseButton]bool{ebiten.MouseButtonLeft: true},
		justPressed: map[ebiten.MouseButton]bool{ebiten.MouseButtonLeft: true},
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MouseTrackerSystem{Source: source, Camera: &camera{width: 800, height: 600}})
	scheduler.Once(1.0 / 60)

	got := mouse.Get()
	assert.Equal(t, mgl64.Vec2{100, 100}, got.LastLeft)
	assert.Equal(t, mgl64.Vec2{100, 100}, got.CurrentLeft)
	assert.True(t, got.LeftPressed)
	assert.False(t, got.RightPressed)

	source.x, source.y = 400, 300
	source.justPressed = nil
	source.pressed = map[ebiten.MouseButton]bool{ebiten.MouseButtonRight: true}
	scheduler.Once(1.0 / 60)

	assert.Equal(t, mgl64.Vec2{100, 100}, got.LastLeft, "last press position is kept")
	assert.False(t, got.LeftPressed)
	assert.True(t, got.RightPressed)
	assert.Equal(t, mgl64.Vec2{0, 0}, got.CurrentRight)
}
