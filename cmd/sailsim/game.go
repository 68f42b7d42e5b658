package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/sailsim/config"
	"github.com/plus3/sailsim/ecs"
	"github.com/plus3/sailsim/ecs/debugui"
	debugui_ebiten "github.com/plus3/sailsim/ecs/debugui/ebiten"
	"github.com/plus3/sailsim/sim"
)

// Game implements ebiten.Game. One Update is one simulation frame.
type Game struct {
	world    *sim.World
	camera   *camera
	renderer *renderer
	imgui    *ecs.Resource[debugui_ebiten.ImguiBackend]
}

func (g *Game) Update() error {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	dt := 1.0 / float64(tps)
	if g.imgui == nil {
		g.world.Step(dt)
		return nil
	}
	g.imgui.Get().Frame(func() {
		g.world.Step(dt)
	})
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.draw(screen, g.world)
	if g.imgui != nil {
		g.imgui.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.camera.width, g.camera.height = outsideWidth, outsideHeight
	if g.imgui != nil {
		g.imgui.Get().Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func runWindow(cfg *config.Config, log *zap.Logger) error {
	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}
	controls, err := newKeyboard(bindings)
	if err != nil {
		return err
	}

	world, err := sim.NewWorld(cfg.Constants(), controls, sim.WithLogger(log))
	if err != nil {
		return fmt.Errorf("create world: %w", err)
	}
	storage := world.Storage()

	cam := &camera{width: cfg.Window.Width, height: cfg.Window.Height}
	mouse := ecs.NewResource[MousePos](storage)
	world.Scheduler().Register(&MouseTrackerSystem{Source: ebitenMouse{}, Camera: cam})

	game := &Game{
		world:    world,
		camera:   cam,
		renderer: newRenderer(cam, mgl64.Vec2(cfg.Window.GizmoAnchor)),
	}

	if cfg.Window.Overlay {
		game.imgui = ecs.NewResource(storage, debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height))
		attachOverlay(world, mouse)
		controls.capture = ecs.NewResource[debugui.ImguiInputState](storage)
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Info("window opened",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Bool("overlay", cfg.Window.Overlay),
	)
	return ebiten.RunGame(game)
}
