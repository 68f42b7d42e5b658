package main

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/sailsim/ecs"
)

// MousePos records where the mouse buttons were pressed, in world space.
type MousePos struct {
	LastLeft     mgl64.Vec2
	LastRight    mgl64.Vec2
	CurrentLeft  mgl64.Vec2
	CurrentRight mgl64.Vec2
	LeftPressed  bool
	RightPressed bool
}

type mouseSource interface {
	CursorPosition() (int, int)
	Pressed(button ebiten.MouseButton) bool
	JustPressed(button ebiten.MouseButton) bool
}

type ebitenMouse struct{}

func (ebitenMouse) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenMouse) Pressed(button ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(button)
}

func (ebitenMouse) JustPressed(button ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(button)
}

type MouseTrackerSystem struct {
	Source mouseSource
	Camera *camera
	Mouse  ecs.Resource[MousePos]
}

func (m *MouseTrackerSystem) Execute(frame *ecs.UpdateFrame) {
	mouse := m.Mouse.Get()
	if mouse == nil || m.Source == nil || m.Camera == nil {
		return
	}
	pos := m.Camera.toWorld(m.Source.CursorPosition())

	if m.Source.JustPressed(ebiten.MouseButtonLeft) {
		mouse.LastLeft = pos
	}
	if m.Source.JustPressed(ebiten.MouseButtonRight) {
		mouse.LastRight = pos
	}

	mouse.LeftPressed = m.Source.Pressed(ebiten.MouseButtonLeft)
	if mouse.LeftPressed {
		mouse.CurrentLeft = pos
	}
	mouse.RightPressed = m.Source.Pressed(ebiten.MouseButtonRight)
	if mouse.RightPressed {
		mouse.CurrentRight = pos
	}
}
