package main

import (
	"fmt"
	"math"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/sailsim/ecs"
	"github.com/plus3/sailsim/ecs/debugui"
	"github.com/plus3/sailsim/sim"
)

// attachOverlay registers the ImGui system and spawns the debug panels.
func attachOverlay(world *sim.World, mouse *ecs.Resource[MousePos]) {
	storage := world.Storage()
	debugui.RegisterComponents(storage.Registry())
	ecs.NewResource[debugui.ImguiInputState](storage)

	world.Scheduler().Register(&debugui.ImguiSystem{})

	storage.Spawn(debugui.ImguiItem{Render: func() { renderSimPanel(world, mouse.Get()) }})
	storage.Spawn(debugui.NewStatsPanel(storage, world.Scheduler(), 120).Item())
	storage.Spawn(debugui.NewEntityPanel(storage, func(id ecs.EntityId) string {
		if name := ecs.ReadComponent[sim.Name](storage, id); name != nil {
			return string(*name)
		}
		return ""
	}).Item())
}

func renderSimPanel(world *sim.World, mouse *MousePos) {
	if !imgui.BeginV("Simulation", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	wind := world.Wind()
	ship := world.ShipTransform()
	sail := world.SailLocalTransform()
	velocity := world.ShipVelocity()

	imgui.Text(fmt.Sprintf("Wind: (%.1f, %.1f)", wind[0], wind[1]))
	imgui.Text(fmt.Sprintf("Ship: (%.1f, %.1f) %.1f°", ship.Position[0], ship.Position[1], ship.Rotation*180/math.Pi))
	imgui.Text(fmt.Sprintf("Speed: %.2f (%.2f, %.2f)", velocity.Len(), velocity[0], velocity[1]))
	imgui.Text(fmt.Sprintf("Sail trim: %.1f°", sail.Rotation*180/math.Pi))
	if r := world.TurnRadius(); r.Turning() {
		imgui.Text(fmt.Sprintf("Turn radius: %.0f", float64(r)))
	} else {
		imgui.Text("Turn radius: straight")
	}
	imgui.Text(fmt.Sprintf("Resets: %d", world.Resets()))
	if imgui.Button("Reset") {
		world.RequestReset()
	}

	if mouse != nil {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Left: (%.0f, %.0f) held=%t last=(%.0f, %.0f)",
			mouse.CurrentLeft[0], mouse.CurrentLeft[1], mouse.LeftPressed, mouse.LastLeft[0], mouse.LastLeft[1]))
		imgui.Text(fmt.Sprintf("Right: (%.0f, %.0f) held=%t last=(%.0f, %.0f)",
			mouse.CurrentRight[0], mouse.CurrentRight[1], mouse.RightPressed, mouse.LastRight[0], mouse.LastRight[1]))
	}

	imgui.End()
}
