package main

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/sailsim/sim"
)

var (
	seaColor    = color.RGBA{R: 43, G: 43, B: 43, A: 255}
	hullColor   = color.RGBA{R: 128, A: 255}
	sailColor   = color.White
	anchorColor = color.RGBA{R: 255, A: 255}
	windColor   = color.RGBA{G: 255, A: 255}

	hullSize = mgl64.Vec2{35, 80}
	sailSize = mgl64.Vec2{75, 10}
)

type renderer struct {
	pixel  *ebiten.Image
	camera *camera
	anchor mgl64.Vec2
}

func newRenderer(cam *camera, anchor mgl64.Vec2) *renderer {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &renderer{pixel: pixel, camera: cam, anchor: anchor}
}

// rectOptions centres a unit square on t, scaled to size.
func (r *renderer) rectOptions(t sim.Transform, size mgl64.Vec2, clr color.Color) *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(size[0], size[1])
	op.GeoM.Rotate(-t.Rotation) // screen Y points down
	op.GeoM.Translate(r.camera.toScreen(t.Position))
	op.ColorScale.ScaleWithColor(clr)
	return op
}

func (r *renderer) draw(screen *ebiten.Image, world *sim.World) {
	screen.Fill(seaColor)

	screen.DrawImage(r.pixel, r.rectOptions(world.ShipTransform(), hullSize, hullColor))
	screen.DrawImage(r.pixel, r.rectOptions(world.SailTransform(), sailSize, sailColor))

	ax, ay := r.camera.toScreen(r.anchor)
	wx, wy := r.camera.toScreen(r.anchor.Add(world.Wind()))
	vector.StrokeLine(screen, float32(ax), float32(ay), float32(wx), float32(wy), 2, windColor, true)
	vector.DrawFilledCircle(screen, float32(ax), float32(ay), 5, anchorColor, true)
}
