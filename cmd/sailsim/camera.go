package main

import "github.com/go-gl/mathgl/mgl64"

// camera maps world space (origin at the screen centre, +Y up) to screen pixels.
type camera struct {
	width, height int
}

func (c *camera) toScreen(p mgl64.Vec2) (float64, float64) {
	return float64(c.width)/2 + p[0], float64(c.height)/2 - p[1]
}

func (c *camera) toWorld(x, y int) mgl64.Vec2 {
	return mgl64.Vec2{float64(x) - float64(c.width)/2, float64(c.height)/2 - float64(y)}
}
