package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func rotate(v mgl64.Vec2, angle float64) mgl64.Vec2 {
	return mgl64.Rotate2D(angle).Mul2x1(v)
}

// projectOnto returns the projection of v onto axis. A zero axis projects to zero.
func projectOnto(v, axis mgl64.Vec2) mgl64.Vec2 {
	denom := axis.Dot(axis)
	if denom == 0 {
		return mgl64.Vec2{}
	}
	return axis.Mul(v.Dot(axis) / denom)
}

// normalizeAngle wraps a into (-π, π].
func normalizeAngle(a float64) float64 {
	a = math.Remainder(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
