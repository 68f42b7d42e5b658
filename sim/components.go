package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/sailsim/ecs"
)

// Transform is a 2D pose. Rotation is in radians, counter-clockwise, and the
// heading is the +Y axis rotated by it. For a child entity the transform is
// relative to its parent.
type Transform struct {
	Position mgl64.Vec2
	Rotation float64
}

// Up returns the unit heading vector.
func (t Transform) Up() mgl64.Vec2 {
	return rotate(mgl64.Vec2{0, 1}, t.Rotation)
}

// Compose returns child expressed in the space t is expressed in.
func (t Transform) Compose(child Transform) Transform {
	return Transform{
		Position: t.Position.Add(rotate(child.Position, t.Rotation)),
		Rotation: normalizeAngle(t.Rotation + child.Rotation),
	}
}

// Velocity is linear velocity in world units per second.
type Velocity struct {
	mgl64.Vec2
}

// Object tags a physics body.
type Object struct{}

// Sail marks a sail entity. It is expected to be a child of the hull it drives.
type Sail struct {
	DragCoefficient float64
}

// TurnRadius is the signed steering radius. Positive turns counter-clockwise,
// negative clockwise, infinite means straight travel.
type TurnRadius float64

// Straight returns the radius that disables turning.
func Straight() TurnRadius {
	return TurnRadius(math.Inf(1))
}

// Turning reports whether the radius describes an actual turn.
func (r TurnRadius) Turning() bool {
	f := float64(r)
	return f != 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

// InitialTransform is the spawn pose restored on reset.
type InitialTransform struct {
	Transform Transform
}

// Name labels an entity for debugging.
type Name string

// RegisterComponents registers every sim component with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Object](registry)
	ecs.RegisterComponent[Sail](registry)
	ecs.RegisterComponent[TurnRadius](registry)
	ecs.RegisterComponent[InitialTransform](registry)
	ecs.RegisterComponent[Name](registry)
}
