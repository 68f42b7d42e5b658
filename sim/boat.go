package sim

import (
	"fmt"

	"github.com/plus3/sailsim/ecs"
)

// boat is a hull and the sail attached to it.
type boat struct {
	Hull ecs.EntityId
	Sail ecs.EntityId
}

// spawnBoat spawns a hull at pose, at rest and sailing straight, and a sail
// parented to it at the hull's origin. Both remember their spawn pose for resets.
func spawnBoat(storage *ecs.Storage, hull, sail Name, pose Transform, dragCoefficient float64) (boat, error) {
	b := boat{
		Hull: storage.Spawn(
			hull,
			Object{},
			pose,
			Velocity{},
			Straight(),
			InitialTransform{Transform: pose},
		),
		Sail: storage.Spawn(
			sail,
			Object{},
			Sail{DragCoefficient: dragCoefficient},
			Transform{},
			InitialTransform{},
		),
	}
	if !storage.SetParent(b.Sail, b.Hull) {
		return boat{}, fmt.Errorf("attach sail %d to hull %d", b.Sail, b.Hull)
	}
	return b, nil
}
