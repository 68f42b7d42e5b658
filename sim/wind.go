package sim

import (
	"reflect"

	"github.com/plus3/sailsim/ecs"
)

// WindSystem pushes each sailed hull along its heading with the component of
// the sail's drag that the hull can use.
type WindSystem struct {
	Constants ecs.Resource[Constants]
	Wind      ecs.Resource[Wind]
	Sails     ecs.Query[struct {
		ecs.EntityId
		*Sail
		*Transform
	}]
}

func (s *WindSystem) Execute(frame *ecs.UpdateFrame) {
	wind := s.Wind.Get()
	constants := s.Constants.Get()
	if wind == nil || constants == nil {
		return
	}

	for sail := range s.Sails.Values() {
		hull, ok := frame.Storage.Parent(sail.EntityId)
		if !ok {
			continue
		}
		hullTransform := ecs.ReadComponent[Transform](frame.Storage, hull)
		hullVelocity := ecs.ReadComponent[Velocity](frame.Storage, hull)
		if hullTransform == nil || hullVelocity == nil {
			continue
		}

		apparent := wind.Sub(hullVelocity.Vec2)
		sailUp := hullTransform.Compose(*sail.Transform).Up()
		sailForce := projectOnto(apparent, sailUp).Mul(sail.DragCoefficient)
		hullForce := projectOnto(sailForce, hullTransform.Up())

		hullVelocity.Vec2 = hullVelocity.Add(hullForce.Mul(frame.DeltaTime / constants.BoatMass))
	}
}

func (s *WindSystem) Access() ecs.Access {
	return ecs.Access{
		Reads:  []reflect.Type{ecs.TypeOf[Constants](), ecs.TypeOf[Wind](), ecs.TypeOf[Sail](), ecs.TypeOf[Transform]()},
		Writes: []reflect.Type{ecs.TypeOf[Velocity]()},
	}
}
