package sim

import (
	"reflect"

	"github.com/plus3/sailsim/ecs"
)

// FrictionSystem applies quadratic drag F = -μ|v|v to every physics body.
type FrictionSystem struct {
	Constants ecs.Resource[Constants]
	Bodies    ecs.Query[struct {
		*Object
		*Velocity
	}]
}

func (s *FrictionSystem) Execute(frame *ecs.UpdateFrame) {
	constants := s.Constants.Get()
	if constants == nil {
		return
	}

	k := constants.BoatFrictionCoefficient * frame.DeltaTime / constants.BoatMass
	for body := range s.Bodies.Values() {
		v := body.Velocity.Vec2
		body.Velocity.Vec2 = v.Sub(v.Mul(k * v.Len()))
	}
}

func (s *FrictionSystem) Access() ecs.Access {
	return ecs.Access{
		Reads:  []reflect.Type{ecs.TypeOf[Constants](), ecs.TypeOf[Object]()},
		Writes: []reflect.Type{ecs.TypeOf[Velocity]()},
	}
}
