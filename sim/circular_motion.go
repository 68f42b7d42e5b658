package sim

import (
	"reflect"

	"github.com/plus3/sailsim/ecs"
)

// CircularMotionSystem turns bodies with a finite TurnRadius. Heading and
// velocity rotate by the same angle, so speed is unchanged.
type CircularMotionSystem struct {
	Constants ecs.Resource[Constants]
	Bodies    ecs.Query[struct {
		*Transform
		*Velocity
		*TurnRadius
	}]
}

func (s *CircularMotionSystem) Execute(frame *ecs.UpdateFrame) {
	constants := s.Constants.Get()
	if constants == nil {
		return
	}

	for body := range s.Bodies.Values() {
		radius := *body.TurnRadius
		if !radius.Turning() {
			continue
		}
		arc := body.Velocity.Mul(frame.DeltaTime).Len()
		delta := arc / float64(radius) * constants.TurnArcFactor
		if delta == 0 {
			continue
		}

		body.Transform.Rotation = normalizeAngle(body.Transform.Rotation + delta)
		body.Velocity.Vec2 = rotate(body.Velocity.Vec2, delta)
	}
}

func (s *CircularMotionSystem) Access() ecs.Access {
	return ecs.Access{
		Reads:  []reflect.Type{ecs.TypeOf[Constants](), ecs.TypeOf[TurnRadius]()},
		Writes: []reflect.Type{ecs.TypeOf[Transform](), ecs.TypeOf[Velocity]()},
	}
}
