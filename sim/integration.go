package sim

import (
	"reflect"

	"github.com/plus3/sailsim/ecs"
)

// IntegrationSystem advances positions by velocity. Velocity is never modified here.
type IntegrationSystem struct {
	Bodies ecs.Query[struct {
		*Transform
		*Velocity
	}]
}

func (s *IntegrationSystem) Execute(frame *ecs.UpdateFrame) {
	for body := range s.Bodies.Values() {
		body.Transform.Position = body.Transform.Position.Add(body.Velocity.Mul(frame.DeltaTime))
	}
}

func (s *IntegrationSystem) Access() ecs.Access {
	return ecs.Access{
		Reads:  []reflect.Type{ecs.TypeOf[Velocity]()},
		Writes: []reflect.Type{ecs.TypeOf[Transform]()},
	}
}
