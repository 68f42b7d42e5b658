package sim_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/plus3/sailsim/ecs"
	"github.com/plus3/sailsim/sim"
)

// fixture is a bare ship and sail without the full pipeline, so single
// systems can be exercised in isolation.
type fixture struct {
	storage *ecs.Storage
	ship    ecs.EntityId
	sail    ecs.EntityId
}

func newFixture(constants sim.Constants) *fixture {
	registry := ecs.NewComponentRegistry()
	sim.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	ecs.NewResource(storage, constants)
	ecs.NewResource(storage, sim.Wind{Vec2: constants.InitialWind})

	f := &fixture{storage: storage}
	f.ship = storage.Spawn(
		sim.Object{},
		sim.Transform{},
		sim.Velocity{},
		sim.Straight(),
		sim.InitialTransform{},
	)
	f.sail = storage.Spawn(
		sim.Sail{DragCoefficient: constants.SailDragCoefficient},
		sim.Transform{},
		sim.InitialTransform{},
	)
	storage.SetParent(f.sail, f.ship)
	return f
}

// run executes one frame of the given systems.
func (f *fixture) run(dt float64, systems ...ecs.System) {
	scheduler := ecs.NewScheduler(f.storage)
	for _, s := range systems {
		scheduler.Register(s)
	}
	scheduler.Once(dt)
}

func (f *fixture) shipTransform() *sim.Transform {
	return ecs.ReadComponent[sim.Transform](f.storage, f.ship)
}

func (f *fixture) sailTransform() *sim.Transform {
	return ecs.ReadComponent[sim.Transform](f.storage, f.sail)
}

func (f *fixture) velocity() *sim.Velocity {
	return ecs.ReadComponent[sim.Velocity](f.storage, f.ship)
}

func (f *fixture) turnRadius() sim.TurnRadius {
	return *ecs.ReadComponent[sim.TurnRadius](f.storage, f.ship)
}

func (f *fixture) wind() *sim.Wind {
	var wind *sim.Wind
	f.storage.ReadResource(&wind)
	return wind
}

func assertVec(t *testing.T, want, got mgl64.Vec2, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want[0], got[0], 1e-9, msgAndArgs...)
	assert.InDelta(t, want[1], got[1], 1e-9, msgAndArgs...)
}
