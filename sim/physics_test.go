package sim_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/plus3/sailsim/ecs"
	"github.com/plus3/sailsim/sim"
)

func TestWindSystem(t *testing.T) {
	t.Run("head on wind", func(t *testing.T) {
		f := newFixture(sim.DefaultConstants())

		f.run(1.0, &sim.WindSystem{})

		assertVec(t, mgl64.Vec2{0, 9}, f.velocity().Vec2)
	})

	t.Run("zero drag produces no force", func(t *testing.T) {
		c := sim.DefaultConstants()
		c.SailDragCoefficient = 0

		winds := []mgl64.Vec2{{0, 30}, {-12, 5}, {100, -100}}
		velocities := []mgl64.Vec2{{}, {3, 4}, {-7, 0}}
		for _, wind := range winds {
			for _, v := range velocities {
				f := newFixture(c)
				f.wind().Vec2 = wind
				f.velocity().Vec2 = v
				f.sailTransform().Rotation = 0.7

				f.run(0.5, &sim.WindSystem{})

				assertVec(t, v, f.velocity().Vec2, "wind %v velocity %v", wind, v)
			}
		}
	})

	t.Run("aligned wind keeps full drag", func(t *testing.T) {
		c := sim.DefaultConstants()
		for _, heading := range []float64{0, 0.4, math.Pi / 2, -2.5} {
			f := newFixture(c)
			f.shipTransform().Rotation = heading
			up := f.shipTransform().Up()
			f.wind().Vec2 = up.Mul(40)
			f.velocity().Vec2 = up.Mul(10)

			f.run(1.0, &sim.WindSystem{})

			gained := f.velocity().Sub(up.Mul(10)).Len()
			assert.InDelta(t, c.SailDragCoefficient*30, gained, 1e-9, "heading %v", heading)
		}
	})

	t.Run("sail rotation is relative to hull", func(t *testing.T) {
		f := newFixture(sim.DefaultConstants())
		f.shipTransform().Rotation = math.Pi / 2
		f.wind().Vec2 = mgl64.Vec2{-30, 0}

		f.run(1.0, &sim.WindSystem{})

		assertVec(t, mgl64.Vec2{-9, 0}, f.velocity().Vec2)
	})

	t.Run("sail across the hull gives no thrust", func(t *testing.T) {
		f := newFixture(sim.DefaultConstants())
		f.sailTransform().Rotation = math.Pi / 2

		f.run(1.0, &sim.WindSystem{})

		assertVec(t, mgl64.Vec2{}, f.velocity().Vec2)
	})

	t.Run("orphan sail is skipped", func(t *testing.T) {
		f := newFixture(sim.DefaultConstants())
		f.storage.RemoveParent(f.sail)

		f.run(1.0, &sim.WindSystem{})

		assertVec(t, mgl64.Vec2{}, f.velocity().Vec2)
	})

	t.Run("sail of a deleted hull is skipped", func(t *testing.T) {
		f := newFixture(sim.DefaultConstants())
		other := f.storage.Spawn(sim.Transform{}, sim.Velocity{})
		f.storage.SetParent(f.sail, other)
		f.storage.Delete(other)

		assert.NotPanics(t, func() { f.run(1.0, &sim.WindSystem{}) })
		assertVec(t, mgl64.Vec2{}, f.velocity().Vec2)
	})
}

func TestCircularMotionSystem(t *testing.T) {
	t.Run("infinite radius leaves heading and velocity", func(t *testing.T) {
		f := newFixture(sim.DefaultConstants())
		f.shipTransform().Rotation = 0.3
		f.velocity().Vec2 = mgl64.Vec2{5, -2}

		for _, dt := range []float64{0.01, 1, 10} {
			f.run(dt, &sim.CircularMotionSystem{})
		}

		assert.Equal(t, 0.3, f.shipTransform().Rotation)
		assert.Equal(t, mgl64.Vec2{5, -2}, f.velocity().Vec2)
	})

	t.Run("left turn", func(t *testing.T) {
		f := newFixture(sim.DefaultConstants())
		*ecs.ReadComponent[sim.TurnRadius](f.storage, f.ship) = 400
		f.velocity().Vec2 = mgl64.Vec2{0, 10}

		f.run(1.0, &sim.CircularMotionSystem{})

		delta := 10.0 / 400 * 2 * math.Pi
		assert.InDelta(t, delta, f.shipTransform().Rotation, 1e-12)
		assertVec(t, mgl64.Vec2{-10 * math.Sin(delta), 10 * math.Cos(delta)}, f.velocity().Vec2)
		assert.InDelta(t, 10, f.velocity().Len(), 1e-9)
	})

	t.Run("right turn", func(t *testing.T) {
		f := newFixture(sim.DefaultConstants())
		*ecs.ReadComponent[sim.TurnRadius](f.storage, f.ship) = -400
		f.velocity().Vec2 = mgl64.Vec2{0, 10}

		f.run(1.0, &sim.CircularMotionSystem{})

		assert.InDelta(t, -10.0/400*2*math.Pi, f.shipTransform().Rotation, 1e-12)
	})

	t.Run("arc factor is tunable", func(t *testing.T) {
		c := sim.DefaultConstants()
		c.TurnArcFactor = 1
		f := newFixture(c)
		*ecs.ReadComponent[sim.TurnRadius](f.storage, f.ship) = 400
		f.velocity().Vec2 = mgl64.Vec2{0, 10}

		f.run(1.0, &sim.CircularMotionSystem{})

		assert.InDelta(t, 10.0/400, f.shipTransform().Rotation, 1e-12)
	})

	t.Run("zero velocity does not turn", func(t *testing.T) {
		f := newFixture(sim.DefaultConstants())
		*ecs.ReadComponent[sim.TurnRadius](f.storage, f.ship) = 400

		f.run(1.0, &sim.CircularMotionSystem{})

		assert.Equal(t, 0.0, f.shipTransform().Rotation)
	})
}

func TestFrictionSystem(t *testing.T) {
	t.Run("quadratic drag", func(t *testing.T) {
		f := newFixture(sim.DefaultConstants())
		f.velocity().Vec2 = mgl64.Vec2{0, 10}

		f.run(1.0, &sim.FrictionSystem{})

		assertVec(t, mgl64.Vec2{0, 9}, f.velocity().Vec2)
	})

	t.Run("monotonic decay", func(t *testing.T) {
		f := newFixture(sim.DefaultConstants())
		f.velocity().Vec2 = mgl64.Vec2{30, 40}
		direction := f.velocity().Normalize()

		prev := f.velocity().Len()
		for range 200 {
			f.run(0.1, &sim.FrictionSystem{})
			speed := f.velocity().Len()
			assert.Less(t, speed, prev)
			assert.Greater(t, speed, 0.0)
			prev = speed
		}
		assertVec(t, direction, f.velocity().Normalize())
	})

	t.Run("zero velocity", func(t *testing.T) {
		f := newFixture(sim.DefaultConstants())

		f.run(1.0, &sim.FrictionSystem{})

		assert.Equal(t, mgl64.Vec2{}, f.velocity().Vec2)
	})

	t.Run("untagged bodies are ignored", func(t *testing.T) {
		f := newFixture(sim.DefaultConstants())
		drifter := f.storage.Spawn(sim.Transform{}, sim.Velocity{Vec2: mgl64.Vec2{0, 10}})

		f.run(1.0, &sim.FrictionSystem{})

		assert.Equal(t, mgl64.Vec2{0, 10}, ecs.ReadComponent[sim.Velocity](f.storage, drifter).Vec2)
	})
}

func TestIntegrationSystem(t *testing.T) {
	f := newFixture(sim.DefaultConstants())
	f.shipTransform().Position = mgl64.Vec2{1, 2}
	f.velocity().Vec2 = mgl64.Vec2{3, 4}

	f.run(0.5, &sim.IntegrationSystem{})

	assertVec(t, mgl64.Vec2{2.5, 4}, f.shipTransform().Position)
	assert.Equal(t, mgl64.Vec2{3, 4}, f.velocity().Vec2)
}

func TestResetSystem(t *testing.T) {
	disturb := func(f *fixture) {
		f.shipTransform().Position = mgl64.Vec2{120, -4}
		f.shipTransform().Rotation = 1.2
		f.sailTransform().Rotation = -0.8
		f.velocity().Vec2 = mgl64.Vec2{7, 7}
	}

	t.Run("restores snapshot", func(t *testing.T) {
		f := newFixture(sim.DefaultConstants())
		disturb(f)
		reset := sim.NewResetSystem(nil, nil)
		ecs.NewEvents[sim.ResetEvent](f.storage).Send(sim.ResetEvent{})

		f.run(0.016, reset)

		assert.Equal(t, sim.Transform{}, *f.shipTransform())
		assert.Equal(t, sim.Transform{}, *f.sailTransform())
		assert.Equal(t, mgl64.Vec2{}, f.velocity().Vec2)
		assert.Equal(t, 1, reset.Applied())
	})

	t.Run("no event no reset", func(t *testing.T) {
		f := newFixture(sim.DefaultConstants())
		disturb(f)
		reset := sim.NewResetSystem(nil, nil)

		f.run(0.016, reset)

		assert.Equal(t, 1.2, f.shipTransform().Rotation)
		assert.Equal(t, 0, reset.Applied())
	})

	t.Run("many events collapse to one", func(t *testing.T) {
		one := newFixture(sim.DefaultConstants())
		many := newFixture(sim.DefaultConstants())
		disturb(one)
		disturb(many)

		ecs.NewEvents[sim.ResetEvent](one.storage).Send(sim.ResetEvent{})
		events := ecs.NewEvents[sim.ResetEvent](many.storage)
		for range 5 {
			events.Send(sim.ResetEvent{})
		}

		resetOne := sim.NewResetSystem(nil, nil)
		resetMany := sim.NewResetSystem(nil, nil)
		one.run(0.016, resetOne)
		many.run(0.016, resetMany)

		assert.Equal(t, *one.shipTransform(), *many.shipTransform())
		assert.Equal(t, *one.sailTransform(), *many.sailTransform())
		assert.Equal(t, one.velocity().Vec2, many.velocity().Vec2)
		assert.Equal(t, 1, resetMany.Applied())
		assert.Zero(t, events.Len())
	})
}
