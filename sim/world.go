package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/plus3/sailsim/ecs"
)

const instrumentationName = "github.com/plus3/sailsim/sim"

// spawnTransform is the hull's spawn pose.
var spawnTransform = Transform{}

type worldOptions struct {
	logger *zap.Logger
	meter  metric.Meter
}

// Option configures a World.
type Option func(*worldOptions)

// WithLogger sets the logger shared by the scheduler and the systems.
func WithLogger(logger *zap.Logger) Option {
	return func(o *worldOptions) {
		o.logger = logger
	}
}

// WithMeter sets the meter used for scheduler and reset instruments.
func WithMeter(meter metric.Meter) Option {
	return func(o *worldOptions) {
		o.meter = meter
	}
}

// World owns the storage, the schedule and the two entities of the simulation.
type World struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	logger    *zap.Logger

	ship ecs.EntityId
	sail ecs.EntityId

	wind      *ecs.Resource[Wind]
	constants *ecs.Resource[Constants]
	resets    *ecs.Events[ResetEvent]

	input *InputSystem
	reset *ResetSystem

	// requested resets are sent when the next frame starts, so a request made
	// while a frame is being flushed is not cleared with that frame's events
	requested int
}

// NewWorld validates constants, spawns the ship and its sail and registers the
// systems in their fixed order: input, wind, circular motion, friction,
// integration, reset.
func NewWorld(constants Constants, controls ControlState, opts ...Option) (*World, error) {
	if err := constants.Validate(); err != nil {
		return nil, err
	}

	o := worldOptions{
		logger: zap.NewNop(),
		meter:  otel.Meter(instrumentationName),
	}
	for _, opt := range opts {
		opt(&o)
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	w := &World{
		storage:   storage,
		scheduler: ecs.NewScheduler(storage, ecs.WithLogger(o.logger), ecs.WithMeter(o.meter)),
		logger:    o.logger,
		constants: ecs.NewResource(storage, constants),
		wind:      ecs.NewResource(storage, Wind{constants.InitialWind}),
		resets:    ecs.NewEvents[ResetEvent](storage),
	}

	b, err := spawnBoat(storage, "Ship", "Sail", spawnTransform, constants.SailDragCoefficient)
	if err != nil {
		return nil, err
	}
	w.ship, w.sail = b.Hull, b.Sail

	w.input = &InputSystem{Controls: controls}
	w.reset = NewResetSystem(o.logger.Named("reset"), o.meter)

	w.scheduler.Register(w.input)
	w.scheduler.Register(&WindSystem{})
	w.scheduler.Register(&CircularMotionSystem{})
	w.scheduler.Register(&FrictionSystem{})
	w.scheduler.Register(&IntegrationSystem{})
	w.scheduler.Register(w.reset)

	o.logger.Info("world created",
		zap.Uint64("ship", uint64(w.ship)),
		zap.Uint64("sail", uint64(w.sail)),
		zap.Float64s("wind", constants.InitialWind[:]),
	)
	return w, nil
}

// Step advances the simulation by dt seconds. Negative or NaN deltas are treated as zero.
func (w *World) Step(dt float64) {
	if math.IsNaN(dt) || dt < 0 {
		dt = 0
	}
	for ; w.requested > 0; w.requested-- {
		w.resets.Send(ResetEvent{})
	}
	w.scheduler.Once(dt)
}

// SetControls replaces the control source read by the input system.
func (w *World) SetControls(controls ControlState) {
	w.input.Controls = controls
}

// RequestReset queues a reset for the next Step. It is safe to call from
// deferred commands and from outside the frame.
func (w *World) RequestReset() {
	w.requested++
}

// Resets returns how many resets have been applied.
func (w *World) Resets() int {
	return w.reset.Applied()
}

func (w *World) Storage() *ecs.Storage {
	return w.storage
}

func (w *World) Scheduler() *ecs.Scheduler {
	return w.scheduler
}

func (w *World) Ship() ecs.EntityId {
	return w.ship
}

func (w *World) Sail() ecs.EntityId {
	return w.sail
}

func (w *World) Wind() mgl64.Vec2 {
	return w.wind.Get().Vec2
}

func (w *World) Constants() Constants {
	return *w.constants.Get()
}

// ShipTransform returns the hull's pose.
func (w *World) ShipTransform() Transform {
	return *ecs.ReadComponent[Transform](w.storage, w.ship)
}

// SailTransform returns the sail's pose in world space.
func (w *World) SailTransform() Transform {
	t, _ := WorldTransform(w.storage, w.sail)
	return t
}

// SailLocalTransform returns the sail's pose relative to the hull.
func (w *World) SailLocalTransform() Transform {
	return *ecs.ReadComponent[Transform](w.storage, w.sail)
}

func (w *World) ShipVelocity() mgl64.Vec2 {
	return ecs.ReadComponent[Velocity](w.storage, w.ship).Vec2
}

func (w *World) TurnRadius() TurnRadius {
	return *ecs.ReadComponent[TurnRadius](w.storage, w.ship)
}

// WorldTransform composes the transform of id with those of its ancestors.
// It returns false if id has no Transform.
func WorldTransform(storage *ecs.Storage, id ecs.EntityId) (Transform, bool) {
	local := ecs.ReadComponent[Transform](storage, id)
	if local == nil {
		return Transform{}, false
	}

	result := *local
	for parent, ok := storage.Parent(id); ok; parent, ok = storage.Parent(parent) {
		pt := ecs.ReadComponent[Transform](storage, parent)
		if pt == nil {
			break
		}
		result = pt.Compose(result)
	}
	return result, true
}
