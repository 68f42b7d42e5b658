package sim

import (
	"context"
	"reflect"

	"github.com/go-gl/mathgl/mgl64"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"

	"github.com/plus3/sailsim/ecs"
)

// ResetEvent asks the world to return every snapshotted entity to its spawn pose.
// Any number of events in one frame collapse into a single reset.
type ResetEvent struct{}

type resetState int

const (
	resetIdle resetState = iota
	resetPending
)

// ResetSystem restores the InitialTransform of every entity that has one and
// zeroes its velocity. It runs last so it overrides the rest of the frame.
type ResetSystem struct {
	Resets   ecs.Events[ResetEvent]
	Snapshot ecs.Query[struct {
		*Transform
		*InitialTransform
		Velocity *Velocity `ecs:"optional"`
	}]

	logger  *zap.Logger
	counter metric.Int64Counter
	state   resetState
	applied int
}

// NewResetSystem creates a ResetSystem. A nil logger or meter disables that output.
func NewResetSystem(logger *zap.Logger, meter metric.Meter) *ResetSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("")
	}

	counter, err := meter.Int64Counter("sail.resets", metric.WithDescription("Resets applied to the world"))
	if err != nil {
		logger.Warn("creating reset counter", zap.Error(err))
		counter = noop.Int64Counter{}
	}

	return &ResetSystem{logger: logger, counter: counter}
}

func (s *ResetSystem) Execute(frame *ecs.UpdateFrame) {
	if n := s.Resets.Drain(); n > 0 {
		s.state = resetPending
		s.logger.Debug("reset requested", zap.Int("events", n))
	}
	if s.state != resetPending {
		return
	}

	restored := 0
	for item := range s.Snapshot.Values() {
		*item.Transform = item.InitialTransform.Transform
		if item.Velocity != nil {
			item.Velocity.Vec2 = mgl64.Vec2{}
		}
		restored++
	}

	s.state = resetIdle
	s.applied++
	s.counter.Add(context.Background(), 1)
	s.logger.Info("world reset", zap.Int("entities", restored), zap.Int("total", s.applied))
}

// Applied returns how many resets have been carried out.
func (s *ResetSystem) Applied() int {
	return s.applied
}

func (s *ResetSystem) Access() ecs.Access {
	return ecs.Access{
		Reads:  []reflect.Type{ecs.TypeOf[InitialTransform](), ecs.TypeOf[ResetEvent]()},
		Writes: []reflect.Type{ecs.TypeOf[Transform](), ecs.TypeOf[Velocity]()},
	}
}
