package ecs

import (
	"context"
	"reflect"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/plus3/sailsim/ecs"

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (s *systemStatsInternal) record(d time.Duration) {
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d
	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

// SystemPlan describes one step of the schedule.
type SystemPlan struct {
	Name     string
	Access   Access
	Declared bool // false when the system does not implement AccessDeclarer
}

// initializer is implemented by Query, Resource and Events fields.
type initializer interface {
	Init(storage *Storage)
}

// queryExecutor is implemented by Query fields.
type queryExecutor interface {
	Execute()
}

type registeredSystem struct {
	name    string
	system  System
	queries []queryExecutor
	stats   systemStatsInternal
	attrs   metric.MeasurementOption
}

// Scheduler manages and executes systems in registration order.
type Scheduler struct {
	storage *Storage
	systems []*registeredSystem
	frames  int64

	logger         *zap.Logger
	meter          metric.Meter
	frameCounter   metric.Int64Counter
	systemDuration metric.Float64Histogram
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithLogger sets the logger used for registration and diagnostics.
func WithLogger(logger *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithMeter sets the meter used for frame and system instruments.
// By default the global OpenTelemetry meter is used, which is a no-op until a
// provider is installed.
func WithMeter(meter metric.Meter) SchedulerOption {
	return func(s *Scheduler) {
		s.meter = meter
	}
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		storage: storage,
		logger:  zap.NewNop(),
		meter:   otel.Meter(instrumentationName),
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	s.frameCounter, err = s.meter.Int64Counter(
		"ecs.frames",
		metric.WithDescription("Frames executed by the scheduler"),
	)
	if err != nil {
		s.logger.Warn("creating frame counter", zap.Error(err))
		s.frameCounter = noop.Int64Counter{}
	}

	s.systemDuration, err = s.meter.Float64Histogram(
		"ecs.system.duration",
		metric.WithDescription("Execution time of a single system"),
		metric.WithUnit("s"),
	)
	if err != nil {
		s.logger.Warn("creating system duration histogram", zap.Error(err))
		s.systemDuration = noop.Float64Histogram{}
	}

	return s
}

// Register appends a system to the schedule and initializes its Query,
// Resource and Events fields.
func (s *Scheduler) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	rs := &registeredSystem{
		name:   systemType.Name(),
		system: system,
		stats:  systemStatsInternal{minDuration: time.Duration(1<<63 - 1)},
		attrs:  metric.WithAttributes(attribute.String("system", systemType.Name())),
	}
	rs.queries = s.initializeFields(system)
	s.systems = append(s.systems, rs)

	s.logger.Debug("system registered",
		zap.String("system", rs.name),
		zap.Int("position", len(s.systems)-1),
		zap.Int("queries", len(rs.queries)),
	)
}

func (s *Scheduler) initializeFields(system System) []queryExecutor {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}
	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []queryExecutor
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		target := field.Addr().Interface()
		initField, ok := target.(initializer)
		if !ok {
			continue
		}
		initField.Init(s.storage)

		if q, ok := target.(queryExecutor); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Once executes all registered systems once with the given delta time, then
// flushes the frame's commands and clears every event queue.
func (s *Scheduler) Once(dt float64) {
	ctx := context.Background()
	frame := newUpdateFrame(dt, s.storage)

	for _, rs := range s.systems {
		for _, q := range rs.queries {
			q.Execute()
		}

		start := time.Now()
		rs.system.Execute(frame)
		duration := time.Since(start)

		rs.stats.record(duration)
		s.systemDuration.Record(ctx, duration.Seconds(), rs.attrs)
	}

	frame.Commands.Flush(s.storage)
	s.storage.ClearEvents()

	s.frames++
	s.frameCounter.Add(ctx, 1)
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Plan returns the schedule in execution order with each system's declared access.
func (s *Scheduler) Plan() []SystemPlan {
	plan := make([]SystemPlan, len(s.systems))
	for i, rs := range s.systems {
		plan[i].Name = rs.name
		if d, ok := rs.system.(AccessDeclarer); ok {
			plan[i].Access = d.Access()
			plan[i].Declared = true
		}
	}
	return plan
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, rs := range s.systems {
		internal := rs.stats
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           rs.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		stats.TotalExecutions += internal.executionCount
	}

	return stats
}
