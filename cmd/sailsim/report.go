package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/sailsim/ecs"
	"github.com/plus3/sailsim/sim"
)

type Report struct {
	// Configuration
	Frames     int
	Step       float64
	Held       []string
	ResetEvery int

	// Results
	TotalTime    time.Duration
	UpdateTime   Stats
	SimTime      float64
	Distance     float64
	MaxSpeed     float64
	Resets       int
	Wind         string
	Ship         string
	Velocity     string
	Sail         string
	Systems      []ecs.SystemStats
	StorageStats *ecs.StorageStats

	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// capture copies the final world state into the report.
func (r *Report) capture(world *sim.World) {
	ship := world.ShipTransform()
	sail := world.SailTransform()
	velocity := world.ShipVelocity()
	wind := world.Wind()

	r.Resets = world.Resets()
	r.Wind = fmt.Sprintf("(%.2f, %.2f)", wind[0], wind[1])
	r.Ship = fmt.Sprintf("(%.2f, %.2f) heading %.3f rad", ship.Position[0], ship.Position[1], ship.Rotation)
	r.Velocity = fmt.Sprintf("(%.2f, %.2f) |v| %.2f", velocity[0], velocity[1], velocity.Len())
	r.Sail = fmt.Sprintf("heading %.3f rad", sail.Rotation)
	r.Systems = world.Scheduler().GetStats().Systems
	r.StorageStats = world.Storage().CollectStats()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Sailing Simulation Report

## Run Configuration
- **Frames:** {{.Frames}}
- **Step:** {{printf "%.4f" .Step}} s
- **Held Controls:** {{if .Held}}{{join .Held}}{{else}}none{{end}}
- **Reset Every:** {{if .ResetEvery}}{{.ResetEvery}} frames{{else}}never{{end}}

## Final State
- **Simulated Time:** {{printf "%.2f" .SimTime}} s
- **Wind:** {{.Wind}}
- **Ship:** {{.Ship}}
- **Velocity:** {{.Velocity}}
- **Sail:** {{.Sail}}
- **Distance Sailed:** {{printf "%.2f" .Distance}}
- **Max Speed:** {{printf "%.2f" .MaxSpeed}}
- **Resets Applied:** {{.Resets}}

## Performance Results
- **Total Run Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Systems
{{range .Systems}}- {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}} over {{.ExecutionCount}} runs
{{end}}
## Storage
- Entities: {{.StorageStats.TotalEntityCount}} in {{.StorageStats.ArchetypeCount}} archetypes
- Resources: {{.StorageStats.ResourceCount}}
- Event Queues: {{.StorageStats.EventQueueCount}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{end}}`

	fm := template.FuncMap{
		"join": func(items []string) string {
			return strings.Join(items, ", ")
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
