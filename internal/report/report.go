// Package report renders the headless run summary.
package report

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/asteroids/asteroids"
	"github.com/plus3/asteroids/ecs"
)

type Report struct {
	// Configuration
	Frames     int
	DeltaTime  float64
	BaseScale  float64
	Workers    int
	Asteroids  int
	Predicted  float64
	Colored    float64
	PulseFinal float64

	// Results
	TotalTime     time.Duration
	FrameTime     Stats
	Scheduler     *ecs.SchedulerStats
	Storage       *ecs.StorageStats
	Summary       asteroids.Summary
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
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
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Asteroid Render Report

## Run
- **Frames:** {{.Frames}} at dt={{printf "%.4f" .DeltaTime}}s
- **Base Scale:** {{.BaseScale}}
- **Workers:** {{.Workers}}
- **Asteroids:** {{.Asteroids}} ({{pct .Colored}} colored, {{pct .Predicted}} predicted at spawn)

## Final State
- **Pulse:** {{printf "%.4f" .PulseFinal}}
- **Scale Range:** {{printf "%.3f" .Summary.MinScale}} .. {{printf "%.3f" .Summary.MaxScale}}
- **Predicted:** {{.Summary.Predicted}}
- **Predicted Tint:** {{.Summary.PredictedTinted}}
- **Neutral Tint:** {{.Summary.NeutralTinted}}
- **Uncolored:** {{.Summary.Uncolored}}

## Frame Time
- **Total:** {{.TotalTime}}
- **Avg:** {{.FrameTime.Avg}}
- **Min:** {{.FrameTime.Min}}
- **Max:** {{.FrameTime.Max}}

## Systems
{{range .Scheduler.Systems}}- {{.Name}} [{{.Phase}}] runs={{.ExecutionCount}} skips={{.SkipCount}} avg={{.AvgDuration}} max={{.MaxDuration}}
{{end}}
## Storage
- Archetypes: {{.Storage.ArchetypeCount}}
- Entities: {{.Storage.TotalEntityCount}}
{{range .Storage.ArchetypeBreakdown}}  - {{.EntityCount}} x {{.Components}}
{{end}}
## Memory
- Heap Alloc: {{.MemStatsStart.HeapAlloc}} -> {{.MemStatsEnd.HeapAlloc}} (delta {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}})
- Num GC:     {{.MemStatsStart.NumGC}} -> {{.MemStatsEnd.NumGC}}
`

var funcs = template.FuncMap{
	"pct": func(v float64) string {
		return fmt.Sprintf("%.0f%%", v*100)
	},
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
}

var tmpl = template.Must(template.New("report").Funcs(funcs).Parse(reportTemplate))

func (r *Report) Generate(w io.Writer) error {
	return tmpl.Execute(w, r)
}
