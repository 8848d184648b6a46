// Package world wires storage, systems and viewers for the client process.
package world

import (
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/asteroids/asteroids"
	"github.com/plus3/asteroids/ecs"
	"github.com/plus3/asteroids/internal/config"
	"github.com/plus3/asteroids/internal/ghost"
	"github.com/plus3/asteroids/internal/present"
	"github.com/plus3/asteroids/internal/report"
	"github.com/plus3/asteroids/internal/scenario"
	"github.com/plus3/asteroids/transform"
)

// World is one client-side asteroid world with its frame schedule.
type World struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Render    *asteroids.RenderSystem
	DrawList  *present.DrawList
	Config    asteroids.Config
	Scenario  *scenario.Scenario
}

// Build spawns the scenario and registers, in phase order, ghost ownership,
// the asteroid render pass, transform propagation and the draw list.
func Build(cfg *config.Config, sc *scenario.Scenario, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	renderCfg := cfg.RenderSystem(runtime.GOMAXPROCS(0))

	registry := ecs.NewComponentRegistry()
	asteroids.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	ids := sc.Spawn(storage, renderCfg.BaseScale)

	w := &World{
		Storage:   storage,
		Scheduler: ecs.NewScheduler(storage),
		Render:    asteroids.NewRenderSystem(renderCfg, log),
		DrawList:  &present.DrawList{},
		Config:    renderCfg,
		Scenario:  sc,
	}

	w.Scheduler.Register(ghost.NewOwnershipSystem(sc.Ownership.PredictedRatio, sc.Ownership.Interval, sc.Rand(), log))
	w.Scheduler.Register(w.Render)
	w.Scheduler.Register(&transform.PropagationSystem{Workers: renderCfg.Workers})
	w.Scheduler.Register(w.DrawList)

	log.Info("world ready",
		zap.Int("asteroids", len(ids)),
		zap.Float64("base_scale", renderCfg.BaseScale),
		zap.Int("workers", renderCfg.Workers),
	)
	return w
}

// RunHeadless ticks frames fixed-dt frames and reports on the result.
func (w *World) RunHeadless(frames int, dt float64) *report.Report {
	r := &report.Report{
		Frames:    frames,
		DeltaTime: dt,
		BaseScale: w.Config.BaseScale,
		Workers:   w.Config.Workers,
		Asteroids: w.Scenario.Asteroids,
		Predicted: w.Scenario.Ownership.PredictedRatio,
		Colored:   w.Scenario.ColoredRatio,
		FrameTime: report.Stats{Samples: make([]time.Duration, 0, frames)},
	}

	runtime.ReadMemStats(&r.MemStatsStart)
	start := time.Now()
	for range frames {
		frameStart := time.Now()
		w.Scheduler.Once(dt)
		r.FrameTime.Samples = append(r.FrameTime.Samples, time.Since(frameStart))
	}
	r.TotalTime = time.Since(start)
	r.FrameTime.Finalize()
	runtime.ReadMemStats(&r.MemStatsEnd)

	r.PulseFinal = w.Render.Pulse().Value
	r.Scheduler = w.Scheduler.GetStats()
	r.Storage = w.Storage.CollectStats()
	r.Summary = asteroids.Summarize(w.Storage, w.Config.Tints)
	return r
}
