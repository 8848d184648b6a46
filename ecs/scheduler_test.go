package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/asteroids/ecs"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Iter() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type HealthSystem struct {
	Entities     ecs.Query[struct{ *Health }] `ecs:"required"`
	ExecuteCount int
	TotalHealth  float64
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	s.TotalHealth = 0
	for item := range s.Entities.Iter() {
		s.TotalHealth += float64(item.Health.Current)
	}
}

type orderProbe struct {
	name  string
	phase ecs.Phase
	log   *[]string
}

func (p *orderProbe) Phase() ecs.Phase { return p.phase }

func (p *orderProbe) Execute(frame *ecs.UpdateFrame) {
	*p.log = append(*p.log, p.name)
}

type lookupSystem struct {
	Names    ecs.Lookup[Name] `ecs:"readonly"`
	Healths  ecs.Lookup[Health]
	Movers   ecs.Query[struct{ ecs.EntityId; *Position }]
	Singular ecs.Singleton[Temperature]
	named    int
}

func (s *lookupSystem) Execute(frame *ecs.UpdateFrame) {
	s.named = 0
	for item := range s.Movers.Iter() {
		if s.Names.Has(item.EntityId) {
			s.named++
		}
	}
}

func TestScheduler(t *testing.T) {
	registry := newTestRegistry()

	t.Run("systems run every frame with queries executed", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		health := &HealthSystem{}
		scheduler.Register(movement)
		scheduler.Register(health)

		storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 10, DY: 20})
		storage.Spawn(Health{Current: 100, Max: 100})

		scheduler.Once(0.5)
		scheduler.Once(0.5)

		assert.Equal(t, 2, movement.ExecuteCount)
		assert.Equal(t, 2, health.ExecuteCount)
		assert.Equal(t, 100.0, health.TotalHealth)

		pos := ecs.NewView[struct{ *Position }](storage)
		for _, item := range pos.Iter() {
			assert.Equal(t, float32(10), item.Position.X)
			assert.Equal(t, float32(20), item.Position.Y)
		}
	})

	t.Run("required query gates execution", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		health := &HealthSystem{}
		scheduler.Register(health)

		scheduler.Once(0.016)
		assert.Equal(t, 0, health.ExecuteCount)

		storage.Spawn(Health{Current: 5})
		scheduler.Once(0.016)
		assert.Equal(t, 1, health.ExecuteCount)

		stats := scheduler.GetStats()
		require.Len(t, stats.Systems, 1)
		assert.Equal(t, int64(1), stats.Systems[0].SkipCount)
		assert.Equal(t, int64(1), stats.Systems[0].ExecutionCount)
		assert.Equal(t, int64(1), stats.TotalSkips)
	})

	t.Run("phases order systems and keep registration order within a phase", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		var order []string
		scheduler.Register(&orderProbe{name: "draw", phase: ecs.PhaseRender, log: &order})
		scheduler.Register(&orderProbe{name: "propagate", phase: ecs.PhaseTransform, log: &order})
		scheduler.Register(&orderProbe{name: "pulse", phase: ecs.PhasePresentation, log: &order})
		scheduler.Register(&orderProbe{name: "simulate-a", phase: ecs.PhaseSimulation, log: &order})
		scheduler.Register(&orderProbe{name: "simulate-b", phase: ecs.PhaseSimulation, log: &order})

		scheduler.Once(0.016)

		assert.Equal(t, []string{"simulate-a", "simulate-b", "pulse", "propagate", "draw"}, order)

		stats := scheduler.GetStats()
		assert.Equal(t, ecs.PhaseRender, stats.Systems[4].Phase)
	})

	t.Run("lookup and singleton fields are initialized", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		ecs.NewSingleton[Temperature](storage, 20)

		storage.Spawn(Position{}, Name{Value: "a"})
		storage.Spawn(Position{})

		system := &lookupSystem{}
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(system)
		scheduler.Once(0.016)

		assert.Equal(t, 1, system.named)
		assert.True(t, system.Names.ReadOnly())
		assert.False(t, system.Healths.ReadOnly())
		assert.Equal(t, Temperature(20), *system.Singular.Get())
	})

	t.Run("invalid tags panic at registration", func(t *testing.T) {
		scheduler := ecs.NewScheduler(ecs.NewStorage(registry))
		assert.Panics(t, func() {
			scheduler.Register(&struct {
				commandSystem
				Names ecs.Lookup[Name] `ecs:"required"`
			}{})
		})
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		scheduler.Register(movement)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		if movement.ExecuteCount == 0 {
			t.Error("expected system to execute at least once")
		}
	})
}
