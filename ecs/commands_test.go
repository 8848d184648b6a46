package ecs_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/asteroids/ecs"
)

type commandSystem struct {
	run func(frame *ecs.UpdateFrame)
}

func (s *commandSystem) Execute(frame *ecs.UpdateFrame) {
	s.run(frame)
}

func countOf[T any](storage *ecs.Storage) int {
	count := 0
	for range ecs.NewView[struct{ C *T }](storage).Iter() {
		count++
	}
	return count
}

func TestCommands(t *testing.T) {
	t.Run("changes are deferred until the frame ends", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)

		var during int
		scheduler.Register(&commandSystem{run: func(frame *ecs.UpdateFrame) {
			frame.Commands.Spawn(Position{X: 1})
			frame.Commands.Spawn(Position{X: 2})
			during = countOf[Position](frame.Storage)
			assert.Equal(t, 2, frame.Commands.Len())
		}})

		scheduler.Once(0.016)

		assert.Equal(t, 0, during)
		assert.Equal(t, 2, countOf[Position](storage))
	})

	t.Run("remove then add on the same entity follows the move", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := storage.Spawn(Position{X: 1}, Health{Current: 3})

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&commandSystem{run: func(frame *ecs.UpdateFrame) {
			frame.Commands.RemoveComponent(id, reflect.TypeFor[Health]())
			frame.Commands.AddComponent(id, Velocity{DX: 4})
		}})
		scheduler.Once(0.016)

		view := ecs.NewView[struct {
			*Position
			*Velocity
			Health *Health `ecs:"optional"`
		}](storage)

		found := 0
		for _, item := range view.Iter() {
			found++
			assert.Equal(t, float32(1), item.Position.X)
			assert.Equal(t, float32(4), item.Velocity.DX)
			assert.Nil(t, item.Health)
		}
		assert.Equal(t, 1, found)
		assert.Equal(t, 0, countOf[Health](storage))
	})

	t.Run("deleted entities ignore later changes", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := storage.Spawn(Position{X: 1})

		frameCommands := func(frame *ecs.UpdateFrame) {
			frame.Commands.Delete(id)
			frame.Commands.AddComponent(id, Velocity{})
		}
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&commandSystem{run: frameCommands})
		scheduler.Once(0.016)

		assert.Equal(t, 0, countOf[Position](storage))
		assert.Equal(t, 0, countOf[Velocity](storage))
	})

	t.Run("defers run after structural changes", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)

		var seen int
		scheduler.Register(&commandSystem{run: func(frame *ecs.UpdateFrame) {
			frame.Commands.Defer(func() { seen = countOf[Name](storage) })
			frame.Commands.Spawn(Name{Value: "a"})
		}})
		scheduler.Once(0.016)

		require.Equal(t, 1, seen)
	})
}
