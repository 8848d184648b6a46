package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/asteroids/ecs"
)

func TestLookup(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	healthy := storage.Spawn(Position{}, Health{Current: 5, Max: 10})
	plain := storage.Spawn(Position{})

	lookup := ecs.NewLookup[Health](storage, false)

	t.Run("has", func(t *testing.T) {
		assert.True(t, lookup.Has(healthy))
		assert.False(t, lookup.Has(plain))
		assert.False(t, lookup.Has(ecs.NewEntityId(12345, 0)), "unknown archetype")
	})

	t.Run("get copies", func(t *testing.T) {
		health, ok := lookup.Get(healthy)
		require.True(t, ok)
		health.Current = 0
		assert.Equal(t, 5, ecs.ReadComponent[Health](storage, healthy).Current)

		_, ok = lookup.Get(plain)
		assert.False(t, ok)
	})

	t.Run("set writes in place and never adds", func(t *testing.T) {
		assert.True(t, lookup.Set(healthy, Health{Current: 9, Max: 10}))
		assert.Equal(t, 9, ecs.ReadComponent[Health](storage, healthy).Current)

		assert.False(t, lookup.Set(plain, Health{Current: 1}))
		assert.Nil(t, ecs.ReadComponent[Health](storage, plain))
	})

	t.Run("get ref", func(t *testing.T) {
		ref := lookup.GetRef(healthy)
		require.NotNil(t, ref)
		ref.Max = 20
		assert.Equal(t, 20, ecs.ReadComponent[Health](storage, healthy).Max)
		assert.Nil(t, lookup.GetRef(plain))
	})

	t.Run("sees archetypes created after update", func(t *testing.T) {
		late := storage.Spawn(Name{Value: "late"}, Health{Current: 1})
		assert.True(t, lookup.Has(late))

		lookup.Update()
		assert.True(t, lookup.Has(late))
	})

	t.Run("deleted entity is absent", func(t *testing.T) {
		victim := storage.Spawn(Position{}, Health{Current: 1})
		require.True(t, lookup.Has(victim))
		storage.Delete(victim)
		assert.False(t, lookup.Has(victim))
	})
}

func TestReadOnlyLookup(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Health{Current: 1})

	lookup := ecs.NewLookup[Health](storage, true)
	assert.True(t, lookup.ReadOnly())
	assert.True(t, lookup.Has(id))

	health, ok := lookup.Get(id)
	assert.True(t, ok)
	assert.Equal(t, 1, health.Current)

	assert.Panics(t, func() { lookup.Set(id, Health{}) })
	assert.Panics(t, func() { lookup.GetRef(id) })
}
