package ecs

import (
	"slices"
	"strings"
)

// StorageStats summarises the contents of a Storage.
type StorageStats struct {
	ArchetypeCount     int
	TotalEntityCount   int
	SingletonCount     int
	ArchetypeBreakdown []ArchetypeStats
	SingletonTypes     []string
}

// ArchetypeStats describes a single archetype.
type ArchetypeStats struct {
	ID          uint32
	Components  string
	EntityCount int
}

// CollectStats walks every archetype and singleton. Archetypes with no live
// entities are still counted.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		ArchetypeCount: len(s.archetypes),
		SingletonCount: len(s.singletons),
	}

	for id, archetype := range s.archetypes {
		names := make([]string, len(archetype.types))
		for i, typ := range archetype.types {
			names[i] = typ.String()
		}

		count := archetype.Len()
		stats.TotalEntityCount += count
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:          id,
			Components:  strings.Join(names, ", "),
			EntityCount: count,
		})
	}

	for typ := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, typ.String())
	}

	slices.SortFunc(stats.ArchetypeBreakdown, func(a, b ArchetypeStats) int {
		return strings.Compare(a.Components, b.Components)
	})
	slices.Sort(stats.SingletonTypes)

	return stats
}
