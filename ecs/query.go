package ecs

import (
	"cmp"
	"iter"
	"slices"
	"unsafe"
)

// Query wraps a View with caching optimizations for repeated iteration.
// Queries cache matching archetypes and pre-build component arrays per frame.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a new Query with archetype-level caching.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.lastArchetypeCount = -1
	q.cachedArchetypes = nil
	q.cacheValid = false
}

// Execute builds the component cache for this frame.
// Called automatically by the Scheduler before the owning system runs.
func (q *Query[T]) Execute() {
	q.invalidateIfNeeded()
	q.ensureArchetypeCache()

	q.cachedComponents = q.cachedComponents[:0]

	var result T
	resultPtr := unsafe.Pointer(&result)

	for _, archetype := range q.cachedArchetypes {
		if len(archetype.storages) == 0 {
			continue
		}

		storageIndices := q.view.buildStorageIndices(archetype)
		for entityIndex := range archetype.storages[0].Iter() {
			if q.view.populateResult(resultPtr, archetype, entityIndex, storageIndices) {
				q.cachedComponents = append(q.cachedComponents, result)
			}
		}
	}

	q.cacheValid = true
}

func (q *Query[T]) invalidateIfNeeded() {
	currentCount := len(q.storage.archetypes)
	if currentCount != q.lastArchetypeCount {
		q.cachedArchetypes = nil
		q.lastArchetypeCount = currentCount
	}
}

func (q *Query[T]) ensureArchetypeCache() {
	if q.cachedArchetypes != nil {
		return
	}

	q.cachedArchetypes = make([]*Archetype, 0)
	for _, archetype := range q.storage.archetypes {
		if q.view.matchesArchetype(archetype) {
			q.cachedArchetypes = append(q.cachedArchetypes, archetype)
		}
	}
	// Iteration order is by archetype id so results do not depend on map order.
	slices.SortFunc(q.cachedArchetypes, func(a, b *Archetype) int {
		return cmp.Compare(a.id, b.id)
	})
}

func (q *Query[T]) mustBeExecuted(method string) {
	if !q.cacheValid {
		panic("Query." + method + "() called before Query.Execute()")
	}
}

// Len returns the number of entities matched by the last Execute.
func (q *Query[T]) Len() int {
	q.mustBeExecuted("Len")
	return len(q.cachedComponents)
}

// Iter returns an iterator over the matched view structs.
// Panics if Execute() has not been called this frame.
func (q *Query[T]) Iter() iter.Seq[T] {
	q.mustBeExecuted("Iter")

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Partition splits the matched entities into at most n chunks.
// See partition for the disjointness guarantee.
func (q *Query[T]) Partition(n int) []Chunk[T] {
	q.mustBeExecuted("Partition")
	return partition(q.cachedComponents, n)
}

// ParallelEach calls fn once for every matched entity, spreading chunks
// over up to workers goroutines, and returns once every chunk is done.
// fn may only write through the view it was handed.
func (q *Query[T]) ParallelEach(workers int, fn func(T)) {
	runChunks(q.Partition(workers), fn)
}
