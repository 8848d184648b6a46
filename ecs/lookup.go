package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// Lookup gives keyed access to one component type on arbitrary entities,
// for systems that iterate one query but need to test or touch components
// that are not part of it.
//
// The archetype-to-column cache is rebuilt by Update, which the Scheduler
// calls before the owning system runs. Between Updates the lookup only
// reads shared state, so Has and Get may be called from many goroutines.
// Writes through GetRef or Set are safe concurrently as long as no two
// goroutines write the same entity.
type Lookup[T any] struct {
	storage        *Storage
	readOnly       bool
	columns        *intmap.Map[uint32, *genericComponentStorage[T]]
	archetypeCount int
}

// NewLookup creates a Lookup over storage. A read-only lookup panics on writes.
func NewLookup[T any](storage *Storage, readOnly bool) *Lookup[T] {
	l := &Lookup[T]{}
	l.Init(storage, readOnly)
	return l
}

// Init initializes the Lookup. Called by the Scheduler during system
// registration; readOnly comes from an `ecs:"readonly"` field tag.
func (l *Lookup[T]) Init(storage *Storage, readOnly bool) {
	l.storage = storage
	l.readOnly = readOnly
	l.columns = intmap.New[uint32, *genericComponentStorage[T]](16)
	l.archetypeCount = -1
	l.Update()
}

// Update refreshes the column cache if archetypes were added since the last call.
func (l *Lookup[T]) Update() {
	if len(l.storage.archetypes) == l.archetypeCount {
		return
	}

	l.columns.Clear()
	for id, archetype := range l.storage.archetypes {
		l.columns.Put(id, l.resolve(archetype))
	}
	l.archetypeCount = len(l.storage.archetypes)
}

func (l *Lookup[T]) resolve(archetype *Archetype) *genericComponentStorage[T] {
	column := archetype.column(reflect.TypeFor[T]())
	if column == -1 {
		return nil
	}
	storage, _ := archetype.storages[column].(*genericComponentStorage[T])
	return storage
}

func (l *Lookup[T]) column(id EntityId) *genericComponentStorage[T] {
	if storage, ok := l.columns.Get(id.ArchetypeId()); ok {
		return storage
	}
	// Archetype appeared after Update; resolve without touching the cache.
	archetype, ok := l.storage.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return l.resolve(archetype)
}

func (l *Lookup[T]) slot(id EntityId) *T {
	storage := l.column(id)
	if storage == nil {
		return nil
	}
	component, _ := storage.Get(int(id.Index())).(*T)
	return component
}

// ReadOnly reports whether writes through this lookup are forbidden.
func (l *Lookup[T]) ReadOnly() bool {
	return l.readOnly
}

// Has reports whether the entity currently carries a T.
func (l *Lookup[T]) Has(id EntityId) bool {
	storage := l.column(id)
	return storage != nil && storage.Has(int(id.Index()))
}

// Get returns a copy of the entity's T and whether it was present.
func (l *Lookup[T]) Get(id EntityId) (T, bool) {
	if component := l.slot(id); component != nil {
		return *component, true
	}
	var zero T
	return zero, false
}

// GetRef returns a pointer to the entity's T for in-place writes, or nil.
func (l *Lookup[T]) GetRef(id EntityId) *T {
	l.mustBeWritable("GetRef")
	return l.slot(id)
}

// Set overwrites the entity's T. It never adds the component; it returns
// false when the entity does not carry one.
func (l *Lookup[T]) Set(id EntityId, value T) bool {
	l.mustBeWritable("Set")
	component := l.slot(id)
	if component == nil {
		return false
	}
	*component = value
	return true
}

func (l *Lookup[T]) mustBeWritable(method string) {
	if l.readOnly {
		panic("Lookup." + method + "() called on a read-only lookup of " + reflect.TypeFor[T]().String())
	}
}
