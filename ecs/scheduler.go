package ecs

import (
	"context"
	"reflect"
	"slices"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	TotalSkips      int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Phase          Phase
	ExecutionCount int64
	SkipCount      int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	skipCount      int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type (
	storageInitializer interface{ Init(*Storage) }
	lookupInitializer  interface{ Init(*Storage, bool) }
	queryExecutor      interface{ Execute() }
	lookupUpdater      interface{ Update() }
	queryCounter       interface{ Len() int }
)

type systemEntry struct {
	system   System
	phase    Phase
	queries  []queryExecutor
	lookups  []lookupUpdater
	required []queryCounter
	stats    *systemStatsInternal
}

// Scheduler manages and executes systems in phase order.
type Scheduler struct {
	storage *Storage
	entries []*systemEntry
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
	}
}

// Register adds a system to the scheduler and initializes its Query,
// Lookup and Singleton fields.
func (s *Scheduler) Register(system System) {
	entry := &systemEntry{
		system: system,
		phase:  PhaseSimulation,
	}
	if phased, ok := system.(Phased); ok {
		entry.phase = phased.Phase()
	}
	s.initializeFields(entry)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	entry.stats = &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	}

	s.entries = append(s.entries, entry)
	slices.SortStableFunc(s.entries, func(a, b *systemEntry) int {
		return int(a.phase) - int(b.phase)
	})
}

var ecsPkgPath = reflect.TypeFor[Storage]().PkgPath()

func (s *Scheduler) initializeFields(entry *systemEntry) {
	systemValue := reflect.ValueOf(entry.system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return
	}

	systemType := systemValue.Type()

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct || field.Type().PkgPath() != ecsPkgPath {
			continue
		}

		tag := fieldType.Tag.Get("ecs")
		target := field.Addr().Interface()

		switch initializer := target.(type) {
		case lookupInitializer:
			if tag != "" && tag != "readonly" {
				panic("invalid ecs tag on Lookup field " + fieldType.Name + ": \"" + tag + "\"")
			}
			initializer.Init(s.storage, tag == "readonly")
			entry.lookups = append(entry.lookups, target.(lookupUpdater))

		case storageInitializer:
			initializer.Init(s.storage)
			executor, isQuery := target.(queryExecutor)
			if !isQuery {
				if tag != "" {
					panic("ecs tag is not supported on field " + fieldType.Name)
				}
				continue
			}
			entry.queries = append(entry.queries, executor)

			switch tag {
			case "":
			case "required":
				entry.required = append(entry.required, target.(queryCounter))
			default:
				panic("invalid ecs tag on Query field " + fieldType.Name + ": \"" + tag + "\"")
			}
		}
	}
}

// ready executes the system's queries and refreshes its lookups, then
// reports whether every required query matched something.
func (e *systemEntry) ready() bool {
	for _, q := range e.queries {
		q.Execute()
	}
	for _, l := range e.lookups {
		l.Update()
	}
	for _, r := range e.required {
		if r.Len() == 0 {
			return false
		}
	}
	return true
}

// Once executes all registered systems once with the given delta time.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage)

	for _, entry := range s.entries {
		stats := entry.stats
		if !entry.ready() {
			stats.skipCount++
			continue
		}

		start := time.Now()
		entry.system.Execute(frame)
		duration := time.Since(start)

		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration
		stats.minDuration = min(stats.minDuration, duration)
		stats.maxDuration = max(stats.maxDuration, duration)
	}

	frame.Commands.Flush(s.storage)
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

// GetStats returns statistics about system execution, in execution order.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.entries),
		Systems:     make([]SystemStats, len(s.entries)),
	}

	for i, entry := range s.entries {
		internal := entry.stats
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			Phase:          entry.phase,
			ExecutionCount: internal.executionCount,
			SkipCount:      internal.skipCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		stats.TotalExecutions += internal.executionCount
		stats.TotalSkips += internal.skipCount
	}

	return stats
}
