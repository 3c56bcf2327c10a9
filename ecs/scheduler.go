package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// storageBinder is implemented by Query and Singleton fields.
type storageBinder interface {
	Init(storage *Storage)
}

// cachedQuery is implemented by Query fields.
type cachedQuery interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []cachedQuery
	stats   SystemStats
}

// Scheduler runs registered systems in registration order.
type Scheduler struct {
	storage *Storage
	systems []*registeredSystem
	tick    uint64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Register adds a system and binds its exported Query and Singleton fields to the storage.
func (s *Scheduler) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systems = append(s.systems, &registeredSystem{
		system:  system,
		queries: s.bindFields(system),
		stats: SystemStats{
			Name:        systemType.Name(),
			MinDuration: time.Duration(1<<63 - 1),
		},
	})
}

func (s *Scheduler) bindFields(system System) []cachedQuery {
	value := reflect.ValueOf(system)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	var queries []cachedQuery
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		binder, ok := field.Addr().Interface().(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if q, ok := binder.(cachedQuery); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Once executes every system once with the given delta time, then flushes
// the frame's commands. Each system's queries are refreshed right before it
// runs, so a system observes the component values left by earlier systems.
func (s *Scheduler) Once(dt float64) {
	s.tick++
	frame := newUpdateFrame(dt, s.tick, s.storage)

	for _, rs := range s.systems {
		start := time.Now()
		for _, q := range rs.queries {
			q.Execute()
		}
		rs.system.Execute(frame)
		duration := time.Since(start)

		stats := &rs.stats
		stats.ExecutionCount++
		stats.LastDuration = duration
		stats.TotalDuration += duration
		stats.MinDuration = min(stats.MinDuration, duration)
		stats.MaxDuration = max(stats.MaxDuration, duration)
	}

	frame.Commands.Flush(s.storage)
}

// Tick returns how many frames have been executed.
func (s *Scheduler) Tick() uint64 {
	return s.tick
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

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, rs := range s.systems {
		sys := rs.stats
		if sys.ExecutionCount > 0 {
			sys.AvgDuration = sys.TotalDuration / time.Duration(sys.ExecutionCount)
		}
		stats.Systems[i] = sys
		stats.TotalExecutions += sys.ExecutionCount
	}

	return stats
}
