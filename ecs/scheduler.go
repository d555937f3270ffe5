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
	Ticks           uint64
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

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (st *systemStatsInternal) record(duration time.Duration) {
	st.executionCount++
	st.lastDuration = duration
	st.totalDuration += duration

	if duration < st.minDuration {
		st.minDuration = duration
	}
	if duration > st.maxDuration {
		st.maxDuration = duration
	}
}

// storageBinder is implemented by Query and Singleton fields.
type storageBinder interface {
	Init(storage *Storage)
}

// frameQuery is implemented by Query fields.
type frameQuery interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []frameQuery
	stats   *systemStatsInternal
}

// Scheduler manages and executes systems in order.
//
// Systems registered with RegisterStartup run once, before the first tick.
// Systems registered with Register run every tick in registration order.
// Each system's Query fields are refreshed right before the system runs,
// and the frame's command buffer is flushed after the last system of a stage.
type Scheduler struct {
	storage *Storage
	startup []*registeredSystem
	systems []*registeredSystem
	started bool
	tick    uint64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
		systems: make([]*registeredSystem, 0),
	}
}

// Register adds a system to the tick stage and initializes its Query and
// Singleton fields.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, s.prepare(system))
}

// RegisterStartup adds a system to the startup stage. Registering after the
// startup stage has run panics.
func (s *Scheduler) RegisterStartup(system System) {
	if s.started {
		panic("startup system registered after startup stage ran")
	}
	s.startup = append(s.startup, s.prepare(system))
}

func (s *Scheduler) prepare(system System) *registeredSystem {
	return &registeredSystem{
		system:  system,
		queries: s.initializeQueries(system),
		stats: &systemStatsInternal{
			name:        systemName(system),
			minDuration: time.Duration(1<<63 - 1),
		},
	}
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if name := systemType.Name(); name != "" {
		return name
	}
	return systemType.String()
}

func (s *Scheduler) initializeQueries(system System) []frameQuery {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []frameQuery
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		fieldPtr := field.Addr().Interface()

		binder, ok := fieldPtr.(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if query, ok := fieldPtr.(frameQuery); ok {
			queries = append(queries, query)
		}
	}
	return queries
}

func (s *Scheduler) runStage(systems []*registeredSystem, dt float64) {
	frame := newUpdateFrame(s.tick, dt, s.storage)

	for _, rs := range systems {
		for _, query := range rs.queries {
			query.Execute()
		}

		start := time.Now()
		rs.system.Execute(frame)
		rs.stats.record(time.Since(start))
	}

	frame.Commands.Flush(s.storage)
}

// Startup runs the startup stage. Only the first call has an effect.
func (s *Scheduler) Startup() {
	if s.started {
		return
	}
	s.started = true
	s.runStage(s.startup, 0)
}

// Started reports whether the startup stage has run.
func (s *Scheduler) Started() bool {
	return s.started
}

// Tick returns the number of completed ticks.
func (s *Scheduler) Tick() uint64 {
	return s.tick
}

// Once executes all registered systems once with the given delta time,
// running the startup stage first if it has not run yet.
func (s *Scheduler) Once(dt float64) {
	s.Startup()
	s.runStage(s.systems, dt)
	s.tick++
}

// Run executes all systems at the given interval until the context is cancelled.
// Every tick receives interval as its delta time, regardless of ticker jitter,
// so a run is reproducible from its inputs.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	dt := interval.Seconds()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about tick-stage system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.tick,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	var totalExecs int64
	for i, rs := range s.systems {
		internal := rs.stats
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
