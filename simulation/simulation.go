// Package simulation wires caches, workloads, recording, and monitoring
// together.
package simulation

import (
	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/mem/cache"
	"github.com/sarchlab/cachesim/monitoring"
	"github.com/sarchlab/cachesim/sim/hooking"
	"github.com/sarchlab/cachesim/workload"
)

const statsTable = "cache_stats"

// statsEntry is the row recorded at the end of every run.
type statsEntry struct {
	RunID      string
	Cache      string
	Workload   string
	Sets       int
	LineSize   uint64
	Ways       int
	Policy     string
	Hit        uint64
	Miss       uint64
	CleanEvict uint64
	DirtyEvict uint64
	HitRate    float64
}

// A Simulation provides the services required to run workloads on caches.
type Simulation struct {
	id              string
	publishInterval uint64

	dataRecorder      datarecording.DataRecorder
	statsTableCreated bool
	accessTracer      hooking.Hook
	monitor           *monitoring.Monitor

	caches         []*cache.Cache
	cacheNameIndex map[string]int
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// GetDataRecorder returns the data recorder, nil if recording is disabled.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor, nil if monitoring is disabled.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// RegisterCache registers a cache with the simulation. Cache names must be
// unique.
func (s *Simulation) RegisterCache(c *cache.Cache) {
	name := c.Name()
	if _, found := s.cacheNameIndex[name]; found {
		panic("cache " + name + " already registered")
	}

	s.caches = append(s.caches, c)
	s.cacheNameIndex[name] = len(s.caches) - 1

	if s.accessTracer != nil {
		c.AcceptHook(s.accessTracer)
	}

	if s.monitor != nil {
		s.monitor.RegisterCache(c)
	}
}

// GetCacheByName returns the cache with the given name.
func (s *Simulation) GetCacheByName(name string) *cache.Cache {
	index, found := s.cacheNameIndex[name]
	if !found {
		panic("cache " + name + " is not registered")
	}

	return s.caches[index]
}

// Run drives the workload through a registered cache and returns the counters
// of the cache afterwards.
func (s *Simulation) Run(
	c *cache.Cache,
	w workload.Workload,
) (cache.Stats, error) {
	if s.GetCacheByName(c.Name()) != c {
		panic("cache " + c.Name() + " is not registered")
	}

	var (
		acc      workload.Accessor = c
		progress workload.Progress
	)

	if s.monitor != nil {
		bar := s.monitor.CreateProgressBar(c.Name()+" "+w.Name(), w.Len())
		defer s.monitor.CompleteProgressBar(bar)

		progress = bar
		acc = &publishingAccessor{
			Cache:    c,
			monitor:  s.monitor,
			interval: s.publishInterval,
		}
	}

	err := w.Run(acc, progress)
	stats := c.Stats()

	if s.monitor != nil {
		s.monitor.PublishStats(c.Name(), stats)
	}

	if err != nil {
		return stats, err
	}

	s.recordStats(c, w, stats)

	return stats, nil
}

func (s *Simulation) recordStats(
	c *cache.Cache,
	w workload.Workload,
	stats cache.Stats,
) {
	if s.dataRecorder == nil {
		return
	}

	if !s.statsTableCreated {
		s.dataRecorder.CreateTable(statsTable, statsEntry{})
		s.statsTableCreated = true
	}

	g := c.Geometry()
	s.dataRecorder.InsertData(statsTable, statsEntry{
		RunID:      s.id,
		Cache:      c.Name(),
		Workload:   w.Name(),
		Sets:       g.NumSets(),
		LineSize:   g.LineSize(),
		Ways:       g.Ways,
		Policy:     g.Policy.String(),
		Hit:        stats.Hit,
		Miss:       stats.Miss,
		CleanEvict: stats.CleanEvict,
		DirtyEvict: stats.DirtyEvict,
		HitRate:    stats.HitRate(),
	})
}

// Terminate flushes and closes the data recorder.
func (s *Simulation) Terminate() {
	if s.dataRecorder != nil {
		s.dataRecorder.Close()
	}
}

// publishingAccessor forwards accesses to a cache and pushes its counters to
// the monitor every interval accesses.
type publishingAccessor struct {
	*cache.Cache

	monitor  *monitoring.Monitor
	interval uint64
	count    uint64
}

func (a *publishingAccessor) Load(addr uint64) cache.AccessResult {
	r := a.Cache.Load(addr)
	a.tick()

	return r
}

func (a *publishingAccessor) Store(addr uint64) cache.AccessResult {
	r := a.Cache.Store(addr)
	a.tick()

	return r
}

func (a *publishingAccessor) tick() {
	a.count++
	if a.count%a.interval == 0 {
		a.monitor.PublishStats(a.Name(), a.Stats())
	}
}
