// Package cache simulates a set-associative cache replaying a memory-access
// trace. It reports hit and miss counts together with an estimated cycle
// cost under a fixed cost model: a cache hit costs 1 cycle and every block
// moved between the cache and memory costs 100 cycles per 4 bytes.
package cache

import (
	"github.com/sarchlab/csim/cache/internal/tagging"
	"github.com/sarchlab/csim/trace"
)

// memCyclesPerWord is the cost of moving 4 bytes between memory and the
// cache.
const memCyclesPerWord = 100

// Stats holds the aggregate outcome of one simulation run.
type Stats struct {
	TotalLoads  uint64
	TotalStores uint64
	LoadHits    uint64
	LoadMisses  uint64
	StoreHits   uint64
	StoreMisses uint64
	Cycles      uint64
}

// An AccessSource yields trace records one at a time until the trace is
// exhausted.
type AccessSource interface {
	Next() (trace.Record, bool)
}

// A Simulator replays accesses against one simulated cache. It is not safe
// for concurrent use; a run is a strictly sequential fold over the trace.
type Simulator struct {
	config Config
	tags   *tagging.TagArray
	stats  Stats

	// timeCounter advances once per access and supplies recency stamps.
	timeCounter uint64

	// blockCost is the cycle cost of one block transfer.
	blockCost uint64
}

// NewSimulator creates a cold-cache simulator for the given configuration.
// It fails if the configuration is invalid.
func NewSimulator(config Config) (*Simulator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Simulator{
		config:    config,
		tags:      tagging.NewTagArray(config.NumSets, config.WaysPerSet, config.BlockSize),
		blockCost: memCyclesPerWord * uint64(config.BlockSize/4),
	}, nil
}

// Config returns the simulator's configuration.
func (s *Simulator) Config() Config {
	return s.config
}

// Stats returns a snapshot of the running totals.
func (s *Simulator) Stats() Stats {
	return s.stats
}

// Run replays every record the source yields.
func (s *Simulator) Run(src AccessSource) {
	for {
		rec, ok := src.Next()
		if !ok {
			return
		}

		s.Access(rec)
	}
}

// Access replays a single trace record. Records with an unknown operation
// are consumed without touching any counter or cache state.
func (s *Simulator) Access(rec trace.Record) {
	setIndex, tag := s.tags.Decode(rec.Address)
	set := &s.tags.Sets[setIndex]
	probe := set.Probe(tag)

	// The clock ticks between the probe and the state update. A line filled
	// now is stamped newer than everything probed, and with no refresh on
	// hit this is exactly FIFO order.
	s.timeCounter++

	switch rec.Kind {
	case trace.Load:
		s.load(set, tag, probe)
	case trace.Store:
		s.store(set, tag, probe)
	case trace.Unknown:
		// Skipped without accounting.
	}
}

func (s *Simulator) load(set *tagging.Set, tag uint32, probe tagging.ProbeResult) {
	s.stats.TotalLoads++

	if probe.Hit() {
		s.stats.LoadHits++
		s.stats.Cycles++
		s.touch(set, probe.HitWay)

		return
	}

	s.stats.LoadMisses++
	s.stats.Cycles += s.blockCost + 1
	s.fill(set, tag, probe)
}

func (s *Simulator) store(set *tagging.Set, tag uint32, probe tagging.ProbeResult) {
	s.stats.TotalStores++

	if probe.Hit() {
		s.storeHit(set, probe)
		return
	}

	s.storeMiss(set, tag, probe)
}

func (s *Simulator) storeHit(set *tagging.Set, probe tagging.ProbeResult) {
	s.stats.StoreHits++

	switch s.config.WriteHit {
	case WriteThrough:
		// The word goes to both the cache and memory.
		s.stats.Cycles += 1 + memCyclesPerWord
	case WriteBack:
		s.stats.Cycles++
		set.Lines[probe.HitWay].Dirty = true
	}

	s.touch(set, probe.HitWay)
}

func (s *Simulator) storeMiss(set *tagging.Set, tag uint32, probe tagging.ProbeResult) {
	s.stats.StoreMisses++

	if s.config.WriteMiss == NoWriteAllocate {
		// The word is written straight to memory; the cache is untouched.
		s.stats.Cycles += memCyclesPerWord
		return
	}

	s.stats.Cycles += s.blockCost
	way := s.fill(set, tag, probe)

	switch s.config.WriteHit {
	case WriteThrough:
		s.stats.Cycles += 1 + memCyclesPerWord
		set.Lines[way].Dirty = false
	case WriteBack:
		s.stats.Cycles++
		set.Lines[way].Dirty = true
	}
}

// fill places tag into the preferred slot: the first empty way if one
// exists, otherwise the eviction candidate. Evicting a dirty line under
// write-back charges the flush before the slot is overwritten.
func (s *Simulator) fill(
	set *tagging.Set,
	tag uint32,
	probe tagging.ProbeResult,
) (way int) {
	way = probe.EmptyWay

	if way < 0 {
		way = probe.VictimWay

		if s.config.WriteHit == WriteBack && set.Lines[way].Dirty {
			s.stats.Cycles += s.blockCost
		}
	}

	set.Lines[way] = tagging.Line{
		Valid:    true,
		Tag:      tag,
		LastUsed: s.timeCounter,
	}

	return way
}

// touch refreshes the recency stamp of a hit line. FIFO keeps the fill-time
// stamp instead.
func (s *Simulator) touch(set *tagging.Set, way int) {
	if s.config.Eviction == LRU {
		set.Lines[way].LastUsed = s.timeCounter
	}
}
