package main

import (
	"github.com/rs/xid"

	"github.com/sarchlab/csim/cache"
	"github.com/sarchlab/csim/datarecording"
	"github.com/sarchlab/csim/trace"
)

type runConfigEntry struct {
	RunID      string
	NumSets    int
	WaysPerSet int
	BlockSize  int
	WriteMiss  string
	WriteHit   string
	Eviction   string
}

type runStatsEntry struct {
	RunID       string
	TotalLoads  uint64
	TotalStores uint64
	LoadHits    uint64
	LoadMisses  uint64
	StoreHits   uint64
	StoreMisses uint64
	Cycles      uint64
}

type accessEntry struct {
	RunID   string
	Seq     uint64
	Op      string
	Address uint64
}

// A runRecorder writes one run's configuration, final statistics, and
// optionally every replayed access into a recording backend.
type runRecorder struct {
	backend datarecording.Recorder
	runID   string
	seq     uint64
}

func newRunRecorder(
	backend datarecording.Recorder,
	config cache.Config,
) *runRecorder {
	r := &runRecorder{
		backend: backend,
		runID:   xid.New().String(),
	}

	backend.CreateTable("run_config", runConfigEntry{})
	backend.CreateTable("run_stats", runStatsEntry{})

	backend.Insert("run_config", runConfigEntry{
		RunID:      r.runID,
		NumSets:    config.NumSets,
		WaysPerSet: config.WaysPerSet,
		BlockSize:  config.BlockSize,
		WriteMiss:  config.WriteMiss.String(),
		WriteHit:   config.WriteHit.String(),
		Eviction:   config.Eviction.String(),
	})

	return r
}

// tee wraps an access source so that every record it yields is also logged.
func (r *runRecorder) tee(src cache.AccessSource) cache.AccessSource {
	r.backend.CreateTable("access_log", accessEntry{})

	return &teeSource{src: src, recorder: r}
}

func (r *runRecorder) finish(stats cache.Stats) {
	r.backend.Insert("run_stats", runStatsEntry{
		RunID:       r.runID,
		TotalLoads:  stats.TotalLoads,
		TotalStores: stats.TotalStores,
		LoadHits:    stats.LoadHits,
		LoadMisses:  stats.LoadMisses,
		StoreHits:   stats.StoreHits,
		StoreMisses: stats.StoreMisses,
		Cycles:      stats.Cycles,
	})
	r.backend.Flush()
}

type teeSource struct {
	src      cache.AccessSource
	recorder *runRecorder
}

func (t *teeSource) Next() (trace.Record, bool) {
	rec, ok := t.src.Next()
	if !ok {
		return rec, false
	}

	t.recorder.seq++
	t.recorder.backend.Insert("access_log", accessEntry{
		RunID:   t.recorder.runID,
		Seq:     t.recorder.seq,
		Op:      rec.Kind.String(),
		Address: uint64(rec.Address),
	})

	return rec, true
}
