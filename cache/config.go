package cache

import "fmt"

// WriteMissPolicy decides whether a store miss brings the block into the
// cache.
type WriteMissPolicy int

const (
	// WriteAllocate fetches the block into the cache on a store miss.
	WriteAllocate WriteMissPolicy = iota

	// NoWriteAllocate writes straight to memory on a store miss, leaving
	// the cache untouched.
	NoWriteAllocate
)

func (p WriteMissPolicy) String() string {
	switch p {
	case WriteAllocate:
		return "write-allocate"
	case NoWriteAllocate:
		return "no-write-allocate"
	default:
		return fmt.Sprintf("WriteMissPolicy(%d)", int(p))
	}
}

// ParseWriteMissPolicy converts the command-line spelling of a write-miss
// policy.
func ParseWriteMissPolicy(s string) (WriteMissPolicy, error) {
	switch s {
	case "write-allocate":
		return WriteAllocate, nil
	case "no-write-allocate":
		return NoWriteAllocate, nil
	default:
		return 0, fmt.Errorf("unknown write-miss policy %q", s)
	}
}

// WriteHitPolicy decides when a store reaches memory.
type WriteHitPolicy int

const (
	// WriteThrough propagates every store to memory immediately.
	WriteThrough WriteHitPolicy = iota

	// WriteBack defers the memory write until a dirty line is evicted.
	WriteBack
)

func (p WriteHitPolicy) String() string {
	switch p {
	case WriteThrough:
		return "write-through"
	case WriteBack:
		return "write-back"
	default:
		return fmt.Sprintf("WriteHitPolicy(%d)", int(p))
	}
}

// ParseWriteHitPolicy converts the command-line spelling of a write-hit
// policy.
func ParseWriteHitPolicy(s string) (WriteHitPolicy, error) {
	switch s {
	case "write-through":
		return WriteThrough, nil
	case "write-back":
		return WriteBack, nil
	default:
		return 0, fmt.Errorf("unknown write-hit policy %q", s)
	}
}

// EvictionPolicy orders the lines of a full set for replacement.
type EvictionPolicy int

const (
	// LRU evicts the least recently used line. Every hit refreshes the
	// recency stamp of the touched line.
	LRU EvictionPolicy = iota

	// FIFO evicts the earliest filled line. Stamps are written on fill and
	// never refreshed, so insertion order alone decides the victim.
	FIFO
)

func (p EvictionPolicy) String() string {
	switch p {
	case LRU:
		return "lru"
	case FIFO:
		return "fifo"
	default:
		return fmt.Sprintf("EvictionPolicy(%d)", int(p))
	}
}

// ParseEvictionPolicy converts the command-line spelling of an eviction
// policy.
func ParseEvictionPolicy(s string) (EvictionPolicy, error) {
	switch s {
	case "lru":
		return LRU, nil
	case "fifo":
		return FIFO, nil
	default:
		return 0, fmt.Errorf("unknown eviction policy %q", s)
	}
}

// A Config describes the shape and the policies of a simulated cache. It is
// immutable once validated.
type Config struct {
	NumSets    int
	WaysPerSet int
	BlockSize  int
	WriteMiss  WriteMissPolicy
	WriteHit   WriteHitPolicy
	Eviction   EvictionPolicy
}

// Validate checks the structural legality of the configuration. It must
// pass before any simulation starts.
func (c Config) Validate() error {
	if !isPowerOfTwo(c.NumSets) {
		return fmt.Errorf("number of sets must be a positive power of 2, got %d",
			c.NumSets)
	}

	if !isPowerOfTwo(c.WaysPerSet) {
		return fmt.Errorf("ways per set must be a positive power of 2, got %d",
			c.WaysPerSet)
	}

	if !isPowerOfTwo(c.BlockSize) {
		return fmt.Errorf("block size must be a positive power of 2, got %d",
			c.BlockSize)
	}

	// Accesses are at most 4 bytes wide.
	if c.BlockSize < 4 {
		return fmt.Errorf("block size must be at least 4 bytes, got %d",
			c.BlockSize)
	}

	// A write-back cache has nowhere to hold the dirty data if store misses
	// bypass it.
	if c.WriteMiss == NoWriteAllocate && c.WriteHit == WriteBack {
		return fmt.Errorf("no-write-allocate cannot be combined with write-back")
	}

	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
