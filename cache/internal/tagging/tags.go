// Package tagging implements the tag array of a set-associative cache.
package tagging

import (
	"math"
	"math/bits"
)

// A Line is one slot of a set. It records the tag of the memory block it
// holds, whether the content is valid, whether the content diverges from
// memory, and the logical time of the last touch relevant to eviction.
type Line struct {
	Valid    bool
	Dirty    bool
	Tag      uint32
	LastUsed uint64
}

// A Set is a fixed-length list of lines where a certain piece of memory can
// be stored at. The slot order is stable and only serves as the scan order
// for tie-breaking.
type Set struct {
	Lines []Line
}

// A ProbeResult is the outcome of one scan over a set. HitWay and EmptyWay
// are -1 when no matching or invalid line exists. VictimWay always names
// the line with the minimum LastUsed stamp seen before the scan ended.
type ProbeResult struct {
	HitWay    int
	EmptyWay  int
	VictimWay int
}

// Hit returns true if the probe found a valid line with a matching tag.
func (r ProbeResult) Hit() bool {
	return r.HitWay >= 0
}

// Probe scans the set once, looking for a matching valid line, the first
// invalid line, and the least recently stamped line at the same time. The
// scan stops as soon as it finds a match; bookkeeping gathered from earlier
// slots is kept since it cannot affect a hit.
func (s *Set) Probe(tag uint32) ProbeResult {
	r := ProbeResult{HitWay: -1, EmptyWay: -1, VictimWay: 0}
	oldest := uint64(math.MaxUint64)

	for i := range s.Lines {
		line := &s.Lines[i]

		if line.Valid && line.Tag == tag {
			r.HitWay = i
			return r
		}

		if !line.Valid && r.EmptyWay < 0 {
			r.EmptyWay = i
		}

		if line.LastUsed < oldest {
			oldest = line.LastUsed
			r.VictimWay = i
		}
	}

	return r
}

// A TagArray organizes lines into sets and maps addresses onto them.
type TagArray struct {
	NumSets    int
	WaysPerSet int
	BlockSize  int
	Sets       []Set

	blockOffsetBits int
	setIndexBits    int
}

// NewTagArray creates a tag array with all lines invalid. All three
// geometry parameters must be powers of two.
func NewTagArray(numSets, waysPerSet, blockSize int) *TagArray {
	t := &TagArray{
		NumSets:         numSets,
		WaysPerSet:      waysPerSet,
		BlockSize:       blockSize,
		blockOffsetBits: bits.TrailingZeros(uint(blockSize)),
		setIndexBits:    bits.TrailingZeros(uint(numSets)),
	}

	t.Reset()

	return t
}

// TotalSize returns the maximum number of bytes the cache can hold.
func (t *TagArray) TotalSize() uint64 {
	return uint64(t.NumSets) * uint64(t.WaysPerSet) * uint64(t.BlockSize)
}

// Decode splits an address into the set index and the tag. The block
// offset bits are discarded.
func (t *TagArray) Decode(addr uint32) (setIndex int, tag uint32) {
	setIndex = int((addr >> t.blockOffsetBits) & uint32(t.NumSets-1))
	tag = addr >> (t.blockOffsetBits + t.setIndexBits)

	return setIndex, tag
}

// Reset marks all the lines in the tag array invalid.
func (t *TagArray) Reset() {
	t.Sets = make([]Set, t.NumSets)
	for i := range t.Sets {
		t.Sets[i].Lines = make([]Line, t.WaysPerSet)
	}
}
