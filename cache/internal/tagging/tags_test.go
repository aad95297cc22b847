package tagging

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TagArray", func() {
	var tags *TagArray

	BeforeEach(func() {
		tags = NewTagArray(4, 2, 16)
	})

	It("should be able to get total size", func() {
		Expect(tags.TotalSize()).To(Equal(uint64(128)))
	})

	It("should decode addresses into set index and tag", func() {
		setIndex, tag := tags.Decode(0x1234)
		Expect(setIndex).To(Equal(3))
		Expect(tag).To(Equal(uint32(0x48)))
	})

	It("should discard the block offset bits", func() {
		setA, tagA := tags.Decode(0x1230)
		setB, tagB := tags.Decode(0x123F)
		Expect(setA).To(Equal(setB))
		Expect(tagA).To(Equal(tagB))
	})

	It("should decode the highest address without overflow", func() {
		setIndex, tag := tags.Decode(0xFFFFFFFF)
		Expect(setIndex).To(Equal(3))
		Expect(tag).To(Equal(uint32(0x03FFFFFF)))
	})

	It("should decode with a single set and no index bits", func() {
		oneSet := NewTagArray(1, 2, 4)
		setIndex, tag := oneSet.Decode(0xDEADBEEF)
		Expect(setIndex).To(Equal(0))
		Expect(tag).To(Equal(uint32(0xDEADBEEF >> 2)))
	})
})

var _ = Describe("Set Probe", func() {
	var set *Set

	BeforeEach(func() {
		set = &Set{Lines: make([]Line, 4)}
	})

	It("should miss on an empty set", func() {
		r := set.Probe(0x10)

		Expect(r.Hit()).To(BeFalse())
		Expect(r.EmptyWay).To(Equal(0))
		Expect(r.VictimWay).To(Equal(0))
	})

	It("should hit on a valid line with a matching tag", func() {
		set.Lines[2] = Line{Valid: true, Tag: 0x10}

		r := set.Probe(0x10)

		Expect(r.Hit()).To(BeTrue())
		Expect(r.HitWay).To(Equal(2))
	})

	It("should not hit on an invalid line with a matching tag", func() {
		set.Lines[2] = Line{Valid: false, Tag: 0x10}

		r := set.Probe(0x10)

		Expect(r.Hit()).To(BeFalse())
	})

	It("should remember the first empty way only", func() {
		set.Lines[0] = Line{Valid: true, Tag: 0x1}

		r := set.Probe(0x10)

		Expect(r.EmptyWay).To(Equal(1))
	})

	It("should report no empty way when the set is full", func() {
		for i := range set.Lines {
			set.Lines[i] = Line{Valid: true, Tag: uint32(i)}
		}

		r := set.Probe(0x10)

		Expect(r.EmptyWay).To(Equal(-1))
	})

	It("should pick the line with the minimum stamp as victim", func() {
		for i := range set.Lines {
			set.Lines[i] = Line{Valid: true, Tag: uint32(i)}
		}
		set.Lines[0].LastUsed = 4
		set.Lines[1].LastUsed = 7
		set.Lines[2].LastUsed = 2
		set.Lines[3].LastUsed = 9

		r := set.Probe(0x10)

		Expect(r.VictimWay).To(Equal(2))
	})

	It("should break recency ties by the lowest way", func() {
		for i := range set.Lines {
			set.Lines[i] = Line{Valid: true, Tag: uint32(i), LastUsed: 5}
		}
		set.Lines[1].LastUsed = 3
		set.Lines[3].LastUsed = 3

		r := set.Probe(0x10)

		Expect(r.VictimWay).To(Equal(1))
	})

	It("should keep bookkeeping gathered before a hit", func() {
		set.Lines[0] = Line{Valid: false}
		set.Lines[1] = Line{Valid: true, Tag: 0x10}

		r := set.Probe(0x10)

		Expect(r.HitWay).To(Equal(1))
		Expect(r.EmptyWay).To(Equal(0))
	})
})
