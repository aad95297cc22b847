package cache_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/csim/cache"
)

var _ = Describe("WriteReport", func() {
	It("should write the seven lines in order", func() {
		stats := cache.Stats{
			TotalLoads:  318197,
			TotalStores: 197486,
			LoadHits:    314171,
			LoadMisses:  4026,
			StoreHits:   188047,
			StoreMisses: 9439,
			Cycles:      9845283,
		}

		var buf bytes.Buffer
		Expect(cache.WriteReport(&buf, stats)).To(Succeed())

		Expect(buf.String()).To(Equal(
			"Total loads: 318197\n" +
				"Total stores: 197486\n" +
				"Load hits: 314171\n" +
				"Load misses: 4026\n" +
				"Store hits: 188047\n" +
				"Store misses: 9439\n" +
				"Total cycles: 9845283\n"))
	})

	It("should write zeros for an untouched run", func() {
		var buf bytes.Buffer
		Expect(cache.WriteReport(&buf, cache.Stats{})).To(Succeed())

		Expect(buf.String()).To(HavePrefix("Total loads: 0\n"))
		Expect(buf.String()).To(HaveSuffix("Total cycles: 0\n"))
	})
})
