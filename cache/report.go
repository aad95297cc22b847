package cache

import (
	"fmt"
	"io"
)

// WriteReport writes the seven-line summary of a run. The labels and their
// order are part of the tool's output contract.
func WriteReport(w io.Writer, stats Stats) error {
	lines := []struct {
		label string
		value uint64
	}{
		{"Total loads", stats.TotalLoads},
		{"Total stores", stats.TotalStores},
		{"Load hits", stats.LoadHits},
		{"Load misses", stats.LoadMisses},
		{"Store hits", stats.StoreHits},
		{"Store misses", stats.StoreMisses},
		{"Total cycles", stats.Cycles},
	}

	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%s: %d\n", l.label, l.value); err != nil {
			return err
		}
	}

	return nil
}
