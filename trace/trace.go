// Package trace reads memory-access traces. A trace is a stream of
// whitespace-separated triples `<op> <hex-address> <size>`, one access per
// triple. The size field is carried by the format but not interpreted.
package trace

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// AccessKind is the operation of one trace record.
type AccessKind int

const (
	// Load is a memory read access.
	Load AccessKind = iota

	// Store is a memory write access.
	Store

	// Unknown is any operation code other than "l" or "s". Unknown records
	// are delivered to the consumer so that it can decide how to treat
	// them; the simulator skips them without accounting.
	Unknown
)

func (k AccessKind) String() string {
	switch k {
	case Load:
		return "load"
	case Store:
		return "store"
	default:
		return "unknown"
	}
}

// A Record is one parsed trace entry.
type Record struct {
	Kind    AccessKind
	Address uint32
}

// A Scanner reads records from a trace stream one at a time. Tokens are
// split on any whitespace, so line structure does not matter. The scanner
// stops at the end of the stream or at the first triple that cannot be
// parsed, mirroring formatted-input extraction semantics.
type Scanner struct {
	words *bufio.Scanner
}

// NewScanner creates a Scanner that reads from r.
func NewScanner(r io.Reader) *Scanner {
	words := bufio.NewScanner(r)
	words.Split(bufio.ScanWords)

	return &Scanner{words: words}
}

// Next returns the next record. It returns false when the trace is
// exhausted or malformed; no further records follow.
func (s *Scanner) Next() (Record, bool) {
	op, ok := s.nextWord()
	if !ok {
		return Record{}, false
	}

	addrWord, ok := s.nextWord()
	if !ok {
		return Record{}, false
	}

	// The size field must be present, but its value is ignored.
	if _, ok := s.nextWord(); !ok {
		return Record{}, false
	}

	addr, err := parseHexAddress(addrWord)
	if err != nil {
		return Record{}, false
	}

	return Record{Kind: parseKind(op), Address: addr}, true
}

func (s *Scanner) nextWord() (string, bool) {
	if !s.words.Scan() {
		return "", false
	}

	return s.words.Text(), true
}

func parseKind(op string) AccessKind {
	switch op {
	case "l":
		return Load
	case "s":
		return Store
	default:
		return Unknown
	}
}

func parseHexAddress(word string) (uint32, error) {
	word = strings.TrimPrefix(word, "0x")

	addr, err := strconv.ParseUint(word, 16, 32)
	if err != nil {
		return 0, err
	}

	return uint32(addr), nil
}
