package testutil

import (
	"fmt"
	"sync"
)

// FixedUIDGenerator hands out predictable component uids: "<prefix>-1",
// "<prefix>-2", ...
//
// The same scenario with the same generator produces byte-identical
// timelines, which golden traces depend on.
//
// Thread-safety: safe for concurrent use.
type FixedUIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewFixedUIDGenerator creates a generator. An empty prefix becomes "uid".
func NewFixedUIDGenerator(prefix string) *FixedUIDGenerator {
	if prefix == "" {
		prefix = "uid"
	}
	return &FixedUIDGenerator{prefix: prefix}
}

// Generate returns the next uid.
//
// Implements core.UIDGenerator.
func (g *FixedUIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}

// Reset restarts numbering at 1.
func (g *FixedUIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next = 0
}
