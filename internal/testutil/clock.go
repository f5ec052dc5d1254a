package testutil

import "sync"

// DeterministicClock is a resettable logical clock for scenarios and tests.
// It satisfies core.Sequencer.
//
// Thread-safety: safe for concurrent use.
type DeterministicClock struct {
	mu    sync.Mutex
	start int64
	seq   int64
}

// NewDeterministicClock returns a clock whose first Next is 1.
func NewDeterministicClock() *DeterministicClock {
	return NewDeterministicClockAt(0)
}

// NewDeterministicClockAt returns a clock whose first Next is start+1, the
// way a recorded timeline is continued after its last seq.
func NewDeterministicClockAt(start int64) *DeterministicClock {
	return &DeterministicClock{start: start, seq: start}
}

func (c *DeterministicClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

func (c *DeterministicClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Advance skips n ticks without handing them out. Negative n is ignored;
// the clock never runs backwards.
func (c *DeterministicClock) Advance(n int64) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	c.seq += n
	c.mu.Unlock()
}

// Reset rewinds the clock to the value it was created with.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	c.seq = c.start
	c.mu.Unlock()
}
