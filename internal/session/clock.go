package session

import "sync/atomic"

// Clock stamps history entries with sequence numbers.
// Implemented by AtomicClock and testutil.DeterministicClock.
type Clock interface {
	Next() int64
	Current() int64
}

// AtomicClock is a monotonic logical clock. The first Next returns 1.
//
// Safe for concurrent use.
type AtomicClock struct {
	seq atomic.Int64
}

// NewClock returns a clock starting at 0.
func NewClock() *AtomicClock {
	return &AtomicClock{}
}

// Next advances the clock and returns the new value.
func (c *AtomicClock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last value handed out, or 0.
func (c *AtomicClock) Current() int64 {
	return c.seq.Load()
}
