package engine

import "sync/atomic"

// Sequencer hands out strictly increasing sequence numbers.
type Sequencer interface {
	Next() int64
}

// Clock is the logical clock that orders evaluations.
//
// Every evaluation is stamped with a seq from Next. Ordering never depends on
// wall time, so the evaluation log reads back in the order it was written.
//
// Clock is safe for concurrent use.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock whose first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock whose first Next returns start+1.
// Used to resume after the last seq recorded in the store.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next increments the clock and returns the new value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last value handed out, without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
