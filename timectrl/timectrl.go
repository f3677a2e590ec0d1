package timectrl

import (
	"sync"
	"time"
)

// Clock is the time source used by search deadlines. Depending on a clock
// abstraction rather than time.Now keeps budget behaviour testable.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by the wall clock.
func System() Clock { return systemClock{} }

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	mu      sync.RWMutex
	current time.Time
}

// NewManualClock constructs a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{current: start}
}

// Now returns the current manual time. Implements Clock.
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// SetTime jumps the clock to t.
func (c *ManualClock) SetTime(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new time.
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
	return c.current
}

// AdvanceEvery returns a Clock that advances m by step on every Now call.
// Useful for simulating a search that takes a known time per check.
func AdvanceEvery(m *ManualClock, step time.Duration) Clock {
	return steppingClock{m: m, step: step}
}

type steppingClock struct {
	m    *ManualClock
	step time.Duration
}

func (s steppingClock) Now() time.Time { return s.m.Advance(s.step) }
