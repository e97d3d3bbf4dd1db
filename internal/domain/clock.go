package domain

import (
	"fmt"
	"sync"
	"time"
)

// Clock is the time source for postings and statement ranges.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// ManualClock is a settable clock that only moves forward.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a clock fixed at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t. Moving backwards is rejected.
func (c *ManualClock) Set(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.Before(c.now) {
		return fmt.Errorf("%w: %s is before %s", ErrClockMovedBackwards, t.Format(time.RFC3339), c.now.Format(time.RFC3339))
	}
	c.now = t
	return nil
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: negative duration %s", ErrClockMovedBackwards, d)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return nil
}
