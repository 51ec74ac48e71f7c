package flow

import (
	"sync"
	"time"
)

// Throttler rate-limits calls to at most one per interval, firing on the
// leading edge: the first call runs immediately, calls inside the window are
// dropped (not queued), and the first call after the window runs immediately
// again.
type Throttler struct {
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewThrottler creates a Throttler with the given minimum interval between
// accepted calls.
func NewThrottler(interval time.Duration) *Throttler {
	return &Throttler{interval: interval}
}

// Do runs fn if at least the interval has elapsed since the last accepted
// call, and reports whether fn ran. fn executes synchronously while the
// window is held, so accepted calls never interleave.
func (t *Throttler) Do(fn func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	if !t.last.IsZero() && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now

	fn()
	return true
}
