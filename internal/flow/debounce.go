// Package flow provides call-coalescing primitives: debouncing (collapse a
// burst of calls into the last one) and throttling (leading-edge rate
// limiting with in-window drops).
package flow

import (
	"sync"
	"time"
)

// Debouncer coalesces a burst of calls into a single invocation of the most
// recently submitted function, fired once the burst has been quiet for the
// configured delay. Safe for concurrent use; each Debouncer owns its own
// timer state.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer creates a Debouncer with the given quiet delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Do schedules fn to run after the quiet delay, cancelling any previously
// scheduled function. Only the last submission in a burst runs, so callers
// pass a closure capturing the arguments of that call.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending invocation. It does not wait for a running fn.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
