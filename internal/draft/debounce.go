package draft

import (
	"sync"
	"time"

	"jobeditor/internal/clock"
)

// DefaultDelay is the quiet period before a pending draft write runs.
const DefaultDelay = 500 * time.Millisecond

// Debouncer runs the most recently scheduled function once no newer call has
// arrived for the configured delay. Runs are serialized, and a run that has
// been superseded before it started is skipped.
type Debouncer struct {
	clk   clock.Clock
	delay time.Duration

	runMu sync.Mutex // held while a scheduled function executes

	mu      sync.Mutex
	gen     uint64
	pending func()
	timer   clock.Timer
	stopped bool
}

// NewDebouncer creates a Debouncer. A nil clock uses clock.System and a
// non-positive delay uses DefaultDelay.
func NewDebouncer(clk clock.Clock, delay time.Duration) *Debouncer {
	if clk == nil {
		clk = clock.System
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{clk: clk, delay: delay}
}

// Schedule replaces any pending function with fn and restarts the delay.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = fn
	d.timer = d.clk.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Flush runs the pending function immediately, if any.
func (d *Debouncer) Flush() {
	d.runMu.Lock()
	defer d.runMu.Unlock()
	fn := d.take(0)
	if fn != nil {
		fn()
	}
}

// Stop drops any pending function and waits for a running one to return.
// Later Schedule calls are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	d.runMu.Lock()
	d.runMu.Unlock()
}

// Pending reports whether a function is waiting to run.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) fire(gen uint64) {
	d.runMu.Lock()
	defer d.runMu.Unlock()
	fn := d.take(gen)
	if fn != nil {
		fn()
	}
}

// take claims the pending function. A non-zero gen must match the latest
// schedule.
func (d *Debouncer) take(gen uint64) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != 0 && gen != d.gen {
		return nil
	}
	fn := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return fn
}
