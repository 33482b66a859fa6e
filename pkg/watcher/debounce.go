package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is used when a Debouncer is created with a zero
// duration.
const DefaultDebounceDuration = 100 * time.Millisecond

// Debouncer coalesces bursts of events into a single callback. Only the
// callback passed to the last Trigger runs, once the burst has been quiet
// for the debounce duration.
type Debouncer struct {
	duration time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	running sync.WaitGroup
}

func NewDebouncer(duration time.Duration) *Debouncer {
	if duration <= 0 {
		duration = DefaultDebounceDuration
	}
	return &Debouncer{duration: duration}
}

// Trigger schedules callback after the debounce duration, replacing any
// callback that has not run yet.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		// A newer Trigger or a Cancel may have raced with this timer firing.
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.running.Add(1)
		d.mu.Unlock()

		defer d.running.Done()
		callback()
	})
}

// Cancel drops the pending callback, if any. A callback that is already
// running is left to finish.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels the pending callback and waits for a running one to
// return. It must not be called from inside a callback.
func (d *Debouncer) Stop() {
	d.Cancel()
	d.running.Wait()
}

func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
