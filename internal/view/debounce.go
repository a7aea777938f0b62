package view

import (
	"sync"
	"time"
)

// Debouncer settles a raw search term after a quiet period, so projections
// are not recomputed on every keystroke. A zero delay settles synchronously,
// which is the behavior the authenticated profile uses; the local profile
// defaults to 300ms.
type Debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	timer    *time.Timer
	raw      string
	settled  string
	onSettle func(string)
}

// NewDebouncer creates a Debouncer. onSettle may be nil; it is invoked
// without the internal lock held whenever a term settles.
func NewDebouncer(delay time.Duration, onSettle func(string)) *Debouncer {
	return &Debouncer{delay: delay, onSettle: onSettle}
}

// Set records the raw term and schedules it to settle after the delay,
// replacing any pending term.
func (d *Debouncer) Set(term string) {
	d.mu.Lock()
	d.raw = term
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if d.delay <= 0 {
		d.settled = term
		fn := d.onSettle
		d.mu.Unlock()
		if fn != nil {
			fn(term)
		}
		return
	}

	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A newer Set may have raced the timer; only the latest raw term wins.
		if d.raw != term {
			d.mu.Unlock()
			return
		}
		d.settled = term
		fn := d.onSettle
		d.mu.Unlock()
		if fn != nil {
			fn(term)
		}
	})
	d.mu.Unlock()
}

// Flush settles the raw term immediately, cancelling any pending timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	term := d.raw
	d.settled = term
	fn := d.onSettle
	d.mu.Unlock()
	if fn != nil {
		fn(term)
	}
}

// Stop cancels any pending settle without firing it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Raw returns the most recently set term.
func (d *Debouncer) Raw() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.raw
}

// Settled returns the term matching is currently performed with.
func (d *Debouncer) Settled() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settled
}
