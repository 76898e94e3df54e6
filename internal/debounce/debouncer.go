// Package debounce coalesces bursts of change notifications into a single
// callback once input has been quiet for an interval.
package debounce

import (
	"time"

	"github.com/Varun5711/link2qr/internal/logger"
)

// Debouncer holds at most one armed timer. Every Trigger replaces the
// previous timer, so N triggers inside one interval produce one fire.
// Not safe for concurrent use; call it from the owning event loop.
type Debouncer struct {
	sched    Scheduler
	interval time.Duration
	fire     func()
	enabled  bool
	pending  Handle
	log      *logger.Logger
}

func New(sched Scheduler, interval time.Duration, fire func(), log *logger.Logger) *Debouncer {
	return &Debouncer{
		sched:    sched,
		interval: interval,
		fire:     fire,
		enabled:  true,
		log:      log,
	}
}

// Trigger re-arms the timer. It returns false, scheduling nothing, while the
// debouncer is disabled.
func (d *Debouncer) Trigger() bool {
	if !d.enabled {
		return false
	}

	d.Cancel()
	var h Handle
	h = d.sched.Schedule(d.interval, func() {
		if d.pending != h {
			return
		}
		d.pending = 0
		d.fire()
	})
	d.pending = h
	d.log.Debug("armed timer %d for %s", h, d.interval)
	return true
}

// Cancel disarms the pending timer, if any.
func (d *Debouncer) Cancel() {
	if d.pending == 0 {
		return
	}
	d.sched.Cancel(d.pending)
	d.log.Debug("cancelled timer %d", d.pending)
	d.pending = 0
}

func (d *Debouncer) Pending() bool {
	return d.pending != 0
}

func (d *Debouncer) Enabled() bool {
	return d.enabled
}

// SetEnabled toggles automatic scheduling. Disabling cancels the pending timer.
func (d *Debouncer) SetEnabled(on bool) {
	d.enabled = on
	if !on {
		d.Cancel()
	}
}

func (d *Debouncer) Interval() time.Duration {
	return d.interval
}
