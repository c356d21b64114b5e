// Package pacing schedules mirror ticks against a target frame rate.
package pacing

import "time"

// Pacer owns the one piece of state carried across loop iterations: the
// instant the next tick is due. The mirror loop wakes more often than the
// target rate (the window system delivers events at its own cadence), so the
// pacer's job is to suppress those early wakeups and to reschedule after
// each completed tick.
type Pacer struct {
	interval time.Duration
	next     time.Time
	now      func() time.Time
}

// New returns a pacer targeting fps ticks per second. The first tick is due
// immediately. fps must be positive; the caller validates it.
func New(fps int) *Pacer {
	return NewWithClock(fps, time.Now)
}

// NewWithClock is New with an injectable clock for deterministic tests.
func NewWithClock(fps int, now func() time.Time) *Pacer {
	return &Pacer{
		interval: time.Second / time.Duration(fps),
		next:     now(),
		now:      now,
	}
}

// Due reports whether tick work should run now. A false result is an early
// wakeup: the caller goes back to waiting and the schedule is untouched, so
// unrelated window events never cause extra capture work.
func (p *Pacer) Due() bool {
	return !p.now().Before(p.next)
}

// Finish records that tick work begun at start has completed and schedules
// the next tick at now + max(interval - elapsed, 0). An overrunning tick
// makes the next one due immediately, but the schedule never tries to catch
// up beyond that: drift under sustained overload is tolerated instead of
// dropping frames.
func (p *Pacer) Finish(start time.Time) time.Time {
	remaining := p.interval - p.now().Sub(start)
	if remaining < 0 {
		remaining = 0
	}
	p.next = p.now().Add(remaining)
	return p.next
}
