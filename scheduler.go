package sway

import "time"

// Clock supplies the wall-clock time the frame loop integrates against.
// Engines default to the system clock; tests and offline samplers install a
// ManualClock to scrub time by hand.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Scheduler delivers single-shot frame callbacks. Schedule arranges for fn
// to run once at the next frame opportunity and returns a cancel function
// that is safe to call whether or not fn has already run. The frame loop
// keeps at most one callback scheduled at a time, cancelling any pending one
// before scheduling the next, so callbacks never overlap themselves.
type Scheduler interface {
	Schedule(fn func()) (cancel func())
}

// NewTimerScheduler returns a Scheduler backed by one-shot timers with the
// given interval between frames. Non-positive intervals default to 60 Hz.
// Callbacks run on the timer's goroutine.
func NewTimerScheduler(interval time.Duration) Scheduler {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return timerScheduler{interval: interval}
}

type timerScheduler struct {
	interval time.Duration
}

func (s timerScheduler) Schedule(fn func()) func() {
	t := time.AfterFunc(s.interval, fn)
	return func() { t.Stop() }
}

// ManualScheduler holds scheduled callbacks until the host calls Tick,
// giving deterministic frame delivery for tests and offline sampling. It
// keeps a single pending slot; scheduling replaces any callback already
// waiting. Not safe for concurrent use: controlled-time mode is single
// threaded.
type ManualScheduler struct {
	pending *manualEntry
}

type manualEntry struct {
	fn func()
}

// Schedule implements Scheduler.
func (s *ManualScheduler) Schedule(fn func()) func() {
	entry := &manualEntry{fn: fn}
	s.pending = entry
	return func() {
		if s.pending == entry {
			s.pending = nil
		}
	}
}

// Tick runs the pending callback, if any, and reports whether one ran.
func (s *ManualScheduler) Tick() bool {
	entry := s.pending
	if entry == nil {
		return false
	}
	s.pending = nil
	entry.fn()
	return true
}

// Pending reports whether a callback is waiting for Tick.
func (s *ManualScheduler) Pending() bool { return s.pending != nil }

// ManualClock is a Clock whose time only moves when told to. The zero value
// starts at the zero time, which works fine: the engine only ever measures
// differences.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a ManualClock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now implements Clock.
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// AdvanceMs moves the clock forward by ms milliseconds, the unit all
// animation timing is expressed in.
func (c *ManualClock) AdvanceMs(ms float64) {
	c.now = c.now.Add(time.Duration(ms * float64(time.Millisecond)))
}
