package sway

import (
	"math"
	"sync"
	"time"
)

// frameLoop is the software backend. It integrates wall-clock time into a
// timeline position, renders through the interpolation pipeline on every
// scheduler tick, and implements the lifecycle state machine the facade
// exposes.
//
// All state lives behind one mutex. Callbacks and renders run with the lock
// released, so re-entrant lifecycle calls from inside a callback are legal
// and take effect immediately.
type frameLoop struct {
	mu sync.Mutex

	norm      *normalized
	adapter   Adapter
	scheduler Scheduler
	clock     Clock
	callbacks Callbacks

	// accumulated is the logical timeline position in milliseconds gathered
	// before the current run. It starts at -Delay, so a negative delay means
	// "already advanced" and a positive one counts down before 0 is reached.
	accumulated float64
	runStart    time.Time // wall clock when the current run began; zero while not playing
	rate        float64
	playing     bool
	finished    bool // finish signaled; cleared only by Cancel
	destroyed   bool

	cancelTick  func()
	lastRender  time.Time
	hasRendered bool
}

func newFrameLoop(norm *normalized, adapter Adapter, scheduler Scheduler, clock Clock, rate float64, callbacks Callbacks) *frameLoop {
	return &frameLoop{
		norm:        norm,
		adapter:     adapter,
		scheduler:   scheduler,
		clock:       clock,
		callbacks:   callbacks,
		rate:        rate,
		accumulated: -norm.cfg.Delay,
	}
}

// currentLocked returns the unclamped logical time: the accumulator plus the
// wall-clock run time scaled by the playback rate. Callers clamp for
// rendering and reporting; the accumulator itself keeps negative values so a
// pause during the delay phase preserves the remaining delay.
func (f *frameLoop) currentLocked(now time.Time) float64 {
	t := f.accumulated
	if f.playing {
		t += float64(now.Sub(f.runStart)) / float64(time.Millisecond) * f.rate
	}
	return t
}

// scheduleLocked cancels any pending tick and schedules the next one. At
// most one callback is ever pending, so ticks cannot overlap themselves.
func (f *frameLoop) scheduleLocked() {
	if f.cancelTick != nil {
		f.cancelTick()
	}
	f.cancelTick = f.scheduler.Schedule(f.tick)
}

func (f *frameLoop) cancelTickLocked() {
	if f.cancelTick != nil {
		f.cancelTick()
		f.cancelTick = nil
	}
}

func (f *frameLoop) render(timeMs float64) {
	renderFrame(f.norm.targets, f.norm.cfg, f.adapter, timeMs)
}

// renderNow renders a frame at the current logical time. The facade calls
// this once after construction so the surface shows the starting pose before
// playback begins.
func (f *frameLoop) renderNow() {
	f.mu.Lock()
	if f.destroyed {
		f.mu.Unlock()
		return
	}
	t := clampTime(f.currentLocked(f.clock.Now()), f.norm.cfg.Total())
	f.mu.Unlock()
	f.render(t)
}

// Play starts or resumes playback. Already playing is a no-op. OnPlay fires
// whenever the state actually flips, even when resuming at the very end;
// checking for that is the caller's business.
func (f *frameLoop) Play() {
	f.mu.Lock()
	if f.destroyed || f.playing {
		f.mu.Unlock()
		return
	}
	f.playing = true
	f.runStart = f.clock.Now()
	f.scheduleLocked()
	cb := f.callbacks.OnPlay
	f.mu.Unlock()
	fire(cb)
}

// Pause captures the current computed time into the accumulator, stops the
// tick, and renders one frame at the captured time so the visible state
// matches the logical state at the pause instant. Pausing while not playing
// changes nothing.
func (f *frameLoop) Pause() {
	f.mu.Lock()
	if f.destroyed || !f.playing {
		f.mu.Unlock()
		return
	}
	f.accumulated = f.currentLocked(f.clock.Now())
	f.runStart = time.Time{}
	f.playing = false
	f.cancelTickLocked()
	t := clampTime(f.accumulated, f.norm.cfg.Total())
	cb := f.callbacks.OnPause
	f.mu.Unlock()
	f.render(t)
	fire(cb)
}

// Cancel stops playback, zeroes the clock, clears the finish latch, and
// renders the frame at time 0. OnFinish never fires from here.
func (f *frameLoop) Cancel() {
	f.mu.Lock()
	if f.destroyed {
		f.mu.Unlock()
		return
	}
	f.playing = false
	f.runStart = time.Time{}
	f.cancelTickLocked()
	f.accumulated = 0
	f.finished = false
	cb := f.callbacks.OnCancel
	f.mu.Unlock()
	f.render(0)
	fire(cb)
}

// Finish jumps to the end of the timeline, renders the final frame, and
// fires OnFinish once per play cycle. With infinite iterations the current
// time stays where it is; the finish signal still fires.
func (f *frameLoop) Finish() {
	f.mu.Lock()
	if f.destroyed {
		f.mu.Unlock()
		return
	}
	total := f.norm.cfg.Total()
	if math.IsInf(total, 1) {
		f.accumulated = f.currentLocked(f.clock.Now())
	} else {
		f.accumulated = total
	}
	f.playing = false
	f.runStart = time.Time{}
	f.cancelTickLocked()
	t := clampTime(f.accumulated, total)
	var cb func()
	if !f.finished {
		f.finished = true
		cb = f.callbacks.OnFinish
	}
	f.mu.Unlock()
	f.render(t)
	fire(cb)
}

// SetRate re-baselines the accumulator at the current logical time before
// applying the new rate, so a rate change never jumps the visible time. The
// facade validates rates; by the time a rate reaches here it is finite and
// nonzero.
func (f *frameLoop) SetRate(rate float64) {
	f.mu.Lock()
	if f.destroyed {
		f.mu.Unlock()
		return
	}
	now := f.clock.Now()
	f.accumulated = f.currentLocked(now)
	if f.playing {
		f.runStart = now
	}
	f.rate = rate
	f.mu.Unlock()
}

// CurrentTime reports the clamped logical time in milliseconds.
func (f *frameLoop) CurrentTime() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return clampTime(f.currentLocked(f.clock.Now()), f.norm.cfg.Total())
}

// SetCurrentTime seeks. The time clamps into [0, total], the accumulator
// takes the clamped value, the run re-stamps if playing, and a frame renders
// immediately. Seeking does not clear the finish latch.
func (f *frameLoop) SetCurrentTime(ms float64) {
	f.mu.Lock()
	if f.destroyed {
		f.mu.Unlock()
		return
	}
	t := clampTime(ms, f.norm.cfg.Total())
	f.accumulated = t
	if f.playing {
		f.runStart = f.clock.Now()
	}
	f.mu.Unlock()
	f.render(t)
}

// IsPlaying reports whether the loop is running.
func (f *frameLoop) IsPlaying() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playing
}

// Destroy stops the loop and releases the scheduled tick. Every later call
// on this backend is a safe no-op, and no callbacks fire from here.
func (f *frameLoop) Destroy() {
	f.mu.Lock()
	if f.destroyed {
		f.mu.Unlock()
		return
	}
	f.destroyed = true
	f.playing = false
	f.runStart = time.Time{}
	f.cancelTickLocked()
	f.mu.Unlock()
}

// tick is the per-frame body scheduled through the Scheduler.
func (f *frameLoop) tick() {
	// A detached surface is an implicit pause, never a finish. External
	// re-attachment plus Play resumes from the captured time.
	if f.adapter != nil && !f.adapter.IsConnected() {
		f.Pause()
		return
	}

	f.mu.Lock()
	if f.destroyed || !f.playing {
		f.mu.Unlock()
		return
	}
	now := f.clock.Now()
	total := f.norm.cfg.Total()
	t := clampTime(f.currentLocked(now), total)

	// Frame-rate cap: skip the render but keep the loop alive.
	if hz := f.norm.cfg.FrameRateCap; hz > 0 && f.hasRendered {
		minGap := time.Duration(1000 / hz * float64(time.Millisecond))
		if now.Sub(f.lastRender) < minGap {
			f.scheduleLocked()
			f.mu.Unlock()
			return
		}
	}

	// Natural completion: final frame, one finish signal, loop stops.
	if !math.IsInf(total, 1) && t >= total {
		f.accumulated = total
		f.playing = false
		f.runStart = time.Time{}
		f.cancelTickLocked()
		f.lastRender = now
		f.hasRendered = true
		var cb func()
		if !f.finished {
			f.finished = true
			cb = f.callbacks.OnFinish
		}
		f.mu.Unlock()
		f.render(total)
		fire(cb)
		return
	}

	f.lastRender = now
	f.hasRendered = true
	f.scheduleLocked()
	f.mu.Unlock()
	f.render(t)
}

func fire(cb func()) {
	if cb != nil {
		cb()
	}
}
