package sway

import (
	"math"
	"sync"
)

// Callbacks receives lifecycle notifications. Every field is optional.
// Callbacks run synchronously from the call (or tick) that caused them, with
// no engine lock held, so calling back into the engine from inside one is
// legal. None are guaranteed to fire once Destroy has been called.
type Callbacks struct {
	OnPlay   func()
	OnPause  func()
	OnCancel func()
	OnFinish func()
	OnRemove func()
}

// Options adjusts how NewEngine builds an engine. The zero value keeps every
// choice the document made. Field overrides apply only when set: empty
// strings and zeroes mean "leave it", and the two signed knobs (Delay, Seek)
// are pointers for the same reason.
type Options struct {
	// Adapter applies computed attribute values to the host's element set.
	// Without one the frame loop still runs timing and callbacks, which is
	// enough for offline sampling through CurrentTime.
	Adapter Adapter
	// Scheduler delivers frame callbacks for the frame loop. Nil means a
	// 60 Hz timer; install a ManualScheduler for controlled time.
	Scheduler Scheduler
	// Clock supplies wall-clock time for the frame loop. Nil means the
	// system clock.
	Clock Clock
	// Autoplay starts playback on construction and lets the document's
	// declared trigger stand. Otherwise the trigger is forced to
	// StartProgrammatic and the host calls Play itself.
	Autoplay bool
	// Engine overrides the document's engine hint: "auto", "native" or
	// "frameloop".
	Engine string
	// Duration overrides the per-iteration duration in milliseconds.
	Duration float64
	// Delay overrides the document delay in milliseconds. Negative means
	// "start already advanced".
	Delay *float64
	// Iterations overrides the repeat count. Values below 1 coerce to 1;
	// use Infinite to repeat forever.
	Iterations float64
	// Direction: "normal", "reverse", "alternate" or "alternate-reverse".
	Direction string
	// Fill: "both", "none", "forwards" or "backwards".
	Fill string
	// FrameRateCap limits frame-loop renders, in Hz.
	FrameRateCap float64
	// ColorSpace: "rgb", "hcl" or "lab".
	ColorSpace string
	// Seek positions the timeline at the given millisecond on construction.
	// It wins over Delay when both are set.
	Seek *float64
	// Rate is the initial playback rate. Zero means 1.
	Rate float64
	// Callbacks receives lifecycle notifications.
	Callbacks Callbacks
	// DebugRegister, when set, is handed the engine right after construction
	// so hosts can expose it to their own tooling. The engine never
	// registers itself anywhere on its own.
	DebugRegister func(*Engine)
}

// backend is the uniform surface both execution strategies implement.
type backend interface {
	Play()
	Pause()
	Cancel()
	Finish()
	SetRate(rate float64)
	CurrentTime() float64
	SetCurrentTime(ms float64)
	IsPlaying() bool
	Destroy()
}

// Engine is the playback handle for one document instance. It owns exactly
// one backend, chosen at construction: the adapter's native timeline when
// available and sufficient, the software frame loop otherwise. All methods
// are synchronous, return immediately, and become safe no-ops after Destroy.
type Engine struct {
	mu        sync.Mutex
	norm      *normalized
	backend   backend
	callbacks Callbacks
	destroyed bool
}

// NewEngine builds an engine for the document. Construction never fails: a
// nil or hopeless document yields a not-ready engine whose methods no-op, so
// partially valid input still animates whatever normalization salvaged.
//
// The document is deep-cloned with fresh element identifiers, so several
// engines built from one source document never collide on ids.
func NewEngine(doc *Document, opts Options) *Engine {
	e := &Engine{callbacks: opts.Callbacks}

	norm := normalize(doc, opts)
	if norm == nil {
		Logger().Warn("sway: engine built without a document; all operations no-op")
		if opts.DebugRegister != nil {
			opts.DebugRegister(e)
		}
		return e
	}
	e.norm = norm

	rate := opts.Rate
	if rate == 0 {
		rate = 1
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		Logger().Warn("sway: ignoring invalid initial rate", "rate", opts.Rate)
		rate = 1
	}

	if norm.cfg.Engine != EngineFrameLoop {
		if nb := buildNative(norm, opts.Adapter, rate, opts.Callbacks); nb != nil {
			e.backend = nb
		}
	}
	if e.backend == nil {
		scheduler := opts.Scheduler
		if scheduler == nil {
			scheduler = NewTimerScheduler(0)
		}
		clock := opts.Clock
		if clock == nil {
			clock = systemClock{}
		}
		fl := newFrameLoop(norm, opts.Adapter, scheduler, clock, rate, opts.Callbacks)
		fl.renderNow()
		e.backend = fl
	}

	if opts.DebugRegister != nil {
		opts.DebugRegister(e)
	}
	if opts.Autoplay {
		e.Play()
	}
	return e
}

// live returns the backend, or nil when the engine is destroyed or never got
// one. Backend calls happen outside the engine lock; each backend serializes
// itself.
func (e *Engine) live() backend {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return nil
	}
	return e.backend
}

// IsReady reports whether the engine holds a normalized document and a live
// backend.
func (e *Engine) IsReady() bool {
	return e.live() != nil
}

// Root returns the engine's private copy of the document tree, carrying the
// regenerated element identifiers the adapter will see. Nil when not ready.
func (e *Engine) Root() *Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.norm == nil {
		return nil
	}
	return e.norm.doc.Root
}

// Config returns the canonical merged playback configuration. The zero
// Config when the engine has no document.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.norm == nil {
		return Config{}
	}
	return e.norm.cfg
}

// IsPlaying reports whether playback is running.
func (e *Engine) IsPlaying() bool {
	b := e.live()
	return b != nil && b.IsPlaying()
}

// Play starts or resumes playback.
func (e *Engine) Play() {
	if b := e.live(); b != nil {
		b.Play()
	}
}

// Pause halts playback at the current time.
func (e *Engine) Pause() {
	if b := e.live(); b != nil {
		b.Pause()
	}
}

// Cancel stops playback and rewinds to time 0.
func (e *Engine) Cancel() {
	if b := e.live(); b != nil {
		b.Cancel()
	}
}

// Finish jumps to the end of the timeline.
func (e *Engine) Finish() {
	if b := e.live(); b != nil {
		b.Finish()
	}
}

// SetPlaybackRate changes the playback rate. Zero and non-finite rates are
// rejected with a diagnostic and the prior rate stands.
func (e *Engine) SetPlaybackRate(rate float64) {
	if rate == 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		Logger().Warn("sway: ignoring invalid playback rate", "rate", rate)
		return
	}
	if b := e.live(); b != nil {
		b.SetRate(rate)
	}
}

// CurrentTime reports the clamped timeline position in milliseconds. The
// second return is false once the engine is destroyed or never got a
// backend.
func (e *Engine) CurrentTime() (float64, bool) {
	b := e.live()
	if b == nil {
		return 0, false
	}
	return b.CurrentTime(), true
}

// SetCurrentTime seeks to the given millisecond, clamped into the timeline.
func (e *Engine) SetCurrentTime(ms float64) {
	if b := e.live(); b != nil {
		b.SetCurrentTime(ms)
	}
}

// Destroy tears the backend down and fires OnRemove. Safe to call any
// number of times and after the rendering surface is already gone; every
// other method is a no-op afterwards.
func (e *Engine) Destroy() {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	e.destroyed = true
	b := e.backend
	cb := e.callbacks.OnRemove
	e.mu.Unlock()
	if b != nil {
		b.Destroy()
	}
	fire(cb)
}
