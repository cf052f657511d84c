package sway

import (
	"math"
	"sort"
	"sync"
)

// TimelineNotifier is an optional TimelineHandle capability. Handles that
// can observe natural completion invoke the registered function when the
// timeline finishes on its own; the engine registers on the first handle
// only, the canonical source of truth.
type TimelineNotifier interface {
	NotifyFinish(fn func())
}

// nativeBackend drives playback through platform timelines built once per
// target. It issues control calls and never polls; scheduling belongs
// entirely to the platform. The first handle answers CurrentTime and
// IsPlaying for the whole set.
type nativeBackend struct {
	mu        sync.Mutex
	handles   []TimelineHandle
	callbacks Callbacks
	total     float64
	finished  bool
	destroyed bool
}

// buildNative converts the normalized plan into platform timelines. A nil
// return means the native backend cannot serve this plan and the caller
// falls back to the frame loop: the adapter lacks timeline support, a value
// failed the capability probe, a timeline build errored, or there is nothing
// to animate. When the config forces the native engine, probe failures drop
// the offending property instead of aborting.
func buildNative(norm *normalized, adapter Adapter, rate float64, callbacks Callbacks) *nativeBackend {
	ta, ok := adapter.(TimelineAdapter)
	if !ok {
		if norm.cfg.Engine == EngineNative {
			Logger().Warn("sway: native engine forced but adapter has no timeline support")
		}
		return nil
	}
	forced := norm.cfg.Engine == EngineNative

	type targetPlan struct {
		id  string
		kfs []TimelineKeyframe
	}
	var plans []targetPlan
	for _, tt := range norm.targets {
		kfs, unsupported := convertTarget(tt, norm.cfg)
		if len(unsupported) > 0 {
			if !forced {
				Logger().Debug("sway: properties not expressible natively; using frame loop",
					"target", tt.TargetID, "properties", unsupported)
				return nil
			}
			Logger().Warn("sway: dropping properties the native timeline cannot animate",
				"target", tt.TargetID, "properties", unsupported)
		}

		// Pre-commit capability probe over every (attribute, value) pair.
		rejected := make(map[string]bool)
		for _, kf := range kfs {
			for attr, val := range kf.Values {
				if rejected[attr] || ta.CanAnimate(attr, val) {
					continue
				}
				if !forced {
					Logger().Debug("sway: native probe rejected value; using frame loop",
						"target", tt.TargetID, "attr", attr, "value", val)
					return nil
				}
				rejected[attr] = true
				Logger().Warn("sway: dropping property rejected by native probe",
					"target", tt.TargetID, "attr", attr)
			}
		}
		if len(rejected) > 0 {
			kfs = dropProperties(kfs, rejected)
		}
		if len(kfs) == 0 {
			continue
		}
		plans = append(plans, targetPlan{tt.TargetID, kfs})
	}
	if len(plans) == 0 {
		// Nothing to hand the platform; the frame loop still runs timing and
		// callbacks for empty documents.
		return nil
	}

	opts := TimelineOptions{
		Duration:   norm.cfg.Duration,
		Delay:      math.Max(norm.cfg.Delay, 0),
		Iterations: norm.cfg.Iterations,
		Direction:  norm.cfg.Direction.String(),
		Fill:       norm.cfg.Fill.String(),
	}
	nb := &nativeBackend{callbacks: callbacks, total: norm.cfg.Total()}
	for _, p := range plans {
		h, err := ta.BuildTimeline(p.id, p.kfs, opts)
		if err != nil {
			Logger().Warn("sway: native timeline build failed", "target", p.id, "err", err)
			for _, built := range nb.handles {
				built.Cancel()
			}
			return nil
		}
		nb.handles = append(nb.handles, h)
	}

	if rate != 1 {
		for _, h := range nb.handles {
			h.SetRate(rate)
		}
	}
	// Native timelines do not take negative delays reliably; a configured
	// seek is realized by seeking the running time right after construction.
	if norm.cfg.Delay < 0 {
		seek := math.Mod(-norm.cfg.Delay, norm.cfg.Duration)
		for _, h := range nb.handles {
			h.Seek(seek)
		}
	}
	if notifier, ok := nb.handles[0].(TimelineNotifier); ok {
		notifier.NotifyFinish(nb.naturalFinish)
	}
	return nb
}

// convertTarget produces the native keyframe list for one target: transform
// family tracks merge into a single "transform" key, every other track
// contributes one keyframe entry per keyframe with offset = time/duration.
// Properties whose values cannot cross the native boundary (bezier paths)
// come back in unsupported instead of converting.
func convertTarget(tt TargetTracks, cfg Config) (kfs []TimelineKeyframe, unsupported []string) {
	var transforms, plain []Track
	for _, tr := range tt.Tracks {
		switch {
		case isTransformProperty(tr.Property):
			transforms = append(transforms, tr)
		case trackHasPaths(tr):
			unsupported = append(unsupported, tr.Property)
		default:
			plain = append(plain, tr)
		}
	}
	if len(transforms) > 0 {
		plain = append(plain, mergeTransformTracks(transforms, cfg.Duration, cfg.ColorSpace))
	}
	for _, tr := range plain {
		for _, kf := range tr.Keyframes {
			kfs = append(kfs, TimelineKeyframe{
				Offset: kf.Time / cfg.Duration,
				Easing: kf.EasingSpec,
				Values: map[string]string{tr.Property: FormatValue(kf.Value)},
			})
		}
	}
	sort.SliceStable(kfs, func(i, j int) bool { return kfs[i].Offset < kfs[j].Offset })
	return kfs, unsupported
}

func trackHasPaths(tr Track) bool {
	for _, kf := range tr.Keyframes {
		if kf.Value.Kind == ValuePath {
			return true
		}
	}
	return false
}

// dropProperties filters out keyframe entries carrying a rejected property.
func dropProperties(kfs []TimelineKeyframe, rejected map[string]bool) []TimelineKeyframe {
	out := kfs[:0]
	for _, kf := range kfs {
		keep := true
		for attr := range kf.Values {
			if rejected[attr] {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, kf)
		}
	}
	return out
}

func (n *nativeBackend) blocked() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.destroyed
}

func (n *nativeBackend) Play() {
	if n.blocked() || n.handles[0].IsPlaying() {
		return
	}
	for _, h := range n.handles {
		h.Play()
	}
	fire(n.callbacks.OnPlay)
}

func (n *nativeBackend) Pause() {
	if n.blocked() || !n.handles[0].IsPlaying() {
		return
	}
	for _, h := range n.handles {
		h.Pause()
	}
	fire(n.callbacks.OnPause)
}

func (n *nativeBackend) Cancel() {
	if n.blocked() {
		return
	}
	for _, h := range n.handles {
		h.Cancel()
	}
	n.mu.Lock()
	n.finished = false
	n.mu.Unlock()
	fire(n.callbacks.OnCancel)
}

func (n *nativeBackend) Finish() {
	if n.blocked() {
		return
	}
	for _, h := range n.handles {
		h.Finish()
	}
	n.signalFinish()
}

func (n *nativeBackend) SetRate(rate float64) {
	if n.blocked() {
		return
	}
	for _, h := range n.handles {
		h.SetRate(rate)
	}
}

func (n *nativeBackend) CurrentTime() float64 {
	if n.blocked() {
		return 0
	}
	return clampTime(n.handles[0].CurrentTime(), n.total)
}

func (n *nativeBackend) SetCurrentTime(ms float64) {
	if n.blocked() {
		return
	}
	t := clampTime(ms, n.total)
	for _, h := range n.handles {
		h.Seek(t)
	}
}

func (n *nativeBackend) IsPlaying() bool {
	if n.blocked() {
		return false
	}
	return n.handles[0].IsPlaying()
}

// Destroy cancels every platform timeline and blocks further calls. No
// callbacks fire.
func (n *nativeBackend) Destroy() {
	n.mu.Lock()
	if n.destroyed {
		n.mu.Unlock()
		return
	}
	n.destroyed = true
	n.mu.Unlock()
	for _, h := range n.handles {
		h.Cancel()
	}
}

// naturalFinish handles a completion signal from the platform.
func (n *nativeBackend) naturalFinish() {
	n.signalFinish()
}

// signalFinish fires OnFinish once per play cycle; Cancel rearms it.
func (n *nativeBackend) signalFinish() {
	n.mu.Lock()
	if n.destroyed || n.finished {
		n.mu.Unlock()
		return
	}
	n.finished = true
	cb := n.callbacks.OnFinish
	n.mu.Unlock()
	fire(cb)
}
