package sway

// Adapter is the boundary through which the engine applies computed values.
// The engine never touches a rendering surface itself: it resolves nothing,
// draws nothing, and only calls SetAttribute once per (target, property) per
// rendered frame.
//
// Implementations must tolerate writes for targets that no longer exist; the
// usual policy is to warn once per target id and then go silent (see
// OncePerTarget). When IsConnected reports false the frame loop treats the
// surface as detached and pauses itself until the host resumes playback.
type Adapter interface {
	IsConnected() bool
	SetAttribute(targetID, name, value string)
}

// TimelineKeyframe is one native-timeline keyframe: an offset in [0, 1]
// within a single iteration, the serialized attribute values that hold at
// that offset, and the easing applied from this keyframe toward the next.
type TimelineKeyframe struct {
	Offset float64
	Easing string
	Values map[string]string
}

// TimelineOptions carries the timing options handed to the platform timeline
// alongside the keyframes. Direction and Fill use their config-file
// spellings. Delay is never negative by the time it reaches the adapter; a
// negative configured delay is realized as an immediate Seek on the handle
// instead.
type TimelineOptions struct {
	Duration   float64
	Delay      float64
	Iterations float64
	Direction  string
	Fill       string
}

// TimelineHandle controls one platform timeline built for one target.
// CurrentTime reports milliseconds into the timeline, delay excluded.
type TimelineHandle interface {
	Play()
	Pause()
	Cancel()
	Finish()
	SetRate(rate float64)
	Seek(ms float64)
	CurrentTime() float64
	IsPlaying() bool
}

// TimelineAdapter is the optional capability that unlocks the native
// timeline backend. CanAnimate is the pre-commit probe: it is asked about
// every (attribute, value) pair the conversion produced, and a single false
// aborts the whole build so the engine falls back to the frame loop.
type TimelineAdapter interface {
	Adapter
	CanAnimate(attr, value string) bool
	BuildTimeline(targetID string, kfs []TimelineKeyframe, opts TimelineOptions) (TimelineHandle, error)
}

// OncePerTarget tracks which target ids have already been reported, so an
// adapter can warn the first time a write lands on a vanished target and
// stay silent for that target afterwards. The zero value is ready to use.
// Not safe for concurrent use; guard it with the adapter's own lock if the
// adapter is shared.
type OncePerTarget struct {
	seen map[string]bool
}

// First reports whether target has not been seen before, marking it seen.
func (o *OncePerTarget) First(target string) bool {
	if o.seen[target] {
		return false
	}
	if o.seen == nil {
		o.seen = make(map[string]bool)
	}
	o.seen[target] = true
	return true
}
