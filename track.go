package sway

// Keyframe is one normalized (time, value, easing) triple on a property
// track. Time is in milliseconds within [0, Config.Duration]. The easing
// shapes the segment from this keyframe to the next one; a nil Easing is
// linear.
type Keyframe struct {
	Time   float64
	Value  Value
	Easing Easing
	// EasingSpec is the canonical spelling of the easing ("ease-in-out",
	// "cubic-bezier(0.4,0,0.2,1)", ...) carried along so the native timeline
	// conversion can hand it to the platform. Empty means linear.
	EasingSpec string
}

// Track is the normalized keyframe list for one animated property, sorted
// ascending by time with duplicate times collapsed to the last occurrence.
type Track struct {
	Property  string
	Keyframes []Keyframe
}

// TargetTracks groups the property tracks bound to one target element.
type TargetTracks struct {
	TargetID string
	Tracks   []Track
}

// Sample evaluates the track at an effective progress in [0, 1] over one
// iteration of the given duration. The bounding keyframe pair is located by
// linear scan (tracks hold a handful of keyframes at most), progress is
// remapped into the pair's local [0, 1] span, the start keyframe's easing is
// applied to the local value, and the pair is interpolated by value kind.
// Before the first keyframe the first value holds; after the last, the last.
func (tr Track) Sample(progress, duration float64, space ColorSpace) Value {
	kfs := tr.Keyframes
	if len(kfs) == 0 {
		return Value{}
	}
	t := progress * duration
	if t <= kfs[0].Time {
		return kfs[0].Value
	}
	last := kfs[len(kfs)-1]
	if t >= last.Time {
		return last.Value
	}
	for i := 0; i < len(kfs)-1; i++ {
		cur, next := kfs[i], kfs[i+1]
		if t > next.Time {
			continue
		}
		span := next.Time - cur.Time
		if span <= 0 {
			return next.Value
		}
		local := (t - cur.Time) / span
		if cur.Easing != nil {
			local = cur.Easing(local)
		}
		return lerpValue(cur.Value, next.Value, local, space)
	}
	return last.Value
}
