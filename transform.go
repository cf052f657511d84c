package sway

import (
	"sort"
	"strings"
)

// transformOrder is the fixed composition order for transform functions.
// Animated transform properties always compose in this order, regardless of
// document order, so two documents describing the same motion serialize the
// same way.
//
//	translate -> rotate -> scale -> skewX -> skewY
var transformOrder = [...]string{"translate", "rotate", "scale", "skewX", "skewY"}

// transformCanonical maps a property spelling onto its canonical transform
// function name. Reports false for properties outside the transform family.
func transformCanonical(name string) (string, bool) {
	switch name {
	case "translate":
		return "translate", true
	case "rotate":
		return "rotate", true
	case "scale":
		return "scale", true
	case "skewX", "skew-x", "skewx":
		return "skewX", true
	case "skewY", "skew-y", "skewy":
		return "skewY", true
	}
	return "", false
}

func isTransformProperty(name string) bool {
	_, ok := transformCanonical(name)
	return ok
}

// composeTransform renders the present transform functions, keyed by
// canonical name, into one attribute string: "translate(200,150) rotate(45)".
func composeTransform(parts map[string]Value) string {
	var b strings.Builder
	for _, fn := range &transformOrder {
		v, ok := parts[fn]
		if !ok || v.Kind == ValueNone {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(fn)
		b.WriteByte('(')
		b.WriteString(transformArgs(v))
		b.WriteByte(')')
	}
	return b.String()
}

// transformArgs formats a transform function's arguments: a scalar as one
// number, a vector comma-separated.
func transformArgs(v Value) string {
	switch v.Kind {
	case ValueScalar:
		return formatNum(v.Scalar)
	case ValueVector:
		parts := make([]string, len(v.Vector))
		for i, c := range v.Vector {
			parts[i] = formatNum(c)
		}
		return strings.Join(parts, ",")
	default:
		return FormatValue(v)
	}
}

// mergeTransformTracks folds several transform-family tracks into a single
// "transform" track by sampling every track at the union of their keyframe
// times and composing the results. Native timelines animate one transform
// attribute, so separate function tracks must merge before conversion. The
// easing at a merged keyframe comes from the first track holding an eased
// keyframe at that exact time; sampled-only values contribute none.
func mergeTransformTracks(tracks []Track, duration float64, space ColorSpace) Track {
	var times []float64
	seen := make(map[float64]bool)
	for _, tr := range tracks {
		for _, kf := range tr.Keyframes {
			if !seen[kf.Time] {
				seen[kf.Time] = true
				times = append(times, kf.Time)
			}
		}
	}
	sort.Float64s(times)

	kfs := make([]Keyframe, 0, len(times))
	for _, t := range times {
		parts := make(map[string]Value, len(tracks))
		var easing Easing
		var spec string
		for _, tr := range tracks {
			fn, _ := transformCanonical(tr.Property)
			var progress float64
			if duration > 0 {
				progress = t / duration
			}
			parts[fn] = tr.Sample(progress, duration, space)
			if easing == nil {
				if kf, ok := keyframeAt(tr, t); ok && kf.Easing != nil {
					easing, spec = kf.Easing, kf.EasingSpec
				}
			}
		}
		kfs = append(kfs, Keyframe{
			Time:       t,
			Value:      StringValue(composeTransform(parts)),
			Easing:     easing,
			EasingSpec: spec,
		})
	}
	return Track{Property: "transform", Keyframes: kfs}
}

func keyframeAt(tr Track, t float64) (Keyframe, bool) {
	for _, kf := range tr.Keyframes {
		if kf.Time == t {
			return kf, true
		}
	}
	return Keyframe{}, false
}
