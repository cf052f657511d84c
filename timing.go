package sway

import "math"

// frameProgress is the per-render timing state derived from an absolute
// timeline position.
type frameProgress struct {
	Iteration float64 // zero-based iteration index (float64 so Infinite-safe)
	Raw       float64 // unreversed progress through the iteration, in [0, 1]
	Effective float64 // direction-mapped progress fed to keyframe lookup
}

// progressAt derives iteration index and progress for an absolute time.
//
// An exact iteration boundary belongs to the iteration it completes: raw
// progress is 1 there, not the next iteration's 0. The first iteration spans
// [0, 1] inclusive on both ends, later ones span (0, 1].
func progressAt(timeMs float64, cfg Config) frameProgress {
	dur := cfg.Duration
	idx := math.Ceil(timeMs/dur) - 1
	if idx < 0 {
		idx = 0
	}
	if max := cfg.Iterations - 1; !math.IsInf(max, 1) && idx > max {
		idx = max
	}
	iterationTime := timeMs - idx*dur
	raw := iterationTime / dur
	if raw < 0 {
		raw = 0
	} else if raw > 1 {
		raw = 1
	}
	return frameProgress{
		Iteration: idx,
		Raw:       raw,
		Effective: applyDirection(raw, idx, cfg.Direction),
	}
}

// applyDirection maps raw progress through the configured direction for the
// given iteration index.
func applyDirection(raw, iteration float64, dir Direction) float64 {
	odd := math.Mod(iteration, 2) == 1
	switch dir {
	case DirectionReverse:
		return 1 - raw
	case DirectionAlternate:
		if odd {
			return 1 - raw
		}
	case DirectionAlternateReverse:
		if !odd {
			return 1 - raw
		}
	}
	return raw
}

// clampTime clamps an absolute time into [0, total]. The clamp is a no-op on
// the upper side for infinite totals.
func clampTime(t, total float64) float64 {
	if t < 0 {
		return 0
	}
	if !math.IsInf(total, 1) && t > total {
		return total
	}
	return t
}
