package sway

import (
	"math"
	"strings"

	"github.com/tanema/gween/ease"
)

// Easing maps local keyframe progress in [0, 1] to eased progress. Eased
// values may leave [0, 1] (overshoot curves such as "out-back").
type Easing func(p float64) float64

// EasingLinear is the identity easing.
func EasingLinear(p float64) float64 { return p }

const (
	// bezierEpsilon is the horizontal solve tolerance. Newton-Raphson and the
	// bisection fallback both stop once |x - sampled| < bezierEpsilon.
	bezierEpsilon = 1e-6
	// bezierNewtonIterations bounds the Newton-Raphson refinement.
	bezierNewtonIterations = 8
	// bezierBisectIterations bounds the bisection fallback.
	bezierBisectIterations = 32
)

// CubicBezier returns the easing described by the control points (x1, y1) and
// (x2, y2), matching the CSS cubic-bezier() timing function. The x components
// are clamped into [0, 1] so the curve stays a function of time; y components
// may overshoot.
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	x1 = clamp01(x1)
	x2 = clamp01(x2)

	// Polynomial coefficients for B(t) with B(0) = 0, B(1) = 1.
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(t float64) float64 { return ((ax*t+bx)*t + cx) * t }
	sampleY := func(t float64) float64 { return ((ay*t+by)*t + cy) * t }
	derivX := func(t float64) float64 { return (3*ax*t+2*bx)*t + cx }

	return func(p float64) float64 {
		x := clamp01(p)

		// Newton-Raphson from t = x converges in a few steps for well-behaved
		// curves.
		t := x
		for i := 0; i < bezierNewtonIterations; i++ {
			err := sampleX(t) - x
			if math.Abs(err) < bezierEpsilon {
				return sampleY(t)
			}
			d := derivX(t)
			if math.Abs(d) < bezierEpsilon {
				break // derivative too flat, Newton would diverge
			}
			t -= err / d
		}

		// Bisection fallback handles non-invertible regions (flat or vertical
		// tangents) that defeat Newton-Raphson.
		lo, hi := 0.0, 1.0
		t = x
		for i := 0; i < bezierBisectIterations && lo < hi; i++ {
			sampled := sampleX(t)
			if math.Abs(sampled-x) < bezierEpsilon {
				return sampleY(t)
			}
			if sampled < x {
				lo = t
			} else {
				hi = t
			}
			t = lo + (hi-lo)/2
		}
		return sampleY(t)
	}
}

// cssPresets are the standard CSS timing-function control points.
var cssPresets = map[string][4]float64{
	"ease":        {0.25, 0.1, 0.25, 1},
	"ease-in":     {0.42, 0, 1, 1},
	"ease-out":    {0, 0, 0.58, 1},
	"ease-in-out": {0.42, 0, 0.58, 1},
}

// fromTween adapts a gween ease.TweenFunc to an Easing by sampling it over a
// unit tween (begin 0, change 1, duration 1).
func fromTween(fn ease.TweenFunc) Easing {
	return func(p float64) float64 {
		return float64(fn(float32(clamp01(p)), 0, 1, 1))
	}
}

// tweenPresets names the Penner curves from gween/ease.
var tweenPresets = map[string]ease.TweenFunc{
	"in-quad":        ease.InQuad,
	"out-quad":       ease.OutQuad,
	"in-out-quad":    ease.InOutQuad,
	"in-cubic":       ease.InCubic,
	"out-cubic":      ease.OutCubic,
	"in-out-cubic":   ease.InOutCubic,
	"in-quart":       ease.InQuart,
	"out-quart":      ease.OutQuart,
	"in-out-quart":   ease.InOutQuart,
	"in-quint":       ease.InQuint,
	"out-quint":      ease.OutQuint,
	"in-out-quint":   ease.InOutQuint,
	"in-sine":        ease.InSine,
	"out-sine":       ease.OutSine,
	"in-out-sine":    ease.InOutSine,
	"in-expo":        ease.InExpo,
	"out-expo":       ease.OutExpo,
	"in-out-expo":    ease.InOutExpo,
	"in-circ":        ease.InCirc,
	"out-circ":       ease.OutCirc,
	"in-out-circ":    ease.InOutCirc,
	"in-back":        ease.InBack,
	"out-back":       ease.OutBack,
	"in-out-back":    ease.InOutBack,
	"in-bounce":      ease.InBounce,
	"out-bounce":     ease.OutBounce,
	"in-out-bounce":  ease.InOutBounce,
	"in-elastic":     ease.InElastic,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,
}

// EasingByName resolves a built-in easing preset: "linear", the CSS names
// ("ease", "ease-in", "ease-out", "ease-in-out"), or a Penner curve name with
// or without an "ease-" prefix ("out-bounce", "ease-in-out-cubic", ...).
// Document-defined easings take precedence over presets during normalization.
func EasingByName(name string) (Easing, bool) {
	switch name {
	case "", "linear":
		return EasingLinear, true
	}
	if pts, ok := cssPresets[name]; ok {
		return CubicBezier(pts[0], pts[1], pts[2], pts[3]), true
	}
	if fn, ok := tweenPresets[name]; ok {
		return fromTween(fn), true
	}
	// Penner names may be written with the CSS-style "ease-" prefix.
	if len(name) > 5 && name[:5] == "ease-" {
		if fn, ok := tweenPresets[name[5:]]; ok {
			return fromTween(fn), true
		}
	}
	return nil, false
}

// parseCubicBezier reads a "cubic-bezier(x1, y1, x2, y2)" spelling. Returns
// the compiled curve plus its canonical spelling.
func parseCubicBezier(s string) (Easing, string, bool) {
	const prefix = "cubic-bezier("
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, ")") {
		return nil, "", false
	}
	parts := strings.Split(s[len(prefix):len(s)-1], ",")
	if len(parts) != 4 {
		return nil, "", false
	}
	var pts [4]float64
	for i, p := range parts {
		v, err := parseFloat(strings.TrimSpace(p))
		if err != nil {
			return nil, "", false
		}
		pts[i] = v
	}
	return CubicBezier(pts[0], pts[1], pts[2], pts[3]), formatCubicBezier(pts[0], pts[1], pts[2], pts[3]), true
}

// formatCubicBezier renders control points in the canonical spelling used for
// native timeline options.
func formatCubicBezier(x1, y1, x2, y2 float64) string {
	var b strings.Builder
	b.WriteString("cubic-bezier(")
	b.WriteString(formatNum(x1))
	b.WriteString(",")
	b.WriteString(formatNum(y1))
	b.WriteString(",")
	b.WriteString(formatNum(x2))
	b.WriteString(",")
	b.WriteString(formatNum(y2))
	b.WriteString(")")
	return b.String()
}
