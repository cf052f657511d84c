package sway

import (
	"math"
	"testing"
)

func TestCubicBezierLinearControlPointsAreIdentity(t *testing.T) {
	fn := CubicBezier(0, 0, 1, 1)
	for _, p := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
		if got := fn(p); math.Abs(got-p) > 1e-4 {
			t.Errorf("f(%v) = %v, want %v", p, got, p)
		}
	}
}

func TestCubicBezierEndpoints(t *testing.T) {
	for name, pts := range cssPresets {
		fn := CubicBezier(pts[0], pts[1], pts[2], pts[3])
		if got := fn(0); math.Abs(got) > 1e-6 {
			t.Errorf("%s: f(0) = %v, want 0", name, got)
		}
		if got := fn(1); math.Abs(got-1) > 1e-6 {
			t.Errorf("%s: f(1) = %v, want 1", name, got)
		}
	}
}

func TestCubicBezierMatchesKnownCSSValues(t *testing.T) {
	// ease-in-out is point-symmetric, so the midpoint is exactly 0.5; the
	// standard "ease" curve passes ~0.80 at x=0.5.
	inOut := CubicBezier(0.42, 0, 0.58, 1)
	if got := inOut(0.5); math.Abs(got-0.5) > 2e-3 {
		t.Errorf("ease-in-out(0.5) = %v, want ~0.5", got)
	}
	if got := inOut(0.25); got >= 0.25 {
		t.Errorf("ease-in-out(0.25) = %v, want below 0.25 (slow start)", got)
	}

	easeFn := CubicBezier(0.25, 0.1, 0.25, 1)
	if got := easeFn(0.5); math.Abs(got-0.80) > 0.01 {
		t.Errorf("ease(0.5) = %v, want ~0.80", got)
	}
}

func TestCubicBezierMonotoneForMonotoneCurve(t *testing.T) {
	fn := CubicBezier(0.42, 0, 0.58, 1)
	prev := fn(0)
	for p := 0.01; p <= 1.0001; p += 0.01 {
		got := fn(p)
		if got < prev-1e-6 {
			t.Fatalf("f(%v) = %v decreased below %v", p, got, prev)
		}
		prev = got
	}
}

func TestCubicBezierDegenerateDerivativeFallsBackToBisection(t *testing.T) {
	// (0, 1, 1, 0) has a flat x-derivative at t=0; Newton-Raphson cannot
	// start there and the bisection fallback has to solve it. The control
	// polygon is point-symmetric, so f(0.5) is exactly 0.5.
	fn := CubicBezier(0, 1, 1, 0)
	if got := fn(0.5); math.Abs(got-0.5) > 2e-3 {
		t.Errorf("f(0.5) = %v, want ~0.5", got)
	}
	for p := 0.0; p <= 1.0001; p += 0.05 {
		got := fn(p)
		if math.IsNaN(got) || got < -0.2 || got > 1.2 {
			t.Fatalf("f(%v) = %v, out of plausible range", p, got)
		}
	}
}

func TestEasingByNameResolvesPresets(t *testing.T) {
	for _, name := range []string{
		"linear", "ease", "ease-in", "ease-out", "ease-in-out",
		"out-bounce", "in-out-cubic", "ease-out-quad", "ease-in-out-elastic",
	} {
		fn, ok := EasingByName(name)
		if !ok {
			t.Errorf("%q did not resolve", name)
			continue
		}
		if got := fn(1); math.Abs(got-1) > 1e-3 {
			t.Errorf("%s(1) = %v, want ~1", name, got)
		}
	}
	if _, ok := EasingByName("bogus"); ok {
		t.Error("unknown name resolved")
	}
}

func TestEasingByNamePennerValues(t *testing.T) {
	fn, ok := EasingByName("out-quad")
	if !ok {
		t.Fatal("out-quad did not resolve")
	}
	// OutQuad at the midpoint is 0.75.
	if got := fn(0.5); math.Abs(got-0.75) > 0.01 {
		t.Errorf("out-quad(0.5) = %v, want ~0.75", got)
	}
}

func TestEasingOvershootCurveLeavesUnitRange(t *testing.T) {
	fn, ok := EasingByName("out-back")
	if !ok {
		t.Fatal("out-back did not resolve")
	}
	max := 0.0
	for p := 0.0; p <= 1.0001; p += 0.01 {
		if got := fn(p); got > max {
			max = got
		}
	}
	if max <= 1.001 {
		t.Errorf("out-back never overshot: max = %v", max)
	}
}

func TestParseCubicBezierString(t *testing.T) {
	fn, canonical, ok := parseCubicBezier("cubic-bezier(0.42, 0, 0.58, 1)")
	if !ok {
		t.Fatal("did not parse")
	}
	if canonical != "cubic-bezier(0.42,0,0.58,1)" {
		t.Errorf("canonical = %q", canonical)
	}
	if got := fn(0.5); math.Abs(got-0.5) > 2e-3 {
		t.Errorf("f(0.5) = %v, want ~0.5", got)
	}

	for _, bad := range []string{"cubic-bezier(1,2,3)", "cubic-bezier(a,b,c,d)", "bezier(0,0,1,1)", "cubic-bezier(0,0,1,1"} {
		if _, _, ok := parseCubicBezier(bad); ok {
			t.Errorf("%q parsed, want failure", bad)
		}
	}
}
