package sway

import (
	"math"
	"testing"
)

func scalarTrack(prop string, kfs ...Keyframe) Track {
	return Track{Property: prop, Keyframes: kfs}
}

func TestTrackSampleHoldsOutsideKeyframes(t *testing.T) {
	tr := scalarTrack("r",
		Keyframe{Time: 200, Value: ScalarValue(10)},
		Keyframe{Time: 800, Value: ScalarValue(50)},
	)
	// Before the first keyframe the first value holds.
	if got := tr.Sample(0, 1000, ColorSpaceRGB); got.Scalar != 10 {
		t.Errorf("t=0: got %v, want 10", got.Scalar)
	}
	if got := tr.Sample(0.1, 1000, ColorSpaceRGB); got.Scalar != 10 {
		t.Errorf("t=100: got %v, want 10", got.Scalar)
	}
	// After the last, the last.
	if got := tr.Sample(0.9, 1000, ColorSpaceRGB); got.Scalar != 50 {
		t.Errorf("t=900: got %v, want 50", got.Scalar)
	}
	if got := tr.Sample(1, 1000, ColorSpaceRGB); got.Scalar != 50 {
		t.Errorf("t=1000: got %v, want 50", got.Scalar)
	}
}

func TestTrackSampleRemapsIntoPairSpan(t *testing.T) {
	tr := scalarTrack("r",
		Keyframe{Time: 200, Value: ScalarValue(10)},
		Keyframe{Time: 800, Value: ScalarValue(50)},
	)
	// t=500 is halfway through the 200..800 span.
	if got := tr.Sample(0.5, 1000, ColorSpaceRGB); math.Abs(got.Scalar-30) > 1e-9 {
		t.Errorf("midpoint = %v, want 30", got.Scalar)
	}
	if got := tr.Sample(0.35, 1000, ColorSpaceRGB); math.Abs(got.Scalar-20) > 1e-9 {
		t.Errorf("quarter = %v, want 20", got.Scalar)
	}
}

func TestTrackSampleAppliesStartKeyframeEasing(t *testing.T) {
	square := func(p float64) float64 { return p * p }
	tr := scalarTrack("opacity",
		Keyframe{Time: 0, Value: ScalarValue(0), Easing: square},
		Keyframe{Time: 1000, Value: ScalarValue(100)},
	)
	// local 0.5 eased to 0.25.
	if got := tr.Sample(0.5, 1000, ColorSpaceRGB); math.Abs(got.Scalar-25) > 1e-9 {
		t.Errorf("eased midpoint = %v, want 25", got.Scalar)
	}
	// The easing shapes only its own segment.
	tr = scalarTrack("opacity",
		Keyframe{Time: 0, Value: ScalarValue(0), Easing: square},
		Keyframe{Time: 500, Value: ScalarValue(50)},
		Keyframe{Time: 1000, Value: ScalarValue(100)},
	)
	if got := tr.Sample(0.75, 1000, ColorSpaceRGB); math.Abs(got.Scalar-75) > 1e-9 {
		t.Errorf("second segment = %v, want linear 75", got.Scalar)
	}
}

func TestTrackSampleMultiSegment(t *testing.T) {
	tr := scalarTrack("x",
		Keyframe{Time: 0, Value: ScalarValue(0)},
		Keyframe{Time: 250, Value: ScalarValue(100)},
		Keyframe{Time: 1000, Value: ScalarValue(400)},
	)
	cases := []struct {
		progress float64
		want     float64
	}{
		{0, 0},
		{0.125, 50},
		{0.25, 100},
		{0.625, 250},
		{1, 400},
	}
	for _, tc := range cases {
		if got := tr.Sample(tc.progress, 1000, ColorSpaceRGB); math.Abs(got.Scalar-tc.want) > 1e-9 {
			t.Errorf("progress %v = %v, want %v", tc.progress, got.Scalar, tc.want)
		}
	}
}

func TestTrackSampleZeroSpanJumpsToNext(t *testing.T) {
	tr := scalarTrack("x",
		Keyframe{Time: 0, Value: ScalarValue(0)},
		Keyframe{Time: 500, Value: ScalarValue(10)},
		Keyframe{Time: 500, Value: ScalarValue(20)},
		Keyframe{Time: 1000, Value: ScalarValue(30)},
	)
	// The seam instant still belongs to the segment ending there; just past
	// it the later duplicate takes over.
	if got := tr.Sample(0.5, 1000, ColorSpaceRGB); math.Abs(got.Scalar-10) > 1e-9 {
		t.Errorf("at the seam = %v, want 10", got.Scalar)
	}
	if got := tr.Sample(0.5001, 1000, ColorSpaceRGB); math.Abs(got.Scalar-20) > 0.01 {
		t.Errorf("past the seam = %v, want ~20", got.Scalar)
	}
	if got := tr.Sample(0.75, 1000, ColorSpaceRGB); math.Abs(got.Scalar-25) > 1e-9 {
		t.Errorf("after the seam = %v, want 25", got.Scalar)
	}
}

func TestTrackSampleEmptyTrack(t *testing.T) {
	var tr Track
	if got := tr.Sample(0.5, 1000, ColorSpaceRGB); got.Kind != ValueNone {
		t.Errorf("empty track sampled to %+v", got)
	}
}

func TestTrackSampleColorUsesBlendSpace(t *testing.T) {
	tr := scalarTrack("fill",
		Keyframe{Time: 0, Value: ColorValue(Color{1, 0, 0, 1})},
		Keyframe{Time: 1000, Value: ColorValue(Color{0, 0, 1, 1})},
	)
	rgb := tr.Sample(0.5, 1000, ColorSpaceRGB)
	hcl := tr.Sample(0.5, 1000, ColorSpaceHCL)
	if colorsClose(rgb.Color, hcl.Color, 0.01) {
		t.Errorf("blend space ignored: rgb %+v vs hcl %+v", rgb.Color, hcl.Color)
	}
}

func TestTrackSampleScalarDoesNotAllocate(t *testing.T) {
	tr := scalarTrack("r",
		Keyframe{Time: 0, Value: ScalarValue(0)},
		Keyframe{Time: 1000, Value: ScalarValue(100)},
	)
	allocs := testing.AllocsPerRun(100, func() {
		_ = tr.Sample(0.37, 1000, ColorSpaceRGB)
	})
	if allocs != 0 {
		t.Errorf("Sample allocated %v times per run, want 0", allocs)
	}
}
