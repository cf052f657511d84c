package sway

import "testing"

func TestTransformCanonicalSpellings(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"translate", "translate", true},
		{"rotate", "rotate", true},
		{"scale", "scale", true},
		{"skewX", "skewX", true},
		{"skew-x", "skewX", true},
		{"skewy", "skewY", true},
		{"opacity", "", false},
		{"transform", "", false},
	}
	for _, tc := range cases {
		got, ok := transformCanonical(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("transformCanonical(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestComposeTransformFixedOrder(t *testing.T) {
	parts := map[string]Value{
		"rotate":    ScalarValue(45),
		"translate": VectorValue(200, 150),
	}
	// Composition order is fixed regardless of map or document order.
	if got := composeTransform(parts); got != "translate(200,150) rotate(45)" {
		t.Errorf("composed = %q", got)
	}

	parts["scale"] = VectorValue(2, 2)
	parts["skewX"] = ScalarValue(10)
	if got := composeTransform(parts); got != "translate(200,150) rotate(45) scale(2,2) skewX(10)" {
		t.Errorf("composed = %q", got)
	}
}

func TestComposeTransformSkipsAbsent(t *testing.T) {
	if got := composeTransform(map[string]Value{}); got != "" {
		t.Errorf("empty = %q", got)
	}
	parts := map[string]Value{
		"translate": {},
		"rotate":    ScalarValue(30),
	}
	if got := composeTransform(parts); got != "rotate(30)" {
		t.Errorf("composed = %q", got)
	}
}

func TestTransformArgs(t *testing.T) {
	if got := transformArgs(ScalarValue(45.5)); got != "45.5" {
		t.Errorf("scalar = %q", got)
	}
	if got := transformArgs(VectorValue(10, 20.25)); got != "10,20.25" {
		t.Errorf("vector = %q", got)
	}
}

func TestMergeTransformTracksUnionOffsets(t *testing.T) {
	tracks := []Track{
		{Property: "translate", Keyframes: []Keyframe{
			{Time: 0, Value: VectorValue(0, 0)},
			{Time: 1000, Value: VectorValue(100, 0)},
		}},
		{Property: "rotate", Keyframes: []Keyframe{
			{Time: 0, Value: ScalarValue(0)},
			{Time: 500, Value: ScalarValue(90)},
			{Time: 1000, Value: ScalarValue(180)},
		}},
	}
	merged := mergeTransformTracks(tracks, 1000, ColorSpaceRGB)
	if merged.Property != "transform" {
		t.Fatalf("property = %q", merged.Property)
	}
	if len(merged.Keyframes) != 3 {
		t.Fatalf("keyframes = %d, want union of 3 times", len(merged.Keyframes))
	}
	wantTimes := []float64{0, 500, 1000}
	for i, w := range wantTimes {
		if merged.Keyframes[i].Time != w {
			t.Errorf("keyframe %d time = %v, want %v", i, merged.Keyframes[i].Time, w)
		}
	}
	// At a time only one track owns, the other contributes its sampled value.
	wantValues := []string{
		"translate(0,0) rotate(0)",
		"translate(50,0) rotate(90)",
		"translate(100,0) rotate(180)",
	}
	for i, w := range wantValues {
		if got := merged.Keyframes[i].Value.Str; got != w {
			t.Errorf("keyframe %d = %q, want %q", i, got, w)
		}
	}
}

func TestMergeTransformTracksCarriesEasing(t *testing.T) {
	square := func(p float64) float64 { return p * p }
	tracks := []Track{
		{Property: "translate", Keyframes: []Keyframe{
			{Time: 0, Value: VectorValue(0, 0)},
			{Time: 1000, Value: VectorValue(100, 0)},
		}},
		{Property: "rotate", Keyframes: []Keyframe{
			{Time: 0, Value: ScalarValue(0), Easing: square, EasingSpec: "in-quad"},
			{Time: 1000, Value: ScalarValue(180)},
		}},
	}
	merged := mergeTransformTracks(tracks, 1000, ColorSpaceRGB)
	// The first eased keyframe at an exact time donates the merged easing.
	if merged.Keyframes[0].EasingSpec != "in-quad" {
		t.Errorf("easing spec = %q, want donated in-quad", merged.Keyframes[0].EasingSpec)
	}
	if merged.Keyframes[0].Easing == nil {
		t.Error("easing func missing")
	}
	if merged.Keyframes[1].Easing != nil {
		t.Error("uneased keyframe gained an easing")
	}
}

func TestMergeTransformTracksSingleTrack(t *testing.T) {
	tracks := []Track{{Property: "scale", Keyframes: []Keyframe{
		{Time: 0, Value: ScalarValue(1)},
		{Time: 1000, Value: ScalarValue(2)},
	}}}
	merged := mergeTransformTracks(tracks, 1000, ColorSpaceRGB)
	if got := merged.Keyframes[0].Value.Str; got != "scale(1)" {
		t.Errorf("start = %q", got)
	}
	if got := merged.Keyframes[1].Value.Str; got != "scale(2)" {
		t.Errorf("end = %q", got)
	}
}

func BenchmarkComposeTransform(b *testing.B) {
	parts := map[string]Value{
		"translate": VectorValue(200, 150),
		"rotate":    ScalarValue(45),
		"scale":     VectorValue(2, 2),
	}
	b.ReportAllocs()
	for b.Loop() {
		_ = composeTransform(parts)
	}
}
