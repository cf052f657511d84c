package sway

import (
	"math"
	"testing"
)

func timingConfig(duration, iterations float64, dir Direction) Config {
	cfg := defaultConfig()
	cfg.Duration = duration
	cfg.Iterations = iterations
	cfg.Direction = dir
	return cfg
}

func TestProgressAtFirstIterationSpansInclusive(t *testing.T) {
	cfg := timingConfig(100, 3, DirectionNormal)

	fp := progressAt(0, cfg)
	if fp.Iteration != 0 || fp.Raw != 0 {
		t.Errorf("at 0: iteration=%v raw=%v, want 0 and 0", fp.Iteration, fp.Raw)
	}

	fp = progressAt(50, cfg)
	if fp.Iteration != 0 || fp.Raw != 0.5 {
		t.Errorf("at 50: iteration=%v raw=%v, want 0 and 0.5", fp.Iteration, fp.Raw)
	}
}

func TestProgressAtBoundaryBelongsToCompletingIteration(t *testing.T) {
	cfg := timingConfig(100, 3, DirectionNormal)

	// 100 completes iteration 0 with raw progress 1, it does not open
	// iteration 1 at raw progress 0.
	fp := progressAt(100, cfg)
	if fp.Iteration != 0 {
		t.Errorf("at 100: iteration = %v, want 0", fp.Iteration)
	}
	if fp.Raw != 1 {
		t.Errorf("at 100: raw = %v, want 1", fp.Raw)
	}

	fp = progressAt(200, cfg)
	if fp.Iteration != 1 || fp.Raw != 1 {
		t.Errorf("at 200: iteration=%v raw=%v, want 1 and 1", fp.Iteration, fp.Raw)
	}

	// Just past the boundary the next iteration has begun.
	fp = progressAt(100.01, cfg)
	if fp.Iteration != 1 {
		t.Errorf("at 100.01: iteration = %v, want 1", fp.Iteration)
	}
}

func TestProgressAtClampsToLastIteration(t *testing.T) {
	cfg := timingConfig(100, 3, DirectionNormal)

	fp := progressAt(1000, cfg)
	if fp.Iteration != 2 {
		t.Errorf("iteration = %v, want 2", fp.Iteration)
	}
	if fp.Raw != 1 {
		t.Errorf("raw = %v, want 1", fp.Raw)
	}
}

func TestProgressAtAlternateDirection(t *testing.T) {
	// Absolute time 150 sits in iteration 1 (reversed), 250 in iteration 2
	// (forward again). Both land on effective progress 0.5.
	cfg := timingConfig(100, 3, DirectionAlternate)

	fp := progressAt(150, cfg)
	if fp.Iteration != 1 {
		t.Fatalf("at 150: iteration = %v, want 1", fp.Iteration)
	}
	if fp.Effective != 0.5 {
		t.Errorf("at 150: effective = %v, want 0.5", fp.Effective)
	}

	fp = progressAt(250, cfg)
	if fp.Iteration != 2 {
		t.Fatalf("at 250: iteration = %v, want 2", fp.Iteration)
	}
	if fp.Effective != 0.5 {
		t.Errorf("at 250: effective = %v, want 0.5", fp.Effective)
	}

	// Away from the midpoint the orientation is visible.
	fp = progressAt(125, cfg)
	if fp.Effective != 0.75 {
		t.Errorf("at 125: effective = %v, want 0.75 (reversed 0.25)", fp.Effective)
	}
}

func TestApplyDirectionMapping(t *testing.T) {
	cases := []struct {
		dir       Direction
		iteration float64
		raw       float64
		want      float64
	}{
		{DirectionNormal, 0, 0.25, 0.25},
		{DirectionNormal, 1, 0.25, 0.25},
		{DirectionReverse, 0, 0.25, 0.75},
		{DirectionReverse, 1, 0.25, 0.75},
		{DirectionAlternate, 0, 0.25, 0.25},
		{DirectionAlternate, 1, 0.25, 0.75},
		{DirectionAlternate, 2, 0.25, 0.25},
		{DirectionAlternateReverse, 0, 0.25, 0.75},
		{DirectionAlternateReverse, 1, 0.25, 0.25},
		{DirectionAlternateReverse, 2, 0.25, 0.75},
	}
	for _, c := range cases {
		got := applyDirection(c.raw, c.iteration, c.dir)
		if got != c.want {
			t.Errorf("%v iteration %v raw %v = %v, want %v", c.dir, c.iteration, c.raw, got, c.want)
		}
	}
}

func TestProgressAtInfiniteIterations(t *testing.T) {
	cfg := timingConfig(100, Infinite, DirectionAlternate)

	fp := progressAt(1e9+50, cfg)
	if fp.Raw != 0.5 {
		t.Errorf("raw = %v, want 0.5", fp.Raw)
	}
	if math.IsNaN(fp.Effective) {
		t.Error("effective is NaN for infinite iterations")
	}
}

func TestClampTime(t *testing.T) {
	if got := clampTime(-5, 100); got != 0 {
		t.Errorf("clampTime(-5) = %v, want 0", got)
	}
	if got := clampTime(150, 100); got != 100 {
		t.Errorf("clampTime(150) = %v, want 100", got)
	}
	if got := clampTime(1e12, math.Inf(1)); got != 1e12 {
		t.Errorf("clampTime with infinite total = %v, want 1e12", got)
	}
}

func TestConfigTotal(t *testing.T) {
	cfg := timingConfig(100, 3, DirectionNormal)
	if got := cfg.Total(); got != 300 {
		t.Errorf("Total = %v, want 300", got)
	}
	cfg.Iterations = Infinite
	if !math.IsInf(cfg.Total(), 1) {
		t.Errorf("Total = %v, want +Inf", cfg.Total())
	}
}
