package sway

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Animated color attributes are interpolated in this form and serialized back
// to hex or rgba() strings at the adapter boundary.
type Color struct {
	R, G, B, A float64
}

// ColorBlack is the zero-value fallback for unparseable colors (opaque black).
var ColorBlack = Color{0, 0, 0, 1}

// Vec2 is a 2D point used for path vertices and control handles.
type Vec2 struct {
	X, Y float64
}

// Infinite marks an animation that repeats forever. Assign it to
// Config.Iterations or Options.Iterations.
var Infinite = math.Inf(1)

// EngineHint selects the playback backend for a document.
type EngineHint uint8

const (
	// EngineAuto prefers the adapter's native timeline and falls back to the
	// frame loop when the document uses features the timeline cannot express.
	EngineAuto EngineHint = iota
	// EngineNative forces the native timeline. Properties the timeline cannot
	// represent are dropped with a diagnostic instead of blocking the build.
	EngineNative
	// EngineFrameLoop forces the software frame loop.
	EngineFrameLoop
)

// String returns the config-file spelling of the hint.
func (h EngineHint) String() string {
	switch h {
	case EngineNative:
		return "native"
	case EngineFrameLoop:
		return "frameloop"
	default:
		return "auto"
	}
}

// parseEngineHint maps a config-file spelling onto an EngineHint.
func parseEngineHint(s string) (EngineHint, bool) {
	switch s {
	case "auto", "":
		return EngineAuto, true
	case "native":
		return EngineNative, true
	case "frameloop", "frame-loop", "loop":
		return EngineFrameLoop, true
	}
	return EngineAuto, false
}

// Direction controls how iteration progress maps onto keyframe progress.
type Direction uint8

const (
	DirectionNormal           Direction = iota // forward every iteration
	DirectionReverse                           // backward every iteration
	DirectionAlternate                         // forward first, then ping-pong
	DirectionAlternateReverse                  // backward first, then ping-pong
)

// String returns the config-file spelling of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionReverse:
		return "reverse"
	case DirectionAlternate:
		return "alternate"
	case DirectionAlternateReverse:
		return "alternate-reverse"
	default:
		return "normal"
	}
}

func parseDirection(s string) (Direction, bool) {
	switch s {
	case "normal", "":
		return DirectionNormal, true
	case "reverse":
		return DirectionReverse, true
	case "alternate":
		return DirectionAlternate, true
	case "alternate-reverse", "alternate_reverse":
		return DirectionAlternateReverse, true
	}
	return DirectionNormal, false
}

// FillMode describes how values apply outside the active interval. The frame
// loop always renders clamped time; the fill mode is forwarded verbatim to
// native timeline options.
type FillMode uint8

const (
	FillBoth FillMode = iota // hold first frame before start and last after end
	FillNone
	FillForwards
	FillBackwards
)

// String returns the config-file spelling of the fill mode.
func (f FillMode) String() string {
	switch f {
	case FillNone:
		return "none"
	case FillForwards:
		return "forwards"
	case FillBackwards:
		return "backwards"
	default:
		return "both"
	}
}

func parseFillMode(s string) (FillMode, bool) {
	switch s {
	case "both", "":
		return FillBoth, true
	case "none":
		return FillNone, true
	case "forwards":
		return FillForwards, true
	case "backwards":
		return FillBackwards, true
	}
	return FillBoth, false
}

// ColorSpace selects the blending space for animated colors. RGB is the
// default; HCL and Lab blend through perceptually uniform spaces and avoid
// the grey midpoints RGB blending produces between saturated hues.
type ColorSpace uint8

const (
	ColorSpaceRGB ColorSpace = iota
	ColorSpaceHCL
	ColorSpaceLab
)

// String returns the config-file spelling of the color space.
func (c ColorSpace) String() string {
	switch c {
	case ColorSpaceHCL:
		return "hcl"
	case ColorSpaceLab:
		return "lab"
	default:
		return "rgb"
	}
}

func parseColorSpace(s string) (ColorSpace, bool) {
	switch s {
	case "rgb", "":
		return ColorSpaceRGB, true
	case "hcl":
		return ColorSpaceHCL, true
	case "lab":
		return ColorSpaceLab, true
	}
	return ColorSpaceRGB, false
}

// StartProgrammatic is the trigger value normalization forces whenever the
// engine is not in autoplay mode, so the host keeps exclusive control over
// playback regardless of what the document declares.
const StartProgrammatic = "programmatic"

// Config is the canonical, override-merged playback configuration consumed by
// both backends. Construct one implicitly through NewEngine; after playback
// starts it is only changed through explicit seek and rate calls.
type Config struct {
	// Engine hints which backend to use. See EngineHint.
	Engine EngineHint
	// Duration is the length of one iteration in milliseconds. Must be > 0;
	// normalization substitutes DefaultDuration otherwise.
	Duration float64
	// Delay in milliseconds. Negative means "start already advanced": the
	// engine begins playback -Delay milliseconds into the timeline.
	Delay float64
	// Iterations is the repeat count (>= 1, or Infinite). Values below 1 are
	// coerced to 1 during normalization.
	Iterations float64
	// Direction controls per-iteration progress orientation.
	Direction Direction
	// Fill describes value application outside the active interval.
	Fill FillMode
	// FrameRateCap limits frame-loop renders to the given frequency in Hz.
	// Zero means uncapped (render on every scheduler tick).
	FrameRateCap float64
	// ColorSpace selects the color blending space.
	ColorSpace ColorSpace
	// StartOn names the trigger that begins playback. Event wiring is the
	// host's job; the engine only records the value and forces
	// StartProgrammatic when not in autoplay mode.
	StartOn string
}

// DefaultDuration is the per-iteration duration substituted when a document
// supplies none (milliseconds).
const DefaultDuration = 1000

// defaultConfig returns the document-less baseline configuration.
func defaultConfig() Config {
	return Config{
		Engine:     EngineAuto,
		Duration:   DefaultDuration,
		Iterations: 1,
		Direction:  DirectionNormal,
		Fill:       FillBoth,
		ColorSpace: ColorSpaceRGB,
	}
}

// Total returns the total timeline length in milliseconds: Duration times
// Iterations. Infinite iterations yield +Inf.
func (c Config) Total() float64 {
	if math.IsInf(c.Iterations, 1) {
		return math.Inf(1)
	}
	return c.Duration * c.Iterations
}
