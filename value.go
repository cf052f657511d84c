package sway

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the payload carried by a Value.
type ValueKind uint8

const (
	ValueNone   ValueKind = iota
	ValueScalar           // single number
	ValueVector           // number list (translate pairs, dash arrays, ...)
	ValueColor            // normalized RGBA
	ValuePath             // Bezier subpath set
	ValueString           // opaque string, stepped rather than interpolated
)

// Value is a tagged union of animatable payloads. A flat struct instead of an
// interface keeps per-frame interpolation free of dynamic dispatch.
type Value struct {
	Kind   ValueKind
	Scalar float64
	Vector []float64
	Color  Color
	Paths  []BezierPath
	Str    string
}

// ScalarValue wraps a number.
func ScalarValue(v float64) Value { return Value{Kind: ValueScalar, Scalar: v} }

// VectorValue wraps a number list.
func VectorValue(v ...float64) Value { return Value{Kind: ValueVector, Vector: v} }

// ColorValue wraps a color.
func ColorValue(c Color) Value { return Value{Kind: ValueColor, Color: c} }

// PathValue wraps a subpath set.
func PathValue(p []BezierPath) Value { return Value{Kind: ValuePath, Paths: p} }

// StringValue wraps an opaque string.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// parseKeyframeValue converts a decoded document value (JSON/YAML) into a
// typed Value. Strings are probed as colors first, then as path data; a
// string that looks like path data but fails to parse is an error so the
// property can be skipped with a diagnostic.
func parseKeyframeValue(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Value{}, fmt.Errorf("value: missing")
	case bool:
		if v {
			return StringValue("true"), nil
		}
		return StringValue("false"), nil
	case string:
		if c, ok := ParseColor(v); ok {
			return ColorValue(c), nil
		}
		if len(v) > 0 && (v[0] == 'M' || v[0] == 'm') {
			paths, err := ParsePath(v)
			if err != nil {
				return Value{}, err
			}
			return PathValue(paths), nil
		}
		return StringValue(v), nil
	case []any:
		nums := make([]float64, len(v))
		for i, elem := range v {
			n, ok := toFloat(elem)
			if !ok {
				return Value{}, fmt.Errorf("value: element %d is not a number", i)
			}
			nums[i] = n
		}
		return VectorValue(nums...), nil
	default:
		if n, ok := toFloat(raw); ok {
			return ScalarValue(n), nil
		}
		return Value{}, fmt.Errorf("value: unsupported shape %T", raw)
	}
}

// toFloat widens the numeric types JSON and YAML decoding produce.
func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

// InterpolateScalar linearly interpolates between two numbers.
func InterpolateScalar(a, b, t float64) float64 {
	return lerp(a, b, t)
}

// InterpolateVector interpolates element-wise. Ragged lengths are tolerated:
// missing trailing components are treated as 0, and the result has the longer
// length.
func InterpolateVector(a, b []float64, t float64) []float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var av, bv float64
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		out[i] = lerp(av, bv, t)
	}
	return out
}

// InterpolateColor blends two colors in RGB space. Use Config.ColorSpace for
// perceptual blending; this is the backend-agnostic default.
func InterpolateColor(a, b Color, t float64) Color {
	return lerpColor(a, b, t, ColorSpaceRGB)
}

// lerpValue interpolates two values of matching kind. Mismatched or
// non-interpolable kinds freeze on the start value; strings step to the end
// value once local progress crosses 0.5 (CSS discrete behavior).
func lerpValue(a, b Value, t float64, space ColorSpace) Value {
	if a.Kind != b.Kind {
		return a
	}
	switch a.Kind {
	case ValueScalar:
		return ScalarValue(lerp(a.Scalar, b.Scalar, t))
	case ValueVector:
		return VectorValue(InterpolateVector(a.Vector, b.Vector, t)...)
	case ValueColor:
		return ColorValue(lerpColor(a.Color, b.Color, t, space))
	case ValuePath:
		return PathValue(InterpolatePaths(a.Paths, b.Paths, t))
	case ValueString:
		if t < 0.5 {
			return a
		}
		return b
	}
	return a
}

// FormatValue serializes a value for attribute application. Vectors join with
// spaces; transform-family properties are composed separately (transform.go).
func FormatValue(v Value) string {
	switch v.Kind {
	case ValueScalar:
		return formatNum(v.Scalar)
	case ValueVector:
		parts := make([]string, len(v.Vector))
		for i, n := range v.Vector {
			parts[i] = formatNum(n)
		}
		return strings.Join(parts, " ")
	case ValueColor:
		return FormatColor(v.Color)
	case ValuePath:
		return FormatPath(v.Paths)
	case ValueString:
		return v.Str
	}
	return ""
}

// formatNum renders an attribute number: three decimals, trailing zeros and
// dangling points trimmed, so interpolation noise stays out of the output.
func formatNum(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
