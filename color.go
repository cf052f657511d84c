package sway

import (
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor parses a CSS-style color string into the normalized 4-component
// form. Supported shapes: #RGB, #RGBA, #RRGGBB, #RRGGBBAA, rgb(r, g, b),
// rgba(r, g, b, a) with 0–255 or percentage components, and SVG color names
// ("steelblue"). Missing alpha defaults to 1.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ColorBlack, false
	}
	if s[0] == '#' {
		return parseHexColor(s[1:])
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "rgb") {
		return parseRGBFunc(lower)
	}
	if c, ok := colornames.Map[lower]; ok {
		return Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
			A: float64(c.A) / 255,
		}, true
	}
	return ColorBlack, false
}

// parseHexColor parses the digits after '#'. Short forms expand each nibble
// (0xF -> 0xFF).
func parseHexColor(hex string) (Color, bool) {
	var r, g, b uint32
	a := uint32(255)
	switch len(hex) {
	case 3:
		if !hexNibble(hex[0], &r) || !hexNibble(hex[1], &g) || !hexNibble(hex[2], &b) {
			return ColorBlack, false
		}
		r, g, b = r*17, g*17, b*17
	case 4:
		if !hexNibble(hex[0], &r) || !hexNibble(hex[1], &g) || !hexNibble(hex[2], &b) || !hexNibble(hex[3], &a) {
			return ColorBlack, false
		}
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6:
		if !hexByte(hex[0:2], &r) || !hexByte(hex[2:4], &g) || !hexByte(hex[4:6], &b) {
			return ColorBlack, false
		}
	case 8:
		if !hexByte(hex[0:2], &r) || !hexByte(hex[2:4], &g) || !hexByte(hex[4:6], &b) || !hexByte(hex[6:8], &a) {
			return ColorBlack, false
		}
	default:
		return ColorBlack, false
	}
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, true
}

func hexNibble(c byte, out *uint32) bool {
	switch {
	case '0' <= c && c <= '9':
		*out = uint32(c - '0')
	case 'a' <= c && c <= 'f':
		*out = uint32(c-'a') + 10
	case 'A' <= c && c <= 'F':
		*out = uint32(c-'A') + 10
	default:
		return false
	}
	return true
}

func hexByte(s string, out *uint32) bool {
	var hi, lo uint32
	if !hexNibble(s[0], &hi) || !hexNibble(s[1], &lo) {
		return false
	}
	*out = hi*16 + lo
	return true
}

// parseRGBFunc parses "rgb(...)" / "rgba(...)" with 0–255 or percentage
// channel components and a 0–1 or percentage alpha.
func parseRGBFunc(s string) (Color, bool) {
	open := strings.IndexByte(s, '(')
	close := strings.LastIndexByte(s, ')')
	if open < 0 || close < open {
		return ColorBlack, false
	}
	parts := strings.Split(s[open+1:close], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return ColorBlack, false
	}
	var out Color
	out.A = 1
	channels := [3]*float64{&out.R, &out.G, &out.B}
	for i := 0; i < 3; i++ {
		v, ok := parseColorComponent(parts[i], 255)
		if !ok {
			return ColorBlack, false
		}
		*channels[i] = v
	}
	if len(parts) == 4 {
		a, ok := parseColorComponent(parts[3], 1)
		if !ok {
			return ColorBlack, false
		}
		out.A = a
	}
	return out.clamp(), true
}

// parseColorComponent parses one channel, normalizing to [0, 1]. Percentages
// divide by 100; plain numbers divide by scale (255 for channels, 1 for
// alpha).
func parseColorComponent(s string, scale float64) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return v / 100, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v / scale, true
}

func (c Color) clamp() Color {
	return Color{
		R: clamp01(c.R),
		G: clamp01(c.G),
		B: clamp01(c.B),
		A: clamp01(c.A),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Hex returns the color as "#rrggbb", or "#rrggbbaa" when alpha is not 1.
func (c Color) Hex() string {
	cc := c.clamp()
	var b [9]byte
	b[0] = '#'
	putHexByte(b[1:3], channelByte(cc.R))
	putHexByte(b[3:5], channelByte(cc.G))
	putHexByte(b[5:7], channelByte(cc.B))
	if a := channelByte(cc.A); a != 255 {
		putHexByte(b[7:9], a)
		return string(b[:])
	}
	return string(b[:7])
}

// FormatColor serializes a color for attribute application: opaque colors
// become "#rrggbb", translucent ones "rgba(r, g, b, a)".
func FormatColor(c Color) string {
	cc := c.clamp()
	if channelByte(cc.A) == 255 {
		return cc.Hex()
	}
	var sb strings.Builder
	sb.WriteString("rgba(")
	sb.WriteString(strconv.Itoa(int(channelByte(cc.R))))
	sb.WriteString(", ")
	sb.WriteString(strconv.Itoa(int(channelByte(cc.G))))
	sb.WriteString(", ")
	sb.WriteString(strconv.Itoa(int(channelByte(cc.B))))
	sb.WriteString(", ")
	sb.WriteString(strconv.FormatFloat(cc.A, 'g', 4, 64))
	sb.WriteByte(')')
	return sb.String()
}

func channelByte(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

const hexDigits = "0123456789abcdef"

func putHexByte(dst []byte, v uint8) {
	dst[0] = hexDigits[v>>4]
	dst[1] = hexDigits[v&0xF]
}

// lerpColor interpolates between two colors at t in the given blending space.
// Alpha always interpolates linearly; HCL and Lab blending go through
// go-colorful and are clamped back into the RGB gamut.
func lerpColor(a, b Color, t float64, space ColorSpace) Color {
	out := Color{A: lerp(a.A, b.A, t)}
	switch space {
	case ColorSpaceHCL:
		blended := toColorful(a).BlendHcl(toColorful(b), t).Clamped()
		out.R, out.G, out.B = blended.R, blended.G, blended.B
	case ColorSpaceLab:
		blended := toColorful(a).BlendLab(toColorful(b), t).Clamped()
		out.R, out.G, out.B = blended.R, blended.G, blended.B
	default:
		out.R = lerp(a.R, b.R, t)
		out.G = lerp(a.G, b.G, t)
		out.B = lerp(a.B, b.B, t)
	}
	return out
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
