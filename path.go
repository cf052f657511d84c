package sway

import (
	"fmt"
	"strings"
)

// PathVertex is one anchor point of a Bezier path. In and Out are absolute
// control-handle coordinates; a handle equal to Point produces a straight
// segment on that side.
type PathVertex struct {
	Point Vec2
	In    Vec2
	Out   Vec2
}

// BezierPath is a single subpath in canonical form: anchors with explicit
// handles plus a closed flag. Multi-subpath values are []BezierPath.
type BezierPath struct {
	Vertices []PathVertex
	Closed   bool
}

// ParsePath parses an SVG path-command string ("M 10 20 C ...") into the
// canonical subpath set. Supported commands: M, L, H, V, C, S, Q, T, Z and
// their relative forms. Arc (A) commands have no exact vertex/handle
// equivalent and make the whole value unusable for morphing, so they return
// an error.
func ParsePath(data string) ([]BezierPath, error) {
	sc := pathScanner{s: data}
	var (
		out     []BezierPath
		verts   []PathVertex
		closed  bool
		cur     Vec2
		start   Vec2
		lastCmd byte
		// Reflection state for S and T.
		prevCubicCtrl Vec2
		prevQuadCtrl  Vec2
		prevWasCubic  bool
		prevWasQuad   bool
	)

	flush := func() {
		if len(verts) > 0 {
			out = append(out, BezierPath{Vertices: verts, Closed: closed})
		}
		verts = nil
		closed = false
	}
	vertex := func(p Vec2) {
		verts = append(verts, PathVertex{Point: p, In: p, Out: p})
	}

	for {
		cmd, ok := sc.nextCommand()
		if !ok {
			if sc.hasMore() {
				// A number with no preceding command repeats the last one;
				// an initial bare number is malformed.
				if lastCmd == 0 {
					return nil, fmt.Errorf("path: expected command at offset %d", sc.i)
				}
				cmd = repeatCommand(lastCmd)
			} else {
				break
			}
		}

		cubic := false
		quad := false
		rel := cmd >= 'a'

		switch upper(cmd) {
		case 'M':
			p, err := sc.point(rel, cur)
			if err != nil {
				return nil, err
			}
			flush()
			cur, start = p, p
			vertex(p)
		case 'L':
			p, err := sc.point(rel, cur)
			if err != nil {
				return nil, err
			}
			cur = p
			vertex(p)
		case 'H':
			x, err := sc.number()
			if err != nil {
				return nil, err
			}
			if rel {
				x += cur.X
			}
			cur = Vec2{X: x, Y: cur.Y}
			vertex(cur)
		case 'V':
			y, err := sc.number()
			if err != nil {
				return nil, err
			}
			if rel {
				y += cur.Y
			}
			cur = Vec2{X: cur.X, Y: y}
			vertex(cur)
		case 'C':
			c1, err := sc.point(rel, cur)
			if err != nil {
				return nil, err
			}
			c2, err := sc.point(rel, cur)
			if err != nil {
				return nil, err
			}
			p, err := sc.point(rel, cur)
			if err != nil {
				return nil, err
			}
			appendCubic(&verts, c1, c2, p)
			cur = p
			prevCubicCtrl = c2
			cubic = true
		case 'S':
			c1 := cur
			if prevWasCubic {
				c1 = reflect(prevCubicCtrl, cur)
			}
			c2, err := sc.point(rel, cur)
			if err != nil {
				return nil, err
			}
			p, err := sc.point(rel, cur)
			if err != nil {
				return nil, err
			}
			appendCubic(&verts, c1, c2, p)
			cur = p
			prevCubicCtrl = c2
			cubic = true
		case 'Q':
			c, err := sc.point(rel, cur)
			if err != nil {
				return nil, err
			}
			p, err := sc.point(rel, cur)
			if err != nil {
				return nil, err
			}
			appendQuad(&verts, cur, c, p)
			cur = p
			prevQuadCtrl = c
			quad = true
		case 'T':
			c := cur
			if prevWasQuad {
				c = reflect(prevQuadCtrl, cur)
			}
			p, err := sc.point(rel, cur)
			if err != nil {
				return nil, err
			}
			appendQuad(&verts, cur, c, p)
			cur = p
			prevQuadCtrl = c
			quad = true
		case 'Z':
			closed = true
			foldClosingVertex(&verts)
			flush()
			cur = start
		case 'A':
			return nil, fmt.Errorf("path: arc commands are not supported")
		default:
			return nil, fmt.Errorf("path: unknown command %q", string(cmd))
		}

		prevWasCubic = cubic
		prevWasQuad = quad
		lastCmd = cmd
	}
	flush()

	if len(out) == 0 {
		return nil, fmt.Errorf("path: no subpaths")
	}
	return out, nil
}

// appendCubic records a cubic segment ending at p: the previous vertex gains
// an outgoing handle, the new vertex an incoming one.
func appendCubic(verts *[]PathVertex, c1, c2, p Vec2) {
	if n := len(*verts); n > 0 {
		(*verts)[n-1].Out = c1
	}
	*verts = append(*verts, PathVertex{Point: p, In: c2, Out: p})
}

// appendQuad records a quadratic segment by lifting it to the equivalent
// cubic (handles at 2/3 of the way to the quadratic control point).
func appendQuad(verts *[]PathVertex, from, c, p Vec2) {
	c1 := Vec2{X: from.X + 2*(c.X-from.X)/3, Y: from.Y + 2*(c.Y-from.Y)/3}
	c2 := Vec2{X: p.X + 2*(c.X-p.X)/3, Y: p.Y + 2*(c.Y-p.Y)/3}
	appendCubic(verts, c1, c2, p)
}

// foldClosingVertex merges a trailing vertex that duplicates the subpath
// start into the first vertex, moving the closing segment's handles onto the
// first/last vertices. "C ... Z" curves back to the start would otherwise
// leave a duplicate anchor that breaks per-index interpolation.
func foldClosingVertex(verts *[]PathVertex) {
	n := len(*verts)
	if n < 2 {
		return
	}
	first := &(*verts)[0]
	last := (*verts)[n-1]
	if !nearlyEqualVec(last.Point, first.Point) {
		return
	}
	first.In = last.In
	*verts = (*verts)[:n-1]
}

func nearlyEqualVec(a, b Vec2) bool {
	const eps = 1e-9
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx < eps && dx > -eps && dy < eps && dy > -eps
}

// reflect mirrors a control point about an anchor.
func reflect(ctrl, about Vec2) Vec2 {
	return Vec2{X: 2*about.X - ctrl.X, Y: 2*about.Y - ctrl.Y}
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// repeatCommand maps a command to the one an implicit repetition uses:
// M repeats as L (per SVG), everything else repeats as itself.
func repeatCommand(cmd byte) byte {
	switch cmd {
	case 'M':
		return 'L'
	case 'm':
		return 'l'
	}
	return cmd
}

// pathScanner tokenizes path data: command letters and floats separated by
// whitespace or commas.
type pathScanner struct {
	s string
	i int
}

func (sc *pathScanner) skipSeparators() {
	for sc.i < len(sc.s) {
		switch sc.s[sc.i] {
		case ' ', '\t', '\n', '\r', ',':
			sc.i++
		default:
			return
		}
	}
}

func (sc *pathScanner) hasMore() bool {
	sc.skipSeparators()
	return sc.i < len(sc.s)
}

// nextCommand consumes a command letter if one is next.
func (sc *pathScanner) nextCommand() (byte, bool) {
	sc.skipSeparators()
	if sc.i >= len(sc.s) {
		return 0, false
	}
	c := sc.s[sc.i]
	if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
		sc.i++
		return c, true
	}
	return 0, false
}

// number consumes one float, accepting leading sign, decimals, and exponents.
func (sc *pathScanner) number() (float64, error) {
	sc.skipSeparators()
	begin := sc.i
	i := sc.i
	s := sc.s
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := false
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits = true
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits = true
		}
	}
	if !digits {
		return 0, fmt.Errorf("path: expected number at offset %d", begin)
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := false
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			expDigits = true
		}
		if expDigits {
			i = j
		}
	}
	sc.i = i
	v, err := parseFloat(s[begin:i])
	if err != nil {
		return 0, fmt.Errorf("path: bad number %q", s[begin:i])
	}
	return v, nil
}

func (sc *pathScanner) point(rel bool, cur Vec2) (Vec2, error) {
	x, err := sc.number()
	if err != nil {
		return Vec2{}, err
	}
	y, err := sc.number()
	if err != nil {
		return Vec2{}, err
	}
	if rel {
		x += cur.X
		y += cur.Y
	}
	return Vec2{X: x, Y: y}, nil
}

// FormatPath serializes subpaths back to SVG path data. Straight segments
// emit L, curved ones C; a curved closing segment emits its C before the Z.
func FormatPath(paths []BezierPath) string {
	var sb strings.Builder
	for i, p := range paths {
		if len(p.Vertices) == 0 {
			continue
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		first := p.Vertices[0]
		sb.WriteString("M")
		writePoint(&sb, first.Point)
		for j := 1; j < len(p.Vertices); j++ {
			writeSegment(&sb, p.Vertices[j-1], p.Vertices[j])
		}
		if p.Closed {
			last := p.Vertices[len(p.Vertices)-1]
			if !nearlyEqualVec(last.Out, last.Point) || !nearlyEqualVec(first.In, first.Point) {
				writeSegment(&sb, last, first)
			}
			sb.WriteString("Z")
		}
	}
	return sb.String()
}

func writeSegment(sb *strings.Builder, from, to PathVertex) {
	if nearlyEqualVec(from.Out, from.Point) && nearlyEqualVec(to.In, to.Point) {
		sb.WriteString("L")
		writePoint(sb, to.Point)
		return
	}
	sb.WriteString("C")
	writePoint(sb, from.Out)
	writePoint(sb, to.In)
	writePoint(sb, to.Point)
}

func writePoint(sb *strings.Builder, p Vec2) {
	sb.WriteString(formatNum(p.X))
	sb.WriteByte(',')
	sb.WriteString(formatNum(p.Y))
}

// InterpolatePaths blends two subpath sets per vertex index over the shorter
// of each pair. The closed flag comes from the start side.
func InterpolatePaths(a, b []BezierPath, t float64) []BezierPath {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]BezierPath, n)
	for i := 0; i < n; i++ {
		out[i] = interpolateSubpath(a[i], b[i], t)
	}
	return out
}

func interpolateSubpath(a, b BezierPath, t float64) BezierPath {
	n := len(a.Vertices)
	if len(b.Vertices) < n {
		n = len(b.Vertices)
	}
	verts := make([]PathVertex, n)
	for i := 0; i < n; i++ {
		va, vb := a.Vertices[i], b.Vertices[i]
		verts[i] = PathVertex{
			Point: lerpVec(va.Point, vb.Point, t),
			In:    lerpVec(va.In, vb.In, t),
			Out:   lerpVec(va.Out, vb.Out, t),
		}
	}
	return BezierPath{Vertices: verts, Closed: a.Closed}
}

func lerpVec(a, b Vec2, t float64) Vec2 {
	return Vec2{X: lerp(a.X, b.X, t), Y: lerp(a.Y, b.Y, t)}
}
