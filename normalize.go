package sway

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// normalized is the product of document normalization: the canonical
// override-merged config, the instance's private document copy with
// regenerated identifiers, and the per-target property tracks both backends
// consume.
type normalized struct {
	cfg     Config
	doc     *Document
	targets []TargetTracks
}

// maxResolveDepth bounds reference chains through Definitions so a definition
// that names itself cannot hang normalization.
const maxResolveDepth = 8

// normalize builds the canonical playback plan for one engine instance. The
// source document is never mutated; the clone carries fresh element
// identifiers so two live instances of the same document cannot collide.
// Structural problems are resolved by skipping the offending piece with a
// diagnostic, never by failing.
func normalize(src *Document, opts Options) *normalized {
	if src == nil {
		return nil
	}
	doc := src.clone()

	cfg := defaultConfig()
	applyPlayback(&cfg, doc.Playback)
	applyOptions(&cfg, opts)
	if !opts.Autoplay {
		// The host keeps exclusive control unless it asked for autoplay.
		cfg.StartOn = StartProgrammatic
	}

	rewriteReferences(doc, regenerateIDs(doc))

	return &normalized{
		cfg:     cfg,
		doc:     doc,
		targets: collectTargets(doc, cfg),
	}
}

// applyPlayback merges the document's own playback mapping into cfg. Keys
// accept both long and short spellings; unusable values are reported and the
// prior setting kept.
func applyPlayback(cfg *Config, raw map[string]any) {
	if raw == nil {
		return
	}
	if s, ok := rawKey(raw, "engine", "engineHint").(string); ok {
		if h, valid := parseEngineHint(s); valid {
			cfg.Engine = h
		} else {
			Logger().Warn("sway: unknown engine hint", "value", s)
		}
	}
	if v, ok := toFloat(rawKey(raw, "duration", "durationMs")); ok {
		if v > 0 {
			cfg.Duration = v
		} else {
			Logger().Warn("sway: ignoring non-positive duration", "value", v)
		}
	}
	if v, ok := toFloat(rawKey(raw, "delay", "delayMs")); ok {
		cfg.Delay = v
	}
	applyIterations(cfg, rawKey(raw, "iterations", "repeat"))
	if s, ok := rawKey(raw, "direction").(string); ok {
		if d, valid := parseDirection(s); valid {
			cfg.Direction = d
		} else {
			Logger().Warn("sway: unknown direction", "value", s)
		}
	}
	if s, ok := rawKey(raw, "fill", "fillMode").(string); ok {
		if f, valid := parseFillMode(s); valid {
			cfg.Fill = f
		} else {
			Logger().Warn("sway: unknown fill mode", "value", s)
		}
	}
	if v, ok := toFloat(rawKey(raw, "frameRateCap", "frameRateCapHz")); ok && v > 0 {
		cfg.FrameRateCap = v
	}
	if s, ok := rawKey(raw, "colorSpace", "colorspace").(string); ok {
		if c, valid := parseColorSpace(s); valid {
			cfg.ColorSpace = c
		} else {
			Logger().Warn("sway: unknown color space", "value", s)
		}
	}
	switch trig := raw["trigger"].(type) {
	case string:
		cfg.StartOn = trig
	case map[string]any:
		if s, ok := rawKey(trig, "startOn", "on").(string); ok {
			cfg.StartOn = s
		}
	}
}

// applyIterations accepts a repeat count as a number (values below 1 are
// coerced to 1) or the string "infinite".
func applyIterations(cfg *Config, raw any) {
	switch v := raw.(type) {
	case nil:
		return
	case string:
		if v == "infinite" || v == "infinity" {
			cfg.Iterations = Infinite
			return
		}
		Logger().Warn("sway: unknown iteration count", "value", v)
	default:
		if n, ok := toFloat(raw); ok {
			if n < 1 {
				n = 1
			}
			cfg.Iterations = n
			return
		}
		Logger().Warn("sway: unusable iteration count", "type", fmt.Sprintf("%T", raw))
	}
}

// applyOptions merges caller overrides onto cfg. An override applies only
// when its field is set; zero values mean "leave the document's choice".
func applyOptions(cfg *Config, opts Options) {
	if opts.Engine != "" {
		if h, ok := parseEngineHint(opts.Engine); ok {
			cfg.Engine = h
		} else {
			Logger().Warn("sway: unknown engine hint", "value", opts.Engine)
		}
	}
	if opts.Duration > 0 {
		cfg.Duration = opts.Duration
	}
	if opts.Delay != nil {
		cfg.Delay = *opts.Delay
	}
	if opts.Iterations > 0 {
		n := opts.Iterations
		if n < 1 {
			n = 1
		}
		cfg.Iterations = n
	}
	if opts.Direction != "" {
		if d, ok := parseDirection(opts.Direction); ok {
			cfg.Direction = d
		} else {
			Logger().Warn("sway: unknown direction", "value", opts.Direction)
		}
	}
	if opts.Fill != "" {
		if f, ok := parseFillMode(opts.Fill); ok {
			cfg.Fill = f
		} else {
			Logger().Warn("sway: unknown fill mode", "value", opts.Fill)
		}
	}
	if opts.FrameRateCap > 0 {
		cfg.FrameRateCap = opts.FrameRateCap
	}
	if opts.ColorSpace != "" {
		if c, ok := parseColorSpace(opts.ColorSpace); ok {
			cfg.ColorSpace = c
		} else {
			Logger().Warn("sway: unknown color space", "value", opts.ColorSpace)
		}
	}
	// Seek rides the delay knob: starting -Delay milliseconds in is exactly
	// a seek to Seek milliseconds. The external API keeps them distinct.
	if opts.Seek != nil {
		cfg.Delay = -*opts.Seek
	}
}

// regenerateIDs walks the tree once, minting a fresh identifier for every
// node that has one and for id-less nodes that carry an inline animation
// (those need an address the adapter can resolve). Returns the old-to-new
// mapping for the reference rewrite pass.
func regenerateIDs(doc *Document) map[string]string {
	ids := make(map[string]string)
	if doc.Root == nil {
		return ids
	}
	doc.Root.Walk(func(n *Node) {
		if n.ID == "" {
			if n.Animation != nil {
				n.ID = freshID()
			}
			return
		}
		fresh := freshID()
		ids[n.ID] = fresh
		n.ID = fresh
	})
	return ids
}

func freshID() string {
	return "sway-" + uuid.NewString()
}

// directRefAttrs are attributes whose entire value is an element identifier.
var directRefAttrs = map[string]bool{
	"for":             true,
	"ref":             true,
	"aria-labelledby": true,
}

// rewriteReferences is the second phase of identifier regeneration: every
// string attribute matching one of the three reference shapes ("#id" hash
// fragments, "url(#id)" occurrences, whole-value ids on directRefAttrs) is
// rewritten through the old-to-new mapping, as are binding targets. Binding
// targets not found in the mapping are kept verbatim; the adapter may resolve
// identifiers outside this document.
func rewriteReferences(doc *Document, ids map[string]string) {
	if len(ids) == 0 {
		return
	}
	if doc.Root != nil {
		doc.Root.Walk(func(n *Node) {
			for name, val := range n.Attrs {
				n.Attrs[name] = rewriteRef(name, val, ids)
			}
		})
	}
	for i := range doc.Bindings {
		if fresh, ok := ids[doc.Bindings[i].Target]; ok {
			doc.Bindings[i].Target = fresh
		} else {
			Logger().Debug("sway: binding target not in document tree", "target", doc.Bindings[i].Target)
		}
	}
}

func rewriteRef(name, val string, ids map[string]string) string {
	if strings.HasPrefix(val, "#") {
		if fresh, ok := ids[val[1:]]; ok {
			return "#" + fresh
		}
	}
	if strings.Contains(val, "url(#") {
		val = rewriteURLRefs(val, ids)
	}
	if directRefAttrs[name] {
		if fresh, ok := ids[val]; ok {
			return fresh
		}
	}
	return val
}

// rewriteURLRefs replaces the id inside every url(#id) occurrence that maps
// to a regenerated identifier. Unknown ids and unterminated references pass
// through untouched.
func rewriteURLRefs(val string, ids map[string]string) string {
	const marker = "url(#"
	var b strings.Builder
	rest := val
	for {
		i := strings.Index(rest, marker)
		if i < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:i+len(marker)])
		rest = rest[i+len(marker):]
		j := strings.IndexByte(rest, ')')
		if j < 0 {
			b.WriteString(rest)
			return b.String()
		}
		if fresh, ok := ids[rest[:j]]; ok {
			b.WriteString(fresh)
		} else {
			b.WriteString(rest[:j])
		}
		rest = rest[j:]
	}
}

// collectTargets flattens inline node animations and explicit bindings into
// per-target track lists. A target named by several sources gets its tracks
// merged, last write winning per property.
func collectTargets(doc *Document, cfg Config) []TargetTracks {
	type entry struct {
		id   string
		spec any
	}
	var entries []entry
	if doc.Root != nil {
		doc.Root.Walk(func(n *Node) {
			if n.Animation != nil {
				entries = append(entries, entry{n.ID, n.Animation})
			}
		})
	}
	for _, b := range doc.Bindings {
		if b.Animation == nil {
			Logger().Warn("sway: binding without animation", "target", b.Target)
			continue
		}
		entries = append(entries, entry{b.Target, b.Animation})
	}

	index := make(map[string]int)
	var targets []TargetTracks
	for _, e := range entries {
		tracks := resolveAnimation(e.spec, doc.Definitions, cfg)
		if len(tracks) == 0 {
			continue
		}
		if i, ok := index[e.id]; ok {
			targets[i].Tracks = mergeTracks(targets[i].Tracks, tracks)
			continue
		}
		index[e.id] = len(targets)
		targets = append(targets, TargetTracks{TargetID: e.id, Tracks: tracks})
	}
	return targets
}

// resolveAnimation expands an animation specification into property tracks.
// A specification is a property mapping, a name into Definitions.animations,
// or a list of either merged left to right with later entries overriding
// earlier ones per property.
func resolveAnimation(spec any, defs Definitions, cfg Config) []Track {
	var tracks []Track
	appendSpec(&tracks, spec, defs, cfg, 0)
	return tracks
}

func appendSpec(tracks *[]Track, spec any, defs Definitions, cfg Config, depth int) {
	if depth > maxResolveDepth {
		Logger().Warn("sway: animation reference chain too deep")
		return
	}
	switch s := spec.(type) {
	case nil:
	case string:
		ref, ok := defs.Animations[s]
		if !ok {
			Logger().Warn("sway: animation definition not found", "name", s)
			return
		}
		appendSpec(tracks, ref, defs, cfg, depth+1)
	case []any:
		for _, item := range s {
			appendSpec(tracks, item, defs, cfg, depth+1)
		}
	case map[string]any:
		for _, prop := range sortedKeys(s) {
			tr, ok := buildTrack(prop, s[prop], defs, cfg)
			if !ok {
				continue
			}
			*tracks = mergeTracks(*tracks, []Track{tr})
		}
	default:
		Logger().Warn("sway: unusable animation definition", "type", fmt.Sprintf("%T", spec))
	}
}

// mergeTracks overlays later tracks onto earlier ones, replacing whole
// property tracks. Last write wins per property key, never per keyframe.
func mergeTracks(base, overlay []Track) []Track {
	for _, tr := range overlay {
		replaced := false
		for i := range base {
			if base[i].Property == tr.Property {
				base[i] = tr
				replaced = true
				break
			}
		}
		if !replaced {
			base = append(base, tr)
		}
	}
	return base
}

// buildTrack normalizes one property's keyframe list. Malformed individual
// keyframes are skipped; a value that cannot be parsed at all (an unsupported
// path, say) drops the whole property so it freezes instead of animating
// through garbage. Returns false when nothing usable remains.
func buildTrack(property string, spec any, defs Definitions, cfg Config) (Track, bool) {
	raw := spec
	if m, ok := spec.(map[string]any); ok {
		raw = rawKey(m, "keyframes", "kfs")
	}
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		Logger().Warn("sway: property has no keyframes", "property", property)
		return Track{}, false
	}

	kfs := make([]Keyframe, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			Logger().Warn("sway: skipping malformed keyframe", "property", property, "index", i)
			continue
		}
		t, ok := toFloat(rawKey(m, "time", "t"))
		if !ok {
			Logger().Warn("sway: keyframe missing time", "property", property, "index", i)
			continue
		}
		rawVal := rawKey(m, "value", "v")
		if rawVal == nil {
			Logger().Warn("sway: keyframe missing value", "property", property, "index", i)
			continue
		}
		val, err := parseKeyframeValue(rawVal)
		if err != nil {
			Logger().Warn("sway: dropping property with unusable value", "property", property, "err", err)
			return Track{}, false
		}
		kf := Keyframe{Time: clampKeyframeTime(t, cfg.Duration), Value: val}
		if rawEase := rawKey(m, "easing", "e"); rawEase != nil {
			fn, name, ok := resolveEasing(rawEase, defs, 0)
			if !ok {
				Logger().Warn("sway: easing reference not found; dropping property", "property", property)
				return Track{}, false
			}
			kf.Easing, kf.EasingSpec = fn, name
		}
		kfs = append(kfs, kf)
	}
	if len(kfs) == 0 {
		return Track{}, false
	}

	sort.SliceStable(kfs, func(i, j int) bool { return kfs[i].Time < kfs[j].Time })
	return Track{Property: property, Keyframes: collapseDuplicateTimes(kfs)}, true
}

func clampKeyframeTime(t, duration float64) float64 {
	if t < 0 {
		return 0
	}
	if t > duration {
		return duration
	}
	return t
}

// collapseDuplicateTimes keeps the last keyframe of each run that shares an
// exact time. The sort above is stable, so "last" means last in the original
// document order.
func collapseDuplicateTimes(kfs []Keyframe) []Keyframe {
	out := kfs[:0]
	for _, kf := range kfs {
		if len(out) > 0 && out[len(out)-1].Time == kf.Time {
			out[len(out)-1] = kf
			continue
		}
		out = append(out, kf)
	}
	return out
}

// resolveEasing turns an easing specification into a curve. A specification
// is a [x1,y1,x2,y2] control-point list, a name in Definitions.easings, a
// built-in name, or a cubic-bezier(...) string. The returned string is the
// canonical spelling handed to native timelines.
func resolveEasing(raw any, defs Definitions, depth int) (Easing, string, bool) {
	if depth > maxResolveDepth {
		return nil, "", false
	}
	switch e := raw.(type) {
	case string:
		if def, ok := defs.Easings[e]; ok {
			return resolveEasing(def, defs, depth+1)
		}
		if fn, ok := EasingByName(e); ok {
			return fn, e, true
		}
		return parseCubicBezier(e)
	case []any:
		pts := make([]float64, 0, 4)
		for _, p := range e {
			v, ok := toFloat(p)
			if !ok {
				return nil, "", false
			}
			pts = append(pts, v)
		}
		if len(pts) != 4 {
			return nil, "", false
		}
		return CubicBezier(pts[0], pts[1], pts[2], pts[3]), formatCubicBezier(pts[0], pts[1], pts[2], pts[3]), true
	}
	return nil, "", false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
