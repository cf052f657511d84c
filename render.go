package sway

// renderFrame computes every bound property at an absolute timeline position
// and pushes the serialized results through the adapter: one SetAttribute
// per (target, property), with transform-family properties composed into a
// single transform write per target.
func renderFrame(targets []TargetTracks, cfg Config, adapter Adapter, timeMs float64) {
	if adapter == nil {
		return
	}
	fp := progressAt(timeMs, cfg)
	for _, tt := range targets {
		renderTarget(tt, cfg, adapter, fp.Effective)
	}
}

func renderTarget(tt TargetTracks, cfg Config, adapter Adapter, progress float64) {
	var parts map[string]Value
	for _, tr := range tt.Tracks {
		v := tr.Sample(progress, cfg.Duration, cfg.ColorSpace)
		if v.Kind == ValueNone {
			continue
		}
		if fn, ok := transformCanonical(tr.Property); ok {
			if parts == nil {
				parts = make(map[string]Value, len(tt.Tracks))
			}
			parts[fn] = v
			continue
		}
		adapter.SetAttribute(tt.TargetID, tr.Property, FormatValue(v))
	}
	if parts != nil {
		adapter.SetAttribute(tt.TargetID, "transform", composeTransform(parts))
	}
}
