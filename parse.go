package sway

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseDocument decodes an animation document from JSON or YAML. The format
// is sniffed from the first non-space byte. Structural problems below the top
// level never fail the parse: bad nodes or bindings are skipped with a
// diagnostic so a partially valid document still animates whatever is valid.
func ParseDocument(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("parse document: empty input")
	}

	var raw any
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
	}

	top, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parse document: top level must be a mapping")
	}
	return buildDocument(top), nil
}

// buildDocument assembles a Document from the decoded top-level mapping.
func buildDocument(top map[string]any) *Document {
	doc := &Document{}
	if v, ok := toFloat(top["version"]); ok {
		doc.Version = int(v)
	}
	doc.Root = buildNode(rawKey(top, "root", "tree"))
	doc.Playback = locatePlayback(top)
	doc.Definitions = buildDefinitions(rawKey(top, "definitions", "defs"))

	rawBindings, _ := rawKey(top, "bindings", "targets").([]any)
	for i, rb := range rawBindings {
		m, ok := rb.(map[string]any)
		if !ok {
			Logger().Warn("sway: skipping malformed binding", "index", i)
			continue
		}
		target := stringify(rawKey(m, "target", "targetId"))
		if target == "" {
			Logger().Warn("sway: skipping binding without target", "index", i)
			continue
		}
		doc.Bindings = append(doc.Bindings, Binding{
			Target:    target,
			Animation: rawKey(m, "animation", "anim"),
		})
	}
	return doc
}

// locatePlayback finds the playback-config mapping wherever the document put
// it: "animator" and "config" at the top level, or nested under "meta". The
// surface variants collapse here so nothing downstream branches on document
// shape.
func locatePlayback(top map[string]any) map[string]any {
	if m, ok := top["animator"].(map[string]any); ok {
		return m
	}
	if m, ok := top["config"].(map[string]any); ok {
		return m
	}
	if meta, ok := top["meta"].(map[string]any); ok {
		if m, ok := meta["animator"].(map[string]any); ok {
			return m
		}
		if m, ok := meta["config"].(map[string]any); ok {
			return m
		}
	}
	return nil
}

func buildDefinitions(raw any) Definitions {
	var defs Definitions
	m, ok := raw.(map[string]any)
	if !ok {
		return defs
	}
	if e, ok := m["easings"].(map[string]any); ok {
		defs.Easings = e
	}
	if a, ok := m["animations"].(map[string]any); ok {
		defs.Animations = a
	}
	return defs
}

// buildNode converts a decoded mapping into a Node subtree. Malformed child
// entries are dropped with a diagnostic rather than failing the document.
func buildNode(raw any) *Node {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	n := &Node{
		ID:        stringify(m["id"]),
		Tag:       stringify(m["tag"]),
		Animation: rawKey(m, "animation", "anim"),
	}
	if attrs, ok := rawKey(m, "attrs", "attributes").(map[string]any); ok {
		n.Attrs = make(map[string]string, len(attrs))
		for k, v := range attrs {
			n.Attrs[k] = stringify(v)
		}
	}
	children, _ := m["children"].([]any)
	for i, rc := range children {
		child := buildNode(rc)
		if child == nil {
			Logger().Warn("sway: skipping malformed child node", "index", i, "parent", n.ID)
			continue
		}
		n.Children = append(n.Children, child)
	}
	return n
}

// rawKey returns the first present key from the synonym list. The interchange
// format treats long and short spellings ("keyframes"/"kfs", "time"/"t") as
// fully interchangeable.
func rawKey(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

// stringify renders a decoded scalar as an attribute string. Numbers use the
// same trimmed formatting as rendered values.
func stringify(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return ""
	}
	if n, ok := toFloat(raw); ok {
		return formatNum(n)
	}
	return fmt.Sprintf("%v", raw)
}
