package sway

// Node is one element of a vector document: a tag name, string attributes,
// and children. The engine never renders nodes; it only regenerates their
// identifiers and hands attribute writes for them to the adapter. A single
// flat struct serves all element kinds; the engine has no reason to
// distinguish shapes from groups.
type Node struct {
	// ID is the element identifier animation bindings target. Normalization
	// replaces every ID with a fresh unique token per engine instance.
	ID string
	// Tag is the element name ("g", "path", "rect", ...). Informational.
	Tag string
	// Attrs holds the element's static attributes.
	Attrs map[string]string
	// Children are the element's child nodes in document order.
	Children []*Node
	// Animation optionally carries an inline animation spec: a property map,
	// a name into Definitions.Animations, or an ordered list of either.
	Animation any
}

// NewNode creates a node with the given tag and an empty attribute map.
func NewNode(tag string) *Node {
	return &Node{Tag: tag, Attrs: make(map[string]string)}
}

// AddChild appends a child node.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Attr returns the value of an attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	return n.Attrs[name]
}

// SetAttr sets an attribute, allocating the map on first use.
func (n *Node) SetAttr(name, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[name] = value
}

// Walk visits n and every descendant depth-first in document order.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first node in the subtree with the given id, or nil.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(node *Node) {
		if found == nil && node.ID == id {
			found = node
		}
	})
	return found
}

// Clone deep-copies the subtree. Attribute maps and child slices are copied;
// inline animation specs are shared (normalization treats them read-only).
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		ID:        n.ID,
		Tag:       n.Tag,
		Animation: n.Animation,
	}
	if n.Attrs != nil {
		out.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			out.Attrs[k] = v
		}
	}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Definitions is the shared lookup table named references resolve against.
// Both maps hold raw decoded values; validation happens during normalization
// so a bad entry skips only the animations that reference it.
type Definitions struct {
	// Easings maps easing names to cubic-bezier control-point 4-tuples.
	Easings map[string]any
	// Animations maps preset names to animations (property maps).
	Animations map[string]any
}

// Binding associates a target element id with an animation. The animation may
// be a literal property map, a name into Definitions.Animations, or an
// ordered list of either merged left-to-right (last write wins per property).
type Binding struct {
	Target    string
	Animation any
}

// Document is a parsed animation document before normalization. One Document
// can feed any number of engines: NewEngine deep-clones it and regenerates
// all element identifiers, so concurrently mounted instances never collide.
type Document struct {
	// Version is the interchange format version as authored (informational).
	Version int
	// Root is the element tree. May be nil for documents that only carry
	// bindings resolved by the host.
	Root *Node
	// Playback is the raw playback-config section as authored. ParseDocument
	// accepts it under "animator", "config", or "meta.animator"; the merge
	// into a canonical Config happens during normalization.
	Playback map[string]any
	// Definitions holds named easings and animation presets.
	Definitions Definitions
	// Bindings are the document's animation bindings in author order.
	Bindings []Binding
}

// clone deep-copies the document ahead of normalization so engines never
// alias mutable state with the caller or with each other.
func (d *Document) clone() *Document {
	out := &Document{
		Version:     d.Version,
		Root:        d.Root.Clone(),
		Definitions: d.Definitions,
	}
	if d.Playback != nil {
		out.Playback = make(map[string]any, len(d.Playback))
		for k, v := range d.Playback {
			out.Playback[k] = v
		}
	}
	if len(d.Bindings) > 0 {
		out.Bindings = make([]Binding, len(d.Bindings))
		copy(out.Bindings, d.Bindings)
	}
	return out
}
