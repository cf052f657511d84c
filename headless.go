package sway

import (
	"sort"
	"sync"
)

// HeadlessAdapter is an in-memory rendering surface: it records every
// attribute write so hosts can sample animations offline and tests can
// assert on rendered values. Safe for concurrent use, so it works under both
// the timer scheduler and controlled time.
type HeadlessAdapter struct {
	mu        sync.Mutex
	connected bool
	known     map[string]bool
	attrs     map[string]map[string]string
	writes    int
	missing   OncePerTarget
}

// NewHeadlessAdapter returns a connected adapter that accepts writes for any
// target. Call Seed to restrict it to a document's element set.
func NewHeadlessAdapter() *HeadlessAdapter {
	return &HeadlessAdapter{
		connected: true,
		attrs:     make(map[string]map[string]string),
	}
}

// Seed registers the identified nodes of a tree as the adapter's element
// set, copying their initial attributes. After seeding, writes to unknown
// targets warn once per target and are otherwise dropped, mirroring how a
// real surface behaves when an element has gone away.
func (a *HeadlessAdapter) Seed(root *Node) {
	if root == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.known == nil {
		a.known = make(map[string]bool)
	}
	root.Walk(func(n *Node) {
		if n.ID == "" {
			return
		}
		a.known[n.ID] = true
		if len(n.Attrs) == 0 {
			return
		}
		attrs := a.attrs[n.ID]
		if attrs == nil {
			attrs = make(map[string]string, len(n.Attrs))
			a.attrs[n.ID] = attrs
		}
		for k, v := range n.Attrs {
			attrs[k] = v
		}
	})
}

// SetConnected flips the detached state the frame loop polls each tick.
func (a *HeadlessAdapter) SetConnected(connected bool) {
	a.mu.Lock()
	a.connected = connected
	a.mu.Unlock()
}

// IsConnected implements Adapter.
func (a *HeadlessAdapter) IsConnected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.connected
}

// SetAttribute implements Adapter.
func (a *HeadlessAdapter) SetAttribute(targetID, name, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.known != nil && !a.known[targetID] {
		if a.missing.First(targetID) {
			Logger().Warn("sway: write to unknown target", "target", targetID, "attr", name)
		}
		return
	}
	attrs := a.attrs[targetID]
	if attrs == nil {
		attrs = make(map[string]string)
		a.attrs[targetID] = attrs
	}
	attrs[name] = value
	a.writes++
}

// Attr returns the last written (or seeded) value of one attribute, or ""
// when never set.
func (a *HeadlessAdapter) Attr(targetID, name string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.attrs[targetID][name]
}

// Writes returns how many attribute writes have been accepted.
func (a *HeadlessAdapter) Writes() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.writes
}

// Targets returns the ids that have received writes or seeds, sorted.
func (a *HeadlessAdapter) Targets() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	ids := make([]string, 0, len(a.attrs))
	for id := range a.attrs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
