package sway

import (
	"reflect"
	"testing"
)

func TestHeadlessAdapterRecordsWrites(t *testing.T) {
	a := NewHeadlessAdapter()
	if !a.IsConnected() {
		t.Fatal("fresh adapter not connected")
	}

	a.SetAttribute("dot", "r", "5")
	a.SetAttribute("dot", "r", "7")
	a.SetAttribute("dot", "opacity", "0.5")

	if got := a.Attr("dot", "r"); got != "7" {
		t.Errorf("r = %q, want last write", got)
	}
	if got := a.Attr("dot", "opacity"); got != "0.5" {
		t.Errorf("opacity = %q", got)
	}
	if got := a.Writes(); got != 3 {
		t.Errorf("writes = %d, want 3", got)
	}
	if got := a.Attr("dot", "cx"); got != "" {
		t.Errorf("unset attribute = %q, want empty", got)
	}
}

func TestHeadlessAdapterSeedCopiesInitialAttributes(t *testing.T) {
	root := &Node{ID: "svg", Tag: "svg", Children: []*Node{
		{ID: "dot", Tag: "circle", Attrs: map[string]string{"r": "5", "fill": "red"}},
		{Tag: "desc"},
	}}
	a := NewHeadlessAdapter()
	a.Seed(root)

	if got := a.Attr("dot", "r"); got != "5" {
		t.Errorf("seeded r = %q, want 5", got)
	}
	if got := a.Attr("dot", "fill"); got != "red" {
		t.Errorf("seeded fill = %q, want red", got)
	}
	// Seeds are initial state, not writes.
	if got := a.Writes(); got != 0 {
		t.Errorf("writes = %d after seeding, want 0", got)
	}

	// Mutating the tree afterwards must not reach the adapter's copy.
	root.Children[0].Attrs["r"] = "99"
	if got := a.Attr("dot", "r"); got != "5" {
		t.Errorf("seeded copy aliased the tree: r = %q", got)
	}
}

func TestHeadlessAdapterDropsUnknownTargetsAfterSeeding(t *testing.T) {
	a := NewHeadlessAdapter()
	a.Seed(&Node{ID: "dot", Tag: "circle"})

	a.SetAttribute("ghost", "r", "1")
	a.SetAttribute("ghost", "r", "2")
	a.SetAttribute("dot", "r", "3")

	if got := a.Attr("ghost", "r"); got != "" {
		t.Errorf("unknown target stored %q", got)
	}
	if got := a.Attr("dot", "r"); got != "3" {
		t.Errorf("known target = %q, want 3", got)
	}
	if got := a.Writes(); got != 1 {
		t.Errorf("writes = %d, want only the known-target write", got)
	}
}

func TestHeadlessAdapterUnseededAcceptsAnyTarget(t *testing.T) {
	a := NewHeadlessAdapter()
	a.SetAttribute("anything", "x", "1")
	if got := a.Attr("anything", "x"); got != "1" {
		t.Errorf("unseeded adapter dropped write: %q", got)
	}
}

func TestHeadlessAdapterSetConnected(t *testing.T) {
	a := NewHeadlessAdapter()
	a.SetConnected(false)
	if a.IsConnected() {
		t.Error("still connected after SetConnected(false)")
	}
	a.SetConnected(true)
	if !a.IsConnected() {
		t.Error("not connected after SetConnected(true)")
	}
}

func TestHeadlessAdapterTargetsSorted(t *testing.T) {
	a := NewHeadlessAdapter()
	a.SetAttribute("zeta", "x", "1")
	a.SetAttribute("alpha", "x", "1")
	a.SetAttribute("mid", "x", "1")

	want := []string{"alpha", "mid", "zeta"}
	if got := a.Targets(); !reflect.DeepEqual(got, want) {
		t.Errorf("Targets = %v, want %v", got, want)
	}
}

func TestOncePerTargetFirstOnlyOnce(t *testing.T) {
	var once OncePerTarget
	if !once.First("a") {
		t.Fatal("first sighting of a reported false")
	}
	if once.First("a") {
		t.Error("second sighting of a reported true")
	}
	if !once.First("b") {
		t.Error("first sighting of b reported false")
	}
	if once.First("b") {
		t.Error("second sighting of b reported true")
	}
}
