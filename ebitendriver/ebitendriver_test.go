package ebitendriver

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sway"
)

var _ sway.Scheduler = (*Driver)(nil)

type fakeGame struct {
	updates int
	draws   int
	err     error
	onTick  func()
}

func (g *fakeGame) Update() error {
	g.updates++
	if g.onTick != nil {
		g.onTick()
	}
	return g.err
}

func (g *fakeGame) Draw(screen *ebiten.Image) { g.draws++ }

func (g *fakeGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth / 2, outsideHeight / 2
}

func TestDriverFiresPendingOnUpdate(t *testing.T) {
	d := New()
	var ran int
	d.Schedule(func() { ran++ })

	d.Update()
	if ran != 1 {
		t.Fatalf("ran = %d, want 1", ran)
	}
	d.Update()
	if ran != 1 {
		t.Errorf("ran = %d after drained update, want 1", ran)
	}
}

func TestDriverReplacesPendingCallback(t *testing.T) {
	d := New()
	var got string
	d.Schedule(func() { got += "a" })
	d.Schedule(func() { got += "b" })

	d.Update()
	if got != "b" {
		t.Errorf("ran %q, want only the replacement", got)
	}
}

func TestDriverCancelClearsOwnEntryOnly(t *testing.T) {
	d := New()
	var got string
	cancelA := d.Schedule(func() { got += "a" })
	d.Schedule(func() { got += "b" })

	cancelA()
	d.Update()
	if got != "b" {
		t.Errorf("ran %q, want b", got)
	}

	cancelB := d.Schedule(func() { t.Error("cancelled callback ran") })
	cancelB()
	d.Update()
}

func TestDriverReschedulingFromCallback(t *testing.T) {
	d := New()
	// A frame loop reschedules itself from inside each tick; the next frame
	// must deliver it.
	var ticks int
	var tick func()
	tick = func() {
		ticks++
		if ticks < 3 {
			d.Schedule(tick)
		}
	}
	d.Schedule(tick)

	for i := 0; i < 5; i++ {
		d.Update()
	}
	if ticks != 3 {
		t.Errorf("ticks = %d, want 3", ticks)
	}
}

func TestWrapPumpsDriverBeforeInnerUpdate(t *testing.T) {
	d := New()
	var order []string
	game := &fakeGame{onTick: func() { order = append(order, "game") }}
	d.Schedule(func() { order = append(order, "anim") })

	wrapped := d.Wrap(game)
	if err := wrapped.Update(); err != nil {
		t.Fatal(err)
	}

	if len(order) != 2 || order[0] != "anim" || order[1] != "game" {
		t.Errorf("order = %v, want animation before game logic", order)
	}
}

func TestWrapPropagatesInnerUpdateError(t *testing.T) {
	d := New()
	boom := errors.New("boom")
	wrapped := d.Wrap(&fakeGame{err: boom})

	if err := wrapped.Update(); !errors.Is(err, boom) {
		t.Errorf("err = %v, want the inner game's", err)
	}
}

func TestWrapPassesThroughDrawAndLayout(t *testing.T) {
	d := New()
	game := &fakeGame{}
	wrapped := d.Wrap(game)

	wrapped.Draw(nil)
	if game.draws != 1 {
		t.Errorf("draws = %d, want 1", game.draws)
	}

	w, h := wrapped.Layout(100, 60)
	if w != 50 || h != 30 {
		t.Errorf("layout = %d,%d, want the inner game's 50,30", w, h)
	}
}
