// Package ebitendriver runs sway frame loops on Ebitengine's update cadence.
//
// The frame loop's default scheduler fires from a timer goroutine, which is
// fine for headless hosts but wrong for a game: animation frames should land
// on the game goroutine, synchronized with the display refresh. A Driver is
// a sway.Scheduler whose callbacks fire from Update instead, so every
// animation frame runs right before the game's own update logic:
//
//	driver := ebitendriver.New()
//	engine := sway.NewEngine(doc, sway.Options{
//		Adapter:   adapter,
//		Scheduler: driver,
//		Autoplay:  true,
//	})
//	err := ebiten.RunGame(driver.Wrap(game))
//
// Everything happens on the game goroutine; the Driver is not safe for
// concurrent use from other goroutines.
package ebitendriver

import "github.com/hajimehoshi/ebiten/v2"

// Driver schedules sway frame callbacks onto the game loop. The zero value
// is ready to use.
type Driver struct {
	pending *entry
}

type entry struct {
	fn func()
}

// New returns a ready Driver.
func New() *Driver { return &Driver{} }

// Schedule implements sway.Scheduler. The single pending slot mirrors the
// frame loop's one-callback-at-a-time contract; scheduling replaces any
// callback still waiting.
func (d *Driver) Schedule(fn func()) func() {
	e := &entry{fn: fn}
	d.pending = e
	return func() {
		if d.pending == e {
			d.pending = nil
		}
	}
}

// Update fires the pending frame callback, if any. Call once per game
// update, before the game's own logic reads animated state.
func (d *Driver) Update() {
	e := d.pending
	if e == nil {
		return
	}
	d.pending = nil
	e.fn()
}

// Wrap returns a game that pumps the driver before every update of the
// wrapped game. Draw and Layout pass through untouched.
func (d *Driver) Wrap(game ebiten.Game) ebiten.Game {
	return wrapped{inner: game, driver: d}
}

type wrapped struct {
	inner  ebiten.Game
	driver *Driver
}

func (w wrapped) Update() error {
	w.driver.Update()
	return w.inner.Update()
}

func (w wrapped) Draw(screen *ebiten.Image) {
	w.inner.Draw(screen)
}

func (w wrapped) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.inner.Layout(outsideWidth, outsideHeight)
}
