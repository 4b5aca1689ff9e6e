// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/brawler/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int

	now  func() time.Time
	last time.Time
}

// New creates a new Game with the given initial scene.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		now:     time.Now,
	}
	g.current.OnEnter()
	return g
}

// SetClock replaces the wall clock. Useful for testing.
func (g *Game) SetClock(now func() time.Time) {
	g.now = now
	g.last = time.Time{}
}

// frameDelta returns the seconds since the previous Update. The first frame
// reports zero.
func (g *Game) frameDelta() float64 {
	t := g.now()
	if g.last.IsZero() {
		g.last = t
		return 0
	}
	dt := t.Sub(g.last).Seconds()
	g.last = t
	return dt
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.frameDelta())
	if err != nil {
		return err
	}

	if next != nil {
		g.current.OnExit()
		g.current = next
		g.current.OnEnter()
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}
