// Package scene defines the Scene interface for game screens.
//
// The brawler runs a single gameplay scene whose progression screens (menu,
// pause, game over, win) are states inside it; the interface stays so the
// loop can swap in other screens.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene represents a game screen.
//
// The game loop delegates Update and Draw calls to the current scene.
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update advances the scene by dt seconds of wall-clock time. Scenes that
	// simulate are expected to run their own fixed-step clock.
	// Returns the next scene if a transition is needed, nil to stay.
	// Returns an error to terminate the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene.
	OnExit()
}
