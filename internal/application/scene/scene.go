// Package scene defines the screens the game loop can run.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the demo: live play or replay viewing.
// The game loop advances the current scene once per fixed tick and swaps
// it for the scene returned by Update.
type Scene interface {
	// Update advances the scene by one fixed tick of dt seconds.
	// A non-nil next replaces the current scene; an error stops the loop.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene in screen pixels.
	Draw(screen *ebiten.Image)

	// OnEnter runs when the scene becomes current.
	OnEnter()

	// OnExit runs once when the scene is replaced or the game closes.
	// Recording scenes flush their replay file here.
	OnExit()
}
