// Package game adapts the active scene to ebiten.Game.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/raykin/internal/application/scene"
)

// Game implements ebiten.Game and manages Scene transitions.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64
	closed  bool
}

// New creates a new Game ticking at tickRate updates per second.
// The initial scene's OnEnter is called immediately.
func New(initialScene scene.Scene, screenW, screenH, tickRate int) *Game {
	if tickRate <= 0 {
		tickRate = ebiten.DefaultTPS
	}
	g := &Game{
		current: initialScene,
		screenW: screenW,
		screenH: screenH,
		dt:      1.0 / float64(tickRate),
	}
	g.current.OnEnter()
	return g
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update(g.dt)
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

// DT returns the fixed delta time passed to scenes.
func (g *Game) DT() float64 {
	return g.dt
}

// Close exits the current scene once, after the window loop returns.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.current.OnExit()
}
