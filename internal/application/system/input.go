package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// InputState is one tick of player intent.
type InputState struct {
	Horizontal   float64 // -1..1, positive is right
	Vertical     float64 // -1..1, positive is up
	Jump         bool    // held
	JumpPressed  bool
	JumpReleased bool
}

// Axis returns the directional input clamped to the unit square.
func (in InputState) Axis() cp.Vector {
	return cp.Vector{
		X: math.Max(-1, math.Min(1, in.Horizontal)),
		Y: math.Max(-1, math.Min(1, in.Vertical)),
	}
}

// InputSystem samples the keyboard. Jump edges come from the held Space
// key, so a press or release that happens while the scene is not ticking
// is still reported on the next sample.
type InputSystem struct {
	jump JumpEdge
}

// NewInputSystem creates a new input system.
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// GetInput reads the current input state.
func (s *InputSystem) GetInput() InputState {
	return s.sample(ebiten.IsKeyPressed)
}

func (s *InputSystem) sample(pressed func(ebiten.Key) bool) InputState {
	var in InputState
	if pressed(ebiten.KeyA) || pressed(ebiten.KeyArrowLeft) {
		in.Horizontal--
	}
	if pressed(ebiten.KeyD) || pressed(ebiten.KeyArrowRight) {
		in.Horizontal++
	}
	if pressed(ebiten.KeyW) || pressed(ebiten.KeyArrowUp) {
		in.Vertical++
	}
	if pressed(ebiten.KeyS) || pressed(ebiten.KeyArrowDown) {
		in.Vertical--
	}
	in.Jump = pressed(ebiten.KeySpace)
	return s.jump.Apply(in)
}

// JumpEdge turns a held jump button into press and release edges for
// sources that only report the held state.
type JumpEdge struct {
	held bool
}

// Update consumes this tick's held state and reports the edges.
func (e *JumpEdge) Update(held bool) (pressed, released bool) {
	pressed = held && !e.held
	released = !held && e.held
	e.held = held
	return pressed, released
}

// Apply fills the edge fields of in from its held state.
func (e *JumpEdge) Apply(in InputState) InputState {
	in.JumpPressed, in.JumpReleased = e.Update(in.Jump)
	return in
}
