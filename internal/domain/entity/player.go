package entity

import "github.com/jakecoffman/cp"

// Player is an actor driven by input through the motor.
type Player struct {
	*Actor

	Velocity         cp.Vector
	DirectionalInput cp.Vector

	WallSliding       bool
	WallDirX          int
	TimeToWallUnstick float64

	// VelocityXSmoothing is the SmoothDamp state for horizontal speed.
	VelocityXSmoothing float64

	// JumpCount counts jump activations since the last ground or wall contact.
	JumpCount int
}

// NewPlayer wraps an actor as a player at rest.
func NewPlayer(actor *Actor) *Player {
	return &Player{Actor: actor, WallDirX: 1}
}

// Grounded reports whether the last pass found ground below.
func (p *Player) Grounded() bool {
	return p.Collisions.Below
}
