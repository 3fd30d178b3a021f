package entity

import "github.com/jakecoffman/cp"

// CollisionState is the contact snapshot produced by one resolution pass.
type CollisionState struct {
	Above, Below bool
	Left, Right  bool

	ClimbingSlope       bool
	DescendingSlope     bool
	SlidingDownMaxSlope bool

	SlopeAngle    float64 // degrees
	SlopeAngleOld float64
	SlopeNormal   cp.Vector

	MoveAmountOld cp.Vector
	FaceDir       int

	FallingThroughPlatform bool
}

// NewCollisionState returns a state facing right.
func NewCollisionState() CollisionState {
	return CollisionState{FaceDir: 1}
}

// Reset clears the per-pass contacts and rolls the slope angle over.
// FaceDir and FallingThroughPlatform persist.
func (c *CollisionState) Reset() {
	c.Above = false
	c.Below = false
	c.Left = false
	c.Right = false
	c.ClimbingSlope = false
	c.DescendingSlope = false
	c.SlidingDownMaxSlope = false
	c.SlopeNormal = cp.Vector{}
	c.SlopeAngleOld = c.SlopeAngle
	c.SlopeAngle = 0
}

// Actor is a box collider moved by the collision resolver.
type Actor struct {
	ID      EntityID
	Box     Box
	Layer   Layer // layer the actor occupies
	Mask    Layer // layers the actor's rays test against
	Spacing RaySpacing

	Collisions CollisionState

	// FallThroughTimer counts down while one-way ledges are ignored.
	FallThroughTimer float64
}

// NewActor creates an actor and computes its ray spacing.
// Returns ErrRayCount when the box is too small for the spacing.
func NewActor(id EntityID, box Box, layer, mask Layer, skin, raySpacing float64) (*Actor, error) {
	spacing, err := ComputeSpacing(box, skin, raySpacing)
	if err != nil {
		return nil, err
	}
	return &Actor{
		ID:         id,
		Box:        box,
		Layer:      layer,
		Mask:       mask,
		Spacing:    spacing,
		Collisions: NewCollisionState(),
	}, nil
}

// Bounds returns the live collider box.
func (a *Actor) Bounds() Box {
	return a.Box
}

// Position returns the collider center.
func (a *Actor) Position() cp.Vector {
	return a.Box.Center
}

// Translate moves the collider by d.
func (a *Actor) Translate(d cp.Vector) {
	a.Box = a.Box.Translate(d)
}
