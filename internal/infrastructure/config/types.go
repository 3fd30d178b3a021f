package config

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

// ErrInvalidConfig is returned when a configuration cannot drive the simulation.
var ErrInvalidConfig = errors.New("invalid config")

// PhysicsConfig is the root config for physics.yaml.
type PhysicsConfig struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Collision  CollisionConfig  `yaml:"collision"`
	Movement   MovementConfig   `yaml:"movement"`
	Jump       JumpConfig       `yaml:"jump"`
	Wall       WallConfig       `yaml:"wall"`
	Display    DisplayConfig    `yaml:"display"`
	Logging    LoggingConfig    `yaml:"logging"`
	World      WorldConfig      `yaml:"world"`
}

type SimulationConfig struct {
	TickRate int `yaml:"tickRate"` // ticks per second
}

// CollisionConfig tunes the raycast controller.
type CollisionConfig struct {
	SkinWidth       float64 `yaml:"skinWidth"`
	RaySpacing      float64 `yaml:"raySpacing"`    // target distance between rays
	MaxSlopeAngle   float64 `yaml:"maxSlopeAngle"` // degrees
	FallThroughTime float64 `yaml:"fallThroughTime"`
}

type MovementConfig struct {
	MoveSpeed                float64 `yaml:"moveSpeed"`
	AccelerationTimeAirborne float64 `yaml:"accelerationTimeAirborne"`
	AccelerationTimeGrounded float64 `yaml:"accelerationTimeGrounded"`
}

// JumpConfig holds the designer-facing jump parameters.
// Gravity and launch speeds are derived from them.
type JumpConfig struct {
	MaxJumpHeight  float64 `yaml:"maxJumpHeight"`
	MinJumpHeight  float64 `yaml:"minJumpHeight"`
	TimeToJumpApex float64 `yaml:"timeToJumpApex"`
	MaxJumps       int     `yaml:"maxJumps"` // activations allowed between ground or wall contacts
}

type WallConfig struct {
	SlideSpeedMax float64 `yaml:"slideSpeedMax"`
	StickTime     float64 `yaml:"stickTime"`
	JumpClimb     Vec     `yaml:"jumpClimb"`
	JumpOff       Vec     `yaml:"jumpOff"`
	Leap          Vec     `yaml:"leap"`
}

type DisplayConfig struct {
	ScreenWidth   int     `yaml:"screenWidth"`
	ScreenHeight  int     `yaml:"screenHeight"`
	PixelsPerUnit float64 `yaml:"pixelsPerUnit"`
	Scale         int     `yaml:"scale"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Backend names for WorldConfig.
const (
	BackendShapes   = "shapes"
	BackendChipmunk = "chipmunk"
)

type WorldConfig struct {
	Backend string `yaml:"backend"`
}

// Vec is a YAML-friendly 2D vector.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vector converts to a cp.Vector.
func (v Vec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

// Default returns the tuning the demo stages were built for.
func Default() *PhysicsConfig {
	return &PhysicsConfig{
		Simulation: SimulationConfig{TickRate: 60},
		Collision: CollisionConfig{
			SkinWidth:       0.015,
			RaySpacing:      0.25,
			MaxSlopeAngle:   80,
			FallThroughTime: 0.5,
		},
		Movement: MovementConfig{
			MoveSpeed:                10,
			AccelerationTimeAirborne: 0.1,
			AccelerationTimeGrounded: 0.05,
		},
		Jump: JumpConfig{
			MaxJumpHeight:  3.5,
			MinJumpHeight:  1,
			TimeToJumpApex: 0.3,
			MaxJumps:       2,
		},
		Wall: WallConfig{
			SlideSpeedMax: 3,
			StickTime:     0.1,
			JumpClimb:     Vec{X: 7.5, Y: 16},
			JumpOff:       Vec{X: 8.5, Y: 7},
			Leap:          Vec{X: 18, Y: 17},
		},
		Display: DisplayConfig{
			ScreenWidth:   320,
			ScreenHeight:  240,
			PixelsPerUnit: 16,
			Scale:         2,
		},
		Logging: LoggingConfig{Level: "info"},
		World:   WorldConfig{Backend: BackendShapes},
	}
}

// Validate rejects tunings that would produce undefined per-tick math.
func (c *PhysicsConfig) Validate() error {
	switch {
	case c.Simulation.TickRate <= 0:
		return fmt.Errorf("simulation.tickRate %d: %w", c.Simulation.TickRate, ErrInvalidConfig)
	case c.Collision.SkinWidth <= 0:
		return fmt.Errorf("collision.skinWidth %v must be positive: %w", c.Collision.SkinWidth, ErrInvalidConfig)
	case c.Collision.RaySpacing <= c.Collision.SkinWidth:
		return fmt.Errorf("collision.raySpacing %v must exceed skinWidth: %w", c.Collision.RaySpacing, ErrInvalidConfig)
	case c.Collision.MaxSlopeAngle <= 0 || c.Collision.MaxSlopeAngle >= 90:
		return fmt.Errorf("collision.maxSlopeAngle %v outside (0, 90): %w", c.Collision.MaxSlopeAngle, ErrInvalidConfig)
	case c.Jump.TimeToJumpApex <= 0:
		return fmt.Errorf("jump.timeToJumpApex %v must be positive: %w", c.Jump.TimeToJumpApex, ErrInvalidConfig)
	case c.Jump.MinJumpHeight > c.Jump.MaxJumpHeight:
		return fmt.Errorf("jump.minJumpHeight %v exceeds maxJumpHeight %v: %w", c.Jump.MinJumpHeight, c.Jump.MaxJumpHeight, ErrInvalidConfig)
	case c.Jump.MaxJumps < 1:
		return fmt.Errorf("jump.maxJumps %d: %w", c.Jump.MaxJumps, ErrInvalidConfig)
	}

	switch c.World.Backend {
	case BackendShapes, BackendChipmunk:
	default:
		return fmt.Errorf("world.backend %q: %w", c.World.Backend, ErrInvalidConfig)
	}
	return nil
}

// DT returns the fixed tick duration in seconds.
func (c *PhysicsConfig) DT() float64 {
	return 1.0 / float64(c.Simulation.TickRate)
}
