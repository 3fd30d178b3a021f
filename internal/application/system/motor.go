package system

import (
	"math"

	"github.com/younwookim/raykin/internal/domain/entity"
	"github.com/younwookim/raykin/internal/infrastructure/config"
	"github.com/younwookim/raykin/internal/logger"
	"go.uber.org/zap"
)

// MotorSystem turns player intent into velocity and moves the player
// through the collision resolver.
type MotorSystem struct {
	config   *config.PhysicsConfig
	resolver *CollisionResolver

	gravity         float64
	maxJumpVelocity float64
	minJumpVelocity float64
}

// NewMotorSystem derives gravity and jump speeds from the jump heights.
func NewMotorSystem(cfg *config.PhysicsConfig, resolver *CollisionResolver) *MotorSystem {
	apex := cfg.Jump.TimeToJumpApex
	gravity := -(2 * cfg.Jump.MaxJumpHeight) / (apex * apex)
	return &MotorSystem{
		config:          cfg,
		resolver:        resolver,
		gravity:         gravity,
		maxJumpVelocity: math.Abs(gravity) * apex,
		minJumpVelocity: math.Sqrt(2 * math.Abs(gravity) * cfg.Jump.MinJumpHeight),
	}
}

// Gravity returns the derived downward acceleration (negative).
func (s *MotorSystem) Gravity() float64 { return s.gravity }

// MaxJumpVelocity returns the launch speed reaching MaxJumpHeight.
func (s *MotorSystem) MaxJumpVelocity() float64 { return s.maxJumpVelocity }

// MinJumpVelocity returns the speed a released jump is cut to.
func (s *MotorSystem) MinJumpVelocity() float64 { return s.minJumpVelocity }

// Tick applies one tick of input and moves the player.
func (s *MotorSystem) Tick(p *entity.Player, input InputState, dt float64) entity.CollisionState {
	p.DirectionalInput = input.Axis()
	if input.JumpPressed {
		s.OnJumpInputDown(p)
	}
	if input.JumpReleased {
		s.OnJumpInputUp(p)
	}
	return s.Update(p, dt)
}

// Update integrates velocity, moves the player and reacts to contacts.
func (s *MotorSystem) Update(p *entity.Player, dt float64) entity.CollisionState {
	if p.FallThroughTimer > 0 {
		p.FallThroughTimer = math.Max(0, p.FallThroughTimer-dt)
	}

	s.calculateVelocity(p, dt)
	s.handleWallSliding(p, dt)

	state := s.resolver.Move(p.Actor, p.Velocity.Mult(dt), p.DirectionalInput, false)

	if state.Above || state.Below {
		if state.SlidingDownMaxSlope {
			p.Velocity.Y += state.SlopeNormal.Y * -s.gravity * dt
		} else {
			p.Velocity.Y = 0
		}
	}

	if state.Below || p.WallSliding {
		p.JumpCount = 0
	}
	return state
}

// OnJumpInputDown launches a jump if one is available.
// Wall slides jump away from the wall, over-steep slopes jump along their
// normal, and everything else jumps straight up.
func (s *MotorSystem) OnJumpInputDown(p *entity.Player) {
	if p.JumpCount >= s.config.Jump.MaxJumps {
		return
	}

	if p.WallSliding {
		wall := s.config.Wall
		wallDir := float64(p.WallDirX)
		switch {
		case math.RoundToEven(p.DirectionalInput.X) == wallDir:
			p.Velocity.X = -wallDir * wall.JumpClimb.X
			p.Velocity.Y = wall.JumpClimb.Y
		case p.DirectionalInput.X == 0:
			p.Velocity.X = -wallDir * wall.JumpOff.X
			p.Velocity.Y = wall.JumpOff.Y
		default:
			p.Velocity.X = -wallDir * wall.Leap.X
			p.Velocity.Y = wall.Leap.Y
		}
		s.launched(p, "wall")
		return
	}

	c := p.Collisions
	if c.SlidingDownMaxSlope {
		// no jumping into the slope
		if p.DirectionalInput.X == -direction(c.SlopeNormal.X) {
			return
		}
		p.Velocity = c.SlopeNormal.Mult(s.maxJumpVelocity)
		s.launched(p, "slope")
		return
	}

	p.Velocity.Y = s.maxJumpVelocity
	s.launched(p, "ground")
}

// OnJumpInputUp cuts a rising jump to the minimum jump speed.
func (s *MotorSystem) OnJumpInputUp(p *entity.Player) {
	if p.Velocity.Y > s.minJumpVelocity {
		p.Velocity.Y = s.minJumpVelocity
	}
}

func (s *MotorSystem) launched(p *entity.Player, kind string) {
	p.JumpCount++
	logger.Debug("jump",
		zap.Uint32("actor", uint32(p.ID)),
		zap.String("kind", kind),
		zap.Int("count", p.JumpCount),
		zap.Float64("vx", p.Velocity.X),
		zap.Float64("vy", p.Velocity.Y))
}

func (s *MotorSystem) calculateVelocity(p *entity.Player, dt float64) {
	target := p.DirectionalInput.X * s.config.Movement.MoveSpeed
	smoothTime := s.config.Movement.AccelerationTimeAirborne
	if p.Grounded() {
		smoothTime = s.config.Movement.AccelerationTimeGrounded
	}
	p.Velocity.X, p.VelocityXSmoothing = SmoothDamp(p.Velocity.X, target, p.VelocityXSmoothing, smoothTime, dt)
	p.Velocity.Y += s.gravity * dt
}

func (s *MotorSystem) handleWallSliding(p *entity.Player, dt float64) {
	c := p.Collisions
	p.WallSliding = false
	if c.Left {
		p.WallDirX = -1
	} else {
		p.WallDirX = 1
	}

	if !(c.Left || c.Right) || c.Below || p.Velocity.Y >= 0 {
		return
	}

	p.WallSliding = true
	if p.Velocity.Y < -s.config.Wall.SlideSpeedMax {
		p.Velocity.Y = -s.config.Wall.SlideSpeedMax
	}

	stick := s.config.Wall.StickTime
	if p.TimeToWallUnstick <= 0 {
		p.TimeToWallUnstick = stick
		return
	}

	p.VelocityXSmoothing = 0
	p.Velocity.X = 0
	if p.DirectionalInput.X != float64(p.WallDirX) && p.DirectionalInput.X != 0 {
		p.TimeToWallUnstick -= dt
	} else {
		p.TimeToWallUnstick = stick
	}
}
