package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/younwookim/raykin/internal/domain/entity"
	"github.com/younwookim/raykin/internal/infrastructure/config"
	"github.com/younwookim/raykin/internal/logger"
	"go.uber.org/zap"
)

// descendProbeLength bounds the trailing-corner probe used to find a slope
// under an actor walking downhill.
const descendProbeLength = 1e4

var (
	up    = cp.Vector{X: 0, Y: 1}
	down  = cp.Vector{X: 0, Y: -1}
	right = cp.Vector{X: 1, Y: 0}
)

// RayCaster answers the nearest-hit ray queries issued by the resolver.
type RayCaster interface {
	CastRay(origin, dir cp.Vector, maxDist float64, mask entity.Layer) (entity.RayHit, bool)
}

// RayCasters merges several casters and reports the nearest hit.
type RayCasters []RayCaster

// CastRay returns the closest hit among all casters.
func (cs RayCasters) CastRay(origin, dir cp.Vector, maxDist float64, mask entity.Layer) (entity.RayHit, bool) {
	var (
		best  entity.RayHit
		found bool
	)
	for _, c := range cs {
		hit, ok := c.CastRay(origin, dir, maxDist, mask)
		if ok && (!found || hit.Distance < best.Distance) {
			best, found = hit, true
		}
	}
	return best, found
}

// CollisionResolver turns a desired displacement into the largest
// collision-free displacement using skin-inset raycasts.
type CollisionResolver struct {
	caster RayCaster
	cfg    config.CollisionConfig
}

// NewCollisionResolver creates a resolver over the given caster.
func NewCollisionResolver(caster RayCaster, cfg config.CollisionConfig) *CollisionResolver {
	return &CollisionResolver{caster: caster, cfg: cfg}
}

// SkinWidth returns the inset of every ray origin.
func (r *CollisionResolver) SkinWidth() float64 {
	return r.cfg.SkinWidth
}

// Move resolves the displacement, translates the actor and stores the
// resulting contact state on it. standingOnPlatform forces Below unless
// the pass ended against a ceiling.
func (r *CollisionResolver) Move(actor *entity.Actor, displacement, input cp.Vector, standingOnPlatform bool) entity.CollisionState {
	moved, state := r.Resolve(actor, displacement, input)
	actor.Translate(moved)

	if standingOnPlatform && !state.Above {
		state.Below = true
	}

	if state.FallingThroughPlatform && actor.FallThroughTimer <= 0 {
		actor.FallThroughTimer = r.cfg.FallThroughTime
		logger.Debug("falling through one-way ledge",
			zap.Uint32("actor", uint32(actor.ID)),
			zap.Float64("seconds", r.cfg.FallThroughTime))
	}

	actor.Collisions = state
	return state
}

// Resolve computes the allowed displacement and the contact state for it
// without moving the actor. The actor's previous state supplies the facing
// direction and the slope angle of the last pass.
func (r *CollisionResolver) Resolve(actor *entity.Actor, displacement, input cp.Vector) (cp.Vector, entity.CollisionState) {
	p := resolution{
		r:       r,
		actor:   actor,
		origins: entity.ComputeOrigins(actor.Box, r.cfg.SkinWidth),
		state:   actor.Collisions,
		input:   input,
		move:    displacement,
	}
	p.state.Reset()
	p.state.MoveAmountOld = displacement
	p.state.FallingThroughPlatform = actor.FallThroughTimer > 0
	if p.state.FaceDir == 0 {
		p.state.FaceDir = 1
	}

	if p.move.Y < 0 {
		p.descendSlope()
	}
	if p.move.X != 0 {
		p.state.FaceDir = int(direction(p.move.X))
	}

	p.horizontalCollisions()
	if p.move.Y != 0 {
		p.verticalCollisions()
	}

	return p.move, p.state
}

// resolution is the working state of a single Resolve call.
type resolution struct {
	r       *CollisionResolver
	actor   *entity.Actor
	origins entity.RaycastOrigins
	state   entity.CollisionState
	input   cp.Vector
	move    cp.Vector
}

func (p *resolution) cast(origin, dir cp.Vector, length float64) (entity.RayHit, bool) {
	return p.r.caster.CastRay(origin, dir, length, p.actor.Mask)
}

func (p *resolution) skin() float64 {
	return p.r.cfg.SkinWidth
}

func (p *resolution) maxSlope() float64 {
	return p.r.cfg.MaxSlopeAngle
}

func (p *resolution) horizontalCollisions() {
	dirX := float64(p.state.FaceDir)
	rayLength := math.Abs(p.move.X) + p.skin()
	if math.Abs(p.move.X) < p.skin() {
		rayLength = 2 * p.skin()
	}

	base := p.origins.BottomRight
	if dirX == -1 {
		base = p.origins.BottomLeft
	}

	for i := 0; i < p.actor.Spacing.HorizontalCount; i++ {
		origin := base.Add(up.Mult(p.actor.Spacing.HorizontalSpacing * float64(i)))
		hit, ok := p.cast(origin, cp.Vector{X: dirX, Y: 0}, rayLength)
		if !ok || hit.Distance == 0 || hit.OneWay {
			continue
		}

		slopeAngle := entity.SlopeAngle(hit.Normal)

		if i == 0 && slopeAngle <= p.maxSlope() {
			if p.state.DescendingSlope {
				p.state.DescendingSlope = false
				p.move = p.state.MoveAmountOld
			}
			distanceToSlopeStart := 0.0
			if slopeAngle != p.state.SlopeAngleOld {
				distanceToSlopeStart = hit.Distance - p.skin()
				p.move.X -= distanceToSlopeStart * dirX
			}
			p.climbSlope(slopeAngle, hit.Normal)
			p.move.X += distanceToSlopeStart * dirX
		}

		if !p.state.ClimbingSlope || slopeAngle > p.maxSlope() {
			p.move.X = (hit.Distance - p.skin()) * dirX
			rayLength = hit.Distance

			if p.state.ClimbingSlope {
				p.move.Y = math.Tan(radians(p.state.SlopeAngle)) * math.Abs(p.move.X)
			}

			p.state.Left = dirX == -1
			p.state.Right = dirX == 1
		}
	}
}

func (p *resolution) verticalCollisions() {
	dirY := direction(p.move.Y)
	rayLength := math.Abs(p.move.Y) + p.skin()

	base := p.origins.TopLeft
	if dirY == -1 {
		base = p.origins.BottomLeft
	}

	for i := 0; i < p.actor.Spacing.VerticalCount; i++ {
		origin := base.Add(right.Mult(p.actor.Spacing.VerticalSpacing*float64(i) + p.move.X))
		hit, ok := p.cast(origin, cp.Vector{X: 0, Y: dirY}, rayLength)
		if !ok {
			continue
		}

		if hit.OneWay {
			if dirY == 1 || hit.Distance == 0 {
				continue
			}
			if p.state.FallingThroughPlatform {
				continue
			}
			if p.input.Y == -1 {
				p.state.FallingThroughPlatform = true
				continue
			}
		}

		p.move.Y = (hit.Distance - p.skin()) * dirY
		rayLength = hit.Distance

		if p.state.ClimbingSlope {
			p.move.X = p.move.Y / math.Tan(radians(p.state.SlopeAngle)) * direction(p.move.X)
		}

		p.state.Below = dirY == -1
		p.state.Above = dirY == 1
	}

	if !p.state.ClimbingSlope {
		return
	}

	// a new slope may start within this step
	dirX := direction(p.move.X)
	rayLength = math.Abs(p.move.X) + p.skin()
	base = p.origins.BottomRight
	if dirX == -1 {
		base = p.origins.BottomLeft
	}
	origin := base.Add(up.Mult(p.move.Y))
	hit, ok := p.cast(origin, cp.Vector{X: dirX, Y: 0}, rayLength)
	if !ok || hit.OneWay {
		return
	}
	if slopeAngle := entity.SlopeAngle(hit.Normal); slopeAngle != p.state.SlopeAngle {
		p.move.X = (hit.Distance - p.skin()) * dirX
		p.state.SlopeAngle = slopeAngle
		p.state.SlopeNormal = hit.Normal
	}
}

func (p *resolution) climbSlope(slopeAngle float64, normal cp.Vector) {
	moveDistance := math.Abs(p.move.X)
	rad := radians(slopeAngle)
	climbY := math.Sin(rad) * moveDistance

	if p.move.Y > climbY {
		// jumping
		return
	}

	p.move.Y = climbY
	p.move.X = math.Cos(rad) * moveDistance * direction(p.move.X)
	p.state.Below = true
	p.state.ClimbingSlope = true
	p.state.SlopeAngle = slopeAngle
	p.state.SlopeNormal = normal
}

func (p *resolution) descendSlope() {
	length := math.Abs(p.move.Y) + p.skin()
	hitLeft, okLeft := p.groundProbe(p.origins.BottomLeft, length)
	hitRight, okRight := p.groundProbe(p.origins.BottomRight, length)

	if okLeft != okRight {
		if okLeft {
			p.slideDownMaxSlope(hitLeft)
		} else {
			p.slideDownMaxSlope(hitRight)
		}
	}

	if p.state.SlidingDownMaxSlope {
		return
	}

	dirX := direction(p.move.X)
	origin := p.origins.BottomLeft
	if dirX == -1 {
		origin = p.origins.BottomRight
	}
	hit, ok := p.groundProbe(origin, descendProbeLength)
	if !ok {
		return
	}

	slopeAngle := entity.SlopeAngle(hit.Normal)
	if slopeAngle == 0 || slopeAngle > p.maxSlope() {
		return
	}
	if direction(hit.Normal.X) != dirX {
		return
	}

	rad := radians(slopeAngle)
	if hit.Distance-p.skin() > math.Tan(rad)*math.Abs(p.move.X) {
		return
	}

	moveDistance := math.Abs(p.move.X)
	p.move.X = math.Cos(rad) * moveDistance * dirX
	p.move.Y -= math.Sin(rad) * moveDistance

	p.state.SlopeAngle = slopeAngle
	p.state.DescendingSlope = true
	p.state.Below = true
	p.state.SlopeNormal = hit.Normal
}

func (p *resolution) slideDownMaxSlope(hit entity.RayHit) {
	slopeAngle := entity.SlopeAngle(hit.Normal)
	if slopeAngle <= p.maxSlope() {
		return
	}

	p.move.X = direction(hit.Normal.X) * (math.Abs(p.move.Y) - hit.Distance) / math.Tan(radians(slopeAngle))
	p.state.SlopeAngle = slopeAngle
	p.state.SlidingDownMaxSlope = true
	p.state.SlopeNormal = hit.Normal
}

// groundProbe casts down, ignoring one-way ledges while falling through them.
func (p *resolution) groundProbe(origin cp.Vector, length float64) (entity.RayHit, bool) {
	hit, ok := p.cast(origin, down, length)
	if ok && hit.OneWay && p.state.FallingThroughPlatform {
		return entity.RayHit{}, false
	}
	return hit, ok
}
