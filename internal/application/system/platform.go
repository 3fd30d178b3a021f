package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/younwookim/raykin/internal/domain/entity"
	"github.com/younwookim/raykin/internal/logger"
	"go.uber.org/zap"
)

// PassengerRegistry resolves the actor a platform ray struck.
type PassengerRegistry interface {
	Actor(id entity.EntityID) (*entity.Actor, bool)
}

// PlatformSystem moves platforms along their waypoints and carries or
// pushes the actors they touch.
type PlatformSystem struct {
	resolver *CollisionResolver
	registry PassengerRegistry
}

// NewPlatformSystem creates a new platform system.
func NewPlatformSystem(resolver *CollisionResolver, registry PassengerRegistry) *PlatformSystem {
	return &PlatformSystem{resolver: resolver, registry: registry}
}

// Ease maps linear progress x in [0,1] to eased progress.
// easeAmount 0 is linear; larger values ease harder at both ends.
func Ease(x, easeAmount float64) float64 {
	a := easeAmount + 1
	xa := math.Pow(x, a)
	return xa / (xa + math.Pow(1-x, a))
}

// Tick advances the platform one step. Passengers the platform pushes
// move before it, passengers it carries move after it.
func (s *PlatformSystem) Tick(p *entity.Platform, dt float64) []entity.PassengerMovement {
	velocity := s.CalculateMovement(p, dt)
	movements := s.CalculatePassengerMovement(p, velocity)

	s.movePassengers(movements, true)
	p.Translate(velocity)
	s.movePassengers(movements, false)

	return movements
}

// CalculateMovement advances the waypoint state machine by dt and returns
// the displacement for this tick.
func (s *PlatformSystem) CalculateMovement(p *entity.Platform, dt float64) cp.Vector {
	p.Clock += dt
	if p.Clock < p.NextMoveTime {
		p.Phase = entity.PhaseWaiting
		return cp.Vector{}
	}
	if p.Phase == entity.PhaseWaiting {
		logger.Debug("platform departing",
			zap.Uint32("platform", uint32(p.ID)),
			zap.Int("from", p.FromIndex))
		p.Phase = entity.PhaseMoving
	}

	n := len(p.Waypoints)
	p.FromIndex %= n
	to := (p.FromIndex + 1) % n
	from := p.Waypoints[p.FromIndex]
	target := p.Waypoints[to]

	p.Percent = clamp01(p.Percent + dt*p.Speed/from.Distance(target))
	eased := Ease(p.Percent, p.EaseAmount)
	next := from.Lerp(target, eased)

	if p.Percent >= 1 {
		p.Percent = 0
		p.FromIndex++

		if !p.Cyclic && p.FromIndex >= n-1 {
			p.FromIndex = 0
			reverse(p.Waypoints)
			logger.Debug("platform reversing", zap.Uint32("platform", uint32(p.ID)))
		}

		p.NextMoveTime = p.Clock + p.WaitTime
		if p.WaitTime > 0 {
			p.Phase = entity.PhaseWaiting
		}
	}

	return next.Sub(p.Position())
}

// CalculatePassengerMovement finds the actors touched by a platform about
// to move by velocity. Each actor is reported at most once; the first ray
// that reaches it decides its displacement.
func (s *PlatformSystem) CalculatePassengerMovement(p *entity.Platform, velocity cp.Vector) []entity.PassengerMovement {
	var movements []entity.PassengerMovement
	seen := make(map[entity.EntityID]struct{})
	skin := s.resolver.SkinWidth()
	origins := entity.ComputeOrigins(p.Box, skin)

	add := func(hit entity.RayHit, push cp.Vector, standing, before bool) {
		if hit.Distance == 0 || hit.Body == entity.StaticID || hit.Body == p.ID {
			return
		}
		if _, ok := seen[hit.Body]; ok {
			return
		}
		seen[hit.Body] = struct{}{}
		movements = append(movements, entity.PassengerMovement{
			Passenger:          hit.Body,
			Displacement:       push,
			StandingOnPlatform: standing,
			MoveBeforePlatform: before,
		})
	}

	// vertically moving platform
	if velocity.Y != 0 {
		dirY := direction(velocity.Y)
		rayLength := math.Abs(velocity.Y) + skin
		base := origins.TopLeft
		if dirY == -1 {
			base = origins.BottomLeft
		}
		for i := 0; i < p.Spacing.VerticalCount; i++ {
			origin := base.Add(right.Mult(p.Spacing.VerticalSpacing * float64(i)))
			hit, ok := s.resolver.caster.CastRay(origin, cp.Vector{X: 0, Y: dirY}, rayLength, p.Mask)
			if !ok {
				continue
			}
			pushX := 0.0
			if dirY == 1 {
				pushX = velocity.X
			}
			pushY := velocity.Y - (hit.Distance-skin)*dirY
			add(hit, cp.Vector{X: pushX, Y: pushY}, dirY == 1, true)
		}
	}

	// horizontally moving platform
	if velocity.X != 0 {
		dirX := direction(velocity.X)
		rayLength := math.Abs(velocity.X) + skin
		base := origins.BottomRight
		if dirX == -1 {
			base = origins.BottomLeft
		}
		for i := 0; i < p.Spacing.HorizontalCount; i++ {
			origin := base.Add(up.Mult(p.Spacing.HorizontalSpacing * float64(i)))
			hit, ok := s.resolver.caster.CastRay(origin, cp.Vector{X: dirX, Y: 0}, rayLength, p.Mask)
			if !ok {
				continue
			}
			pushX := velocity.X - (hit.Distance-skin)*dirX
			add(hit, cp.Vector{X: pushX, Y: -skin}, false, true)
		}
	}

	// passenger on top of a horizontally or downward moving platform
	if direction(velocity.Y) == -1 || (velocity.Y == 0 && velocity.X != 0) {
		rayLength := 2 * skin
		for i := 0; i < p.Spacing.VerticalCount; i++ {
			origin := origins.TopLeft.Add(right.Mult(p.Spacing.VerticalSpacing * float64(i)))
			hit, ok := s.resolver.caster.CastRay(origin, up, rayLength, p.Mask)
			if !ok {
				continue
			}
			add(hit, velocity, true, false)
		}
	}

	return movements
}

func (s *PlatformSystem) movePassengers(movements []entity.PassengerMovement, beforePlatform bool) {
	for _, m := range movements {
		if m.MoveBeforePlatform != beforePlatform {
			continue
		}
		actor, ok := s.registry.Actor(m.Passenger)
		if !ok {
			logger.Debug("platform hit an unregistered body", zap.Uint32("id", uint32(m.Passenger)))
			continue
		}
		s.resolver.Move(actor, m.Displacement, cp.Vector{}, m.StandingOnPlatform)
	}
}

func reverse(vs []cp.Vector) {
	for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
		vs[i], vs[j] = vs[j], vs[i]
	}
}
