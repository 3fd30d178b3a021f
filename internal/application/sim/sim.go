// Package sim runs the platformer core headless at a fixed tick.
package sim

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/younwookim/raykin/internal/application/system"
	"github.com/younwookim/raykin/internal/domain/entity"
	"github.com/younwookim/raykin/internal/ecs"
	"github.com/younwookim/raykin/internal/infrastructure/config"
	"github.com/younwookim/raykin/internal/infrastructure/cpworld"
	"github.com/younwookim/raykin/internal/infrastructure/shapeworld"
	"github.com/younwookim/raykin/internal/logger"
	"go.uber.org/zap"
)

// PlayerSnapshot is the read-only player state exposed to cameras,
// animation and tests.
type PlayerSnapshot struct {
	Tick        int
	Position    cp.Vector
	Velocity    cp.Vector
	Collisions  entity.CollisionState
	WallSliding bool
	JumpCount   int
}

// Simulation owns the registry, the world backend and the systems.
type Simulation struct {
	cfg   *config.PhysicsConfig
	stage *entity.Stage
	world *ecs.World

	bodies *shapeworld.World
	caster system.RayCaster

	resolver  *system.CollisionResolver
	motor     *system.MotorSystem
	platforms *system.PlatformSystem

	player        *entity.Player
	platformOrder []*entity.Platform
	tick          int
}

// New builds a simulation for a stage. Static geometry goes to the backend
// named by cfg.World.Backend; actors and platforms are always dynamic
// bodies of the shape world.
func New(cfg *config.PhysicsConfig, stageCfg *config.StageConfig) (*Simulation, error) {
	stage, err := system.LoadStage(stageCfg)
	if err != nil {
		return nil, err
	}

	bodies := shapeworld.New()
	var caster system.RayCaster
	switch cfg.World.Backend {
	case config.BackendChipmunk:
		statics := cpworld.New()
		statics.AddStage(stage)
		caster = system.RayCasters{statics, bodies}
	default:
		if err := bodies.AddStage(stage); err != nil {
			return nil, fmt.Errorf("stage %s: %w", stageCfg.ID, err)
		}
		caster = bodies
	}

	s := &Simulation{
		cfg:    cfg,
		stage:  stage,
		world:  ecs.NewWorld(),
		bodies: bodies,
		caster: caster,
	}
	s.buildSystems()

	if err := s.spawnPlayer(stageCfg.Player); err != nil {
		return nil, err
	}
	for i, pc := range stageCfg.Platforms {
		if err := s.spawnPlatform(pc); err != nil {
			return nil, fmt.Errorf("stage %s platform %d: %w", stageCfg.ID, i, err)
		}
	}

	s.platformOrder = s.world.PlatformsInOrder()

	logger.Info("simulation ready",
		zap.String("stage", stageCfg.ID),
		zap.String("backend", cfg.World.Backend),
		zap.Int("platforms", s.world.CountPlatforms()))
	return s, nil
}

func (s *Simulation) buildSystems() {
	s.resolver = system.NewCollisionResolver(s.caster, s.cfg.Collision)
	s.motor = system.NewMotorSystem(s.cfg, s.resolver)
	s.platforms = system.NewPlatformSystem(s.resolver, s.world)
}

func (s *Simulation) spawnPlayer(pc config.ActorConfig) error {
	size := pc.Size.Vector()
	center := s.stage.Spawn.Add(cp.Vector{X: 0, Y: size.Y / 2})

	id := s.world.NewEntity()
	actor, err := entity.NewActor(id, entity.NewBox(center, size),
		entity.LayerActor, entity.LayerSolid|entity.LayerPlatform,
		s.cfg.Collision.SkinWidth, s.cfg.Collision.RaySpacing)
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}

	s.player = entity.NewPlayer(actor)
	s.world.AddPlayer(s.player)
	s.bodies.AddBody(id, entity.LayerActor, actor)
	return nil
}

func (s *Simulation) spawnPlatform(pc config.PlatformConfig) error {
	id := s.world.NewEntity()
	actor, err := entity.NewActor(id, entity.NewBox(pc.Position.Vector(), pc.Size.Vector()),
		entity.LayerPlatform, entity.LayerActor,
		s.cfg.Collision.SkinWidth, s.cfg.Collision.RaySpacing)
	if err != nil {
		return err
	}

	waypoints := make([]cp.Vector, len(pc.Waypoints))
	for i, wp := range pc.Waypoints {
		waypoints[i] = wp.Vector()
	}
	platform, err := entity.NewPlatform(actor, entity.PlatformPath{
		Waypoints:  waypoints,
		Speed:      pc.Speed,
		EaseAmount: pc.EaseAmount,
		WaitTime:   pc.WaitTime,
		Cyclic:     pc.Cyclic,
	})
	if err != nil {
		return err
	}

	s.world.AddPlatform(platform)
	s.bodies.AddBody(id, entity.LayerPlatform, actor)
	return nil
}

// Step advances one fixed tick. Platforms move first so the player's
// contacts reflect this tick's carry and push.
func (s *Simulation) Step(input system.InputState) PlayerSnapshot {
	dt := s.cfg.DT()
	for _, p := range s.platformOrder {
		s.platforms.Tick(p, dt)
	}
	s.motor.Tick(s.player, input, dt)
	s.tick++
	return s.Snapshot()
}

// Snapshot returns the current player state.
func (s *Simulation) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		Tick:        s.tick,
		Position:    s.player.Position(),
		Velocity:    s.player.Velocity,
		Collisions:  s.player.Collisions,
		WallSliding: s.player.WallSliding,
		JumpCount:   s.player.JumpCount,
	}
}

// Reconfigure swaps in new tuning without resetting body state.
// The world backend is fixed at construction and is not switched.
func (s *Simulation) Reconfigure(cfg *config.PhysicsConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.World.Backend != s.cfg.World.Backend {
		logger.Warn("world backend change ignored until restart",
			zap.String("current", s.cfg.World.Backend),
			zap.String("requested", cfg.World.Backend))
	}

	// every actor must fit the new spacing before any is changed
	spacings := make(map[entity.EntityID]entity.RaySpacing, len(s.world.Actors))
	for id, a := range s.world.Actors {
		spacing, err := entity.ComputeSpacing(a.Box, cfg.Collision.SkinWidth, cfg.Collision.RaySpacing)
		if err != nil {
			return fmt.Errorf("actor %d: %w", id, err)
		}
		spacings[id] = spacing
	}
	for id, spacing := range spacings {
		s.world.Actors[id].Spacing = spacing
	}

	next := *cfg
	next.World.Backend = s.cfg.World.Backend
	s.cfg = &next
	s.buildSystems()
	logger.Info("physics reconfigured")
	return nil
}

// Stage returns the static tile stage.
func (s *Simulation) Stage() *entity.Stage { return s.stage }

// Player returns the simulated player.
func (s *Simulation) Player() *entity.Player { return s.player }

// Platforms returns platforms in tick order.
func (s *Simulation) Platforms() []*entity.Platform { return s.platformOrder }

// Config returns the active tuning.
func (s *Simulation) Config() *config.PhysicsConfig { return s.cfg }

// Motor exposes the derived jump parameters.
func (s *Simulation) Motor() *system.MotorSystem { return s.motor }
