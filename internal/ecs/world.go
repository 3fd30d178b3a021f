package ecs

import (
	"sort"

	"github.com/younwookim/raykin/internal/domain/entity"
)

// World is the registry of simulated bodies. IDs are never recycled and
// zero stays reserved for static geometry.
type World struct {
	nextID entity.EntityID

	// Components
	Actors    map[entity.EntityID]*entity.Actor
	Players   map[entity.EntityID]*entity.Player
	Platforms map[entity.EntityID]*entity.Platform

	// Singleton references.
	PlayerID entity.EntityID
}

// NewWorld creates a new empty world.
func NewWorld() *World {
	return &World{
		nextID:    1, // 0 is static geometry
		Actors:    make(map[entity.EntityID]*entity.Actor),
		Players:   make(map[entity.EntityID]*entity.Player),
		Platforms: make(map[entity.EntityID]*entity.Platform),
	}
}

// NewEntity returns a new unique entity ID.
func (w *World) NewEntity() entity.EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// Actor returns the collider registered under id.
func (w *World) Actor(id entity.EntityID) (*entity.Actor, bool) {
	a, ok := w.Actors[id]
	return a, ok
}

// AddPlayer registers a player and makes it the controlled one.
func (w *World) AddPlayer(p *entity.Player) {
	w.Actors[p.ID] = p.Actor
	w.Players[p.ID] = p
	w.PlayerID = p.ID
}

// AddPlatform registers a platform.
func (w *World) AddPlatform(p *entity.Platform) {
	w.Actors[p.ID] = p.Actor
	w.Platforms[p.ID] = p
}

// Player returns the controlled player.
func (w *World) Player() (*entity.Player, bool) {
	p, ok := w.Players[w.PlayerID]
	return p, ok
}

// PlatformsInOrder returns platforms sorted by ID so every run ticks them
// in the same order.
func (w *World) PlatformsInOrder() []*entity.Platform {
	out := make([]*entity.Platform, 0, len(w.Platforms))
	for _, p := range w.Platforms {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CountPlatforms returns the number of registered platforms.
func (w *World) CountPlatforms() int {
	return len(w.Platforms)
}
