package ecs

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/raykin/internal/domain/entity"
)

func createTestActor(t *testing.T, id entity.EntityID) *entity.Actor {
	t.Helper()
	a, err := entity.NewActor(id, entity.NewBox(cp.Vector{}, cp.Vector{X: 2, Y: 1}),
		entity.LayerPlatform, entity.LayerActor, 0.015, 0.25)
	require.NoError(t, err)
	return a
}

func createTestPlatform(t *testing.T, id entity.EntityID) *entity.Platform {
	t.Helper()
	p, err := entity.NewPlatform(createTestActor(t, id), entity.PlatformPath{
		Waypoints: []cp.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}},
		Speed:     1,
	})
	require.NoError(t, err)
	return p
}

func TestNewWorld(t *testing.T) {
	w := NewWorld()

	assert.NotNil(t, w)
	assert.Equal(t, entity.EntityID(1), w.nextID)
	assert.NotNil(t, w.Actors)
	assert.NotNil(t, w.Players)
	assert.NotNil(t, w.Platforms)
	assert.Equal(t, entity.StaticID, w.PlayerID)
}

func TestNewEntity(t *testing.T) {
	w := NewWorld()

	id1 := w.NewEntity()
	id2 := w.NewEntity()
	id3 := w.NewEntity()

	assert.Equal(t, entity.EntityID(1), id1)
	assert.Equal(t, entity.EntityID(2), id2)
	assert.Equal(t, entity.EntityID(3), id3)
	assert.NotEqual(t, entity.StaticID, id1, "zero is reserved for static geometry")
}

func TestAddPlayer(t *testing.T) {
	w := NewWorld()
	id := w.NewEntity()
	p := entity.NewPlayer(createTestActor(t, id))

	_, ok := w.Player()
	assert.False(t, ok)

	w.AddPlayer(p)

	got, ok := w.Player()
	require.True(t, ok)
	assert.Same(t, p, got)
	assert.Equal(t, id, w.PlayerID)

	actor, ok := w.Actor(id)
	require.True(t, ok)
	assert.Same(t, p.Actor, actor)
}

func TestActor_Unknown(t *testing.T) {
	w := NewWorld()

	_, ok := w.Actor(entity.StaticID)
	assert.False(t, ok)
	_, ok = w.Actor(42)
	assert.False(t, ok)
}

func TestPlatformsInOrder(t *testing.T) {
	w := NewWorld()
	var ids []entity.EntityID
	for i := 0; i < 5; i++ {
		ids = append(ids, w.NewEntity())
	}
	// register out of order
	for _, i := range []int{3, 0, 4, 1, 2} {
		w.AddPlatform(createTestPlatform(t, ids[i]))
	}

	ordered := w.PlatformsInOrder()
	require.Len(t, ordered, 5)
	for i, p := range ordered {
		assert.Equal(t, ids[i], p.ID)
	}
	assert.Equal(t, 5, w.CountPlatforms())

	actor, ok := w.Actor(ids[2])
	require.True(t, ok)
	assert.Equal(t, entity.LayerPlatform, actor.Layer)
}
