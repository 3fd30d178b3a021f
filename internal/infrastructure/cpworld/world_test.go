package cpworld

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/raykin/internal/domain/entity"
)

func createTestWorld() *World {
	w := New()
	w.AddShape(entity.BoxShape(entity.NewBox(cp.Vector{X: 1, Y: 0.5}, cp.Vector{X: 2, Y: 1})), entity.LayerSolid)
	return w
}

func TestCastRay(t *testing.T) {
	w := createTestWorld()
	down := cp.Vector{X: 0, Y: -1}

	tests := []struct {
		name     string
		origin   cp.Vector
		maxDist  float64
		mask     entity.Layer
		wantHit  bool
		wantDist float64
	}{
		{"hit top", cp.Vector{X: 1, Y: 3}, 5, entity.LayerSolid, true, 2},
		{"too short", cp.Vector{X: 1, Y: 3}, 1.5, entity.LayerSolid, false, 0},
		{"masked out", cp.Vector{X: 1, Y: 3}, 5, entity.LayerPlatform, false, 0},
		{"beside", cp.Vector{X: 3, Y: 3}, 5, entity.LayerSolid, false, 0},
		{"zero length", cp.Vector{X: 1, Y: 3}, 0, entity.LayerSolid, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := w.CastRay(tt.origin, down, tt.maxDist, tt.mask)
			require.Equal(t, tt.wantHit, ok)
			if !ok {
				return
			}
			assert.InDelta(t, tt.wantDist, hit.Distance, 1e-6)
			assert.InDelta(t, 1, hit.Normal.Y, 1e-6)
			assert.InDelta(t, 1, hit.Point.Y, 1e-6)
			assert.Equal(t, entity.StaticID, hit.Body)
			assert.False(t, hit.OneWay)
		})
	}
}

func TestAddStage(t *testing.T) {
	stage := &entity.Stage{
		Width:    3,
		Height:   2,
		TileSize: 1,
		Tiles: [][]entity.Tile{
			{{Type: entity.TileEmpty}, {Type: entity.TileOneWay}, {Type: entity.TileEmpty}},
			{{Type: entity.TileSolid}, {Type: entity.TileSolid}, {Type: entity.TileSolid}},
		},
	}

	w := New()
	w.AddStage(stage)
	assert.Equal(t, 2, w.ShapeCount())

	hit, ok := w.CastRay(cp.Vector{X: 1.5, Y: 4}, cp.Vector{X: 0, Y: -1}, 5, entity.LayerSolid)
	require.True(t, ok)
	assert.True(t, hit.OneWay)
	assert.InDelta(t, 2, hit.Distance, 1e-6)
}
