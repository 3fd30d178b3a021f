package shapeworld

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/raykin/internal/domain/entity"
)

var down = cp.Vector{X: 0, Y: -1}

type staticBounds struct {
	box entity.Box
}

func (s *staticBounds) Bounds() entity.Box { return s.box }

// createTestWorld holds a 2x1 box with its bottom-left at the origin.
func createTestWorld(t *testing.T) *World {
	t.Helper()
	w := New()
	require.NoError(t, w.AddShape(entity.BoxShape(entity.NewBox(cp.Vector{X: 1, Y: 0.5}, cp.Vector{X: 2, Y: 1})), entity.LayerSolid))
	return w
}

func TestCastRay_Static(t *testing.T) {
	w := createTestWorld(t)

	tests := []struct {
		name     string
		origin   cp.Vector
		dir      cp.Vector
		maxDist  float64
		mask     entity.Layer
		wantHit  bool
		wantDist float64
		wantN    cp.Vector
	}{
		{"down onto top", cp.Vector{X: 1, Y: 3}, down, 5, entity.LayerSolid, true, 2, cp.Vector{X: 0, Y: 1}},
		{"right onto side", cp.Vector{X: -1, Y: 0.5}, cp.Vector{X: 1, Y: 0}, 5, entity.LayerSolid, true, 1, cp.Vector{X: -1, Y: 0}},
		{"too short", cp.Vector{X: 1, Y: 3}, down, 1.5, entity.LayerSolid, false, 0, cp.Vector{}},
		{"masked out", cp.Vector{X: 1, Y: 3}, down, 5, entity.LayerPlatform, false, 0, cp.Vector{}},
		{"pointing away", cp.Vector{X: 1, Y: 3}, cp.Vector{X: 0, Y: 1}, 5, entity.LayerSolid, false, 0, cp.Vector{}},
		{"beside", cp.Vector{X: 3, Y: 3}, down, 5, entity.LayerSolid, false, 0, cp.Vector{}},
		{"inside", cp.Vector{X: 1, Y: 0.5}, down, 5, entity.LayerSolid, true, 0, cp.Vector{X: 0, Y: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := w.CastRay(tt.origin, tt.dir, tt.maxDist, tt.mask)
			require.Equal(t, tt.wantHit, ok)
			if !ok {
				return
			}
			assert.InDelta(t, tt.wantDist, hit.Distance, 1e-9)
			assert.InDelta(t, tt.wantN.X, hit.Normal.X, 1e-9)
			assert.InDelta(t, tt.wantN.Y, hit.Normal.Y, 1e-9)
			assert.Equal(t, entity.StaticID, hit.Body)
			assert.InDelta(t, tt.origin.Y+tt.dir.Y*tt.wantDist, hit.Point.Y, 1e-9)
		})
	}
}

func TestCastRay_Slope(t *testing.T) {
	w := New()
	require.NoError(t, w.AddShape(entity.Shape{Verts: []cp.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}}, entity.LayerSolid))

	hit, ok := w.CastRay(cp.Vector{X: 0.5, Y: 2}, down, 5, entity.LayerSolid)
	require.True(t, ok)

	assert.InDelta(t, 1.5, hit.Distance, 1e-9)
	assert.InDelta(t, 45, entity.SlopeAngle(hit.Normal), 1e-9)
	assert.Less(t, hit.Normal.X, 0.0, "slope rising right faces left")
}

func TestCastRay_OneWay(t *testing.T) {
	w := New()
	ledge := entity.BoxShape(entity.NewBox(cp.Vector{X: 0, Y: 0}, cp.Vector{X: 2, Y: 0.25}))
	ledge.OneWay = true
	require.NoError(t, w.AddShape(ledge, entity.LayerSolid))

	hit, ok := w.CastRay(cp.Vector{X: 0, Y: 1}, down, 2, entity.LayerSolid)
	require.True(t, ok)
	assert.True(t, hit.OneWay)
}

func TestAddShape_Clockwise(t *testing.T) {
	w := New()
	cw := []cp.Vector{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 0}}
	require.NoError(t, w.AddShape(entity.Shape{Verts: cw}, entity.LayerSolid))

	hit, ok := w.CastRay(cp.Vector{X: 1, Y: 3}, down, 5, entity.LayerSolid)
	require.True(t, ok)
	assert.InDelta(t, 2, hit.Distance, 1e-9)
	assert.InDelta(t, 1, hit.Normal.Y, 1e-9)
}

func TestAddShape_TooFewVertices(t *testing.T) {
	w := New()
	err := w.AddShape(entity.Shape{Verts: []cp.Vector{{}, {X: 1}}}, entity.LayerSolid)
	assert.Error(t, err)
	assert.Equal(t, 0, w.StaticCount())
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
	require.NoError(t, w.AddStage(stage))
	assert.Equal(t, 2, w.StaticCount())

	hit, ok := w.CastRay(cp.Vector{X: 0.5, Y: 3}, down, 5, entity.LayerSolid)
	require.True(t, ok)
	assert.InDelta(t, 2, hit.Distance, 1e-9, "floor top at y=1")
}

func TestCastRay_Dynamic(t *testing.T) {
	w := createTestWorld(t)
	body := &staticBounds{box: entity.NewBox(cp.Vector{X: 1, Y: 2}, cp.Vector{X: 1, Y: 0.5})}
	w.AddBody(9, entity.LayerActor, body)

	// the body sits above the static box and is nearer
	hit, ok := w.CastRay(cp.Vector{X: 1, Y: 4}, down, 5, entity.LayerSolid|entity.LayerActor)
	require.True(t, ok)
	assert.Equal(t, entity.EntityID(9), hit.Body)
	assert.InDelta(t, 1.75, hit.Distance, 1e-9)

	// bounds are read live
	body.box = body.box.Translate(cp.Vector{X: 0, Y: 1})
	hit, ok = w.CastRay(cp.Vector{X: 1, Y: 4}, down, 5, entity.LayerActor)
	require.True(t, ok)
	assert.InDelta(t, 0.75, hit.Distance, 1e-9)

	// mask excludes the body
	hit, ok = w.CastRay(cp.Vector{X: 1, Y: 4}, down, 5, entity.LayerSolid)
	require.True(t, ok)
	assert.Equal(t, entity.StaticID, hit.Body)
}
