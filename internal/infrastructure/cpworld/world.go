// Package cpworld answers ray queries against static terrain held in a
// Chipmunk2D space.
package cpworld

import (
	"github.com/jakecoffman/cp"
	"github.com/younwookim/raykin/internal/domain/entity"
)

// World wraps a Chipmunk space containing only static shapes.
// Rays that start inside a shape do not report it; the resolver's skin
// width keeps ray origins outside terrain during normal play.
type World struct {
	space  *cp.Space
	shapes int
}

type shapeData struct {
	layer  entity.Layer
	oneWay bool
}

// New creates an empty static world.
func New() *World {
	return &World{space: cp.NewSpace()}
}

// AddShape adds a static convex shape on the given layer.
func (w *World) AddShape(shape entity.Shape, layer entity.Layer) {
	s := cp.NewPolyShapeRaw(w.space.StaticBody, len(shape.Verts), shape.Verts, 0)
	s.SetFilter(cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: uint(layer),
		Mask:       cp.ALL_CATEGORIES,
	})
	s.UserData = shapeData{layer: layer, oneWay: shape.OneWay}
	w.space.AddShape(s)
	w.shapes++
}

// AddStage adds every collider of a tile stage on LayerSolid.
func (w *World) AddStage(stage *entity.Stage) {
	for _, shape := range stage.Shapes() {
		w.AddShape(shape, entity.LayerSolid)
	}
}

// ShapeCount returns the number of static shapes.
func (w *World) ShapeCount() int {
	return w.shapes
}

// CastRay returns the first shape along dir within maxDist on the masked layers.
func (w *World) CastRay(origin, dir cp.Vector, maxDist float64, mask entity.Layer) (entity.RayHit, bool) {
	if maxDist <= 0 {
		return entity.RayHit{}, false
	}

	end := origin.Add(dir.Mult(maxDist))
	filter := cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: cp.ALL_CATEGORIES,
		Mask:       uint(mask),
	}

	info := w.space.SegmentQueryFirst(origin, end, 0, filter)
	if info.Shape == nil {
		return entity.RayHit{}, false
	}

	hit := entity.RayHit{
		Distance: info.Alpha * maxDist,
		Point:    info.Point,
		Normal:   info.Normal,
		Body:     entity.StaticID,
	}
	if data, ok := info.Shape.UserData.(shapeData); ok {
		hit.OneWay = data.oneWay
	}
	return hit, true
}
