// Package shapeworld answers ray queries against convex polygons.
//
// Static geometry is fixed at build time. Dynamic bodies (actors and
// platforms) are read through their live bounds on every query, so their
// owners never have to sync positions back into the world.
package shapeworld

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/younwookim/raykin/internal/domain/entity"
)

// BoundsSource exposes a body's current collider.
type BoundsSource interface {
	Bounds() entity.Box
}

type polygon struct {
	verts   []cp.Vector
	normals []cp.Vector // outward, unit length; normals[i] belongs to edge i -> i+1
	layer   entity.Layer
	oneWay  bool
}

type dynamicBody struct {
	id     entity.EntityID
	layer  entity.Layer
	source BoundsSource
}

// World holds static polygons and dynamic boxes.
type World struct {
	statics  []polygon
	dynamics []dynamicBody
}

// New creates an empty world.
func New() *World {
	return &World{}
}

// AddShape adds a static convex shape on the given layer.
// Clockwise input is reversed; fewer than three vertices is an error.
func (w *World) AddShape(shape entity.Shape, layer entity.Layer) error {
	poly, err := newPolygon(shape.Verts, layer, shape.OneWay)
	if err != nil {
		return err
	}
	w.statics = append(w.statics, poly)
	return nil
}

// AddStage adds every collider of a tile stage on LayerSolid.
func (w *World) AddStage(stage *entity.Stage) error {
	for _, shape := range stage.Shapes() {
		if err := w.AddShape(shape, entity.LayerSolid); err != nil {
			return err
		}
	}
	return nil
}

// AddBody registers a dynamic box whose bounds are read at query time.
func (w *World) AddBody(id entity.EntityID, layer entity.Layer, source BoundsSource) {
	w.dynamics = append(w.dynamics, dynamicBody{id: id, layer: layer, source: source})
}

// StaticCount returns the number of static polygons.
func (w *World) StaticCount() int {
	return len(w.statics)
}

// CastRay returns the nearest hit along dir within maxDist on the masked layers.
// A ray starting inside a shape hits it at distance zero.
func (w *World) CastRay(origin, dir cp.Vector, maxDist float64, mask entity.Layer) (entity.RayHit, bool) {
	best := entity.RayHit{Distance: math.Inf(1)}
	found := false

	for i := range w.statics {
		p := &w.statics[i]
		if !mask.Has(p.layer) {
			continue
		}
		if t, n, ok := p.raycast(origin, dir, maxDist); ok && t < best.Distance {
			best = entity.RayHit{Distance: t, Normal: n, Body: entity.StaticID, OneWay: p.oneWay}
			found = true
		}
	}

	for _, b := range w.dynamics {
		if !mask.Has(b.layer) {
			continue
		}
		box := b.source.Bounds()
		p := polygon{verts: box.Corners(), normals: boxNormals, layer: b.layer}
		if t, n, ok := p.raycast(origin, dir, maxDist); ok && t < best.Distance {
			best = entity.RayHit{Distance: t, Normal: n, Body: b.id}
			found = true
		}
	}

	if !found {
		return entity.RayHit{}, false
	}
	best.Point = origin.Add(dir.Mult(best.Distance))
	return best, true
}

// boxNormals matches the edge order of entity.Box.Corners.
var boxNormals = []cp.Vector{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

func newPolygon(verts []cp.Vector, layer entity.Layer, oneWay bool) (polygon, error) {
	if len(verts) < 3 {
		return polygon{}, fmt.Errorf("polygon with %d vertices", len(verts))
	}

	vs := make([]cp.Vector, len(verts))
	copy(vs, verts)
	if signedArea(vs) < 0 {
		for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
			vs[i], vs[j] = vs[j], vs[i]
		}
	}

	normals := make([]cp.Vector, len(vs))
	for i := range vs {
		e := vs[(i+1)%len(vs)].Sub(vs[i])
		normals[i] = cp.Vector{X: e.Y, Y: -e.X}.Normalize()
	}

	return polygon{verts: vs, normals: normals, layer: layer, oneWay: oneWay}, nil
}

func signedArea(vs []cp.Vector) float64 {
	a := 0.0
	for i := range vs {
		a += vs[i].Cross(vs[(i+1)%len(vs)])
	}
	return a / 2
}

// contains reports whether p lies strictly inside the polygon.
func (p *polygon) contains(pt cp.Vector) bool {
	for i, v := range p.verts {
		if pt.Sub(v).Dot(p.normals[i]) >= 0 {
			return false
		}
	}
	return true
}

// raycast returns the entry distance and surface normal of the ray.
// Only edges facing the ray can be entered.
func (p *polygon) raycast(origin, dir cp.Vector, maxDist float64) (float64, cp.Vector, bool) {
	if p.contains(origin) {
		return 0, dir.Neg(), true
	}

	bestT := math.Inf(1)
	var bestN cp.Vector
	for i, a := range p.verts {
		n := p.normals[i]
		if dir.Dot(n) >= 0 {
			continue
		}
		e := p.verts[(i+1)%len(p.verts)].Sub(a)
		denom := dir.Cross(e)
		if denom == 0 {
			continue
		}
		ao := a.Sub(origin)
		t := ao.Cross(e) / denom
		u := ao.Cross(dir) / denom
		if t < 0 || t > maxDist || u < 0 || u > 1 {
			continue
		}
		if t < bestT {
			bestT = t
			bestN = n
		}
	}

	if math.IsInf(bestT, 1) {
		return 0, cp.Vector{}, false
	}
	return bestT, bestN, true
}
