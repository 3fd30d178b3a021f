package entity

import "github.com/jakecoffman/cp"

// Shape is a convex static collider with counter-clockwise vertices.
type Shape struct {
	Verts  []cp.Vector
	OneWay bool
}

// oneWayThickness is the ledge depth as a fraction of the tile size.
const oneWayThickness = 0.25

// Shapes converts the tile grid into static colliders.
// Horizontal runs of solid tiles merge into a single box so rays sliding
// along a floor never meet internal seams.
func (s *Stage) Shapes() []Shape {
	var shapes []Shape
	ts := s.TileSize

	for ty := 0; ty < s.Height; ty++ {
		for tx := 0; tx < s.Width; tx++ {
			tile := s.GetTile(tx, ty)
			if !tile.Solid() {
				continue
			}
			o := s.TileOrigin(tx, ty)

			switch tile.Type {
			case TileSolid:
				run := 1
				for tx+run < s.Width && s.GetTile(tx+run, ty).Type == TileSolid {
					run++
				}
				shapes = append(shapes, Shape{Verts: rect(o, cp.Vector{X: o.X + float64(run)*ts, Y: o.Y + ts})})
				tx += run - 1
			case TileSlopeUp:
				shapes = append(shapes, Shape{Verts: []cp.Vector{
					{X: o.X, Y: o.Y},
					{X: o.X + ts, Y: o.Y},
					{X: o.X + ts, Y: o.Y + ts},
				}})
			case TileSlopeDown:
				shapes = append(shapes, Shape{Verts: []cp.Vector{
					{X: o.X, Y: o.Y},
					{X: o.X + ts, Y: o.Y},
					{X: o.X, Y: o.Y + ts},
				}})
			case TileOneWay:
				top := o.Y + ts
				shapes = append(shapes, Shape{
					Verts:  rect(cp.Vector{X: o.X, Y: top - ts*oneWayThickness}, cp.Vector{X: o.X + ts, Y: top}),
					OneWay: true,
				})
			}
		}
	}
	return shapes
}

// BoxShape returns the collider for an axis-aligned box.
func BoxShape(b Box) Shape {
	return Shape{Verts: rect(b.Min(), b.Max())}
}

func rect(lo, hi cp.Vector) []cp.Vector {
	return []cp.Vector{
		{X: lo.X, Y: lo.Y},
		{X: hi.X, Y: lo.Y},
		{X: hi.X, Y: hi.Y},
		{X: lo.X, Y: hi.Y},
	}
}
