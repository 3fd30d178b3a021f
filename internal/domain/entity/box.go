package entity

import "github.com/jakecoffman/cp"

// Box is an axis-aligned box collider.
type Box struct {
	Center cp.Vector
	Half   cp.Vector // half extents
}

// NewBox creates a box from its center and full size.
func NewBox(center, size cp.Vector) Box {
	return Box{Center: center, Half: size.Mult(0.5)}
}

// Min returns the bottom-left corner.
func (b Box) Min() cp.Vector {
	return b.Center.Sub(b.Half)
}

// Max returns the top-right corner.
func (b Box) Max() cp.Vector {
	return b.Center.Add(b.Half)
}

// Size returns the full width and height.
func (b Box) Size() cp.Vector {
	return b.Half.Mult(2)
}

// Translate returns the box moved by d.
func (b Box) Translate(d cp.Vector) Box {
	return Box{Center: b.Center.Add(d), Half: b.Half}
}

// Shrink returns the box shrunk by amount on every side.
func (b Box) Shrink(amount float64) Box {
	return Box{
		Center: b.Center,
		Half:   cp.Vector{X: b.Half.X - amount, Y: b.Half.Y - amount},
	}
}

// Corners returns the four corners in counter-clockwise order
// starting at the bottom-left.
func (b Box) Corners() []cp.Vector {
	return rect(b.Min(), b.Max())
}
