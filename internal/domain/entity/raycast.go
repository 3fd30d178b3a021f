package entity

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// ErrRayCount is returned when a box is too small for its target ray spacing.
// At least two rays per axis are needed to define the spacing between them.
var ErrRayCount = errors.New("ray count below 2")

// RaycastOrigins are the corners of a collider shrunk by the skin width.
type RaycastOrigins struct {
	TopLeft, TopRight       cp.Vector
	BottomLeft, BottomRight cp.Vector
}

// RaySpacing holds ray counts and the distance between neighbouring rays.
// Horizontal rays are stacked along the height, vertical rays along the width.
type RaySpacing struct {
	HorizontalCount   int
	VerticalCount     int
	HorizontalSpacing float64
	VerticalSpacing   float64
}

// ComputeOrigins derives the four ray origins from a box and skin width.
func ComputeOrigins(box Box, skin float64) RaycastOrigins {
	inner := box.Shrink(skin)
	lo, hi := inner.Min(), inner.Max()
	return RaycastOrigins{
		BottomLeft:  cp.Vector{X: lo.X, Y: lo.Y},
		BottomRight: cp.Vector{X: hi.X, Y: lo.Y},
		TopLeft:     cp.Vector{X: lo.X, Y: hi.Y},
		TopRight:    cp.Vector{X: hi.X, Y: hi.Y},
	}
}

// ComputeSpacing derives ray counts and spacing for a box.
// Counts are round(size/target) on the skin-shrunk box; a count below 2
// is a configuration fault and yields ErrRayCount.
func ComputeSpacing(box Box, skin, target float64) (RaySpacing, error) {
	if target <= 0 {
		return RaySpacing{}, fmt.Errorf("target ray spacing %v: %w", target, ErrRayCount)
	}

	size := box.Shrink(skin).Size()
	hCount := int(math.RoundToEven(size.Y / target))
	vCount := int(math.RoundToEven(size.X / target))

	if hCount < 2 {
		return RaySpacing{}, fmt.Errorf("horizontal rays for height %.3f at spacing %.3f: %w", size.Y, target, ErrRayCount)
	}
	if vCount < 2 {
		return RaySpacing{}, fmt.Errorf("vertical rays for width %.3f at spacing %.3f: %w", size.X, target, ErrRayCount)
	}

	return RaySpacing{
		HorizontalCount:   hCount,
		VerticalCount:     vCount,
		HorizontalSpacing: size.Y / float64(hCount-1),
		VerticalSpacing:   size.X / float64(vCount-1),
	}, nil
}

// RayHit is the nearest surface a ray reached.
type RayHit struct {
	Distance float64
	Point    cp.Vector
	Normal   cp.Vector
	Body     EntityID
	OneWay   bool
}

var worldUp = cp.Vector{X: 0, Y: 1}

// SlopeAngle returns the angle in degrees between a surface normal and world up.
func SlopeAngle(normal cp.Vector) float64 {
	l := normal.Length()
	if l == 0 {
		return 0
	}
	c := normal.Dot(worldUp) / l
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c) * 180 / math.Pi
}
