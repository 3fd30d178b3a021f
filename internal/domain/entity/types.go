package entity

import "github.com/jakecoffman/cp"

// EntityID is a unique identifier for an entity.
// Zero is reserved for static world geometry.
type EntityID uint32

// StaticID marks ray hits against the static world.
const StaticID EntityID = 0

// Layer is a collision layer bitmask.
type Layer uint32

const (
	LayerSolid Layer = 1 << iota
	LayerPlatform
	LayerActor
)

// Has reports whether any bit of other is set in l.
func (l Layer) Has(other Layer) bool {
	return l&other != 0
}

// TileType represents the type of a tile.
type TileType int

const (
	TileEmpty TileType = iota
	TileSolid
	TileSlopeUp   // rises to the right
	TileSlopeDown // rises to the left
	TileOneWay    // thin ledge at the top of the cell, passable from below
)

// String returns the tile type name used in stage files.
func (t TileType) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileSolid:
		return "solid"
	case TileSlopeUp:
		return "slopeUp"
	case TileSlopeDown:
		return "slopeDown"
	case TileOneWay:
		return "oneWay"
	default:
		return "unknown"
	}
}

// Tile represents a single tile in the stage.
type Tile struct {
	Type TileType
}

// Solid reports whether the tile produces collision geometry.
func (t Tile) Solid() bool {
	return t.Type != TileEmpty
}

// Stage holds the static tile grid.
// Tiles[0] is the top row; world y grows upward.
type Stage struct {
	Width    int
	Height   int
	TileSize float64
	Tiles    [][]Tile
	Spawn    cp.Vector
}

// GetTile returns the tile at the given column and row.
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TileEmpty}
	}
	return s.Tiles[ty][tx]
}

// TileOrigin returns the world-space bottom-left corner of a tile.
func (s *Stage) TileOrigin(tx, ty int) cp.Vector {
	return cp.Vector{
		X: float64(tx) * s.TileSize,
		Y: float64(s.Height-1-ty) * s.TileSize,
	}
}

// WorldSize returns the stage extent in world units.
func (s *Stage) WorldSize() cp.Vector {
	return cp.Vector{X: float64(s.Width) * s.TileSize, Y: float64(s.Height) * s.TileSize}
}
