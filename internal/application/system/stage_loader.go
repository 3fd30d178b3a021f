package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/younwookim/raykin/internal/domain/entity"
	"github.com/younwookim/raykin/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage entity.
// Rows shorter than the widest row are padded with empty tiles, and
// characters missing from the tile mapping are empty.
func LoadStage(cfg *config.StageConfig) (*entity.Stage, error) {
	height := len(cfg.Layers.Collision)
	width := 0
	for _, row := range cfg.Layers.Collision {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}

	tiles := make([][]entity.Tile, height)
	for y, row := range cfg.Layers.Collision {
		tiles[y] = make([]entity.Tile, width)
		for x, char := range []rune(row) {
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok {
				continue
			}
			tileType, err := parseTileType(mapping.Type)
			if err != nil {
				return nil, fmt.Errorf("stage %s row %d col %d: %w", cfg.ID, y, x, err)
			}
			tiles[y][x] = entity.Tile{Type: tileType}
		}
	}

	stage := &entity.Stage{
		Width:    width,
		Height:   height,
		TileSize: cfg.TileSize,
		Tiles:    tiles,
	}

	// spawn is the bottom center of the spawn tile
	sx, sy := int(cfg.PlayerSpawn.X), int(cfg.PlayerSpawn.Y)
	o := stage.TileOrigin(sx, sy)
	stage.Spawn = cp.Vector{X: o.X + cfg.TileSize/2, Y: o.Y}

	return stage, nil
}

func parseTileType(name string) (entity.TileType, error) {
	switch name {
	case "solid":
		return entity.TileSolid, nil
	case "slopeUp":
		return entity.TileSlopeUp, nil
	case "slopeDown":
		return entity.TileSlopeDown, nil
	case "oneWay":
		return entity.TileOneWay, nil
	case "empty", "":
		return entity.TileEmpty, nil
	default:
		return entity.TileEmpty, fmt.Errorf("tile type %q: %w", name, config.ErrInvalidConfig)
	}
}
