package config

import "fmt"

// StageConfig is the root config for stage YAML files.
type StageConfig struct {
	ID          string                       `yaml:"id"`
	Name        string                       `yaml:"name"`
	TileSize    float64                      `yaml:"tileSize"`
	PlayerSpawn Vec                          `yaml:"playerSpawn"` // tile coordinates, row 0 at the top
	Player      ActorConfig                  `yaml:"player"`
	Layers      LayersConfig                 `yaml:"layers"`
	TileMapping map[string]TileMappingConfig `yaml:"tileMapping"`
	Platforms   []PlatformConfig             `yaml:"platforms"`
}

type ActorConfig struct {
	Size Vec `yaml:"size"`
}

type LayersConfig struct {
	Collision []string `yaml:"collision"`
}

// TileMappingConfig maps a layer character to a tile type:
// empty, solid, slopeUp, slopeDown or oneWay.
type TileMappingConfig struct {
	Type string `yaml:"type"`
}

// PlatformConfig describes a moving platform.
type PlatformConfig struct {
	Position   Vec     `yaml:"position"` // world units, center
	Size       Vec     `yaml:"size"`
	Waypoints  []Vec   `yaml:"waypoints"` // relative to Position
	Speed      float64 `yaml:"speed"`
	EaseAmount float64 `yaml:"easeAmount"`
	WaitTime   float64 `yaml:"waitTime"`
	Cyclic     bool    `yaml:"cyclic"`
}

// Validate checks the stage for shape errors.
func (s *StageConfig) Validate() error {
	if s.TileSize <= 0 {
		return fmt.Errorf("stage %s tileSize %v: %w", s.ID, s.TileSize, ErrInvalidConfig)
	}
	if len(s.Layers.Collision) == 0 {
		return fmt.Errorf("stage %s has no collision rows: %w", s.ID, ErrInvalidConfig)
	}
	if s.Player.Size.X <= 0 || s.Player.Size.Y <= 0 {
		return fmt.Errorf("stage %s player size %+v: %w", s.ID, s.Player.Size, ErrInvalidConfig)
	}
	for ch, m := range s.TileMapping {
		switch m.Type {
		case "empty", "solid", "slopeUp", "slopeDown", "oneWay":
		default:
			return fmt.Errorf("stage %s tile %q type %q: %w", s.ID, ch, m.Type, ErrInvalidConfig)
		}
	}
	for i, p := range s.Platforms {
		if len(p.Waypoints) < 2 {
			return fmt.Errorf("stage %s platform %d needs 2 waypoints: %w", s.ID, i, ErrInvalidConfig)
		}
	}
	return nil
}
