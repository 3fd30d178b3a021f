package config

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// PhysicsFile is the tuning file name inside the config directory.
const PhysicsFile = "physics.yaml"

// GameConfig holds all loaded configurations.
type GameConfig struct {
	Physics *PhysicsConfig
	Stage   *StageConfig
}

// Loader loads configuration from YAML files using fs.FS interface.
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path.
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS.
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader reads from.
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadPhysics loads physics.yaml on top of Default and validates it.
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	data, err := fs.ReadFile(l.fsys, PhysicsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", PhysicsFile, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", PhysicsFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadStage loads a stage YAML file.
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	path := "stages/" + name + ".yaml"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadAll loads the tuning and the named stage.
func (l *Loader) LoadAll(stage string) (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	stageCfg, err := l.LoadStage(stage)
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics: physics,
		Stage:   stageCfg,
	}, nil
}
