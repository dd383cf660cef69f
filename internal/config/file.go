package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Terrain kinds understood by the world package.
const (
	KindSurfaceNets   = "surface_nets"
	KindMarchingCubes = "marching_cubes"
	KindBlocks        = "blocks"
)

var terrainKinds = []string{KindSurfaceNets, KindMarchingCubes, KindBlocks}

// Config is the root of the YAML configuration file.
type Config struct {
	Terrain TerrainConfig `yaml:"terrain"`
	Noise   NoiseConfig   `yaml:"noise"`
	Edit    EditConfig    `yaml:"edit"`
	Window  WindowConfig  `yaml:"window"`
}

type EditConfig struct {
	Step       float32 `yaml:"step"`
	Reach      float32 `yaml:"reach"`
	PlaceBlock uint16  `yaml:"place_block"`
}

type WindowConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Title    string  `yaml:"title"`
	FOV      float32 `yaml:"fov"`
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	VSync    bool    `yaml:"vsync"`
	FPSLimit int     `yaml:"fps_limit"` // 0 means uncapped
}

// Default returns the built-in configuration used when no file is given.
func Default() Config {
	return Config{
		Terrain: DefaultTerrain(),
		Noise:   DefaultNoise(),
		Edit: EditConfig{
			Step:       0.1,
			Reach:      64,
			PlaceBlock: 2,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "voxel-terrain",
			FOV:    45,
			Near:   0.1,
			Far:    1000,
			VSync:  true,
		},
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes on top of Default and validates the result.
// Keys missing from data keep their default values.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func (c *Config) Validate() error {
	t := &c.Terrain
	if !slices.Contains(terrainKinds, t.Kind) {
		return invalid("terrain.kind must be one of %v, got %q", terrainKinds, t.Kind)
	}
	if t.ChunkSize <= 0 || t.ChunkSize&(t.ChunkSize-1) != 0 {
		return invalid("terrain.chunk_size must be a positive power of two, got %d", t.ChunkSize)
	}
	if t.LOD.MinResolution < 2 || t.LOD.MinResolution > t.ChunkSize {
		return invalid("terrain.lod.min_resolution must be in [2, chunk_size], got %d", t.LOD.MinResolution)
	}
	if t.LOD.RingsPerLevel <= 0 {
		t.LOD.RingsPerLevel = 1
	}
	if t.StreamRadius < 0 {
		return invalid("terrain.stream_radius cannot be negative")
	}
	if t.EvictRadius < t.StreamRadius {
		return invalid("terrain.evict_radius (%d) must be >= stream_radius (%d)", t.EvictRadius, t.StreamRadius)
	}
	if t.Workers <= 0 {
		return invalid("terrain.workers must be positive")
	}

	n := &c.Noise
	if n.Octaves <= 0 {
		return invalid("noise.octaves must be positive")
	}
	if n.Persistence <= 0 || n.Persistence >= 1 {
		return invalid("noise.persistence must be in (0, 1), got %v", n.Persistence)
	}
	if n.BaseScale <= 0 || n.HillsScale <= 0 || n.DetailScale <= 0 || n.CaveScale <= 0 {
		return invalid("noise scales must be positive")
	}
	if n.CaveStrength < 0 {
		return invalid("noise.cave_strength cannot be negative, got %v", n.CaveStrength)
	}

	if c.Edit.Step <= 0 {
		return invalid("edit.step must be positive")
	}
	if c.Edit.Reach < c.Edit.Step {
		return invalid("edit.reach must be at least one step")
	}
	if c.Edit.PlaceBlock == 0 {
		return invalid("edit.place_block cannot be air (0)")
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window dimensions must be positive")
	}
	if c.Window.Near <= 0 || c.Window.Far <= c.Window.Near {
		return invalid("window.near/far must satisfy 0 < near < far")
	}
	if c.Window.FPSLimit < 0 {
		return invalid("window.fps_limit cannot be negative")
	}
	if c.Window.Title == "" {
		c.Window.Title = "voxel-terrain"
	}
	return nil
}
