// Package config provides configuration loading and access for the
// playground simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Population PopulationConfig `yaml:"population"`
	Forces     ForcesConfig     `yaml:"forces"`
	Scene      SceneConfig      `yaml:"scene"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the windowed viewer.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds the simulation domain dimensions in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig holds the engine stepping parameters.
type PhysicsConfig struct {
	GridCellSize float64 `yaml:"grid_cell_size"` // spatial grid cell edge length
	MaxForce     float64 `yaml:"max_force"`      // per-tick force magnitude clamp (0 = unclamped)
}

// PopulationConfig holds admission-control parameters.
type PopulationConfig struct {
	MaxParticles int     `yaml:"max_particles"` // live population cap (0 = unlimited)
	MaxDensity   float64 `yaml:"max_density"`   // cell occupancy / cellSize^2 cap (0 = unlimited)
}

// ForcesConfig holds coefficients for the stock scene behaviors.
type ForcesConfig struct {
	Gravity           float64 `yaml:"gravity"`            // downward force per tick
	Drag              float64 `yaml:"drag"`               // velocity damping factor per tick
	Restitution       float64 `yaml:"restitution"`        // wall bounce factor
	RepulsionRadius   float64 `yaml:"repulsion_radius"`   // world-unit falloff radius
	RepulsionStrength float64 `yaml:"repulsion_strength"` // peak repulsion force
	SeekStrength      float64 `yaml:"seek_strength"`      // one-way attraction force
}

// SceneConfig holds parameters for the demo content builders.
type SceneConfig struct {
	Blobs          int     `yaml:"blobs"`          // spring-ring soft bodies
	BlobParticles  int     `yaml:"blob_particles"` // particles per blob ring
	BlobRadius     float64 `yaml:"blob_radius"`
	BlobStiffness  float64 `yaml:"blob_stiffness"`
	ChainLinks     int     `yaml:"chain_links"` // links in the pinned chain (0 = no chain)
	ChainStiffness float64 `yaml:"chain_stiffness"`
	Dust           int     `yaml:"dust"` // free drifting particles
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // ticks per stats window
	PerfWindow  int `yaml:"perf_window"`  // ticks averaged by the perf collector
}

// DerivedConfig holds values computed from the loaded configuration.
type DerivedConfig struct {
	ScreenW32 float32
	ScreenH32 float32
	WorldW32  float32
	WorldH32  float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.World.Width == 0 {
		c.World.Width = float64(c.Screen.Width)
	}
	if c.World.Height == 0 {
		c.World.Height = float64(c.Screen.Height)
	}
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.WorldW32 = float32(c.World.Width)
	c.Derived.WorldH32 = float32(c.World.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
