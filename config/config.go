// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/agesim/organism"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Settings  organism.Settings `yaml:"settings"`
	Run       RunConfig         `yaml:"run"`
	Screen    ScreenConfig      `yaml:"screen"`
	Render    RenderConfig      `yaml:"render"`
	Chart     ChartConfig       `yaml:"chart"`
	Telemetry TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// RunConfig holds step scheduling parameters.
type RunConfig struct {
	MaxSteps        int  `yaml:"max_steps"`        // Stop after this many steps (0 = unlimited)
	IntervalMS      int  `yaml:"interval_ms"`      // Minimum wall time between steps in graphical mode
	StepsPerUpdate  int  `yaml:"steps_per_update"` // Steps per update call
	Reproducible    bool `yaml:"reproducible"`     // Seed the generator from settings.seed
	CheckInvariants bool `yaml:"check_invariants"` // Verify snapshot invariants after every step
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TargetFPS  int `yaml:"target_fps"`
	CanvasSize int `yaml:"canvas_size"` // Side of the square grid canvas in pixels
}

// RenderConfig holds frame output and colouring parameters.
type RenderConfig struct {
	FrameEvery int      `yaml:"frame_every"` // Write a video frame every N steps (0 = off)
	CellPx     int      `yaml:"cell_px"`     // Pixels per grid cell in written frames
	AgeFloor   float64  `yaml:"age_floor"`   // Ages are scaled by max(age_floor, oldest cell)
	VideoFPS   int      `yaml:"video_fps"`
	Gradient   []string `yaml:"gradient"` // Hex colours from young to old
}

// ChartConfig holds time-series chart dimensions.
type ChartConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsEvery int `yaml:"stats_every"` // Steps between logged/written stats rows
	PerfWindow int `yaml:"perf_window"` // Steps averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Interval     time.Duration // Run.IntervalMS as a duration
	GenomeLength int           // len(Settings.Genome)
	CanvasCellPx float32       // Screen.CanvasSize / Settings.Length
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
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

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks the run settings and the output parameters.
func (c *Config) Validate() error {
	if err := c.Settings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Run.MaxSteps < 0 {
		return fmt.Errorf("%w: run.max_steps must not be negative", ErrInvalid)
	}
	if c.Render.FrameEvery < 0 {
		return fmt.Errorf("%w: render.frame_every must not be negative", ErrInvalid)
	}
	if len(c.Render.Gradient) < 2 {
		return fmt.Errorf("%w: render.gradient needs at least two colours", ErrInvalid)
	}
	return nil
}

// computeDerived calculates values derived from loaded config and fills zero values.
func (c *Config) computeDerived() {
	if c.Run.StepsPerUpdate < 1 {
		c.Run.StepsPerUpdate = 1
	}
	if c.Render.CellPx < 1 {
		c.Render.CellPx = 1
	}
	if c.Render.VideoFPS < 1 {
		c.Render.VideoFPS = 30
	}
	if c.Telemetry.StatsEvery < 1 {
		c.Telemetry.StatsEvery = 1
	}

	c.Derived.Interval = time.Duration(c.Run.IntervalMS) * time.Millisecond
	c.Derived.GenomeLength = len(c.Settings.Genome)
	c.Derived.CanvasCellPx = float32(c.Screen.CanvasSize) / float32(c.Settings.Length)
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
