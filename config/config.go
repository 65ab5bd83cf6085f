// Package config provides configuration loading and access for the viewer.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/spin/rotate"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all viewer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Rotation  RotationConfig  `yaml:"rotation"`
	Model     ModelConfig     `yaml:"model"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Stream    StreamConfig    `yaml:"stream"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// RotationConfig holds the drag rotation tunables.
type RotationConfig struct {
	Sensitivity   float64 `yaml:"sensitivity"`    // radians per unit of drag distance
	MoveThreshold float64 `yaml:"move_threshold"` // per-axis jitter gate
	InvertY       bool    `yaml:"invert_y"`       // treat screen y as already pointing up
}

// ModelConfig describes the model being rotated.
type ModelConfig struct {
	Shape string   `yaml:"shape"` // cube, sphere, torus, knot or file
	Path  string   `yaml:"path"`  // model file when shape is "file"
	Size  float64  `yaml:"size"`
	Color [4]uint8 `yaml:"color"`
}

// CameraConfig holds the view camera parameters.
type CameraConfig struct {
	Distance    float64 `yaml:"distance"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	Fovy        float64 `yaml:"fovy"`
	ZoomStep    float64 `yaml:"zoom_step"` // fractional distance change per wheel notch
}

// TelemetryConfig holds trace output parameters.
type TelemetryConfig struct {
	Trace bool `yaml:"trace"` // write every move to trace.csv
}

// StreamConfig holds the orientation stream server settings.
type StreamConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	RotateOptions  rotate.Options // controller options from Rotation
	OutOfRangeWarn bool           // sensitivity outside the recommended range
}

// Shapes accepted by ModelConfig.Shape.
var Shapes = []string{"cube", "sphere", "torus", "knot", "file"}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

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
	cfg, err := Defaults()
	if err != nil {
		return nil, err
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
	cfg.warnOutOfRange()

	return cfg, nil
}

// SetSensitivity overrides the rotation sensitivity, re-validating the
// config and recomputing derived values. The config is unchanged on error.
func (c *Config) SetSensitivity(s float64) error {
	prev := c.Rotation.Sensitivity
	c.Rotation.Sensitivity = s
	if err := c.Validate(); err != nil {
		c.Rotation.Sensitivity = prev
		return err
	}
	c.computeDerived()
	c.warnOutOfRange()
	return nil
}

func (c *Config) warnOutOfRange() {
	if !c.Derived.OutOfRangeWarn {
		return
	}
	slog.Warn("rotation sensitivity outside recommended range",
		"sensitivity", c.Rotation.Sensitivity,
		"min", rotate.MinSensitivity,
		"max", rotate.MaxSensitivity,
	)
}

// Defaults returns the embedded default configuration.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate checks values that would break the viewer.
func (c *Config) Validate() error {
	rot := rotate.Options{Sensitivity: c.Rotation.Sensitivity, MoveThreshold: c.Rotation.MoveThreshold}
	if err := rot.Validate(); err != nil {
		return fmt.Errorf("%w: rotation: %w", ErrInvalid, err)
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MinDistance > c.Camera.MaxDistance {
		return fmt.Errorf("%w: camera distance range [%g, %g]", ErrInvalid, c.Camera.MinDistance, c.Camera.MaxDistance)
	}
	if c.Camera.Fovy <= 0 || c.Camera.Fovy >= 180 {
		return fmt.Errorf("%w: camera fovy %g", ErrInvalid, c.Camera.Fovy)
	}
	if c.Model.Size <= 0 || math.IsNaN(c.Model.Size) {
		return fmt.Errorf("%w: model size %g", ErrInvalid, c.Model.Size)
	}
	if !validShape(c.Model.Shape) {
		return fmt.Errorf("%w: model shape %q", ErrInvalid, c.Model.Shape)
	}
	if c.Model.Shape == "file" && c.Model.Path == "" {
		return fmt.Errorf("%w: model shape \"file\" needs a path", ErrInvalid)
	}
	if c.Stream.Enabled && c.Stream.Addr == "" {
		return fmt.Errorf("%w: stream enabled without addr", ErrInvalid)
	}
	return nil
}

func validShape(s string) bool {
	for _, shape := range Shapes {
		if s == shape {
			return true
		}
	}
	return false
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.RotateOptions = rotate.Options{
		Sensitivity:   c.Rotation.Sensitivity,
		MoveThreshold: c.Rotation.MoveThreshold,
	}
	s := c.Rotation.Sensitivity
	c.Derived.OutOfRangeWarn = s < rotate.MinSensitivity || s > rotate.MaxSensitivity

	// Camera distance defaults to the middle of its range
	if c.Camera.Distance == 0 {
		c.Camera.Distance = (c.Camera.MinDistance + c.Camera.MaxDistance) / 2
	}
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
