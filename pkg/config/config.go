// Package config loads softcam settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/softcam/pkg/input"
	"github.com/taigrr/softcam/pkg/math3d"
	"github.com/taigrr/softcam/pkg/render"
)

// Backends selectable with the backend setting.
const (
	BackendTerminal = "terminal"
	BackendWindow   = "window"
	BackendSnapshot = "snapshot"
)

const maxConfigSize = 1024 * 1024 // 1MB

// Config holds every user-tunable setting.
type Config struct {
	Backend     string  `yaml:"backend"`
	Move        string  `yaml:"move"` // fly or planar
	FocalLength float64 `yaml:"focal_length"`
	MoveStep    float64 `yaml:"move_step"`
	Sensitivity float64 `yaml:"sensitivity"`
	Smoothing   bool    `yaml:"smoothing"`
	FPS         int     `yaml:"fps"`
	Scene       string  `yaml:"scene"` // glTF file; empty for the built-in cube
	Grid        *bool   `yaml:"grid"`  // pointer to distinguish unset vs false
	Cull        bool    `yaml:"cull"`  // skip blocks outside the view

	// Keys rebinds actions: action name -> key names.
	Keys map[string][]string `yaml:"keys"`

	Camera CameraConfig `yaml:"camera"`
}

// CameraConfig is the initial camera placement.
type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	Yaw      float64    `yaml:"yaw"`
	Pitch    float64    `yaml:"pitch"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Backend:     BackendTerminal,
		Move:        render.MoveFly.String(),
		FocalLength: render.DefaultFocalLength,
		MoveStep:    input.DefaultMoveStep,
		Sensitivity: input.DefaultSensitivity,
		FPS:         input.DefaultFPS,
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to stat config: %w", err)
	}
	if info.Size() > maxConfigSize {
		return cfg, fmt.Errorf("config %s too large (%d bytes)", path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := cfg.Decode(data); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("loaded config", "path", path)
	return cfg, nil
}

// Decode parses YAML over the current values and validates the result.
// Unknown fields are rejected.
func (c *Config) Decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return c.Validate()
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendTerminal, BackendWindow, BackendSnapshot:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if _, err := render.ParseMoveMode(c.Move); err != nil {
		return err
	}
	if c.FocalLength <= 0 {
		return fmt.Errorf("focal_length must be positive, got %v", c.FocalLength)
	}
	if c.MoveStep <= 0 {
		return fmt.Errorf("move_step must be positive, got %v", c.MoveStep)
	}
	if c.Sensitivity <= 0 {
		return fmt.Errorf("sensitivity must be positive, got %v", c.Sensitivity)
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("fps must be within 1..240, got %d", c.FPS)
	}
	if c.Camera.Pitch < -render.MaxPitch || c.Camera.Pitch > render.MaxPitch {
		return fmt.Errorf("camera pitch %v outside ±%v", c.Camera.Pitch, render.MaxPitch)
	}
	if err := input.DefaultKeymap().Apply(c.Keys); err != nil {
		return fmt.Errorf("keys: %w", err)
	}
	return nil
}

// NewCamera builds the initial camera.
func (c *Config) NewCamera() *render.Camera {
	cam := render.NewCamera()
	cam.FocalLength = c.FocalLength
	cam.Mode, _ = render.ParseMoveMode(c.Move)
	p := c.Camera.Position
	cam.Position = math3d.V3(p[0], p[1], p[2])
	cam.Yaw = c.Camera.Yaw
	cam.Pitch = c.Camera.Pitch
	return cam
}

// ControllerOptions builds the input controller settings.
func (c *Config) ControllerOptions(logger *slog.Logger) input.Options {
	km := input.DefaultKeymap()
	// Validated already.
	_ = km.Apply(c.Keys)
	return input.Options{
		MoveStep:    c.MoveStep,
		Sensitivity: c.Sensitivity,
		Smoothing:   c.Smoothing,
		FPS:         c.FPS,
		Keymap:      km,
		Logger:      logger,
	}
}

// DrawGrid reports whether the ground grid is enabled (default true).
func (c *Config) DrawGrid() bool {
	return c.Grid == nil || *c.Grid
}
