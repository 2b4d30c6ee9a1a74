// Package config loads the canvas settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

var (
	ErrInvalid     = errors.New("config: invalid value")
	ErrUnknownKeys = errors.New("config: unknown keys")
)

type Grid struct {
	Size float64 `toml:"size"`
	Snap bool    `toml:"snap"`
}

type Handles struct {
	Radius        float64 `toml:"radius"`
	TouchFactor   float64 `toml:"touch_factor"`
	RotateOffset  float64 `toml:"rotate_offset"`
	StarHandleMin float64 `toml:"star_handle_min"`
}

type Zoom struct {
	Min  float64 `toml:"min"`
	Max  float64 `toml:"max"`
	Step float64 `toml:"step"`
}

type Log struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type Config struct {
	Grid    Grid    `toml:"grid"`
	Handles Handles `toml:"handles"`
	Zoom    Zoom    `toml:"zoom"`
	Log     Log     `toml:"log"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Grid:    Grid{Size: 4, Snap: false},
		Handles: Handles{Radius: 4, TouchFactor: 2.5, RotateOffset: 8, StarHandleMin: 6},
		Zoom:    Zoom{Min: 0.1, Max: 20, Step: 1.2},
		Log:     Log{File: "", Level: "info"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(string(b))
}

// Parse decodes TOML text over the defaults and validates the result.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Default(), fmt.Errorf("config: decode: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return Default(), fmt.Errorf("%w: %v", ErrUnknownKeys, undec)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Grid.Size <= 0:
		return fmt.Errorf("%w: grid.size must be positive", ErrInvalid)
	case c.Handles.Radius <= 0:
		return fmt.Errorf("%w: handles.radius must be positive", ErrInvalid)
	case c.Handles.TouchFactor < 1:
		return fmt.Errorf("%w: handles.touch_factor must be at least 1", ErrInvalid)
	case c.Handles.RotateOffset < 0, c.Handles.StarHandleMin < 0:
		return fmt.Errorf("%w: handle offsets must not be negative", ErrInvalid)
	case c.Zoom.Min <= 0 || c.Zoom.Max < c.Zoom.Min:
		return fmt.Errorf("%w: zoom range [%g, %g]", ErrInvalid, c.Zoom.Min, c.Zoom.Max)
	case c.Zoom.Step <= 1:
		return fmt.Errorf("%w: zoom.step must exceed 1", ErrInvalid)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}
