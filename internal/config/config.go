// Package config loads pixt settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/wbrown/pixt"
	"github.com/wbrown/pixt/imageutil"
)

const appName = "pixt"

// Config holds the conversion settings read from TOML files. Command-line
// flags are applied on top by the caller.
type Config struct {
	Style       string `koanf:"style"`        // preset name or "custom"
	Colored     bool   `koanf:"colored"`      // colored output
	Width       int    `koanf:"width"`        // output width in cells, 0 = derive
	Height      int    `koanf:"height"`       // output height in pixels, 0 = derive
	PaletteFile string `koanf:"palette_file"` // line-per-row palette for custom style
	Font        string `koanf:"font"`         // TrueType font for PNG output
	Filter      string `koanf:"filter"`       // resize filter
	Compact     bool   `koanf:"compact"`      // skip repeated terminal color escapes
	LogLevel    string `koanf:"log_level"`    // debug, info, warn or error

	HTML   HTMLConfig   `koanf:"html"`
	PNG    PNGConfig    `koanf:"png"`
	Adjust AdjustConfig `koanf:"adjust"`
}

// HTMLConfig holds the page colors of HTML output.
type HTMLConfig struct {
	Foreground string `koanf:"foreground"`
	Background string `koanf:"background"`
}

// PNGConfig holds PNG output settings.
type PNGConfig struct {
	Scale int `koanf:"scale"` // pixel multiplier per cell, default 1
}

// AdjustConfig holds tonal corrections applied before rendering.
type AdjustConfig struct {
	Invert     bool    `koanf:"invert"`
	Grayscale  bool    `koanf:"grayscale"`
	Brightness float32 `koanf:"brightness"` // -100 to 100
	Contrast   float32 `koanf:"contrast"`   // -100 to 100
	Gamma      float32 `koanf:"gamma"`      // 0 or 1 = unchanged
}

// Adjustments returns the corrections in the form imageutil applies.
func (a AdjustConfig) Adjustments() imageutil.Adjustments {
	return imageutil.Adjustments(a)
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		Style:    "pixel",
		Filter:   "catmullrom",
		LogLevel: "info",
		HTML: HTMLConfig{
			Foreground: "#fff",
			Background: "#191919",
		},
		PNG: PNGConfig{Scale: 1},
	}
}

// Load reads the user config file and then ./pixt.toml, later files
// overriding earlier ones. Missing files are skipped.
func Load() (*Config, error) {
	return LoadFiles(getConfigPaths()...)
}

// LoadFiles reads the given TOML files over the defaults, in order.
// Files that do not exist are skipped.
func LoadFiles(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/pixt/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./pixt.toml (pwd, highest priority)
		appName + ".toml",
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := pixt.ParseStyle(c.Style); err != nil {
		return err
	}
	if c.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", c.Width)
	}
	if c.Height < 0 {
		return fmt.Errorf("height must not be negative, got %d", c.Height)
	}
	if c.PNG.Scale < 1 {
		return fmt.Errorf("png.scale must be at least 1, got %d", c.PNG.Scale)
	}
	if b := c.Adjust.Brightness; b < -100 || b > 100 {
		return fmt.Errorf("adjust.brightness must be within [-100, 100], got %g", b)
	}
	if v := c.Adjust.Contrast; v < -100 || v > 100 {
		return fmt.Errorf("adjust.contrast must be within [-100, 100], got %g", v)
	}
	if c.Adjust.Gamma < 0 {
		return fmt.Errorf("adjust.gamma must not be negative, got %g", c.Adjust.Gamma)
	}
	if _, err := imageutil.ParseInterpolation(c.Filter); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := colorful.Hex(c.HTML.Foreground); err != nil {
		return fmt.Errorf("html.foreground: invalid color %q", c.HTML.Foreground)
	}
	if _, err := colorful.Hex(c.HTML.Background); err != nil {
		return fmt.Errorf("html.background: invalid color %q", c.HTML.Background)
	}
	return nil
}

// StyleValue returns the parsed style.
func (c *Config) StyleValue() (pixt.Style, error) {
	return pixt.ParseStyle(c.Style)
}

// Interpolation returns the parsed resize filter.
func (c *Config) Interpolation() (imageutil.Interpolation, error) {
	return imageutil.ParseInterpolation(c.Filter)
}

// Level returns the parsed log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
