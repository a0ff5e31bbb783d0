// Package config loads hexfolio settings from a YAML preset, an optional
// .env file and HEXFOLIO_* environment variables, in that order of
// precedence from lowest to highest.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/hexfolio/hexgrid"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "HEXFOLIO_"

// Window configures the desktop window opened by the run command.
type Window struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
	ShowFPS   bool   `yaml:"showFPS"`
	Debug     bool   `yaml:"debug"`
}

// Server configures the poster HTTP server.
type Server struct {
	Addr      string `yaml:"addr"`
	MaxWidth  int    `yaml:"maxWidth"`
	MaxHeight int    `yaml:"maxHeight"`
	// MaxCells bounds the grid one poster request may build.
	MaxCells int `yaml:"maxCells"`
}

// Poster holds the defaults for a rendered poster frame.
type Poster struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Time    float64 `yaml:"time"`
	Caption string  `yaml:"caption"`
}

// Config is the full settings tree.
type Config struct {
	Grid   hexgrid.Config `yaml:"grid"`
	Window Window         `yaml:"window"`
	Server Server         `yaml:"server"`
	Poster Poster         `yaml:"poster"`
}

// Default returns the built-in settings. Grid tuning is left zero so that
// WithDefaults can pick the values that match the final mode.
func Default() Config {
	return Config{
		Grid: hexgrid.Config{
			PixelsPerHex: 40,
			Hue:          240,
			HueJitter:    10,
			Saturation:   50,
			Lightness:    30,
			Mode:         hexgrid.ModeFill,
			Seed:         1,
		},
		Window: Window{Title: "hexfolio", Width: 1280, Height: 800, Resizable: true},
		Server: Server{Addr: ":8080", MaxWidth: 3840, MaxHeight: 2160, MaxCells: 250_000},
		Poster: Poster{Width: 1920, Height: 1080, Time: 4},
	}
}

// Load reads the preset at path (skipped when path is empty), then the .env
// files, then the process environment. Missing .env files are ignored.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv.Load never overrides variables that are already set.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	cfg.Grid = cfg.Grid.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from HEXFOLIO_* variables found through lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	float := func(name string, dst *float64) error {
		v, ok := get(name)
		if !ok {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
		}
		*dst = f
		return nil
	}

	if v, ok := get("MODE"); ok {
		m, err := hexgrid.ParseMode(v)
		if err != nil {
			return fmt.Errorf("config: %sMODE: %w", EnvPrefix, err)
		}
		cfg.Grid.Mode = m
	}
	if err := float("PPH", &cfg.Grid.PixelsPerHex); err != nil {
		return err
	}
	if err := float("HUE", &cfg.Grid.Hue); err != nil {
		return err
	}
	if v, ok := get("SEED"); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %sSEED: %w", EnvPrefix, err)
		}
		cfg.Grid.Seed = seed
	}
	if v, ok := get("ADDR"); ok {
		cfg.Server.Addr = v
	}
	if v, ok := get("DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %sDEBUG: %w", EnvPrefix, err)
		}
		cfg.Window.Debug = b
	}
	return nil
}

// Validate checks the grid and the sizes.
func (c Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Poster.Width <= 0 || c.Poster.Height <= 0:
		return fmt.Errorf("config: poster size %dx%d must be positive", c.Poster.Width, c.Poster.Height)
	case c.Server.MaxWidth <= 0 || c.Server.MaxHeight <= 0:
		return fmt.Errorf("config: server max size %dx%d must be positive", c.Server.MaxWidth, c.Server.MaxHeight)
	case c.Server.MaxCells <= 0:
		return fmt.Errorf("config: server maxCells must be positive, got %d", c.Server.MaxCells)
	}
	return nil
}
