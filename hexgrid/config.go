// Package hexgrid computes the geometry and per-frame animation state of a
// procedural hexagon grid. It has no rendering dependency: a Field produces
// cells, edges and per-frame visual attributes, and a backend (the Ebitengine
// Surface in the root package, or the raster poster) turns them into pixels.
package hexgrid

import (
	"fmt"
	"strings"
)

// Mode selects the visual treatment of a grid. Exactly one mode is active per
// Field.
type Mode uint8

const (
	ModeFill        Mode = iota // filled cells pulsing in scale, alpha and lightness
	ModeOverlapLine             // enlarged outlines that overlap their neighbours
	ModeTrails                  // light trails walking the shared edges
	ModeStrata                  // horizontal waves travelling through the rows
)

var modeNames = [...]string{"fill", "overlap", "trails", "strata"}

// String returns the lower-case mode name used in config files and flags.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", m)
}

// ParseMode converts a mode name back into a Mode. Matching is
// case-insensitive.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return ModeFill, fmt.Errorf("hexgrid: unknown mode %q", s)
}

// UnmarshalText lets Mode be decoded from YAML and env strings.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// PulseTuning controls the per-cell oscillator used by Fill and OverlapLine.
type PulseTuning struct {
	BaseFreq float64 `yaml:"baseFreq"` // cycles per second before per-cell jitter
	ScaleMin float64 `yaml:"scaleMin"`
	ScaleMax float64 `yaml:"scaleMax"`
	AlphaMin float64 `yaml:"alphaMin"`
	AlphaMax float64 `yaml:"alphaMax"`
	LightAmp float64 `yaml:"lightAmp"` // lightness swing around the base, in [0,1] units
	// Invert maps the pulse to scale directly, so larger cells are dimmer.
	Invert bool `yaml:"invert"`
}

// TrailOptions configures ModeTrails.
type TrailOptions struct {
	TrailCount     int     `yaml:"trailCount"`
	StepsPerSecond float64 `yaml:"stepsPerSecond"`
	FadeSeconds    float64 `yaml:"fadeSeconds"`
	AvoidBacktrack bool    `yaml:"avoidBacktrack"`
}

// StrataOptions configures ModeStrata.
type StrataOptions struct {
	BandRows     float64 `yaml:"bandRows"`     // rows per full wave period
	Speed        float64 `yaml:"speed"`        // wave periods per second
	Displacement float64 `yaml:"displacement"` // peak vertical offset in pixels
}

// SwayOptions configures the slow global camera oscillation. Surfaces that
// should stay still turn it off with SetSway rather than zero values.
type SwayOptions struct {
	Rotation float64 `yaml:"rotation"` // peak rotation in radians
	Zoom     float64 `yaml:"zoom"`     // peak zoom deviation from 1
	Period   float64 `yaml:"period"`   // seconds per full cycle
}

// Config describes one grid instance.
type Config struct {
	PixelsPerHex float64 `yaml:"pixelsPerHex"` // flat-to-flat width of one hexagon
	Hue          float64 `yaml:"hue"`          // base hue in degrees
	HueJitter    float64 `yaml:"hueJitter"`    // +/- degrees of random hue per cell
	Saturation   float64 `yaml:"s"`            // percent
	Lightness    float64 `yaml:"l"`            // percent
	Mode         Mode    `yaml:"mode"`
	Margin       int     `yaml:"margin"` // extra rows/cols beyond the viewport, at least 2
	Seed         uint64  `yaml:"seed"`

	Pulse  PulseTuning   `yaml:"pulse"`
	Trails TrailOptions  `yaml:"trails"`
	Strata StrataOptions `yaml:"strata"`
	Sway   SwayOptions   `yaml:"sway"`
}

const minMargin = 2

// DefaultConfig returns the configuration used by the home page background.
func DefaultConfig() Config {
	return Config{
		PixelsPerHex: 40,
		Hue:          240,
		HueJitter:    10,
		Saturation:   50,
		Lightness:    30,
		Mode:         ModeFill,
		Margin:       minMargin,
		Seed:         1,
	}.WithDefaults()
}

// WithDefaults fills every zero tuning value with its default. Explicit values
// are kept.
func (c Config) WithDefaults() Config {
	if c.Margin < minMargin {
		c.Margin = minMargin
	}
	p := &c.Pulse
	if p.BaseFreq == 0 {
		p.BaseFreq = 0.25
	}
	if p.ScaleMin == 0 && p.ScaleMax == 0 {
		if c.Mode == ModeOverlapLine {
			p.ScaleMin, p.ScaleMax = 1.0, 1.6
		} else {
			p.ScaleMin, p.ScaleMax = 0.55, 0.95
		}
	}
	if p.AlphaMin == 0 && p.AlphaMax == 0 {
		p.AlphaMin, p.AlphaMax = 0.15, 0.85
	}
	if p.LightAmp == 0 {
		p.LightAmp = 0.12
	}
	t := &c.Trails
	if t.TrailCount == 0 {
		t.TrailCount = 24
	}
	if t.StepsPerSecond == 0 {
		t.StepsPerSecond = 12
	}
	if t.FadeSeconds == 0 {
		t.FadeSeconds = 0.9
	}
	s := &c.Strata
	if s.BandRows == 0 {
		s.BandRows = 9
	}
	if s.Speed == 0 {
		s.Speed = 0.15
	}
	if s.Displacement == 0 {
		s.Displacement = 6
	}
	w := &c.Sway
	if w.Rotation == 0 {
		w.Rotation = 0.02
	}
	if w.Zoom == 0 {
		w.Zoom = 0.03
	}
	if w.Period == 0 {
		w.Period = 40
	}
	return c
}

// Validate reports the first configuration value that cannot produce a grid.
func (c Config) Validate() error {
	switch {
	case c.PixelsPerHex <= 0:
		return fmt.Errorf("hexgrid: pixelsPerHex must be positive, got %v", c.PixelsPerHex)
	case c.HueJitter < 0:
		return fmt.Errorf("hexgrid: hueJitter must not be negative, got %v", c.HueJitter)
	case c.Saturation < 0 || c.Saturation > 100:
		return fmt.Errorf("hexgrid: saturation %v outside [0,100]", c.Saturation)
	case c.Lightness < 0 || c.Lightness > 100:
		return fmt.Errorf("hexgrid: lightness %v outside [0,100]", c.Lightness)
	case c.Mode > ModeStrata:
		return fmt.Errorf("hexgrid: unknown mode %d", c.Mode)
	case c.Trails.TrailCount < 0:
		return fmt.Errorf("hexgrid: trailCount must not be negative, got %d", c.Trails.TrailCount)
	case c.Trails.StepsPerSecond < 0:
		return fmt.Errorf("hexgrid: stepsPerSecond must not be negative, got %v", c.Trails.StepsPerSecond)
	case c.Trails.FadeSeconds < 0:
		return fmt.Errorf("hexgrid: fadeSeconds must not be negative, got %v", c.Trails.FadeSeconds)
	}
	return nil
}
