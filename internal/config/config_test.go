package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/phanxgames/hexfolio/hexgrid"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.PixelsPerHex != 40 {
		t.Errorf("PixelsPerHex = %f, want 40", cfg.Grid.PixelsPerHex)
	}
	if cfg.Grid.Pulse.BaseFreq == 0 {
		t.Error("pulse tuning not defaulted")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "preset.yaml", `
grid:
  mode: overlap
  pixelsPerHex: 32
  hue: 200
  s: 70
window:
  title: demo
  width: 640
  height: 480
`)
	cfg, err := Load(path, filepath.Join(dir, "none.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.Mode != hexgrid.ModeOverlapLine {
		t.Errorf("Mode = %v, want overlap", cfg.Grid.Mode)
	}
	if cfg.Grid.PixelsPerHex != 32 || cfg.Grid.Hue != 200 || cfg.Grid.Saturation != 70 {
		t.Errorf("grid = %+v", cfg.Grid)
	}
	// Overlap picks its own scale range once the mode is known.
	if cfg.Grid.Pulse.ScaleMin != 1.0 || cfg.Grid.Pulse.ScaleMax != 1.6 {
		t.Errorf("scale range = [%f, %f], want [1, 1.6]", cfg.Grid.Pulse.ScaleMin, cfg.Grid.Pulse.ScaleMax)
	}
	if cfg.Window.Title != "demo" || cfg.Window.Width != 640 {
		t.Errorf("window = %+v", cfg.Window)
	}
	// Unset keys keep their defaults.
	if cfg.Grid.Lightness != 30 {
		t.Errorf("Lightness = %f, want 30", cfg.Grid.Lightness)
	}
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.yaml", "grid:\n  mode: hexagons\n")
	if _, err := Load(path, filepath.Join(dir, "none.env")); err == nil {
		t.Error("Load with unknown mode succeeded, want error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load of missing preset succeeded, want error")
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "preset.yaml", "grid:\n  hue: 10\n")
	t.Setenv("HEXFOLIO_HUE", "300")
	t.Setenv("HEXFOLIO_MODE", "Trails")
	cfg, err := Load(path, filepath.Join(dir, "none.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.Hue != 300 {
		t.Errorf("Hue = %f, want 300", cfg.Grid.Hue)
	}
	if cfg.Grid.Mode != hexgrid.ModeTrails {
		t.Errorf("Mode = %v, want trails", cfg.Grid.Mode)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := writeFile(t, dir, "test.env", "HEXFOLIO_PPH=24\nHEXFOLIO_ADDR=127.0.0.1:9000\n")
	t.Cleanup(func() {
		os.Unsetenv("HEXFOLIO_PPH")
		os.Unsetenv("HEXFOLIO_ADDR")
	})
	cfg, err := Load("", env)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.PixelsPerHex != 24 {
		t.Errorf("PixelsPerHex = %f, want 24", cfg.Grid.PixelsPerHex)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q, want 127.0.0.1:9000", cfg.Server.Addr)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"HEXFOLIO_SEED":  "42",
		"HEXFOLIO_DEBUG": "true",
		"HEXFOLIO_HUE":   "  ",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	cfg := Default()
	if err := ApplyEnv(&cfg, lookup); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Grid.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Grid.Seed)
	}
	if !cfg.Window.Debug {
		t.Error("Debug = false, want true")
	}
	if cfg.Grid.Hue != 240 {
		t.Errorf("blank HUE changed Hue to %f", cfg.Grid.Hue)
	}
}

func TestApplyEnvErrors(t *testing.T) {
	for _, kv := range [][2]string{
		{"HEXFOLIO_PPH", "wide"},
		{"HEXFOLIO_MODE", "zigzag"},
		{"HEXFOLIO_SEED", "-1"},
		{"HEXFOLIO_DEBUG", "maybe"},
	} {
		lookup := func(k string) (string, bool) {
			if k == kv[0] {
				return kv[1], true
			}
			return "", false
		}
		cfg := Default()
		if err := ApplyEnv(&cfg, lookup); err == nil {
			t.Errorf("%s=%s: want error", kv[0], kv[1])
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Grid = cfg.Grid.WithDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default Validate: %v", err)
	}
	bad := cfg
	bad.Poster.Width = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero poster width passed Validate")
	}
	bad = cfg
	bad.Grid.PixelsPerHex = -1
	if err := bad.Validate(); err == nil {
		t.Error("negative pixelsPerHex passed Validate")
	}
	bad = cfg
	bad.Server.MaxCells = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero maxCells passed Validate")
	}
}
