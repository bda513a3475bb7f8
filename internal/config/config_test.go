package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsAreValid(t *testing.T) {
	if err := Default().validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("empty path did not yield defaults")
	}
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodepulse.toml")
	data := []byte("[window]\nwidth = 640\n\n[sim]\ncycle_ms = 8000.0\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Window.Width != 640 {
		t.Fatalf("window width = %d, want 640", cfg.Window.Width)
	}
	if cfg.Sim.CycleMs != 8000 {
		t.Fatalf("cycle = %v, want 8000", cfg.Sim.CycleMs)
	}
	def := Default()
	if cfg.Window.Height != def.Window.Height || cfg.Layout.Spacing != def.Layout.Spacing {
		t.Fatalf("untouched keys lost their defaults")
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	data := []byte("[network]\nmin_entities = 50\nmax_entities = 10\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}
