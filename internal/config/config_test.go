package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Camera.Fov != 75 {
		t.Errorf("expected fov 75, got %v", cfg.Camera.Fov)
	}
	if cfg.Lighting.ShadowMapSize != 2048 {
		t.Errorf("expected shadow map 2048, got %d", cfg.Lighting.ShadowMapSize)
	}
	if cfg.Assets.MeshName != "Petals" {
		t.Errorf("expected mesh name Petals, got %q", cfg.Assets.MeshName)
	}
	if cfg.Material.Seed != nil {
		t.Error("default seed should be unset")
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Background.Sensitivity != 0.05 {
		t.Errorf("expected sensitivity 0.05, got %v", cfg.Background.Sensitivity)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if cfg.Window.Width != Default().Window.Width {
		t.Error("empty file should keep defaults")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 640
  height: 480
material:
  seed: 42
  offset_range: 0.25
logging:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Window.Width != 640 || cfg.Window.Height != 480 {
		t.Errorf("window size not applied: %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Material.Seed == nil || *cfg.Material.Seed != 42 {
		t.Errorf("seed not applied: %v", cfg.Material.Seed)
	}
	if cfg.Material.OffsetRange != 0.25 {
		t.Errorf("offset range not applied: %v", cfg.Material.OffsetRange)
	}
	// Untouched sections keep their defaults.
	if cfg.Camera.Fov != 75 {
		t.Errorf("expected default fov, got %v", cfg.Camera.Fov)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "window:\n  widht: 10\n"))
	if err == nil {
		t.Fatal("expected an error for an unknown key")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !os.IsNotExist(unwrapAll(err)) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func unwrapAll(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		err = u.Unwrap()
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"negative samples", func(c *Config) { c.Window.Samples = -1 }, "samples"},
		{"no model", func(c *Config) { c.Assets.ModelPath = "" }, "model_path"},
		{"no mesh name", func(c *Config) { c.Assets.MeshName = "" }, "mesh_name"},
		{"no paper", func(c *Config) { c.Assets.PaperPath = "" }, "paper_path"},
		{"fov too wide", func(c *Config) { c.Camera.Fov = 180 }, "fov"},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }, "clip planes"},
		{"shadow map", func(c *Config) { c.Lighting.ShadowMapSize = 0 }, "shadow_map_size"},
		{"zero sensitivity", func(c *Config) { c.Background.Sensitivity = 0 }, "sensitivity"},
		{"negative sensitivity", func(c *Config) { c.Background.Sensitivity = -0.05 }, "sensitivity"},
		{"offset range", func(c *Config) { c.Material.OffsetRange = -1 }, "offset_range"},
		{"paper repeat", func(c *Config) { c.Material.PaperRepeat = [2]float32{0, 1} }, "paper_repeat"},
		{"scale", func(c *Config) { c.Model.Scale = 0 }, "scale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestProceduralPaperNeedsNoPath(t *testing.T) {
	cfg := Default()
	cfg.Assets.PaperPath = ""
	cfg.Assets.ProceduralPaper = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("procedural paper should not need a path: %v", err)
	}
}
