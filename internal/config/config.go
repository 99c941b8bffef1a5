package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration. Every field has a default in
// Default, so an empty or partial YAML file is valid. The defaults are the
// reference scene (fov 75, 2048 shadow map, and so on); camera, lighting
// and material keys are tuning overrides on top of it.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Assets     AssetsConfig     `yaml:"assets"`
	Camera     CameraConfig     `yaml:"camera"`
	Lighting   LightingConfig   `yaml:"lighting"`
	Background BackgroundConfig `yaml:"background"`
	Material   MaterialConfig   `yaml:"material"`
	Model      ModelConfig      `yaml:"model"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type WindowConfig struct {
	Title   string `yaml:"title"`
	Width   int32  `yaml:"width"`
	Height  int32  `yaml:"height"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Samples int    `yaml:"samples"` // MSAA samples, 0 disables antialiasing
}

type AssetsConfig struct {
	ModelPath       string `yaml:"model_path"`
	MeshName        string `yaml:"mesh_name"`
	PaperPath       string `yaml:"paper_path"`
	ProceduralPaper bool   `yaml:"procedural_paper"`
	ShowProgress    bool   `yaml:"show_progress"`
}

// CameraConfig tunes the perspective camera. Fov is in degrees.
type CameraConfig struct {
	Fov      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
}

type LightingConfig struct {
	AmbientIntensity     float32    `yaml:"ambient_intensity"`
	DirectionalIntensity float32    `yaml:"directional_intensity"`
	DirectionalPosition  [3]float32 `yaml:"directional_position"`
	CastShadow           bool       `yaml:"cast_shadow"`
	ShadowMapSize        int32      `yaml:"shadow_map_size"` // square, in texels
}

type BackgroundConfig struct {
	// Sensitivity scales camera direction into UV offset.
	Sensitivity float32 `yaml:"sensitivity"`
}

type MaterialConfig struct {
	LightDirection [3]float32 `yaml:"light_direction"`
	PaperRepeat    [2]float32 `yaml:"paper_repeat"`
	OffsetRange    float32    `yaml:"offset_range"`
	Seed           *int64     `yaml:"seed"` // nil means time-seeded
}

type ModelConfig struct {
	Scale float32 `yaml:"scale"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration that reproduces the reference scene.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "Watercolor Rose",
			Width:   1280,
			Height:  800,
			X:       100,
			Y:       100,
			Samples: 4,
		},
		Assets: AssetsConfig{
			ModelPath:    "assets/models/rose.glb",
			MeshName:     "Petals",
			PaperPath:    "assets/textures/paper-2667x4000.jpg",
			ShowProgress: true,
		},
		Camera: CameraConfig{
			Fov:      75,
			Near:     0.1,
			Far:      1000,
			Position: [3]float32{5, 5, 10},
		},
		Lighting: LightingConfig{
			AmbientIntensity:     0.3,
			DirectionalIntensity: 1,
			DirectionalPosition:  [3]float32{5, 5, 5},
			CastShadow:           true,
			ShadowMapSize:        2048,
		},
		Background: BackgroundConfig{
			Sensitivity: 0.05,
		},
		Material: MaterialConfig{
			LightDirection: [3]float32{1, 1, 1},
			PaperRepeat:    [2]float32{0.5, 0.5},
			OffsetRange:    0.5,
		},
		Model: ModelConfig{
			Scale: 0.5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Window.Samples < 0:
		return fmt.Errorf("window samples must not be negative, got %d", c.Window.Samples)
	case c.Assets.ModelPath == "":
		return errors.New("assets.model_path is required")
	case c.Assets.MeshName == "":
		return errors.New("assets.mesh_name is required")
	case c.Assets.PaperPath == "" && !c.Assets.ProceduralPaper:
		return errors.New("assets.paper_path is required unless assets.procedural_paper is set")
	case c.Camera.Fov <= 0 || c.Camera.Fov >= 180:
		return fmt.Errorf("camera.fov must be in (0, 180), got %v", c.Camera.Fov)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("camera clip planes must satisfy 0 < near < far, got %v/%v", c.Camera.Near, c.Camera.Far)
	case c.Background.Sensitivity <= 0:
		return fmt.Errorf("background.sensitivity must be positive, got %v", c.Background.Sensitivity)
	case c.Lighting.ShadowMapSize <= 0:
		return fmt.Errorf("lighting.shadow_map_size must be positive, got %d", c.Lighting.ShadowMapSize)
	case c.Material.OffsetRange < 0:
		return fmt.Errorf("material.offset_range must not be negative, got %v", c.Material.OffsetRange)
	case c.Material.PaperRepeat[0] == 0 || c.Material.PaperRepeat[1] == 0:
		return errors.New("material.paper_repeat components must be non-zero")
	case c.Model.Scale <= 0:
		return fmt.Errorf("model.scale must be positive, got %v", c.Model.Scale)
	}
	return nil
}
