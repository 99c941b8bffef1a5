package watercolor

import (
	"errors"
	"math/rand"

	"github.com/frankievx/watercolor-rose/internal/behaviour"
	"github.com/frankievx/watercolor-rose/internal/config"
	"github.com/frankievx/watercolor-rose/internal/loader"
	"github.com/frankievx/watercolor-rose/internal/logger"
	"github.com/frankievx/watercolor-rose/internal/renderer"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ClearColor is the warm paper white shown where nothing is drawn.
const ClearColor = 0xf5f3f0

var ErrIncompleteAssets = errors.New("assets incomplete")

// Options parameterizes the composed scene. DefaultOptions reproduces the
// reference look.
type Options struct {
	Width, Height int32

	Fov            float32
	Near, Far      float32
	CameraPosition mgl32.Vec3

	AmbientIntensity     float32
	DirectionalIntensity float32
	DirectionalPosition  mgl32.Vec3
	CastShadow           bool
	ShadowMapSize        int32

	Sensitivity float32
	Material    MaterialOptions
	Scale       float32
}

func DefaultOptions() Options {
	return Options{
		Width:                1280,
		Height:               800,
		Fov:                  75,
		Near:                 0.1,
		Far:                  1000,
		CameraPosition:       mgl32.Vec3{5, 5, 10},
		AmbientIntensity:     0.3,
		DirectionalIntensity: 1,
		DirectionalPosition:  mgl32.Vec3{5, 5, 5},
		CastShadow:           true,
		ShadowMapSize:        2048,
		Sensitivity:          DefaultOffsetSensitivity,
		Material:             DefaultMaterialOptions(),
		Scale:                DefaultRoseScale,
	}
}

func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		Width:                cfg.Window.Width,
		Height:               cfg.Window.Height,
		Fov:                  cfg.Camera.Fov,
		Near:                 cfg.Camera.Near,
		Far:                  cfg.Camera.Far,
		CameraPosition:       mgl32.Vec3(cfg.Camera.Position),
		AmbientIntensity:     cfg.Lighting.AmbientIntensity,
		DirectionalIntensity: cfg.Lighting.DirectionalIntensity,
		DirectionalPosition:  mgl32.Vec3(cfg.Lighting.DirectionalPosition),
		CastShadow:           cfg.Lighting.CastShadow,
		ShadowMapSize:        cfg.Lighting.ShadowMapSize,
		Sensitivity:          cfg.Background.Sensitivity,
		Material: MaterialOptions{
			Resolution:     mgl32.Vec2{float32(cfg.Window.Width), float32(cfg.Window.Height)},
			LightDirection: mgl32.Vec3(cfg.Material.LightDirection),
			PaperRepeat:    mgl32.Vec2(cfg.Material.PaperRepeat),
			OffsetRange:    cfg.Material.OffsetRange,
		},
		Scale: cfg.Model.Scale,
	}
	if cfg.Material.Seed != nil {
		opts.Material.Rand = rand.New(rand.NewSource(*cfg.Material.Seed))
	}
	return opts
}

// Composer assembles and drives the rose scene. It is built only from fully
// loaded assets, so the mesh is never shown without its material.
type Composer struct {
	Scene      *renderer.Scene
	Camera     *renderer.Camera
	Controls   *renderer.OrbitControls
	Background *BackgroundController
	Material   *WatercolorMaterial
	Rose       *renderer.Mesh

	behaviours *behaviour.BehaviourManager
	elapsed    float64
	mounted    bool
}

func NewComposer(opts Options, assets *loader.Assets) (*Composer, error) {
	if assets == nil || assets.Geometry == nil || assets.Paper == nil {
		return nil, ErrIncompleteAssets
	}

	scene := renderer.NewScene()
	scene.ClearColor = renderer.ColorFromHex(ClearColor)

	camera := renderer.NewPerspectiveCamera(opts.Fov, aspect(opts.Width, opts.Height), opts.Near, opts.Far, opts.CameraPosition)
	camera.LookAt(mgl32.Vec3{})
	controls := renderer.NewOrbitControls(camera, mgl32.Vec3{})

	scene.Ambient = renderer.NewAmbientLight(opts.AmbientIntensity)
	sun := renderer.NewDirectionalLight(opts.DirectionalPosition, opts.DirectionalIntensity)
	sun.CastShadow = opts.CastShadow
	sun.Shadow.MapWidth = opts.ShadowMapSize
	sun.Shadow.MapHeight = opts.ShadowMapSize
	scene.Directional = sun

	background := NewBackgroundController(scene, camera, assets.Paper, opts.Sensitivity)

	matOpts := opts.Material
	matOpts.Resolution = mgl32.Vec2{float32(opts.Width), float32(opts.Height)}
	material := NewWatercolorMaterial(assets.Paper.Clone(), matOpts)

	rose := NewRose(assets.Geometry, material, opts.Scale)
	scene.Add(rose)

	c := &Composer{
		Scene:      scene,
		Camera:     camera,
		Controls:   controls,
		Background: background,
		Material:   material,
		Rose:       rose,
		behaviours: behaviour.NewBehaviourManager(),
		mounted:    true,
	}
	c.behaviours.Add(background)
	c.behaviours.Add(material)

	paperOffset := material.Paper().Offset
	logger.Log.Info("Scene composed",
		zap.Int("meshes", len(scene.Meshes)),
		zap.Float32("paper_offset_x", paperOffset.X()),
		zap.Float32("paper_offset_y", paperOffset.Y()))
	return c, nil
}

func aspect(width, height int32) float32 {
	if height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

func (c *Composer) Mounted() bool {
	return c.mounted
}

// Tick advances one frame: controls first so the camera is current, then
// the per-frame hooks.
func (c *Composer) Tick(dt float64) {
	if !c.mounted {
		return
	}
	c.elapsed += dt
	c.Controls.Update()
	c.behaviours.UpdateAll(behaviour.Frame{Delta: dt, Elapsed: c.elapsed})
}

func (c *Composer) Resize(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Camera.SetAspectRatio(aspect(width, height))
	c.Material.SetResolution(float32(width), float32(height))
}

// Unmount detaches everything the composer put on the scene. GPU resources
// are freed separately by the renderer.
func (c *Composer) Unmount() {
	if !c.mounted {
		return
	}
	c.behaviours.Clear()
	c.Background.Release()
	c.Scene.SetBackground(nil)
	c.Scene.Remove(c.Rose)
	c.mounted = false
	logger.Log.Info("Scene unmounted")
}
