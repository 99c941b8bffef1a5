package watercolor

import (
	"math"

	"github.com/frankievx/watercolor-rose/internal/behaviour"
	"github.com/frankievx/watercolor-rose/internal/logger"
	"github.com/frankievx/watercolor-rose/internal/renderer"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// DefaultOffsetSensitivity scales camera heading and pitch into UV units.
const DefaultOffsetSensitivity float32 = 0.05

// Below this horizontal length the heading is undefined (camera looking
// straight up or down) and the previous heading is kept.
const headingEpsilon = 1e-6

// DirectionSource yields the unit world-space direction the camera faces.
type DirectionSource interface {
	GetWorldDirection() mgl32.Vec3
}

// BackgroundHost is the part of a scene the controller mounts its texture on.
type BackgroundHost interface {
	GetBackground() *renderer.Texture
	SetBackground(tex *renderer.Texture)
}

// BackgroundOffset maps a view direction to a background UV offset:
// horizontal from the heading atan2(x, z), vertical from the y component.
func BackgroundOffset(dir mgl32.Vec3, k float32) mgl32.Vec2 {
	heading := math.Atan2(float64(dir.X()), float64(dir.Z()))
	return mgl32.Vec2{float32(heading) * k, dir.Y() * k}
}

// BackgroundController owns the scene background texture and pans it as the
// camera turns. The heading is unwrapped across frames, so a full turn pans
// by 2πk with no jump where atan2 wraps at ±π.
type BackgroundController struct {
	scene       BackgroundHost
	camera      DirectionSource
	texture     *renderer.Texture
	sensitivity float32

	heading  float64
	lastRaw  float64
	tracking bool
}

var _ behaviour.Behaviour = (*BackgroundController)(nil)

// NewBackgroundController clones paper, configures the clone for mirrored
// panning, mounts it on scene and applies the first offset.
func NewBackgroundController(scene BackgroundHost, camera DirectionSource, paper *renderer.Texture, k float32) *BackgroundController {
	tex := paper.Clone()
	tex.Name = "background"
	tex.SetWrap(renderer.MirroredRepeatWrapping, renderer.MirroredRepeatWrapping)
	tex.SetFilter(renderer.LinearFilter, renderer.LinearFilter)
	tex.SetRepeat(1, 1)
	tex.FlipY = false

	c := &BackgroundController{
		scene:       scene,
		camera:      camera,
		texture:     tex,
		sensitivity: k,
	}
	scene.SetBackground(tex)
	c.Apply()
	return c
}

// Texture returns the owned background, or nil after Release.
func (c *BackgroundController) Texture() *renderer.Texture {
	return c.texture
}

// Heading returns the unwrapped heading in radians.
func (c *BackgroundController) Heading() float64 {
	return c.heading
}

// Apply recomputes the offset from the live camera direction. It reports
// false, doing nothing, once the texture is no longer the scene background.
func (c *BackgroundController) Apply() bool {
	if c.texture == nil || c.scene.GetBackground() != c.texture {
		return false
	}
	dir := c.camera.GetWorldDirection()
	c.track(dir)
	c.texture.SetOffset(float32(c.heading)*c.sensitivity, dir.Y()*c.sensitivity)
	return true
}

func (c *BackgroundController) track(dir mgl32.Vec3) {
	x, z := float64(dir.X()), float64(dir.Z())
	if math.Hypot(x, z) < headingEpsilon {
		return
	}
	raw := math.Atan2(x, z)
	if !c.tracking {
		c.heading, c.lastRaw, c.tracking = raw, raw, true
		return
	}
	delta := raw - c.lastRaw
	if delta > math.Pi {
		delta -= 2 * math.Pi
	} else if delta < -math.Pi {
		delta += 2 * math.Pi
	}
	c.heading += delta
	c.lastRaw = raw
}

func (c *BackgroundController) Start() {
	logger.Log.Debug("Background controller started", zap.Float32("sensitivity", c.sensitivity))
}

func (c *BackgroundController) Update(behaviour.Frame) {
	c.Apply()
}

// Release unmounts the texture if it is still the scene background. Later
// calls to Apply are no-ops.
func (c *BackgroundController) Release() {
	if c.texture == nil {
		return
	}
	if c.scene.GetBackground() == c.texture {
		c.scene.SetBackground(nil)
	}
	c.texture = nil
}
