package watercolor

import (
	"math/rand"
	"time"

	"github.com/frankievx/watercolor-rose/internal/behaviour"
	"github.com/frankievx/watercolor-rose/internal/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	UniformTime           = "uTime"
	UniformResolution     = "uResolution"
	UniformLightDirection = "uLightDirection"
	UniformPaperTexture   = "uPaperTexture"
)

var defaultLightDirection = mgl32.Vec3{1, 1, 1}.Normalize()

type MaterialOptions struct {
	Resolution     mgl32.Vec2
	LightDirection mgl32.Vec3
	// PaperRepeat is the paper tiling; zero means (0.5, 0.5).
	PaperRepeat mgl32.Vec2
	// OffsetRange bounds the random paper offset to [0, OffsetRange).
	OffsetRange float32
	// Rand seeds the paper offset. Nil uses a time-seeded source.
	Rand *rand.Rand
}

func DefaultMaterialOptions() MaterialOptions {
	return MaterialOptions{
		Resolution:     mgl32.Vec2{1280, 800},
		LightDirection: mgl32.Vec3{1, 1, 1},
		PaperRepeat:    mgl32.Vec2{0.5, 0.5},
		OffsetRange:    0.5,
	}
}

// WatercolorMaterial binds the watercolor shader to live uniforms. Setters
// write through the uniform pointers so the renderer sees each change on
// the next draw.
type WatercolorMaterial struct {
	*renderer.ShaderMaterial

	time           *renderer.Uniform
	resolution     *renderer.Uniform
	lightDirection *renderer.Uniform
	paper          *renderer.Uniform
}

var _ behaviour.Behaviour = (*WatercolorMaterial)(nil)

// NewWatercolorMaterial configures paper in place for tiled sampling and
// builds the material around it.
func NewWatercolorMaterial(paper *renderer.Texture, opts MaterialOptions) *WatercolorMaterial {
	if opts.PaperRepeat == (mgl32.Vec2{}) {
		opts.PaperRepeat = mgl32.Vec2{0.5, 0.5}
	}
	if opts.OffsetRange <= 0 {
		opts.OffsetRange = 0.5
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	paper.SetWrap(renderer.RepeatWrapping, renderer.RepeatWrapping)
	paper.SetFilter(renderer.LinearFilter, renderer.LinearFilter)
	paper.SetRepeat(opts.PaperRepeat.X(), opts.PaperRepeat.Y())
	paper.SetOffset(rng.Float32()*opts.OffsetRange, rng.Float32()*opts.OffsetRange)

	m := &WatercolorMaterial{
		time:           &renderer.Uniform{Value: float32(0)},
		resolution:     &renderer.Uniform{Value: opts.Resolution},
		lightDirection: &renderer.Uniform{Value: NormalizeLightDirection(opts.LightDirection)},
		paper:          &renderer.Uniform{Value: paper},
	}
	m.ShaderMaterial = renderer.NewShaderMaterial("watercolor", renderer.WatercolorShader(), renderer.Uniforms{
		UniformTime:           m.time,
		UniformResolution:     m.resolution,
		UniformLightDirection: m.lightDirection,
		UniformPaperTexture:   m.paper,
	})
	m.Side = renderer.DoubleSide
	return m
}

// NormalizeLightDirection returns v at unit length. The zero vector maps to
// normalize(1, 1, 1).
func NormalizeLightDirection(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() < 1e-6 {
		return defaultLightDirection
	}
	return v.Normalize()
}

func (m *WatercolorMaterial) SetTime(seconds float32) {
	m.time.Value = seconds
}

func (m *WatercolorMaterial) SetResolution(width, height float32) {
	m.resolution.Value = mgl32.Vec2{width, height}
}

func (m *WatercolorMaterial) SetLightDirection(dir mgl32.Vec3) {
	m.lightDirection.Value = NormalizeLightDirection(dir)
}

func (m *WatercolorMaterial) Time() float32 {
	return m.time.Value.(float32)
}

func (m *WatercolorMaterial) LightDirection() mgl32.Vec3 {
	return m.lightDirection.Value.(mgl32.Vec3)
}

func (m *WatercolorMaterial) Paper() *renderer.Texture {
	return m.paper.Value.(*renderer.Texture)
}

func (m *WatercolorMaterial) Start() {}

// Update drives uTime from the frame clock.
func (m *WatercolorMaterial) Update(frame behaviour.Frame) {
	m.SetTime(float32(frame.Elapsed))
}
