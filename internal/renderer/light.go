package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// AmbientLight lights every surface uniformly.
type AmbientLight struct {
	Color     mgl32.Vec3
	Intensity float32
}

func NewAmbientLight(intensity float32) *AmbientLight {
	return &AmbientLight{Color: mgl32.Vec3{1, 1, 1}, Intensity: intensity}
}

// ShadowConfig describes the orthographic shadow camera of a directional light.
type ShadowConfig struct {
	MapWidth  int32
	MapHeight int32
	Near      float32
	Far       float32
	Extent    float32 // half-size of the orthographic frustum
}

// DirectionalLight shines from Position toward Target.
type DirectionalLight struct {
	Position   mgl32.Vec3
	Target     mgl32.Vec3
	Color      mgl32.Vec3
	Intensity  float32
	CastShadow bool
	Shadow     ShadowConfig
}

func NewDirectionalLight(position mgl32.Vec3, intensity float32) *DirectionalLight {
	return &DirectionalLight{
		Position:  position,
		Color:     mgl32.Vec3{1, 1, 1},
		Intensity: intensity,
		Shadow: ShadowConfig{
			MapWidth:  512,
			MapHeight: 512,
			Near:      0.5,
			Far:       500,
			Extent:    5,
		},
	}
}

// Direction is the unit vector the light travels along.
func (l *DirectionalLight) Direction() mgl32.Vec3 {
	d := l.Target.Sub(l.Position)
	if d.Len() < 1e-6 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}

// LightSpaceMatrix maps world space into the shadow camera's clip space.
func (l *DirectionalLight) LightSpaceMatrix() mgl32.Mat4 {
	up := mgl32.Vec3{0, 1, 0}
	if abs32(l.Direction().Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	view := mgl32.LookAtV(l.Position, l.Target, up)
	e := l.Shadow.Extent
	proj := mgl32.Ortho(-e, e, -e, e, l.Shadow.Near, l.Shadow.Far)
	return proj.Mul4(view)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
