package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Scene is the renderable graph: an optional background texture, lights and
// meshes. A nil Background falls back to ClearColor.
type Scene struct {
	Background  *Texture
	ClearColor  mgl32.Vec3
	Ambient     *AmbientLight
	Directional *DirectionalLight
	Meshes      []*Mesh
}

func NewScene() *Scene {
	return &Scene{}
}

// ColorFromHex converts 0xRRGGBB to linear [0, 1] components.
func ColorFromHex(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

func (s *Scene) Add(mesh *Mesh) {
	s.Meshes = append(s.Meshes, mesh)
}

func (s *Scene) Remove(mesh *Mesh) {
	for i, m := range s.Meshes {
		if m == mesh {
			s.Meshes = append(s.Meshes[:i], s.Meshes[i+1:]...)
			return
		}
	}
}

// GetBackground and SetBackground let controllers hold the scene through a
// narrow interface.
func (s *Scene) GetBackground() *Texture {
	return s.Background
}

func (s *Scene) SetBackground(tex *Texture) {
	s.Background = tex
}

// CastsShadows reports whether a shadow pass has anything to draw.
func (s *Scene) CastsShadows() bool {
	if s.Directional == nil || !s.Directional.CastShadow {
		return false
	}
	for _, m := range s.Meshes {
		if m.CastShadow {
			return true
		}
	}
	return false
}
