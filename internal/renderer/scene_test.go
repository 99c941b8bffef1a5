package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestColorFromHex(t *testing.T) {
	c := ColorFromHex(0xf5f3f0)
	want := mgl32.Vec3{245.0 / 255, 243.0 / 255, 240.0 / 255}
	if !c.ApproxEqual(want) {
		t.Errorf("expected %v, got %v", want, c)
	}
}

func TestSceneAddRemove(t *testing.T) {
	s := NewScene()
	a := NewMesh("a", &Geometry{}, nil)
	b := NewMesh("b", &Geometry{}, nil)

	s.Add(a)
	s.Add(b)
	s.Remove(a)

	if len(s.Meshes) != 1 || s.Meshes[0] != b {
		t.Errorf("expected only mesh b, got %v", s.Meshes)
	}

	s.Remove(a)
	if len(s.Meshes) != 1 {
		t.Error("removing an absent mesh should be a no-op")
	}
}

func TestSceneCastsShadows(t *testing.T) {
	s := NewScene()
	mesh := NewMesh("rose", &Geometry{}, nil)
	s.Add(mesh)

	if s.CastsShadows() {
		t.Error("no directional light means no shadow pass")
	}

	s.Directional = NewDirectionalLight(mgl32.Vec3{5, 5, 5}, 1)
	s.Directional.CastShadow = true
	if s.CastsShadows() {
		t.Error("no casting mesh means no shadow pass")
	}

	mesh.CastShadow = true
	if !s.CastsShadows() {
		t.Error("expected a shadow pass")
	}
}

func TestSceneBackgroundAccessors(t *testing.T) {
	s := NewScene()
	tex := NewTexture("paper", nil)

	s.SetBackground(tex)
	if s.GetBackground() != tex {
		t.Error("background not stored")
	}
	s.SetBackground(nil)
	if s.GetBackground() != nil {
		t.Error("background not cleared")
	}
}
