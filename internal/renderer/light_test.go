package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDirectionalLightDirection(t *testing.T) {
	light := NewDirectionalLight(mgl32.Vec3{5, 5, 5}, 1)

	want := mgl32.Vec3{-1, -1, -1}.Normalize()
	if !light.Direction().ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("expected %v, got %v", want, light.Direction())
	}
}

func TestDirectionalLightDegenerateDirection(t *testing.T) {
	light := NewDirectionalLight(mgl32.Vec3{}, 1)

	if light.Direction() != (mgl32.Vec3{0, -1, 0}) {
		t.Errorf("expected straight-down fallback, got %v", light.Direction())
	}
}

func TestLightSpaceMatrixMapsTargetToCenter(t *testing.T) {
	light := NewDirectionalLight(mgl32.Vec3{5, 5, 5}, 1)
	light.Shadow.Far = 20

	p := light.LightSpaceMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})

	if math.Abs(float64(p.X())) > 1e-5 || math.Abs(float64(p.Y())) > 1e-5 {
		t.Errorf("target should project to the shadow map center, got %v", p)
	}
	if p.Z() < -1 || p.Z() > 1 {
		t.Errorf("target should be inside the depth range, got z=%f", p.Z())
	}
}

func TestLightSpaceMatrixStraightDown(t *testing.T) {
	light := NewDirectionalLight(mgl32.Vec3{0, 10, 0}, 1)

	m := light.LightSpaceMatrix()
	for i := 0; i < 16; i++ {
		if math.IsNaN(float64(m[i])) {
			t.Fatal("overhead light should not produce NaNs")
		}
	}
}
