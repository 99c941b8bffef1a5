package watercolor

import (
	"math/rand"
	"testing"

	"github.com/frankievx/watercolor-rose/internal/behaviour"
	"github.com/frankievx/watercolor-rose/internal/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

func TestWatercolorMaterialDefaults(t *testing.T) {
	paper := testPaper()
	m := NewWatercolorMaterial(paper, DefaultMaterialOptions())

	if m.Side != renderer.DoubleSide {
		t.Errorf("Expected DoubleSide, got %v", m.Side)
	}
	for _, name := range []string{UniformTime, UniformResolution, UniformLightDirection, UniformPaperTexture} {
		if _, ok := m.Uniforms[name]; !ok {
			t.Errorf("Missing uniform %s", name)
		}
	}
	if len(m.Uniforms) != 4 {
		t.Errorf("Expected exactly 4 uniforms, got %d", len(m.Uniforms))
	}
	if m.Paper() != paper {
		t.Error("Material should bind the given paper texture")
	}
	if paper.WrapS != renderer.RepeatWrapping || paper.WrapT != renderer.RepeatWrapping {
		t.Errorf("Expected repeat wrapping, got %v/%v", paper.WrapS, paper.WrapT)
	}
	if paper.Repeat != (mgl32.Vec2{0.5, 0.5}) {
		t.Errorf("Expected repeat (0.5, 0.5), got %v", paper.Repeat)
	}
	if m.Uniforms[UniformResolution].Value != (mgl32.Vec2{1280, 800}) {
		t.Errorf("Unexpected resolution %v", m.Uniforms[UniformResolution].Value)
	}
}

func TestWatercolorMaterialPaperOffsetRange(t *testing.T) {
	check := func(off mgl32.Vec2) {
		t.Helper()
		for _, v := range []float32{off.X(), off.Y()} {
			if v < 0 || v >= 0.5 {
				t.Fatalf("Offset %v outside [0, 0.5)", off)
			}
		}
	}
	for seed := int64(0); seed < 500; seed++ {
		opts := DefaultMaterialOptions()
		opts.Rand = rand.New(rand.NewSource(seed))
		m := NewWatercolorMaterial(testPaper(), opts)
		check(m.Paper().Offset)
	}
	for i := 0; i < 50; i++ {
		check(NewWatercolorMaterial(testPaper(), MaterialOptions{}).Paper().Offset)
	}
}

func TestWatercolorMaterialSeededOffsetRepeats(t *testing.T) {
	build := func() mgl32.Vec2 {
		opts := DefaultMaterialOptions()
		opts.Rand = rand.New(rand.NewSource(42))
		return NewWatercolorMaterial(testPaper(), opts).Paper().Offset
	}
	if a, b := build(), build(); a != b {
		t.Errorf("Same seed gave %v and %v", a, b)
	}
}

func TestNormalizeLightDirection(t *testing.T) {
	for _, v := range []mgl32.Vec3{
		{1, 1, 1},
		{0.001, 0, 0},
		{1e6, -2e6, 3e6},
		{0, -5, 0},
		{0, 0, 0},
	} {
		got := NormalizeLightDirection(v)
		if l := got.Len(); !near(l, 1, 1e-5) {
			t.Errorf("NormalizeLightDirection(%v) has length %v", v, l)
		}
	}
	if got := NormalizeLightDirection(mgl32.Vec3{}); !got.ApproxEqual(mgl32.Vec3{1, 1, 1}.Normalize()) {
		t.Errorf("Zero vector should fall back to normalize(1,1,1), got %v", got)
	}
}

func TestWatercolorMaterialLiveUniforms(t *testing.T) {
	m := NewWatercolorMaterial(testPaper(), DefaultMaterialOptions())
	timeUniform := m.Uniforms[UniformTime]
	lightUniform := m.Uniforms[UniformLightDirection]

	m.SetTime(1.5)
	m.SetLightDirection(mgl32.Vec3{0, 10, 0})
	m.SetResolution(640, 480)

	if m.Uniforms[UniformTime] != timeUniform || m.Uniforms[UniformLightDirection] != lightUniform {
		t.Fatal("Setters must mutate uniforms in place")
	}
	if timeUniform.Value.(float32) != 1.5 {
		t.Errorf("Expected uTime 1.5, got %v", timeUniform.Value)
	}
	if lightUniform.Value.(mgl32.Vec3) != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Expected unit light direction, got %v", lightUniform.Value)
	}
	if m.Uniforms[UniformResolution].Value.(mgl32.Vec2) != (mgl32.Vec2{640, 480}) {
		t.Errorf("Unexpected resolution %v", m.Uniforms[UniformResolution].Value)
	}

	m.Update(behaviour.Frame{Delta: 0.5, Elapsed: 2.5})
	if m.Time() != 2.5 {
		t.Errorf("Update should set uTime to elapsed, got %v", m.Time())
	}
}
