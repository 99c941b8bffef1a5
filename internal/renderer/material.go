package renderer

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Side selects which triangle faces a material draws.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Uniform is a live shader input. The renderer reads Value on every draw, so
// mutating it takes effect on the next frame without rebuilding the material.
type Uniform struct {
	Value any
}

// Uniforms maps GLSL uniform names to live values.
type Uniforms map[string]*Uniform

// Textures returns the sampler uniforms in a stable order by name.
func (u Uniforms) Textures() []string {
	var names []string
	for name, uniform := range u {
		if _, ok := uniform.Value.(*Texture); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ShaderMaterial is a surface whose appearance is fully determined by its
// shader program and uniforms.
type ShaderMaterial struct {
	Name     string
	Shader   *Shader
	Uniforms Uniforms
	Side     Side
}

func NewShaderMaterial(name string, shader *Shader, uniforms Uniforms) *ShaderMaterial {
	if uniforms == nil {
		uniforms = Uniforms{}
	}
	return &ShaderMaterial{
		Name:     name,
		Shader:   shader,
		Uniforms: uniforms,
	}
}

// apply uploads every uniform to the bound program. Textures are bound to
// consecutive units starting at firstUnit, and each sampler also receives
// its UV transform as "<name>Transform".
func (m *ShaderMaterial) apply(textures *TextureManager, firstUnit uint32) error {
	unit := firstUnit
	for _, name := range m.Uniforms.Textures() {
		tex := m.Uniforms[name].Value.(*Texture)
		if !tex.Uploaded() {
			return fmt.Errorf("material %q: texture %q bound to %s is not uploaded", m.Name, tex.Name, name)
		}
		textures.Bind(tex, unit)
		m.Shader.SetInt(name, int32(unit))
		m.Shader.SetMat3(name+"Transform", tex.UVTransform())
		unit++
	}

	for name, uniform := range m.Uniforms {
		switch v := uniform.Value.(type) {
		case *Texture:
			// bound above
		case float32:
			m.Shader.SetFloat(name, v)
		case int32:
			m.Shader.SetInt(name, v)
		case mgl32.Vec2:
			m.Shader.SetVec2(name, v)
		case mgl32.Vec3:
			m.Shader.SetVec3(name, v)
		case mgl32.Mat3:
			m.Shader.SetMat3(name, v)
		case mgl32.Mat4:
			m.Shader.SetMat4(name, v)
		default:
			return fmt.Errorf("material %q: uniform %s has unsupported type %T", m.Name, name, v)
		}
	}
	return nil
}
