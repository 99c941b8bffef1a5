package renderer

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/frankievx/watercolor-rose/internal/logger"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

//go:embed shaders/*.vert shaders/*.frag
var shaderFS embed.FS

var (
	ErrShaderCompile = errors.New("shader compilation failed")
	ErrShaderLink    = errors.New("shader program link failed")
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	Name           string
	vertexSource   string
	fragmentSource string
	program        uint32
	isCompiled     bool
	uniforms       *UniformCache
}

// NewShader returns an uncompiled shader. Compile needs a current GL context.
func NewShader(name, vertexSource, fragmentSource string) *Shader {
	return &Shader{
		Name:           name,
		vertexSource:   vertexSource,
		fragmentSource: fragmentSource,
	}
}

func mustShaderSource(path string) string {
	src, err := shaderFS.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("embedded shader %s missing: %v", path, err))
	}
	return string(src)
}

// WatercolorShader is the pigment shader used by the rose material.
func WatercolorShader() *Shader {
	return NewShader("watercolor", mustShaderSource("shaders/watercolor.vert"), mustShaderSource("shaders/watercolor.frag"))
}

// BackgroundShader draws a full-viewport textured triangle.
func BackgroundShader() *Shader {
	return NewShader("background", mustShaderSource("shaders/background.vert"), mustShaderSource("shaders/background.frag"))
}

// DepthShader renders light-space depth for shadow maps.
func DepthShader() *Shader {
	return NewShader("depth", mustShaderSource("shaders/depth.vert"), mustShaderSource("shaders/depth.frag"))
}

func (shader *Shader) IsValid() bool {
	return shader != nil && shader.vertexSource != "" && shader.fragmentSource != ""
}

func (shader *Shader) IsCompiled() bool {
	return shader.isCompiled
}

func (shader *Shader) Program() uint32 {
	return shader.program
}

// Compile compiles and links the program. Calling it again on a compiled
// shader is a no-op.
func (shader *Shader) Compile() error {
	if shader.isCompiled {
		return nil
	}
	if !shader.IsValid() {
		return fmt.Errorf("shader %q: %w: missing source", shader.Name, ErrShaderCompile)
	}

	vs, err := GenShader(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return fmt.Errorf("shader %q: %w", shader.Name, err)
	}
	fs, err := GenShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return fmt.Errorf("shader %q: %w", shader.Name, err)
	}
	program, err := GenShaderProgram(vs, fs)
	if err != nil {
		return fmt.Errorf("shader %q: %w", shader.Name, err)
	}

	shader.program = program
	shader.uniforms = NewUniformCache(program)
	shader.isCompiled = true
	logger.Log.Debug("Shader program linked", zap.String("shader", shader.Name), zap.Uint32("program", program))
	return nil
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) Delete() {
	if !shader.isCompiled {
		return
	}
	gl.DeleteProgram(shader.program)
	shader.program = 0
	shader.isCompiled = false
	shader.uniforms = nil
}

// HasUniform reports whether the linked program kept the named uniform.
func (shader *Shader) HasUniform(name string) bool {
	return shader.uniforms.GetLocation(name) != -1
}

func (shader *Shader) SetFloat(name string, value float32) {
	shader.uniforms.SetFloat(name, value)
}

func (shader *Shader) SetInt(name string, value int32) {
	shader.uniforms.SetInt(name, value)
}

func (shader *Shader) SetVec2(name string, value mgl32.Vec2) {
	shader.uniforms.SetVec2(name, value.X(), value.Y())
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	shader.uniforms.SetVec3(name, value.X(), value.Y(), value.Z())
}

func (shader *Shader) SetMat3(name string, value mgl32.Mat3) {
	shader.uniforms.SetMat3(name, value)
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	shader.uniforms.SetMat4(name, value)
}

func GenShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		logger.Log.Error("Failed to compile", zap.String("type", shaderTypeName(shaderType)), zap.String("log", log))
		return 0, fmt.Errorf("%w (%s): %s", ErrShaderCompile, shaderTypeName(shaderType), strings.TrimRight(log, "\x00"))
	}

	return shader, nil
}

func GenShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		logger.Log.Error("Failed to link program", zap.String("log", log))
		return 0, fmt.Errorf("%w: %s", ErrShaderLink, strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func shaderTypeName(shaderType uint32) string {
	if shaderType == gl.FRAGMENT_SHADER {
		return "fragment"
	}
	return "vertex"
}
