package renderer

import (
	"fmt"

	"github.com/frankievx/watercolor-rose/internal/logger"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Texture unit layout: the background and material samplers share units
// from 0; the shadow map sits above them.
const shadowMapUnit = 15

type OpenGLRenderer struct {
	textures         *TextureManager
	backgroundShader *Shader
	depthShader      *Shader
	backgroundVAO    uint32
	shadowMap        *ShadowMap
	width, height    int32

	currentShaderProgram uint32 // Track currently bound shader to avoid unnecessary switches
	prepared             map[*Mesh]bool
	acquired             []*Texture
	shaders              []*Shader
}

var _ Render = (*OpenGLRenderer)(nil)

func NewOpenGLRenderer() *OpenGLRenderer {
	return &OpenGLRenderer{
		textures: NewTextureManager(),
		prepared: make(map[*Mesh]bool),
	}
}

// Init needs a current GL context.
func (rend *OpenGLRenderer) Init(width, height int32) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("OpenGL initialization failed: %w", err)
	}
	logger.Log.Info("OpenGL context",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	gl.Enable(gl.MULTISAMPLE)

	rend.backgroundShader = BackgroundShader()
	if err := rend.compile(rend.backgroundShader); err != nil {
		return err
	}
	rend.depthShader = DepthShader()
	if err := rend.compile(rend.depthShader); err != nil {
		return err
	}

	// Core profile needs a bound VAO even for attribute-less draws.
	gl.GenVertexArrays(1, &rend.backgroundVAO)

	rend.UpdateViewport(width, height)
	logger.Log.Info("OpenGL render initialized", zap.Int32("width", width), zap.Int32("height", height))
	return nil
}

func (rend *OpenGLRenderer) compile(shader *Shader) error {
	if shader.IsCompiled() {
		return nil
	}
	if err := shader.Compile(); err != nil {
		return err
	}
	rend.shaders = append(rend.shaders, shader)
	return nil
}

// Prepare uploads everything the scene references: mesh buffers, material
// programs, textures and the shadow map. It is safe to call again after the
// scene changes; already prepared meshes are skipped.
func (rend *OpenGLRenderer) Prepare(scene *Scene) error {
	if scene.Background != nil && !scene.Background.Uploaded() {
		if err := rend.acquire(scene.Background); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}

	for _, mesh := range scene.Meshes {
		if rend.prepared[mesh] {
			continue
		}
		if err := rend.prepareMesh(mesh); err != nil {
			return fmt.Errorf("mesh %q: %w", mesh.Name, err)
		}
		rend.prepared[mesh] = true
	}

	if scene.Directional != nil && scene.Directional.CastShadow && rend.shadowMap == nil {
		cfg := scene.Directional.Shadow
		sm, err := NewShadowMap(cfg.MapWidth, cfg.MapHeight)
		if err != nil {
			return err
		}
		rend.shadowMap = sm
		logger.Log.Info("Shadow map created", zap.Int32("width", cfg.MapWidth), zap.Int32("height", cfg.MapHeight))
	}
	return nil
}

func (rend *OpenGLRenderer) acquire(tex *Texture) error {
	if err := rend.textures.Acquire(tex); err != nil {
		return err
	}
	rend.acquired = append(rend.acquired, tex)
	return nil
}

func (rend *OpenGLRenderer) prepareMesh(mesh *Mesh) error {
	if mesh.Material == nil || !mesh.Material.Shader.IsValid() {
		return fmt.Errorf("missing shader material")
	}
	if err := rend.compile(mesh.Material.Shader); err != nil {
		return err
	}
	for _, name := range mesh.Material.Uniforms.Textures() {
		tex := mesh.Material.Uniforms[name].Value.(*Texture)
		if tex.Uploaded() {
			continue
		}
		if err := rend.acquire(tex); err != nil {
			return fmt.Errorf("uniform %s: %w", name, err)
		}
	}

	geom := mesh.Geometry
	if geom.VAO != 0 {
		return nil
	}
	interleaved := geom.Interleave()
	if len(interleaved) == 0 || len(geom.Indices) == 0 {
		return fmt.Errorf("empty geometry")
	}

	gl.GenVertexArrays(1, &geom.VAO)
	gl.BindVertexArray(geom.VAO)

	gl.GenBuffers(1, &geom.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, geom.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(interleaved)*4, gl.Ptr(interleaved), gl.STATIC_DRAW)

	gl.GenBuffers(1, &geom.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, geom.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(geom.Indices)*4, gl.Ptr(geom.Indices), gl.STATIC_DRAW)

	stride := int32(8 * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	geom.IndexCount = int32(len(geom.Indices))

	logger.Log.Debug("Mesh uploaded",
		zap.String("mesh", mesh.Name),
		zap.Int("vertices", geom.VertexCount()),
		zap.Int32("indices", geom.IndexCount))
	return nil
}

func (rend *OpenGLRenderer) Render(scene *Scene, camera *Camera) {
	if scene.CastsShadows() && rend.shadowMap != nil {
		rend.renderShadowPass(scene)
	}

	c := scene.ClearColor
	gl.ClearColor(c.X(), c.Y(), c.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if scene.Background != nil {
		rend.renderBackground(scene.Background)
	}

	if DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthMask(true)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	viewProjection := camera.GetViewProjection()
	for _, mesh := range scene.Meshes {
		if !rend.prepared[mesh] {
			continue
		}
		rend.renderMesh(scene, mesh, camera, viewProjection)
	}
}

func (rend *OpenGLRenderer) renderBackground(bg *Texture) {
	if !bg.Uploaded() {
		// A background swapped in after Prepare gets uploaded on first use.
		if err := rend.acquire(bg); err != nil {
			logger.Log.Error("Background upload failed", zap.String("texture", bg.Name), zap.Error(err))
			return
		}
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.DepthMask(false)
	gl.Disable(gl.CULL_FACE)

	rend.use(rend.backgroundShader)
	rend.textures.Bind(bg, 0)
	rend.backgroundShader.SetInt("background", 0)
	rend.backgroundShader.SetMat3("backgroundTransform", bg.UVTransform())

	gl.BindVertexArray(rend.backgroundVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
}

func (rend *OpenGLRenderer) renderMesh(scene *Scene, mesh *Mesh, camera *Camera, viewProjection mgl32.Mat4) {
	mat := mesh.Material
	rend.setSide(mat.Side)
	rend.use(mat.Shader)

	mat.Shader.SetMat4("model", mesh.Matrix())
	mat.Shader.SetMat4("viewProjection", viewProjection)
	mat.Shader.SetMat3("normalMatrix", mesh.NormalMatrix())
	mat.Shader.SetVec3("cameraPosition", camera.Position)

	if err := mat.apply(rend.textures, 0); err != nil {
		logger.Log.Error("Material uniforms rejected", zap.String("mesh", mesh.Name), zap.Error(err))
		return
	}

	if mesh.ReceiveShadow && rend.shadowMap != nil && scene.CastsShadows() {
		gl.ActiveTexture(gl.TEXTURE0 + shadowMapUnit)
		gl.BindTexture(gl.TEXTURE_2D, rend.shadowMap.DepthTexture)
		mat.Shader.SetInt("shadowMap", shadowMapUnit)
		mat.Shader.SetMat4("lightSpace", scene.Directional.LightSpaceMatrix())
		mat.Shader.SetInt("shadowsEnabled", 1)
	} else {
		mat.Shader.SetInt("shadowsEnabled", 0)
	}

	gl.BindVertexArray(mesh.Geometry.VAO)
	gl.DrawElements(gl.TRIANGLES, mesh.Geometry.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (rend *OpenGLRenderer) renderShadowPass(scene *Scene) {
	rend.shadowMap.Bind()
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(true)
	gl.Disable(gl.CULL_FACE)

	rend.use(rend.depthShader)
	rend.depthShader.SetMat4("lightSpace", scene.Directional.LightSpaceMatrix())
	for _, mesh := range scene.Meshes {
		if !mesh.CastShadow || !rend.prepared[mesh] {
			continue
		}
		rend.depthShader.SetMat4("model", mesh.Matrix())
		gl.BindVertexArray(mesh.Geometry.VAO)
		gl.DrawElements(gl.TRIANGLES, mesh.Geometry.IndexCount, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)

	rend.shadowMap.Unbind()
	gl.Viewport(0, 0, rend.width, rend.height)
}

func (rend *OpenGLRenderer) setSide(side Side) {
	if !FaceCullingEnabled || side == DoubleSide {
		gl.Disable(gl.CULL_FACE)
		return
	}
	gl.Enable(gl.CULL_FACE)
	gl.FrontFace(gl.CCW)
	if side == BackSide {
		gl.CullFace(gl.FRONT)
	} else {
		gl.CullFace(gl.BACK)
	}
}

func (rend *OpenGLRenderer) use(shader *Shader) {
	if rend.currentShaderProgram != shader.Program() {
		shader.Use()
		rend.currentShaderProgram = shader.Program()
	}
}

// UpdateViewport updates the OpenGL viewport to match the current framebuffer size
func (rend *OpenGLRenderer) UpdateViewport(width, height int32) {
	rend.width, rend.height = width, height
	gl.Viewport(0, 0, width, height)
}

// Textures exposes the texture manager for stats logging.
func (rend *OpenGLRenderer) Textures() *TextureManager {
	return rend.textures
}

func (rend *OpenGLRenderer) Cleanup() {
	for mesh := range rend.prepared {
		geom := mesh.Geometry
		gl.DeleteVertexArrays(1, &geom.VAO)
		gl.DeleteBuffers(1, &geom.VBO)
		gl.DeleteBuffers(1, &geom.EBO)
		geom.VAO, geom.VBO, geom.EBO = 0, 0, 0
	}
	rend.prepared = make(map[*Mesh]bool)

	for _, tex := range rend.acquired {
		rend.textures.Release(tex)
	}
	rend.acquired = nil
	rend.textures.LogStats()
	rend.textures.Clear()

	if rend.shadowMap != nil {
		rend.shadowMap.Delete()
		rend.shadowMap = nil
	}
	for _, shader := range rend.shaders {
		shader.Delete()
	}
	rend.shaders = nil
	gl.DeleteVertexArrays(1, &rend.backgroundVAO)
	rend.currentShaderProgram = 0
	logger.Log.Info("OpenGL renderer cleaned up")
}
