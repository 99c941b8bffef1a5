package renderer

var FaceCullingEnabled bool = true
var Debug bool = false
var DepthTestEnabled bool = true

// Render is the backend contract the host drives once per frame.
type Render interface {
	Init(width, height int32) error
	Prepare(scene *Scene) error
	Render(scene *Scene, camera *Camera)
	UpdateViewport(width, height int32)
	Cleanup()
}
