// camera.go
package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera. Its orientation is always derived from
// LookAt; OrbitControls drives it during interaction.
type Camera struct {
	// HOT DATA - Accessed every frame for view/projection calculations
	Position   mgl32.Vec3 // Camera position in world space
	Front      mgl32.Vec3 // Forward direction vector (unit)
	Up         mgl32.Vec3 // Up direction vector
	Right      mgl32.Vec3 // Right direction vector
	Projection mgl32.Mat4 // Projection matrix

	// COLD DATA - Configuration, accessed less frequently
	WorldUp     mgl32.Vec3 // World up vector (usually (0,1,0))
	Fov         float32    // Vertical field of view in degrees
	Near        float32    // Near clipping plane
	Far         float32    // Far clipping plane
	AspectRatio float32    // Screen aspect ratio
}

// NewPerspectiveCamera creates a camera at position looking down -Z.
func NewPerspectiveCamera(fov, aspectRatio, near, far float32, position mgl32.Vec3) *Camera {
	camera := Camera{
		Position:    position,
		Front:       mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		Right:       mgl32.Vec3{1, 0, 0},
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Fov:         fov,
		Near:        near,
		Far:         far,
		AspectRatio: aspectRatio,
	}
	camera.UpdateProjection()
	return &camera
}

func (c *Camera) UpdateProjection() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.AspectRatio, c.Near, c.Far)
}

func (c *Camera) SetAspectRatio(aspectRatio float32) {
	c.AspectRatio = aspectRatio
	c.UpdateProjection()
}

// LookAt orients the camera toward target. Looking straight along WorldUp
// keeps the previous right vector.
func (c *Camera) LookAt(target mgl32.Vec3) {
	front := target.Sub(c.Position)
	if front.Len() < 1e-6 {
		return
	}
	c.Front = front.Normalize()

	right := c.Front.Cross(c.WorldUp)
	if right.Len() > 1e-6 {
		c.Right = right.Normalize()
	}
	c.Up = c.Right.Cross(c.Front).Normalize()
}

// GetWorldDirection returns the unit vector the camera faces in world space.
func (c *Camera) GetWorldDirection() mgl32.Vec3 {
	return c.Front
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return c.Projection
}

func (c *Camera) GetViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.GetViewMatrix())
}
