package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const polarEpsilon = 1e-4

// OrbitControls rotates, pans and zooms a camera around a target point using
// spherical coordinates relative to the target.
type OrbitControls struct {
	Camera *Camera
	Target mgl32.Vec3

	EnableRotate bool
	EnableZoom   bool
	EnablePan    bool

	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32
	MinDistance float32
	MaxDistance float32

	radius float32
	theta  float32 // azimuth around +Y, measured from +Z toward +X
	phi    float32 // polar angle from +Y
}

// NewOrbitControls derives the initial spherical coordinates from the
// camera's current position relative to target.
func NewOrbitControls(camera *Camera, target mgl32.Vec3) *OrbitControls {
	oc := &OrbitControls{
		Camera:       camera,
		Target:       target,
		EnableRotate: true,
		EnableZoom:   true,
		EnablePan:    true,
		RotateSpeed:  1,
		ZoomSpeed:    1,
		PanSpeed:     1,
		MinDistance:  0.01,
		MaxDistance:  float32(math.Inf(1)),
	}
	oc.syncFromCamera()
	oc.Update()
	return oc
}

func (oc *OrbitControls) syncFromCamera() {
	offset := oc.Camera.Position.Sub(oc.Target)
	oc.radius = offset.Len()
	if oc.radius < 1e-6 {
		oc.radius = 1
		oc.theta, oc.phi = 0, float32(math.Pi/2)
		return
	}
	oc.theta = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	cosPhi := mgl32.Clamp(offset.Y()/oc.radius, -1, 1)
	oc.phi = float32(math.Acos(float64(cosPhi)))
	oc.clamp()
}

func (oc *OrbitControls) Radius() float32  { return oc.radius }
func (oc *OrbitControls) Azimuth() float32 { return oc.theta }
func (oc *OrbitControls) Polar() float32   { return oc.phi }

// Rotate orbits by a pointer drag of (dx, dy) pixels. A drag across the full
// viewport height turns one full revolution.
func (oc *OrbitControls) Rotate(dx, dy, viewportHeight float32) {
	if !oc.EnableRotate || viewportHeight <= 0 {
		return
	}
	oc.theta -= 2 * math.Pi * dx / viewportHeight * oc.RotateSpeed
	oc.phi -= 2 * math.Pi * dy / viewportHeight * oc.RotateSpeed
	oc.clamp()
}

// Zoom dollies toward the target for positive delta and away for negative.
func (oc *OrbitControls) Zoom(delta float32) {
	if !oc.EnableZoom || delta == 0 {
		return
	}
	scale := float32(math.Pow(0.95, float64(oc.ZoomSpeed*delta)))
	oc.radius *= scale
	oc.clamp()
}

// Pan translates target and camera in the view plane by a drag of (dx, dy)
// pixels, scaled so the point under the cursor follows it at target depth.
func (oc *OrbitControls) Pan(dx, dy, viewportHeight float32) {
	if !oc.EnablePan || viewportHeight <= 0 {
		return
	}
	targetDistance := oc.radius * float32(math.Tan(float64(mgl32.DegToRad(oc.Camera.Fov)/2)))
	right := oc.Camera.Right.Mul(-2 * dx * targetDistance / viewportHeight * oc.PanSpeed)
	up := oc.Camera.Up.Mul(2 * dy * targetDistance / viewportHeight * oc.PanSpeed)
	oc.Target = oc.Target.Add(right).Add(up)
}

// Update writes the spherical state to the camera.
func (oc *OrbitControls) Update() {
	sinPhi := float32(math.Sin(float64(oc.phi)))
	offset := mgl32.Vec3{
		oc.radius * sinPhi * float32(math.Sin(float64(oc.theta))),
		oc.radius * float32(math.Cos(float64(oc.phi))),
		oc.radius * sinPhi * float32(math.Cos(float64(oc.theta))),
	}
	oc.Camera.Position = oc.Target.Add(offset)
	oc.Camera.LookAt(oc.Target)
}

func (oc *OrbitControls) clamp() {
	oc.phi = mgl32.Clamp(oc.phi, polarEpsilon, math.Pi-polarEpsilon)
	oc.radius = mgl32.Clamp(oc.radius, oc.MinDistance, oc.MaxDistance)
}
