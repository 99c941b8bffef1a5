package watercolor

import (
	"github.com/frankievx/watercolor-rose/internal/logger"
	"github.com/frankievx/watercolor-rose/internal/renderer"
	"go.uber.org/zap"
)

const DefaultRoseScale = 0.5

// NewRose centers a copy of geom on the origin and wraps it in a mesh. The
// source geometry is left untouched.
func NewRose(geom *renderer.Geometry, material *WatercolorMaterial, scale float32) *renderer.Mesh {
	centered := geom.Clone()
	offset := centered.Center()

	mesh := renderer.NewMesh("rose", centered, material.ShaderMaterial)
	mesh.SetScale(scale, scale, scale)
	mesh.CastShadow = true
	mesh.ReceiveShadow = true

	logger.Log.Debug("Rose mesh centered",
		zap.Float32("dx", offset.X()),
		zap.Float32("dy", offset.Y()),
		zap.Float32("dz", offset.Z()))
	return mesh
}
