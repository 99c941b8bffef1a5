package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BoundingBox is an axis-aligned box. The zero value is not empty; use
// EmptyBoundingBox to start an accumulation.
type BoundingBox struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func EmptyBoundingBox() BoundingBox {
	inf := float32(math.Inf(1))
	return BoundingBox{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

func (b BoundingBox) IsEmpty() bool {
	return b.Max.X() < b.Min.X() || b.Max.Y() < b.Min.Y() || b.Max.Z() < b.Min.Z()
}

// Expand grows the box to contain p.
func (b *BoundingBox) Expand(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

func (b BoundingBox) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

func (b BoundingBox) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Geometry holds indexed triangle data. Normals and UVs are either empty or
// the same length as Positions.
type Geometry struct {
	// HOT DATA - GPU handles used every draw
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32

	// COLD DATA - CPU copy used at load and upload
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// Clone deep-copies the vertex data. GPU handles are not shared.
func (g *Geometry) Clone() *Geometry {
	return &Geometry{
		Positions: append([]mgl32.Vec3(nil), g.Positions...),
		Normals:   append([]mgl32.Vec3(nil), g.Normals...),
		UVs:       append([]mgl32.Vec2(nil), g.UVs...),
		Indices:   append([]uint32(nil), g.Indices...),
	}
}

func (g *Geometry) VertexCount() int {
	return len(g.Positions)
}

func (g *Geometry) ComputeBoundingBox() BoundingBox {
	box := EmptyBoundingBox()
	for _, p := range g.Positions {
		box.Expand(p)
	}
	return box
}

// Translate moves every vertex by offset.
func (g *Geometry) Translate(offset mgl32.Vec3) {
	for i := range g.Positions {
		g.Positions[i] = g.Positions[i].Add(offset)
	}
}

// Center translates the geometry so its bounding box midpoint sits at the
// origin and returns the applied offset.
func (g *Geometry) Center() mgl32.Vec3 {
	box := g.ComputeBoundingBox()
	if box.IsEmpty() {
		return mgl32.Vec3{}
	}
	offset := box.Center().Mul(-1)
	g.Translate(offset)
	return offset
}

// ComputeVertexNormals replaces Normals with area-weighted face normals
// accumulated per vertex.
func (g *Geometry) ComputeVertexNormals() {
	normals := make([]mgl32.Vec3, len(g.Positions))
	for i := 0; i+2 < len(g.Indices); i += 3 {
		a, b, c := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		if int(a) >= len(g.Positions) || int(b) >= len(g.Positions) || int(c) >= len(g.Positions) {
			continue
		}
		pa, pb, pc := g.Positions[a], g.Positions[b], g.Positions[c]
		face := pb.Sub(pa).Cross(pc.Sub(pa))
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}
	for i, n := range normals {
		if n.Len() > 1e-12 {
			normals[i] = n.Normalize()
		} else {
			normals[i] = mgl32.Vec3{0, 1, 0}
		}
	}
	g.Normals = normals
}

// Interleave packs position (3), uv (2) and normal (3) per vertex, matching
// the attribute layout of the mesh shaders.
func (g *Geometry) Interleave() []float32 {
	data := make([]float32, 0, len(g.Positions)*8)
	for i, p := range g.Positions {
		data = append(data, p.X(), p.Y(), p.Z())

		if i < len(g.UVs) {
			data = append(data, g.UVs[i].X(), g.UVs[i].Y())
		} else {
			data = append(data, 0, 0)
		}

		if i < len(g.Normals) {
			data = append(data, g.Normals[i].X(), g.Normals[i].Y(), g.Normals[i].Z())
		} else {
			data = append(data, 0, 1, 0)
		}
	}
	return data
}

// Mesh is a geometry drawn with a material under a TRS transform.
type Mesh struct {
	// HOT DATA - Accessed every frame in render loop
	ModelMatrix mgl32.Mat4
	Geometry    *Geometry
	Material    *ShaderMaterial
	IsDirty     bool

	// COLD DATA
	Name          string
	Position      mgl32.Vec3
	Rotation      mgl32.Quat
	Scale         mgl32.Vec3
	CastShadow    bool
	ReceiveShadow bool
}

func NewMesh(name string, geometry *Geometry, material *ShaderMaterial) *Mesh {
	m := &Mesh{
		Name:     name,
		Geometry: geometry,
		Material: material,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
	m.updateModelMatrix()
	return m
}

func (m *Mesh) SetPosition(x, y, z float32) {
	m.Position = mgl32.Vec3{x, y, z}
	m.IsDirty = true
}

func (m *Mesh) SetScale(x, y, z float32) {
	m.Scale = mgl32.Vec3{x, y, z}
	m.IsDirty = true
}

// Rotate applies Euler rotations in degrees, X then Y then Z.
func (m *Mesh) Rotate(angleX, angleY, angleZ float32) {
	rotationX := mgl32.QuatRotate(mgl32.DegToRad(angleX), mgl32.Vec3{1, 0, 0})
	rotationY := mgl32.QuatRotate(mgl32.DegToRad(angleY), mgl32.Vec3{0, 1, 0})
	rotationZ := mgl32.QuatRotate(mgl32.DegToRad(angleZ), mgl32.Vec3{0, 0, 1})
	m.Rotation = m.Rotation.Mul(rotationX).Mul(rotationY).Mul(rotationZ)
	m.IsDirty = true
}

// Matrix returns the model matrix, recomputing it if the transform changed.
func (m *Mesh) Matrix() mgl32.Mat4 {
	if m.IsDirty {
		m.updateModelMatrix()
	}
	return m.ModelMatrix
}

// NormalMatrix is the inverse transpose of the model matrix's upper 3x3.
func (m *Mesh) NormalMatrix() mgl32.Mat3 {
	return m.Matrix().Mat3().Inv().Transpose()
}

func (m *Mesh) updateModelMatrix() {
	// T * R * S: scale first, then rotate, then translate
	scaleMatrix := mgl32.Scale3D(m.Scale.X(), m.Scale.Y(), m.Scale.Z())
	rotationMatrix := m.Rotation.Mat4()
	translationMatrix := mgl32.Translate3D(m.Position.X(), m.Position.Y(), m.Position.Z())
	m.ModelMatrix = translationMatrix.Mul4(rotationMatrix).Mul4(scaleMatrix)
	m.IsDirty = false
}
