package loader

import (
	"errors"
	"fmt"

	"github.com/frankievx/watercolor-rose/internal/logger"
	"github.com/frankievx/watercolor-rose/internal/renderer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
)

// ErrMeshNotFound is returned when an asset has no node or mesh with the
// requested name.
var ErrMeshNotFound = errors.New("mesh not found")

// LoadGeometry opens a .gltf or .glb file and extracts the named sub-mesh.
func LoadGeometry(path, name string) (*renderer.Geometry, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	geom, err := GeometryFromDocument(doc, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Log.Info("Mesh loaded",
		zap.String("file", path),
		zap.String("mesh", name),
		zap.Int("vertices", geom.VertexCount()),
		zap.Int("triangles", len(geom.Indices)/3))
	return geom, nil
}

// GeometryFromDocument merges the triangle primitives of the named mesh into
// one geometry. Node names are tried first since exporters usually name the
// node rather than the mesh.
func GeometryFromDocument(doc *gltf.Document, name string) (*renderer.Geometry, error) {
	mesh := findMesh(doc, name)
	if mesh == nil {
		return nil, fmt.Errorf("%w: %q", ErrMeshNotFound, name)
	}

	geom := &renderer.Geometry{}
	missingNormals := false
	for i, prim := range mesh.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			logger.Log.Warn("Skipping non-triangle primitive",
				zap.String("mesh", name), zap.Int("primitive", i))
			continue
		}
		hasNormals, err := appendPrimitive(doc, prim, geom)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", name, i, err)
		}
		if !hasNormals {
			missingNormals = true
		}
	}
	if len(geom.Indices) == 0 {
		return nil, fmt.Errorf("mesh %q has no triangles", name)
	}
	if missingNormals {
		geom.ComputeVertexNormals()
	}
	return geom, nil
}

func findMesh(doc *gltf.Document, name string) *gltf.Mesh {
	for _, node := range doc.Nodes {
		if node.Name == name && node.Mesh != nil && int(*node.Mesh) < len(doc.Meshes) {
			return doc.Meshes[*node.Mesh]
		}
	}
	for _, mesh := range doc.Meshes {
		if mesh.Name == name {
			return mesh
		}
	}
	return nil
}

func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, geom *renderer.Geometry) (bool, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return false, errors.New("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return false, fmt.Errorf("read positions: %w", err)
	}

	base := uint32(len(geom.Positions))
	for _, p := range positions {
		geom.Positions = append(geom.Positions, mgl32.Vec3(p))
	}

	hasNormals := false
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[idx], nil)
		if err != nil {
			return false, fmt.Errorf("read normals: %w", err)
		}
		if len(normals) == len(positions) {
			hasNormals = true
			for _, n := range normals {
				geom.Normals = append(geom.Normals, mgl32.Vec3(n))
			}
		}
	}
	if !hasNormals {
		geom.Normals = append(geom.Normals, make([]mgl32.Vec3, len(positions))...)
	}

	uvs := make([]mgl32.Vec2, len(positions))
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		coords, err := modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
		if err != nil {
			return false, fmt.Errorf("read uvs: %w", err)
		}
		for i := 0; i < len(coords) && i < len(uvs); i++ {
			uvs[i] = mgl32.Vec2(coords[i])
		}
	}
	geom.UVs = append(geom.UVs, uvs...)

	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return false, fmt.Errorf("read indices: %w", err)
		}
		for _, i := range indices {
			if int(i) >= len(positions) {
				return false, fmt.Errorf("index %d out of range (%d vertices)", i, len(positions))
			}
			geom.Indices = append(geom.Indices, base+i)
		}
	} else {
		for i := range positions {
			geom.Indices = append(geom.Indices, base+uint32(i))
		}
	}
	return hasNormals, nil
}
