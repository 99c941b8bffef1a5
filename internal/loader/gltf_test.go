package loader

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// roseDocument builds a two-node asset: a "Stem" quad and a "Petals"
// triangle pair whose mesh has a different name than its node.
func roseDocument(withNormals bool) *gltf.Document {
	doc := gltf.NewDocument()

	stemPos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {0, 1, 0}, {0.1, 0, 0}})
	stemIdx := modeler.WriteIndices(doc, []uint16{0, 1, 2})

	petalAttrs := map[string]uint32{
		gltf.POSITION: modeler.WritePosition(doc, [][3]float32{
			{2, 2, 2}, {4, 2, 2}, {4, 4, 2}, {2, 4, 6},
		}),
		gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, [][2]float32{
			{0, 0}, {1, 0}, {1, 1}, {0, 1},
		}),
	}
	if withNormals {
		petalAttrs[gltf.NORMAL] = modeler.WriteNormal(doc, [][3]float32{
			{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1},
		})
	}
	petalIdx := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})

	doc.Meshes = []*gltf.Mesh{
		{Name: "stem-mesh", Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(stemIdx),
			Attributes: map[string]uint32{gltf.POSITION: stemPos},
		}}},
		{Name: "petal-mesh", Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(petalIdx),
			Attributes: petalAttrs,
		}}},
	}
	doc.Nodes = []*gltf.Node{
		{Name: "Stem", Mesh: gltf.Index(0)},
		{Name: "Petals", Mesh: gltf.Index(1)},
	}
	return doc
}

func TestGeometryFromDocumentByNodeName(t *testing.T) {
	geom, err := GeometryFromDocument(roseDocument(true), "Petals")
	if err != nil {
		t.Fatalf("GeometryFromDocument: %v", err)
	}
	if geom.VertexCount() != 4 {
		t.Fatalf("Expected 4 vertices, got %d", geom.VertexCount())
	}
	if len(geom.Indices) != 6 {
		t.Fatalf("Expected 6 indices, got %d", len(geom.Indices))
	}
	if geom.Positions[3] != (mgl32.Vec3{2, 4, 6}) {
		t.Errorf("Unexpected position %v", geom.Positions[3])
	}
	if geom.UVs[2] != (mgl32.Vec2{1, 1}) {
		t.Errorf("Unexpected uv %v", geom.UVs[2])
	}
	if geom.Normals[0] != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("Expected stored normal, got %v", geom.Normals[0])
	}
}

func TestGeometryFromDocumentByMeshName(t *testing.T) {
	geom, err := GeometryFromDocument(roseDocument(true), "stem-mesh")
	if err != nil {
		t.Fatalf("GeometryFromDocument: %v", err)
	}
	if geom.VertexCount() != 3 {
		t.Errorf("Expected 3 vertices, got %d", geom.VertexCount())
	}
	// No TEXCOORD_0 on the stem.
	for i, uv := range geom.UVs {
		if uv != (mgl32.Vec2{}) {
			t.Errorf("uv %d = %v, want zero", i, uv)
		}
	}
}

func TestGeometryFromDocumentComputesMissingNormals(t *testing.T) {
	geom, err := GeometryFromDocument(roseDocument(false), "Petals")
	if err != nil {
		t.Fatalf("GeometryFromDocument: %v", err)
	}
	for i, n := range geom.Normals {
		if l := n.Len(); l < 0.999 || l > 1.001 {
			t.Errorf("normal %d has length %f", i, l)
		}
	}
}

func TestGeometryFromDocumentMissingMesh(t *testing.T) {
	_, err := GeometryFromDocument(roseDocument(true), "Leaves")
	if !errors.Is(err, ErrMeshNotFound) {
		t.Fatalf("Expected ErrMeshNotFound, got %v", err)
	}
}

func TestLoadGeometryGLBRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rose.glb")
	if err := gltf.SaveBinary(roseDocument(true), path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}

	geom, err := LoadGeometry(path, "Petals")
	if err != nil {
		t.Fatalf("LoadGeometry: %v", err)
	}
	box := geom.ComputeBoundingBox()
	if box.Min != (mgl32.Vec3{2, 2, 2}) || box.Max != (mgl32.Vec3{4, 4, 6}) {
		t.Errorf("Unexpected bounds %v..%v", box.Min, box.Max)
	}

	if _, err := LoadGeometry(path, "Leaves"); !errors.Is(err, ErrMeshNotFound) {
		t.Errorf("Expected ErrMeshNotFound from file, got %v", err)
	}
}

func TestLoadGeometryMissingFile(t *testing.T) {
	_, err := LoadGeometry(filepath.Join(t.TempDir(), "nope.glb"), "Petals")
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if errors.Is(err, ErrMeshNotFound) {
		t.Error("Missing file should not be reported as missing mesh")
	}
}
