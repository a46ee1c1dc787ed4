package libscn_test

import (
	"bytes"
	"encoding/binary"
	"gl-animation/libscn"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-5)

const quadObj = `# a unit quad
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3 -1/-1
`

func TestPrimitivesAreValid(t *testing.T) {
	for _, name := range []string{"cube", "sphere", "torus"} {
		mesh, ok := libscn.Primitive(name)
		if !ok {
			t.Fatalf("primitive %q should exist", name)
		}
		if err := mesh.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		for i, v := range mesh.Vertices {
			if l := v.Normal.Len(); l < 0.999 || l > 1.001 {
				t.Errorf("%s: normal of vertex %d should be unit length but was %v", name, i, l)
				break
			}
		}
	}
	if _, ok := libscn.Primitive("teapot"); ok {
		t.Errorf("unknown primitive should not exist")
	}
}

func TestCube(t *testing.T) {
	cube := libscn.Cube(2)
	if len(cube.Vertices) != 24 || len(cube.Indices) != 36 {
		t.Fatalf("cube should have 24 vertices and 36 indices but had %d and %d", len(cube.Vertices), len(cube.Indices))
	}
	min, max := cube.Bounds()
	if diff := cmp.Diff(mgl32.Vec3{-1, -1, -1}, min, approx); diff != "" {
		t.Errorf("min bound (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mgl32.Vec3{1, 1, 1}, max, approx); diff != "" {
		t.Errorf("max bound (-want +got):\n%s", diff)
	}

	// front faces wind counter clockwise around their normal
	for i := 0; i < len(cube.Indices); i += 3 {
		a, b, c := cube.Vertices[cube.Indices[i]], cube.Vertices[cube.Indices[i+1]], cube.Vertices[cube.Indices[i+2]]
		n := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
		if n.Dot(a.Normal) <= 0 {
			t.Errorf("triangle %d winds the wrong way", i/3)
		}
	}
}

func TestUvSphereRadius(t *testing.T) {
	sphere := libscn.UvSphere(2, 8, 12)
	for i, v := range sphere.Vertices {
		if l := v.Position.Len(); l < 1.999 || l > 2.001 {
			t.Fatalf("vertex %d should be at distance 2 but was at %v", i, l)
		}
	}
}

func TestParseObj(t *testing.T) {
	mesh, err := libscn.ParseObj(strings.NewReader(quadObj), "quad")
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Vertices) != 4 {
		t.Errorf("should have 4 vertices but had %d", len(mesh.Vertices))
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	if diff := cmp.Diff(want, mesh.Indices); diff != "" {
		t.Errorf("quad should be split in two triangles (-want +got):\n%s", diff)
	}
	for i, v := range mesh.Vertices {
		if diff := cmp.Diff(mgl32.Vec3{0, 0, 1}, v.Normal, approx); diff != "" {
			t.Errorf("vertex %d should get the face normal (-want +got):\n%s", i, diff)
		}
	}
	if uv := mesh.Vertices[3].Uv; uv != (mgl32.Vec2{0, 1}) {
		t.Errorf("relative uv index should resolve to (0, 1) but was %v", uv)
	}
}

func TestParseObjSharesCorners(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\nvn 0 0 1\nf 1//1 2//1 3//1\nf 3//1 2//1 4//1\n"
	mesh, err := libscn.ParseObj(strings.NewReader(src), "shared")
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Vertices) != 4 {
		t.Errorf("identical corners should be merged into 4 vertices but got %d", len(mesh.Vertices))
	}
}

func TestParseObjErrors(t *testing.T) {
	cases := map[string]string{
		"zero index":   "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n",
		"out of range": "v 0 0 0\nf 1 2 3\n",
		"bad float":    "v 0 zero 0\n",
		"short face":   "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"short vertex": "v 0 0\n",
		"missing uv":   "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1 2/1 3/1\n",
	}
	for name, src := range cases {
		if _, err := libscn.ParseObj(strings.NewReader(src), name); err == nil {
			t.Errorf("%s: should fail", name)
		}
	}

	_, err := libscn.ParseObj(strings.NewReader("v 0 0 0\n\n# comment\nf 1 1 7\n"), "line")
	if err == nil || !strings.Contains(err.Error(), "line 4") {
		t.Errorf("error should name line 4 but was %v", err)
	}
}

func TestGeoCodec(t *testing.T) {
	torus := libscn.Torus(1, 0.25, 12, 8)
	for _, compression := range []libscn.GeoCompression{libscn.GeoCompressionNone, libscn.GeoCompressionLz4} {
		t.Run(compression.String(), func(t *testing.T) {
			buf := &bytes.Buffer{}
			if err := libscn.EncodeMesh(buf, torus, compression); err != nil {
				t.Fatal(err)
			}
			decoded, err := libscn.DecodeMesh(buf)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(torus, decoded); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestGeoLz4IsSmaller(t *testing.T) {
	sphere := libscn.UvSphere(1, 32, 64)
	raw, packed := &bytes.Buffer{}, &bytes.Buffer{}
	if err := libscn.EncodeMesh(raw, sphere, libscn.GeoCompressionNone); err != nil {
		t.Fatal(err)
	}
	if err := libscn.EncodeMesh(packed, sphere, libscn.GeoCompressionLz4); err != nil {
		t.Fatal(err)
	}
	if packed.Len() >= raw.Len() {
		t.Errorf("lz4 payload should be smaller than %d bytes but was %d", raw.Len(), packed.Len())
	}
}

func TestDecodeMeshRejectsGarbage(t *testing.T) {
	if _, err := libscn.DecodeMesh(bytes.NewReader([]byte("definitely not a mesh file"))); err == nil {
		t.Errorf("bad magic number should fail")
	}
	if _, err := libscn.DecodeMesh(bytes.NewReader(nil)); err == nil {
		t.Errorf("empty input should fail")
	}

	buf := &bytes.Buffer{}
	if err := libscn.EncodeMesh(buf, libscn.Cube(1), libscn.GeoCompressionNone); err != nil {
		t.Fatal(err)
	}
	truncated := buf.Bytes()[:buf.Len()-10]
	if _, err := libscn.DecodeMesh(bytes.NewReader(truncated)); err == nil {
		t.Errorf("truncated payload should fail")
	}
}

func geoHeader(t *testing.T, header libscn.GeoHeader, name string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		t.Fatal(err)
	}
	buf.WriteString(name)
	return buf.Bytes()
}

func TestDecodeMeshRejectsHugeCounts(t *testing.T) {
	tests := map[string]libscn.GeoHeader{
		"vertices": {VertexCount: 0x7fffffff},
		"indices":  {IndexCount: 0xffffffff},
		"name":     {NameLength: 0xffffffff},
		"lz4":      {Compression: libscn.GeoCompressionLz4, VertexCount: 0x7fffffff, IndexCount: 0x7fffffff},
	}
	for label, header := range tests {
		header.Check = libscn.MagicNumberGEO
		header.Version = libscn.GeoVersion1_000_000
		if _, err := libscn.DecodeMesh(bytes.NewReader(geoHeader(t, header, ""))); err == nil {
			t.Errorf("%s: oversized header should fail", label)
		}
	}
}

func TestDecodeMeshRejectsMissingPayload(t *testing.T) {
	for _, compression := range []libscn.GeoCompression{libscn.GeoCompressionNone, libscn.GeoCompressionLz4} {
		header := libscn.GeoHeader{
			Check:       libscn.MagicNumberGEO,
			Version:     libscn.GeoVersion1_000_000,
			Compression: compression,
			NameLength:  4,
			VertexCount: 1000,
			IndexCount:  3000,
		}
		if _, err := libscn.DecodeMesh(bytes.NewReader(geoHeader(t, header, "mesh"))); err == nil {
			t.Errorf("%v: header without payload should fail", compression)
		}
	}
}

func TestLoadMesh(t *testing.T) {
	dir := t.TempDir()
	objFile := filepath.Join(dir, "quad.obj")
	if err := os.WriteFile(objFile, []byte(quadObj), 0o644); err != nil {
		t.Fatal(err)
	}
	mesh, err := libscn.LoadMesh(objFile)
	if err != nil {
		t.Fatal(err)
	}
	if mesh.Name != "quad" {
		t.Errorf("mesh should be named quad but was %q", mesh.Name)
	}

	geoFile := filepath.Join(dir, "quad.geo")
	f, err := os.Create(geoFile)
	if err != nil {
		t.Fatal(err)
	}
	if err := libscn.EncodeMesh(f, mesh, libscn.GeoCompressionLz4); err != nil {
		t.Fatal(err)
	}
	f.Close()
	geo, err := libscn.LoadMesh(geoFile)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(mesh, geo); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	if _, err := libscn.LoadMesh(filepath.Join(dir, "quad.stl")); err == nil {
		t.Errorf("missing file should fail")
	}
}

func TestLibrary(t *testing.T) {
	lib := libscn.NewLibrary()
	if diff := cmp.Diff([]string{"cube", "sphere", "torus"}, lib.Names()); diff != "" {
		t.Fatalf("primitives should be present (-want +got):\n%s", diff)
	}

	dir := t.TempDir()
	files := map[string]string{
		"quad.obj":   quadObj,
		"broken.obj": "f 1 2 3\n",
		"notes.txt":  "not a mesh",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	err := lib.LoadDir(dir)
	if err == nil || !strings.Contains(err.Error(), "broken.obj") {
		t.Errorf("error should name broken.obj but was %v", err)
	}
	if _, ok := lib.Get("quad"); !ok {
		t.Errorf("quad should be loaded despite the broken file")
	}
	if _, ok := lib.Get("notes"); ok {
		t.Errorf("non mesh files should be ignored")
	}
	if err := lib.LoadDir(filepath.Join(dir, "missing")); err == nil {
		t.Errorf("missing directory should fail")
	}
}
