package libscn

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
}

type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Uv       mgl32.Vec2
}

const VertexSize = int(unsafe.Sizeof(Vertex{}))
const ElementIndexSize = int(unsafe.Sizeof(uint32(0)))

// Bounds returns the axis aligned bounding box of all vertices.
func (mesh *Mesh) Bounds() (min, max mgl32.Vec3) {
	if len(mesh.Vertices) == 0 {
		return
	}
	min, max = mesh.Vertices[0].Position, mesh.Vertices[0].Position
	for _, v := range mesh.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < min[i] {
				min[i] = v.Position[i]
			}
			if v.Position[i] > max[i] {
				max[i] = v.Position[i]
			}
		}
	}
	return
}

// Validate checks that the mesh is a triangle list with indices in range.
func (mesh *Mesh) Validate() error {
	if len(mesh.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q has %d indices, not a multiple of 3", mesh.Name, len(mesh.Indices))
	}
	for i, idx := range mesh.Indices {
		if int(idx) >= len(mesh.Vertices) {
			return fmt.Errorf("mesh %q index %d out of range: %d >= %d", mesh.Name, i, idx, len(mesh.Vertices))
		}
	}
	return nil
}

// LoadMesh reads an .obj or .geo file. The mesh is named after the file.
func LoadMesh(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open mesh file %q: %w", filename, err)
	}
	defer file.Close()

	name, _, _ := strings.Cut(filepath.Base(filename), ".")

	var mesh *Mesh
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".obj":
		mesh, err = ParseObj(file, name)
	case ".geo":
		mesh, err = DecodeMesh(file)
	default:
		return nil, fmt.Errorf("mesh file %q has unsupported extension %q", filename, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("could not load mesh file %q: %w", filename, err)
	}
	return mesh, nil
}
