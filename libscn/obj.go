package libscn

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ParseObj reads the geometry of a Wavefront OBJ file into a single indexed
// triangle mesh. Polygons are fan triangulated, materials and groups are
// ignored. Vertices without a normal get the average of the adjacent face normals.
func ParseObj(r io.Reader, name string) (*Mesh, error) {
	p := objParser{
		mesh:   &Mesh{Name: name},
		lookup: map[objCorner]uint32{},
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := p.parseLine(fields[0], fields[1:]); err != nil {
			return nil, fmt.Errorf("obj %q line %d: %w", name, p.line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj %q: %w", name, err)
	}

	p.fillNormals()
	return p.mesh, nil
}

// a face corner, indices are 0 based, -1 when absent
type objCorner struct {
	v, vt, vn int
}

type objParser struct {
	line      int
	positions []mgl32.Vec3
	uvs       []mgl32.Vec2
	normals   []mgl32.Vec3
	lookup    map[objCorner]uint32
	// vertices that still need a flat normal
	flat []bool
	mesh *Mesh
}

func (p *objParser) parseLine(kind string, args []string) error {
	switch kind {
	case "v":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, mgl32.Vec3{v[0], v[1], v[2]})
	case "vt":
		v, err := parseFloats(args, 2)
		if err != nil {
			return err
		}
		p.uvs = append(p.uvs, mgl32.Vec2{v[0], v[1]})
	case "vn":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, mgl32.Vec3{v[0], v[1], v[2]}.Normalize())
	case "f":
		return p.parseFace(args)
	}
	return nil
}

func parseFloats(args []string, n int) ([]float32, error) {
	if len(args) < n {
		return nil, fmt.Errorf("expected %d values but got %d", n, len(args))
	}
	out := make([]float32, n)
	for i := range out {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

func (p *objParser) parseFace(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("face with %d vertices", len(args))
	}

	indices := make([]uint32, len(args))
	for i, arg := range args {
		corner, err := p.parseCorner(arg)
		if err != nil {
			return err
		}
		indices[i] = p.vertex(corner)
	}

	for i := 1; i+1 < len(indices); i++ {
		p.mesh.Indices = append(p.mesh.Indices, indices[0], indices[i], indices[i+1])
	}
	return nil
}

func (p *objParser) parseCorner(arg string) (objCorner, error) {
	corner := objCorner{-1, -1, -1}
	parts := strings.Split(arg, "/")

	var err error
	corner.v, err = resolveIndex(parts[0], len(p.positions))
	if err != nil {
		return corner, fmt.Errorf("vertex %q: %w", arg, err)
	}
	if len(parts) > 1 && parts[1] != "" {
		corner.vt, err = resolveIndex(parts[1], len(p.uvs))
		if err != nil {
			return corner, fmt.Errorf("uv of %q: %w", arg, err)
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		corner.vn, err = resolveIndex(parts[2], len(p.normals))
		if err != nil {
			return corner, fmt.Errorf("normal of %q: %w", arg, err)
		}
	}
	return corner, nil
}

// resolveIndex turns a 1 based or negative relative OBJ index into a 0 based one.
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += count
	default:
		return 0, fmt.Errorf("index 0 is invalid")
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("index out of range [0, %d)", count)
	}
	return i, nil
}

func (p *objParser) vertex(c objCorner) uint32 {
	if idx, ok := p.lookup[c]; ok {
		return idx
	}

	v := Vertex{Position: p.positions[c.v]}
	if c.vt >= 0 {
		v.Uv = p.uvs[c.vt]
	}
	if c.vn >= 0 {
		v.Normal = p.normals[c.vn]
	}

	idx := uint32(len(p.mesh.Vertices))
	p.mesh.Vertices = append(p.mesh.Vertices, v)
	p.flat = append(p.flat, c.vn < 0)
	p.lookup[c] = idx
	return idx
}

// fillNormals averages the face normals around vertices that had none.
func (p *objParser) fillNormals() {
	verts := p.mesh.Vertices
	for i := 0; i+2 < len(p.mesh.Indices); i += 3 {
		i0, i1, i2 := p.mesh.Indices[i], p.mesh.Indices[i+1], p.mesh.Indices[i+2]
		n := verts[i1].Position.Sub(verts[i0].Position).Cross(verts[i2].Position.Sub(verts[i0].Position))
		for _, idx := range [3]uint32{i0, i1, i2} {
			if p.flat[idx] {
				verts[idx].Normal = verts[idx].Normal.Add(n)
			}
		}
	}
	for i := range verts {
		if p.flat[i] && verts[i].Normal.Len() > 0 {
			verts[i].Normal = verts[i].Normal.Normalize()
		}
	}
}
