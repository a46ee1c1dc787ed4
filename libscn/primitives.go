package libscn

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Cube with side length size centered at the origin. Each face has its own
// vertices so normals stay flat.
func Cube(size float32) *Mesh {
	h := size / 2
	faces := []struct {
		normal, u, v mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}

	mesh := &Mesh{Name: "cube"}
	for _, f := range faces {
		base := uint32(len(mesh.Vertices))
		// C--D
		// |  |
		// A--B
		corners := [4]mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
		for _, uv := range corners {
			pos := f.normal.Add(f.u.Mul(uv[0]*2 - 1)).Add(f.v.Mul(uv[1]*2 - 1)).Mul(h)
			mesh.Vertices = append(mesh.Vertices, Vertex{Position: pos, Normal: f.normal, Uv: uv})
		}
		mesh.Indices = append(mesh.Indices, base, base+1, base+3, base, base+3, base+2)
	}
	return mesh
}

// UvSphere of radius r. rings counts latitude bands, segments longitude bands.
func UvSphere(r float32, rings, segments int) *Mesh {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}

	mesh := &Mesh{Name: "sphere"}
	for ring := 0; ring <= rings; ring++ {
		theta := float32(ring) / float32(rings) * math32.Pi
		for segment := 0; segment <= segments; segment++ {
			phi := float32(segment) / float32(segments) * 2 * math32.Pi
			n := mgl32.Vec3{
				math32.Sin(theta) * math32.Cos(phi),
				math32.Cos(theta),
				-math32.Sin(theta) * math32.Sin(phi),
			}
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: n.Mul(r),
				Normal:   n,
				Uv:       mgl32.Vec2{float32(segment) / float32(segments), 1 - float32(ring)/float32(rings)},
			})
		}
	}
	mesh.Indices = gridIndices(rings, segments)
	return mesh
}

// Torus around the y axis. major is the distance from the center to the tube
// center, minor the tube radius.
func Torus(major, minor float32, rings, segments int) *Mesh {
	if rings < 3 {
		rings = 3
	}
	if segments < 3 {
		segments = 3
	}

	mesh := &Mesh{Name: "torus"}
	for ring := 0; ring <= rings; ring++ {
		u := float32(ring) / float32(rings) * 2 * math32.Pi
		center := mgl32.Vec3{math32.Cos(u), 0, -math32.Sin(u)}
		for segment := 0; segment <= segments; segment++ {
			v := float32(segment) / float32(segments) * 2 * math32.Pi
			n := center.Mul(math32.Cos(v)).Add(mgl32.Vec3{0, math32.Sin(v), 0})
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: center.Mul(major).Add(n.Mul(minor)),
				Normal:   n,
				Uv:       mgl32.Vec2{float32(ring) / float32(rings), float32(segment) / float32(segments)},
			})
		}
	}
	mesh.Indices = gridIndices(rings, segments)
	return mesh
}

// gridIndices triangulates a (rows+1) x (cols+1) vertex grid.
func gridIndices(rows, cols int) []uint32 {
	indices := make([]uint32, 0, rows*cols*6)
	stride := uint32(cols + 1)
	for row := uint32(0); row < uint32(rows); row++ {
		for col := uint32(0); col < uint32(cols); col++ {
			a := row*stride + col
			b := a + 1
			c := a + stride
			d := c + 1
			indices = append(indices, a, c, b, b, c, d)
		}
	}
	return indices
}

// Primitive returns a built-in mesh by name.
func Primitive(name string) (*Mesh, bool) {
	switch name {
	case "cube":
		return Cube(1), true
	case "sphere":
		return UvSphere(0.6, 16, 32), true
	case "torus":
		return Torus(0.5, 0.2, 32, 16), true
	}
	return nil, false
}
