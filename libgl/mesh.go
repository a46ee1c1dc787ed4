package libgl

import (
	"gl-animation/libscn"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// Mesh is a libscn.Mesh uploaded to immutable GL buffers.
type Mesh struct {
	Name       string
	vao        UnboundVertexArray
	vbo, ebo   UnboundBuffer
	indexCount int32
}

func UploadMesh(mesh *libscn.Mesh) *Mesh {
	vao := NewVertexArray()
	vao.Layout(0, 0, 3, gl.FLOAT, false, 0)
	vao.Layout(0, 1, 3, gl.FLOAT, false, 3*4)
	vao.Layout(0, 2, 2, gl.FLOAT, false, 6*4)

	vbo := NewBuffer()
	vbo.Allocate(mesh.Vertices, 0)
	ebo := NewBuffer()
	ebo.Allocate(mesh.Indices, 0)
	vao.BindBuffer(0, vbo, 0, libscn.VertexSize)
	vao.BindElementBuffer(ebo)

	vao.SetDebugLabel(mesh.Name)
	vbo.SetDebugLabel(mesh.Name + " vertices")
	ebo.SetDebugLabel(mesh.Name + " indices")

	return &Mesh{
		Name:       mesh.Name,
		vao:        vao,
		vbo:        vbo,
		ebo:        ebo,
		indexCount: int32(len(mesh.Indices)),
	}
}

// Draw issues the draw call, the caller binds the pipeline and sets its uniforms.
func (m *Mesh) Draw() {
	m.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
}

func (m *Mesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}
