package libgl

import (
	"log"

	"gl-animation/libgl/glsl"
	"gl-animation/libscn"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// MeshRenderer draws uploaded meshes with a single lit pipeline.
type MeshRenderer struct {
	shader  UnboundShaderPipeline
	meshes  map[string]*Mesh
	shading Shading
	// direction the light travels in
	LightDirection mgl32.Vec3
}

// Shading selects the switchable defines of the mesh fragment shader.
type Shading struct {
	// face normals from screen space derivatives
	Flat bool
	// output normals as colors
	Normals bool
}

func (s Shading) defines() map[string]string {
	return glsl.Switches(map[string]bool{
		"FLAT_SHADING": s.Flat,
		"SHOW_NORMALS": s.Normals,
	})
}

// SetShading recompiles the fragment stage if the shading changed. A failed
// compilation keeps the previous program and is not retried for the same shading.
func (r *MeshRenderer) SetShading(shading Shading) error {
	if shading == r.shading {
		return nil
	}
	r.shading = shading
	fsh := r.shader.Get(gl.FRAGMENT_SHADER)
	if err := fsh.CompileWith(shading.defines()); err != nil {
		return err
	}
	r.shader.Attach(fsh, gl.FRAGMENT_SHADER_BIT)
	return nil
}

// NewMeshRenderer uploads every mesh of the library.
func NewMeshRenderer(shader UnboundShaderPipeline, lib *libscn.Library) *MeshRenderer {
	r := &MeshRenderer{
		shader:         shader,
		meshes:         map[string]*Mesh{},
		LightDirection: mgl32.Vec3{-0.4, -1, -0.6}.Normalize(),
	}
	for _, name := range lib.Names() {
		mesh, _ := lib.Get(name)
		r.meshes[name] = UploadMesh(mesh)
	}
	return r
}

// Begin binds the pipeline and sets the per frame state.
func (r *MeshRenderer) Begin(viewProj mgl32.Mat4, camPos mgl32.Vec3, wireframe bool) {
	r.shader.Bind()
	r.shader.Get(gl.VERTEX_SHADER).SetUniform("u_view_projection_mat", viewProj)
	fsh := r.shader.Get(gl.FRAGMENT_SHADER)
	fsh.SetUniform("u_camera_position", camPos)
	fsh.SetUniform("u_light_direction", r.LightDirection)

	State.SetEnabled(DepthTest, Multisample)
	State.DepthFunc(DepthFuncLess)
	State.DepthMask(true)
	if wireframe {
		State.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		State.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// Draw renders the named mesh. Unknown names are logged once and skipped.
func (r *MeshRenderer) Draw(name string, model mgl32.Mat4, color mgl32.Vec3, highlight bool) {
	mesh, ok := r.meshes[name]
	if !ok {
		log.Printf("mesh %q is not loaded\n", name)
		r.meshes[name] = nil
		return
	}
	if mesh == nil {
		return
	}
	r.shader.Get(gl.VERTEX_SHADER).SetUniform("u_model_mat", model)
	fsh := r.shader.Get(gl.FRAGMENT_SHADER)
	fsh.SetUniform("u_color", color)
	fsh.SetUniform("u_highlight", highlight)
	mesh.Draw()
}

// End restores fill mode for the geometry drawn afterwards.
func (r *MeshRenderer) End() {
	State.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

func (r *MeshRenderer) Delete() {
	for _, mesh := range r.meshes {
		if mesh != nil {
			mesh.Delete()
		}
	}
	r.shader.Delete()
}
