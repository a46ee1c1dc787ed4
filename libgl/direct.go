package libgl

import (
	"gl-animation/libutil"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// 3 floats position + 3 floats color + 3 floats normal
const directVertexFloats = 3 + 3 + 3

// DirectBuffer collects immediate mode geometry during a frame and draws it in one call.
// Lines are drawn as two crossed quads so they keep a visible width.
type DirectBuffer struct {
	vao       UnboundVertexArray
	vbo       UnboundBuffer
	shader    UnboundShaderPipeline
	data      []float32
	color     mgl32.Vec3
	stroke    float32
	shaded    bool
	autoShade bool
	normal    mgl32.Vec3
}

func NewDirectBuffer(shader UnboundShaderPipeline) *DirectBuffer {
	vao := NewVertexArray()
	vao.Layout(0, 0, 3, gl.FLOAT, false, 0)
	vao.Layout(0, 1, 3, gl.FLOAT, false, 3*4)
	vao.Layout(0, 2, 3, gl.FLOAT, false, 6*4)
	vbo := NewBuffer()
	vbo.AllocateEmptyMutable(64*1024, gl.DYNAMIC_DRAW)
	vao.BindBuffer(0, vbo, 0, directVertexFloats*4)
	vao.SetDebugLabel("direct")
	vbo.SetDebugLabel("direct")

	return &DirectBuffer{
		vao:    vao,
		vbo:    vbo,
		shader: shader,
		data:   []float32{},
		color:  mgl32.Vec3{1, 1, 1},
		stroke: 0.03,
	}
}

func (db *DirectBuffer) Stroke(width float32) {
	db.stroke = width
}

func (db *DirectBuffer) Shaded() {
	db.shaded = true
}

func (db *DirectBuffer) Unshaded() {
	db.shaded = false
}

func (db *DirectBuffer) Color(r, g, b float32) {
	db.color = mgl32.Vec3{r, g, b}
}

func (db *DirectBuffer) Color3(c mgl32.Vec3) {
	db.color = c
}

func (db *DirectBuffer) Vert(pos mgl32.Vec3) {
	var normal mgl32.Vec3
	if db.shaded {
		normal = db.normal
	}
	db.data = append(db.data, pos[0], pos[1], pos[2], db.color[0], db.color[1], db.color[2], normal[0], normal[1], normal[2])
}

// A--B
// | /
// C
func (db *DirectBuffer) Tri(a, b, c mgl32.Vec3) {
	if db.shaded && db.autoShade {
		db.normal = c.Sub(a).Cross(b.Sub(a)).Normalize()
	}
	db.Vert(a)
	db.Vert(c)
	db.Vert(b)
}

// A--B
// |  |
// C--D
func (db *DirectBuffer) Quad(a, b, c, d mgl32.Vec3) {
	db.Tri(a, b, c)
	db.Tri(d, c, b)
}

// A--B
func (db *DirectBuffer) Line(a, b mgl32.Vec3) {
	v := b.Sub(a)
	if v.Len() < 1e-6 {
		return
	}
	normal := libutil.Perpendicular(v).Normalize().Mul(db.stroke / 2)
	bitangent := normal.Cross(v).Normalize().Mul(db.stroke / 2)
	for _, off := range [2]mgl32.Vec3{normal, bitangent} {
		db.Quad(a.Add(off), b.Add(off), a.Sub(off), b.Sub(off))
	}
}

// Polyline connects consecutive points.
func (db *DirectBuffer) Polyline(points []mgl32.Vec3) {
	for i := 1; i < len(points); i++ {
		db.Line(points[i-1], points[i])
	}
}

// Axes draws the x, y and z axes of m in red, green and blue.
func (db *DirectBuffer) Axes(m mgl32.Mat4, length float32) {
	prev := db.color
	origin := m.Col(3).Vec3()
	for i, c := range [3]mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
		db.Color3(c)
		db.Line(origin, origin.Add(m.Col(i).Vec3().Normalize().Mul(length)))
	}
	db.color = prev
}

func (db *DirectBuffer) circleSides(r float32) int {
	return 12 + int(16*r)
}

// center, radius
func (db *DirectBuffer) UvSphere(c mgl32.Vec3, r float32) {
	db.autoShade = true
	rings, segments := db.circleSides(r)/2, db.circleSides(r)

	dTheta := math32.Pi / float32(rings)
	dPhi := -2 * math32.Pi / float32(segments)

	prevRing := make([]mgl32.Vec3, segments)
	currRing := make([]mgl32.Vec3, segments)

	for ring := 0; ring <= rings; ring++ {
		theta := float32(ring) * dTheta
		for segment := 0; segment < segments; segment++ {
			phi := float32(segment) * dPhi
			currRing[segment] = c.Add(mgl32.Vec3{
				r * math32.Sin(theta) * math32.Cos(phi),
				r * math32.Cos(theta),
				r * math32.Sin(theta) * math32.Sin(phi),
			})
			if segment > 0 && ring > 0 {
				db.Quad(currRing[segment-1], currRing[segment], prevRing[segment-1], prevRing[segment])
			}
		}
		if ring > 0 {
			db.Quad(currRing[segments-1], currRing[0], prevRing[segments-1], prevRing[0])
		}
		currRing, prevRing = prevRing, currRing
	}
	db.autoShade = false
}

func (db *DirectBuffer) Draw(viewProj mgl32.Mat4, camPos mgl32.Vec3) {
	if len(db.data) == 0 {
		return
	}

	if db.vbo.Grow(len(db.data) * 4) {
		db.vao.ReBindBuffer(0, db.vbo)
	}
	db.vbo.Write(0, db.data)

	db.vao.Bind()
	db.shader.Bind()
	db.shader.Get(gl.VERTEX_SHADER).SetUniform("u_view_projection_mat", viewProj)
	db.shader.Get(gl.FRAGMENT_SHADER).SetUniform("u_camera_position", camPos)
	State.SetEnabled(DepthTest, Multisample)
	State.DepthFunc(DepthFuncLEqual)
	State.DepthMask(true)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(db.data)/directVertexFloats))

	db.Clear()
}

func (db *DirectBuffer) Clear() {
	db.data = db.data[:0]
}

func (db *DirectBuffer) Delete() {
	db.vao.Delete()
	db.vbo.Delete()
}
