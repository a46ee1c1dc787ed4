package main

import (
	"fmt"
	"log"

	"gl-animation/assets"
	"gl-animation/libapp"
	"gl-animation/libcam"
	"gl-animation/libcfg"
	"gl-animation/libgl"
	"gl-animation/libscn"
	"gl-animation/libui"
	"gl-animation/libutil"
	"gl-animation/libxform"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	i "github.com/inkyblackness/imgui-go/v4"
)

var help = []string{
	"1 / 2 / 3: add cube / sphere / torus",
	"N: select next, Delete: remove selected",
	"WASD QE: translate",
	"F1 / F2 / F3: rotate about x / y / z",
	"4 / 5 / 6 / 7: shear +x / -x / +y / -y",
	"PageUp / PageDown: grow / shrink",
	"F7: rotate about the origin",
	"F9: bezier, F10: b-spline, F11: catmull-rom",
	"F12: toggle looping",
	"Esc: quit",
}

var addKeys = map[glfw.Key]string{
	glfw.Key1: "cube",
	glfw.Key2: "sphere",
	glfw.Key3: "torus",
}

var translateKeys = map[glfw.Key]libxform.Direction{
	glfw.KeyW: libxform.Up,
	glfw.KeyS: libxform.Down,
	glfw.KeyA: libxform.Left,
	glfw.KeyD: libxform.Right,
	glfw.KeyQ: libxform.In,
	glfw.KeyE: libxform.Out,
}

var rotateKeys = map[glfw.Key]libxform.Axis{
	glfw.KeyF1: libxform.AxisX,
	glfw.KeyF2: libxform.AxisY,
	glfw.KeyF3: libxform.AxisZ,
}

var shearKeys = map[glfw.Key]libxform.Shear{
	glfw.Key4: libxform.ShearXPos,
	glfw.Key5: libxform.ShearXNeg,
	glfw.Key6: libxform.ShearYPos,
	glfw.Key7: libxform.ShearYNeg,
}

type demo struct {
	cfg     *libcfg.Config
	scene   *libxform.Scene
	camera  *libcam.Camera
	meshes  *libgl.MeshRenderer
	direct  *libgl.DirectBuffer
	toolbar *libui.Toolbar
	names   []string
}

func main() {
	args := libapp.ParseFlags()
	cfg, err := libcfg.Load(args.Config)
	libapp.Check(err)

	win, err := libapp.NewWindow("Transformations", cfg.Window, args)
	libapp.Check(err)
	defer win.Destroy()

	input := libapp.NewInput(win.Window)
	gui := libui.NewImGui(newPipeline(assets.ImguiVshSrc, assets.ImguiFshSrc))
	defer gui.Delete()
	gui.OnScroll = input.AddScroll

	d := setup(cfg)
	defer d.meshes.Delete()
	defer d.direct.Delete()
	d.toolbar.SetCursorFree(win.Window, true)

	win.Show()
	for !win.ShouldClose() {
		glfw.PollEvents()
		input.Update(win.Window)
		d.update(win, input, gui)
		d.draw(win)
		i.NewFrame()
		d.toolbar.Draw(input.TimeDelta())
		gui.Draw()
		win.SwapBuffers()
	}
}

func newPipeline(vsh, fsh string) libgl.UnboundShaderPipeline {
	pipeline, err := libgl.NewPipelineFromSource(vsh, fsh)
	libapp.Check(err)
	return pipeline
}

func setup(cfg *libcfg.Config) *demo {
	lib := libscn.NewLibrary()
	if cfg.Assets.MeshDir != "" {
		if err := lib.LoadDir(cfg.Assets.MeshDir); err != nil {
			log.Printf("Some meshes could not be loaded: %v\n", err)
		}
	}

	opts := cfg.Model.Options()
	scene := &libxform.Scene{}

	orbiter := libxform.NewModel("cube", mgl32.Vec3{6, 0, 0}, opts)
	orbiter.Looping = true
	orbiter.RotateAbout(mgl32.Vec3{})
	scene.Add(orbiter)

	walker := libxform.NewModel("sphere", mgl32.Vec3{0, 0, 0}, opts)
	walker.Looping = true
	walker.Translate(libxform.Right)
	walker.Rotate(libxform.AxisY)
	scene.Add(walker)

	pulser := libxform.NewModel("torus", mgl32.Vec3{-4, 0, 0}, opts)
	pulser.Looping = true
	pulser.Scale(true)
	scene.Add(pulser)

	camOpts := cfg.Camera.Options()
	d := &demo{
		cfg:     cfg,
		scene:   scene,
		camera:  libcam.NewLookingAt(mgl32.Vec3{0, 6, 20}, camOpts.Pivot, camOpts),
		meshes:  libgl.NewMeshRenderer(newPipeline(assets.MeshVshSrc, assets.MeshFshSrc), lib),
		direct:  libgl.NewDirectBuffer(newPipeline(assets.DirectVshSrc, assets.DirectFshSrc)),
		toolbar: libui.NewToolbar("Transformations", cfg.Window.Background),
		names:   lib.Names(),
	}
	d.toolbar.Help = help
	d.toolbar.AddSection("Model", d.drawModelUi)
	return d
}

func (d *demo) update(win *libapp.Window, input *libapp.Input, gui *libui.ImGui) {
	if input.IsKeyTap(glfw.KeyEscape) {
		win.SetShouldClose(true)
	}
	if input.IsKeyTap(glfw.KeyLeftAlt) {
		d.toolbar.SetCursorFree(win.Window, !d.toolbar.CursorFree())
	}

	if !gui.WantsKeyboard() {
		for key, mesh := range addKeys {
			if input.IsKeyTap(key) {
				d.scene.Add(libxform.NewModel(mesh, mgl32.Vec3{}, d.cfg.Model.Options()))
				log.Printf("Added %v, %d models\n", mesh, d.scene.Len())
			}
		}
		if input.IsKeyTap(glfw.KeyN) {
			d.scene.SelectNext()
		}
		if input.IsKeyTap(glfw.KeyDelete) {
			if m := d.scene.RemoveSelected(); m != nil {
				log.Printf("Removed %v, %d models\n", m.Mesh, d.scene.Len())
			}
		}
		if m := d.scene.Selected(); m != nil {
			d.control(m, input)
		}
	}

	if scroll := input.ScrollDelta(); scroll.Y() != 0 {
		d.camera.ProcessMouseScroll(scroll.Y())
	}

	d.scene.Update(input.Time())
}

func (d *demo) control(m *libxform.Model, input *libapp.Input) {
	for key, dir := range translateKeys {
		if input.IsKeyTap(key) {
			m.Translate(dir)
		}
	}
	for key, axis := range rotateKeys {
		if input.IsKeyTap(key) {
			m.Rotate(axis)
		}
	}
	for key, mode := range shearKeys {
		if input.IsKeyTap(key) {
			m.Shear(mode)
		}
	}
	if input.IsKeyTap(glfw.KeyPageUp) {
		m.Scale(true)
	}
	if input.IsKeyTap(glfw.KeyPageDown) {
		m.Scale(false)
	}
	if input.IsKeyTap(glfw.KeyF7) {
		m.RotateAbout(mgl32.Vec3{})
	}
	if input.IsKeyTap(glfw.KeyF9) {
		m.FollowBezier()
	}
	if input.IsKeyTap(glfw.KeyF10) {
		m.FollowBSpline()
	}
	if input.IsKeyTap(glfw.KeyF11) {
		m.FollowCatmullRom()
	}
	if input.IsKeyTap(glfw.KeyF12) {
		m.ToggleLooping()
	}
}

func (d *demo) draw(win *libapp.Window) {
	gl.PushDebugGroup(gl.DEBUG_SOURCE_APPLICATION, 1, -1, gl.Str("Draw Scene\x00"))
	defer gl.PopDebugGroup()

	bg := d.toolbar.BackgroundColor()
	libgl.State.Viewport(0, 0, win.Width, win.Height)
	libgl.State.Disable(libgl.ScissorTest)
	libgl.State.DepthMask(true)
	libgl.State.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	cam := d.camera
	viewProj := cam.ProjectionMatrix(win.Aspect(), d.cfg.Camera.Near, d.cfg.Camera.Far).Mul4(cam.ViewMatrix())

	selected := d.scene.Selected()
	shading := libgl.Shading{Flat: d.toolbar.FlatShading, Normals: d.toolbar.ShowNormals}
	if err := d.meshes.SetShading(shading); err != nil {
		log.Printf("Could not switch shading: %v\n", err)
	}
	d.meshes.Begin(viewProj, cam.Position, d.toolbar.Wireframe)
	for n, m := range d.scene.Models() {
		d.meshes.Draw(m.Mesh, m.Matrix, libutil.IndexColor(n), m == selected)
	}
	d.meshes.End()

	d.direct.Stroke(0.03)
	d.direct.Unshaded()
	d.direct.Axes(mgl32.Ident4(), 1)
	if d.toolbar.ShowPaths {
		for n, m := range d.scene.Models() {
			path, ok := m.Path()
			if !ok {
				continue
			}
			d.direct.Color3(libutil.IndexColor(n))
			d.direct.Polyline(path.Sample(64))
			for _, p := range path.Points {
				d.direct.UvSphere(p, 0.1)
			}
		}
	}
	if selected != nil {
		d.direct.Axes(selected.Matrix, 1.5)
	}
	d.direct.Draw(viewProj, cam.Position)
}

func (d *demo) drawModelUi() {
	m := d.scene.Selected()
	if m == nil {
		i.Text("No models, press 1, 2 or 3")
		return
	}
	i.Text(fmt.Sprintf("Model %d of %d: %v", d.scene.SelectedIndex()+1, d.scene.Len(), m.Mesh))
	if i.BeginCombo("Mesh", m.Mesh) {
		for _, name := range d.names {
			if i.SelectableV(name, name == m.Mesh, 0, i.Vec2{}) {
				m.Mesh = name
			}
		}
		i.EndCombo()
	}
	i.Checkbox("Looping", &m.Looping)
	i.SliderFloat("Step", &m.Options.Step, 0.001, 0.1)
	deg := m.Options.Angle * libutil.Rad2Deg
	if i.SliderFloat("Angle", &deg, 0, 45) {
		m.Options.Angle = deg * libutil.Deg2Rad
	}
	i.SliderFloat("Shear", &m.Options.Shear, 0, 0.1)
	if m.Active() {
		i.Text("Animating")
	} else {
		i.Text("Idle")
	}
	if i.Button("Reset") {
		initial := m.Initial
		*m = *libxform.NewModel(m.Mesh, initial, m.Options)
	}
}
