package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"gl-animation/assets"
	"gl-animation/libapp"
	"gl-animation/libcam"
	"gl-animation/libcfg"
	"gl-animation/libcurve"
	"gl-animation/libgl"
	"gl-animation/libscn"
	"gl-animation/libui"
	"gl-animation/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	i "github.com/inkyblackness/imgui-go/v4"
)

var help = []string{
	"WASD: move, mouse: look, scroll: zoom",
	"I / K: translate -z / +z",
	"J / L: translate -x / +x",
	"F1: roll, F7: orbit the pivot",
	"F9: b-spline, F10: bezier, F11: catmull-rom",
	"R: reset bezier path, Backspace: clear queue",
	"1: new camera, Delete: remove camera, N: next camera",
	"Esc: quit",
}

var moveKeys = map[glfw.Key]libcam.Movement{
	glfw.KeyW: libcam.Forward,
	glfw.KeyS: libcam.Backward,
	glfw.KeyA: libcam.Left,
	glfw.KeyD: libcam.Right,
}

var animationKeys = map[glfw.Key]libcam.Animation{
	glfw.KeyI:   libcam.TranslateMZ,
	glfw.KeyK:   libcam.TranslateZ,
	glfw.KeyJ:   libcam.TranslateL,
	glfw.KeyL:   libcam.TranslateR,
	glfw.KeyF1:  libcam.Rotate,
	glfw.KeyF7:  libcam.RotatePoint,
	glfw.KeyF9:  libcam.BSpline,
	glfw.KeyF10: libcam.Bezier,
	glfw.KeyF11: libcam.CatmullRom,
}

var previewColors = map[libcurve.Kind]mgl32.Vec3{
	libcurve.KindCatmullRom: {0.9, 0.9, 0.3},
	libcurve.KindBSpline:    {0.3, 0.9, 0.9},
	libcurve.KindBezier:     {0.9, 0.4, 0.9},
}

type scene struct {
	cfg     *libcfg.Config
	rig     *libcam.Rig
	rng     *rand.Rand
	meshes  *libgl.MeshRenderer
	direct  *libgl.DirectBuffer
	toolbar  *libui.Toolbar
	previews []libcurve.Kind
	// used for cameras added at runtime
	camOpts libcam.Options
}

func main() {
	args := libapp.ParseFlags()
	cfg, err := libcfg.Load(args.Config)
	libapp.Check(err)

	win, err := libapp.NewWindow("Cameras", cfg.Window, args)
	libapp.Check(err)
	defer win.Destroy()

	input := libapp.NewInput(win.Window)
	gui := libui.NewImGui(newPipeline(assets.ImguiVshSrc, assets.ImguiFshSrc))
	defer gui.Delete()
	gui.OnScroll = input.AddScroll

	s := setup(cfg)
	defer s.meshes.Delete()
	defer s.direct.Delete()
	s.toolbar.SetCursorFree(win.Window, false)

	win.Show()
	for !win.ShouldClose() {
		glfw.PollEvents()
		input.Update(win.Window)
		s.update(win, input, gui)
		s.draw(win)
		i.NewFrame()
		s.toolbar.Draw(input.TimeDelta())
		gui.Draw()
		win.SwapBuffers()
	}
}

func newPipeline(vsh, fsh string) libgl.UnboundShaderPipeline {
	pipeline, err := libgl.NewPipelineFromSource(vsh, fsh)
	libapp.Check(err)
	return pipeline
}

func setup(cfg *libcfg.Config) *scene {
	lib := libscn.NewLibrary()
	if cfg.Assets.MeshDir != "" {
		if err := lib.LoadDir(cfg.Assets.MeshDir); err != nil {
			log.Printf("Some meshes could not be loaded: %v\n", err)
		}
	}

	opts := cfg.Camera.Options()
	rig := libcam.NewRig(libcam.New(mgl32.Vec3{0, 0, 3}, opts))
	rig.Add(libcam.NewLookingAt(mgl32.Vec3{3, 2, 3}, opts.Pivot, opts))
	rig.Next()

	s := &scene{
		cfg:      cfg,
		rig:      rig,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		meshes:   libgl.NewMeshRenderer(newPipeline(assets.MeshVshSrc, assets.MeshFshSrc), lib),
		direct:   libgl.NewDirectBuffer(newPipeline(assets.DirectVshSrc, assets.DirectFshSrc)),
		toolbar:  libui.NewToolbar("Cameras", cfg.Window.Background),
		previews: cfg.Camera.PreviewKinds(),
		camOpts:  opts,
	}
	s.toolbar.Help = help
	s.toolbar.AddSection("Camera", s.drawCameraUi)
	return s
}

func (s *scene) update(win *libapp.Window, input *libapp.Input, gui *libui.ImGui) {
	if input.IsKeyTap(glfw.KeyEscape) {
		win.SetShouldClose(true)
	}
	if input.IsKeyTap(glfw.KeyLeftAlt) {
		s.toolbar.SetCursorFree(win.Window, !s.toolbar.CursorFree())
	}

	cam := s.rig.Current()
	dt := input.TimeDelta()

	if !gui.WantsKeyboard() {
		for key, dir := range moveKeys {
			if input.IsKeyDown(key) {
				cam.ProcessKeyboard(dir, dt)
			}
		}

		for key, anim := range animationKeys {
			if input.IsKeyTap(key) {
				log.Printf("Queued %v on camera %d\n", anim, s.rig.Index())
				cam.Enqueue(anim)
			}
		}

		if input.IsKeyTap(glfw.KeyR) {
			cam.ResetBezierPath()
		}
		if input.IsKeyTap(glfw.KeyBackspace) {
			cam.ClearQueue()
		}
		if input.IsKeyTap(glfw.Key1) {
			s.rig.AddRandom(s.rng, s.camOpts)
			log.Printf("Added camera %d at %v\n", s.rig.Index(), s.rig.Current().Position)
		}
		if input.IsKeyTap(glfw.KeyDelete) && !s.rig.Remove() {
			log.Println("The last camera cannot be removed")
		}
		if input.IsKeyTap(glfw.KeyN) {
			s.rig.Next()
		}
	}

	// the rig may have changed
	cam = s.rig.Current()
	if !s.toolbar.CursorFree() {
		delta := input.CursorDelta()
		cam.ProcessMouseMovement(delta.X(), -delta.Y(), true)
	}
	if scroll := input.ScrollDelta(); scroll.Y() != 0 {
		cam.ProcessMouseScroll(scroll.Y())
	}

	s.rig.Animate(input.Time())
}

func (s *scene) draw(win *libapp.Window) {
	gl.PushDebugGroup(gl.DEBUG_SOURCE_APPLICATION, 1, -1, gl.Str("Draw Scene\x00"))
	defer gl.PopDebugGroup()

	cam := s.rig.Current()
	bg := s.toolbar.BackgroundColor()
	libgl.State.Viewport(0, 0, win.Width, win.Height)
	libgl.State.Disable(libgl.ScissorTest)
	libgl.State.DepthMask(true)
	libgl.State.ClearColor(bg[0], bg[1], bg[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	viewProj := cam.ProjectionMatrix(win.Aspect(), s.cfg.Camera.Near, s.cfg.Camera.Far).Mul4(cam.ViewMatrix())

	shading := libgl.Shading{Flat: s.toolbar.FlatShading, Normals: s.toolbar.ShowNormals}
	if err := s.meshes.SetShading(shading); err != nil {
		log.Printf("Could not switch shading: %v\n", err)
	}
	s.meshes.Begin(viewProj, cam.Position, s.toolbar.Wireframe)
	s.meshes.Draw("torus", mgl32.HomogRotate3DX(90*libutil.Deg2Rad), mgl32.Vec3{0.8, 0.5, 0.2}, false)
	s.meshes.Draw("cube", mgl32.Translate3D(0, -0.75, 0).Mul4(mgl32.Scale3D(2, 0.1, 2)), mgl32.Vec3{0.5, 0.5, 0.55}, false)
	s.meshes.Draw("sphere", mgl32.Scale3D(0.4, 0.4, 0.4), mgl32.Vec3{0.2, 0.6, 0.9}, false)
	s.meshes.End()

	if s.toolbar.ShowPaths {
		s.drawPaths(cam)
	}
	for n, other := range s.rig.Cameras() {
		if other == cam {
			continue
		}
		s.direct.Color3(libutil.IndexColor(n))
		s.direct.Shaded()
		s.direct.UvSphere(other.Position, 0.1)
		s.direct.Unshaded()
		s.direct.Axes(libcam.BasisMatrix(other.Right, other.Up, other.Front.Mul(-1), other.Position), 0.3)
	}
	s.direct.Draw(viewProj, cam.Position)
}

func (s *scene) drawPaths(cam *libcam.Camera) {
	s.direct.Stroke(0.02)
	for _, kind := range s.previews {
		s.direct.Color3(previewColors[kind])
		if kind != libcurve.KindBezier {
			s.direct.Polyline(libcurve.Path{Kind: kind, Points: cam.Path}.Sample(64))
			continue
		}
		bezier := cam.BezierPath()
		for n := 0; n+1 < len(bezier); n += 2 {
			end := n + 2
			if end >= len(bezier) {
				end = n + 1
			}
			s.direct.Polyline(libcurve.Path{Kind: kind, Points: bezier[n : end+1]}.Sample(32))
		}
	}

	s.direct.Shaded()
	s.direct.Color(1, 1, 1)
	for _, p := range cam.Path {
		s.direct.UvSphere(p, 0.05)
	}
	s.direct.Unshaded()
}

func (s *scene) drawCameraUi() {
	cam := s.rig.Current()
	i.Text(fmt.Sprintf("Camera %d of %d", s.rig.Index()+1, s.rig.Len()))
	i.Text(fmt.Sprintf("Position %.2f %.2f %.2f", cam.Position[0], cam.Position[1], cam.Position[2]))
	queue := cam.Queue()
	if len(queue) == 0 {
		i.Text("Idle")
	} else {
		i.Text(fmt.Sprintf("%v (%.0f%%), %d queued", queue[0], cam.Progress(glfw.GetTime())*100, len(queue)-1))
	}
	i.SliderFloat("Duration", &cam.Duration, 0.25, 10)
	i.SliderFloat("Step", &cam.Step, 0.5, 10)
	i.SliderFloat("Speed", &cam.MovementSpeed, 0.5, 20)
	deg := cam.RotationSpeed * libutil.Rad2Deg
	if i.SliderFloat("Rotation", &deg, 0, 1080) {
		cam.RotationSpeed = deg * libutil.Deg2Rad
	}
	if i.Button("Clear Queue") {
		cam.ClearQueue()
	}
	i.SameLine()
	if i.Button("Reset Bezier") {
		cam.ResetBezierPath()
	}
}
