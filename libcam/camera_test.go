package libcam_test

import (
	"gl-animation/libcam"
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-4)

func newCamera() *libcam.Camera {
	return libcam.New(mgl32.Vec3{0, 0, 3}, libcam.DefaultOptions())
}

func TestDefaultOrientation(t *testing.T) {
	cam := newCamera()
	if diff := cmp.Diff(mgl32.Vec3{0, 0, -1}, cam.Front, approx); diff != "" {
		t.Errorf("yaw -90 should look down -z (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mgl32.Vec3{1, 0, 0}, cam.Right, approx); diff != "" {
		t.Errorf("right vector mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mgl32.Vec3{0, 1, 0}, cam.Up, approx); diff != "" {
		t.Errorf("up vector mismatch (-want +got):\n%s", diff)
	}
}

func TestMouseInputIsClamped(t *testing.T) {
	cam := newCamera()
	cam.ProcessMouseMovement(0, 10000, true)
	if cam.Pitch != 89 {
		t.Errorf("pitch should be 89 but was %v", cam.Pitch)
	}
	cam.ProcessMouseScroll(100)
	if cam.Zoom != 1 {
		t.Errorf("zoom should be 1 but was %v", cam.Zoom)
	}
	cam.ProcessMouseScroll(-100)
	if cam.Zoom != 45 {
		t.Errorf("zoom should be 45 but was %v", cam.Zoom)
	}
}

func TestProcessKeyboard(t *testing.T) {
	cam := newCamera()
	cam.ProcessKeyboard(libcam.Forward, 0.4)
	want := mgl32.Vec3{0, 0, 2}
	if diff := cmp.Diff(want, cam.Position, approx); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	cam.ProcessKeyboard(libcam.Right, 0.4)
	want = mgl32.Vec3{1, 0, 2}
	if diff := cmp.Diff(want, cam.Position, approx); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestLookAtSyncsEulerAngles(t *testing.T) {
	cam := libcam.NewLookingAt(mgl32.Vec3{3, 0, 0}, mgl32.Vec3{}, libcam.DefaultOptions())
	if diff := cmp.Diff(mgl32.Vec3{-1, 0, 0}, cam.Front, approx); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if math32.Abs(math32.Abs(cam.Yaw)-180) > 1e-3 {
		t.Errorf("yaw should be 180 but was %v", cam.Yaw)
	}

	// mouse look must continue from the LookAt direction
	cam.ProcessMouseMovement(0, 0, true)
	if diff := cmp.Diff(mgl32.Vec3{-1, 0, 0}, cam.Front, approx); diff != "" {
		t.Errorf("front changed after a zero mouse move (-want +got):\n%s", diff)
	}
}

func TestAnimationsRunInOrder(t *testing.T) {
	cam := newCamera()
	cam.Enqueue(libcam.TranslateZ, libcam.TranslateR)
	if !cam.Busy() {
		t.Fatalf("camera should be busy")
	}

	cam.Animate(10)
	cam.Animate(11)
	if diff := cmp.Diff(mgl32.Vec3{0, 0, 4.75}, cam.Position, approx); diff != "" {
		t.Errorf("halfway through translate +z (-want +got):\n%s", diff)
	}
	if p := cam.Progress(11); p != 0.5 {
		t.Errorf("progress should be 0.5 but was %v", p)
	}

	cam.Animate(12.5)
	if diff := cmp.Diff(mgl32.Vec3{0, 0, 6.5}, cam.Position, approx); diff != "" {
		t.Errorf("final pose of translate +z (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]libcam.Animation{libcam.TranslateR}, cam.Queue()); diff != "" {
		t.Errorf("finished animation should be removed (-want +got):\n%s", diff)
	}

	cam.Animate(20)
	cam.Animate(22)
	if diff := cmp.Diff(mgl32.Vec3{3.5, 0, 6.5}, cam.Position, approx); diff != "" {
		t.Errorf("final pose of translate +x (-want +got):\n%s", diff)
	}
	if cam.Busy() {
		t.Errorf("queue should be empty but was %v", cam.Queue())
	}

	// an idle camera is left alone
	before := *cam
	cam.Animate(30)
	if cam.Position != before.Position || cam.Front != before.Front {
		t.Errorf("idle camera moved")
	}
}

func TestTranslateFacesPivot(t *testing.T) {
	cam := newCamera()
	cam.Enqueue(libcam.TranslateL)
	cam.Animate(0)
	cam.Animate(2)
	want := mgl32.Vec3{3.5, 0, -3}.Normalize()
	if diff := cmp.Diff(want, cam.Front, approx); diff != "" {
		t.Errorf("camera should face the pivot (-want +got):\n%s", diff)
	}
}

func TestRotatePoint(t *testing.T) {
	opts := libcam.DefaultOptions()
	opts.RotationSpeed = math32.Pi / 2
	cam := libcam.New(mgl32.Vec3{0, 0, 3}, opts)
	cam.Enqueue(libcam.RotatePoint)
	cam.Animate(0)
	cam.Animate(2)
	if diff := cmp.Diff(mgl32.Vec3{3, 0, 0}, cam.Position, approx); diff != "" {
		t.Errorf("position after a quarter orbit (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mgl32.Vec3{-1, 0, 0}, cam.Front, approx); diff != "" {
		t.Errorf("front after a quarter orbit (-want +got):\n%s", diff)
	}
}

func TestRotateRolls(t *testing.T) {
	opts := libcam.DefaultOptions()
	opts.RotationSpeed = math32.Pi / 2
	cam := libcam.New(mgl32.Vec3{0, 0, 3}, opts)
	cam.Enqueue(libcam.Rotate)
	cam.Animate(0)
	cam.Animate(2)

	if diff := cmp.Diff(mgl32.Vec3{0, 0, -1}, cam.Front, approx); diff != "" {
		t.Errorf("roll should keep the view direction (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mgl32.Vec3{0, 0, 3}, cam.Position, approx); diff != "" {
		t.Errorf("roll should keep the position (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mgl32.Vec3{0, 1, 0}, cam.Right, approx); diff != "" {
		t.Errorf("right after a quarter roll (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mgl32.Vec3{-1, 0, 0}, cam.Up, approx); diff != "" {
		t.Errorf("up after a quarter roll (-want +got):\n%s", diff)
	}
}

func TestSplineAnimations(t *testing.T) {
	cam := newCamera()
	cam.Enqueue(libcam.CatmullRom)
	cam.Animate(0)
	cam.Animate(1)
	if diff := cmp.Diff(cam.Path[2], cam.Position, approx); diff != "" {
		t.Errorf("catmull-rom halfway should pass the middle point (-want +got):\n%s", diff)
	}
	cam.Animate(2)
	if diff := cmp.Diff(cam.Path[4], cam.Position, approx); diff != "" {
		t.Errorf("catmull-rom should end on the last point (-want +got):\n%s", diff)
	}

	cam.Enqueue(libcam.BSpline)
	cam.Animate(2)
	cam.Animate(4)
	// (p3 + 4 p4 + p4) / 6
	want := mgl32.Vec3{-0.5, -0.5, 2.5}
	if diff := cmp.Diff(want, cam.Position, approx); diff != "" {
		t.Errorf("b-spline end (-want +got):\n%s", diff)
	}
}

func TestBezierConsumesPath(t *testing.T) {
	cam := newCamera()
	path := libcam.DefaultPath()

	cam.Enqueue(libcam.Bezier, libcam.Bezier, libcam.Bezier)
	cam.Animate(0)
	cam.Animate(2)
	if diff := cmp.Diff(path[2], cam.Position, approx); diff != "" {
		t.Errorf("first segment should end on the third point (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(path[2:], cam.BezierPath()); diff != "" {
		t.Errorf("first segment should consume two points (-want +got):\n%s", diff)
	}

	cam.Animate(2)
	cam.Animate(4)
	if diff := cmp.Diff(path[4], cam.Position, approx); diff != "" {
		t.Errorf("second segment end (-want +got):\n%s", diff)
	}
	if n := len(cam.BezierPath()); n != 1 {
		t.Errorf("one point should remain but %d did", n)
	}

	// with a single point left nothing moves
	pos := cam.Position
	cam.Animate(4)
	cam.Animate(6)
	if cam.Position != pos {
		t.Errorf("exhausted bezier path should not move the camera")
	}
	if cam.Busy() {
		t.Errorf("no-op animation should still leave the queue")
	}

	cam.ResetBezierPath()
	if diff := cmp.Diff(path, cam.BezierPath()); diff != "" {
		t.Errorf("reset path (-want +got):\n%s", diff)
	}
}

func TestBezierLinearSegment(t *testing.T) {
	opts := libcam.DefaultOptions()
	opts.Path = []mgl32.Vec3{{0, 0, 3}, {2, 0, 3}}
	cam := libcam.New(mgl32.Vec3{0, 0, 3}, opts)
	cam.Enqueue(libcam.Bezier)
	cam.Animate(0)
	cam.Animate(1)
	if diff := cmp.Diff(mgl32.Vec3{1, 0, 3}, cam.Position, approx); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	cam.Animate(2)
	if n := len(cam.BezierPath()); n != 0 {
		t.Errorf("linear segment should consume all points but %d remain", n)
	}
}

func TestClearQueue(t *testing.T) {
	cam := newCamera()
	cam.Enqueue(libcam.TranslateZ, libcam.Rotate)
	cam.Animate(0)
	cam.Animate(1)
	cam.ClearQueue()
	if cam.Busy() {
		t.Errorf("queue should be empty")
	}
	if p := cam.Progress(1.5); p != 0 {
		t.Errorf("progress should be 0 when idle but was %v", p)
	}
}

func TestBasisMatrix(t *testing.T) {
	r, u, f, p := mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{4, 5, 6}
	m := libcam.BasisMatrix(r, u, f, p)
	if got := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3(); got != p {
		t.Errorf("origin should map to %v but was %v", p, got)
	}
	r2, u2, f2, p2 := libcam.Directions(m)
	if r2 != r || u2 != u || f2 != f || p2 != p {
		t.Errorf("directions should be %v %v %v %v but were %v %v %v %v", r, u, f, p, r2, u2, f2, p2)
	}
}

func TestAnimationString(t *testing.T) {
	if s := libcam.CatmullRom.String(); s != "catmull-rom" {
		t.Errorf("should be catmull-rom but was %q", s)
	}
	if s := libcam.Animation(42).String(); s != "Animation(42)" {
		t.Errorf("should be Animation(42) but was %q", s)
	}
}

func TestRig(t *testing.T) {
	opts := libcam.DefaultOptions()
	rig := libcam.NewRig(libcam.New(mgl32.Vec3{0, 0, 3}, opts))
	if rig.Remove() {
		t.Fatalf("the last camera should not be removable")
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 3; i++ {
		cam := rig.AddRandom(rng, opts)
		for k, v := range cam.Position {
			if v < 0 || v >= 3 && !(k == 2 && v == 3) {
				t.Errorf("coordinate %d of a random camera should be in [0, 3) but was %v", k, v)
			}
		}
		if rig.Current() != cam {
			t.Errorf("added camera should become current")
		}
	}
	if rig.Len() != 4 || rig.Index() != 3 {
		t.Fatalf("should have 4 cameras with index 3 but had %d with index %d", rig.Len(), rig.Index())
	}

	if !rig.Remove() {
		t.Fatalf("remove should succeed")
	}
	if rig.Index() != 2 {
		t.Errorf("removing the last camera should move the index back to 2 but was %d", rig.Index())
	}

	rig.Next()
	if rig.Index() != 0 {
		t.Errorf("next should wrap around to 0 but was %d", rig.Index())
	}

	rig.Current().Enqueue(libcam.TranslateZ)
	rig.Cameras()[1].Enqueue(libcam.TranslateZ)
	rig.Animate(0)
	rig.Animate(2)
	for i, cam := range rig.Cameras() {
		if cam.Busy() {
			t.Errorf("camera %d should have finished its queue", i)
		}
	}
}
