package libcam

import (
	"gl-animation/libutil"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
)

type Options struct {
	// in degrees
	Yaw, Pitch       float32
	MovementSpeed    float32
	MouseSensitivity float32
	// vertical fov in degrees
	Zoom float32
	// radians covered by one Rotate or RotatePoint animation
	RotationSpeed float32
	// distance covered by one Translate* animation
	Step float32
	// seconds per queued animation
	Duration float32
	// look target and orbit center of the animations
	Pivot mgl32.Vec3
	Path  []mgl32.Vec3
}

func DefaultPath() []mgl32.Vec3 {
	return []mgl32.Vec3{
		{0, 0, 3},
		{3, 3, 0},
		{0, 0, -3},
		{-3, -3, 0},
		{0, 0, 3},
	}
}

func DefaultOptions() Options {
	return Options{
		Yaw:              -90,
		Pitch:            0,
		MovementSpeed:    2.5,
		MouseSensitivity: 0.1,
		Zoom:             45,
		RotationSpeed:    60 * 12 * libutil.Deg2Rad,
		Step:             3.5,
		Duration:         2,
		Path:             DefaultPath(),
	}
}

type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3
	WorldUp  mgl32.Vec3
	// Euler angles in degrees
	Yaw, Pitch float32

	MovementSpeed    float32
	MouseSensitivity float32
	Zoom             float32
	RotationSpeed    float32
	Step             float32
	Duration         float32
	Pivot            mgl32.Vec3
	Path             []mgl32.Vec3

	// control points left for Bezier animations, consumed as they finish
	bezierPath []mgl32.Vec3

	queue   []Animation
	running bool
	start   float64
	end     float64
	from    snapshot
}

type snapshot struct {
	position, right, up, front mgl32.Vec3
}

func New(position mgl32.Vec3, opts Options) *Camera {
	cam := &Camera{
		Position:         position,
		WorldUp:          mgl32.Vec3{0, 1, 0},
		Right:            mgl32.Vec3{1, 0, 0},
		Yaw:              opts.Yaw,
		Pitch:            opts.Pitch,
		MovementSpeed:    opts.MovementSpeed,
		MouseSensitivity: opts.MouseSensitivity,
		Zoom:             opts.Zoom,
		RotationSpeed:    opts.RotationSpeed,
		Step:             opts.Step,
		Duration:         opts.Duration,
		Pivot:            opts.Pivot,
		Path:             append([]mgl32.Vec3(nil), opts.Path...),
	}
	cam.ResetBezierPath()
	cam.updateVectors()
	return cam
}

func NewLookingAt(position, target mgl32.Vec3, opts Options) *Camera {
	cam := New(position, opts)
	cam.LookAt(target)
	return cam
}

func (cam *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(cam.Position, cam.Position.Add(cam.Front), cam.Up)
}

func (cam *Camera) ProjectionMatrix(aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(cam.Zoom*libutil.Deg2Rad, aspect, near, far)
}

func (cam *Camera) ProcessKeyboard(dir Movement, dt float32) {
	velocity := cam.MovementSpeed * dt
	switch dir {
	case Forward:
		cam.Position = cam.Position.Add(cam.Front.Mul(velocity))
	case Backward:
		cam.Position = cam.Position.Sub(cam.Front.Mul(velocity))
	case Left:
		cam.Position = cam.Position.Sub(cam.Right.Mul(velocity))
	case Right:
		cam.Position = cam.Position.Add(cam.Right.Mul(velocity))
	}
}

func (cam *Camera) ProcessMouseMovement(dx, dy float32, constrainPitch bool) {
	cam.Yaw += dx * cam.MouseSensitivity
	cam.Pitch += dy * cam.MouseSensitivity

	// keep the view from flipping over the poles
	if constrainPitch {
		cam.Pitch = libutil.Clamp(cam.Pitch, -89, 89)
	}
	cam.updateVectors()
}

func (cam *Camera) ProcessMouseScroll(dy float32) {
	cam.Zoom = libutil.Clamp(cam.Zoom-dy, 1, 45)
}

// LookAt turns the camera towards target and keeps yaw and pitch in sync so
// mouse look continues from the new direction.
func (cam *Camera) LookAt(target mgl32.Vec3) {
	dir := target.Sub(cam.Position)
	if dir.Len() < 1e-6 {
		return
	}
	cam.setFront(dir.Normalize())
	cam.Pitch = math32.Asin(libutil.Clamp(cam.Front[1], -1, 1)) * libutil.Rad2Deg
	cam.Yaw = math32.Atan2(cam.Front[2], cam.Front[0]) * libutil.Rad2Deg
}

func (cam *Camera) updateVectors() {
	yaw, pitch := cam.Yaw*libutil.Deg2Rad, cam.Pitch*libutil.Deg2Rad
	front := mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
	cam.setFront(front.Normalize())
}

func (cam *Camera) setFront(front mgl32.Vec3) {
	cam.Front = front
	right := front.Cross(cam.WorldUp)
	// looking straight along WorldUp, keep the old right vector
	if right.Len() > 1e-6 {
		cam.Right = right.Normalize()
	}
	cam.Up = cam.Right.Cross(cam.Front).Normalize()
}
