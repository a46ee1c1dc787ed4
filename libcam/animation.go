package libcam

import (
	"fmt"

	"gl-animation/libcurve"
	"gl-animation/libutil"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/slices"
)

type Animation int

const (
	// towards +z
	TranslateZ Animation = iota
	// towards +x
	TranslateR
	// towards -x
	TranslateL
	// towards -z
	TranslateMZ
	// orbit around the pivot
	RotatePoint
	// roll around the view direction
	Rotate
	BSpline
	Bezier
	CatmullRom
)

var animationNames = [...]string{
	TranslateZ:  "translate +z",
	TranslateR:  "translate +x",
	TranslateL:  "translate -x",
	TranslateMZ: "translate -z",
	RotatePoint: "rotate about point",
	Rotate:      "rotate",
	BSpline:     "b-spline",
	Bezier:      "bezier",
	CatmullRom:  "catmull-rom",
}

func (a Animation) String() string {
	if a >= 0 && int(a) < len(animationNames) {
		return animationNames[a]
	}
	return fmt.Sprintf("Animation(%d)", int(a))
}

func (cam *Camera) Enqueue(anims ...Animation) {
	cam.queue = append(cam.queue, anims...)
}

// Queue returns the pending animations, the running one first.
func (cam *Camera) Queue() []Animation {
	return cam.queue
}

func (cam *Camera) Busy() bool {
	return len(cam.queue) > 0
}

// ClearQueue drops pending animations. The running one is stopped where it is.
func (cam *Camera) ClearQueue() {
	cam.queue = cam.queue[:0]
	cam.running = false
}

// Progress of the running animation in [0, 1], 0 when idle.
func (cam *Camera) Progress(now float64) float32 {
	if !cam.running || cam.end <= cam.start {
		return 0
	}
	return libutil.Clamp(float32((now-cam.start)/(cam.end-cam.start)), 0, 1)
}

func (cam *Camera) ResetBezierPath() {
	cam.bezierPath = append(cam.bezierPath[:0], cam.Path...)
}

// BezierPath returns the control points not yet consumed by Bezier animations.
func (cam *Camera) BezierPath() []mgl32.Vec3 {
	return cam.bezierPath
}

// Animate advances the head of the queue to time now, in seconds.
// The first call after the queue becomes non-empty captures the starting pose.
// Once now passes the end time the final pose is applied and the animation
// is removed from the queue.
func (cam *Camera) Animate(now float64) {
	if len(cam.queue) == 0 {
		return
	}
	if !cam.running {
		cam.running = true
		cam.start = now
		cam.end = now + float64(cam.Duration)
		cam.from = snapshot{
			position: cam.Position,
			right:    cam.Right,
			up:       cam.Up,
			front:    cam.Front,
		}
	}

	ended := now >= cam.end
	u := float32(1)
	if !ended {
		u = cam.Progress(now)
	}

	cam.apply(cam.queue[0], u, ended)

	if ended {
		cam.running = false
		cam.queue = slices.Delete(cam.queue, 0, 1)
	}
}

func (cam *Camera) apply(anim Animation, u float32, ended bool) {
	switch anim {
	case TranslateZ:
		cam.translate(2, u)
	case TranslateMZ:
		cam.translate(2, -u)
	case TranslateR:
		cam.translate(0, u)
	case TranslateL:
		cam.translate(0, -u)
	case RotatePoint:
		cam.rotateAbout(cam.Pivot, u)
	case Rotate:
		cam.roll(u)
	case BSpline:
		cam.followPath(libcurve.Path{Kind: libcurve.KindBSpline, Points: cam.Path}, u)
	case CatmullRom:
		cam.followPath(libcurve.Path{Kind: libcurve.KindCatmullRom, Points: cam.Path}, u)
	case Bezier:
		cam.bezier(u, ended)
	}
}

func (cam *Camera) faceTarget(target mgl32.Vec3) {
	dir := target.Sub(cam.Position)
	if dir.Len() < 1e-6 {
		return
	}
	cam.setFront(dir.Normalize())
}

func (cam *Camera) translate(axis int, u float32) {
	pos := cam.from.position
	pos[axis] += cam.Step * u
	cam.Position = pos
	cam.faceTarget(cam.Pivot)
}

func (cam *Camera) rotateAbout(point mgl32.Vec3, u float32) {
	rot := mgl32.Rotate3DY(cam.RotationSpeed * u)
	cam.Position = point.Add(rot.Mul3x1(cam.from.position.Sub(point)))
	cam.faceTarget(point)
}

func (cam *Camera) roll(u float32) {
	m := BasisMatrix(cam.from.right, cam.from.up, cam.from.front, cam.from.position)
	m = m.Mul4(mgl32.HomogRotate3DZ(cam.RotationSpeed * u))
	cam.Right, cam.Up, cam.Front, cam.Position = Directions(m)
}

func (cam *Camera) followPath(path libcurve.Path, u float32) {
	if len(path.Points) == 0 {
		return
	}
	cam.Position = path.AtNormalized(u)
	cam.faceTarget(cam.Pivot)
}

// bezier walks a quadratic segment over the first three remaining control
// points, or a line if only two are left. Finished segments are consumed,
// keeping the end point as the start of the next one.
func (cam *Camera) bezier(u float32, ended bool) {
	pts := cam.bezierPath
	if len(pts) < 2 {
		return
	}
	if len(pts) > 2 {
		cam.Position = libcurve.QuadraticBezier(pts[0], pts[1], pts[2], u)
	} else {
		cam.Position = libcurve.LinearBezier(pts[0], pts[1], u)
	}
	cam.faceTarget(cam.Pivot)

	if ended {
		if len(pts) > 2 {
			cam.bezierPath = slices.Delete(pts, 0, 2)
		} else {
			cam.bezierPath = pts[:0]
		}
	}
}
