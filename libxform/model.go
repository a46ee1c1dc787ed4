package libxform

import (
	"fmt"

	"gl-animation/libcurve"
	"gl-animation/libutil"

	"github.com/go-gl/mathgl/mgl32"
)

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	// towards -z
	In
	// towards +z
	Out
)

func (d Direction) Vec3() mgl32.Vec3 {
	switch d {
	case Up:
		return mgl32.Vec3{0, 1, 0}
	case Down:
		return mgl32.Vec3{0, -1, 0}
	case Left:
		return mgl32.Vec3{-1, 0, 0}
	case Right:
		return mgl32.Vec3{1, 0, 0}
	case In:
		return mgl32.Vec3{0, 0, -1}
	case Out:
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{}
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	case In:
		return Out
	default:
		return In
	}
}

type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) Vec3() mgl32.Vec3 {
	v := mgl32.Vec3{}
	v[a] = 1
	return v
}

type Shear int

const (
	ShearXPos Shear = iota
	ShearXNeg
	ShearYPos
	ShearYNeg
)

func (s Shear) String() string {
	switch s {
	case ShearXPos:
		return "+x"
	case ShearXNeg:
		return "-x"
	case ShearYPos:
		return "+y"
	case ShearYNeg:
		return "-y"
	}
	return fmt.Sprintf("Shear(%d)", int(s))
}

type Options struct {
	// seconds per tick
	Tick float64
	// translation per tick
	Step float32
	// rotation per tick in radians
	Angle float32
	// scale factors per tick
	Grow, Shrink float32
	// shear factor per tick
	Shear float32
	// seconds after which looping translate and scale reverse
	Period float64
	// curve parameter advance per tick
	CurveStep float32
	// upper bound of ticks processed by one Update
	MaxTicks int
}

func DefaultOptions() Options {
	return Options{
		Tick:      0.005,
		Step:      0.005,
		Angle:     15 * libutil.Deg2Rad,
		Grow:      1.001,
		Shrink:    0.999,
		Shear:     0.01,
		Period:    3,
		CurveStep: 0.01,
		MaxTicks:  200,
	}
}

// A Model is a mesh instance and the transforms currently applied to it.
// Transforms are applied in fixed ticks by Update. Unless the model is
// Looping each trigger applies its transform for a single tick, curve
// follows run until the end of the curve.
type Model struct {
	Mesh     string
	Matrix   mgl32.Mat4
	Position mgl32.Vec3
	Initial  mgl32.Vec3
	Options  Options

	Direction Direction
	Axis      Axis
	Grow      bool
	ShearMode Shear
	Pivot     mgl32.Vec3
	Looping   bool

	translating   bool
	rotating      bool
	scaling       bool
	shearing      bool
	rotatingAbout bool

	following bool
	path      libcurve.Path
	pathT     float32

	started        bool
	clock          float64
	translateStart float64
	scaleStart     float64
}

func NewModel(mesh string, initial mgl32.Vec3, opts Options) *Model {
	return &Model{
		Mesh:      mesh,
		Matrix:    mgl32.Translate3D(initial.X(), initial.Y(), initial.Z()),
		Position:  initial,
		Initial:   initial,
		Options:   opts,
		Direction: Right,
		Axis:      AxisX,
		Grow:      true,
	}
}

func (m *Model) Translate(dir Direction) {
	m.Direction = dir
	m.translating = true
	m.translateStart = m.clock
}

func (m *Model) Rotate(axis Axis) {
	m.Axis = axis
	m.rotating = true
}

func (m *Model) Scale(grow bool) {
	m.Grow = grow
	m.scaling = true
	m.scaleStart = m.clock
}

func (m *Model) Shear(mode Shear) {
	m.ShearMode = mode
	m.shearing = true
}

func (m *Model) RotateAbout(pivot mgl32.Vec3) {
	m.Pivot = pivot
	m.rotatingAbout = true
}

func (m *Model) ToggleLooping() {
	m.Looping = !m.Looping
}

// FollowBezier moves the model in the xy plane over a quadratic curve that
// rises to y=5 and lands 3 units to the right.
func (m *Model) FollowBezier() {
	sx, sy, z := m.Position.X(), m.Position.Y(), m.Position.Z()
	m.follow(libcurve.Path{
		Kind: libcurve.KindBezier,
		Points: []mgl32.Vec3{
			{sx, sy, z},
			{sx, 5, z},
			{sx + 3, 0, z},
		},
	})
}

func (m *Model) FollowBSpline() {
	m.follow(m.splinePath(libcurve.KindBSpline))
}

func (m *Model) FollowCatmullRom() {
	m.follow(m.splinePath(libcurve.KindCatmullRom))
}

func (m *Model) splinePath(kind libcurve.Kind) libcurve.Path {
	sx, sy, z := m.Position.X(), m.Position.Y(), m.Position.Z()
	return libcurve.Path{
		Kind: kind,
		Points: []mgl32.Vec3{
			{sx, sy, z},
			{sx, 5, z},
			{sx + 3, 7, z},
			{sx + 5, 0, z},
		},
	}
}

func (m *Model) follow(path libcurve.Path) {
	m.path = path
	m.pathT = 0
	m.following = true
}

// Path returns the curve the model is currently following.
func (m *Model) Path() (libcurve.Path, bool) {
	return m.path, m.following
}

// Active reports whether any transform will be applied on the next tick.
func (m *Model) Active() bool {
	return m.translating || m.rotating || m.scaling || m.shearing || m.rotatingAbout || m.following
}

// Update runs all ticks due up to now and returns how many ran.
// The first call only starts the clock.
func (m *Model) Update(now float64) int {
	if !m.started {
		m.started = true
		m.clock = now
		m.translateStart = now
		m.scaleStart = now
		return 0
	}

	ticks := 0
	for now-m.clock >= m.Options.Tick {
		m.clock += m.Options.Tick
		m.tick()
		ticks++
		if m.Options.MaxTicks > 0 && ticks >= m.Options.MaxTicks {
			// drop the backlog after a stall
			m.clock = now
			break
		}
	}
	return ticks
}

func (m *Model) tick() {
	opts := &m.Options

	if m.translating {
		if m.Looping && m.clock-m.translateStart >= opts.Period {
			m.translateStart = m.clock
			m.Direction = m.Direction.Opposite()
		}
		d := m.Direction.Vec3().Mul(opts.Step)
		m.Matrix = m.Matrix.Mul4(mgl32.Translate3D(d.X(), d.Y(), d.Z()))
		m.translating = m.Looping
	}

	if m.rotating {
		m.Matrix = m.Matrix.Mul4(mgl32.HomogRotate3D(opts.Angle, m.Axis.Vec3()))
		m.rotating = m.Looping
	}

	if m.scaling {
		if m.Looping && m.clock-m.scaleStart >= opts.Period {
			m.scaleStart = m.clock
			m.Grow = !m.Grow
		}
		f := opts.Shrink
		if m.Grow {
			f = opts.Grow
		}
		m.Matrix = ScaleAboutPoint(m.Matrix, m.Matrix.Col(3).Vec3(), f)
		m.scaling = m.Looping
	}

	if m.shearing {
		s := opts.Shear
		switch m.ShearMode {
		case ShearXPos:
			m.Matrix = m.Matrix.Mul4(mgl32.ShearX3D(s, s))
		case ShearXNeg:
			m.Matrix = m.Matrix.Mul4(mgl32.ShearX3D(-s, -s))
		case ShearYPos:
			m.Matrix = m.Matrix.Mul4(mgl32.ShearY3D(s, s))
		case ShearYNeg:
			m.Matrix = m.Matrix.Mul4(mgl32.ShearY3D(-s, -s))
		}
		m.shearing = m.Looping
	}

	if m.rotatingAbout {
		m.Matrix = RotateAboutPoint(m.Matrix, m.Pivot, opts.Angle, mgl32.Vec3{0, 1, 0})
		m.rotatingAbout = m.Looping
	}

	if m.following {
		m.stepPath()
	}

	m.Position = m.Matrix.Col(3).Vec3()
}

// stepPath places the model on the curve and advances the parameter. The
// last tick lands exactly on the end of the curve.
func (m *Model) stepPath() {
	end := m.path.Span()
	t := m.pathT
	if t > end {
		t = end
	}
	p := m.path.At(t)
	// only x and y follow the curve
	m.Matrix[12], m.Matrix[13] = p.X(), p.Y()

	if t >= end {
		m.following = false
		return
	}
	m.pathT += m.Options.CurveStep
}

// RotateAboutPoint rotates m in world space around pivot.
func RotateAboutPoint(m mgl32.Mat4, pivot mgl32.Vec3, angle float32, axis mgl32.Vec3) mgl32.Mat4 {
	to := mgl32.Translate3D(pivot.X(), pivot.Y(), pivot.Z())
	from := mgl32.Translate3D(-pivot.X(), -pivot.Y(), -pivot.Z())
	rot := mgl32.HomogRotate3D(angle, axis.Normalize())
	return to.Mul4(rot).Mul4(from).Mul4(m)
}

// ScaleAboutPoint uniformly scales m in world space, keeping pivot fixed.
func ScaleAboutPoint(m mgl32.Mat4, pivot mgl32.Vec3, s float32) mgl32.Mat4 {
	to := mgl32.Translate3D(pivot.X(), pivot.Y(), pivot.Z())
	from := mgl32.Translate3D(-pivot.X(), -pivot.Y(), -pivot.Z())
	return to.Mul4(mgl32.Scale3D(s, s, s)).Mul4(from).Mul4(m)
}
