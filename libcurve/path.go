package libcurve

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type Kind int

const (
	KindBezier Kind = iota
	KindBSpline
	KindCatmullRom
)

func (k Kind) String() string {
	switch k {
	case KindBezier:
		return "bezier"
	case KindBSpline:
		return "bspline"
	case KindCatmullRom:
		return "catmull-rom"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "bezier":
		return KindBezier, nil
	case "bspline", "b-spline":
		return KindBSpline, nil
	case "catmull-rom", "catmullrom":
		return KindCatmullRom, nil
	}
	return 0, fmt.Errorf("unknown curve kind %q", s)
}

// A Path is a list of control points interpreted by Kind.
// Bezier paths use all points as one curve over [0, 1], splines are
// piecewise over [0, len(Points)-1].
type Path struct {
	Kind   Kind
	Points []mgl32.Vec3
}

func (p Path) Span() float32 {
	if p.Kind == KindBezier || len(p.Points) < 2 {
		return 1
	}
	return float32(len(p.Points) - 1)
}

func (p Path) At(t float32) mgl32.Vec3 {
	switch p.Kind {
	case KindBSpline:
		return BSplinePath(p.Points, t)
	case KindCatmullRom:
		return CatmullRomPath(p.Points, t)
	default:
		return Bezier3(p.Points, t)
	}
}

// AtNormalized maps u in [0, 1] onto the whole path.
func (p Path) AtNormalized(u float32) mgl32.Vec3 {
	return p.At(u * p.Span())
}

// Sample returns n+1 evenly spaced points along the path, both ends included.
func (p Path) Sample(n int) []mgl32.Vec3 {
	if n < 1 {
		n = 1
	}
	out := make([]mgl32.Vec3, n+1)
	for i := range out {
		out[i] = p.AtNormalized(float32(i) / float32(n))
	}
	return out
}
