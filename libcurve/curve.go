package libcurve

import (
	"gl-animation/libutil"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func lerp2(a, b mgl32.Vec2, t float32) mgl32.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

func Lerp3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Bezier2 evaluates the Bézier curve over all points using de Casteljau's algorithm.
func Bezier2(points []mgl32.Vec2, t float32) mgl32.Vec2 {
	if len(points) == 0 {
		return mgl32.Vec2{}
	}
	var stack [4]mgl32.Vec2
	tmp := stack[:0]
	tmp = append(tmp, points...)
	for n := len(tmp) - 1; n > 0; n-- {
		for k := 0; k < n; k++ {
			tmp[k] = lerp2(tmp[k], tmp[k+1], t)
		}
	}
	return tmp[0]
}

// Bezier3 is Bezier2 for points in space.
func Bezier3(points []mgl32.Vec3, t float32) mgl32.Vec3 {
	if len(points) == 0 {
		return mgl32.Vec3{}
	}
	var stack [4]mgl32.Vec3
	tmp := stack[:0]
	tmp = append(tmp, points...)
	for n := len(tmp) - 1; n > 0; n-- {
		for k := 0; k < n; k++ {
			tmp[k] = Lerp3(tmp[k], tmp[k+1], t)
		}
	}
	return tmp[0]
}

func LinearBezier(p0, p1 mgl32.Vec3, t float32) mgl32.Vec3 {
	return p0.Mul(1 - t).Add(p1.Mul(t))
}

func QuadraticBezier(p0, p1, p2 mgl32.Vec3, t float32) mgl32.Vec3 {
	u := 1 - t
	return p0.Mul(u * u).Add(p1.Mul(2 * t * u)).Add(p2.Mul(t * t))
}

// Basis matrices are written row by row. Stored column-major that is their
// transpose, so Mul4x1 with [t³ t² t 1] gives the control point weights.
var catmullRomBasis = mgl32.Mat4{
	-0.5, 1.5, -1.5, 0.5,
	1, -2.5, 2, -0.5,
	-0.5, 0, 0.5, 0,
	0, 1, 0, 0,
}

var bSplineBasis = mgl32.Mat4{
	-1. / 6, 3. / 6, -3. / 6, 1. / 6,
	3. / 6, -6. / 6, 3. / 6, 0,
	-3. / 6, 0, 3. / 6, 0,
	1. / 6, 4. / 6, 1. / 6, 0,
}

func weights(basis mgl32.Mat4, t float32) mgl32.Vec4 {
	return basis.Mul4x1(mgl32.Vec4{t * t * t, t * t, t, 1})
}

func blend(w mgl32.Vec4, p0, p1, p2, p3 mgl32.Vec3) mgl32.Vec3 {
	return p0.Mul(w[0]).Add(p1.Mul(w[1])).Add(p2.Mul(w[2])).Add(p3.Mul(w[3]))
}

// CatmullRom evaluates the uniform Catmull-Rom segment between p1 and p2.
func CatmullRom(p0, p1, p2, p3 mgl32.Vec3, t float32) mgl32.Vec3 {
	return blend(weights(catmullRomBasis, t), p0, p1, p2, p3)
}

// BSpline evaluates one uniform cubic B-spline segment. It approximates p1 and p2
// but does not pass through them.
func BSpline(p0, p1, p2, p3 mgl32.Vec3, t float32) mgl32.Vec3 {
	return blend(weights(bSplineBasis, t), p0, p1, p2, p3)
}

func CatmullRomWeights(t float32) mgl32.Vec4 {
	return weights(catmullRomBasis, t)
}

func BSplineWeights(t float32) mgl32.Vec4 {
	return weights(bSplineBasis, t)
}

// SplineIndices picks the four control points around the global parameter t and
// returns the parameter local to that segment. t is clamped to [0, n-1].
func SplineIndices(n int, t float32) (idx [4]int, local float32) {
	if n <= 0 {
		return idx, 0
	}
	t = libutil.Clamp(t, 0, float32(n-1))
	base := int(math32.Floor(t))
	for k := range idx {
		idx[k] = clampIndex(base+k-1, n)
	}
	return idx, t - float32(base)
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

func CatmullRomPath(cp []mgl32.Vec3, t float32) mgl32.Vec3 {
	if len(cp) == 0 {
		return mgl32.Vec3{}
	}
	i, local := SplineIndices(len(cp), t)
	return CatmullRom(cp[i[0]], cp[i[1]], cp[i[2]], cp[i[3]], local)
}

func BSplinePath(cp []mgl32.Vec3, t float32) mgl32.Vec3 {
	if len(cp) == 0 {
		return mgl32.Vec3{}
	}
	i, local := SplineIndices(len(cp), t)
	return BSpline(cp[i[0]], cp[i[1]], cp[i[2]], cp[i[3]], local)
}
