package libcurve_test

import (
	"gl-animation/libcurve"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-5)

var path = []mgl32.Vec3{
	{0, 0, 3},
	{3, 3, 0},
	{0, 0, -3},
	{-3, -3, 0},
	{0, 0, 3},
}

func TestBezierMatchesBernstein(t *testing.T) {
	p0, p1, p2 := mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 5, 0}, mgl32.Vec3{3, 0, 0}
	for i := 0; i <= 10; i++ {
		u := float32(i) / 10
		want := libcurve.QuadraticBezier(p0, p1, p2, u)
		got := libcurve.Bezier3([]mgl32.Vec3{p0, p1, p2}, u)
		if diff := cmp.Diff(want, got, approx); diff != "" {
			t.Errorf("t=%.1f: de Casteljau and Bernstein form disagree (-want +got):\n%s", u, diff)
		}
	}
}

func TestBezierEndpoints(t *testing.T) {
	pts := []mgl32.Vec2{{1, 1}, {1, 5}, {4, 0}}
	if got := libcurve.Bezier2(pts, 0); got != pts[0] {
		t.Errorf("start should be %v but was %v", pts[0], got)
	}
	if got := libcurve.Bezier2(pts, 1); got != pts[2] {
		t.Errorf("end should be %v but was %v", pts[2], got)
	}
	mid := libcurve.Bezier2(pts, 0.5)
	want := mgl32.Vec2{1.75, 2.75}
	if diff := cmp.Diff(want, mid, approx); diff != "" {
		t.Errorf("midpoint mismatch (-want +got):\n%s", diff)
	}
}

func TestBezierDoesNotModifyInput(t *testing.T) {
	pts := []mgl32.Vec3{{0, 0, 0}, {1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {1, 1, 1}}
	orig := append([]mgl32.Vec3(nil), pts...)
	libcurve.Bezier3(pts, 0.3)
	if diff := cmp.Diff(orig, pts); diff != "" {
		t.Errorf("control points were modified (-want +got):\n%s", diff)
	}
}

func TestBezierDegenerate(t *testing.T) {
	if got := libcurve.Bezier3(nil, 0.5); got != (mgl32.Vec3{}) {
		t.Errorf("empty curve should evaluate to zero but was %v", got)
	}
	one := mgl32.Vec3{1, 2, 3}
	if got := libcurve.Bezier3([]mgl32.Vec3{one}, 0.7); got != one {
		t.Errorf("single point curve should be %v but was %v", one, got)
	}
}

func TestLinearBezier(t *testing.T) {
	got := libcurve.LinearBezier(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 4, -2}, 0.25)
	want := mgl32.Vec3{0.5, 1, -0.5}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestCatmullRomInterpolatesControlPoints(t *testing.T) {
	for i := range path {
		got := libcurve.CatmullRomPath(path, float32(i))
		if diff := cmp.Diff(path[i], got, approx); diff != "" {
			t.Errorf("t=%d should hit control point %d (-want +got):\n%s", i, i, diff)
		}
	}
}

func TestCatmullRomSegmentMidpoint(t *testing.T) {
	p := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}}
	got := libcurve.CatmullRom(p[0], p[1], p[2], p[3], 0.5)
	want := mgl32.Vec3{1.5, 0, 0}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("collinear evenly spaced points should give the midpoint (-want +got):\n%s", diff)
	}
}

func TestWeightsSumToOne(t *testing.T) {
	for i := 0; i <= 20; i++ {
		u := float32(i) / 20
		for name, w := range map[string]mgl32.Vec4{
			"catmull-rom": libcurve.CatmullRomWeights(u),
			"bspline":     libcurve.BSplineWeights(u),
		} {
			sum := w[0] + w[1] + w[2] + w[3]
			if diff := cmp.Diff(float32(1), sum, approx); diff != "" {
				t.Errorf("%s weights at t=%.2f should sum to 1 but was %v", name, u, sum)
			}
		}
	}
}

func TestBSplineIsConvex(t *testing.T) {
	for i := 0; i <= 20; i++ {
		w := libcurve.BSplineWeights(float32(i) / 20)
		for k, v := range w {
			if v < -1e-6 {
				t.Errorf("weight %d at t=%.2f should be non-negative but was %v", k, float32(i)/20, v)
			}
		}
	}
}

func TestBSplineStart(t *testing.T) {
	p := []mgl32.Vec3{{0, 0, 0}, {6, 0, 0}, {12, 6, 0}, {18, 0, 0}}
	got := libcurve.BSpline(p[0], p[1], p[2], p[3], 0)
	// (p0 + 4 p1 + p2) / 6
	want := mgl32.Vec3{6, 1, 0}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSplineIndicesClamp(t *testing.T) {
	cases := []struct {
		t     float32
		idx   [4]int
		local float32
	}{
		{-2, [4]int{0, 0, 1, 2}, 0},
		{0, [4]int{0, 0, 1, 2}, 0},
		{0.25, [4]int{0, 0, 1, 2}, 0.25},
		{1.5, [4]int{0, 1, 2, 3}, 0.5},
		{3.75, [4]int{2, 3, 4, 4}, 0.75},
		{4, [4]int{3, 4, 4, 4}, 0},
		{9, [4]int{3, 4, 4, 4}, 0},
	}
	for _, c := range cases {
		idx, local := libcurve.SplineIndices(5, c.t)
		if idx != c.idx {
			t.Errorf("t=%v: indices should be %v but were %v", c.t, c.idx, idx)
		}
		if diff := cmp.Diff(c.local, local, approx); diff != "" {
			t.Errorf("t=%v: local parameter should be %v but was %v", c.t, c.local, local)
		}
	}
}

func TestSplinePathsNeverPanic(t *testing.T) {
	for n := 0; n <= 3; n++ {
		cp := path[:n]
		for _, u := range []float32{-1, 0, 0.5, 1, 2.5, 10} {
			libcurve.CatmullRomPath(cp, u)
			libcurve.BSplinePath(cp, u)
		}
	}
}

func TestPathSample(t *testing.T) {
	p := libcurve.Path{Kind: libcurve.KindCatmullRom, Points: path}
	if span := p.Span(); span != 4 {
		t.Fatalf("span should be 4 but was %v", span)
	}
	samples := p.Sample(8)
	if len(samples) != 9 {
		t.Fatalf("should produce 9 samples but produced %d", len(samples))
	}
	if diff := cmp.Diff(path[0], samples[0], approx); diff != "" {
		t.Errorf("first sample should be the first control point (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(path[4], samples[8], approx); diff != "" {
		t.Errorf("last sample should be the last control point (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(path[2], samples[4], approx); diff != "" {
		t.Errorf("middle sample should be the middle control point (-want +got):\n%s", diff)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []libcurve.Kind{libcurve.KindBezier, libcurve.KindBSpline, libcurve.KindCatmullRom} {
		got, err := libcurve.ParseKind(k.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != k {
			t.Errorf("should parse %q as %v but was %v", k.String(), k, got)
		}
	}
	if _, err := libcurve.ParseKind("hermite"); err == nil {
		t.Errorf("unknown kind should fail")
	}
}
