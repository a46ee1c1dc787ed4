package libcam

import "github.com/go-gl/mathgl/mgl32"

// BasisMatrix places the orthonormal camera axes in the first three columns
// and the position in the fourth.
func BasisMatrix(right, up, front, position mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Mat4FromCols(
		right.Vec4(0),
		up.Vec4(0),
		front.Vec4(0),
		position.Vec4(1),
	)
}

// Directions is the inverse of BasisMatrix.
func Directions(m mgl32.Mat4) (right, up, front, position mgl32.Vec3) {
	return m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3(), m.Col(3).Vec3()
}
