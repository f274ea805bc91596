package math

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrDegenerateLookAt is returned when the eye and the target coincide.
	ErrDegenerateLookAt = errors.New("look-at with same position and target")
	// ErrSingularMatrix is returned when a normal matrix cannot be derived.
	ErrSingularMatrix = errors.New("singular matrix")
)

// lookAtEpsilon is the per-component distance under which eye and target
// are considered equal.
const lookAtEpsilon = 1e-6

// Compose post-multiplies base by translate(position), scale(scale) and
// the Euler rotations around X, then Y, then Z.
//
// Pass mgl32.Ident4() as base for a local matrix, or a parent world matrix
// to get the child's world matrix in one step.
func Compose(base mgl32.Mat4, position, rotation, scale mgl32.Vec3) mgl32.Mat4 {
	return base.
		Mul4(mgl32.Translate3D(position.X(), position.Y(), position.Z())).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())).
		Mul4(mgl32.HomogRotate3DX(rotation.X())).
		Mul4(mgl32.HomogRotate3DY(rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(rotation.Z()))
}

// LookAt builds a right-handed view matrix.
func LookAt(eye, target, up mgl32.Vec3) (mgl32.Mat4, error) {
	if math32.Abs(eye.X()-target.X()) < lookAtEpsilon &&
		math32.Abs(eye.Y()-target.Y()) < lookAtEpsilon &&
		math32.Abs(eye.Z()-target.Z()) < lookAtEpsilon {
		return mgl32.Ident4(), ErrDegenerateLookAt
	}
	return mgl32.LookAtV(eye, target, up), nil
}

// Perspective builds a projection matrix from a vertical field of view in
// degrees.
func Perspective(angle, aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(angle), aspect, near, far)
}

// NormalMatrix returns the transpose of the inverse of m's upper-left 3x3.
func NormalMatrix(m mgl32.Mat4) (mgl32.Mat3, error) {
	m3 := m.Mat3()
	if mgl32.FloatEqual(m3.Det(), 0) {
		return mgl32.Ident3(), ErrSingularMatrix
	}
	return m3.Inv().Transpose(), nil
}

// Translation returns a matrix that only moves by v.
func Translation(v mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(v.X(), v.Y(), v.Z())
}

// ClampPitch keeps a pitch angle strictly inside (-pi/2, pi/2) so a look-at
// built from it never aligns with the up axis.
func ClampPitch(angle float32) float32 {
	limit := math32.Pi/2 - 0.01
	if angle > limit {
		return limit
	}
	if angle < -limit {
		return -limit
	}
	return angle
}

// Direction returns the unit vector for a yaw around Z and a pitch toward Z.
func Direction(yaw, pitch float32) mgl32.Vec3 {
	cp := math32.Cos(pitch)
	return mgl32.Vec3{
		cp * math32.Cos(yaw),
		cp * math32.Sin(yaw),
		math32.Sin(pitch),
	}
}

// Angles inverts Direction for any non-zero v. The pitch is not clamped.
func Angles(v mgl32.Vec3) (yaw, pitch float32) {
	v = v.Normalize()
	return math32.Atan2(v.Y(), v.X()), math32.Asin(v.Z())
}
