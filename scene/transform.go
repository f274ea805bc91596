package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"scenegl/math"
)

// Transform holds position, Euler rotation (radians) and scale, and caches
// the local matrix built from them.
type Transform struct {
	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3

	local mgl32.Mat4
	dirty bool
	// computes counts local matrix rebuilds.
	computes int
}

func NewTransform() Transform {
	return Transform{
		scale: mgl32.Vec3{1, 1, 1},
		local: mgl32.Ident4(),
		dirty: true,
	}
}

func (t *Transform) Position() mgl32.Vec3 { return t.position }
func (t *Transform) Rotation() mgl32.Vec3 { return t.rotation }
func (t *Transform) Scale() mgl32.Vec3    { return t.scale }

func (t *Transform) Translate(x, y, z float32) {
	t.TranslateByVector(mgl32.Vec3{x, y, z})
}

func (t *Transform) TranslateByVector(v mgl32.Vec3) {
	t.position = t.position.Add(v)
	t.dirty = true
}

func (t *Transform) SetPosition(v mgl32.Vec3) {
	t.position = v
	t.dirty = true
}

func (t *Transform) RotateX(angle float32) {
	t.rotation[0] += angle
	t.dirty = true
}

func (t *Transform) RotateY(angle float32) {
	t.rotation[1] += angle
	t.dirty = true
}

func (t *Transform) RotateZ(angle float32) {
	t.rotation[2] += angle
	t.dirty = true
}

func (t *Transform) SetRotation(v mgl32.Vec3) {
	t.rotation = v
	t.dirty = true
}

// ScaleByNumber multiplies every axis by n.
func (t *Transform) ScaleByNumber(n float32) {
	t.scale = t.scale.Mul(n)
	t.dirty = true
}

// ScaleByVector multiplies each axis by the matching component of v.
func (t *Transform) ScaleByVector(v mgl32.Vec3) {
	t.scale = mgl32.Vec3{t.scale[0] * v[0], t.scale[1] * v[1], t.scale[2] * v[2]}
	t.dirty = true
}

func (t *Transform) SetScale(v mgl32.Vec3) {
	t.scale = v
	t.dirty = true
}

// Matrix returns the local matrix, rebuilding it only after a mutation.
func (t *Transform) Matrix() mgl32.Mat4 {
	if t.dirty {
		t.local = math.Compose(mgl32.Ident4(), t.position, t.rotation, t.scale)
		t.dirty = false
		t.computes++
	}
	return t.local
}

// Dirty reports whether a mutation happened since the last Matrix call.
func (t *Transform) Dirty() bool { return t.dirty }
