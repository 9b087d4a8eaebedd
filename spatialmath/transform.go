package spatialmath

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Transform is a translation, a unit rotation and a per-axis scale, applied to points in the order
// scale, rotate, translate. It is the shape in which poses are handed to a renderer.
type Transform struct {
	Translation r3.Vector
	Rotation    quat.Number
	Scale       r3.Vector
}

// NewTransform returns the identity transform with unit scale.
func NewTransform() Transform {
	return Transform{
		Rotation: NewZeroQuaternion(),
		Scale:    r3.Vector{X: 1, Y: 1, Z: 1},
	}
}

// NewTransformFromTranslation returns a pure translation with unit scale.
func NewTransformFromTranslation(t r3.Vector) Transform {
	tf := NewTransform()
	tf.Translation = t
	return tf
}

// NewTransformFromRotationTranslation returns a rigid transform with unit scale.
func NewTransformFromRotationTranslation(q quat.Number, t r3.Vector) Transform {
	return Transform{Translation: t, Rotation: q, Scale: r3.Vector{X: 1, Y: 1, Z: 1}}
}

// Compose returns a∘b, the transform that applies b first and then a.
func Compose(a, b Transform) Transform {
	scaled := r3.Vector{X: a.Scale.X * b.Translation.X, Y: a.Scale.Y * b.Translation.Y, Z: a.Scale.Z * b.Translation.Z}
	return Transform{
		Translation: a.Translation.Add(RotatePoint(a.Rotation, scaled)),
		Rotation:    quat.Mul(a.Rotation, b.Rotation),
		Scale:       r3.Vector{X: a.Scale.X * b.Scale.X, Y: a.Scale.Y * b.Scale.Y, Z: a.Scale.Z * b.Scale.Z},
	}
}

// TransformPoint maps p through the transform.
func (t Transform) TransformPoint(p r3.Vector) r3.Vector {
	scaled := r3.Vector{X: t.Scale.X * p.X, Y: t.Scale.Y * p.Y, Z: t.Scale.Z * p.Z}
	return t.Translation.Add(RotatePoint(t.Rotation, scaled))
}

// DualQuaternion returns the rigid part of the transform; scale is dropped.
func (t Transform) DualQuaternion() DualQuaternion {
	return NewDualQuaternionFromRotationTranslation(t.Rotation, t.Translation)
}

// Matrix returns the column-major homogeneous matrix T*R*S.
func (t Transform) Matrix() mgl64.Mat4 {
	tr := mgl64.Translate3D(t.Translation.X, t.Translation.Y, t.Translation.Z)
	rot := QuatToMGL(t.Rotation).Mat4()
	sc := mgl64.Scale3D(t.Scale.X, t.Scale.Y, t.Scale.Z)
	return tr.Mul4(rot).Mul4(sc)
}

// String formats the transform as translation, xyzw rotation and scale.
func (t Transform) String() string {
	return fmt.Sprintf(
		"T:(%.4f, %.4f, %.4f) R:(%.4f, %.4f, %.4f, %.4f) S:(%.2f, %.2f, %.2f)",
		t.Translation.X, t.Translation.Y, t.Translation.Z,
		t.Rotation.Imag, t.Rotation.Jmag, t.Rotation.Kmag, t.Rotation.Real,
		t.Scale.X, t.Scale.Y, t.Scale.Z,
	)
}
