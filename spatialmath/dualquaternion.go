package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// DualQuaternion defines functions to perform rigid transformations in 3D.
// Real holds the rotation and Dual holds the translation, encoded as 0.5 * t * Real.
type DualQuaternion struct {
	dualquat.Number
}

// NewDualQuaternion returns the identity dual quaternion.
// Since the real part of a dual quaternion should be a unit quaternion, not all zeroes, this should be used
// instead of DualQuaternion{}.
func NewDualQuaternion() DualQuaternion {
	return DualQuaternion{dualquat.Number{
		Real: quat.Number{Real: 1},
		Dual: quat.Number{},
	}}
}

// NewDualQuaternionFromParts pairs a real part r and a dual part d as given. Nothing is normalized: the caller
// is responsible for r being a unit quaternion if the result is used as a rigid transform.
func NewDualQuaternionFromParts(r, d quat.Number) DualQuaternion {
	return DualQuaternion{dualquat.Number{Real: r, Dual: d}}
}

// NewDualQuaternionFromRotationTranslation returns the transform that rotates by q and then translates by t.
func NewDualQuaternionFromRotationTranslation(q quat.Number, t r3.Vector) DualQuaternion {
	return DualQuaternion{dualquat.Number{
		Real: q,
		Dual: quat.Scale(0.5, quat.Mul(NewQuaternion(0, t), q)),
	}}
}

// Mul returns a*b, the transform that applies b first and then a.
func Mul(a, b DualQuaternion) DualQuaternion {
	return DualQuaternion{dualquat.Mul(a.Number, b.Number)}
}

// MulAll multiplies dqs left to right, seeded with the identity on the left.
func MulAll(dqs ...DualQuaternion) DualQuaternion {
	result := NewDualQuaternion()
	for _, dq := range dqs {
		result = Mul(result, dq)
	}
	return result
}

// Rotation returns the rotation quaternion.
func (q DualQuaternion) Rotation() quat.Number {
	return q.Real
}

// Translation recovers the translation vector as the imaginary part of 2 * Dual * conj(Real).
func (q DualQuaternion) Translation() r3.Vector {
	return Imag(quat.Scale(2, quat.Mul(q.Dual, quat.Conj(q.Real))))
}

// IsUnit reports whether the real part has unit norm within tol.
func (q DualQuaternion) IsUnit(tol float64) bool {
	return math.Abs(quat.Abs(q.Real)-1) <= tol
}

// HasNaN reports whether any of the eight components is NaN.
func (q DualQuaternion) HasNaN() bool {
	return quat.IsNaN(q.Real) || quat.IsNaN(q.Dual)
}
