package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) <= epsilon && math.Abs(a.Y-b.Y) <= epsilon && math.Abs(a.Z-b.Z) <= epsilon
}

// QuaternionAlmostEqual is an equality test for all the float components of a quaternion. Quaternions have double coverage,
// the inverse of a quaternion (when multiplied by -1) will yield the same orientation, which is checked as well.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	return quatComponentsEqual(a, b, tol) || quatComponentsEqual(a, Flip(b), tol)
}

func quatComponentsEqual(a, b quat.Number, tol float64) bool {
	return Float64AlmostEqual(a.Real, b.Real, tol) &&
		Float64AlmostEqual(a.Imag, b.Imag, tol) &&
		Float64AlmostEqual(a.Jmag, b.Jmag, tol) &&
		Float64AlmostEqual(a.Kmag, b.Kmag, tol)
}

// DualQuaternionAlmostEqual compares two dual quaternions component by component. Both parts are compared with
// the same sign, so (q, d) and (-q, -d) are treated as equal but mixed flips are not.
func DualQuaternionAlmostEqual(a, b DualQuaternion, tol float64) bool {
	if quatComponentsEqual(a.Real, b.Real, tol) && quatComponentsEqual(a.Dual, b.Dual, tol) {
		return true
	}
	return quatComponentsEqual(a.Real, Flip(b.Real), tol) && quatComponentsEqual(a.Dual, Flip(b.Dual), tol)
}

// TransformAlmostEqual compares translation, rotation (up to sign) and scale of two transforms.
func TransformAlmostEqual(a, b Transform, tol float64) bool {
	return R3VectorAlmostEqual(a.Translation, b.Translation, tol) &&
		QuaternionAlmostEqual(a.Rotation, b.Rotation, tol) &&
		R3VectorAlmostEqual(a.Scale, b.Scale, tol)
}
