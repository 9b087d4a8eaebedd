package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// R4AA represents an R4 axis angle: a rotation of Theta radians about the axis (RX, RY, RZ).
// The axis does not need to be normalized; conversions normalize it.
type R4AA struct {
	Theta float64 `json:"th"`
	RX    float64 `json:"x"`
	RY    float64 `json:"y"`
	RZ    float64 `json:"z"`
}

// NewR4AA returns the zero rotation about +Z.
func NewR4AA() *R4AA {
	return &R4AA{Theta: 0, RX: 0, RY: 0, RZ: 1}
}

// Axis returns the rotation axis as a vector.
func (r4 *R4AA) Axis() r3.Vector {
	return r3.Vector{X: r4.RX, Y: r4.RY, Z: r4.RZ}
}

// ToR3 converts an R4 angle axis to R3, a vector whose direction is the unit axis and whose length is theta.
func (r4 *R4AA) ToR3() r3.Vector {
	axis := r4.Axis()
	norm := axis.Norm()
	if norm == 0 {
		return r3.Vector{}
	}
	return axis.Mul(r4.Theta / norm)
}

// ToQuat converts an R4 axis angle to a unit quaternion through the exponential map.
// A zero axis describes no rotation and yields the identity.
func (r4 *R4AA) ToQuat() quat.Number {
	return ExpMap(r4.ToR3().Mul(0.5))
}

// QuatToR4AA converts a quat to an R4 axis angle in the same way the C++ Eigen library does.
// https://eigen.tuxfamily.org/dox/AngleAxis_8h_source.html
func QuatToR4AA(q quat.Number) R4AA {
	denom := Norm(q)

	angle := 2 * math.Atan2(denom, math.Abs(q.Real))
	if q.Real < 0 {
		angle *= -1
	}

	if denom < 1e-6 {
		return R4AA{angle, 0, 0, 1}
	}
	return R4AA{angle, q.Imag / denom, q.Jmag / denom, q.Kmag / denom}
}
