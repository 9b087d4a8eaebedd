// Package spatialmath defines spatial mathematical operations: quaternion and dual quaternion algebra,
// axis-angle conversions and the translation/rotation/scale transforms handed to renderers.
package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// zeroNormEpsilon is the smallest quaternion norm we are willing to divide by.
const zeroNormEpsilon = 1e-12

// ErrZeroQuaternion is returned when a quaternion with (near) zero norm is asked to represent a rotation.
var ErrZeroQuaternion = errors.New("cannot normalize a zero quaternion")

// NewZeroQuaternion returns the identity rotation 1+0i+0j+0k.
func NewZeroQuaternion() quat.Number {
	return quat.Number{Real: 1}
}

// NewQuaternion assembles a quaternion from its scalar part and its vector part.
func NewQuaternion(scalar float64, vector r3.Vector) quat.Number {
	return quat.Number{Real: scalar, Imag: vector.X, Jmag: vector.Y, Kmag: vector.Z}
}

// Real returns the scalar part of q.
func Real(q quat.Number) float64 {
	return q.Real
}

// Imag returns the vector part of q.
func Imag(q quat.Number) r3.Vector {
	return r3.Vector{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
}

// Normalize returns q scaled to unit length. A quaternion whose norm is too small to divide by
// returns ErrZeroQuaternion rather than a NaN-filled result.
func Normalize(q quat.Number) (quat.Number, error) {
	norm := quat.Abs(q)
	if norm < zeroNormEpsilon || math.IsNaN(norm) {
		return quat.Number{}, ErrZeroQuaternion
	}
	if norm == 1 {
		return q, nil
	}
	return quat.Scale(1/norm, q), nil
}

// NormalizeOrIdentity is Normalize, except that a degenerate input yields the identity rotation.
func NormalizeOrIdentity(q quat.Number) quat.Number {
	n, err := Normalize(q)
	if err != nil {
		return NewZeroQuaternion()
	}
	return n
}

// ExpMap returns the unit quaternion exp(0 + v), where v is a rotation axis scaled by half of the
// rotation angle. No normalization is needed afterwards, and a zero v gives the identity exactly.
func ExpMap(v r3.Vector) quat.Number {
	return quat.Exp(NewQuaternion(0, v))
}

// LogMap is the inverse of ExpMap for unit quaternions: it returns the rotation axis scaled by half
// of the rotation angle. The result is only unique for angles strictly inside (-π, π).
func LogMap(q quat.Number) r3.Vector {
	if q.Real < 0 {
		q = Flip(q)
	}
	return Imag(quat.Log(q))
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// RotatePoint rotates p by the unit quaternion q, i.e. q * (0,p) * q'.
func RotatePoint(q quat.Number, p r3.Vector) r3.Vector {
	return Imag(quat.Mul(quat.Mul(q, NewQuaternion(0, p)), quat.Conj(q)))
}

// QuatToXYZW returns q in the vector-first component order used by most real-time renderers.
func QuatToXYZW(q quat.Number) [4]float64 {
	return [4]float64{q.Imag, q.Jmag, q.Kmag, q.Real}
}

// QuatFromXYZW is the inverse of QuatToXYZW.
func QuatFromXYZW(xyzw [4]float64) quat.Number {
	return quat.Number{Real: xyzw[3], Imag: xyzw[0], Jmag: xyzw[1], Kmag: xyzw[2]}
}

// QuatToMGL converts q to a mathgl quaternion.
func QuatToMGL(q quat.Number) mgl64.Quat {
	return mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}
}

// QuatFromMGL converts a mathgl quaternion to q.
func QuatFromMGL(q mgl64.Quat) quat.Number {
	return quat.Number{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}

// Norm returns the norm of the vector part of the quaternion, i.e. the sqrt of the squares of the imaginary parts.
func Norm(q quat.Number) float64 {
	return math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}
