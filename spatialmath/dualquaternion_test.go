package spatialmath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func randomUnitDualQuaternion(rSeed *rand.Rand) DualQuaternion {
	t := r3.Vector{X: rSeed.Float64()*20 - 10, Y: rSeed.Float64()*20 - 10, Z: rSeed.Float64()*20 - 10}
	return NewDualQuaternionFromRotationTranslation(randomUnitQuaternion(rSeed), t)
}

func TestDualQuaternionIdentity(t *testing.T) {
	id := NewDualQuaternion()
	test.That(t, id.Real, test.ShouldResemble, quat.Number{Real: 1})
	test.That(t, id.Dual, test.ShouldResemble, quat.Number{})
	test.That(t, id.Rotation(), test.ShouldResemble, NewZeroQuaternion())
	test.That(t, id.Translation(), test.ShouldResemble, r3.Vector{})

	//nolint:gosec
	rSeed := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		dq := randomUnitDualQuaternion(rSeed)
		test.That(t, DualQuaternionAlmostEqual(Mul(id, dq), dq, testTolerance), test.ShouldBeTrue)
		test.That(t, DualQuaternionAlmostEqual(Mul(dq, id), dq, testTolerance), test.ShouldBeTrue)
	}
}

func TestDualQuaternionAssociativity(t *testing.T) {
	//nolint:gosec
	rSeed := rand.New(rand.NewSource(4))
	for i := 0; i < 50; i++ {
		dq0 := randomUnitDualQuaternion(rSeed)
		dq1 := randomUnitDualQuaternion(rSeed)
		dq2 := randomUnitDualQuaternion(rSeed)
		left := Mul(Mul(dq0, dq1), dq2)
		right := Mul(dq0, Mul(dq1, dq2))
		test.That(t, DualQuaternionAlmostEqual(left, right, 1e-9), test.ShouldBeTrue)
		test.That(t, DualQuaternionAlmostEqual(MulAll(dq0, dq1, dq2), left, 1e-9), test.ShouldBeTrue)
		test.That(t, left.IsUnit(1e-9), test.ShouldBeTrue)
	}
}

func TestDualQuaternionTranslation(t *testing.T) {
	//nolint:gosec
	rSeed := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		q := randomUnitQuaternion(rSeed)
		tr := r3.Vector{X: rSeed.NormFloat64(), Y: rSeed.NormFloat64(), Z: rSeed.NormFloat64()}
		dq := NewDualQuaternionFromRotationTranslation(q, tr)
		test.That(t, R3VectorAlmostEqual(dq.Translation(), tr, testTolerance), test.ShouldBeTrue)
		test.That(t, dq.Rotation(), test.ShouldResemble, q)
	}
}

func TestDualQuaternionCompositionOrder(t *testing.T) {
	move := NewDualQuaternionFromRotationTranslation(NewZeroQuaternion(), r3.Vector{X: 1})
	turn := NewDualQuaternionFromRotationTranslation(q90z, r3.Vector{})

	// translate first, then rotate the result about the origin
	moveThenTurn := Mul(turn, move)
	test.That(t, R3VectorAlmostEqual(moveThenTurn.Translation(), r3.Vector{Y: 1}, testTolerance), test.ShouldBeTrue)
	test.That(t, QuaternionAlmostEqual(moveThenTurn.Rotation(), q90z, testTolerance), test.ShouldBeTrue)

	// rotate in place, then translate
	turnThenMove := Mul(move, turn)
	test.That(t, R3VectorAlmostEqual(turnThenMove.Translation(), r3.Vector{X: 1}, testTolerance), test.ShouldBeTrue)
}

func TestMulAllIdentities(t *testing.T) {
	test.That(t, MulAll(), test.ShouldResemble, NewDualQuaternion())
	for n := 1; n <= 3; n++ {
		dqs := make([]DualQuaternion, n)
		for i := range dqs {
			dqs[i] = NewDualQuaternion()
		}
		test.That(t, MulAll(dqs...), test.ShouldResemble, NewDualQuaternion())
	}
}

func TestDualQuaternionFromParts(t *testing.T) {
	r := quat.Number{Real: 2}
	d := quat.Number{Imag: 1}
	dq := NewDualQuaternionFromParts(r, d)
	test.That(t, dq.Real, test.ShouldResemble, r)
	test.That(t, dq.Dual, test.ShouldResemble, d)
	test.That(t, dq.IsUnit(1e-6), test.ShouldBeFalse)
	test.That(t, dq.HasNaN(), test.ShouldBeFalse)

	dq = NewDualQuaternionFromParts(quat.Number{Real: math.NaN()}, quat.Number{})
	test.That(t, dq.HasNaN(), test.ShouldBeTrue)
}
