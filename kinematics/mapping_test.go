package kinematics

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"github.com/quatfk/quatfk/spatialmath"
)

func TestJointControlDefaults(t *testing.T) {
	jc := NewJointControl()
	test.That(t, jc.Theta, test.ShouldEqual, DefaultTheta)
	test.That(t, jc.Axis, test.ShouldResemble, r3.Vector{})
	test.That(t, jc.Offset, test.ShouldResemble, r3.Vector{})

	jc = JointControl{Theta: 4, Axis: r3.Vector{X: 1}, Offset: r3.Vector{Y: 2}}
	jc.Reset()
	test.That(t, jc, test.ShouldResemble, NewJointControl())

	for _, c := range NewJointControls(3) {
		test.That(t, c, test.ShouldResemble, NewJointControl())
	}
}

func TestMappingDefaultsAndValidation(t *testing.T) {
	test.That(t, NewMapping().Validate(), test.ShouldBeNil)
	test.That(t, Mapping{}.WithDefaults(), test.ShouldResemble, NewMapping())
	test.That(t, Mapping{AxisGain: 2}.WithDefaults().AxisGain, test.ShouldEqual, 2)

	for _, bad := range []Mapping{
		{Rotation: "quadratic", Translation: TranslationCoupled, AxisGain: 1},
		{Rotation: RotationExponential, Translation: "sideways", AxisGain: 1},
		{Rotation: RotationExponential, Translation: TranslationCoupled},
		{Rotation: RotationExponential, Translation: TranslationCoupled, AxisGain: math.NaN()},
		{Rotation: RotationExponential, Translation: TranslationCoupled, AxisGain: math.Inf(1)},
	} {
		test.That(t, bad.Validate(), test.ShouldNotBeNil)
	}
}

func TestExponentialRotationUsesGain(t *testing.T) {
	m := NewMapping()
	dq := m.JointTransform(JointControl{Theta: math.Pi / 200, Axis: r3.Vector{Z: 1}})
	q90z := quat.Number{Real: math.Cos(math.Pi / 4), Kmag: math.Sin(math.Pi / 4)}
	test.That(t, spatialmath.QuaternionAlmostEqual(dq.Rotation(), q90z, floatTolerance), test.ShouldBeTrue)
	test.That(t, dq.IsUnit(floatTolerance), test.ShouldBeTrue)
}

func TestTrigonometricMatchesExponentialOnUnitAxis(t *testing.T) {
	trig := Mapping{Rotation: RotationTrigonometric, Translation: TranslationCoupled, AxisGain: 1}
	exp := Mapping{Rotation: RotationExponential, Translation: TranslationCoupled, AxisGain: 1}
	for _, theta := range []float64{DefaultTheta, 0.5, -1, 2.5} {
		jc := JointControl{Theta: theta, Axis: r3.Vector{Y: 1}, Offset: r3.Vector{X: 1}}
		a := trig.JointTransform(jc)
		b := exp.JointTransform(jc)
		test.That(t, spatialmath.DualQuaternionAlmostEqual(a, b, floatTolerance), test.ShouldBeTrue)
	}
}

func TestTrigonometricRotationIsNormalized(t *testing.T) {
	m := Mapping{Rotation: RotationTrigonometric, Translation: TranslationCoupled, AxisGain: DefaultAxisGain}
	dq := m.JointTransform(JointControl{Theta: 0.4, Axis: r3.Vector{X: 0.3, Y: -0.7, Z: 0.01}})
	test.That(t, dq.IsUnit(floatTolerance), test.ShouldBeTrue)
}

func TestZeroAxisDoesNotProduceNaN(t *testing.T) {
	for _, rot := range []RotationConstruction{RotationExponential, RotationTrigonometric} {
		for _, tr := range []TranslationScaling{TranslationCoupled, TranslationDecoupled} {
			m := Mapping{Rotation: rot, Translation: tr, AxisGain: DefaultAxisGain}
			for _, theta := range []float64{2, math.Pi, -math.Pi, 1e-12, 0} {
				dq := m.JointTransform(JointControl{Theta: theta, Offset: r3.Vector{X: 1, Y: 2, Z: 3}})
				test.That(t, dq.HasNaN(), test.ShouldBeFalse)
				test.That(t, spatialmath.QuaternionAlmostEqual(dq.Rotation(), spatialmath.NewZeroQuaternion(), floatTolerance),
					test.ShouldBeTrue)
			}
		}
	}
}

func TestCoupledTranslationFollowsTheta(t *testing.T) {
	coupled := NewMapping()
	decoupled := NewMapping()
	decoupled.Translation = TranslationDecoupled
	offset := r3.Vector{X: 2}

	atRest := coupled.JointTransform(JointControl{Theta: DefaultTheta, Offset: offset})
	test.That(t, spatialmath.R3VectorAlmostEqual(atRest.Translation(), offset, 1e-6), test.ShouldBeTrue)

	// half a turn of theta cancels the offset entirely in the coupled mapping
	halfTurn := JointControl{Theta: math.Pi, Offset: offset}
	test.That(t, spatialmath.R3VectorAlmostEqual(coupled.JointTransform(halfTurn).Translation(), r3.Vector{}, 1e-12),
		test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(decoupled.JointTransform(halfTurn).Translation(), offset, floatTolerance),
		test.ShouldBeTrue)
}

func TestDecoupledTranslationIsRigid(t *testing.T) {
	m := Mapping{Rotation: RotationExponential, Translation: TranslationDecoupled, AxisGain: 1}
	jc := JointControl{Theta: 1.3, Axis: r3.Vector{X: 1, Y: 1}, Offset: r3.Vector{X: -1, Y: 4, Z: 0.5}}
	dq := m.JointTransform(jc)
	test.That(t, spatialmath.R3VectorAlmostEqual(dq.Translation(), jc.Offset, floatTolerance), test.ShouldBeTrue)
	// rigid dual quaternions have orthogonal real and dual parts
	dot := dq.Real.Real*dq.Dual.Real + dq.Real.Imag*dq.Dual.Imag + dq.Real.Jmag*dq.Dual.Jmag + dq.Real.Kmag*dq.Dual.Kmag
	test.That(t, dot, test.ShouldAlmostEqual, 0, floatTolerance)
}

func TestOutOfRangeControlsAreAccepted(t *testing.T) {
	controls := []JointControl{
		{Theta: 1e6, Axis: r3.Vector{X: -100, Y: 100, Z: 55}, Offset: r3.Vector{X: 1e4}},
		{Theta: -250, Axis: r3.Vector{Z: 1e3}, Offset: r3.Vector{Y: -1e4}},
		{Theta: 1e307, Axis: r3.Vector{Z: 1}},
		{Theta: -1e307, Axis: r3.Vector{X: 1e300, Y: -1e300}, Offset: r3.Vector{Z: 2}},
	}
	for _, rotation := range []RotationConstruction{RotationExponential, RotationTrigonometric} {
		t.Run(string(rotation), func(t *testing.T) {
			m := NewMapping()
			m.Rotation = rotation
			dqs := m.JointTransforms(controls)
			test.That(t, dqs, test.ShouldHaveLength, len(controls))
			for _, dq := range dqs {
				test.That(t, dq.HasNaN(), test.ShouldBeFalse)
				test.That(t, dq.IsUnit(1e-9), test.ShouldBeTrue)
			}
		})
	}
}

func TestHugeThetaMatchesReducedTheta(t *testing.T) {
	// 2^60 full turns of 4pi leave the rotation where theta = 0 puts it
	m := Mapping{Rotation: RotationExponential, Translation: TranslationDecoupled, AxisGain: 1}
	huge := m.JointTransform(JointControl{Theta: 4 * math.Pi * (1 << 60), Axis: r3.Vector{Z: 1}, Offset: r3.Vector{X: 1}})
	test.That(t, huge.HasNaN(), test.ShouldBeFalse)
	test.That(t, huge.IsUnit(1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(huge.Translation(), r3.Vector{X: 1}, 1e-6), test.ShouldBeTrue)
}
