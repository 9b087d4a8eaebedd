package kinematics

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"github.com/quatfk/quatfk/spatialmath"
)

const floatTolerance = 1e-9

func threeStageSegments() []Segment {
	segs := make([]Segment, 0, 6)
	for i := 0; i < 3; i++ {
		offset := spatialmath.NewTransformFromTranslation(r3.Vector{Z: float64(i) * 5})
		arm := spatialmath.Compose(offset, spatialmath.NewTransformFromTranslation(r3.Vector{Z: -2}))
		segs = append(segs,
			NewSegment("base", i).WithLocal(offset),
			NewSegment("arm", i).WithLocal(arm),
		)
	}
	return segs
}

func TestRestControlsLeaveLocalTransforms(t *testing.T) {
	for _, mapping := range []Mapping{
		NewMapping(),
		{Rotation: RotationTrigonometric, Translation: TranslationCoupled, AxisGain: DefaultAxisGain},
		{Rotation: RotationExponential, Translation: TranslationDecoupled, AxisGain: DefaultAxisGain},
	} {
		m, err := NewModel("arm", 3, threeStageSegments(), mapping)
		test.That(t, err, test.ShouldBeNil)

		poses, err := m.Evaluate(NewJointControls(3))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, poses, test.ShouldHaveLength, 6)
		for _, sp := range poses {
			test.That(t, spatialmath.TransformAlmostEqual(sp.Pose, sp.Segment.Local, floatTolerance), test.ShouldBeTrue)
		}
	}
}

func TestYawSharedBySegmentsOnSameJoint(t *testing.T) {
	mapping := NewMapping()
	mapping.AxisGain = 1
	segs := []Segment{
		NewSegment("hub", 0),
		NewSegment("arm", 0).WithLocal(spatialmath.NewTransformFromTranslation(r3.Vector{X: 5})),
	}
	m, err := NewModel("yaw", 1, segs, mapping)
	test.That(t, err, test.ShouldBeNil)

	controls := []JointControl{{Theta: math.Pi, Axis: r3.Vector{Z: 1}}}
	poses, err := m.Evaluate(controls)
	test.That(t, err, test.ShouldBeNil)

	yaw180 := quat.Number{Kmag: 1}
	test.That(t, spatialmath.QuaternionAlmostEqual(poses[0].Pose.Rotation, yaw180, floatTolerance), test.ShouldBeTrue)
	test.That(t, spatialmath.QuaternionAlmostEqual(poses[1].Pose.Rotation, poses[0].Pose.Rotation, floatTolerance), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(poses[0].Pose.Translation, r3.Vector{}, floatTolerance), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(poses[1].Pose.Translation, r3.Vector{X: -5}, floatTolerance), test.ShouldBeTrue)
}

func TestRestingDownstreamJointsDoNotChangeRotation(t *testing.T) {
	mapping := NewMapping()
	mapping.AxisGain = 1
	m, err := NewModel("arm", 3, threeStageSegments(), mapping)
	test.That(t, err, test.ShouldBeNil)

	controls := NewJointControls(3)
	controls[0] = JointControl{Theta: math.Pi, Axis: r3.Vector{Z: 1}}
	poses, err := m.Evaluate(controls)
	test.That(t, err, test.ShouldBeNil)
	for _, sp := range poses {
		test.That(t, spatialmath.QuaternionAlmostEqual(sp.Pose.Rotation, poses[0].Pose.Rotation, floatTolerance), test.ShouldBeTrue)
	}
}

func TestChainComposesBaseOutwards(t *testing.T) {
	mapping := NewMapping()
	mapping.AxisGain = 1
	mapping.Translation = TranslationDecoupled
	m, err := NewModel("two", 2, []Segment{NewSegment("tip", 1)}, mapping)
	test.That(t, err, test.ShouldBeNil)

	controls := []JointControl{
		{Theta: math.Pi / 2, Axis: r3.Vector{Z: 1}},
		{Theta: DefaultTheta, Offset: r3.Vector{X: 1}},
	}
	poses, err := m.Evaluate(controls)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(poses[0].Pose.Translation, r3.Vector{Y: 1}, floatTolerance), test.ShouldBeTrue)

	single, err := m.EvaluateSegment(controls, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.TransformAlmostEqual(single.Pose, poses[0].Pose, floatTolerance), test.ShouldBeTrue)
	test.That(t, spatialmath.DualQuaternionAlmostEqual(single.Chain, poses[0].Chain, floatTolerance), test.ShouldBeTrue)
}

func TestEvaluateDoesNotMutateControls(t *testing.T) {
	m, err := NewModel("arm", 3, threeStageSegments(), NewMapping())
	test.That(t, err, test.ShouldBeNil)

	controls := []JointControl{
		{Theta: 0.3, Axis: r3.Vector{X: 0.01, Y: -0.02}, Offset: r3.Vector{Z: 3}},
		{Theta: -1.2, Axis: r3.Vector{Z: 0.05}, Offset: r3.Vector{X: 1}},
		{Theta: 42, Axis: r3.Vector{X: 7, Y: 7, Z: 7}, Offset: r3.Vector{X: -99, Y: 99}},
	}
	before := make([]JointControl, len(controls))
	copy(before, controls)

	first, err := m.Evaluate(controls)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, controls, test.ShouldResemble, before)

	second, err := m.Evaluate(controls)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, second, test.ShouldResemble, first)
	for _, sp := range first {
		test.That(t, quat.Abs(sp.Pose.Rotation), test.ShouldAlmostEqual, 1, floatTolerance)
		test.That(t, sp.Chain.HasNaN(), test.ShouldBeFalse)
	}
}

func TestModelValidation(t *testing.T) {
	segs := []Segment{NewSegment("ok", 1), NewSegment("past", 2), NewSegment("negative", -1)}
	m, err := NewModel("bad", 2, segs, NewMapping())
	test.That(t, m, test.ShouldBeNil)
	test.That(t, errors.Is(err, ErrChainIndexOutOfRange), test.ShouldBeTrue)
	test.That(t, multierr.Errors(err), test.ShouldHaveLength, 2)
	test.That(t, err.Error(), test.ShouldContainSubstring, `segment 1 ("past")`)
	test.That(t, err.Error(), test.ShouldContainSubstring, `segment 2 ("negative")`)

	_, err = NewModel("empty", 0, nil, NewMapping())
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "at least one joint")

	_, err = NewModel("spline", 1, nil, Mapping{Rotation: "spline", Translation: TranslationCoupled, AxisGain: 1})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown rotation construction")
}

func TestModelControlCount(t *testing.T) {
	m, err := NewModel("arm", 3, threeStageSegments(), NewMapping())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m.Name(), test.ShouldEqual, "arm")
	test.That(t, m.JointCount(), test.ShouldEqual, 3)
	test.That(t, m.Segments(), test.ShouldHaveLength, 6)
	test.That(t, m.Mapping(), test.ShouldResemble, NewMapping())

	_, err = m.Evaluate(NewJointControls(2))
	test.That(t, errors.Is(err, ErrControlCountMismatch), test.ShouldBeTrue)

	_, err = m.EvaluateSegment(NewJointControls(3), 6)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestModelCopiesSegments(t *testing.T) {
	segs := []Segment{NewSegment("a", 0)}
	m, err := NewModel("copy", 1, segs, NewMapping())
	test.That(t, err, test.ShouldBeNil)
	segs[0].ChainIndex = 7
	test.That(t, m.Segments()[0].ChainIndex, test.ShouldEqual, 0)
}
