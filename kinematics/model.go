package kinematics

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/quatfk/quatfk/spatialmath"
)

// SegmentPose is the evaluated state of one segment for one frame.
type SegmentPose struct {
	Segment Segment
	// Chain is the cumulative joint transform applied to the segment.
	Chain spatialmath.DualQuaternion
	// Pose is the final renderer pose, Chain applied after Segment.Local.
	Pose spatialmath.Transform
}

// Model is a validated serial chain of joints and the segments it drives. Every segment's chain index is
// checked once at construction, so evaluation never meets an undefined joint reference.
type Model struct {
	name       string
	jointCount int
	segments   []Segment
	mapping    Mapping
}

// NewModel validates the chain description and returns a model. All problems are reported together.
func NewModel(name string, jointCount int, segments []Segment, mapping Mapping) (*Model, error) {
	var err error
	if jointCount < 1 {
		multierr.AppendInto(&err, errors.Errorf("model %q needs at least one joint, got %d", name, jointCount))
	}
	if mErr := mapping.Validate(); mErr != nil {
		multierr.AppendInto(&err, errors.Wrap(mErr, "mapping"))
	}
	for i, seg := range segments {
		if seg.ChainIndex < 0 || seg.ChainIndex >= jointCount {
			multierr.AppendInto(&err, errors.Wrapf(
				NewChainIndexOutOfRangeError(seg.ChainIndex, jointCount), "segment %d (%q)", i, seg.Name))
		}
	}
	if err != nil {
		return nil, err
	}
	segs := make([]Segment, len(segments))
	copy(segs, segments)
	return &Model{name: name, jointCount: jointCount, segments: segs, mapping: mapping}, nil
}

// Name returns the name of the model.
func (m *Model) Name() string {
	return m.name
}

// JointCount returns the number of joints in the chain.
func (m *Model) JointCount() int {
	return m.jointCount
}

// Segments returns a copy of the model's segments.
func (m *Model) Segments() []Segment {
	segs := make([]Segment, len(m.segments))
	copy(segs, m.segments)
	return segs
}

// Mapping returns the joint mapping in use.
func (m *Model) Mapping() Mapping {
	return m.mapping
}

// JointTransforms maps each control to its joint transform.
func (m *Model) JointTransforms(controls []JointControl) ([]spatialmath.DualQuaternion, error) {
	if len(controls) != m.jointCount {
		return nil, NewControlCountMismatchError(len(controls), m.jointCount)
	}
	return m.mapping.JointTransforms(controls), nil
}

// Evaluate recomputes every segment pose from the given controls. controls is only read.
func (m *Model) Evaluate(controls []JointControl) ([]SegmentPose, error) {
	joints, err := m.JointTransforms(controls)
	if err != nil {
		return nil, err
	}
	prefixes := ComposePrefixes(joints)
	poses := make([]SegmentPose, 0, len(m.segments))
	for _, seg := range m.segments {
		sp, err := exportSegment(seg, prefixes[seg.ChainIndex])
		if err != nil {
			return nil, err
		}
		poses = append(poses, sp)
	}
	return poses, nil
}

// EvaluateSegment computes the pose of the i-th segment alone.
func (m *Model) EvaluateSegment(controls []JointControl, i int) (SegmentPose, error) {
	if i < 0 || i >= len(m.segments) {
		return SegmentPose{}, errors.Errorf("segment %d does not exist, model %q has %d", i, m.name, len(m.segments))
	}
	joints, err := m.JointTransforms(controls)
	if err != nil {
		return SegmentPose{}, err
	}
	seg := m.segments[i]
	chain, err := ComposeChain(joints, seg.ChainIndex)
	if err != nil {
		return SegmentPose{}, err
	}
	return exportSegment(seg, chain)
}

func exportSegment(seg Segment, chain spatialmath.DualQuaternion) (SegmentPose, error) {
	pose, err := ExportPose(chain, seg.Local)
	if err != nil {
		return SegmentPose{}, errors.Wrapf(err, "segment %q", seg.Name)
	}
	return SegmentPose{Segment: seg, Chain: chain, Pose: pose}, nil
}
