package kinematics

import (
	"go.uber.org/multierr"

	"github.com/quatfk/quatfk/spatialmath"
)

// ExportPose converts a cumulative chain transform into the renderer pose of a segment: the chain's rotation
// (renormalized against drift) and translation are applied after the segment's local transform.
func ExportPose(dq spatialmath.DualQuaternion, local spatialmath.Transform) (spatialmath.Transform, error) {
	rot, err := spatialmath.Normalize(dq.Rotation())
	if err != nil {
		return spatialmath.Transform{}, multierr.Combine(ErrDegenerateRotation, err)
	}
	chain := spatialmath.NewTransformFromRotationTranslation(rot, dq.Translation())
	return spatialmath.Compose(chain, local), nil
}
