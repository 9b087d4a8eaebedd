package kinematics

import (
	"github.com/pkg/errors"
)

var (
	// ErrChainIndexOutOfRange is returned when a segment references a joint prefix that does not exist.
	ErrChainIndexOutOfRange = errors.New("chain index out of range")

	// ErrControlCountMismatch is returned when the number of joint controls does not match the number of joints.
	ErrControlCountMismatch = errors.New("joint control count does not match joint count")

	// ErrDegenerateRotation is returned when a composed transform has no usable rotation part.
	ErrDegenerateRotation = errors.New("composed transform has a degenerate rotation")
)

// NewChainIndexOutOfRangeError reports a chain index that does not refer to one of jointCount joints.
func NewChainIndexOutOfRangeError(index, jointCount int) error {
	return errors.Wrapf(ErrChainIndexOutOfRange, "index %d not in [0, %d)", index, jointCount)
}

// NewControlCountMismatchError reports that got controls were supplied for want joints.
func NewControlCountMismatchError(got, want int) error {
	return errors.Wrapf(ErrControlCountMismatch, "got %d controls for %d joints", got, want)
}
