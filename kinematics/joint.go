// Package kinematics turns per-joint controls into dual quaternion joint transforms, composes them along a
// serial chain and exports the resulting pose of every body segment.
package kinematics

import (
	"github.com/golang/geo/r3"
)

// DefaultTheta is the resting rotation magnitude of a joint control. Zero makes every other control of
// the joint collapse, so controls start slightly off it.
const DefaultTheta = 1e-3

// JointControl is the live control vector of one joint.
type JointControl struct {
	// Theta is the rotation magnitude in radians. It also modulates the translation when the mapping couples the two.
	Theta float64 `json:"theta"`
	// Axis is the rotation axis. It is not normalized: its length scales the rotation.
	Axis r3.Vector `json:"axis"`
	// Offset is the rigid body offset of the joint.
	Offset r3.Vector `json:"offset"`
}

// NewJointControl returns a control at rest.
func NewJointControl() JointControl {
	return JointControl{Theta: DefaultTheta}
}

// NewJointControls returns n controls at rest.
func NewJointControls(n int) []JointControl {
	controls := make([]JointControl, n)
	for i := range controls {
		controls[i] = NewJointControl()
	}
	return controls
}

// Reset puts the control back at rest.
func (jc *JointControl) Reset() {
	*jc = NewJointControl()
}
