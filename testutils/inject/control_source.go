package inject

import (
	"github.com/quatfk/quatfk/kinematics"
	"github.com/quatfk/quatfk/scene"
)

// ControlSource implements scene.ControlSource for testing.
type ControlSource struct {
	scene.ControlSource
	ControlsFunc func() []kinematics.JointControl
}

// Controls calls ControlsFunc.
func (s *ControlSource) Controls() []kinematics.JointControl {
	if s.ControlsFunc == nil {
		return s.ControlSource.Controls()
	}
	return s.ControlsFunc()
}
