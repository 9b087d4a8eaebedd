package scene

import (
	"fmt"

	"github.com/quatfk/quatfk/config"
	"github.com/quatfk/quatfk/kinematics"
)

const (
	// DefaultArmName is the name of the built-in arm scene.
	DefaultArmName = "Quaternion Forward Kinematics Demo"
	// DefaultArmStages is the number of stages of the built-in arm.
	DefaultArmStages = 3
	// StageSpacing is the distance along z between the bases of two consecutive stages.
	StageSpacing = 5.0
	// ArmBoxOffset is where the arm box of a stage sits relative to the stage base, along z.
	ArmBoxOffset = -2.0
)

var stageJointNames = []string{"shoulder", "elbow", "wrist"}

// NewArmConfig returns the config of an arm with the given number of stages. Stage i is driven by joints
// 0..i and is made of a base cylinder, a middle cylinder and an arm box.
func NewArmConfig(stages int) *config.Config {
	cfg := &config.Config{
		Name:    DefaultArmName,
		Mapping: config.NewMappingConfig(kinematics.NewMapping()),
	}
	for i := 0; i < stages; i++ {
		jointName := fmt.Sprintf("joint_%d", i)
		if i < len(stageJointNames) {
			jointName = stageJointNames[i]
		}
		cfg.Joints = append(cfg.Joints, config.JointConfig{Name: jointName})

		chainIndex := i
		base := config.Vector{Z: StageSpacing * float64(i)}
		arm := config.Vector{Z: base.Z + ArmBoxOffset}
		cfg.Segments = append(cfg.Segments,
			config.SegmentConfig{
				Name:        fmt.Sprintf("base_%d", i),
				ChainIndex:  &chainIndex,
				Translation: base,
				Shape:       &config.ShapeConfig{Kind: kinematics.ShapeCylinder, Size: config.Vector{X: 1.5, Y: 1}},
			},
			config.SegmentConfig{
				Name:        fmt.Sprintf("middle_%d", i),
				ChainIndex:  &chainIndex,
				Translation: base,
				Shape:       &config.ShapeConfig{Kind: kinematics.ShapeCylinder, Size: config.Vector{X: 0.5, Y: 2}},
			},
			config.SegmentConfig{
				Name:        fmt.Sprintf("arm_%d", i),
				ChainIndex:  &chainIndex,
				Translation: arm,
				Shape:       &config.ShapeConfig{Kind: kinematics.ShapeBox, Size: config.Vector{X: 1, Y: 0.9, Z: 4}},
			},
		)
	}
	return cfg
}
