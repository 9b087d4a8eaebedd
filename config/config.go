// Package config defines the scene file: the joints of a serial chain, the segments they drive and the
// joint mapping in use. A config is validated once, when it is read, and then turned into a kinematics.Model.
package config

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"github.com/quatfk/quatfk/kinematics"
	"github.com/quatfk/quatfk/spatialmath"
	"github.com/quatfk/quatfk/utils"
)

// A Config describes a scene: a serial chain of joints and the segments attached to it.
type Config struct {
	Name     string             `json:"name"`
	Mapping  MappingConfig   `json:"mapping,omitempty"`
	Joints   []JointConfig   `json:"joints"`
	Segments []SegmentConfig `json:"segments"`
}

// MappingConfig selects the joint mapping. Unset fields take the kinematics.NewMapping defaults; an
// explicit axis_gain of 0 is kept and rejected by Ensure.
type MappingConfig struct {
	Rotation    kinematics.RotationConstruction `json:"rotation,omitempty" jsonschema:"enum=exponential,enum=trigonometric"`
	Translation kinematics.TranslationScaling   `json:"translation,omitempty" jsonschema:"enum=coupled,enum=decoupled"`
	AxisGain    *float64                        `json:"axis_gain,omitempty"`
}

// NewMappingConfig returns the config of a mapping.
func NewMappingConfig(m kinematics.Mapping) MappingConfig {
	gain := m.AxisGain
	return MappingConfig{Rotation: m.Rotation, Translation: m.Translation, AxisGain: &gain}
}

// Mapping converts the config into a kinematics.Mapping, filling unset fields with defaults.
func (config MappingConfig) Mapping() kinematics.Mapping {
	m := kinematics.Mapping{Rotation: config.Rotation, Translation: config.Translation}.WithDefaults()
	if config.AxisGain != nil {
		m.AxisGain = *config.AxisGain
	}
	return m
}

// JointConfig names a joint of the chain and optionally its initial control.
type JointConfig struct {
	Name    string         `json:"name"`
	Initial *ControlConfig `json:"initial,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (config *JointConfig) Validate(path string) error {
	if config.Name == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "name")
	}
	if config.Initial != nil {
		return config.Initial.Validate(path + ".initial")
	}
	return nil
}

// SegmentConfig describes a segment: the joint prefix driving it and its static local transform.
type SegmentConfig struct {
	Name        string       `json:"name"`
	ChainIndex  *int         `json:"chain_index"`
	Translation Vector       `json:"translation,omitempty"`
	Orientation *Orientation `json:"orientation,omitempty"`
	Shape       *ShapeConfig `json:"shape,omitempty"`
}

// Validate ensures all parts of the config are valid. jointCount is the length of the chain the segment
// must index into.
func (config *SegmentConfig) Validate(path string, jointCount int) error {
	if config.Name == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "name")
	}
	if config.ChainIndex == nil {
		return utils.NewConfigValidationFieldRequiredError(path, "chain_index")
	}
	if idx := *config.ChainIndex; idx < 0 || idx >= jointCount {
		return utils.NewConfigValidationError(path+".chain_index", kinematics.NewChainIndexOutOfRangeError(idx, jointCount))
	}
	if err := config.Translation.Validate(path + ".translation"); err != nil {
		return err
	}
	if config.Orientation != nil {
		if err := config.Orientation.Validate(path + ".orientation"); err != nil {
			return err
		}
	}
	if config.Shape != nil {
		if err := config.Shape.Validate(path + ".shape"); err != nil {
			return err
		}
	}
	return nil
}

// Local returns the static local transform of the segment.
func (config *SegmentConfig) Local() spatialmath.Transform {
	rot := spatialmath.NewZeroQuaternion()
	if config.Orientation != nil {
		rot = config.Orientation.Quaternion()
	}
	return spatialmath.NewTransformFromRotationTranslation(rot, config.Translation.R3())
}

// Segment converts the config into a kinematics.Segment. The config must be valid.
func (config *SegmentConfig) Segment() kinematics.Segment {
	seg := kinematics.NewSegment(config.Name, *config.ChainIndex).WithLocal(config.Local())
	if config.Shape != nil {
		seg = seg.WithShape(config.Shape.Shape())
	}
	return seg
}

// Ensure fills in defaults and validates the whole config, reporting every problem found.
func (c *Config) Ensure() error {
	c.Mapping = NewMappingConfig(c.Mapping.Mapping())

	var err error
	if c.Name == "" {
		multierr.AppendInto(&err, utils.NewConfigValidationFieldRequiredError("scene", "name"))
	}
	if mErr := c.Mapping.Mapping().Validate(); mErr != nil {
		multierr.AppendInto(&err, utils.NewConfigValidationError("mapping", mErr))
	}
	if len(c.Joints) == 0 {
		multierr.AppendInto(&err, utils.NewConfigValidationError("joints", errors.New("at least one joint is required")))
	}

	jointNames := make(map[string]int, len(c.Joints))
	for idx := 0; idx < len(c.Joints); idx++ {
		path := fmt.Sprintf("%s.%d", "joints", idx)
		if jErr := c.Joints[idx].Validate(path); jErr != nil {
			multierr.AppendInto(&err, jErr)
			continue
		}
		if prev, ok := jointNames[c.Joints[idx].Name]; ok {
			multierr.AppendInto(&err, utils.NewConfigValidationError(path,
				errors.Errorf("joint name %q already used by joints.%d", c.Joints[idx].Name, prev)))
		}
		jointNames[c.Joints[idx].Name] = idx
	}

	segmentNames := make(map[string]int, len(c.Segments))
	for idx := 0; idx < len(c.Segments); idx++ {
		path := fmt.Sprintf("%s.%d", "segments", idx)
		if sErr := c.Segments[idx].Validate(path, len(c.Joints)); sErr != nil {
			multierr.AppendInto(&err, sErr)
			continue
		}
		if prev, ok := segmentNames[c.Segments[idx].Name]; ok {
			multierr.AppendInto(&err, utils.NewConfigValidationError(path,
				errors.Errorf("segment name %q already used by segments.%d", c.Segments[idx].Name, prev)))
		}
		segmentNames[c.Segments[idx].Name] = idx
	}
	return err
}

// Model builds the kinematic model described by the config.
func (c *Config) Model() (*kinematics.Model, error) {
	segments := make([]kinematics.Segment, 0, len(c.Segments))
	for idx := range c.Segments {
		if c.Segments[idx].ChainIndex == nil {
			return nil, utils.NewConfigValidationFieldRequiredError(fmt.Sprintf("segments.%d", idx), "chain_index")
		}
		segments = append(segments, c.Segments[idx].Segment())
	}
	return kinematics.NewModel(c.Name, len(c.Joints), segments, c.Mapping.Mapping())
}

// InitialControls returns the starting control of every joint, at rest unless the config says otherwise.
func (c *Config) InitialControls() []kinematics.JointControl {
	controls := kinematics.NewJointControls(len(c.Joints))
	for i, joint := range c.Joints {
		if joint.Initial != nil {
			controls[i] = joint.Initial.Control()
		}
	}
	return controls
}

// JointNames returns the joint names in chain order.
func (c *Config) JointNames() []string {
	return lo.Map(c.Joints, func(joint JointConfig, _ int) string {
		return joint.Name
	})
}

// String prints out a table of each segment, with columns of name, driving joints, translation,
// orientation and shape.
func (c Config) String() string {
	t := table.NewWriter()
	t.SetTitle(c.Name)
	t.AppendHeader(table.Row{"#", "Segment", "Joints", "Translation", "Orientation", "Shape"})
	names := c.JointNames()
	for i, seg := range c.Segments {
		joints := ""
		if seg.ChainIndex != nil && *seg.ChainIndex >= 0 && *seg.ChainIndex < len(names) {
			joints = strings.Join(names[:*seg.ChainIndex+1], " > ")
		}
		orientation := ""
		if seg.Orientation != nil {
			o := seg.Orientation
			orientation = fmt.Sprintf("TH:%.2f X:%.2f Y:%.2f Z:%.2f", o.TH, o.X, o.Y, o.Z)
		}
		shape := ""
		if seg.Shape != nil {
			shape = fmt.Sprintf("%s (%.2f, %.2f, %.2f)", seg.Shape.Kind, seg.Shape.Size.X, seg.Shape.Size.Y, seg.Shape.Size.Z)
		}
		t.AppendRow([]interface{}{
			fmt.Sprint(i + 1),
			seg.Name,
			joints,
			fmt.Sprintf("X:%.2f Y:%.2f Z:%.2f", seg.Translation.X, seg.Translation.Y, seg.Translation.Z),
			orientation,
			shape,
		})
	}
	return t.Render()
}
