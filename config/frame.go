package config

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/quatfk/quatfk/kinematics"
	"github.com/quatfk/quatfk/spatialmath"
	"github.com/quatfk/quatfk/utils"
)

// Vector is a 3-component vector as written in config files.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewVector converts an r3.Vector into its config form.
func NewVector(v r3.Vector) Vector {
	return Vector{X: v.X, Y: v.Y, Z: v.Z}
}

// R3 returns the vector as an r3.Vector.
func (v Vector) R3() r3.Vector {
	return r3.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

// Validate ensures every component is finite.
func (v Vector) Validate(path string) error {
	if !utils.IsFinite(v.X, v.Y, v.Z) {
		return utils.NewConfigValidationError(path, errors.Errorf("components must be finite, got %+v", v))
	}
	return nil
}

// Orientation is a rotation of TH degrees about the axis (X, Y, Z). The axis does not need to be normalized.
type Orientation struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
	TH float64 `json:"th"`
}

// Validate ensures the orientation describes a rotation.
func (o Orientation) Validate(path string) error {
	if !utils.IsFinite(o.X, o.Y, o.Z, o.TH) {
		return utils.NewConfigValidationError(path, errors.Errorf("components must be finite, got %+v", o))
	}
	if o.TH != 0 && o.X == 0 && o.Y == 0 && o.Z == 0 {
		return utils.NewConfigValidationError(path, errors.New("a non-zero th needs a non-zero axis"))
	}
	return nil
}

// Quaternion returns the orientation as a unit quaternion.
func (o Orientation) Quaternion() quat.Number {
	r4 := spatialmath.R4AA{Theta: utils.DegToRad(o.TH), RX: o.X, RY: o.Y, RZ: o.Z}
	return r4.ToQuat()
}

// ShapeConfig is the drawing primitive of a segment.
type ShapeConfig struct {
	Kind kinematics.ShapeKind `json:"kind" jsonschema:"enum=box,enum=cylinder"`
	Size Vector               `json:"size"`
}

// Validate ensures the shape kind is known and its size is usable.
func (s ShapeConfig) Validate(path string) error {
	switch s.Kind {
	case kinematics.ShapeBox, kinematics.ShapeCylinder:
	case kinematics.ShapeNone:
		return utils.NewConfigValidationFieldRequiredError(path, "kind")
	default:
		return utils.NewConfigValidationError(path, errors.Errorf("unknown shape kind %q", s.Kind))
	}
	if err := s.Size.Validate(path + ".size"); err != nil {
		return err
	}
	if s.Size.X < 0 || s.Size.Y < 0 || s.Size.Z < 0 {
		return utils.NewConfigValidationError(path+".size", errors.Errorf("dimensions cannot be negative, got %+v", s.Size))
	}
	return nil
}

// Shape converts the config into renderer metadata.
func (s ShapeConfig) Shape() kinematics.Shape {
	return kinematics.Shape{Kind: s.Kind, Size: s.Size.R3()}
}

// ControlConfig is a joint control as written in config and controls files. A missing theta means
// kinematics.DefaultTheta.
type ControlConfig struct {
	Theta  *float64 `json:"theta,omitempty"`
	Axis   Vector   `json:"axis,omitempty"`
	Offset Vector   `json:"offset,omitempty"`
}

// NewControlConfig converts a joint control into its file form.
func NewControlConfig(jc kinematics.JointControl) ControlConfig {
	theta := jc.Theta
	return ControlConfig{Theta: &theta, Axis: NewVector(jc.Axis), Offset: NewVector(jc.Offset)}
}

// Validate ensures every value is finite.
func (c ControlConfig) Validate(path string) error {
	if c.Theta != nil && !utils.IsFinite(*c.Theta) {
		return utils.NewConfigValidationError(path+".theta", errors.Errorf("must be finite, got %v", *c.Theta))
	}
	if err := c.Axis.Validate(path + ".axis"); err != nil {
		return err
	}
	return c.Offset.Validate(path + ".offset")
}

// Control returns the joint control described by the config.
func (c ControlConfig) Control() kinematics.JointControl {
	jc := kinematics.NewJointControl()
	if c.Theta != nil {
		jc.Theta = *c.Theta
	}
	jc.Axis = c.Axis.R3()
	jc.Offset = c.Offset.R3()
	return jc
}
