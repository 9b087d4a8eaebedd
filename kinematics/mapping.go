package kinematics

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/quatfk/quatfk/spatialmath"
	"github.com/quatfk/quatfk/utils"
)

// DefaultAxisGain scales rotation axes before they are turned into a rotation. It keeps the usable part of
// the rotation within reach of controls whose theta sits near DefaultTheta.
const DefaultAxisGain = 100.0

// RotationConstruction selects how the real (rotation) part of a joint transform is built.
type RotationConstruction string

// TranslationScaling selects how the dual (translation) part of a joint transform is built.
type TranslationScaling string

const (
	// RotationExponential builds the rotation as exp(theta*gain*axis/2). It is unit by construction.
	RotationExponential RotationConstruction = "exponential"
	// RotationTrigonometric builds (cos(theta/2), sin(theta*gain*axis/2)) componentwise and normalizes it,
	// falling back to the identity when the result is degenerate.
	RotationTrigonometric RotationConstruction = "trigonometric"

	// TranslationCoupled uses 0.5*offset*cos(theta/2) as a pure vector dual part, so the translation
	// magnitude follows theta.
	TranslationCoupled TranslationScaling = "coupled"
	// TranslationDecoupled uses 0.5*offset*real, a rigid transform whose translation is exactly offset.
	TranslationDecoupled TranslationScaling = "decoupled"
)

// Mapping turns a JointControl into a joint transform.
type Mapping struct {
	Rotation    RotationConstruction `json:"rotation,omitempty" jsonschema:"enum=exponential,enum=trigonometric"`
	Translation TranslationScaling   `json:"translation,omitempty" jsonschema:"enum=coupled,enum=decoupled"`
	AxisGain    float64              `json:"axis_gain,omitempty"`
}

// NewMapping returns the default mapping: exponential rotation, coupled translation and DefaultAxisGain.
func NewMapping() Mapping {
	return Mapping{
		Rotation:    RotationExponential,
		Translation: TranslationCoupled,
		AxisGain:    DefaultAxisGain,
	}
}

// WithDefaults fills unset fields from NewMapping. A zero AxisGain counts as unset; configs that need to
// tell an explicit 0 apart go through config.MappingConfig.
func (m Mapping) WithDefaults() Mapping {
	def := NewMapping()
	if m.Rotation == "" {
		m.Rotation = def.Rotation
	}
	if m.Translation == "" {
		m.Translation = def.Translation
	}
	if m.AxisGain == 0 {
		m.AxisGain = def.AxisGain
	}
	return m
}

// Validate checks that the mapping names known variants and a usable gain.
func (m Mapping) Validate() error {
	switch m.Rotation {
	case RotationExponential, RotationTrigonometric:
	default:
		return errors.Errorf("unknown rotation construction %q", m.Rotation)
	}
	switch m.Translation {
	case TranslationCoupled, TranslationDecoupled:
	default:
		return errors.Errorf("unknown translation scaling %q", m.Translation)
	}
	if m.AxisGain == 0 || math.IsNaN(m.AxisGain) || math.IsInf(m.AxisGain, 0) {
		return errors.Errorf("axis gain must be finite and non-zero, got %v", m.AxisGain)
	}
	return nil
}

// JointTransform maps one joint control to its dual quaternion. The mapping is assumed to be valid.
func (m Mapping) JointTransform(jc JointControl) spatialmath.DualQuaternion {
	var rot quat.Number
	switch m.Rotation {
	case RotationTrigonometric:
		rot = spatialmath.NormalizeOrIdentity(quat.Number{
			Real: math.Cos(jc.Theta / 2),
			Imag: math.Sin(utils.ModProduct(fullTurn, jc.Theta, m.AxisGain, jc.Axis.X) / 2),
			Jmag: math.Sin(utils.ModProduct(fullTurn, jc.Theta, m.AxisGain, jc.Axis.Y) / 2),
			Kmag: math.Sin(utils.ModProduct(fullTurn, jc.Theta, m.AxisGain, jc.Axis.Z) / 2),
		})
	default:
		rot = spatialmath.ExpMap(m.halfAngle(jc))
	}

	var trans quat.Number
	switch m.Translation {
	case TranslationDecoupled:
		trans = quat.Scale(0.5, quat.Mul(spatialmath.NewQuaternion(0, jc.Offset), rot))
	default:
		trans = spatialmath.NewQuaternion(0, jc.Offset.Mul(0.5*math.Cos(jc.Theta/2)))
	}
	return spatialmath.NewDualQuaternionFromParts(rot, trans)
}

// fullTurn is the period of a unit quaternion in its rotation angle.
const fullTurn = 4 * math.Pi

// halfAngle is theta*gain*axis/2 with the angle reduced to one full turn, so huge controls stay finite.
func (m Mapping) halfAngle(jc JointControl) r3.Vector {
	scale := max(math.Abs(jc.Axis.X), math.Abs(jc.Axis.Y), math.Abs(jc.Axis.Z))
	if scale == 0 {
		return r3.Vector{}
	}
	dir := jc.Axis.Mul(1 / scale)
	norm := dir.Norm()
	angle := utils.ModProduct(fullTurn, jc.Theta, m.AxisGain, scale, norm)
	return dir.Mul(angle / (2 * norm))
}

// JointTransforms maps every control in order.
func (m Mapping) JointTransforms(controls []JointControl) []spatialmath.DualQuaternion {
	dqs := make([]spatialmath.DualQuaternion, len(controls))
	for i, jc := range controls {
		dqs[i] = m.JointTransform(jc)
	}
	return dqs
}
