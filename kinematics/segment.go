package kinematics

import (
	"github.com/golang/geo/r3"

	"github.com/quatfk/quatfk/spatialmath"
)

// ShapeKind names the primitive a renderer should draw for a segment.
type ShapeKind string

// Known shape kinds.
const (
	ShapeNone     ShapeKind = ""
	ShapeBox      ShapeKind = "box"
	ShapeCylinder ShapeKind = "cylinder"
)

// Shape is drawing metadata carried alongside a segment. For a box Size holds the x, y and z extents; for a
// cylinder Size.X is the radius and Size.Y the height.
type Shape struct {
	Kind ShapeKind `json:"kind,omitempty"`
	Size r3.Vector `json:"size"`
}

// Segment is a rigid body part driven by the joint prefix 0..ChainIndex. Local is the segment's own offset
// relative to the end of that prefix and never changes.
type Segment struct {
	Name       string
	ChainIndex int
	Local      spatialmath.Transform
	Shape      Shape
}

// NewSegment returns a segment with an identity local transform.
func NewSegment(name string, chainIndex int) Segment {
	return Segment{Name: name, ChainIndex: chainIndex, Local: spatialmath.NewTransform()}
}

// WithLocal returns a copy of the segment with the given local transform.
func (s Segment) WithLocal(local spatialmath.Transform) Segment {
	s.Local = local
	return s
}

// WithShape returns a copy of the segment with the given shape.
func (s Segment) WithShape(shape Shape) Segment {
	s.Shape = shape
	return s
}
