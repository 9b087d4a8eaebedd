package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/quatfk/quatfk/kinematics"
	"github.com/quatfk/quatfk/spatialmath"
	"github.com/quatfk/quatfk/utils"
)

// Frame is one evaluated state of the scene.
type Frame struct {
	Scene string
	Index int
	Time  time.Time
	Poses []kinematics.SegmentPose
}

// A Renderer consumes frames. It only reads the poses it is given.
type Renderer interface {
	Render(frame Frame) error
}

// RendererFunc adapts a function to a Renderer.
type RendererFunc func(frame Frame) error

// Render calls f(frame).
func (f RendererFunc) Render(frame Frame) error {
	return f(frame)
}

// TableRenderer writes each frame as a table of segment poses.
type TableRenderer struct {
	w io.Writer
}

// NewTableRenderer returns a renderer writing tables to w.
func NewTableRenderer(w io.Writer) *TableRenderer {
	return &TableRenderer{w: w}
}

// Render writes the frame.
func (r *TableRenderer) Render(frame Frame) error {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetTitle(fmt.Sprintf("%s, frame %d", frame.Scene, frame.Index))
	t.AppendHeader(table.Row{"#", "Segment", "Chain", "Translation", "Rotation (xyzw)", "Angle", "Shape"})
	for i, sp := range frame.Poses {
		rot := spatialmath.QuatToXYZW(sp.Pose.Rotation)
		shape := ""
		if sp.Segment.Shape.Kind != kinematics.ShapeNone {
			shape = string(sp.Segment.Shape.Kind)
		}
		t.AppendRow([]interface{}{
			fmt.Sprint(i + 1),
			sp.Segment.Name,
			fmt.Sprintf("0..%d", sp.Segment.ChainIndex),
			fmt.Sprintf("X:%.4f Y:%.4f Z:%.4f", sp.Pose.Translation.X, sp.Pose.Translation.Y, sp.Pose.Translation.Z),
			fmt.Sprintf("%.4f %.4f %.4f %.4f", rot[0], rot[1], rot[2], rot[3]),
			fmt.Sprintf("%.2f deg", utils.RadToDeg(spatialmath.QuatToR4AA(sp.Pose.Rotation).Theta)),
			shape,
		})
	}
	t.Render()
	return nil
}

// PoseRecord is the serialized pose of one segment.
type PoseRecord struct {
	Name        string     `json:"name"`
	ChainIndex  int        `json:"chain_index"`
	Translation [3]float64 `json:"translation"`
	Rotation    [4]float64 `json:"rotation"`
	Scale       [3]float64 `json:"scale"`
	Matrix      []float64  `json:"matrix,omitempty"`
}

// FrameRecord is the serialized form of a frame. Rotations are x, y, z, w and matrices column-major.
type FrameRecord struct {
	Scene    string       `json:"scene"`
	Frame    int          `json:"frame"`
	Time     time.Time    `json:"time"`
	Segments []PoseRecord `json:"segments"`
}

// NewFrameRecord converts a frame for serialization. withMatrix adds the homogeneous matrix of every pose.
func NewFrameRecord(frame Frame, withMatrix bool) FrameRecord {
	return FrameRecord{
		Scene: frame.Scene,
		Frame: frame.Index,
		Time:  frame.Time,
		Segments: lo.Map(frame.Poses, func(sp kinematics.SegmentPose, _ int) PoseRecord {
			return newPoseRecord(sp, withMatrix)
		}),
	}
}

func newPoseRecord(sp kinematics.SegmentPose, withMatrix bool) PoseRecord {
	p := sp.Pose
	pr := PoseRecord{
		Name:        sp.Segment.Name,
		ChainIndex:  sp.Segment.ChainIndex,
		Translation: [3]float64{p.Translation.X, p.Translation.Y, p.Translation.Z},
		Rotation:    spatialmath.QuatToXYZW(p.Rotation),
		Scale:       [3]float64{p.Scale.X, p.Scale.Y, p.Scale.Z},
	}
	if withMatrix {
		m := p.Matrix()
		pr.Matrix = m[:]
	}
	return pr
}

// JSONLinesRenderer writes one JSON object per frame.
type JSONLinesRenderer struct {
	enc        *json.Encoder
	withMatrix bool
}

// NewJSONLinesRenderer returns a renderer writing JSON lines to w.
func NewJSONLinesRenderer(w io.Writer, withMatrix bool) *JSONLinesRenderer {
	return &JSONLinesRenderer{enc: json.NewEncoder(w), withMatrix: withMatrix}
}

// Render writes the frame.
func (r *JSONLinesRenderer) Render(frame Frame) error {
	return r.enc.Encode(NewFrameRecord(frame, r.withMatrix))
}
