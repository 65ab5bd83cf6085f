package telemetry

import (
	"gonum.org/v1/gonum/num/quat"

	"github.com/pthm-cable/spin/rotate"
)

// TraceRecord is one controller move, flattened for CSV export.
type TraceRecord struct {
	Session string  `csv:"session"`
	Seq     int     `csv:"seq"`
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
	DX      float64 `csv:"dx"`
	DY      float64 `csv:"dy"`
	Outcome string  `csv:"outcome"`
	AxisX   float64 `csv:"axis_x"`
	AxisY   float64 `csv:"axis_y"`
	AxisZ   float64 `csv:"axis_z"`
	Angle   float64 `csv:"angle"`
	QW      float64 `csv:"qw"`
	QX      float64 `csv:"qx"`
	QY      float64 `csv:"qy"`
	QZ      float64 `csv:"qz"`
	Norm    float64 `csv:"norm"`
}

// NewTraceRecord flattens a controller step.
func NewTraceRecord(session string, seq int, step rotate.Step) TraceRecord {
	q := step.Orientation
	return TraceRecord{
		Session: session,
		Seq:     seq,
		X:       step.Point.X,
		Y:       step.Point.Y,
		DX:      step.Delta.X,
		DY:      step.Delta.Y,
		Outcome: step.Outcome.String(),
		AxisX:   step.Axis.X,
		AxisY:   step.Axis.Y,
		AxisZ:   step.Axis.Z,
		Angle:   step.Angle,
		QW:      q.Real,
		QX:      q.Imag,
		QY:      q.Jmag,
		QZ:      q.Kmag,
		Norm:    quat.Abs(q),
	}
}
