package components

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID         string  // Unique identifier
	Label      string  // Display name
	Format     string  // Printf format (e.g., "%.2f")
	Min        float32 // Minimum value (for bars)
	Max        float32 // Maximum value (for bars)
	IsCentered bool    // True for centered bar display
	IsBar      bool    // True to render as progress bar
	Group      string  // Logical grouping
}

// TransformFieldDescriptors returns metadata for Transform fields.
func TransformFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "qw", Label: "w", Format: "%+.4f", Min: -1, Max: 1, IsCentered: true, IsBar: true, Group: "orientation"},
		{ID: "qx", Label: "x", Format: "%+.4f", Min: -1, Max: 1, IsCentered: true, IsBar: true, Group: "orientation"},
		{ID: "qy", Label: "y", Format: "%+.4f", Min: -1, Max: 1, IsCentered: true, IsBar: true, Group: "orientation"},
		{ID: "qz", Label: "z", Format: "%+.4f", Min: -1, Max: 1, IsCentered: true, IsBar: true, Group: "orientation"},
		{ID: "norm", Label: "|q|", Format: "%.9f", Group: "orientation"},
	}
}

// RotatableFieldDescriptors returns metadata for Rotatable fields.
func RotatableFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "drags", Label: "Drags", Format: "%.0f", Group: "activity"},
		{ID: "steps", Label: "Steps", Format: "%.0f", Group: "activity"},
		{ID: "last_deg", Label: "Last", Format: "%.3f deg", Group: "activity"},
	}
}

// TransformValue returns the value of a Transform field by descriptor ID.
func TransformValue(t *Transform, id string) (float64, bool) {
	q := t.Orientation
	switch id {
	case "qw":
		return q.Real, true
	case "qx":
		return q.Imag, true
	case "qy":
		return q.Jmag, true
	case "qz":
		return q.Kmag, true
	case "norm":
		return quat.Abs(q), true
	}
	return 0, false
}

// RotatableValue returns the value of a Rotatable field by descriptor ID.
func RotatableValue(r *Rotatable, id string) (float64, bool) {
	switch id {
	case "drags":
		return float64(r.Drags), true
	case "steps":
		return float64(r.Steps), true
	case "last_deg":
		return r.LastRad * 180 / math.Pi, true
	}
	return 0, false
}
