package components

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform places an entity in world space.
type Transform struct {
	Position    r3.Vec
	Orientation quat.Number // unit quaternion
	Scale       float64
}

// NewTransform returns a transform at pos with identity orientation.
func NewTransform(pos r3.Vec) Transform {
	return Transform{
		Position:    pos,
		Orientation: quat.Number{Real: 1},
		Scale:       1,
	}
}
