// Package components defines ECS components for the viewer scene.
package components

import "image/color"

// Shape selects the mesh a Model is built from.
type Shape string

const (
	ShapeCube   Shape = "cube"
	ShapeSphere Shape = "sphere"
	ShapeTorus  Shape = "torus"
	ShapeKnot   Shape = "knot"
	ShapeFile   Shape = "file"
)

// Model describes what is drawn for an entity.
type Model struct {
	Shape Shape
	Path  string  // source file for ShapeFile
	Size  float32 // edge length or diameter in world units
	Color color.RGBA
}

// Rotatable marks entities the drag controller may rotate.
type Rotatable struct {
	Drags   int     // completed drag sessions
	Steps   int     // applied rotation steps
	LastRad float64 // angle of the last applied step
}
