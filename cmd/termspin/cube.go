package main

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/spin/rotate"
)

// Nominal pixel size of one terminal cell, so drag distances are in the
// same units the graphical viewer uses.
const (
	cellWidth  = 8
	cellHeight = 16
)

// viewDistance is the eye distance along +Z in cube half-widths.
const viewDistance = 4.0

var cubeVertices = [8]r3.Vec{
	{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
}

var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// cell is a terminal position with the depth of what is drawn there.
type cell struct {
	X, Y  int
	Depth float64 // z in view space, larger is closer
}

// cellToSurface maps a terminal cell to drag surface coordinates with the
// origin at the screen center and y up.
func cellToSurface(col, row, width, height int) r2.Vec {
	return r2.Vec{
		X: float64(col-width/2) * cellWidth,
		Y: float64(height/2-row) * cellHeight,
	}
}

// project maps a view-space point to a terminal cell. scale is the height
// in rows of one unit at the origin.
func project(p r3.Vec, width, height int, scale float64) cell {
	f := viewDistance / (viewDistance - p.Z)
	x := p.X * f * scale * cellHeight / cellWidth
	y := p.Y * f * scale
	return cell{
		X:     width/2 + int(math.Round(x)),
		Y:     height/2 - int(math.Round(y)),
		Depth: p.Z,
	}
}

// wireframe returns the cells covered by the cube's edges under q.
func wireframe(q quat.Number, width, height int) []cell {
	scale := float64(height) / 6
	var pts [8]cell
	for i, v := range cubeVertices {
		pts[i] = project(rotate.Rotate(q, v), width, height, scale)
	}

	var cells []cell
	for _, e := range cubeEdges {
		cells = append(cells, line(pts[e[0]], pts[e[1]])...)
	}
	return cells
}

// line rasterizes a segment with Bresenham's algorithm, interpolating depth.
func line(a, b cell) []cell {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	steps := max(dx, -dy)

	out := make([]cell, 0, steps+1)
	x, y, err := a.X, a.Y, dx+dy
	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		out = append(out, cell{X: x, Y: y, Depth: a.Depth + (b.Depth-a.Depth)*t})
		if x == b.X && y == b.Y {
			return out
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
