package main

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/spin/rotate"
)

func TestCellToSurface(t *testing.T) {
	if p := cellToSurface(40, 12, 80, 24); p.X != 0 || p.Y != 0 {
		t.Errorf("center cell should map to the origin, got %v", p)
	}
	p := cellToSurface(41, 11, 80, 24)
	if p.X != cellWidth || p.Y != cellHeight {
		t.Errorf("up-right cell = %v, want (%d, %d)", p, cellWidth, cellHeight)
	}
}

func TestProjectCenter(t *testing.T) {
	c := project(r3.Vec{}, 80, 24, 4)
	if c.X != 40 || c.Y != 12 {
		t.Errorf("origin projected to (%d,%d), want (40,12)", c.X, c.Y)
	}
	up := project(r3.Vec{Y: 1}, 80, 24, 4)
	if up.Y >= 12 {
		t.Errorf("+Y should be drawn above center, got row %d", up.Y)
	}
	near := project(r3.Vec{X: 1, Z: 1}, 80, 24, 4)
	far := project(r3.Vec{X: 1, Z: -1}, 80, 24, 4)
	if near.X <= far.X {
		t.Error("closer points should project further from center")
	}
}

func TestLineEndpoints(t *testing.T) {
	cells := line(cell{X: 0, Y: 0, Depth: 0}, cell{X: 5, Y: 2, Depth: 1})
	if len(cells) != 6 {
		t.Fatalf("expected 6 cells, got %d", len(cells))
	}
	first, last := cells[0], cells[len(cells)-1]
	if first.X != 0 || first.Y != 0 || last.X != 5 || last.Y != 2 {
		t.Errorf("endpoints %v %v", first, last)
	}
	if last.Depth != 1 {
		t.Errorf("depth at end = %v, want 1", last.Depth)
	}

	if got := line(cell{X: 3, Y: 3}, cell{X: 3, Y: 3}); len(got) != 1 {
		t.Errorf("degenerate line should be one cell, got %d", len(got))
	}
}

func TestWireframeInBounds(t *testing.T) {
	for _, c := range wireframe(rotate.Identity, 80, 24) {
		if c.X < 0 || c.X >= 80 || c.Y < 0 || c.Y >= 24 {
			t.Fatalf("cell %v outside an 80x24 screen", c)
		}
	}
}
