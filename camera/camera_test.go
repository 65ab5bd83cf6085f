package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestNew(t *testing.T) {
	cam := New(1280, 720, 8, 3, 30, 45)

	if cam.Distance != 8 {
		t.Errorf("expected distance 8, got %f", cam.Distance)
	}
	if cam.Position().Z != 8 {
		t.Errorf("expected eye at z=8, got %v", cam.Position())
	}
}

func TestNewClampsDistance(t *testing.T) {
	cam := New(1280, 720, 100, 3, 30, 45)
	if cam.Distance != 30 {
		t.Errorf("expected distance clamped to 30, got %f", cam.Distance)
	}
}

func TestScreenToSurfaceCenter(t *testing.T) {
	cam := New(1280, 720, 8, 3, 30, 45)

	p := cam.ScreenToSurface(640, 360)
	if p != (r2.Vec{}) {
		t.Errorf("expected surface origin at screen center, got %v", p)
	}
}

func TestScreenToSurfaceFlipsY(t *testing.T) {
	cam := New(1280, 720, 8, 3, 30, 45)

	// Screen y grows downward; surface y grows upward
	up := cam.ScreenToSurface(640, 100)
	if up.Y <= 0 {
		t.Errorf("point above center should have positive surface y, got %v", up)
	}
	right := cam.ScreenToSurface(1000, 360)
	if right.X <= 0 || right.Y != 0 {
		t.Errorf("point right of center should map to +x, got %v", right)
	}

	cam.InvertY = true
	if p := cam.ScreenToSurface(640, 100); p.Y >= 0 {
		t.Errorf("with InvertY the point should have negative surface y, got %v", p)
	}
}

func TestSurfaceRoundtrip(t *testing.T) {
	cam := New(1280, 720, 8, 3, 30, 45)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, invert := range []bool{false, true} {
		cam.InvertY = invert
		for _, tc := range testCases {
			p := cam.ScreenToSurface(tc.sx, tc.sy)
			sx, sy := cam.SurfaceToScreen(p)
			if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
				t.Errorf("roundtrip failed (invert=%v): (%f,%f) -> %v -> (%f,%f)",
					invert, tc.sx, tc.sy, p, sx, sy)
			}
		}
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, 8, 3, 30, 45)

	cam.ZoomBy(0.1)
	if cam.Distance != 3 {
		t.Errorf("expected distance clamped to 3, got %f", cam.Distance)
	}

	cam.ZoomBy(100)
	if cam.Distance != 30 {
		t.Errorf("expected distance clamped to 30, got %f", cam.Distance)
	}
}

func TestContains(t *testing.T) {
	cam := New(800, 600, 8, 3, 30, 45)

	if !cam.Contains(0, 0) || !cam.Contains(799, 599) {
		t.Error("corners should be inside the viewport")
	}
	if cam.Contains(800, 10) || cam.Contains(-1, 10) {
		t.Error("points outside the viewport reported inside")
	}

	cam.Resize(1000, 600)
	if !cam.Contains(900, 10) {
		t.Error("resize not applied")
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, 8, 3, 30, 45)
	cam.ZoomBy(2.5)

	cam.Reset()

	if cam.Distance != 8 {
		t.Errorf("expected distance 8, got %f", cam.Distance)
	}
}
