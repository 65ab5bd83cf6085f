// Package camera provides the view camera and the mapping from screen
// pixels to the drag surface.
package camera

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Camera looks at the origin from +Z with +Y up. Only the viewing
// distance changes at runtime; the model itself is what rotates.
type Camera struct {
	// Distance from the target along +Z
	Distance float32

	// Vertical field of view in degrees
	Fovy float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Distance constraints
	MinDistance, MaxDistance float32

	// Screen y already points up (no flip when mapping to the surface)
	InvertY bool

	home float32
}

// New creates a camera at the given distance, clamped to [minDist, maxDist].
func New(viewportW, viewportH, distance, minDist, maxDist, fovy float32) *Camera {
	c := &Camera{
		Fovy:        fovy,
		ViewportW:   viewportW,
		ViewportH:   viewportH,
		MinDistance: minDist,
		MaxDistance: maxDist,
	}
	c.SetDistance(distance)
	c.home = c.Distance
	return c
}

// Position returns the eye position in world space.
func (c *Camera) Position() r3.Vec {
	return r3.Vec{Z: float64(c.Distance)}
}

// ScreenToSurface converts a screen pixel to drag surface coordinates:
// origin at the viewport center, x right, y up.
func (c *Camera) ScreenToSurface(sx, sy float32) r2.Vec {
	x := sx - c.ViewportW/2
	y := c.ViewportH/2 - sy
	if c.InvertY {
		y = -y
	}
	return r2.Vec{X: float64(x), Y: float64(y)}
}

// SurfaceToScreen is the inverse of ScreenToSurface.
func (c *Camera) SurfaceToScreen(p r2.Vec) (sx, sy float32) {
	y := float32(p.Y)
	if c.InvertY {
		y = -y
	}
	return float32(p.X) + c.ViewportW/2, c.ViewportH/2 - y
}

// Contains reports whether a screen pixel lies inside the viewport.
func (c *Camera) Contains(sx, sy float32) bool {
	return sx >= 0 && sy >= 0 && sx < c.ViewportW && sy < c.ViewportH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// SetDistance sets the viewing distance, clamped to min/max.
func (c *Camera) SetDistance(d float32) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy multiplies the viewing distance by the given factor.
// Factors below 1 move the eye closer.
func (c *Camera) ZoomBy(factor float32) {
	c.SetDistance(c.Distance * factor)
}

// Reset returns the camera to its initial distance.
func (c *Camera) Reset() {
	c.Distance = c.home
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
