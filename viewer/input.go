package viewer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spin/rotate"
	"github.com/pthm-cable/spin/ui"
)

// handleInput processes keyboard, wheel and pointer input.
func (v *Viewer) handleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.app.Reset()
		v.camera.Reset()
	}
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, enabled, ok := v.overlays.HandleKeyPress(key); ok {
			slog.Debug("overlay toggled", "overlay", id, "enabled", enabled)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.camera.ZoomBy(1 - wheel*v.zoomStep)
	}

	v.handlePointer()
}

// handlePointer feeds the mouse or the first touch point to the surface.
func (v *Viewer) handlePointer() {
	if !rl.IsWindowFocused() {
		if ev, ok := v.pointer.release(); ok {
			v.emit(ev, v.pointer.last)
		}
		return
	}

	down := rl.IsMouseButtonDown(rl.MouseButtonLeft)
	pos := rl.GetMousePosition()
	if rl.GetTouchPointCount() > 0 {
		down = true
		pos = rl.GetTouchPosition(0)
	}

	blocked := !v.camera.Contains(pos.X, pos.Y) ||
		v.overlays.IsEnabled(ui.OverlayHUD) && v.controls.Contains(pos.X, pos.Y)
	p := r2.Vec{X: float64(pos.X), Y: float64(pos.Y)}
	if ev, ok := v.pointer.update(down, p, blocked); ok {
		v.emit(ev, p)
	}
}

// emit converts a screen point and sends it to the drag surface.
func (v *Viewer) emit(t rotate.EventType, screen r2.Vec) {
	point := v.camera.ScreenToSurface(float32(screen.X), float32(screen.Y))
	v.app.Surface.Emit(rotate.Event{Type: t, Point: point})
}

// handleResize checks for window resize and propagates new dimensions.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == v.screenWidth && h == v.screenHeight {
		return
	}
	v.screenWidth = w
	v.screenHeight = h
	v.camera.Resize(float32(w), float32(h))
	v.controls.Layout(w, h)
}
