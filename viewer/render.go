package viewer

import (
	"image/color"
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/spin/components"
	"github.com/pthm-cable/spin/rotate"
	"github.com/pthm-cable/spin/telemetry"
	"github.com/pthm-cable/spin/ui"
)

func vec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func tint(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (v *Viewer) camera3D() rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(v.camera.Position()),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       v.camera.Fovy,
		Projection: rl.CameraPerspective,
	}
}

// drawScene draws every model in the scene with its orientation.
func (v *Viewer) drawScene() {
	rl.BeginMode3D(v.camera3D())

	if v.overlays.IsEnabled(ui.OverlayGrid) {
		rl.DrawGrid(10, 1)
	}
	showAxes := v.overlays.IsEnabled(ui.OverlayAxes)
	if showAxes {
		drawAxes(rotate.Identity, r3.Vec{}, 4, 90)
	}

	wire := v.overlays.IsEnabled(ui.OverlayWireframe)
	v.app.Scene.Each(func(_ ecs.Entity, tf *components.Transform, m *components.Model) {
		// raylib wants axis-angle in degrees
		axis, angle := rotate.AxisAngle(tf.Orientation)
		pos := vec3(tf.Position)
		deg := float32(angle * 180 / math.Pi)
		s := float32(tf.Scale)
		scale := rl.NewVector3(s, s, s)
		if wire {
			rl.DrawModelWiresEx(v.model, pos, vec3(axis), deg, scale, tint(m.Color))
		} else {
			rl.DrawModelEx(v.model, pos, vec3(axis), deg, scale, tint(m.Color))
		}
		if showAxes {
			drawAxes(tf.Orientation, tf.Position, float64(m.Size), 255)
		}
	})

	rl.EndMode3D()
}

// drawAxes draws the x (red), y (green) and z (blue) axes of frame q.
func drawAxes(q quat.Number, origin r3.Vec, length float64, alpha uint8) {
	o := vec3(origin)
	axes := []struct {
		dir r3.Vec
		col rl.Color
	}{
		{r3.Vec{X: 1}, rl.Color{R: 230, G: 70, B: 70, A: alpha}},
		{r3.Vec{Y: 1}, rl.Color{R: 70, G: 200, B: 90, A: alpha}},
		{r3.Vec{Z: 1}, rl.Color{R: 80, G: 130, B: 240, A: alpha}},
	}
	for _, a := range axes {
		tip := r3.Add(origin, r3.Scale(length, rotate.Rotate(q, a.dir)))
		rl.DrawLine3D(o, vec3(tip), a.col)
	}
}

// drawHUD draws the 2D overlays and applies control panel edits.
func (v *Viewer) drawHUD() {
	if !v.overlays.IsEnabled(ui.OverlayHUD) {
		return
	}

	v.hud.Draw(ui.HUDData{
		Title:    v.app.Config().Screen.Title,
		Dragging: v.app.Dragging(),
		FPS:      rl.GetFPS(),
		Zoom:     v.camera.Distance,
		Clients:  v.streamClients(),
	})
	v.hud.DrawControls(v.screenHeight, v.overlays.Legend())
	v.drawDragAnchor()

	action := v.controls.Draw(ui.ControlData{
		State:       v.app.Controller.State(),
		Sensitivity: v.app.Controller.Sensitivity(),
		Transform:   v.app.Scene.Transform(v.app.Entity),
		Rotatable:   v.app.Scene.Rotatable(v.app.Entity),
	})
	if action.SensitivityChanged {
		if err := v.app.SetSensitivity(action.Sensitivity); err != nil {
			slog.Warn("sensitivity not applied", "value", action.Sensitivity, "error", err)
		}
	}
	if action.Reset {
		v.app.Reset()
	}

	switch {
	case v.overlays.IsEnabled(ui.OverlaySession):
		session, active := v.lastSession()
		v.sessionPanel.Draw(v.screenWidth, v.screenHeight, session, active)
	case v.overlays.IsEnabled(ui.OverlayPerf):
		v.perfPanel.Draw(v.screenWidth, v.screenHeight, v.perf.Stats(), telemetry.FramePhases())
	}
}

// drawDragAnchor marks the controller's reference point during a drag.
func (v *Viewer) drawDragAnchor() {
	if !v.app.Dragging() {
		return
	}
	sx, sy := v.camera.SurfaceToScreen(v.app.Controller.Last())
	rl.DrawCircleLines(int32(sx), int32(sy), 6, rl.Color{R: 240, G: 200, B: 80, A: 200})
}

func (v *Viewer) streamClients() int {
	if v.app.Hub == nil {
		return -1
	}
	return v.app.Hub.Clients()
}

// lastSession returns the open session, or the most recent finished one.
func (v *Viewer) lastSession() (telemetry.SessionStats, bool) {
	c := v.app.Collector
	if c.Active() {
		return c.Current(), true
	}
	if s := c.Sessions(); len(s) > 0 {
		return s[len(s)-1], false
	}
	return telemetry.SessionStats{}, false
}
