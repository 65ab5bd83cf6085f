// Package viewer is the raylib front end: it maps pointer input onto the
// drag surface and draws the rotating model with its HUD.
package viewer

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spin/app"
	"github.com/pthm-cable/spin/camera"
	"github.com/pthm-cable/spin/telemetry"
	"github.com/pthm-cable/spin/ui"
)

// perfLogInterval is how often, in frames, frame stats are logged.
const perfLogInterval = 300

// Viewer draws one App in a raylib window.
type Viewer struct {
	app    *app.App
	camera *camera.Camera
	model  rl.Model

	pointer  pointer
	zoomStep float32

	overlays     *ui.OverlayRegistry
	hud          *ui.HUD
	controls     *ui.ControlPanel
	sessionPanel *ui.SessionPanel
	perfPanel    *ui.PerfPanel

	perf  *telemetry.PerfCollector
	frame int64

	screenWidth  int32
	screenHeight int32
}

// New creates a viewer for a. The raylib window must already be open.
func New(a *app.App) (*Viewer, error) {
	cfg := a.Config()

	model, err := loadModel(app.ModelFromConfig(cfg.Model))
	if err != nil {
		return nil, err
	}

	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	cam := camera.New(float32(w), float32(h),
		float32(cfg.Camera.Distance),
		float32(cfg.Camera.MinDistance),
		float32(cfg.Camera.MaxDistance),
		float32(cfg.Camera.Fovy),
	)
	cam.InvertY = cfg.Rotation.InvertY

	v := &Viewer{
		app:          a,
		camera:       cam,
		model:        model,
		zoomStep:     float32(cfg.Camera.ZoomStep),
		overlays:     ui.NewOverlayRegistry(),
		hud:          ui.NewHUD(),
		controls:     ui.NewControlPanel(300),
		sessionPanel: ui.NewSessionPanel(260),
		perfPanel:    ui.NewPerfPanel(260),
		perf:         telemetry.NewPerfCollector(120),
		screenWidth:  w,
		screenHeight: h,
	}
	v.controls.Layout(w, h)

	slog.Info("viewer ready",
		"width", w,
		"height", h,
		"shape", cfg.Model.Shape,
		"distance", cam.Distance,
	)
	return v, nil
}

// Update handles one frame of input.
func (v *Viewer) Update() {
	v.perf.BeginFrame()
	v.perf.Phase(telemetry.PhaseInput)
	v.handleInput()
}

// Draw renders one frame and closes out its timing.
func (v *Viewer) Draw() {
	v.perf.Phase(telemetry.PhaseRender)
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 18, G: 20, B: 24, A: 255})

	v.perf.Phase(telemetry.PhaseScene)
	v.drawScene()

	v.perf.Phase(telemetry.PhaseHUD)
	v.drawHUD()

	v.perf.EndFrame()
	rl.EndDrawing()
	v.perf.MarkPresent()

	v.frame++
	if v.frame%perfLogInterval == 0 {
		v.logPerf()
	}
}

func (v *Viewer) logPerf() {
	stats := v.perf.Stats()
	slog.Debug("frame perf", "frame", v.frame, "window", v.perf.Frames(), "perf", stats)
	if err := v.app.Out.WritePerf(stats, v.frame); err != nil {
		slog.Warn("perf write failed", "error", err)
	}
}

// Close ends any drag in progress and unloads GPU resources.
func (v *Viewer) Close() {
	if ev, ok := v.pointer.release(); ok {
		v.emit(ev, v.pointer.last)
	}
	rl.UnloadModel(v.model)
}
