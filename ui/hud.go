package ui

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spin/telemetry"
)

// HUDData holds the status line values.
type HUDData struct {
	Title    string
	Dragging bool
	FPS      int32
	Zoom     float32
	Clients  int // connected stream clients, -1 when streaming is off
}

// HUD renders the status text and the control legend.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the status lines in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	info := fmt.Sprintf("FPS: %d | Distance: %.1f", data.FPS, data.Zoom)
	if data.Clients >= 0 {
		info += fmt.Sprintf(" | Stream clients: %d", data.Clients)
	}
	rl.DrawText(info, 10, 35, 16, rl.LightGray)

	status, color := "Idle", rl.LightGray
	if data.Dragging {
		status, color = "Dragging", h.renderer.Theme.Highlight
	}
	rl.DrawText(status, 10, 55, 16, color)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// SessionPanel shows the current or most recent drag session.
type SessionPanel struct {
	renderer *Renderer
	width    int32
}

// NewSessionPanel creates a session panel of the given width.
func NewSessionPanel(width int32) *SessionPanel {
	return &SessionPanel{renderer: NewRenderer(), width: width}
}

// Draw renders the panel anchored bottom-right.
func (p *SessionPanel) Draw(screenW, screenH int32, s telemetry.SessionStats, active bool) {
	r := p.renderer
	height := r.Theme.LineHeight*7 + r.Theme.Padding*2
	x, y := AnchorBottomRight.Place(screenW, screenH, p.width, height, 40)
	r.DrawPanel(x, y, p.width, height)

	x += r.Theme.Padding
	y += r.Theme.Padding
	title := "Last drag"
	if active {
		title = "Dragging"
	}
	y = r.DrawSectionHeader(x, y, title)
	if s.Session == "" {
		r.DrawLabelValue(x, y, "Session", "none yet")
		return
	}
	y = r.DrawLabelValue(x, y, "Session", shortID(s.Session))
	y = r.DrawLabelValue(x, y, "Moves", fmt.Sprintf("%d (%d gated)", s.Moves, s.Gated))
	y = r.DrawLabelValue(x, y, "Path", fmt.Sprintf("%.1f", s.PathLength))
	y = r.DrawLabelValue(x, y, "Turned", fmt.Sprintf("%.2f deg", s.TotalAngle*180/math.Pi))
	y = r.DrawLabelValue(x, y, "Gated", fmt.Sprintf("%.0f%%", s.GatedRate()*100))
	r.DrawLabelValue(x, y, "Duration", fmt.Sprintf("%d ms", s.DurationMS))
}

// PerfPanel renders the frame phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	width    int32
}

// NewPerfPanel creates a performance panel of the given width.
func NewPerfPanel(width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), width: width}
}

// Draw renders the panel anchored bottom-right.
func (p *PerfPanel) Draw(screenW, screenH int32, stats telemetry.PerfStats, phases []string) {
	r := p.renderer
	height := r.Theme.LineHeight*int32(len(phases)+2) + r.Theme.Padding*2
	x, y := AnchorBottomRight.Place(screenW, screenH, p.width, height, 40)
	r.DrawPanel(x, y, p.width, height)

	x += r.Theme.Padding
	y += r.Theme.Padding
	y = r.DrawSectionHeader(x, y, "Frame")
	rl.DrawText(fmt.Sprintf("Work: %s (max %s)", stats.AvgWork.Round(time.Microsecond), stats.MaxWork.Round(time.Microsecond)),
		x, y, r.Theme.FontSize, rl.Yellow)
	y += r.Theme.LineHeight

	for _, name := range phases {
		pct := stats.PhasePct[name]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-8s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, r.Theme.FontSize, color,
		)
		y += r.Theme.LineHeight
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
