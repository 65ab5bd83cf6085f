package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spin/components"
	"github.com/pthm-cable/spin/rotate"
)

// ControlData is what the control panel displays.
type ControlData struct {
	State       rotate.State
	Sensitivity float64
	Transform   *components.Transform
	Rotatable   *components.Rotatable
}

// ControlAction reports what the user changed in the control panel.
type ControlAction struct {
	Sensitivity        float64 // new value when SensitivityChanged
	SensitivityChanged bool
	Reset              bool
}

// ControlPanel is the top-right panel: a sensitivity slider, a reset
// button and the orientation readouts.
type ControlPanel struct {
	renderer *Renderer
	width    int32
	x, y     int32
	height   int32
}

// NewControlPanel creates a control panel of the given width.
func NewControlPanel(width int32) *ControlPanel {
	p := &ControlPanel{renderer: NewRenderer(), width: width}
	p.height = p.contentHeight()
	return p
}

func (p *ControlPanel) contentHeight() int32 {
	r := p.renderer
	h := r.Theme.Padding*2 + 5*r.Theme.LineHeight + 20 + 8 + 30 + 8
	h += r.FieldsHeight(components.TransformFieldDescriptors())
	h += r.FieldsHeight(components.RotatableFieldDescriptors())
	return h
}

// Layout anchors the panel top-right for the current screen size.
func (p *ControlPanel) Layout(screenW, screenH int32) {
	p.x, p.y = AnchorTopRight.Place(screenW, screenH, p.width, p.height, 10)
}

// Bounds returns the panel rectangle in screen pixels.
func (p *ControlPanel) Bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(p.x), Y: float32(p.y), Width: float32(p.width), Height: float32(p.height)}
}

// Contains reports whether a screen point is over the panel. Presses
// over the panel belong to the widgets, not to the drag surface.
func (p *ControlPanel) Contains(x, y float32) bool {
	b := p.Bounds()
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// Draw renders the panel and returns the user's edits. The slider is
// locked while a drag is in progress.
func (p *ControlPanel) Draw(data ControlData) ControlAction {
	var action ControlAction
	r := p.renderer
	r.DrawPanel(p.x, p.y, p.width, p.height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	inner := p.width - r.Theme.Padding*2

	y = r.DrawSectionHeader(x, y, "Rotation")
	y = r.DrawLabelValue(x, y, "State", data.State.String())
	y = r.DrawLabelValue(x, y, "Sensitivity", fmt.Sprintf("%.4f rad/unit", data.Sensitivity))

	dragging := data.State == rotate.Dragging
	if dragging {
		gui.Lock()
	}
	lo, hi := sensitivityRange(data.Sensitivity)
	value := gui.SliderBar(
		rl.Rectangle{X: float32(x + 30), Y: float32(y), Width: float32(inner - 60), Height: 20},
		"slow", "fast",
		float32(data.Sensitivity), float32(lo), float32(hi),
	)
	if dragging {
		gui.Unlock()
	}
	if !dragging && value != float32(data.Sensitivity) {
		action.Sensitivity = float64(value)
		action.SensitivityChanged = true
	}
	y += 20 + 8

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 120, Height: 30}, "Reset orientation") {
		action.Reset = true
	}
	y += 30 + 8

	if data.Transform != nil {
		y = r.DrawSectionHeader(x, y, "Orientation")
		for _, fd := range components.TransformFieldDescriptors() {
			if v, ok := components.TransformValue(data.Transform, fd.ID); ok {
				y = r.DrawField(x, y, fd, v, inner)
			}
		}
	}
	if data.Rotatable != nil {
		y = r.DrawSectionHeader(x, y, "Activity")
		for _, fd := range components.RotatableFieldDescriptors() {
			if v, ok := components.RotatableValue(data.Rotatable, fd.ID); ok {
				y = r.DrawField(x, y, fd, v, inner)
			}
		}
	}
	return action
}

// sensitivityRange returns the slider limits: the recommended range,
// stretched to include current so an idle slider never clamps it.
func sensitivityRange(current float64) (lo, hi float64) {
	lo, hi = rotate.MinSensitivity, rotate.MaxSensitivity
	if current < lo {
		lo = current
	}
	if current > hi {
		hi = current
	}
	return lo, hi
}
