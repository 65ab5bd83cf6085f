package ui

import (
	"strings"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlayDefaults(t *testing.T) {
	reg := NewOverlayRegistry()

	for _, id := range []OverlayID{OverlayHUD, OverlayGrid, OverlayAxes, OverlaySession} {
		if !reg.IsEnabled(id) {
			t.Errorf("%s should be enabled by default", id)
		}
	}
	if reg.IsEnabled(OverlayWireframe) || reg.IsEnabled(OverlayPerf) {
		t.Error("wireframe and perf should start disabled")
	}
}

func TestOverlayToggle(t *testing.T) {
	reg := NewOverlayRegistry()

	if reg.Toggle(OverlayHUD) {
		t.Error("toggling an enabled overlay should disable it")
	}
	if !reg.Toggle(OverlayHUD) {
		t.Error("second toggle should enable it again")
	}
	if reg.Toggle("missing") {
		t.Error("unknown overlay should not toggle")
	}
}

func TestOverlayExclusive(t *testing.T) {
	reg := NewOverlayRegistry()

	reg.Toggle(OverlayPerf)
	if !reg.IsEnabled(OverlayPerf) || reg.IsEnabled(OverlaySession) {
		t.Error("enabling perf should disable session")
	}

	reg.SetEnabled(OverlaySession, true)
	if reg.IsEnabled(OverlayPerf) {
		t.Error("enabling session should disable perf")
	}
}

func TestOverlayHandleKeyPress(t *testing.T) {
	reg := NewOverlayRegistry()

	id, state, ok := reg.HandleKeyPress(rl.KeyW)
	if !ok || id != OverlayWireframe || !state {
		t.Errorf("W should enable wireframe, got %s %v %v", id, state, ok)
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key should not toggle anything")
	}
}

func TestOverlayLegend(t *testing.T) {
	legend := NewOverlayRegistry().Legend()
	for _, want := range []string{"H: HUD", "W: Wireframe", "R: reset"} {
		if !strings.Contains(legend, want) {
			t.Errorf("legend %q missing %q", legend, want)
		}
	}
}

func TestAnchorPlace(t *testing.T) {
	tests := []struct {
		anchor PanelAnchor
		x, y   int32
	}{
		{AnchorTopLeft, 10, 10},
		{AnchorTopRight, 690, 10},
		{AnchorBottomLeft, 10, 490},
		{AnchorBottomRight, 690, 490},
	}
	for _, tt := range tests {
		x, y := tt.anchor.Place(1000, 600, 300, 100, 10)
		if x != tt.x || y != tt.y {
			t.Errorf("anchor %d: got (%d,%d), want (%d,%d)", tt.anchor, x, y, tt.x, tt.y)
		}
	}
}
