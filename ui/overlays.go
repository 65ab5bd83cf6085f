package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayHUD       OverlayID = "hud"
	OverlayGrid      OverlayID = "grid"
	OverlayAxes      OverlayID = "axes"
	OverlayWireframe OverlayID = "wireframe"
	OverlaySession   OverlayID = "session"
	OverlayPerf      OverlayID = "perf"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID        OverlayID
	Name      string
	Key       int32  // 0 = no key
	KeyLabel  string // e.g. "H"
	Default   bool   // enabled at startup
	Exclusive []OverlayID
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the viewer's overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{ID: OverlayHUD, Name: "HUD", Key: rl.KeyH, KeyLabel: "H", Default: true})
	r.Register(OverlayDescriptor{ID: OverlayGrid, Name: "Grid", Key: rl.KeyG, KeyLabel: "G", Default: true})
	r.Register(OverlayDescriptor{ID: OverlayAxes, Name: "Axes", Key: rl.KeyA, KeyLabel: "A", Default: true})
	r.Register(OverlayDescriptor{ID: OverlayWireframe, Name: "Wireframe", Key: rl.KeyW, KeyLabel: "W"})

	// Session and perf share the bottom-right slot
	r.Register(OverlayDescriptor{
		ID: OverlaySession, Name: "Session", Key: rl.KeyS, KeyLabel: "S", Default: true,
		Exclusive: []OverlayID{OverlayPerf},
	})
	r.Register(OverlayDescriptor{
		ID: OverlayPerf, Name: "Perf", Key: rl.KeyP, KeyLabel: "P",
		Exclusive: []OverlayID{OverlaySession},
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.SetEnabled(desc.ID, desc.Default)
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state. Enabling an overlay
// disables its exclusive partners.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}
	r.enabled[id] = enabled
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns all registered overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// HandleKeyPress toggles the overlay bound to key.
// Returns the overlay ID, its new state, and whether a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key != 0 && desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// Legend returns the key hints for the controls line.
func (r *OverlayRegistry) Legend() string {
	s := "Drag: rotate | Wheel: zoom | R: reset"
	for _, desc := range r.descriptors {
		if desc.KeyLabel != "" {
			s += " | " + desc.KeyLabel + ": " + desc.Name
		}
	}
	return s + " | F11: fullscreen"
}
