package viewer

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spin/rotate"
)

// pointer turns per-frame button state into drag events. A press that
// lands on the HUD or outside the viewport is not captured, so it never
// reaches the surface.
type pointer struct {
	down     bool
	captured bool
	last     r2.Vec
}

// update returns the drag event for this frame, if any. Moves are only
// reported when the position changed.
func (p *pointer) update(down bool, pos r2.Vec, blocked bool) (rotate.EventType, bool) {
	switch {
	case down && !p.down:
		p.down = true
		p.captured = !blocked
		p.last = pos
		if p.captured {
			return rotate.EventDragBegin, true
		}
	case down && p.down:
		if p.captured && pos != p.last {
			p.last = pos
			return rotate.EventDragMove, true
		}
	case !down && p.down:
		p.down = false
		if p.captured {
			p.captured = false
			return rotate.EventDragEnd, true
		}
	}
	return 0, false
}

// release ends a captured drag without a button-up, e.g. when the window
// loses focus.
func (p *pointer) release() (rotate.EventType, bool) {
	captured := p.captured
	p.down, p.captured = false, false
	if captured {
		return rotate.EventDragEnd, true
	}
	return 0, false
}
