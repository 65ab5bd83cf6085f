package rotate

import "gonum.org/v1/gonum/spatial/r2"

// EventType identifies a drag notification.
type EventType uint8

const (
	EventDragBegin EventType = iota
	EventDragMove
	EventDragEnd
	numEventTypes
)

func (t EventType) String() string {
	switch t {
	case EventDragBegin:
		return "begin"
	case EventDragMove:
		return "move"
	case EventDragEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Event is a drag notification raised by an input host.
type Event struct {
	Type  EventType
	Point r2.Vec
}

type handler struct {
	id uint32
	fn func(Event)
}

// Surface is the input boundary: hosts emit drag events on it and
// listeners register handlers. Handlers run synchronously in
// registration order.
type Surface struct {
	handlers [numEventTypes][]handler
	nextID   uint32
}

// NewSurface creates an empty surface.
func NewSurface() *Surface {
	return &Surface{}
}

// Handle allows removing a registered handler.
type Handle struct {
	id    uint32
	s     *Surface
	event EventType
}

// Remove unregisters the handler. Removing twice is a no-op.
func (h Handle) Remove() {
	if h.s == nil || h.event >= numEventTypes {
		return
	}
	list := h.s.handlers[h.event]
	for i := range list {
		if list[i].id == h.id {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = handler{}
			h.s.handlers[h.event] = list[:len(list)-1]
			return
		}
	}
}

// On registers fn for events of type t.
func (s *Surface) On(t EventType, fn func(Event)) Handle {
	s.nextID++
	id := s.nextID
	s.handlers[t] = append(s.handlers[t], handler{id: id, fn: fn})
	return Handle{id: id, s: s, event: t}
}

// OnDragBegin registers fn for drag begin events.
func (s *Surface) OnDragBegin(fn func(r2.Vec)) Handle {
	return s.On(EventDragBegin, func(ev Event) { fn(ev.Point) })
}

// OnDragMove registers fn for drag move events.
func (s *Surface) OnDragMove(fn func(r2.Vec)) Handle {
	return s.On(EventDragMove, func(ev Event) { fn(ev.Point) })
}

// OnDragEnd registers fn for drag end events.
func (s *Surface) OnDragEnd(fn func(r2.Vec)) Handle {
	return s.On(EventDragEnd, func(ev Event) { fn(ev.Point) })
}

// Emit delivers ev to every handler registered for its type.
func (s *Surface) Emit(ev Event) {
	if ev.Type >= numEventTypes {
		return
	}
	// Handlers may remove themselves while running.
	list := append([]handler(nil), s.handlers[ev.Type]...)
	for _, h := range list {
		h.fn(ev)
	}
}

// Begin emits a drag begin at p.
func (s *Surface) Begin(p r2.Vec) { s.Emit(Event{Type: EventDragBegin, Point: p}) }

// Move emits a drag move to p.
func (s *Surface) Move(p r2.Vec) { s.Emit(Event{Type: EventDragMove, Point: p}) }

// End emits a drag end at p.
func (s *Surface) End(p r2.Vec) { s.Emit(Event{Type: EventDragEnd, Point: p}) }

// Listeners returns the number of handlers registered for t.
func (s *Surface) Listeners(t EventType) int {
	if t >= numEventTypes {
		return 0
	}
	return len(s.handlers[t])
}

// Subscription groups handles so they can be released together.
type Subscription struct {
	handles []Handle
}

// Add includes h in the subscription.
func (sub *Subscription) Add(h Handle) {
	sub.handles = append(sub.handles, h)
}

// Close removes every handle. It is safe to call more than once.
func (sub *Subscription) Close() {
	for _, h := range sub.handles {
		h.Remove()
	}
	sub.handles = nil
}

// Bind wires a controller to a surface. Each observer is called with the
// result of every move. Closing the returned subscription detaches the
// controller.
func Bind(s *Surface, c *Controller, observers ...func(Step)) *Subscription {
	sub := &Subscription{}
	sub.Add(s.OnDragBegin(c.Begin))
	sub.Add(s.OnDragMove(func(p r2.Vec) {
		step := c.Move(p)
		for _, obs := range observers {
			obs(step)
		}
	}))
	sub.Add(s.OnDragEnd(func(r2.Vec) { c.End() }))
	return sub
}
