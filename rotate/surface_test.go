package rotate

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestSurfaceDispatchOrder(t *testing.T) {
	s := NewSurface()
	var got []string

	s.OnDragMove(func(r2.Vec) { got = append(got, "a") })
	s.OnDragMove(func(r2.Vec) { got = append(got, "b") })
	s.OnDragBegin(func(r2.Vec) { got = append(got, "begin") })

	s.Begin(r2.Vec{})
	s.Move(r2.Vec{X: 1})

	want := []string{"begin", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("handler %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHandleRemove(t *testing.T) {
	s := NewSurface()
	calls := 0
	h := s.OnDragEnd(func(r2.Vec) { calls++ })

	s.End(r2.Vec{})
	h.Remove()
	h.Remove()
	s.End(r2.Vec{})

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if n := s.Listeners(EventDragEnd); n != 0 {
		t.Errorf("expected no end listeners, got %d", n)
	}
}

func TestHandlerRemovingItselfDuringEmit(t *testing.T) {
	s := NewSurface()
	var h Handle
	first, second := 0, 0
	h = s.OnDragMove(func(r2.Vec) {
		first++
		h.Remove()
	})
	s.OnDragMove(func(r2.Vec) { second++ })

	s.Move(r2.Vec{})
	s.Move(r2.Vec{})

	if first != 1 || second != 2 {
		t.Errorf("first=%d second=%d, want 1 and 2", first, second)
	}
}

func TestBindDrivesController(t *testing.T) {
	s := NewSurface()
	pose := &Pose{}
	c, err := NewController(pose, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	var steps []Step
	sub := Bind(s, c, func(st Step) { steps = append(steps, st) })
	defer sub.Close()

	s.Begin(r2.Vec{})
	s.Move(r2.Vec{X: 5})
	s.Move(r2.Vec{X: 5})
	s.End(r2.Vec{X: 5})

	if c.State() != Idle {
		t.Errorf("expected idle after end, got %v", c.State())
	}
	if len(steps) != 2 {
		t.Fatalf("expected 2 observed steps, got %d", len(steps))
	}
	if !steps[0].Applied() || steps[1].Outcome != StepGated {
		t.Errorf("unexpected outcomes %v, %v", steps[0].Outcome, steps[1].Outcome)
	}
	if pose.Orientation() != steps[0].Orientation {
		t.Errorf("pose %v does not match observed orientation %v", pose.Orientation(), steps[0].Orientation)
	}
}

func TestSubscriptionClose(t *testing.T) {
	s := NewSurface()
	pose := &Pose{}
	c, _ := NewController(pose, DefaultOptions())

	sub := Bind(s, c)
	for _, ev := range []EventType{EventDragBegin, EventDragMove, EventDragEnd} {
		if s.Listeners(ev) != 1 {
			t.Errorf("expected one %v listener", ev)
		}
	}

	sub.Close()
	sub.Close()

	for _, ev := range []EventType{EventDragBegin, EventDragMove, EventDragEnd} {
		if n := s.Listeners(ev); n != 0 {
			t.Errorf("%v listeners after close = %d", ev, n)
		}
	}

	s.Begin(r2.Vec{})
	s.Move(r2.Vec{X: 100})
	if c.State() != Idle || pose.Orientation() != Identity {
		t.Error("closed subscription still drives the controller")
	}
}
