package scene

import (
	"image/color"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/spin/components"
	"github.com/pthm-cable/spin/rotate"
)

func testModel() components.Model {
	return components.Model{Shape: components.ShapeCube, Size: 2, Color: color.RGBA{R: 255, A: 255}}
}

func TestSpawnStartsAtIdentity(t *testing.T) {
	s := New()
	e := s.Spawn(testModel(), r3.Vec{X: 1})

	tf := s.Transform(e)
	if tf.Orientation != rotate.Identity {
		t.Errorf("expected identity orientation, got %v", tf.Orientation)
	}
	if tf.Position != (r3.Vec{X: 1}) {
		t.Errorf("expected position (1,0,0), got %v", tf.Position)
	}
}

func TestTargetWritesTransform(t *testing.T) {
	s := New()
	e := s.Spawn(testModel(), r3.Vec{})
	other := s.Spawn(testModel(), r3.Vec{X: 5})

	c, err := rotate.NewController(s.Target(e), rotate.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	c.Begin(r2.Vec{})
	step := c.Move(r2.Vec{X: 30, Y: 40})
	s.RecordStep(e, step)
	c.End()
	s.RecordDragEnd(e)

	if s.Transform(e).Orientation != step.Orientation {
		t.Errorf("transform %v, want %v", s.Transform(e).Orientation, step.Orientation)
	}
	if s.Transform(other).Orientation != rotate.Identity {
		t.Error("rotation leaked to another entity")
	}

	r := s.Rotatable(e)
	if r.Steps != 1 || r.Drags != 1 || r.LastRad != step.Angle {
		t.Errorf("unexpected counters %+v", *r)
	}

	s.Reset(e)
	if s.Transform(e).Orientation != rotate.Identity {
		t.Error("reset did not restore identity")
	}
}

func TestEachAndRemove(t *testing.T) {
	s := New()
	a := s.Spawn(testModel(), r3.Vec{})
	s.Spawn(testModel(), r3.Vec{X: 3})

	count := 0
	s.Each(func(_ ecs.Entity, _ *components.Transform, _ *components.Model) { count++ })
	if count != 2 {
		t.Errorf("expected 2 entities, got %d", count)
	}

	s.Remove(a)
	s.Remove(a)
	if s.Alive(a) {
		t.Error("removed entity still alive")
	}

	count = 0
	s.Each(func(_ ecs.Entity, _ *components.Transform, _ *components.Model) { count++ })
	if count != 1 {
		t.Errorf("expected 1 entity after remove, got %d", count)
	}
}
