package app

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spin/config"
	"github.com/pthm-cable/spin/rotate"
)

func newApp(t *testing.T, opts Options) *App {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	a, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestDragRotatesSceneEntity(t *testing.T) {
	a := newApp(t, Options{})

	a.Surface.Begin(r2.Vec{})
	if !a.Dragging() {
		t.Fatal("expected dragging after begin")
	}
	a.Surface.Move(r2.Vec{X: 10})
	a.Surface.End(r2.Vec{X: 10})

	if a.Orientation() == rotate.Identity {
		t.Fatal("orientation unchanged after a drag")
	}
	if d := quat.Abs(a.Orientation()) - 1; d > 1e-9 || d < -1e-9 {
		t.Errorf("orientation not unit length: %v", a.Orientation())
	}

	r := a.Scene.Rotatable(a.Entity)
	if r.Drags != 1 || r.Steps != 1 {
		t.Errorf("activity counters %+v, want 1 drag and 1 step", *r)
	}
	if len(a.Collector.Sessions()) != 1 {
		t.Errorf("expected 1 session, got %d", len(a.Collector.Sessions()))
	}
}

func TestReset(t *testing.T) {
	a := newApp(t, Options{})

	a.Surface.Begin(r2.Vec{})
	a.Surface.Move(r2.Vec{Y: 10})
	a.Surface.End(r2.Vec{Y: 10})
	a.Reset()

	if a.Orientation() != rotate.Identity {
		t.Errorf("expected identity after reset, got %v", a.Orientation())
	}
}

func TestSetSensitivity(t *testing.T) {
	a := newApp(t, Options{})

	if err := a.SetSensitivity(0.005); err != nil {
		t.Fatalf("SetSensitivity: %v", err)
	}
	a.Surface.Begin(r2.Vec{})
	if err := a.SetSensitivity(0.003); err == nil {
		t.Error("expected an error while dragging")
	}
	if a.Controller.Sensitivity() != 0.005 {
		t.Errorf("sensitivity = %v, want 0.005", a.Controller.Sensitivity())
	}
}

func TestModelFromConfig(t *testing.T) {
	m := ModelFromConfig(config.ModelConfig{Shape: "torus", Size: 1.5, Color: [4]uint8{1, 2, 3, 4}})
	if m.Shape != "torus" || m.Size != 1.5 || m.Color.B != 3 || m.Color.A != 4 {
		t.Errorf("unexpected model %+v", m)
	}
}

func TestCloseFlushesOpenSession(t *testing.T) {
	dir := t.TempDir()
	a := newApp(t, Options{OutputDir: dir})

	a.Surface.Begin(r2.Vec{})
	a.Surface.Move(r2.Vec{X: 4, Y: 3})
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	if len(a.Collector.Sessions()) != 1 {
		t.Fatal("open session should be flushed on close")
	}
	for _, name := range []string{"config.yaml", "sessions.csv", "trace.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if a.Surface.Listeners(rotate.EventDragMove) != 0 {
		t.Error("subscriptions should be released on close")
	}
}

func TestOrientationSurvivesClose(t *testing.T) {
	a := newApp(t, Options{})

	a.Surface.Begin(r2.Vec{})
	a.Surface.Move(r2.Vec{X: 10})
	a.Surface.End(r2.Vec{X: 10})
	want := a.Orientation()

	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := a.Orientation(); got != want {
		t.Errorf("orientation after close %v, want %v", got, want)
	}

	a.Reset()
	if got := a.Orientation(); got != want {
		t.Errorf("reset after close changed orientation to %v", got)
	}
	if err := a.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestStreamPublishesSteps(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Stream.Addr = "127.0.0.1:0"
	a, err := New(cfg, Options{Stream: true})
	if err != nil {
		t.Fatal(err)
	}

	a.Surface.Begin(r2.Vec{})
	a.Surface.Move(r2.Vec{X: 10})
	a.Surface.End(r2.Vec{X: 10})

	if got := a.Hub.Current().Quat(); got != a.Orientation() {
		t.Errorf("hub has %v, scene has %v", got, a.Orientation())
	}
	if err := a.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
