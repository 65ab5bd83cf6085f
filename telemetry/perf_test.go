package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)
	clock := &fakeClock{t: time.Unix(0, 0)}
	pc.now = clock.now

	for i := 0; i < 5; i++ {
		pc.BeginFrame()
		pc.Phase(PhaseInput)
		clock.advance(100 * time.Microsecond)
		pc.Phase(PhaseRender)
		clock.advance(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()

	if stats.AvgWork != 300*time.Microsecond {
		t.Errorf("expected average frame work 300µs, got %v", stats.AvgWork)
	}
	if got := stats.PhaseAvg[PhaseInput]; got != 100*time.Microsecond {
		t.Errorf("expected input phase 100µs, got %v", got)
	}
	if stats.PhasePct[PhaseRender] <= stats.PhasePct[PhaseInput] {
		t.Errorf("expected render (%v%%) > input (%v%%)", stats.PhasePct[PhaseRender], stats.PhasePct[PhaseInput])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 12; i++ {
		pc.BeginFrame()
		pc.Phase(PhaseScene)
		pc.EndFrame()
	}

	if pc.Frames() != 5 {
		t.Errorf("expected window of 5 frames, got %d", pc.Frames())
	}
	if stats := pc.Stats(); stats.MinWork > stats.MaxWork {
		t.Errorf("min %v exceeds max %v", stats.MinWork, stats.MaxWork)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgWork != 0 {
		t.Error("expected zero average work for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_PresentInterval(t *testing.T) {
	pc := NewPerfCollector(10)

	clock := &fakeClock{t: time.Unix(0, 0)}
	pc.now = clock.now

	pc.MarkPresent()
	clock.advance(20 * time.Millisecond)
	pc.MarkPresent()

	stats := pc.Stats()
	if stats.PresentInterval != 20*time.Millisecond {
		t.Errorf("expected interval 20ms, got %v", stats.PresentInterval)
	}
	if stats.FPS < 49.9 || stats.FPS > 50.1 {
		t.Errorf("expected FPS near 50, got %v", stats.FPS)
	}
}
