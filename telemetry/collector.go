package telemetry

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spin/rotate"
)

// Collector groups controller steps into drag sessions and forwards
// records to an OutputManager. A nil OutputManager keeps stats in memory only.
type Collector struct {
	out *OutputManager
	now func() time.Time

	// Current session tracking
	active  bool
	current SessionStats
	angles  []float64
	seq     int

	// Completed sessions
	sessions []SessionStats
}

// NewCollector creates a collector writing to out (which may be nil).
func NewCollector(out *OutputManager) *Collector {
	return &Collector{out: out, now: time.Now}
}

// Attach subscribes the collector to drag begin and end on s. Register it
// after rotate.Bind so the controller sees each event first.
func (c *Collector) Attach(s *rotate.Surface) *rotate.Subscription {
	sub := &rotate.Subscription{}
	sub.Add(s.OnDragBegin(c.begin))
	sub.Add(s.OnDragEnd(func(r2.Vec) { c.end() }))
	return sub
}

// ObserveStep records one controller step. Pass it to rotate.Bind.
func (c *Collector) ObserveStep(step rotate.Step) {
	if !c.active {
		return
	}

	s := &c.current
	s.Moves++
	switch step.Outcome {
	case rotate.StepApplied:
		s.Applied++
		s.TotalAngle += step.Angle
		c.angles = append(c.angles, step.Angle)
	case rotate.StepGated:
		s.Gated++
	default:
		s.Ignored++
	}
	if step.Outcome != rotate.StepIgnored {
		s.PathLength += r2.Norm(step.Delta)
	}

	q := step.Orientation
	s.FinalW, s.FinalX, s.FinalY, s.FinalZ = q.Real, q.Imag, q.Jmag, q.Kmag

	if err := c.out.WriteTrace(NewTraceRecord(s.Session, c.seq, step)); err != nil {
		slog.Warn("trace write failed", "error", err)
	}
	c.seq++
}

func (c *Collector) begin(p r2.Vec) {
	// A begin during a drag restarts it; close out the previous session.
	if c.active {
		c.end()
	}
	now := c.now()
	c.active = true
	c.seq = 0
	c.angles = c.angles[:0]
	c.current = SessionStats{
		Session:   uuid.NewString(),
		Started:   now,
		StartedAt: now.UTC().Format(time.RFC3339Nano),
	}
	slog.Debug("drag begin", "session", c.current.Session, "x", p.X, "y", p.Y)
}

func (c *Collector) end() {
	if !c.active {
		return
	}
	c.active = false

	s := c.current
	s.DurationMS = c.now().Sub(s.Started).Milliseconds()
	s.AngleMean, s.AngleP50, s.AngleP90, s.AngleMax = ComputeAngleStats(c.angles)
	c.sessions = append(c.sessions, s)

	if err := c.out.WriteSession(s); err != nil {
		slog.Warn("session write failed", "error", err)
	}
	slog.Info("drag session", "stats", s)
}

// Active reports whether a drag session is open.
func (c *Collector) Active() bool {
	return c.active
}

// Current returns the open session's running stats.
func (c *Collector) Current() SessionStats {
	return c.current
}

// Sessions returns the completed sessions in order.
func (c *Collector) Sessions() []SessionStats {
	return c.sessions
}

// Flush closes any open session, e.g. at shutdown.
func (c *Collector) Flush() {
	c.end()
}
