package telemetry

import (
	"log/slog"
	"math"
	"sort"
	"time"
)

// SessionStats summarizes one drag session, from begin to end.
type SessionStats struct {
	Session    string    `csv:"session"`
	Started    time.Time `csv:"-"`
	StartedAt  string    `csv:"started_at"`
	DurationMS int64     `csv:"duration_ms"`

	// Move outcomes
	Moves   int `csv:"moves"`
	Applied int `csv:"applied"`
	Gated   int `csv:"gated"`
	Ignored int `csv:"ignored"`

	// Drag geometry in surface units
	PathLength float64 `csv:"path_length"`

	// Per-step rotation angles in radians
	TotalAngle float64 `csv:"total_angle"`
	AngleMean  float64 `csv:"angle_mean"`
	AngleP50   float64 `csv:"angle_p50"`
	AngleP90   float64 `csv:"angle_p90"`
	AngleMax   float64 `csv:"angle_max"`

	// Orientation at session end
	FinalW float64 `csv:"final_w"`
	FinalX float64 `csv:"final_x"`
	FinalY float64 `csv:"final_y"`
	FinalZ float64 `csv:"final_z"`
}

// GatedRate returns the fraction of moves suppressed by the jitter gate.
func (s SessionStats) GatedRate() float64 {
	if s.Moves == 0 {
		return 0
	}
	return float64(s.Gated) / float64(s.Moves)
}

// LogValue implements slog.LogValuer for structured logging.
func (s SessionStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("session", s.Session),
		slog.Int64("duration_ms", s.DurationMS),
		slog.Int("moves", s.Moves),
		slog.Int("applied", s.Applied),
		slog.Int("gated", s.Gated),
		slog.Float64("path_length", s.PathLength),
		slog.Float64("total_angle", s.TotalAngle),
		slog.Float64("angle_p90", s.AngleP90),
	)
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	// Linear interpolation between closest ranks
	rank := p * float64(n-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper || upper >= n {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// ComputeAngleStats returns mean, p50, p90 and max of step angles.
// The input slice is sorted in place.
func ComputeAngleStats(angles []float64) (mean, p50, p90, max float64) {
	if len(angles) == 0 {
		return 0, 0, 0, 0
	}

	sort.Float64s(angles)

	var sum float64
	for _, a := range angles {
		sum += a
	}
	mean = sum / float64(len(angles))
	p50 = Percentile(angles, 0.5)
	p90 = Percentile(angles, 0.9)
	max = angles[len(angles)-1]
	return mean, p50, p90, max
}
