package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one viewer frame.
const (
	PhaseInput  = "input"
	PhaseScene  = "scene"
	PhaseRender = "render"
	PhaseHUD    = "hud"
)

// framePhases lists the phases in frame order.
var framePhases = []string{PhaseInput, PhaseRender, PhaseScene, PhaseHUD}

// FrameSample holds timing data for a single frame.
type FrameSample struct {
	Work   time.Duration
	Phases map[string]time.Duration
}

// PerfCollector tracks per-frame work over a rolling window.
type PerfCollector struct {
	window  []FrameSample
	next    int
	filled  int
	phases  map[string]time.Duration
	started time.Time
	mark    time.Time
	phase   string

	// Presentation interval, measured between MarkPresent calls
	lastPresent time.Time
	interval    time.Duration

	now func() time.Time
}

// FramePhases returns the phase names in frame order.
func FramePhases() []string {
	return append([]string(nil), framePhases...)
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		window: make([]FrameSample, windowSize),
		phases: make(map[string]time.Duration),
		now:    time.Now,
	}
}

// BeginFrame starts timing a frame.
func (p *PerfCollector) BeginFrame() {
	p.started = p.now()
	p.phases = make(map[string]time.Duration)
	p.phase = ""
}

// Phase closes the running phase, if any, and starts timing name.
func (p *PerfCollector) Phase(name string) {
	now := p.now()
	p.closePhase(now)
	p.mark = now
	p.phase = name
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.phases[p.phase] += now.Sub(p.mark)
	}
}

// EndFrame stores the frame in the window.
func (p *PerfCollector) EndFrame() {
	now := p.now()
	p.closePhase(now)
	p.phase = ""

	p.window[p.next] = FrameSample{Work: now.Sub(p.started), Phases: p.phases}
	p.next = (p.next + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
}

// MarkPresent records that a frame reached the screen.
func (p *PerfCollector) MarkPresent() {
	now := p.now()
	if !p.lastPresent.IsZero() {
		p.interval = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// Frames returns how many samples the window holds.
func (p *PerfCollector) Frames() int {
	return p.filled
}

// PerfStats holds aggregated frame statistics.
type PerfStats struct {
	AvgWork time.Duration
	MinWork time.Duration
	MaxWork time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of average frame work

	PresentInterval time.Duration
	FPS             float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		PhaseAvg:        make(map[string]time.Duration),
		PhasePct:        make(map[string]float64),
		PresentInterval: p.interval,
	}
	if p.interval > 0 {
		stats.FPS = float64(time.Second) / float64(p.interval)
	}
	if p.filled == 0 {
		return stats
	}

	var total time.Duration
	sums := make(map[string]time.Duration)
	for i := 0; i < p.filled; i++ {
		s := p.window[i]
		total += s.Work
		if i == 0 || s.Work < stats.MinWork {
			stats.MinWork = s.Work
		}
		if s.Work > stats.MaxWork {
			stats.MaxWork = s.Work
		}
		for name, d := range s.Phases {
			sums[name] += d
		}
	}

	stats.AvgWork = total / time.Duration(p.filled)
	for name, sum := range sums {
		avg := sum / time.Duration(p.filled)
		stats.PhaseAvg[name] = avg
		if stats.AvgWork > 0 {
			stats.PhasePct[name] = float64(avg) / float64(stats.AvgWork) * 100
		}
	}
	return stats
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_work_us", s.AvgWork.Microseconds()),
		slog.Int64("max_work_us", s.MaxWork.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, name := range framePhases {
		if pct, ok := s.PhasePct[name]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(name+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Frame     int64   `csv:"frame"`
	AvgWorkUS int64   `csv:"avg_work_us"`
	MinWorkUS int64   `csv:"min_work_us"`
	MaxWorkUS int64   `csv:"max_work_us"`
	FPS       float64 `csv:"fps"`
	InputPct  float64 `csv:"input_pct"`
	ScenePct  float64 `csv:"scene_pct"`
	RenderPct float64 `csv:"render_pct"`
	HUDPct    float64 `csv:"hud_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(frame int64) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:     frame,
		AvgWorkUS: s.AvgWork.Microseconds(),
		MinWorkUS: s.MinWork.Microseconds(),
		MaxWorkUS: s.MaxWork.Microseconds(),
		FPS:       s.FPS,
		InputPct:  s.PhasePct[PhaseInput],
		ScenePct:  s.PhasePct[PhaseScene],
		RenderPct: s.PhasePct[PhaseRender],
		HUDPct:    s.PhasePct[PhaseHUD],
	}
}
