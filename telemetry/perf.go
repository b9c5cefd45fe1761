package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Phase is one timed part of a simulation step.
type Phase int

// Phases of a step, in execution order.
const (
	PhaseGrow Phase = iota
	PhaseStats
	PhaseScene
	PhaseRender
	PhaseTelemetry

	numPhases
)

var phaseNames = [numPhases]string{"grow", "stats", "scene", "render", "telemetry"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// Phases returns every phase in step order.
func Phases() []Phase {
	out := make([]Phase, numPhases)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}

// phaseTimes holds per-phase durations in nanoseconds.
type phaseTimes [numPhases]float64

// PerfCollector times steps and their phases over a rolling window.
type PerfCollector struct {
	window int
	filled int
	next   int

	// Ring buffers, one entry per step, in nanoseconds.
	steps  []float64
	phases []phaseTimes

	current   phaseTimes
	stepStart time.Time
	mark      time.Time
	active    Phase
	timing    bool

	lastFrame     time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over window steps (60 when window < 1).
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		window: window,
		steps:  make([]float64, window),
		phases: make([]phaseTimes, window),
	}
}

// StartStep begins timing a new step.
func (p *PerfCollector) StartStep() {
	p.stepStart = time.Now()
	p.current = phaseTimes{}
	p.timing = false
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.mark = now
	p.active = phase
	p.timing = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.timing && p.active >= 0 && p.active < numPhases {
		p.current[p.active] += float64(now.Sub(p.mark))
	}
}

// EndStep closes the running phase and stores the step in the window.
func (p *PerfCollector) EndStep() {
	now := time.Now()
	p.closePhase(now)
	p.timing = false

	p.steps[p.next] = float64(now.Sub(p.stepStart))
	p.phases[p.next] = p.current
	p.next = (p.next + 1) % p.window
	if p.filled < p.window {
		p.filled++
	}
}

// RecordFrame marks the end of a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarises the window.
type PerfStats struct {
	AvgStepDuration time.Duration
	MinStepDuration time.Duration
	MaxStepDuration time.Duration
	StepsPerSecond  float64

	// Mean duration of each phase per step, and its share of the mean step in percent.
	PhaseAvg [numPhases]time.Duration
	PhasePct [numPhases]float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the steps currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{FrameDuration: p.frameDuration}
	if p.frameDuration > 0 {
		s.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.filled == 0 {
		return s
	}

	steps := p.steps[:p.filled]
	n := float64(p.filled)
	avg := floats.Sum(steps) / n
	s.AvgStepDuration = time.Duration(avg)
	s.MinStepDuration = time.Duration(floats.Min(steps))
	s.MaxStepDuration = time.Duration(floats.Max(steps))
	if avg > 0 {
		s.StepsPerSecond = float64(time.Second) / avg
	}

	var sum phaseTimes
	for _, pt := range p.phases[:p.filled] {
		floats.Add(sum[:], pt[:])
	}
	for i, total := range sum {
		s.PhaseAvg[i] = time.Duration(total / n)
		if avg > 0 {
			s.PhasePct[i] = total / n / avg * 100
		}
	}
	return s
}

// LogStats logs the window summary, listing phases above 0.1% of the step.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_step_us", s.AvgStepDuration.Microseconds(),
		"min_step_us", s.MinStepDuration.Microseconds(),
		"max_step_us", s.MaxStepDuration.Microseconds(),
		"steps_per_sec", int(s.StepsPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, ph := range Phases() {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	Step         int     `csv:"step"`
	AvgStepUS    int64   `csv:"avg_step_us"`
	MinStepUS    int64   `csv:"min_step_us"`
	MaxStepUS    int64   `csv:"max_step_us"`
	StepsPerSec  float64 `csv:"steps_per_sec"`
	FPS          float64 `csv:"fps"`
	GrowPct      float64 `csv:"grow_pct"`
	StatsPct     float64 `csv:"stats_pct"`
	ScenePct     float64 `csv:"scene_pct"`
	RenderPct    float64 `csv:"render_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the summary for the row written at step.
func (s PerfStats) ToCSV(step int) PerfStatsCSV {
	return PerfStatsCSV{
		Step:         step,
		AvgStepUS:    s.AvgStepDuration.Microseconds(),
		MinStepUS:    s.MinStepDuration.Microseconds(),
		MaxStepUS:    s.MaxStepDuration.Microseconds(),
		StepsPerSec:  s.StepsPerSecond,
		FPS:          s.FPS,
		GrowPct:      s.PhasePct[PhaseGrow],
		StatsPct:     s.PhasePct[PhaseStats],
		ScenePct:     s.PhasePct[PhaseScene],
		RenderPct:    s.PhasePct[PhaseRender],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
