// Package sim runs the organism step loop and wires it to telemetry, output
// files and the raylib window.
package sim

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/agesim/config"
	"github.com/pthm-cable/agesim/organism"
	"github.com/pthm-cable/agesim/renderer"
	"github.com/pthm-cable/agesim/scene"
	"github.com/pthm-cable/agesim/telemetry"
	"github.com/pthm-cable/agesim/ui"
)

// Options holds runner configuration.
type Options struct {
	Config         *config.Config // nil uses config.Cfg()
	Seed           int64
	LogStats       bool   // Output stats via slog
	OutputDir      string // Directory for CSV, chart and video output (empty = disabled)
	Headless       bool   // Start running immediately and never touch raylib
	StepsPerUpdate int    // 0 uses run.steps_per_update
	MaxSteps       int    // 0 uses run.max_steps
	FrameEvery     int    // 0 uses render.frame_every

	// StatsCallback is invoked with every flushed stats row.
	StatsCallback func(telemetry.StepStats)
}

// ResolveSeed picks the generator seed: an explicit flag wins, then the
// configured seed when the run is reproducible, otherwise the clock.
func ResolveSeed(flagSeed int64, cfg *config.Config, now time.Time) int64 {
	switch {
	case flagSeed != 0:
		return flagSeed
	case cfg.Run.Reproducible:
		return int64(cfg.Settings.Seed)
	default:
		return now.UnixNano()
	}
}

// Simulation holds the complete run state.
type Simulation struct {
	cfg    *config.Config
	seed   int64
	engine *organism.Engine
	org    organism.Organism

	// Rendering
	scene   *scene.World
	palette renderer.Palette
	frames  renderer.FrameRenderer
	video   *renderer.VideoWriter
	window  *renderer.RaylibRenderer

	// UI (graphical mode only)
	hud       *ui.HUD
	controls  *ui.Controls
	perfPanel *ui.PerfPanel
	showPerf  bool

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.StepStats)
	logStats         bool

	// State
	tick           int
	running        bool
	finished       bool
	headless       bool
	stepsPerUpdate int
	maxSteps       int
	frameEvery     int
	lastStep       time.Time
}

// NewSimulation creates a runner holding a fresh single-cell organism.
func NewSimulation(opts Options) (*Simulation, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	palette, err := renderer.NewPalette(cfg.Render.Gradient)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:     cfg,
		seed:    opts.Seed,
		palette: palette,
		frames: renderer.FrameRenderer{
			Palette:  palette,
			AgeFloor: cfg.Render.AgeFloor,
			CellPx:   cfg.Render.CellPx,
		},
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		statsCallback:  opts.StatsCallback,
		logStats:       opts.LogStats,
		headless:       opts.Headless,
		running:        opts.Headless,
		stepsPerUpdate: pick(opts.StepsPerUpdate, cfg.Run.StepsPerUpdate),
		maxSteps:       pick(opts.MaxSteps, cfg.Run.MaxSteps),
		frameEvery:     pick(opts.FrameEvery, cfg.Render.FrameEvery),
	}
	if s.stepsPerUpdate < 1 {
		s.stepsPerUpdate = 1
	}

	if err := s.reset(); err != nil {
		return nil, err
	}

	if err := s.openOutput(opts.OutputDir); err != nil {
		return nil, err
	}

	if !s.headless {
		canvas := float32(cfg.Screen.CanvasSize)
		s.window = renderer.NewRaylibRenderer(palette, cfg.Render.AgeFloor)
		s.hud = ui.NewHUD(int32(canvas)+40, 20, int32(cfg.Screen.Width)-int32(canvas)-60)
		s.controls = ui.NewControls(20+canvas/4, canvas+35, canvas/2, 36)
		s.perfPanel = ui.NewPerfPanel(20, int32(canvas)+90)
	}

	return s, nil
}

func pick(override, fallback int) int {
	if override > 0 {
		return override
	}
	return fallback
}

// reset starts a new organism and clears history, keeping output files open.
func (s *Simulation) reset() error {
	org, err := organism.InitOrganism(s.cfg.Settings)
	if err != nil {
		return err
	}

	s.org = org
	s.engine = organism.NewEngine(organism.NewRand(s.seed))
	s.tick = 0
	s.finished = false
	s.lastStep = time.Time{}

	s.collector = telemetry.NewCollector(s.cfg.Telemetry.StatsEvery, org.Size)
	s.bookmarkDetector = telemetry.NewBookmarkDetector(10)
	if _, err := s.collector.Observe(0, org); err != nil {
		return err
	}

	if s.scene == nil {
		s.scene = scene.New()
	}
	s.scene.Sync(org)
	return nil
}

// Restart discards the current run and starts again from a single cell, paused.
func (s *Simulation) Restart() error {
	s.running = s.headless
	slog.Info("restarting simulation", "seed", s.seed)
	return s.reset()
}

// Step advances the organism by one growth step and records telemetry.
// It is a no-op once the run has finished.
func (s *Simulation) Step() error {
	if s.finished {
		return nil
	}

	s.perfCollector.StartStep()
	s.perfCollector.StartPhase(telemetry.PhaseGrow)

	next, err := s.engine.GrowStep(s.org)
	if err != nil {
		s.running = false
		slog.Error("step failed", "step", s.tick+1, "error", err)
		return fmt.Errorf("step %d: %w", s.tick+1, err)
	}
	if s.cfg.Run.CheckInvariants {
		if err := next.Check(); err != nil {
			s.running = false
			slog.Error("step failed", "step", s.tick+1, "error", err)
			return fmt.Errorf("step %d: %w", s.tick+1, err)
		}
	}
	s.org = next
	s.tick++

	s.perfCollector.StartPhase(telemetry.PhaseStats)
	if _, err := s.collector.Observe(s.tick, s.org); err != nil {
		s.running = false
		slog.Error("step failed", "step", s.tick, "error", err)
		return fmt.Errorf("stats at step %d: %w", s.tick, err)
	}

	s.perfCollector.StartPhase(telemetry.PhaseScene)
	s.scene.Sync(s.org)

	if s.video != nil && s.tick%s.frameEvery == 0 {
		s.perfCollector.StartPhase(telemetry.PhaseRender)
		s.writeFrame()
	}

	s.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()

	s.perfCollector.EndStep()

	if s.maxSteps > 0 && s.tick >= s.maxSteps {
		s.finished = true
		s.running = false
		slog.Info("max steps reached", "step", s.tick, "size", s.org.Size)
	}
	return nil
}

// UpdateHeadless runs steps without any graphics.
func (s *Simulation) UpdateHeadless() error {
	for i := 0; i < s.stepsPerUpdate && !s.finished; i++ {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Update handles input and, when running and the step interval has elapsed,
// advances the simulation.
func (s *Simulation) Update() error {
	if err := s.handleInput(); err != nil {
		return err
	}

	if !s.running || s.finished {
		return nil
	}
	if interval := s.cfg.Derived.Interval; interval > 0 && time.Since(s.lastStep) < interval {
		return nil
	}
	s.lastStep = time.Now()

	return s.UpdateHeadless()
}

// Running reports whether steps are being taken.
func (s *Simulation) Running() bool {
	return s.running
}

// Toggle starts or pauses the run. A finished run stays stopped.
func (s *Simulation) Toggle() {
	if s.finished {
		return
	}
	s.running = !s.running
}

// Finished reports whether the step limit was reached.
func (s *Simulation) Finished() bool {
	return s.finished
}

// Tick returns the number of steps taken.
func (s *Simulation) Tick() int {
	return s.tick
}

// Seed returns the generator seed.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// Organism returns the current snapshot.
func (s *Simulation) Organism() organism.Organism {
	return s.org
}

// History returns the (step, mean age, size) series, one point per step
// starting with the initial cell.
func (s *Simulation) History() *telemetry.History {
	return s.collector.History()
}

// Latest returns the stats of the current snapshot.
func (s *Simulation) Latest() telemetry.StepStats {
	return s.collector.Latest()
}

// Unload writes the final chart and closes every output file.
func (s *Simulation) Unload() {
	if s.outputManager != nil {
		if err := s.writeChart(s.outputManager.Path(telemetry.ChartFile)); err != nil {
			slog.Error("failed to write chart", "error", err)
		}
	}
	if s.video != nil {
		if err := s.video.Close(); err != nil {
			slog.Error("failed to close video", "error", err)
		}
		s.video = nil
	}
	if err := s.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	s.outputManager = nil
}
