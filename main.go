package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/agesim/config"
	"github.com/pthm-cable/agesim/sim"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, chart, video and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = settings.seed when run.reproducible, else time-based)")
	maxSteps := flag.Int("max-steps", 0, "Stop after N steps (0 = use config)")
	stepsPerUpdate := flag.Int("steps-per-update", 0, "Steps per update call (0 = use config)")
	frames := flag.Int("frames", 0, "Write a video frame every N steps (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := sim.ResolveSeed(*seed, cfg, time.Now())

	opts := sim.Options{
		Config:         cfg,
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
		MaxSteps:       *maxSteps,
		FrameEvery:     *frames,
	}

	if *headless {
		os.Exit(runHeadless(opts))
	}
	os.Exit(runWindow(opts))
}

// runHeadless steps until the limit is reached and returns the exit code.
func runHeadless(opts sim.Options) int {
	s, err := sim.NewSimulation(opts)
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		return 1
	}
	defer s.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"length", opts.Config.Settings.Length,
		"genome", string(opts.Config.Settings.Genome),
		"max_steps", opts.MaxSteps,
		"steps_per_update", opts.StepsPerUpdate,
	)

	if opts.MaxSteps == 0 && opts.Config.Run.MaxSteps == 0 {
		slog.Warn("no step limit set, running until interrupted")
	}

	for !s.Finished() {
		if err := s.UpdateHeadless(); err != nil {
			return 1
		}
	}

	latest := s.Latest()
	slog.Info("simulation finished",
		"step", s.Tick(),
		"size", latest.Size,
		"mean_age", latest.MeanAge,
		"mean_entropy", latest.MeanEntropy,
	)
	return 0
}

// runWindow drives the raylib window until it is closed.
func runWindow(opts sim.Options) int {
	cfg := opts.Config
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Decentralized cellular timekeeping")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	s, err := sim.NewSimulation(opts)
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		return 1
	}
	defer s.Unload()

	for !rl.WindowShouldClose() {
		if err := s.Update(); err != nil {
			return 1
		}
		if err := s.Draw(); err != nil {
			return 1
		}
	}
	return 0
}
