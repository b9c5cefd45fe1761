package main

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/agesim/config"
	"github.com/pthm-cable/agesim/sim"
	"github.com/pthm-cable/agesim/telemetry"
)

// Fitness component weights.
const (
	weightLinearity = 0.7
	weightDiversity = 0.3

	// Points skipped at the start of a run while the organism is a handful of cells.
	warmupPoints = 10
)

// FitnessEvaluator runs headless simulations and scores how well the
// population's mean age tracks elapsed steps.
type FitnessEvaluator struct {
	params     *ParamVector
	maxSteps   int
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxSteps int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxSteps:   maxSteps,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	history *telemetry.History
	entropy float64 // mean per-base entropy at the end of the run
	err     error
}

// Evaluate computes fitness for a search-space vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	for _, r := range results {
		if r.err != nil {
			slog.Warn("evaluation run failed", "error", r.err)
			continue
		}
		total += computeQuality(r.history, r.entropy)
	}
	quality := total / float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = quality
	fe.mu.Unlock()

	return -quality
}

// runSimulation executes a single headless run to maxSteps.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	s, err := sim.NewSimulation(sim.Options{
		Config:   cfg,
		Seed:     seed,
		Headless: true,
		MaxSteps: fe.maxSteps,
	})
	if err != nil {
		return runResult{err: err}
	}
	defer s.Unload()

	for !s.Finished() {
		if err := s.UpdateHeadless(); err != nil {
			return runResult{err: err}
		}
	}
	return runResult{history: s.History(), entropy: s.Latest().MeanEntropy}
}

// copyConfig creates a copy of the base config that evaluations may modify.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Render.Gradient = append([]string(nil), fe.baseConfig.Render.Gradient...)
	cfg.Render.FrameEvery = 0
	cfg.Run.CheckInvariants = false
	return &cfg
}

// computeQuality scores a run in [0, 1]: mostly how linear mean age is in
// step count (R² of a least-squares fit), plus how far genome entropy has
// moved off zero.
func computeQuality(h *telemetry.History, meanEntropy float64) float64 {
	if h == nil || h.Len() <= warmupPoints+2 {
		return 0
	}

	steps := h.Steps[warmupPoints:]
	ages := h.MeanAges[warmupPoints:]

	linearity := 0.0
	alpha, beta := stat.LinearRegression(steps, ages, nil, false)
	if beta > 0 {
		r2 := stat.RSquared(steps, ages, nil, alpha, beta)
		if !math.IsNaN(r2) {
			linearity = clamp01(r2)
		}
	}

	diversity := clamp01(meanEntropy / math.Log(4))

	return clamp01(weightLinearity*linearity + weightDiversity*diversity)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
