// Package main calibrates the mutation and growth rates with CMA-ES so that
// the population's mean age grows linearly with elapsed steps.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/agesim/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML (empty = embedded defaults)")
	maxSteps := flag.Int("max-steps", 400, "Steps simulated per run")
	numSeeds := flag.Int("seeds", 3, "Runs averaged per evaluation")
	maxEvals := flag.Int("max-evals", 60, "Evaluation budget")
	population := flag.Int("population", 0, "CMA-ES population size (0 = 4 + 1.5*dim)")
	outputDir := flag.String("output", "", "Directory for calibrate_log.csv and best_config.yaml")
	flag.Parse()

	// Per-run lifecycle messages would drown the progress lines.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if *outputDir == "" {
		log.Fatal("-output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("creating %s: %v", *outputDir, err)
	}
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("loading config: %v", err)
	}

	params := NewParamVector(config.Cfg())
	evaluator := NewFitnessEvaluator(params, *maxSteps, calibrationSeeds(*numSeeds), config.Cfg())

	evalLog, err := newEvalLog(filepath.Join(*outputDir, "calibrate_log.csv"))
	if err != nil {
		log.Fatalf("creating eval log: %v", err)
	}
	defer evalLog.Close()

	popSize := *population
	if popSize == 0 {
		popSize = 4 + 3*params.Dim()/2
	}

	tr := newTracker(*maxEvals)
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			v := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(v)
			row := tr.record(v, fitness, params.Values(v))
			if err := evalLog.Write(row); err != nil {
				log.Printf("writing eval log: %v", err)
			}
			fmt.Println(tr.progress())
			return fitness
		},
	}

	fmt.Printf("CMA-ES over %d parameters: population=%d, evals=%d, seeds=%d, steps=%d\n",
		params.Dim(), popSize, *maxEvals, *numSeeds, *maxSteps)

	_, err = optimize.Minimize(problem,
		params.Normalize(params.DefaultVector()),
		&optimize.Settings{FuncEvaluations: *maxEvals, Concurrent: 0},
		&optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize},
	)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	if tr.best == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nDone: %d evaluations in %s, best quality %.3f\n", tr.evals, formatDuration(time.Since(tr.start)), tr.bestQuality())
	for i, v := range params.Values(tr.best) {
		fmt.Printf("  %s = %.8g\n", params.Specs[i].Path, v)
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("reloading config: %v", err)
	}
	params.ApplyToConfig(bestCfg, tr.best)

	out := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(out); err != nil {
		log.Fatalf("writing best config: %v", err)
	}
	fmt.Printf("Best config: %s\n", out)
}

// calibrationSeeds returns n fixed, well separated seeds so every candidate
// is scored on the same runs.
func calibrationSeeds(n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = int64(i)*7919 + 1
	}
	return seeds
}

// tracker keeps the best candidate and timing across evaluations.
type tracker struct {
	maxEvals    int
	evals       int
	start       time.Time
	best        []float64
	bestFitness float64
	lastFitness float64
}

func newTracker(maxEvals int) *tracker {
	return &tracker{maxEvals: maxEvals, start: time.Now()}
}

// record notes one evaluation of search-space vector v and returns its log row.
func (t *tracker) record(v []float64, fitness float64, values []float64) EvalRow {
	t.evals++
	t.lastFitness = fitness
	if t.best == nil || fitness < t.bestFitness {
		t.best = v
		t.bestFitness = fitness
	}
	return EvalRow{
		Eval:         t.evals,
		Quality:      -fitness,
		MutationRate: values[0],
		GrowthRate:   values[1],
	}
}

func (t *tracker) bestQuality() float64 {
	return -t.bestFitness
}

func (t *tracker) progress() string {
	elapsed := time.Since(t.start)
	remaining := time.Duration(t.maxEvals-t.evals) * (elapsed / time.Duration(t.evals))
	return fmt.Sprintf("eval %d/%d quality=%.3f best=%.3f elapsed=%s eta=%s",
		t.evals, t.maxEvals, -t.lastFitness, t.bestQuality(),
		formatDuration(elapsed), formatDuration(remaining))
}

// formatDuration renders d as 1h02m03s, or 2m03s under an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
