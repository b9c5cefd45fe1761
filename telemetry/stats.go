// Package telemetry records per-step population statistics, detects notable
// moments, times the step phases and writes experiment output.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/agesim/organism"
)

// StepStats holds the statistics of one population snapshot.
type StepStats struct {
	Step       int `csv:"step"`
	Size       int `csv:"size"`
	SampleSize int `csv:"sample_size"`

	// Mean age normalised by grid area, as plotted
	MeanAge float64 `csv:"mean_age"`

	// Age distribution over living cells
	AgeMean float64 `csv:"age_mean"`
	AgeStd  float64 `csv:"age_std"`
	AgeP10  float64 `csv:"age_p10"`
	AgeP50  float64 `csv:"age_p50"`
	AgeP90  float64 `csv:"age_p90"`
	AgeMax  float64 `csv:"age_max"`

	// Genome diversity
	MeanEntropy float64 `csv:"mean_entropy"`

	// Cells added since the previous flushed row
	Births int `csv:"births"`

	// Fraction of the grid occupied
	Fill float64 `csv:"fill"`

	Entropy []organism.BaseEntropy `csv:"-"`
}

// ComputeAgeStats calculates mean, standard deviation, percentiles and maximum.
func ComputeAgeStats(values []float64) (mean, std, p10, p50, p90, oldest float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n > 1 {
		mean, std = stat.MeanStdDev(sorted, nil)
	} else {
		mean = sorted[0]
	}

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	oldest = sorted[n-1]

	return mean, std, p10, p50, p90, oldest
}

// Compute derives StepStats from a snapshot.
func Compute(step int, o organism.Organism) (StepStats, error) {
	entropy, err := organism.Entropy(o)
	if err != nil {
		return StepStats{}, err
	}

	mean, std, p10, p50, p90, oldest := ComputeAgeStats(o.Ages)

	var fill float64
	if area := o.Settings.Area(); area > 0 {
		fill = float64(o.Size) / float64(area)
	}

	return StepStats{
		Step:        step,
		Size:        o.Size,
		SampleSize:  o.SampleSize,
		MeanAge:     organism.MeanAge(o),
		AgeMean:     mean,
		AgeStd:      std,
		AgeP10:      p10,
		AgeP50:      p50,
		AgeP90:      p90,
		AgeMax:      oldest,
		MeanEntropy: organism.MeanEntropy(entropy),
		Fill:        fill,
		Entropy:     entropy,
	}, nil
}

// LogValue implements slog.LogValuer for structured logging.
func (s StepStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("step", s.Step),
		slog.Int("size", s.Size),
		slog.Int("sample_size", s.SampleSize),
		slog.Float64("mean_age", s.MeanAge),
		slog.Float64("age_p50", s.AgeP50),
		slog.Float64("age_max", s.AgeMax),
		slog.Float64("mean_entropy", s.MeanEntropy),
		slog.Int("births", s.Births),
		slog.Float64("fill", s.Fill),
	)
}

// LogStats logs the step stats using slog.
func (s StepStats) LogStats() {
	slog.Info("stats",
		"step", s.Step,
		"size", s.Size,
		"sample_size", s.SampleSize,
		"mean_age", s.MeanAge,
		"age_mean", s.AgeMean,
		"age_std", s.AgeStd,
		"age_p10", s.AgeP10,
		"age_p50", s.AgeP50,
		"age_p90", s.AgeP90,
		"age_max", s.AgeMax,
		"mean_entropy", s.MeanEntropy,
		"births", s.Births,
		"fill", s.Fill,
	)
}
