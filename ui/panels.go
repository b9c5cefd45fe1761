package ui

import (
	"fmt"
	"math"

	"github.com/pthm-cable/agesim/genome"
	"github.com/pthm-cable/agesim/telemetry"
)

// maxEntropy is the per-position entropy of a uniform four-base mix.
var maxEntropy = float32(math.Log(genome.NumBases))

func stepStats(data any) telemetry.StepStats {
	s, _ := data.(telemetry.StepStats)
	return s
}

// PopulationSection describes the population summary lines.
func PopulationSection() SectionDescriptor {
	return SectionDescriptor{
		ID:    "population",
		Title: "Population",
		Fields: []FieldDescriptor{
			{
				ID: "step", Label: "Step", Widget: WidgetText,
				TextGetter: func(d any) string { return fmt.Sprintf("%d", stepStats(d).Step) },
			},
			{
				ID: "size", Label: "Size", Widget: WidgetText,
				TextGetter: func(d any) string { return fmt.Sprintf("%d", stepStats(d).Size) },
			},
			{
				ID: "sample_size", Label: "Sample size", Widget: WidgetText,
				TextGetter: func(d any) string { return fmt.Sprintf("%d", stepStats(d).SampleSize) },
			},
			{
				ID: "mean_age", Label: "Mean age", Widget: WidgetText,
				TextGetter: func(d any) string { return fmt.Sprintf("%.4e", stepStats(d).MeanAge) },
			},
			{
				ID: "age_max", Label: "Oldest", Widget: WidgetText, Format: "%.1f",
				Getter: func(d any) float32 { return float32(stepStats(d).AgeMax) },
			},
			{
				ID: "fill", Label: "Fill", Widget: WidgetBar, Range: DefaultRange(),
				Getter: func(d any) float32 { return float32(stepStats(d).Fill) },
			},
		},
	}
}

// EntropySection describes one bar per reference genome position, scaled to
// the four-base maximum.
func EntropySection(stats telemetry.StepStats) SectionDescriptor {
	sd := SectionDescriptor{ID: "entropy", Title: "Entropy"}
	for i, e := range stats.Entropy {
		pos := i
		sd.Fields = append(sd.Fields, FieldDescriptor{
			ID:     fmt.Sprintf("entropy_%d", pos),
			Label:  fmt.Sprintf("%2d %c", pos, e.Base),
			Widget: WidgetBar,
			Format: "%.3f",
			Range:  FieldRange{Min: 0, Max: maxEntropy},
			Getter: func(d any) float32 {
				es := stepStats(d).Entropy
				if pos >= len(es) {
					return 0
				}
				return float32(es[pos].Value)
			},
		})
	}
	return sd
}
