package organism

import (
	"fmt"
	"math"

	"github.com/pthm-cable/agesim/genome"
	"github.com/pthm-cable/agesim/grid"
)

// Step constants.
const (
	SplitScale  = 0.02 // split probability = SplitScale * exp(-age)
	SignalDecay = 0.2  // signal probability = exp(-SignalDecay * distance)
)

// Engine advances populations one step at a time, drawing from its own generator.
type Engine struct {
	rng Rand
}

// NewEngine creates an engine that draws from rng.
func NewEngine(rng Rand) *Engine {
	return &Engine{rng: rng}
}

// GrowStep returns the population one step after o. o itself is not modified.
//
// Cells are visited in index order over a single working copy, so a cell reads
// the genomes of lower-index cells as already mutated this step, and sees cells
// spawned earlier in the same scan.
func (e *Engine) GrowStep(o Organism) (Organism, error) {
	n := len(o.Coordinates)
	length := o.Settings.Length
	w := o.clone(n)

	occ := grid.NewOccupancy(length)
	for _, c := range w.Coordinates {
		occ.Set(c)
	}

	totalSamples := 0
	for i := 0; i < n; i++ {
		preAge := w.Ages[i]
		split := SplitScale*math.Exp(-preAge) > e.rng.Float64()

		candidates := make([]grid.Location, 0, 8)
		for _, c := range w.Coordinates[i].Neighbours() {
			if c.X < length && c.Y < length {
				candidates = append(candidates, c)
			}
		}

		age, samples, err := e.sample(&w, i)
		if err != nil {
			return Organism{}, err
		}
		totalSamples += samples

		candidates = occ.Free(candidates)
		if split && len(candidates) > 0 {
			target := candidates[e.rng.Intn(len(candidates))]
			child := genome.Mutate(w.Genomes[i], o.Settings.GrowthRate, e.rng)
			w.appendCell(target, preAge, child)
			occ.Set(target)
			w.Genomes[i] = genome.Mutate(w.Genomes[i], o.Settings.GrowthRate, e.rng)
		}

		w.Ages[i] = age
		w.Genomes[i] = genome.Mutate(w.Genomes[i], o.Settings.MutationRate, e.rng)
	}

	w.Size = len(w.Coordinates)
	if n > 0 {
		w.SampleSize = totalSamples / n
	}
	return w, nil
}

// sample runs the signal pass for cell i against every cell currently in w,
// itself included, and returns the summed genomic difference of the received
// signals and how many were received.
func (e *Engine) sample(w *Organism, i int) (float64, int, error) {
	var age float64
	var samples int
	ci := w.Coordinates[i]
	for j := 0; j < len(w.Coordinates); j++ {
		prob := math.Exp(-SignalDecay * grid.Distance(w.Coordinates[j], ci))
		if prob > e.rng.Float64() {
			d, err := genome.Difference(w.Genomes[i], w.Genomes[j])
			if err != nil {
				return 0, 0, fmt.Errorf("comparing cells %d and %d: %w", i, j, err)
			}
			samples++
			age += d
		}
	}
	return age, samples, nil
}
