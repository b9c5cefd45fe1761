package organism

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/agesim/genome"
)

// entropyEpsilon keeps ln away from zero for absent bases.
const entropyEpsilon = 1e-18

// ErrEmptyPopulation is returned when statistics need at least one cell.
var ErrEmptyPopulation = errors.New("population is empty")

// BaseEntropy is the Shannon entropy at one reference genome position.
type BaseEntropy struct {
	Base  byte    `csv:"-"`
	Value float64 `csv:"entropy"`
}

// MeanAge sums all ages and normalises by the grid area, not the population.
func MeanAge(o Organism) float64 {
	area := o.Settings.Area()
	if area == 0 {
		return 0
	}
	return floats.Sum(o.Ages) / float64(area)
}

// Entropy computes per-position base entropy across all genomes, in reference order.
// A genome that is too short or holds a character outside the alphabet aborts the
// computation.
func Entropy(o Organism) ([]BaseEntropy, error) {
	if o.Size == 0 || len(o.Genomes) == 0 {
		return nil, ErrEmptyPopulation
	}
	ref := o.Settings.Genome
	out := make([]BaseEntropy, 0, len(ref))
	counts := make([]float64, genome.NumBases)
	for pos := 0; pos < len(ref); pos++ {
		for k := range counts {
			counts[k] = 0
		}
		for cell, g := range o.Genomes {
			if pos >= len(g) {
				return nil, fmt.Errorf("cell %d: position %d: %w", cell, pos, genome.ErrLength)
			}
			idx, ok := genome.BaseIndex(g[pos])
			if !ok {
				return nil, fmt.Errorf("cell %d: %w %q at position %d", cell, genome.ErrInvalidBase, g[pos], pos)
			}
			counts[idx]++
		}
		floats.Scale(1/float64(o.Size), counts)

		var h float64
		for _, p := range counts {
			h -= p * math.Log(p+entropyEpsilon)
		}
		out = append(out, BaseEntropy{Base: ref[pos], Value: h})
	}
	return out, nil
}

// MeanEntropy averages the per-position entropies.
func MeanEntropy(es []BaseEntropy) float64 {
	if len(es) == 0 {
		return 0
	}
	var sum float64
	for _, e := range es {
		sum += e.Value
	}
	return sum / float64(len(es))
}
