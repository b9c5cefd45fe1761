package organism

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/agesim/genome"
	"github.com/pthm-cable/agesim/grid"
)

// InitialSampleSize is the placeholder sample count of a fresh population.
const InitialSampleSize = 10

// ErrInvariant is returned by Check when the parallel per-cell slices disagree.
var ErrInvariant = errors.New("organism invariant violated")

// Organism is one snapshot of the population. Index i across the per-cell
// slices identifies a cell within this snapshot.
type Organism struct {
	Coordinates []grid.Location
	Ages        []float64
	Senescent   []bool
	Genomes     []genome.Genome
	Settings    Settings
	Size        int
	SampleSize  int // Mean signals received per cell during the last step
}

// InitOrganism creates a single cell at the grid centre carrying the reference genome.
func InitOrganism(s Settings) (Organism, error) {
	if err := s.Validate(); err != nil {
		return Organism{}, err
	}
	centre := grid.Location{X: s.Length / 2, Y: s.Length / 2}
	return Organism{
		Coordinates: []grid.Location{centre},
		Ages:        []float64{0},
		Senescent:   []bool{false},
		Genomes:     []genome.Genome{s.Genome},
		Settings:    s,
		Size:        1,
		SampleSize:  InitialSampleSize,
	}, nil
}

// clone returns a deep copy with room for extra cells.
func (o Organism) clone(extra int) Organism {
	n := len(o.Coordinates)
	c := o
	c.Coordinates = append(make([]grid.Location, 0, n+extra), o.Coordinates...)
	c.Ages = append(make([]float64, 0, n+extra), o.Ages...)
	c.Senescent = append(make([]bool, 0, n+extra), o.Senescent...)
	c.Genomes = append(make([]genome.Genome, 0, n+extra), o.Genomes...)
	return c
}

// appendCell adds a cell to every per-cell slice so their lengths stay equal.
func (o *Organism) appendCell(loc grid.Location, age float64, g genome.Genome) {
	o.Coordinates = append(o.Coordinates, loc)
	o.Ages = append(o.Ages, age)
	o.Senescent = append(o.Senescent, false)
	o.Genomes = append(o.Genomes, g)
	o.Size = len(o.Coordinates)
}

// Check verifies the snapshot invariants: equal slice lengths, distinct in-bounds
// coordinates and well-formed genomes.
func (o Organism) Check() error {
	n := len(o.Coordinates)
	if len(o.Ages) != n || len(o.Senescent) != n || len(o.Genomes) != n || o.Size != n {
		return fmt.Errorf("%w: coordinates=%d ages=%d senescent=%d genomes=%d size=%d",
			ErrInvariant, n, len(o.Ages), len(o.Senescent), len(o.Genomes), o.Size)
	}
	occ := grid.NewOccupancy(o.Settings.Length)
	for i, c := range o.Coordinates {
		if !c.InBounds(o.Settings.Length) {
			return fmt.Errorf("%w: cell %d at %v outside grid of length %d", ErrInvariant, i, c, o.Settings.Length)
		}
		if occ.Occupied(c) {
			return fmt.Errorf("%w: cell %d shares location %v", ErrInvariant, i, c)
		}
		occ.Set(c)
	}
	ref := len(o.Settings.Genome)
	for i, g := range o.Genomes {
		if err := genome.Validate(g, ref); err != nil {
			return fmt.Errorf("%w: cell %d: %w", ErrInvariant, i, err)
		}
	}
	return nil
}
