// Package organism holds the cell population state, the step engine that
// advances it, and the statistics derived from a snapshot.
package organism

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/agesim/genome"
)

// ErrInvalidSettings is returned when run parameters cannot produce a population.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds the immutable parameters of one run.
type Settings struct {
	Length       int           `yaml:"length"`        // Grid side; cells occupy [0, Length)
	Genome       genome.Genome `yaml:"genome"`        // Reference genome, also fixes genome length
	MutationRate float64       `yaml:"mutation_rate"` // Baseline whole-genome mutation threshold per step
	GrowthRate   float64       `yaml:"growth_rate"`   // Mutation threshold applied on split
	Seed         uint32        `yaml:"seed"`          // Nominal seed, used in reproducible mode
}

// Validate reports whether s can seed a population.
func (s Settings) Validate() error {
	if s.Length < 1 {
		return fmt.Errorf("%w: length must be positive, got %d", ErrInvalidSettings, s.Length)
	}
	if len(s.Genome) == 0 {
		return fmt.Errorf("%w: reference genome is empty", ErrInvalidSettings)
	}
	if err := genome.Validate(s.Genome, len(s.Genome)); err != nil {
		return fmt.Errorf("%w: reference genome: %w", ErrInvalidSettings, err)
	}
	if s.MutationRate < 0 || s.MutationRate > 1 {
		return fmt.Errorf("%w: mutation_rate %v outside [0, 1]", ErrInvalidSettings, s.MutationRate)
	}
	if s.GrowthRate < 0 || s.GrowthRate > 1 {
		return fmt.Errorf("%w: growth_rate %v outside [0, 1]", ErrInvalidSettings, s.GrowthRate)
	}
	return nil
}

// Area returns the grid capacity, Length squared.
func (s Settings) Area() int {
	return s.Length * s.Length
}
