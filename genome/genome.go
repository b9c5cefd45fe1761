// Package genome implements the fixed-length G/C/T/A genome carried by every cell.
package genome

import (
	"errors"
	"fmt"
)

// Bases is the genome alphabet in mutation draw order.
const Bases = "GCAT"

// NumBases is the alphabet size.
const NumBases = 4

var (
	// ErrLengthMismatch is returned when two genomes of different length are compared.
	ErrLengthMismatch = errors.New("genome length mismatch")
	// ErrLength is returned when a genome does not match the reference length.
	ErrLength = errors.New("genome has wrong length")
	// ErrInvalidBase is returned for characters outside the alphabet.
	ErrInvalidBase = errors.New("invalid base")
)

// Genome is a sequence over {G, C, T, A}.
type Genome string

// Rand is the randomness a mutation consumes.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// BaseIndex maps a base to its tally slot: G=0, C=1, T=2, A=3.
func BaseIndex(b byte) (int, bool) {
	switch b {
	case 'G':
		return 0, true
	case 'C':
		return 1, true
	case 'T':
		return 2, true
	case 'A':
		return 3, true
	}
	return 0, false
}

// Difference counts the positions at which a and b differ.
// The count is returned as a float because it feeds the age accumulator directly.
func Difference(a, b Genome) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	var n int
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			n++
		}
	}
	return float64(n), nil
}

// Mutate draws one threshold; if rate exceeds it, every base is replaced by a
// uniformly drawn base. Otherwise g is returned unchanged.
func Mutate(g Genome, rate float64, rng Rand) Genome {
	thresh := rng.Float64()
	if !(rate > thresh) {
		return g
	}
	buf := make([]byte, len(g))
	for i := range buf {
		buf[i] = Bases[rng.Intn(NumBases)]
	}
	return Genome(buf)
}

// Validate checks that g has the given length and only uses the alphabet.
func Validate(g Genome, length int) error {
	if len(g) != length {
		return fmt.Errorf("%w: got %d, want %d", ErrLength, len(g), length)
	}
	for i := 0; i < len(g); i++ {
		if _, ok := BaseIndex(g[i]); !ok {
			return fmt.Errorf("%w %q at position %d", ErrInvalidBase, g[i], i)
		}
	}
	return nil
}
