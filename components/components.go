// Package components defines ECS components for the rendered cell scene.
package components

import "github.com/pthm-cable/agesim/genome"

// Position is a cell's grid location.
type Position struct {
	X, Y int
}

// Age holds a cell's estimated age from its last step.
type Age struct {
	Value float64
}

// Genome holds a cell's current base sequence.
type Genome struct {
	Sequence  genome.Genome
	Senescent bool
}
