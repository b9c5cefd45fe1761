package organism

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/agesim/genome"
	"github.com/pthm-cable/agesim/grid"
)

func TestMeanAgeUsesGridArea(t *testing.T) {
	s := gattaca()
	s.Length = 10
	o := population(s,
		[]grid.Location{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
		[]genome.Genome{"GATTACA", "GATTACA", "GATTACA"},
	)
	o.Ages = []float64{1, 2, 3}

	if got, want := MeanAge(o), 6.0/100.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("MeanAge = %v, want %v", got, want)
	}
}

func TestEntropyIdenticalGenomes(t *testing.T) {
	o, _ := InitOrganism(gattaca())
	es, err := Entropy(o)
	if err != nil {
		t.Fatalf("Entropy: %v", err)
	}
	if len(es) != len(o.Settings.Genome) {
		t.Fatalf("len = %d, want %d", len(es), len(o.Settings.Genome))
	}
	for i, e := range es {
		if e.Base != o.Settings.Genome[i] {
			t.Errorf("position %d base = %c, want %c", i, e.Base, o.Settings.Genome[i])
		}
		if e.Value < 0 || e.Value > 1e-12 {
			t.Errorf("position %d entropy = %v, want 0", i, e.Value)
		}
	}
}

func TestEntropyEvenSplit(t *testing.T) {
	s := Settings{Length: 5, Genome: "GCTA"}
	o := population(s,
		[]grid.Location{{X: 0, Y: 0}, {X: 1, Y: 0}},
		[]genome.Genome{"GCTA", "ATCG"},
	)
	es, err := Entropy(o)
	if err != nil {
		t.Fatalf("Entropy: %v", err)
	}
	for i, e := range es {
		if math.Abs(e.Value-math.Ln2) > 1e-9 {
			t.Errorf("position %d entropy = %v, want ln 2", i, e.Value)
		}
	}
	if got := MeanEntropy(es); math.Abs(got-math.Ln2) > 1e-9 {
		t.Errorf("MeanEntropy = %v, want ln 2", got)
	}
}

func TestEntropyFourWay(t *testing.T) {
	s := Settings{Length: 5, Genome: "G"}
	o := population(s,
		[]grid.Location{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}},
		[]genome.Genome{"G", "C", "T", "A"},
	)
	es, err := Entropy(o)
	if err != nil {
		t.Fatal(err)
	}
	if want := math.Log(4); math.Abs(es[0].Value-want) > 1e-9 {
		t.Errorf("entropy = %v, want %v", es[0].Value, want)
	}
}

func TestEntropyMalformedGenome(t *testing.T) {
	s := gattaca()
	tests := []struct {
		name string
		g    genome.Genome
		want error
	}{
		{"illegal base", "GATNACA", genome.ErrInvalidBase},
		{"short genome", "GAT", genome.ErrLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := population(s,
				[]grid.Location{{X: 0, Y: 0}, {X: 1, Y: 0}},
				[]genome.Genome{"GATTACA", tt.g},
			)
			if _, err := Entropy(o); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestEntropyEmpty(t *testing.T) {
	if _, err := Entropy(Organism{Settings: gattaca()}); !errors.Is(err, ErrEmptyPopulation) {
		t.Errorf("expected ErrEmptyPopulation, got %v", err)
	}
}
