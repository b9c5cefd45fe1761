package genome

import (
	"errors"
	"math/rand"
	"testing"
)

// fixedRand returns the same threshold every draw and cycles Intn results.
type fixedRand struct {
	f    float64
	next int
}

func (r *fixedRand) Float64() float64 { return r.f }

func (r *fixedRand) Intn(n int) int {
	v := r.next % n
	r.next++
	return v
}

func TestDifference(t *testing.T) {
	tests := []struct {
		name string
		a, b Genome
		want float64
	}{
		{"identical", "GATTACA", "GATTACA", 0},
		{"one change", "GATTACA", "GATTACC", 1},
		{"all different", "GGGG", "CCCC", 4},
		{"empty", "", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Difference(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Difference(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			rev, _ := Difference(tt.b, tt.a)
			if rev != got {
				t.Errorf("Difference is not symmetric: %v vs %v", got, rev)
			}
			if got > float64(len(tt.a)) {
				t.Errorf("Difference %v exceeds genome length %d", got, len(tt.a))
			}
		})
	}
}

func TestDifferenceLengthMismatch(t *testing.T) {
	_, err := Difference("GATTACA", "GAT")
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestMutateBelowThreshold(t *testing.T) {
	rng := &fixedRand{f: 0.5}
	if got := Mutate("GATTACA", 0.1, rng); got != "GATTACA" {
		t.Errorf("Mutate should not fire: got %q", got)
	}
	if rng.next != 0 {
		t.Errorf("no base draws expected, got %d", rng.next)
	}
}

func TestMutateWholeGenome(t *testing.T) {
	rng := &fixedRand{f: 0.0}
	got := Mutate("AAAAAAA", 0.5, rng)
	// Intn cycles 0,1,2,3 -> G,C,A,T
	if got != "GCATGCA" {
		t.Errorf("Mutate = %q, want GCATGCA", got)
	}
	if rng.next != 7 {
		t.Errorf("expected one base draw per position, got %d", rng.next)
	}
}

func TestMutateZeroRateNeverFires(t *testing.T) {
	rng := &fixedRand{f: 0.0}
	if got := Mutate("GATTACA", 0, rng); got != "GATTACA" {
		t.Errorf("zero rate mutated genome: %q", got)
	}
}

func TestMutateKeepsAlphabet(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := Genome("GATTACA")
	for i := 0; i < 200; i++ {
		g = Mutate(g, 1.0, rng)
		if err := Validate(g, 7); err != nil {
			t.Fatalf("mutation produced invalid genome %q: %v", g, err)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate("GATTACA", 7); err != nil {
		t.Errorf("valid genome rejected: %v", err)
	}
	if err := Validate("GATTACA", 6); !errors.Is(err, ErrLength) {
		t.Errorf("expected ErrLength, got %v", err)
	}
	if err := Validate("GATXACA", 7); !errors.Is(err, ErrInvalidBase) {
		t.Errorf("expected ErrInvalidBase, got %v", err)
	}
}

func TestBaseIndex(t *testing.T) {
	for i, b := range []byte("GCTA") {
		idx, ok := BaseIndex(b)
		if !ok || idx != i {
			t.Errorf("BaseIndex(%q) = %d, %v; want %d, true", b, idx, ok, i)
		}
	}
	if _, ok := BaseIndex('N'); ok {
		t.Error("BaseIndex('N') should fail")
	}
}
