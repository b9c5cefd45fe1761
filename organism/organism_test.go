package organism

import (
	"errors"
	"testing"

	"github.com/pthm-cable/agesim/genome"
	"github.com/pthm-cable/agesim/grid"
)

func gattaca() Settings {
	return Settings{
		Length:       20,
		Genome:       "GATTACA",
		MutationRate: 0.00016,
		GrowthRate:   0.01,
		Seed:         1234,
	}
}

func TestInitOrganism(t *testing.T) {
	tests := []struct {
		name   string
		length int
		centre grid.Location
	}{
		{"even length", 20, grid.Location{X: 10, Y: 10}},
		{"odd length", 7, grid.Location{X: 3, Y: 3}},
		{"single cell grid", 1, grid.Location{X: 0, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := gattaca()
			s.Length = tt.length
			o, err := InitOrganism(s)
			if err != nil {
				t.Fatalf("InitOrganism: %v", err)
			}
			if o.Size != 1 {
				t.Errorf("Size = %d, want 1", o.Size)
			}
			if len(o.Coordinates) != 1 || o.Coordinates[0] != tt.centre {
				t.Errorf("Coordinates = %v, want [%v]", o.Coordinates, tt.centre)
			}
			if len(o.Ages) != 1 || o.Ages[0] != 0 {
				t.Errorf("Ages = %v, want [0]", o.Ages)
			}
			if len(o.Genomes) != 1 || o.Genomes[0] != s.Genome {
				t.Errorf("Genomes = %v, want [%s]", o.Genomes, s.Genome)
			}
			if len(o.Senescent) != 1 || o.Senescent[0] {
				t.Errorf("Senescent = %v, want [false]", o.Senescent)
			}
			if o.SampleSize != InitialSampleSize {
				t.Errorf("SampleSize = %d, want %d", o.SampleSize, InitialSampleSize)
			}
			if err := o.Check(); err != nil {
				t.Errorf("Check: %v", err)
			}
		})
	}
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero length", func(s *Settings) { s.Length = 0 }},
		{"empty genome", func(s *Settings) { s.Genome = "" }},
		{"illegal base", func(s *Settings) { s.Genome = "GATTXCA" }},
		{"negative mutation", func(s *Settings) { s.MutationRate = -0.1 }},
		{"growth above one", func(s *Settings) { s.GrowthRate = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := gattaca()
			tt.mutate(&s)
			if _, err := InitOrganism(s); !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestCheckDetectsMismatch(t *testing.T) {
	o, _ := InitOrganism(gattaca())
	o.Senescent = nil
	if err := o.Check(); !errors.Is(err, ErrInvariant) {
		t.Errorf("expected ErrInvariant for short senescent slice, got %v", err)
	}

	o, _ = InitOrganism(gattaca())
	o.Genomes[0] = genome.Genome("GATT")
	if err := o.Check(); !errors.Is(err, ErrInvariant) {
		t.Errorf("expected ErrInvariant for short genome, got %v", err)
	}

	o, _ = InitOrganism(gattaca())
	o.appendCell(o.Coordinates[0], 0, o.Settings.Genome)
	if err := o.Check(); !errors.Is(err, ErrInvariant) {
		t.Errorf("expected ErrInvariant for duplicate location, got %v", err)
	}
}
