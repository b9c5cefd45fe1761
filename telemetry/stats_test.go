package telemetry

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/agesim/genome"
	"github.com/pthm-cable/agesim/grid"
	"github.com/pthm-cable/agesim/organism"
)

// twoCells is a 10x10 grid holding two cells whose genomes differ at the first base.
func twoCells() organism.Organism {
	return organism.Organism{
		Coordinates: []grid.Location{{X: 5, Y: 5}, {X: 5, Y: 6}},
		Ages:        []float64{2, 4},
		Senescent:   []bool{false, false},
		Genomes:     []genome.Genome{"GAT", "CAT"},
		Settings: organism.Settings{
			Length:       10,
			Genome:       "GAT",
			MutationRate: 0.01,
			GrowthRate:   0.01,
		},
		Size:       2,
		SampleSize: 2,
	}
}

func TestComputeAgeStats(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	mean, std, p10, p50, p90, oldest := ComputeAgeStats(values)

	if math.Abs(mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	if math.Abs(std-3.0277) > 1e-3 {
		t.Errorf("std = %v, want ~3.0277", std)
	}
	if p50 != 5 {
		t.Errorf("p50 = %v, want 5", p50)
	}
	if p10 > p50 || p50 > p90 {
		t.Errorf("percentiles out of order: %v %v %v", p10, p50, p90)
	}
	if oldest != 10 {
		t.Errorf("oldest = %v, want 10", oldest)
	}
	if values[0] != 10 {
		t.Error("input slice was reordered")
	}
}

func TestComputeAgeStatsSmall(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		mean   float64
		oldest float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{3}, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, _, _, _, oldest := ComputeAgeStats(tt.values)
			if mean != tt.mean || oldest != tt.oldest || std != 0 {
				t.Errorf("got mean=%v std=%v oldest=%v", mean, std, oldest)
			}
		})
	}
}

func TestCompute(t *testing.T) {
	stats, err := Compute(7, twoCells())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if stats.Step != 7 || stats.Size != 2 || stats.SampleSize != 2 {
		t.Errorf("unexpected header fields %+v", stats)
	}
	if math.Abs(stats.MeanAge-0.06) > 1e-12 {
		t.Errorf("MeanAge = %v, want 0.06", stats.MeanAge)
	}
	if stats.AgeMean != 3 || stats.AgeMax != 4 {
		t.Errorf("AgeMean = %v, AgeMax = %v", stats.AgeMean, stats.AgeMax)
	}
	if math.Abs(stats.Fill-0.02) > 1e-12 {
		t.Errorf("Fill = %v, want 0.02", stats.Fill)
	}
	if len(stats.Entropy) != 3 {
		t.Fatalf("len(Entropy) = %d, want 3", len(stats.Entropy))
	}
	if math.Abs(stats.Entropy[0].Value-math.Ln2) > 1e-9 {
		t.Errorf("position 0 entropy = %v, want ln2", stats.Entropy[0].Value)
	}
	if math.Abs(stats.MeanEntropy-math.Ln2/3) > 1e-9 {
		t.Errorf("MeanEntropy = %v, want ln2/3", stats.MeanEntropy)
	}
}

func TestComputeInvalidGenome(t *testing.T) {
	o := twoCells()
	o.Genomes[1] = "CXT"
	if _, err := Compute(1, o); !errors.Is(err, genome.ErrInvalidBase) {
		t.Errorf("err = %v, want ErrInvalidBase", err)
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector(2, 1)
	o := twoCells()

	if _, err := c.Observe(1, o); err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if c.ShouldFlush(1) {
		t.Error("flush after one step of a two-step window")
	}

	o.Coordinates = append(o.Coordinates, grid.Location{X: 6, Y: 5})
	o.Ages = append(o.Ages, 0)
	o.Senescent = append(o.Senescent, false)
	o.Genomes = append(o.Genomes, "GAT")
	o.Size = 3
	if _, err := c.Observe(2, o); err != nil {
		t.Fatalf("Observe: %v", err)
	}
	if !c.ShouldFlush(2) {
		t.Fatal("expected flush at step 2")
	}

	row := c.Flush(2)
	if row.Step != 2 || row.Births != 2 {
		t.Errorf("row step=%d births=%d, want 2 and 2", row.Step, row.Births)
	}
	if c.ShouldFlush(3) {
		t.Error("window was not reset")
	}
	if got := c.Flush(4).Births; got != 0 {
		t.Errorf("births after reset = %d, want 0", got)
	}

	h := c.History()
	if h.Len() != 2 {
		t.Fatalf("history len = %d, want 2", h.Len())
	}
	if h.Steps[1] != 2 || h.Sizes[1] != 3 {
		t.Errorf("history point = (%v, %v), want (2, 3)", h.Steps[1], h.Sizes[1])
	}
}

func TestOutputManager(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	stats, err := Compute(1, twoCells())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := om.WriteTelemetry(stats); err != nil {
			t.Fatalf("WriteTelemetry: %v", err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkHalfFull, Step: 1}); err != nil {
		t.Fatalf("WriteBookmark: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, TelemetryFile))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("telemetry.csv has %d lines, want header + 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "step,size,sample_size,mean_age") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if strings.Contains(lines[0], "Entropy") {
		t.Errorf("entropy slice leaked into header %q", lines[0])
	}

	data, err = os.ReadFile(filepath.Join(dir, EntropyFile))
	if err != nil {
		t.Fatal(err)
	}
	lines = strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 7 {
		t.Fatalf("entropy.csv has %d lines, want header + 6", len(lines))
	}
	if lines[0] != "step,position,base,entropy" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "1,0,G,") {
		t.Errorf("unexpected first row %q", lines[1])
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("got %v, %v; want nil, nil", om, err)
	}
	if err := om.WriteTelemetry(StepStats{}); err != nil {
		t.Errorf("nil manager write: %v", err)
	}
	if om.Path(ChartFile) != "" {
		t.Error("nil manager should have no paths")
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil manager close: %v", err)
	}
}
