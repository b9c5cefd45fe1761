package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/agesim/config"
)

// Output file names inside the run directory.
const (
	TelemetryFile = "telemetry.csv"
	EntropyFile   = "entropy.csv"
	PerfFile      = "perf.csv"
	BookmarksFile = "bookmarks.csv"
	ConfigFile    = "config.yaml"
	ChartFile     = "chart.png"
	VideoFile     = "frames.avi"
)

// EntropyRow is one base position's entropy at a flushed step.
type EntropyRow struct {
	Step     int     `csv:"step"`
	Position int     `csv:"position"`
	Base     string  `csv:"base"`
	Entropy  float64 `csv:"entropy"`
}

// EntropyRows flattens the per-position entropy of stats.
func EntropyRows(stats StepStats) []EntropyRow {
	rows := make([]EntropyRow, len(stats.Entropy))
	for i, e := range stats.Entropy {
		rows[i] = EntropyRow{
			Step:     stats.Step,
			Position: i,
			Base:     string(e.Base),
			Entropy:  e.Value,
		}
	}
	return rows
}

// csvFile writes the header with the first batch of records only.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func (c *csvFile) write(records any) error {
	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.f); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.f)
}

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir       string
	telemetry *csvFile
	entropy   *csvFile
	perf      *csvFile
	bookmarks *csvFile
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	targets := []struct {
		name string
		dst  **csvFile
	}{
		{TelemetryFile, &om.telemetry},
		{EntropyFile, &om.entropy},
		{PerfFile, &om.perf},
		{BookmarksFile, &om.bookmarks},
	}
	for _, t := range targets {
		f, err := os.Create(filepath.Join(dir, t.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", t.name, err)
		}
		*t.dst = &csvFile{f: f}
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WriteTelemetry writes a stats row to telemetry.csv and its per-position
// entropy to entropy.csv.
func (om *OutputManager) WriteTelemetry(stats StepStats) error {
	if om == nil {
		return nil
	}
	if err := om.telemetry.write([]StepStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	if rows := EntropyRows(stats); len(rows) > 0 {
		if err := om.entropy.write(rows); err != nil {
			return fmt.Errorf("writing entropy: %w", err)
		}
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, step int) error {
	if om == nil {
		return nil
	}
	if err := om.perf.write([]PerfStatsCSV{stats.ToCSV(step)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteBookmark writes a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	if err := om.bookmarks.write([]Bookmark{b}); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
	}
	return nil
}

// Path returns the location of name inside the output directory, or "" when
// output is disabled.
func (om *OutputManager) Path(name string) string {
	if om == nil {
		return ""
	}
	return filepath.Join(om.dir, name)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, c := range []*csvFile{om.telemetry, om.entropy, om.perf, om.bookmarks} {
		if c == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
