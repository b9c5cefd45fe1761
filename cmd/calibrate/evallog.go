package main

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// EvalRow is one line of calibrate_log.csv.
type EvalRow struct {
	Eval         int     `csv:"eval"`
	Quality      float64 `csv:"quality"`
	MutationRate float64 `csv:"mutation_rate"`
	GrowthRate   float64 `csv:"growth_rate"`
}

// evalLog appends evaluation rows, writing the header with the first row.
type evalLog struct {
	f       *os.File
	written bool
}

func newEvalLog(path string) (*evalLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &evalLog{f: f}, nil
}

// Write appends row and syncs the file so a killed run keeps its log.
func (l *evalLog) Write(row EvalRow) error {
	rows := []EvalRow{row}
	var err error
	if l.written {
		err = gocsv.MarshalWithoutHeaders(rows, l.f)
	} else {
		err = gocsv.Marshal(rows, l.f)
		l.written = true
	}
	if err != nil {
		return fmt.Errorf("eval %d: %w", row.Eval, err)
	}
	return l.f.Sync()
}

func (l *evalLog) Close() error {
	return l.f.Close()
}
