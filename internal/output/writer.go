//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package output persists final tables and the dataset shape report.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cannalytics/cannetl/internal/logging"
	"github.com/cannalytics/cannetl/internal/table"
)

// ErrWriteFailure marks a failed output write. Write failures are fatal
// and abort the run.
var ErrWriteFailure = errors.New("write failure")

// Writer persists final tables as CSV files under a single output
// directory. Files are fully overwritten on each run via atomic replace.
type Writer struct {
	outDir string
}

// NewWriter creates a writer rooted at outDir, creating it if needed.
func NewWriter(outDir string) (*Writer, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	return &Writer{outDir: outDir}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.outDir }

// Write persists a table as <name>.csv. Rows are sorted by all columns
// first so identical inputs always produce byte-identical files.
func (w *Writer) Write(name string, t *table.Table) error {
	sorted := t.Copy()
	sorted.SortBy()

	path := filepath.Join(w.outDir, name+".csv")
	if err := atomicWriteCSV(path, sorted); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailure, path, err)
	}

	rows, cols := sorted.Shape()
	logging.Info().
		Str("file", name+".csv").
		Int("rows", rows).
		Int("cols", cols).
		Msg("Saved output")
	return nil
}

// atomicWriteCSV writes via a temp file and rename so a failed run never
// leaves a truncated output behind.
func atomicWriteCSV(path string, t *table.Table) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := t.WriteCSV(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
