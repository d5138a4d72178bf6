//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cannalytics/cannetl/internal/logging"
)

// ReadOptions controls ingestion of a raw file.
type ReadOptions struct {
	// Required columns must all be present or ingestion fails with
	// ErrMissingColumn.
	Required []string

	// Keep, when non-empty, is the expected schema: only these columns
	// are retained and any others are dropped with a warning.
	Keep []string
}

// ReadCSV ingests a CSV file. The first record is the header. Rows whose
// field count does not match the header are malformed: they are skipped
// and logged, never fatal.
func ReadCSV(path string, opts ReadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records [][]string
	skipped := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if len(rec) != len(header) {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if skipped > 0 {
		logging.Warn().
			Str("file", path).
			Int("skipped_rows", skipped).
			Msg("Skipped malformed rows")
	}

	return fromRecords(path, header, records, opts)
}

// fromRecords applies the expected schema to raw header+records.
func fromRecords(source string, header []string, records [][]string, opts ReadOptions) (*Table, error) {
	have := make(map[string]int, len(header))
	for i, c := range header {
		have[c] = i
	}

	for _, c := range opts.Required {
		if _, ok := have[c]; !ok {
			return nil, fmt.Errorf("%w: %q in %s", ErrMissingColumn, c, source)
		}
	}

	cols := header
	if len(opts.Keep) > 0 {
		keep := make(map[string]bool, len(opts.Keep))
		cols = cols[:0:0]
		for _, c := range opts.Keep {
			if _, ok := have[c]; ok {
				keep[c] = true
				cols = append(cols, c)
			}
		}
		var dropped []string
		for _, c := range header {
			if !keep[c] {
				dropped = append(dropped, c)
			}
		}
		if len(dropped) > 0 {
			logging.Warn().
				Str("file", source).
				Strs("columns", dropped).
				Msg("Dropping columns outside expected schema")
		}
	}

	idx := make([]int, len(cols))
	for i, c := range cols {
		idx[i] = have[c]
	}

	t := New(cols...)
	for _, rec := range records {
		row := make([]string, len(cols))
		for i, j := range idx {
			row[i] = strings.TrimSpace(rec[j])
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// WriteCSV writes the table to w with a header record and LF line
// endings. Cell and column order are preserved as-is; callers wanting
// byte-identical reruns sort first.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.cols); err != nil {
		return err
	}
	for _, r := range t.rows {
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
