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
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cannalytics/cannetl/internal/logging"
)

// ReadXLSX ingests the first sheet of an Excel workbook. The first row is
// the header. Short rows are padded with nulls (trailing empty cells are
// trimmed by the reader); rows longer than the header are malformed and
// skipped.
func ReadXLSX(path string, opts ReadOptions) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read header of %s: empty sheet %q", path, sheet)
	}

	header := rows[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records [][]string
	skipped := 0
	for _, rec := range rows[1:] {
		if len(rec) > len(header) {
			skipped++
			continue
		}
		for len(rec) < len(header) {
			rec = append(rec, "")
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
