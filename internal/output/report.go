//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ReportFile is the shape report file name.
const ReportFile = "dataset_shape_report.txt"

// Shape is the row/column count of one output file, the pipeline's
// lightweight consistency check across runs.
type Shape struct {
	File string
	Rows int
	Cols int
	Err  error
}

// ScanShapes reads every CSV under outDir and measures its shape from
// the actual file contents, so the report always reflects what was
// written, not what the run intended to write.
func ScanShapes(outDir string) ([]Shape, error) {
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, err
	}

	var shapes []Shape
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		shape := Shape{File: e.Name()}
		shape.Rows, shape.Cols, shape.Err = csvShape(filepath.Join(outDir, e.Name()))
		shapes = append(shapes, shape)
	}
	sort.Slice(shapes, func(i, j int) bool { return shapes[i].File < shapes[j].File })
	return shapes, nil
}

// csvShape counts data rows and header columns.
func csvShape(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return 0, 0, err
	}
	rows := 0
	for {
		if _, err := r.Read(); err != nil {
			if err == io.EOF {
				break
			}
			return 0, 0, err
		}
		rows++
	}
	return rows, len(header), nil
}

// RenderReport formats the shapes in the report layout consumed by the
// analysts downstream.
func RenderReport(shapes []Shape, generatedAt time.Time) string {
	rule := strings.Repeat("=", 80)
	lines := []string{
		rule,
		"DATASET ROWS x COLUMNS REPORT",
		rule,
		"",
	}
	for _, s := range shapes {
		name := s.File
		if len(name) < 50 {
			name += strings.Repeat(".", 50-len(name))
		}
		if s.Err != nil {
			lines = append(lines, name+"ERROR reading file")
			continue
		}
		lines = append(lines, fmt.Sprintf("%s%8d rows x %3d cols", name, s.Rows, s.Cols))
	}
	lines = append(lines,
		"",
		rule,
		fmt.Sprintf("Report generated: %s", generatedAt.UTC().Format(time.RFC3339)),
		rule,
		"",
	)
	return strings.Join(lines, "\n")
}

// WriteShapeReport scans outDir and writes the shape report beside the
// outputs. It returns the rendered report.
func WriteShapeReport(outDir string, now func() time.Time) (string, error) {
	if now == nil {
		now = time.Now
	}
	shapes, err := ScanShapes(outDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	report := RenderReport(shapes, now())
	path := filepath.Join(outDir, ReportFile)
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrWriteFailure, path, err)
	}
	return report, nil
}
