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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeTempCSV(t, "a,b\n1,2\n3,4\n")

	tbl, err := ReadCSV(path, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	rows, cols := tbl.Shape()
	if rows != 2 || cols != 2 {
		t.Errorf("Expected 2x2, got %dx%d", rows, cols)
	}
	if got := tbl.Cell(1, "b"); got != "4" {
		t.Errorf("Expected '4', got '%s'", got)
	}
}

func TestReadCSVSkipsMalformedRows(t *testing.T) {
	path := writeTempCSV(t, "a,b\n1,2\nonly-one-field\n3,4,5\n6,7\n")

	tbl, err := ReadCSV(path, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if tbl.NumRows() != 2 {
		t.Errorf("Expected 2 rows after skipping malformed, got %d", tbl.NumRows())
	}
}

func TestReadCSVRequiredColumn(t *testing.T) {
	path := writeTempCSV(t, "a,b\n1,2\n")

	_, err := ReadCSV(path, ReadOptions{Required: []string{"a", "VALUE"}})
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("Expected ErrMissingColumn, got %v", err)
	}
}

func TestReadCSVKeepDropsExtraColumns(t *testing.T) {
	path := writeTempCSV(t, "a,b,extra\n1,2,3\n")

	tbl, err := ReadCSV(path, ReadOptions{Keep: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if tbl.Has("extra") {
		t.Error("Expected extra column to be dropped")
	}
	if got := strings.Join(tbl.Columns(), ","); got != "a,b" {
		t.Errorf("Expected columns 'a,b', got '%s'", got)
	}
}

func TestReadCSVStripsBOM(t *testing.T) {
	path := writeTempCSV(t, "\uFEFFREF_DATE,VALUE\n2020-01,10\n")

	tbl, err := ReadCSV(path, ReadOptions{Required: []string{"REF_DATE"}})
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if !tbl.Has("REF_DATE") {
		t.Errorf("BOM not stripped from header: %v", tbl.Columns())
	}
}

func TestReadCSVTrimsWhitespace(t *testing.T) {
	path := writeTempCSV(t, " a , b \n 1 , 2 \n")

	tbl, err := ReadCSV(path, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if !tbl.Has("a") || !tbl.Has("b") {
		t.Errorf("Headers not trimmed: %v", tbl.Columns())
	}
	if got := tbl.Cell(0, "a"); got != "1" {
		t.Errorf("Cells not trimmed: '%s'", got)
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"), ReadOptions{})
	if err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestWriteCSV(t *testing.T) {
	tbl := mustTable(t, []string{"a", "b"},
		[]string{"1", "has,comma"},
		[]string{"", "2"})

	var sb strings.Builder
	if err := tbl.WriteCSV(&sb); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	want := "a,b\n1,\"has,comma\"\n,2\n"
	if sb.String() != want {
		t.Errorf("Expected %q, got %q", want, sb.String())
	}
}
