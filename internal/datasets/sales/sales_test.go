//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package sales

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cannalytics/cannetl/internal/etl"
	"github.com/cannalytics/cannetl/internal/table"
)

func writeRawSales(t *testing.T, content string) *etl.Env {
	t.Helper()
	rawDir := t.TempDir()
	dir := filepath.Join(rawDir, "02_cannabis_sales")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create raw dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "cannabis_sales.csv"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write raw file: %v", err)
	}
	return &etl.Env{RawDir: rawDir, Results: make(map[string]*table.Table)}
}

func TestProcess(t *testing.T) {
	env := writeRawSales(t, `REF_DATE,GEO,DGUID,Type of cannabis,UOM,UOM_ID,SCALAR_FACTOR,SCALAR_ID,VALUE
2019-03,Alberta,2016A000248,Total cannabis,Dollars,81,thousands,3,12345
2018-09,Alberta,2016A000248,Total cannabis,Dollars,81,thousands,3,100
not-a-date,Alberta,2016A000248,Total cannabis,Dollars,81,thousands,3,200
2019-03,Ontario,2016A000235,Total cannabis,Dollars,81,thousands,3,-5
2019-04,Canada,2016A000011124,Total cannabis,Dollars,81,thousands,3,99999
`)

	outputs, err := New().Process(context.Background(), env)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(outputs) != 1 || outputs[0].Name != "sales_data" {
		t.Fatalf("Expected one 'sales_data' output, got %v", outputs)
	}

	out := outputs[0].Table
	// Pre-legalization, malformed-date, and negative-value rows dropped
	if out.NumRows() != 2 {
		t.Fatalf("Expected 2 rows, got %d", out.NumRows())
	}
	if got := out.Cell(0, "REF_DATE"); got != "2019-03-01" {
		t.Errorf("Expected normalized date '2019-03-01', got '%s'", got)
	}
	if got := out.Cell(0, "Province"); got != "AB" {
		t.Errorf("Expected Province 'AB', got '%s'", got)
	}
	// National rows have no province code
	if got := out.Cell(1, "Province"); got != "" {
		t.Errorf("Expected empty Province for Canada row, got '%s'", got)
	}
}

func TestProcessDropsDuplicates(t *testing.T) {
	env := writeRawSales(t, `REF_DATE,GEO,DGUID,Type of cannabis,UOM,UOM_ID,SCALAR_FACTOR,SCALAR_ID,VALUE
2019-03,Alberta,2016A000248,Total cannabis,Dollars,81,thousands,3,12345
2019-03,Alberta,2016A000248,Total cannabis,Dollars,81,thousands,3,12345
`)

	outputs, err := New().Process(context.Background(), env)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if got := outputs[0].Table.NumRows(); got != 1 {
		t.Errorf("Expected 1 row after dedup, got %d", got)
	}
}

func TestProcessDropsUnexpectedColumns(t *testing.T) {
	env := writeRawSales(t, `REF_DATE,GEO,DGUID,Type of cannabis,UOM,UOM_ID,SCALAR_FACTOR,SCALAR_ID,VALUE,STATUS
2019-03,Alberta,2016A000248,Total cannabis,Dollars,81,thousands,3,12345,t
`)

	outputs, err := New().Process(context.Background(), env)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if outputs[0].Table.Has("STATUS") {
		t.Error("Expected STATUS column to be dropped")
	}
}

func TestProcessMissingRequiredColumn(t *testing.T) {
	env := writeRawSales(t, "REF_DATE,GEO\n2019-03,Alberta\n")

	_, err := New().Process(context.Background(), env)
	if !errors.Is(err, table.ErrMissingColumn) {
		t.Errorf("Expected ErrMissingColumn, got %v", err)
	}
}

func TestDatasetMetadata(t *testing.T) {
	d := New()
	if d.Name() != "sales" {
		t.Errorf("Expected name 'sales', got '%s'", d.Name())
	}
	if d.Description() == "" {
		t.Error("Description should not be empty")
	}
	if len(d.Requires()) != 0 {
		t.Errorf("Expected no requirements, got %v", d.Requires())
	}
}
