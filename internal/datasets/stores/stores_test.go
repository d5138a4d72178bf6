//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package stores

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/cannalytics/cannetl/internal/etl"
	"github.com/cannalytics/cannetl/internal/geo"
	"github.com/cannalytics/cannetl/internal/table"
)

type fakeResolver struct {
	loc    geo.Location
	postal string
	fail   bool
}

func (f *fakeResolver) Geocode(address string) (geo.Location, error) {
	if f.fail {
		return geo.Location{}, geo.ErrGeocodeFailure
	}
	return f.loc, nil
}

func (f *fakeResolver) ReversePostal(loc geo.Location) (string, error) {
	if f.fail || f.postal == "" {
		return "", geo.ErrGeocodeFailure
	}
	return f.postal, nil
}

func newStoresEnv(t *testing.T, files map[string]string) *etl.Env {
	t.Helper()
	rawDir := t.TempDir()
	dir := filepath.Join(rawDir, "01_store_locations")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create raw dir: %v", err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return &etl.Env{RawDir: rawDir, Results: make(map[string]*table.Table)}
}

func writeFederalXLSX(t *testing.T, env *etl.Env, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	header := []any{
		"Establishment Name", "Site City Name", "Site Address Line 1",
		"Site Postal Code", "Site Province Abbrev", "License Status",
	}
	all := append([][]any{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName failed: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	path := env.RawPath(rawDir, "Alberta.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
}

func findOutput(t *testing.T, outputs []etl.Output) *table.Table {
	t.Helper()
	if len(outputs) != 1 || outputs[0].Name != "store_locations" {
		t.Fatalf("Expected one 'store_locations' output, got %v", outputs)
	}
	return outputs[0].Table
}

func TestProcessCleansFullAddress(t *testing.T) {
	env := newStoresEnv(t, map[string]string{
		"BritishColumbia.csv": `StoreName,City,FullAddress
Green Leaf,Vancouver,"123 Main St, Vancouver, British Columbia V6B 1A1"
`,
	})

	out := findOutput(t, mustProcess(t, env))
	if out.NumRows() != 1 {
		t.Fatalf("Expected 1 row, got %d", out.NumRows())
	}
	row := out.Row(0)
	if got := row.Get("Address"); got != "123 Main St" {
		t.Errorf("Expected street-only address, got '%s'", got)
	}
	if got := row.Get("PostalCode"); got != "V6B 1A1" {
		t.Errorf("Expected extracted postal code, got '%s'", got)
	}
	if got := row.Get("Province"); got != "BC" {
		t.Errorf("Expected Province 'BC', got '%s'", got)
	}
	if got := row.Get("ProvinceName"); got != "British Columbia" {
		t.Errorf("Expected ProvinceName 'British Columbia', got '%s'", got)
	}
}

func mustProcess(t *testing.T, env *etl.Env) []etl.Output {
	t.Helper()
	outputs, err := New().Process(context.Background(), env)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	return outputs
}

func TestProcessFiltersClosedLicenses(t *testing.T) {
	env := newStoresEnv(t, nil)
	writeFederalXLSX(t, env, [][]any{
		{"Open Store", "Calgary", "1 First St", "T2P 1A1", "AB", "Licensed"},
		{"Dead Store", "Calgary", "2 Second St", "T2P 1A2", "AB", "Revoked"},
		{"Gone Store", "Calgary", "3 Third St", "T2P 1A3", "AB", "Expired"},
	})

	out := findOutput(t, mustProcess(t, env))
	if out.NumRows() != 1 {
		t.Fatalf("Expected 1 row, got %d", out.NumRows())
	}
	if got := out.Cell(0, "StoreName"); got != "Open Store" {
		t.Errorf("Expected 'Open Store', got '%s'", got)
	}
}

func TestProcessFederalListSplitsByProvince(t *testing.T) {
	env := newStoresEnv(t, nil)
	writeFederalXLSX(t, env, [][]any{
		{"AB Store", "Calgary", "1 First St", "T2P 1A1", "AB", "Licensed"},
		{"BC Store", "Vancouver", "2 Second St", "V6B 1A1", "BC", "Licensed"},
		{"ON Store", "Toronto", "3 Third St", "M5V 1A1", "ON", "Licensed"},
	})

	out := findOutput(t, mustProcess(t, env))
	// The federal list feeds the AB, BC, and MB sources only; the ON row
	// has no claiming source.
	if out.NumRows() != 2 {
		t.Fatalf("Expected 2 rows, got %d", out.NumRows())
	}
	out.SortBy("Province")
	if out.Cell(0, "Province") != "AB" || out.Cell(1, "Province") != "BC" {
		t.Errorf("Unexpected provinces: %s, %s",
			out.Cell(0, "Province"), out.Cell(1, "Province"))
	}
}

func TestProcessGeocodesMissingCoordinates(t *testing.T) {
	env := newStoresEnv(t, map[string]string{
		"BritishColumbia.csv": `StoreName,City,FullAddress
Green Leaf,Vancouver,"123 Main St, Vancouver, British Columbia V6B 1A1"
`,
	})
	env.Geocoder = geo.NewClient(&fakeResolver{
		loc: geo.Location{Latitude: 49.2827, Longitude: -123.1207},
	}, 0, 1)

	out := findOutput(t, mustProcess(t, env))
	if got := out.Cell(0, "Latitude"); got != "49.282700" {
		t.Errorf("Expected geocoded latitude, got '%s'", got)
	}
	if got := out.Cell(0, "Longitude"); got != "-123.120700" {
		t.Errorf("Expected geocoded longitude, got '%s'", got)
	}
}

func TestProcessGeocodeFailureKeepsRow(t *testing.T) {
	env := newStoresEnv(t, map[string]string{
		"BritishColumbia.csv": `StoreName,City,FullAddress
Green Leaf,Vancouver,"123 Main St, Vancouver, British Columbia V6B 1A1"
`,
	})
	env.Geocoder = geo.NewClient(&fakeResolver{fail: true}, 0, 1)

	out := findOutput(t, mustProcess(t, env))
	if out.NumRows() != 1 {
		t.Fatalf("Row dropped on geocode failure, got %d rows", out.NumRows())
	}
	if got := out.Cell(0, "Latitude"); got != "" {
		t.Errorf("Expected null latitude, got '%s'", got)
	}
}

func TestProcessInvalidCoordinatesNulled(t *testing.T) {
	env := newStoresEnv(t, map[string]string{
		"BritishColumbia.csv": `StoreName,City,FullAddress,Latitude,Longitude
Good Coords,Vancouver,"1 A St, Vancouver, British Columbia",49.28,-123.12
Outside Canada,Vancouver,"2 B St, Vancouver, British Columbia",19.43,-99.13
Garbage,Vancouver,"3 C St, Vancouver, British Columbia",abc,def
`,
	})

	out := findOutput(t, mustProcess(t, env))
	out.SortBy("StoreName")
	if got := out.Cell(0, "Latitude"); got != "49.28" {
		t.Errorf("Valid coordinates should survive, got '%s'", got)
	}
	if got := out.Cell(1, "Latitude"); got != "" {
		t.Errorf("Garbage coordinates should be nulled, got '%s'", got)
	}
	if got := out.Cell(2, "Latitude"); got != "" {
		t.Errorf("Out-of-Canada coordinates should be nulled, got '%s'", got)
	}
}

func TestProcessFillsPostalFromReverseGeocode(t *testing.T) {
	env := newStoresEnv(t, map[string]string{
		"BritishColumbia.csv": `StoreName,City,FullAddress,Latitude,Longitude
No Postal,Vancouver,"1 A St, Vancouver, British Columbia",49.28,-123.12
`,
	})
	env.Geocoder = geo.NewClient(&fakeResolver{
		loc:    geo.Location{Latitude: 49.28, Longitude: -123.12},
		postal: "V6B 2W9",
	}, 0, 1)

	out := findOutput(t, mustProcess(t, env))
	if got := out.Cell(0, "PostalCode"); got != "V6B 2W9" {
		t.Errorf("Expected reverse-geocoded postal code, got '%s'", got)
	}
}

func TestProcessNoSources(t *testing.T) {
	env := newStoresEnv(t, nil)
	if _, err := New().Process(context.Background(), env); err == nil {
		t.Error("Expected error when no source files exist")
	}
}

func TestProcessSchemaStable(t *testing.T) {
	env := newStoresEnv(t, map[string]string{
		"Saskatchewan.csv": `Operating Name,City,Street Address
Prairie Cannabis,Saskatoon,100 Main St
`,
	})

	out := findOutput(t, mustProcess(t, env))
	cols := out.Columns()
	if len(cols) != len(targetColumns) {
		t.Fatalf("Expected %d columns, got %d", len(targetColumns), len(cols))
	}
	for i, c := range targetColumns {
		if cols[i] != c {
			t.Errorf("Column %d: expected '%s', got '%s'", i, c, cols[i])
		}
	}
	if got := out.Cell(0, "StoreName"); got != "Prairie Cannabis" {
		t.Errorf("Expected renamed store name, got '%s'", got)
	}
	if got := out.Cell(0, "Address"); got != "100 Main St" {
		t.Errorf("Expected renamed address, got '%s'", got)
	}
}

func TestDatasetMetadata(t *testing.T) {
	d := New()
	if d.Name() != "stores" {
		t.Errorf("Expected name 'stores', got '%s'", d.Name())
	}
	if d.Description() == "" {
		t.Error("Description should not be empty")
	}
	if len(d.Requires()) != 0 {
		t.Errorf("Expected no requirements, got %v", d.Requires())
	}
}
