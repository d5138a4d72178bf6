//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package stores processes cannabis store location lists across all
// provinces and territories into one standardized, geocoded table.
package stores

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cannalytics/cannetl/internal/etl"
	"github.com/cannalytics/cannetl/internal/geo"
	"github.com/cannalytics/cannetl/internal/logging"
	"github.com/cannalytics/cannetl/internal/table"
)

// rawDir is the store lists directory under the raw data root.
const rawDir = "01_store_locations"

// targetColumns is the standard store location schema.
var targetColumns = []string{
	"StoreName", "City", "Province", "ProvinceName",
	"Address", "PostalCode", "Latitude", "Longitude", "LicenseStatus",
}

// Dataset implements the store locations processor.
type Dataset struct{}

// New creates the store locations dataset.
func New() *Dataset {
	return &Dataset{}
}

// Name returns the dataset name.
func (d *Dataset) Name() string {
	return "stores"
}

// Description returns a human-readable description.
func (d *Dataset) Description() string {
	return "Cannabis store locations across provinces, standardized and geocoded"
}

// Requires lists upstream datasets.
func (d *Dataset) Requires() []string {
	return nil
}

// Process ingests every provincial store list, standardizes columns,
// geocodes missing coordinates, and emits one combined table. A source
// file that cannot be ingested is logged and skipped; the dataset fails
// only when no source succeeds.
func (d *Dataset) Process(ctx context.Context, env *etl.Env) ([]etl.Output, error) {
	var parts []*table.Table
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t, err := d.processSource(env, src)
		if err != nil {
			logging.Warn().
				Str("file", src.File).
				Str("province", src.Province).
				Err(err).
				Msg("Skipping store source")
			continue
		}
		if t.NumRows() > 0 {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("no store location source files could be processed; check raw_dir layout and file names")
	}

	combined := table.Concat(parts...).DropDuplicates()
	d.fillMissingPostalCodes(env, combined)

	final, err := combined.Select(targetColumns...)
	if err != nil {
		return nil, err
	}
	return []etl.Output{{Name: "store_locations", Table: final}}, nil
}

func (d *Dataset) processSource(env *etl.Env, src Source) (*table.Table, error) {
	path := env.RawPath(rawDir, src.File)

	var t *table.Table
	var err error
	switch src.Format {
	case XLSX:
		t, err = table.ReadXLSX(path, table.ReadOptions{})
	default:
		t, err = table.ReadCSV(path, table.ReadOptions{})
	}
	if err != nil {
		return nil, err
	}

	// The federal list carries all provinces; keep this source's rows.
	if t.Has("Site Province Abbrev") {
		t = t.Filter(func(r table.Row) bool {
			return r.Get("Site Province Abbrev") == src.Province
		})
	}

	t.Rename(src.Columns)
	for _, col := range targetColumns {
		if !t.Has(col) {
			t.AddColumn(col, func(table.Row) string { return "" })
		}
	}

	fullName := geo.ProvinceNames[src.Province]
	t.MapColumn("Province", func(string) string { return src.Province })
	t.MapColumn("ProvinceName", func(string) string { return fullName })

	// Some exports embed city/province/postal in a single address field.
	if t.Has("FullAddress") {
		for i := 0; i < t.NumRows(); i++ {
			row := t.Row(i)
			street, postal := geo.CleanFullAddress(row.Get("FullAddress"), row.Get("City"), fullName)
			t.SetCell(i, "Address", street)
			if row.Get("PostalCode") == "" && postal != "" {
				t.SetCell(i, "PostalCode", postal)
			}
		}
	}

	if t.Has("LicenseStatus") {
		t = t.Filter(func(r table.Row) bool {
			return !closedStatuses[r.Get("LicenseStatus")]
		})
	}

	d.validateCoordinates(t, src.File)
	d.geocodeMissing(env, t, fullName)

	return t.Select(targetColumns...)
}

// validateCoordinates nulls coordinate pairs that do not parse or fall
// outside Canada.
func (d *Dataset) validateCoordinates(t *table.Table, file string) {
	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		latCell, lngCell := row.Get("Latitude"), row.Get("Longitude")
		if latCell == "" && lngCell == "" {
			continue
		}
		lat, errLat := strconv.ParseFloat(latCell, 64)
		lng, errLng := strconv.ParseFloat(lngCell, 64)
		if errLat != nil || errLng != nil || !geo.InCanada(lat, lng) {
			logging.Warn().
				Str("file", file).
				Str("latitude", latCell).
				Str("longitude", lngCell).
				Msg("Invalid coordinates; nulling")
			t.SetCell(i, "Latitude", "")
			t.SetCell(i, "Longitude", "")
		}
	}
}

// geocodeMissing resolves coordinates for rows lacking them. Lookup
// failures keep the row with null coordinates.
func (d *Dataset) geocodeMissing(env *etl.Env, t *table.Table, provinceName string) {
	if env.Geocoder == nil {
		return
	}
	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		if row.Get("Latitude") != "" && row.Get("Longitude") != "" {
			continue
		}
		query := joinAddress(row.Get("Address"), row.Get("City"), provinceName, "Canada")
		loc, ok := env.Geocoder.Locate(query)
		if !ok {
			continue
		}
		t.SetCell(i, "Latitude", formatCoord(loc.Latitude))
		t.SetCell(i, "Longitude", formatCoord(loc.Longitude))
	}
}

// fillMissingPostalCodes reverse-geocodes postal codes for rows that
// have coordinates but no postal code.
func (d *Dataset) fillMissingPostalCodes(env *etl.Env, t *table.Table) {
	if env.Geocoder == nil {
		return
	}
	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		if row.Get("PostalCode") != "" {
			continue
		}
		lat, errLat := strconv.ParseFloat(row.Get("Latitude"), 64)
		lng, errLng := strconv.ParseFloat(row.Get("Longitude"), 64)
		if errLat != nil || errLng != nil {
			continue
		}
		if postal, ok := env.Geocoder.PostalCode(geo.Location{Latitude: lat, Longitude: lng}); ok {
			t.SetCell(i, "PostalCode", postal)
		}
	}
}

func joinAddress(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(p))
		}
	}
	return strings.Join(nonEmpty, ", ")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func init() {
	etl.Register(New())
}
