//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package citycrime

import (
	"fmt"
	"strconv"

	"github.com/cannalytics/cannetl/internal/etl"
	"github.com/cannalytics/cannetl/internal/logging"
	"github.com/cannalytics/cannetl/internal/table"
)

// Edmonton publishes one extract per year.
var edmontonYears = []int{2022, 2023, 2024, 2025}

// processEdmonton concatenates the yearly Edmonton extracts and geocodes
// intersections. The client caches lookups, so repeated intersections
// cost one request.
func processEdmonton(env *etl.Env) ([]etl.Output, error) {
	var parts []*table.Table
	for _, year := range edmontonYears {
		path := env.RawPath(rawDir, "Edmonton", fmt.Sprintf("Crimes_%d.csv", year))
		t, err := table.ReadCSV(path, table.ReadOptions{Required: []string{"Intersection"}})
		if err != nil {
			logging.Warn().
				Int("year", year).
				Err(err).
				Msg("Skipping Edmonton extract year")
			continue
		}
		parts = append(parts, t)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("no Edmonton extracts could be processed")
	}

	t := table.Concat(parts...)
	t.AddColumn("Full_Address", func(r table.Row) string {
		if r.Get("Intersection") == "" {
			return ""
		}
		return r.Get("Intersection") + ", Edmonton, AB, Canada"
	})
	t.AddColumn("Latitude", func(table.Row) string { return "" })
	t.AddColumn("Longitude", func(table.Row) string { return "" })

	if env.Geocoder != nil {
		for i := 0; i < t.NumRows(); i++ {
			addr := t.Cell(i, "Full_Address")
			if addr == "" {
				continue
			}
			loc, ok := env.Geocoder.Locate(addr)
			if !ok {
				continue
			}
			t.SetCell(i, "Latitude", strconv.FormatFloat(loc.Latitude, 'f', 6, 64))
			t.SetCell(i, "Longitude", strconv.FormatFloat(loc.Longitude, 'f', 6, 64))
		}
	}

	return []etl.Output{{Name: "edmonton_crimes", Table: t.DropDuplicates()}}, nil
}
