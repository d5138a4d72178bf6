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
	"github.com/cannalytics/cannetl/internal/geo"
	"github.com/cannalytics/cannetl/internal/logging"
	"github.com/cannalytics/cannetl/internal/table"
)

// Vancouver publishes one extract per year since the series began.
var vancouverYears = func() []int {
	var years []int
	for y := 2014; y <= 2025; y++ {
		years = append(years, y)
	}
	return years
}()

// processVancouver concatenates the yearly Vancouver extracts, assembles
// a reported date from the YEAR/MONTH/DAY parts, and converts the UTM
// zone 10N coordinates to WGS84.
func processVancouver(env *etl.Env) ([]etl.Output, error) {
	var parts []*table.Table
	for _, year := range vancouverYears {
		path := env.RawPath(rawDir, "Vancouver", fmt.Sprintf("Crimes_%d.csv", year))
		t, err := table.ReadCSV(path, table.ReadOptions{
			Required: []string{"TYPE", "YEAR", "MONTH", "DAY", "X", "Y"},
		})
		if err != nil {
			logging.Warn().
				Int("year", year).
				Err(err).
				Msg("Skipping Vancouver extract year")
			continue
		}
		parts = append(parts, t)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("no Vancouver extracts could be processed")
	}

	t := table.Concat(parts...)
	t.AddColumn("Date_Reported", func(r table.Row) string {
		y, errY := strconv.Atoi(r.Get("YEAR"))
		m, errM := strconv.Atoi(r.Get("MONTH"))
		d, errD := strconv.Atoi(r.Get("DAY"))
		if errY != nil || errM != nil || errD != nil {
			return ""
		}
		return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
	})

	badCoords := 0
	t.AddColumn("Latitude", func(table.Row) string { return "" })
	t.AddColumn("Longitude", func(table.Row) string { return "" })
	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		x, errX := strconv.ParseFloat(row.Get("X"), 64)
		y, errY := strconv.ParseFloat(row.Get("Y"), 64)
		// The extract uses 0,0 for redacted locations.
		if errX != nil || errY != nil || (x == 0 && y == 0) {
			continue
		}
		loc, err := geo.UTMZone10ToWGS84(x, y)
		if err != nil {
			badCoords++
			continue
		}
		t.SetCell(i, "Latitude", strconv.FormatFloat(loc.Latitude, 'f', 6, 64))
		t.SetCell(i, "Longitude", strconv.FormatFloat(loc.Longitude, 'f', 6, 64))
	}
	if badCoords > 0 {
		logging.Warn().
			Int("rows", badCoords).
			Msg("Vancouver rows with unconvertible coordinates kept with null location")
	}

	t = t.Drop("YEAR", "MONTH", "DAY", "HOUR", "MINUTE", "X", "Y")
	return []etl.Output{{Name: "vancouver_crimes", Table: t.DropDuplicates()}}, nil
}
