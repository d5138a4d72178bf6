//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package crime processes the national Cannabis Act crime statistics.
package crime

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/cannalytics/cannetl/internal/dates"
	"github.com/cannalytics/cannetl/internal/etl"
	"github.com/cannalytics/cannetl/internal/geo"
	"github.com/cannalytics/cannetl/internal/table"
)

const rawFile = "04_crime_data/crime_data.csv"

// violationCodeRe extracts the bracketed violation code from entries
// like "Possession of illicit cannabis [480]".
var violationCodeRe = regexp.MustCompile(`\[([^\]]+)\]\s*$`)

var selectedColumns = []string{
	"REF_DATE", "GEO", "DGUID", "Province",
	"Violation Name", "Violation Code", "Statistics", "UOM", "VALUE",
}

// Dataset implements the national crime processor.
type Dataset struct{}

// New creates the crime dataset.
func New() *Dataset {
	return &Dataset{}
}

// Name returns the dataset name.
func (d *Dataset) Name() string {
	return "crime"
}

// Description returns a human-readable description.
func (d *Dataset) Description() string {
	return "Cannabis Act crime statistics, split into province/national and city levels"
}

// Requires lists upstream datasets. The cleaned sales table provides the
// DGUIDs that identify province/national geography.
func (d *Dataset) Requires() []string {
	return []string{"sales"}
}

// Process splits the violation column into name and code, then divides
// rows into province/national and city levels by whether their DGUID
// appears in the cleaned sales data.
func (d *Dataset) Process(ctx context.Context, env *etl.Env) ([]etl.Output, error) {
	salesTable, ok := env.Results["sales_data"]
	if !ok {
		return nil, fmt.Errorf("crime processing requires the cleaned sales table")
	}

	t, err := table.ReadCSV(env.RawPath(rawFile), table.ReadOptions{
		Required: []string{"REF_DATE", "GEO", "DGUID", "Violations", "VALUE"},
	})
	if err != nil {
		return nil, err
	}

	t.AddColumn("Violation Name", func(r table.Row) string {
		return strings.TrimSpace(violationCodeRe.ReplaceAllString(r.Get("Violations"), ""))
	})
	t.AddColumn("Violation Code", func(r table.Row) string {
		m := violationCodeRe.FindStringSubmatch(r.Get("Violations"))
		if m == nil {
			return ""
		}
		return m[1]
	})
	t.AddColumn("Province", func(r table.Row) string {
		return geo.NormalizeProvince(r.Get("GEO"))
	})
	for _, col := range []string{"Statistics", "UOM"} {
		if !t.Has(col) {
			t.AddColumn(col, func(table.Row) string { return "" })
		}
	}
	t.MapColumn("REF_DATE", func(s string) string {
		month, err := dates.NormalizeMonth(s)
		if err != nil {
			return s
		}
		return month
	})

	// Province/national geography is whatever DGUIDs the sales series
	// reports on; everything else is city-level.
	salesDGUIDs := make(map[string]bool)
	for i := 0; i < salesTable.NumRows(); i++ {
		if id := salesTable.Cell(i, "DGUID"); id != "" {
			salesDGUIDs[id] = true
		}
	}

	selected, err := t.Select(selectedColumns...)
	if err != nil {
		return nil, err
	}

	province := selected.Filter(func(r table.Row) bool {
		return r.Get("VALUE") != "" && salesDGUIDs[r.Get("DGUID")]
	})
	city := selected.Filter(func(r table.Row) bool {
		return r.Get("VALUE") != "" && r.Get("DGUID") != "" && !salesDGUIDs[r.Get("DGUID")]
	})

	return []etl.Output{
		{Name: "crime_province_national", Table: province.DropDuplicates()},
		{Name: "crime_city_level", Table: city.DropDuplicates()},
	}, nil
}

func init() {
	etl.Register(New())
}
