//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package sales processes the Statistics Canada cannabis sales series.
package sales

import (
	"context"
	"strconv"

	"github.com/cannalytics/cannetl/internal/dates"
	"github.com/cannalytics/cannetl/internal/etl"
	"github.com/cannalytics/cannetl/internal/geo"
	"github.com/cannalytics/cannetl/internal/logging"
	"github.com/cannalytics/cannetl/internal/table"
)

const rawFile = "02_cannabis_sales/cannabis_sales.csv"

// legalizationStart is the first month of legal recreational sales.
const legalizationStart = "2018-10-01"

// keepColumns is the expected raw schema; anything else is dropped with
// a warning.
var keepColumns = []string{
	"REF_DATE", "GEO", "DGUID", "Type of cannabis",
	"UOM", "UOM_ID", "SCALAR_FACTOR", "SCALAR_ID", "VALUE",
}

// Dataset implements the cannabis sales processor.
type Dataset struct{}

// New creates the sales dataset.
func New() *Dataset {
	return &Dataset{}
}

// Name returns the dataset name.
func (d *Dataset) Name() string {
	return "sales"
}

// Description returns a human-readable description.
func (d *Dataset) Description() string {
	return "Monthly cannabis sales by province and product category"
}

// Requires lists upstream datasets.
func (d *Dataset) Requires() []string {
	return nil
}

// Process cleans the sales series: column projection, first-of-month
// date normalization, province normalization, and value checks. Rows
// with malformed dates or negative values are skipped and logged, not
// fatal.
func (d *Dataset) Process(ctx context.Context, env *etl.Env) ([]etl.Output, error) {
	t, err := table.ReadCSV(env.RawPath(rawFile), table.ReadOptions{
		Required: []string{"REF_DATE", "GEO", "VALUE"},
		Keep:     keepColumns,
	})
	if err != nil {
		return nil, err
	}

	badDates, early, negative := 0, 0, 0
	t = t.Filter(func(r table.Row) bool {
		month, err := dates.NormalizeMonth(r.Get("REF_DATE"))
		if err != nil {
			badDates++
			logging.Debug().
				Str("ref_date", r.Get("REF_DATE")).
				Msg("Skipping sales row with malformed date")
			return false
		}
		if month < legalizationStart {
			early++
			return false
		}
		if v := r.Get("VALUE"); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f < 0 {
				negative++
				return false
			}
		}
		return true
	})
	if badDates+early+negative > 0 {
		logging.Warn().
			Int("malformed_dates", badDates).
			Int("pre_legalization", early).
			Int("bad_values", negative).
			Msg("Dropped sales rows failing validation")
	}

	t.MapColumn("REF_DATE", func(s string) string {
		month, _ := dates.NormalizeMonth(s)
		return month
	})
	t.AddColumn("Province", func(r table.Row) string {
		return geo.NormalizeProvince(r.Get("GEO"))
	})

	t = t.DropDuplicates()
	return []etl.Output{{Name: "sales_data", Table: t}}, nil
}

func init() {
	etl.Register(New())
}
