//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package retailtrade processes the retail trade series used as the
// normalization context for cannabis sales.
package retailtrade

import (
	"context"
	"strings"

	"github.com/cannalytics/cannetl/internal/dates"
	"github.com/cannalytics/cannetl/internal/etl"
	"github.com/cannalytics/cannetl/internal/geo"
	"github.com/cannalytics/cannetl/internal/logging"
	"github.com/cannalytics/cannetl/internal/table"
)

const rawFile = "03_retail_trade/retail_trade.csv"

const naicsColumn = "North American Industry Classification System (NAICS)"

// missingThreshold drops columns/rows at or above this null ratio.
const missingThreshold = 0.5

// Dataset implements the retail trade processor.
type Dataset struct{}

// New creates the retail trade dataset.
func New() *Dataset {
	return &Dataset{}
}

// Name returns the dataset name.
func (d *Dataset) Name() string {
	return "retailtrade"
}

// Description returns a human-readable description.
func (d *Dataset) Description() string {
	return "Retail trade series filtered to cannabis retailers (NAICS)"
}

// Requires lists upstream datasets.
func (d *Dataset) Requires() []string {
	return nil
}

// Process filters the retail trade series to cannabis retailers, drops
// high-missing columns and rows, drops rows without a value, and
// normalizes dates and provinces.
func (d *Dataset) Process(ctx context.Context, env *etl.Env) ([]etl.Output, error) {
	t, err := table.ReadCSV(env.RawPath(rawFile), table.ReadOptions{
		Required: []string{"REF_DATE", "GEO", naicsColumn, "VALUE"},
	})
	if err != nil {
		return nil, err
	}

	t = t.Filter(func(r table.Row) bool {
		return strings.Contains(r.Get(naicsColumn), "Cannabis retailers")
	})
	t = t.DropHighMissing(missingThreshold)

	if !t.Has("VALUE") || !t.Has("REF_DATE") {
		// The missing-data sweep can only take these out when the raw
		// extract is mostly empty; nothing useful remains.
		return nil, table.ErrMissingColumn
	}

	badDates := 0
	t = t.Filter(func(r table.Row) bool {
		if r.Get("VALUE") == "" {
			return false
		}
		if _, err := dates.NormalizeMonth(r.Get("REF_DATE")); err != nil {
			badDates++
			return false
		}
		return true
	})
	if badDates > 0 {
		logging.Warn().
			Int("rows", badDates).
			Msg("Dropped retail trade rows with malformed dates")
	}

	t.MapColumn("REF_DATE", func(s string) string {
		month, _ := dates.NormalizeMonth(s)
		return month
	})
	if t.Has("GEO") {
		t.AddColumn("Province", func(r table.Row) string {
			return geo.NormalizeProvince(r.Get("GEO"))
		})
	}

	t = t.DropDuplicates()
	return []etl.Output{{Name: "retail_trade_data", Table: t}}, nil
}

func init() {
	etl.Register(New())
}
