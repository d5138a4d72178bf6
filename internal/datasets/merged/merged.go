//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package merged builds the province-month analytics table joining
// sales, crime, retail trade, and store density.
package merged

import (
	"context"
	"fmt"

	"github.com/cannalytics/cannetl/internal/etl"
	"github.com/cannalytics/cannetl/internal/table"
)

// Dataset implements the merge/aggregate stage.
type Dataset struct{}

// New creates the merged dataset.
func New() *Dataset {
	return &Dataset{}
}

// Name returns the dataset name.
func (d *Dataset) Name() string {
	return "merged"
}

// Description returns a human-readable description.
func (d *Dataset) Description() string {
	return "Province-month summary joining sales, crime, retail trade, and store counts"
}

// Requires lists upstream datasets.
func (d *Dataset) Requires() []string {
	return []string{"sales", "crime", "retailtrade", "stores"}
}

// Process aggregates each cleaned table to (province, month) and outer
// joins them so a province present in any source is never dropped.
// Sums treat null as zero; means would exclude nulls (see table.Agg).
func (d *Dataset) Process(ctx context.Context, env *etl.Env) ([]etl.Output, error) {
	salesM, err := monthly(env, "sales_data", "VALUE", "SalesValue")
	if err != nil {
		return nil, err
	}
	crimeM, err := monthly(env, "crime_province_national", "VALUE", "CrimeValue")
	if err != nil {
		return nil, err
	}
	retailM, err := monthly(env, "retail_trade_data", "VALUE", "RetailTradeValue")
	if err != nil {
		return nil, err
	}

	storesTable, ok := env.Results["store_locations"]
	if !ok {
		return nil, fmt.Errorf("merge requires the cleaned store locations table")
	}
	storeCounts, err := storesTable.Aggregate(
		[]string{"Province"},
		[]table.Agg{{Col: "Province", Op: table.OpCount, As: "StoreCount"}},
	)
	if err != nil {
		return nil, err
	}

	joined, err := table.OuterJoin(salesM, crimeM, []string{"Province", "Month"})
	if err != nil {
		return nil, err
	}
	joined, err = table.OuterJoin(joined, retailM, []string{"Province", "Month"})
	if err != nil {
		return nil, err
	}
	joined, err = table.OuterJoin(joined, storeCounts, []string{"Province"})
	if err != nil {
		return nil, err
	}

	return []etl.Output{{Name: "province_month_summary", Table: joined}}, nil
}

// monthly aggregates a cleaned table's VALUE to (Province, Month) sums,
// dropping rows without a recognized province (national totals).
func monthly(env *etl.Env, result, valueCol, as string) (*table.Table, error) {
	t, ok := env.Results[result]
	if !ok {
		return nil, fmt.Errorf("merge requires the cleaned %s table", result)
	}
	provincial := t.Filter(func(r table.Row) bool {
		return r.Get("Province") != ""
	})
	agg, err := provincial.Aggregate(
		[]string{"Province", "REF_DATE"},
		[]table.Agg{{Col: valueCol, Op: table.OpSum, As: as}},
	)
	if err != nil {
		return nil, err
	}
	agg.Rename(map[string]string{"REF_DATE": "Month"})
	return agg, nil
}

func init() {
	etl.Register(New())
}
