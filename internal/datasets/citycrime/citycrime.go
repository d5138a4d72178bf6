//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package citycrime processes the city-published crime extracts for
// Toronto, Edmonton, and Vancouver. Each city ships its own raw layout,
// so each gets its own cleaner; a city whose files cannot be ingested is
// skipped, not fatal.
package citycrime

import (
	"context"
	"fmt"

	"github.com/cannalytics/cannetl/internal/etl"
	"github.com/cannalytics/cannetl/internal/logging"
)

// rawDir is the city crime directory under the raw data root.
const rawDir = "05_crime_by_city_data"

// Dataset implements the by-city crime processor.
type Dataset struct{}

// New creates the city crime dataset.
func New() *Dataset {
	return &Dataset{}
}

// Name returns the dataset name.
func (d *Dataset) Name() string {
	return "citycrime"
}

// Description returns a human-readable description.
func (d *Dataset) Description() string {
	return "City-level crime extracts for Toronto, Edmonton, and Vancouver"
}

// Requires lists upstream datasets.
func (d *Dataset) Requires() []string {
	return nil
}

// Process runs each city cleaner and combines their outputs.
func (d *Dataset) Process(ctx context.Context, env *etl.Env) ([]etl.Output, error) {
	cities := []struct {
		name string
		run  func(*etl.Env) ([]etl.Output, error)
	}{
		{"Toronto", processToronto},
		{"Edmonton", processEdmonton},
		{"Vancouver", processVancouver},
	}

	var outputs []etl.Output
	for _, city := range cities {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outs, err := city.run(env)
		if err != nil {
			logging.Warn().
				Str("city", city.name).
				Err(err).
				Msg("Skipping city crime extract")
			continue
		}
		outputs = append(outputs, outs...)
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("no city crime extracts could be processed")
	}
	return outputs, nil
}

func init() {
	etl.Register(New())
}
