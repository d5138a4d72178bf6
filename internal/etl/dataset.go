//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package etl defines the dataset processor interface, the registry, and
// the sequential pipeline runner.
package etl

import (
	"context"
	"path/filepath"

	"github.com/cannalytics/cannetl/internal/geo"
	"github.com/cannalytics/cannetl/internal/table"
)

// Output is one final table produced by a dataset processor.
type Output struct {
	// Name is the file stem of the output, e.g. "store_locations".
	Name string

	// Table holds the cleaned rows.
	Table *table.Table
}

// Env is the run environment handed to every dataset processor.
type Env struct {
	// RawDir is the root of the raw input layout.
	RawDir string

	// Geocoder is the geocoding collaborator, nil when geocoding is
	// disabled. Processors must keep rows with null coordinates when it
	// is nil or a lookup fails.
	Geocoder *geo.Client

	// Results holds the outputs of already-processed datasets, keyed by
	// output name. Raw records are immutable inputs; these derived
	// tables are rebuilt on every run.
	Results map[string]*table.Table
}

// RawPath joins path elements under the raw data directory.
func (e *Env) RawPath(parts ...string) string {
	return filepath.Join(append([]string{e.RawDir}, parts...)...)
}

// Dataset is a pure, idempotent transform from raw files to cleaned
// tables. Implementations register themselves via Register.
type Dataset interface {
	// Name returns the dataset name.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Requires lists the names of other datasets this one consumes the
	// results of.
	Requires() []string

	// Process ingests, cleans, and returns this dataset's final tables.
	Process(ctx context.Context, env *Env) ([]Output, error)
}
