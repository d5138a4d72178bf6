//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package etl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cannalytics/cannetl/internal/logging"
	"github.com/cannalytics/cannetl/internal/output"
	"github.com/cannalytics/cannetl/internal/table"
)

// RunnerConfig configures a pipeline run.
type RunnerConfig struct {
	// Datasets restricts the run to the named datasets plus whatever
	// they require. Empty means all registered datasets.
	Datasets []string

	// Env is the run environment shared by all processors.
	Env *Env

	// Writer persists final tables.
	Writer *output.Writer

	// SQLitePath, when non-empty, receives a mirror of every final
	// table after the run.
	SQLitePath string
}

// Runner executes dataset processors sequentially in dependency order
// and persists their outputs. Each run is a full rebuild; outputs are
// exclusively owned by the run that produced them.
type Runner struct {
	cfg     RunnerConfig
	written map[string]*table.Table
}

// NewRunner creates a runner.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if cfg.Env == nil {
		return nil, fmt.Errorf("runner requires an environment")
	}
	if cfg.Writer == nil {
		return nil, fmt.Errorf("runner requires an output writer")
	}
	if cfg.Env.Results == nil {
		cfg.Env.Results = make(map[string]*table.Table)
	}
	return &Runner{cfg: cfg, written: make(map[string]*table.Table)}, nil
}

// Run executes the pipeline and writes the shape report. A dataset whose
// ingestion fails (for example a missing required column) is logged and
// skipped along with anything that requires it; a write failure aborts
// the run.
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()

	datasets, err := r.resolve()
	if err != nil {
		return err
	}

	processed := make(map[string]bool)
	failed := make(map[string]bool)

	pending := datasets
	for len(pending) > 0 {
		progressed := false
		var stalled []Dataset

		for _, ds := range pending {
			ready, blocked := r.readiness(ds, processed, failed)
			if blocked {
				logging.Warn().
					Str("dataset", ds.Name()).
					Msg("Skipping dataset: required upstream dataset failed")
				failed[ds.Name()] = true
				progressed = true
				continue
			}
			if !ready {
				stalled = append(stalled, ds)
				continue
			}

			if err := r.process(ctx, ds); err != nil {
				if errors.Is(err, output.ErrWriteFailure) {
					return err
				}
				logging.Error().
					Str("dataset", ds.Name()).
					Err(err).
					Msg("Dataset failed; continuing run")
				failed[ds.Name()] = true
			} else {
				processed[ds.Name()] = true
			}
			progressed = true
		}

		if !progressed {
			names := make([]string, len(stalled))
			for i, ds := range stalled {
				names[i] = ds.Name()
			}
			return fmt.Errorf("unsatisfiable dataset requirements: %v", names)
		}
		pending = stalled
	}

	if r.cfg.SQLitePath != "" && len(r.written) > 0 {
		if err := output.WriteSQLite(ctx, r.cfg.SQLitePath, r.written); err != nil {
			return err
		}
	}

	if _, err := output.WriteShapeReport(r.cfg.Writer.Dir(), nil); err != nil {
		return err
	}

	logging.Info().
		Int("datasets", len(processed)).
		Int("failed", len(failed)).
		Dur("elapsed", time.Since(start)).
		Msg("Pipeline run complete")

	if len(failed) > 0 && len(processed) == 0 {
		return fmt.Errorf("all datasets failed")
	}
	return nil
}

// resolve expands the requested dataset names (plus requirements) into
// Dataset values, preserving registry order.
func (r *Runner) resolve() ([]Dataset, error) {
	if len(r.cfg.Datasets) == 0 {
		return All(), nil
	}

	wanted := make(map[string]bool)
	var expand func(name string) error
	expand = func(name string) error {
		if wanted[name] {
			return nil
		}
		ds, err := Get(name)
		if err != nil {
			return err
		}
		wanted[name] = true
		for _, req := range ds.Requires() {
			if err := expand(req); err != nil {
				return err
			}
		}
		return nil
	}
	for _, name := range r.cfg.Datasets {
		if err := expand(name); err != nil {
			return nil, err
		}
	}

	var datasets []Dataset
	for _, ds := range All() {
		if wanted[ds.Name()] {
			datasets = append(datasets, ds)
		}
	}
	return datasets, nil
}

// readiness reports whether all requirements of ds are processed, and
// whether any failed outright.
func (r *Runner) readiness(ds Dataset, processed, failed map[string]bool) (ready, blocked bool) {
	for _, req := range ds.Requires() {
		if failed[req] {
			return false, true
		}
		if !processed[req] {
			return false, false
		}
	}
	return true, false
}

func (r *Runner) process(ctx context.Context, ds Dataset) error {
	logging.Info().
		Str("dataset", ds.Name()).
		Msg("Processing dataset")

	outputs, err := ds.Process(ctx, r.cfg.Env)
	if err != nil {
		return err
	}
	for _, out := range outputs {
		if err := r.cfg.Writer.Write(out.Name, out.Table); err != nil {
			return err
		}
		r.cfg.Env.Results[out.Name] = out.Table
		r.written[out.Name] = out.Table
	}
	return nil
}
