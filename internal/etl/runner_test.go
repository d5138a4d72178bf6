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
	"os"
	"path/filepath"
	"testing"

	"github.com/cannalytics/cannetl/internal/output"
	"github.com/cannalytics/cannetl/internal/table"
)

func stubTable(t *testing.T) *table.Table {
	t.Helper()
	tbl := table.New("a", "b")
	if err := tbl.Append([]string{"1", "2"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	return tbl
}

func newTestRunner(t *testing.T, datasets []string) (*Runner, string) {
	t.Helper()
	outDir := t.TempDir()
	writer, err := output.NewWriter(outDir)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	runner, err := NewRunner(RunnerConfig{
		Datasets: datasets,
		Env:      &Env{RawDir: t.TempDir()},
		Writer:   writer,
	})
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	return runner, outDir
}

func TestRunnerWritesOutputs(t *testing.T) {
	ds := &stubDataset{
		name:    "runner-basic",
		outputs: []Output{{Name: "runner_basic_out", Table: stubTable(t)}},
	}
	Register(ds)

	runner, outDir := newTestRunner(t, []string{"runner-basic"})
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "runner_basic_out.csv")); err != nil {
		t.Errorf("Output CSV not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, output.ReportFile)); err != nil {
		t.Errorf("Shape report not written: %v", err)
	}
}

func TestRunnerResolvesRequirements(t *testing.T) {
	upstream := &stubDataset{
		name:    "runner-up",
		outputs: []Output{{Name: "runner_up_out", Table: stubTable(t)}},
	}
	downstream := &stubDataset{
		name:     "runner-down",
		requires: []string{"runner-up"},
		outputs:  []Output{{Name: "runner_down_out", Table: stubTable(t)}},
	}
	Register(upstream)
	Register(downstream)

	// Requesting only the downstream dataset pulls in its requirement.
	runner, _ := newTestRunner(t, []string{"runner-down"})
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if upstream.calls != 1 {
		t.Errorf("Expected upstream to be processed once, got %d", upstream.calls)
	}
	if downstream.calls != 1 {
		t.Errorf("Expected downstream to be processed once, got %d", downstream.calls)
	}
}

func TestRunnerSharesResults(t *testing.T) {
	upstream := &stubDataset{
		name:    "runner-share-up",
		outputs: []Output{{Name: "runner_share_out", Table: stubTable(t)}},
	}
	Register(upstream)

	runner, _ := newTestRunner(t, []string{"runner-share-up"})
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, ok := runner.cfg.Env.Results["runner_share_out"]; !ok {
		t.Error("Expected upstream output in Env.Results")
	}
}

func TestRunnerSkipsFailedDatasetAndDownstream(t *testing.T) {
	failing := &stubDataset{
		name: "runner-fail",
		err:  errors.New("ingestion broke"),
	}
	blocked := &stubDataset{
		name:     "runner-blocked",
		requires: []string{"runner-fail"},
	}
	healthy := &stubDataset{
		name:    "runner-healthy",
		outputs: []Output{{Name: "runner_healthy_out", Table: stubTable(t)}},
	}
	Register(failing)
	Register(blocked)
	Register(healthy)

	runner, outDir := newTestRunner(t,
		[]string{"runner-fail", "runner-blocked", "runner-healthy"})
	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run should continue past a dataset failure, got: %v", err)
	}

	if blocked.calls != 0 {
		t.Errorf("Blocked dataset should not be processed, got %d calls", blocked.calls)
	}
	if healthy.calls != 1 {
		t.Errorf("Healthy dataset should still run, got %d calls", healthy.calls)
	}
	if _, err := os.Stat(filepath.Join(outDir, "runner_healthy_out.csv")); err != nil {
		t.Errorf("Healthy output not written: %v", err)
	}
}

func TestRunnerAllDatasetsFailed(t *testing.T) {
	failing := &stubDataset{
		name: "runner-all-fail",
		err:  errors.New("boom"),
	}
	Register(failing)

	runner, _ := newTestRunner(t, []string{"runner-all-fail"})
	if err := runner.Run(context.Background()); err == nil {
		t.Error("Expected error when every dataset fails")
	}
}

func TestRunnerUnknownDataset(t *testing.T) {
	runner, _ := newTestRunner(t, []string{"runner-does-not-exist"})
	if err := runner.Run(context.Background()); err == nil {
		t.Error("Expected error for unknown dataset")
	}
}

func TestNewRunnerValidation(t *testing.T) {
	writer, err := output.NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	if _, err := NewRunner(RunnerConfig{Writer: writer}); err == nil {
		t.Error("Expected error for missing environment")
	}
	if _, err := NewRunner(RunnerConfig{Env: &Env{}}); err == nil {
		t.Error("Expected error for missing writer")
	}
}

func TestEnvRawPath(t *testing.T) {
	env := &Env{RawDir: "data/raw"}
	got := env.RawPath("02_cannabis_sales", "cannabis_sales.csv")
	want := filepath.Join("data", "raw", "02_cannabis_sales", "cannabis_sales.csv")
	if got != want {
		t.Errorf("RawPath = %q, want %q", got, want)
	}
}
