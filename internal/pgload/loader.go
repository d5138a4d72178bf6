//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package pgload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cannalytics/cannetl/internal/logging"
	"github.com/cannalytics/cannetl/internal/table"
	"github.com/cannalytics/cannetl/pkg/version"
)

// LoadDir pushes every final CSV under outDir into the target schema,
// one table per file, dropped and rebuilt so the database matches the
// latest run exactly. All columns load as TEXT; typing is left to the
// dashboard's query layer, keeping the loader faithful to the files.
func LoadDir(ctx context.Context, pool *pgxpool.Pool, outDir, schema string) error {
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".csv") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return fmt.Errorf("no output CSVs in %s; run the pipeline first", outDir)
	}

	if _, err := pool.Exec(ctx,
		fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", pgx.Identifier{schema}.Sanitize())); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	for _, file := range files {
		name := strings.TrimSuffix(file, ".csv")
		t, err := table.ReadCSV(filepath.Join(outDir, file), table.ReadOptions{})
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		if err := loadTable(ctx, pool, schema, name, t); err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		rows, cols := t.Shape()
		logging.Info().
			Str("table", schema+"."+name).
			Int("rows", rows).
			Int("cols", cols).
			Msg("Loaded table")
	}

	return saveMetadata(ctx, pool, schema, outDir)
}

func loadTable(ctx context.Context, pool *pgxpool.Pool, schema, name string, t *table.Table) error {
	cols := t.Columns()
	ident := pgx.Identifier{schema, name}

	if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+ident.Sanitize()); err != nil {
		return err
	}

	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = pgx.Identifier{c}.Sanitize() + " TEXT"
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s)", ident.Sanitize(), strings.Join(defs, ", "))
	if _, err := pool.Exec(ctx, create); err != nil {
		return err
	}

	_, err := pool.CopyFrom(ctx, ident, cols,
		pgx.CopyFromSlice(t.NumRows(), func(i int) ([]any, error) {
			row := t.Row(i)
			values := make([]any, len(cols))
			for j, c := range cols {
				if v := row.Get(c); v != "" {
					values[j] = v
				}
			}
			return values, nil
		}))
	return err
}

// saveMetadata records what was loaded and when, mirroring the metadata
// the dashboard shows on its data-freshness panel.
func saveMetadata(ctx context.Context, pool *pgxpool.Pool, schema, outDir string) error {
	ident := pgx.Identifier{schema, "cannetl_metadata"}
	create := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`, ident.Sanitize())
	if _, err := pool.Exec(ctx, create); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	metadata := map[string]string{
		"version":    version.Short(),
		"loaded_at":  time.Now().UTC().Format(time.RFC3339),
		"source_dir": outDir,
	}
	upsert := fmt.Sprintf(`
        INSERT INTO %s (key, value) VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
    `, ident.Sanitize())
	for key, value := range metadata {
		if _, err := pool.Exec(ctx, upsert, key, value); err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}
	return nil
}
