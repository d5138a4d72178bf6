//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package output

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/cannalytics/cannetl/internal/logging"
	"github.com/cannalytics/cannetl/internal/table"
)

// WriteSQLite mirrors the final tables into a local SQLite database for
// dashboard consumption. Existing tables are dropped and rebuilt, so the
// database always matches the CSV outputs of the same run.
func WriteSQLite(ctx context.Context, path string, tables map[string]*table.Table) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrWriteFailure, path, err)
	}
	defer db.Close()

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := writeSQLiteTable(ctx, db, name, tables[name]); err != nil {
			return fmt.Errorf("%w: table %s: %v", ErrWriteFailure, name, err)
		}
	}

	logging.Info().
		Str("path", path).
		Int("tables", len(names)).
		Msg("Mirrored outputs to SQLite")
	return nil
}

func writeSQLiteTable(ctx context.Context, db *sql.DB, name string, t *table.Table) error {
	cols := t.Columns()
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(name)); err != nil {
		return err
	}
	create := fmt.Sprintf("CREATE TABLE %s (%s TEXT)",
		quoteIdent(name), strings.Join(quoted, " TEXT, "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(name), strings.Join(quoted, ", "), placeholders)
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		for j, c := range cols {
			if v := row.Get(c); v != "" {
				args[j] = v
			} else {
				args[j] = nil
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
