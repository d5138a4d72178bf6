//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package table implements the in-memory tabular data structure the
// pipeline operates on. Cells are strings; the empty string is null.
package table

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMissingColumn is returned when a required column is absent from a
// table or an ingested file.
var ErrMissingColumn = errors.New("missing required column")

// Table is an ordered collection of rows sharing a column set.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]string
}

// New creates an empty table with the given columns.
func New(cols ...string) *Table {
	t := &Table{cols: append([]string(nil), cols...)}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.cols))
	for i, c := range t.cols {
		t.index[c] = i
	}
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Shape returns (rows, cols).
func (t *Table) Shape() (int, int) { return len(t.rows), len(t.cols) }

// Has reports whether the table contains the named column.
func (t *Table) Has(col string) bool {
	_, ok := t.index[col]
	return ok
}

// Append adds a row. The row length must match the column count.
func (t *Table) Append(row []string) error {
	if len(row) != len(t.cols) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(row), len(t.cols))
	}
	t.rows = append(t.rows, append([]string(nil), row...))
	return nil
}

// Row provides named access to the cells of a single row.
type Row struct {
	t     *Table
	cells []string
}

// Get returns the cell under the named column, or "" if the column does
// not exist.
func (r Row) Get(col string) string {
	i, ok := r.t.index[col]
	if !ok {
		return ""
	}
	return r.cells[i]
}

// Row returns the i-th row.
func (t *Table) Row(i int) Row {
	return Row{t: t, cells: t.rows[i]}
}

// Cell returns the cell at row i under the named column.
func (t *Table) Cell(i int, col string) string {
	return t.Row(i).Get(col)
}

// SetCell replaces the cell at row i under the named column.
func (t *Table) SetCell(i int, col, value string) error {
	j, ok := t.index[col]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingColumn, col)
	}
	t.rows[i][j] = value
	return nil
}

// Copy returns a deep copy of the table.
func (t *Table) Copy() *Table {
	out := New(t.cols...)
	out.rows = make([][]string, len(t.rows))
	for i, r := range t.rows {
		out.rows[i] = append([]string(nil), r...)
	}
	return out
}

// Rename renames columns per the given mapping. Names absent from the
// table are ignored.
func (t *Table) Rename(mapping map[string]string) {
	for i, c := range t.cols {
		if to, ok := mapping[c]; ok {
			t.cols[i] = to
		}
	}
	t.reindex()
}

// Select returns a new table containing only the named columns, in the
// given order. A missing column is an ErrMissingColumn error.
func (t *Table) Select(cols ...string) (*Table, error) {
	idx := make([]int, len(cols))
	for i, c := range cols {
		j, ok := t.index[c]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
		idx[i] = j
	}
	out := New(cols...)
	for _, r := range t.rows {
		row := make([]string, len(cols))
		for i, j := range idx {
			row[i] = r[j]
		}
		out.rows = append(out.rows, row)
	}
	return out, nil
}

// Drop returns a new table without the named columns. Names absent from
// the table are ignored.
func (t *Table) Drop(cols ...string) *Table {
	drop := make(map[string]bool, len(cols))
	for _, c := range cols {
		drop[c] = true
	}
	keep := make([]string, 0, len(t.cols))
	for _, c := range t.cols {
		if !drop[c] {
			keep = append(keep, c)
		}
	}
	out, _ := t.Select(keep...)
	return out
}

// AddColumn appends a column whose cells are computed per row.
func (t *Table) AddColumn(name string, fn func(Row) string) {
	t.cols = append(t.cols, name)
	t.reindex()
	for i := range t.rows {
		v := fn(Row{t: t, cells: t.rows[i]})
		t.rows[i] = append(t.rows[i], v)
	}
}

// MapColumn rewrites every cell of the named column through fn.
func (t *Table) MapColumn(col string, fn func(string) string) error {
	j, ok := t.index[col]
	if !ok {
		return fmt.Errorf("%w: %s", ErrMissingColumn, col)
	}
	for i := range t.rows {
		t.rows[i][j] = fn(t.rows[i][j])
	}
	return nil
}

// Filter returns a new table containing the rows for which keep returns
// true, preserving order.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := New(t.cols...)
	for _, r := range t.rows {
		if keep(Row{t: t, cells: r}) {
			out.rows = append(out.rows, append([]string(nil), r...))
		}
	}
	return out
}

// DropDuplicates returns a new table with exact duplicate rows removed,
// keeping the first occurrence.
func (t *Table) DropDuplicates() *Table {
	seen := make(map[string]bool, len(t.rows))
	out := New(t.cols...)
	for _, r := range t.rows {
		key := strings.Join(r, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		out.rows = append(out.rows, append([]string(nil), r...))
	}
	return out
}

// SortBy sorts rows in place by the named columns (string order), or by
// all columns when none are given. The sort is stable.
func (t *Table) SortBy(cols ...string) {
	idx := make([]int, 0, len(cols))
	for _, c := range cols {
		if j, ok := t.index[c]; ok {
			idx = append(idx, j)
		}
	}
	if len(idx) == 0 {
		for j := range t.cols {
			idx = append(idx, j)
		}
	}
	sort.SliceStable(t.rows, func(a, b int) bool {
		for _, j := range idx {
			if t.rows[a][j] != t.rows[b][j] {
				return t.rows[a][j] < t.rows[b][j]
			}
		}
		return false
	})
}

// DropHighMissing removes columns whose null ratio is at or above the
// threshold, then rows whose null ratio across the remaining columns is
// at or above the threshold.
func (t *Table) DropHighMissing(threshold float64) *Table {
	if len(t.rows) == 0 {
		return t.Copy()
	}
	keep := make([]string, 0, len(t.cols))
	for j, c := range t.cols {
		nulls := 0
		for _, r := range t.rows {
			if r[j] == "" {
				nulls++
			}
		}
		if float64(nulls)/float64(len(t.rows)) < threshold {
			keep = append(keep, c)
		}
	}
	out, _ := t.Select(keep...)
	return out.Filter(func(r Row) bool {
		nulls := 0
		for _, c := range keep {
			if r.Get(c) == "" {
				nulls++
			}
		}
		return float64(nulls)/float64(len(keep)) < threshold
	})
}

// Concat stacks tables on the union of their columns (first-seen order),
// filling cells absent from a source table with null.
func Concat(tables ...*Table) *Table {
	var cols []string
	seen := make(map[string]bool)
	for _, t := range tables {
		for _, c := range t.cols {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}
	out := New(cols...)
	for _, t := range tables {
		for i := range t.rows {
			row := make([]string, len(cols))
			for j, c := range cols {
				if t.Has(c) {
					row[j] = t.Cell(i, c)
				}
			}
			out.rows = append(out.rows, row)
		}
	}
	return out
}
