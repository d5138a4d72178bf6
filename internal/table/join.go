//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package table

import (
	"fmt"
	"strings"
)

// OuterJoin joins two tables on the named key columns, preserving
// unmatched rows from either side with null fill so no key present in
// either source is lost. Non-key columns of the right table that collide
// with a left column are suffixed "_y".
//
// Result column order: keys, left non-key columns, right non-key columns.
// Result row order: left rows in order (each followed by its matches in
// right order), then unmatched right rows in order.
func OuterJoin(left, right *Table, keys []string) (*Table, error) {
	for _, k := range keys {
		if !left.Has(k) {
			return nil, fmt.Errorf("%w: %s (left)", ErrMissingColumn, k)
		}
		if !right.Has(k) {
			return nil, fmt.Errorf("%w: %s (right)", ErrMissingColumn, k)
		}
	}

	isKey := make(map[string]bool, len(keys))
	for _, k := range keys {
		isKey[k] = true
	}

	var leftCols, rightCols []string
	for _, c := range left.cols {
		if !isKey[c] {
			leftCols = append(leftCols, c)
		}
	}
	taken := make(map[string]bool, len(leftCols))
	for _, c := range leftCols {
		taken[c] = true
	}
	rightNames := make(map[string]string)
	for _, c := range right.cols {
		if isKey[c] {
			continue
		}
		name := c
		if taken[name] {
			name = c + "_y"
		}
		rightNames[c] = name
		rightCols = append(rightCols, c)
	}

	outCols := append([]string(nil), keys...)
	outCols = append(outCols, leftCols...)
	for _, c := range rightCols {
		outCols = append(outCols, rightNames[c])
	}
	out := New(outCols...)

	joinKey := func(t *Table, i int) string {
		parts := make([]string, len(keys))
		for j, k := range keys {
			parts[j] = t.Cell(i, k)
		}
		return strings.Join(parts, "\x1f")
	}

	// Index right rows by key for lookup; iteration order stays
	// deterministic because we walk the tables, not the map.
	rightByKey := make(map[string][]int)
	for i := range right.rows {
		k := joinKey(right, i)
		rightByKey[k] = append(rightByKey[k], i)
	}

	emit := func(li, ri int) {
		row := make([]string, 0, len(outCols))
		for _, k := range keys {
			if li >= 0 {
				row = append(row, left.Cell(li, k))
			} else {
				row = append(row, right.Cell(ri, k))
			}
		}
		for _, c := range leftCols {
			if li >= 0 {
				row = append(row, left.Cell(li, c))
			} else {
				row = append(row, "")
			}
		}
		for _, c := range rightCols {
			if ri >= 0 {
				row = append(row, right.Cell(ri, c))
			} else {
				row = append(row, "")
			}
		}
		out.rows = append(out.rows, row)
	}

	matched := make(map[int]bool, len(right.rows))
	for li := range left.rows {
		ris := rightByKey[joinKey(left, li)]
		if len(ris) == 0 {
			emit(li, -1)
			continue
		}
		for _, ri := range ris {
			matched[ri] = true
			emit(li, ri)
		}
	}
	for ri := range right.rows {
		if !matched[ri] {
			emit(-1, ri)
		}
	}
	return out, nil
}
