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
	"sort"
	"strconv"
	"strings"
)

// AggOp is an aggregation operator.
type AggOp int

const (
	// OpSum adds values; null cells count as zero.
	OpSum AggOp = iota
	// OpMean averages values; null cells are excluded. A group with only
	// null cells aggregates to null.
	OpMean
	// OpCount counts non-null cells.
	OpCount
)

// Agg describes one aggregated output column.
type Agg struct {
	// Col is the source column.
	Col string
	// Op is the operator applied per group.
	Op AggOp
	// As is the output column name (defaults to Col).
	As string
}

// Aggregate groups rows by the key columns and computes the given
// aggregates per group. Non-numeric cells are treated as null. Output
// rows are sorted by the key columns for determinism.
func (t *Table) Aggregate(keys []string, aggs []Agg) (*Table, error) {
	for _, k := range keys {
		if !t.Has(k) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, k)
		}
	}
	for _, a := range aggs {
		if !t.Has(a.Col) {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, a.Col)
		}
	}

	type group struct {
		keyCells []string
		sums     []float64
		counts   []int
	}

	groups := make(map[string]*group)
	var order []string

	for i := range t.rows {
		parts := make([]string, len(keys))
		for j, k := range keys {
			parts[j] = t.Cell(i, k)
		}
		gk := strings.Join(parts, "\x1f")
		g, ok := groups[gk]
		if !ok {
			g = &group{
				keyCells: parts,
				sums:     make([]float64, len(aggs)),
				counts:   make([]int, len(aggs)),
			}
			groups[gk] = g
			order = append(order, gk)
		}
		for j, a := range aggs {
			cell := t.Cell(i, a.Col)
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			g.sums[j] += v
			g.counts[j]++
		}
	}
	sort.Strings(order)

	outCols := append([]string(nil), keys...)
	for _, a := range aggs {
		name := a.As
		if name == "" {
			name = a.Col
		}
		outCols = append(outCols, name)
	}
	out := New(outCols...)

	for _, gk := range order {
		g := groups[gk]
		row := append([]string(nil), g.keyCells...)
		for j, a := range aggs {
			switch a.Op {
			case OpSum:
				row = append(row, formatNumber(g.sums[j]))
			case OpMean:
				if g.counts[j] == 0 {
					row = append(row, "")
				} else {
					row = append(row, formatNumber(g.sums[j]/float64(g.counts[j])))
				}
			case OpCount:
				row = append(row, strconv.Itoa(g.counts[j]))
			}
		}
		out.rows = append(out.rows, row)
	}
	return out, nil
}

// formatNumber renders a float without trailing zeros so repeated runs
// produce identical bytes.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
