//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package dates normalizes the date formats found across raw inputs to
// one canonical form.
package dates

import (
	"fmt"
	"time"
)

// Canonical is the canonical first-of-month form every normalized date
// takes.
const Canonical = "2006-01-02"

// Layouts accepted across Statistics Canada and city exports.
var layouts = []string{
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"2006/01",
	"01/2006",
	"01-2006",
	"Jan 2006",
	"January 2006",
	"2006",
}

// ParseMonth parses a raw date cell and truncates it to the first of its
// month.
func ParseMonth(s string) (time.Time, error) {
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("unparseable date: %q", s)
}

// NormalizeMonth rewrites a raw date cell to the canonical first-of-month
// form, e.g. "2019-03" -> "2019-03-01".
func NormalizeMonth(s string) (string, error) {
	t, err := ParseMonth(s)
	if err != nil {
		return "", err
	}
	return t.Format(Canonical), nil
}
