//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package geo

import (
	"regexp"
	"strings"
)

// Canadian postal code, e.g. "V6B 1A1" or "V6B1A1".
var postalRe = regexp.MustCompile(`[A-Za-z]\d[A-Za-z]\s?\d[A-Za-z]\d`)

// ExtractPostalCode returns the first postal code found in s, or "".
func ExtractPostalCode(s string) string {
	return postalRe.FindString(s)
}

// CleanFullAddress strips the trailing ", City, Province PostalCode"
// suffix that some provincial exports embed in a single address field,
// and returns the street portion plus the extracted postal code. BC's
// store list is the main offender.
func CleanFullAddress(full, city, province string) (string, string) {
	postal := ExtractPostalCode(full)

	pattern := `,\s*` + regexp.QuoteMeta(strings.TrimSpace(city)) + `\s*,?\s*` +
		regexp.QuoteMeta(strings.TrimSpace(province))
	if postal != "" {
		pattern += `\s*` + regexp.QuoteMeta(postal)
	}
	re, err := regexp.Compile(`(?i)` + pattern)
	if err != nil {
		return strings.TrimSpace(full), postal
	}
	return strings.TrimSpace(re.ReplaceAllString(full, "")), postal
}
