//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

// Package geo provides geographic normalization and the geocoding
// collaborator used during cleaning.
package geo

import "strings"

// ProvinceNames maps the controlled two-letter province vocabulary to
// full names.
var ProvinceNames = map[string]string{
	"AB": "Alberta",
	"BC": "British Columbia",
	"MB": "Manitoba",
	"NB": "New Brunswick",
	"NL": "Newfoundland and Labrador",
	"NS": "Nova Scotia",
	"NT": "Northwest Territories",
	"NU": "Nunavut",
	"ON": "Ontario",
	"PE": "Prince Edward Island",
	"QC": "Quebec",
	"SK": "Saskatchewan",
	"YT": "Yukon",
}

// aliases covers full names and spellings seen in Statistics Canada and
// provincial exports.
var aliases = map[string]string{
	"alta":                      "AB",
	"b.c.":                      "BC",
	"man":                       "MB",
	"n.b.":                      "NB",
	"newfoundland":              "NL",
	"nfld":                      "NL",
	"n.s.":                      "NS",
	"n.w.t.":                    "NT",
	"ont":                       "ON",
	"p.e.i.":                    "PE",
	"pei":                       "PE",
	"que":                       "QC",
	"quebec":                    "QC", // accent-stripped Québec
	"sask":                      "SK",
	"yukon territory":           "YT",
	"northwest territories including nunavut": "NT",
}

// NormalizeProvince maps a code, full name, or known variant spelling to
// the controlled vocabulary. It returns "" when the input is not a
// recognizable province or territory.
func NormalizeProvince(s string) string {
	v := strings.TrimSpace(s)
	if v == "" {
		return ""
	}
	upper := strings.ToUpper(v)
	if _, ok := ProvinceNames[upper]; ok {
		return upper
	}
	lower := strings.ToLower(v)
	for code, name := range ProvinceNames {
		if strings.ToLower(name) == lower {
			return code
		}
	}
	if code, ok := aliases[strings.TrimSuffix(lower, ".")]; ok {
		return code
	}
	if code, ok := aliases[lower]; ok {
		return code
	}
	return ""
}

// Canada's bounding box, generous at the edges.
const (
	canadaMinLat = 41.6
	canadaMaxLat = 83.2
	canadaMinLng = -141.1
	canadaMaxLng = -52.5
)

// InCanada reports whether the coordinates fall inside Canada's bounding
// box. Coordinates failing this check are treated as geocoding noise and
// nulled rather than propagated.
func InCanada(lat, lng float64) bool {
	return lat >= canadaMinLat && lat <= canadaMaxLat &&
		lng >= canadaMinLng && lng <= canadaMaxLng
}
