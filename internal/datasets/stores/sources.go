//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package stores

// Format is a raw store list file format.
type Format int

const (
	// CSV is a comma-separated export.
	CSV Format = iota
	// XLSX is a spreadsheet export.
	XLSX
)

// Source describes one provincial store list file and how its columns
// map onto the standard schema. The federal list (Alberta.xlsx) carries
// several provinces and is filtered by the "Site Province Abbrev"
// column per source.
type Source struct {
	File     string
	Province string
	Format   Format
	Columns  map[string]string
}

// federalColumns maps the Health Canada licensed-store list columns.
var federalColumns = map[string]string{
	"Establishment Name":  "StoreName",
	"Site City Name":      "City",
	"Site Address Line 1": "Address",
	"Site Postal Code":    "PostalCode",
	"License Status":      "LicenseStatus",
}

// sources lists every raw store file in processing order.
var sources = []Source{
	{File: "Alberta.xlsx", Province: "AB", Format: XLSX, Columns: federalColumns},
	{File: "Alberta.xlsx", Province: "BC", Format: XLSX, Columns: federalColumns},
	{File: "BritishColumbia.csv", Province: "BC", Format: CSV, Columns: nil},
	{File: "Alberta.xlsx", Province: "MB", Format: XLSX, Columns: federalColumns},
	{File: "Manitoba.csv", Province: "MB", Format: CSV, Columns: nil},
	{File: "NewBrunswick.csv", Province: "NB", Format: CSV, Columns: nil},
	{File: "Newfoundland.csv", Province: "NL", Format: CSV, Columns: nil},
	{File: "NorthwestTerritories.csv", Province: "NT", Format: CSV, Columns: nil},
	{File: "NovaScotia.csv", Province: "NS", Format: CSV, Columns: nil},
	{File: "Nunavut.csv", Province: "NU", Format: CSV, Columns: nil},
	{File: "Ontario.csv", Province: "ON", Format: CSV, Columns: map[string]string{
		"Store Name":                   "StoreName",
		"Municipality or First Nation": "City",
	}},
	{File: "PrinceEdwardIsland.csv", Province: "PE", Format: CSV, Columns: nil},
	{File: "Quebec.csv", Province: "QC", Format: CSV, Columns: nil},
	{File: "Saskatchewan.csv", Province: "SK", Format: CSV, Columns: map[string]string{
		"Operating Name": "StoreName",
		"Street Address": "Address",
	}},
	{File: "Yukon.csv", Province: "YT", Format: CSV, Columns: nil},
}

// closedStatuses are license statuses of stores no longer operating.
// Rows carrying one are dropped so the output holds one row per
// operating store.
var closedStatuses = map[string]bool{
	"Revoked":   true,
	"Expired":   true,
	"Cancelled": true,
	"Closed":    true,
}
