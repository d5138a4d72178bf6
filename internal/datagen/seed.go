//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package datagen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cannalytics/cannetl/internal/geo"
	"github.com/cannalytics/cannetl/internal/logging"
	"github.com/cannalytics/cannetl/internal/table"
)

// Generator writes a synthetic raw dataset layout mirroring the real
// Health Canada / Statistics Canada / city extracts.
type Generator struct {
	faker *Faker
	rows  int
}

// NewGenerator creates a generator. A zero seed uses the clock.
func NewGenerator(seed uint64, rows int) *Generator {
	f := NewFaker()
	if seed != 0 {
		f = NewFakerWithSeed(seed)
	}
	return &Generator{faker: f, rows: rows}
}

var cannabisTypes = []string{
	"Total cannabis", "Dried cannabis", "Edibles", "Extracts", "Topicals",
}

var violations = []string{
	"Possession of illicit or over 30g dried cannabis [481]",
	"Distribution of illicit or over 30g dried cannabis [482]",
	"Sale of cannabis [483]",
	"Importation and exportation of cannabis [484]",
	"Production of cannabis [485]",
}

var crisisEventTypes = []string{
	"Attempt Suicide", "Person in Crisis", "Overdose",
}

// provinceDGUID returns the deterministic DGUID used for a province in
// both the sales and crime extracts, so the crime split by sales DGUIDs
// works on seeded data.
func provinceDGUID(code string) string {
	codes := sortedProvinceCodes()
	for i, c := range codes {
		if c == code {
			return fmt.Sprintf("2016A0002%02d", i+10)
		}
	}
	return "2016A000200"
}

func sortedProvinceCodes() []string {
	codes := make([]string, 0, len(geo.ProvinceNames))
	for c := range geo.ProvinceNames {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// months spans the observed legalization period.
func months() []string {
	var out []string
	for t := time.Date(2018, 10, 1, 0, 0, 0, 0, time.UTC); t.Year() < 2026; t = t.AddDate(0, 1, 0) {
		out = append(out, t.Format("2006-01"))
	}
	return out
}

// WriteAll writes every raw file under rawDir.
func (g *Generator) WriteAll(rawDir string) error {
	steps := []struct {
		name string
		fn   func(string) error
	}{
		{"store locations", g.writeStoreLists},
		{"cannabis sales", g.writeSales},
		{"retail trade", g.writeRetailTrade},
		{"crime statistics", g.writeCrime},
		{"city crime", g.writeCityCrime},
	}
	for _, step := range steps {
		if err := step.fn(rawDir); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
		logging.Info().Str("dataset", step.name).Msg("Seeded raw data")
	}
	return nil
}

func (g *Generator) writeCSV(path string, t *table.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.WriteCSV(f)
}

func (g *Generator) writeStoreLists(rawDir string) error {
	dir := filepath.Join(rawDir, "01_store_locations")

	// Federal licensed-store list carrying AB, BC, and MB rows.
	federal := [][]any{{
		"Establishment Name", "Site City Name", "Site Address Line 1",
		"Site Postal Code", "Site Province Abbrev", "License Status",
	}}
	for _, prov := range []string{"AB", "BC", "MB"} {
		n := g.rows / 10
		for i := 0; i < n; i++ {
			status := "Licensed"
			if g.faker.Int(1, 20) == 1 {
				status = "Revoked"
			}
			federal = append(federal, []any{
				g.faker.Company() + " Cannabis", g.faker.City(), g.faker.Street(),
				g.faker.PostalCode(), prov, status,
			})
		}
	}
	if err := writeXLSX(filepath.Join(dir, "Alberta.xlsx"), federal); err != nil {
		return err
	}

	files := map[string]string{
		"BritishColumbia.csv":      "BC",
		"Manitoba.csv":             "MB",
		"NewBrunswick.csv":         "NB",
		"Newfoundland.csv":         "NL",
		"NorthwestTerritories.csv": "NT",
		"NovaScotia.csv":           "NS",
		"Nunavut.csv":              "NU",
		"PrinceEdwardIsland.csv":   "PE",
		"Quebec.csv":               "QC",
		"Yukon.csv":                "YT",
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		prov := files[name]
		t := table.New("StoreName", "City", "FullAddress")
		n := g.rows / 20
		for i := 0; i < n; i++ {
			city := g.faker.City()
			full := fmt.Sprintf("%s, %s, %s %s",
				g.faker.Street(), city, geo.ProvinceNames[prov], g.faker.PostalCode())
			t.Append([]string{g.faker.Company() + " Cannabis", city, full})
		}
		if err := g.writeCSV(filepath.Join(dir, name), t); err != nil {
			return err
		}
	}

	on := table.New("Store Name", "Municipality or First Nation", "FullAddress")
	for i := 0; i < g.rows/10; i++ {
		city := g.faker.City()
		on.Append([]string{
			g.faker.Company() + " Cannabis", city,
			fmt.Sprintf("%s, %s, Ontario %s", g.faker.Street(), city, g.faker.PostalCode()),
		})
	}
	if err := g.writeCSV(filepath.Join(dir, "Ontario.csv"), on); err != nil {
		return err
	}

	sk := table.New("Operating Name", "City", "Street Address")
	for i := 0; i < g.rows/20; i++ {
		sk.Append([]string{g.faker.Company() + " Cannabis", g.faker.City(), g.faker.Street()})
	}
	return g.writeCSV(filepath.Join(dir, "Saskatchewan.csv"), sk)
}

func (g *Generator) writeSales(rawDir string) error {
	t := table.New("REF_DATE", "GEO", "DGUID", "Type of cannabis",
		"UOM", "UOM_ID", "SCALAR_FACTOR", "SCALAR_ID", "VALUE")
	for _, month := range months() {
		for _, prov := range sortedProvinceCodes() {
			t.Append([]string{
				month, geo.ProvinceNames[prov], provinceDGUID(prov),
				Choose(g.faker, cannabisTypes),
				"Dollars", "81", "thousands", "3",
				fmt.Sprintf("%.1f", g.faker.Float64(100, 90000)),
			})
		}
	}
	// A malformed date row the cleaner must skip, not fatal.
	t.Append([]string{"not-a-date", "Ontario", provinceDGUID("ON"),
		"Dried cannabis", "Dollars", "81", "thousands", "3", "12.0"})
	return g.writeCSV(filepath.Join(rawDir, "02_cannabis_sales", "cannabis_sales.csv"), t)
}

func (g *Generator) writeRetailTrade(rawDir string) error {
	t := table.New("REF_DATE", "GEO",
		"North American Industry Classification System (NAICS)",
		"Sales", "Adjustments", "VALUE")
	naics := []string{
		"Cannabis retailers [453993]",
		"Retail trade [44-45]",
		"Food and beverage stores [445]",
	}
	for _, month := range months() {
		for _, prov := range sortedProvinceCodes() {
			value := fmt.Sprintf("%.1f", g.faker.Float64(500, 250000))
			if g.faker.Int(1, 25) == 1 {
				value = ""
			}
			t.Append([]string{
				month, geo.ProvinceNames[prov], Choose(g.faker, naics),
				"Sales", "Unadjusted", value,
			})
		}
	}
	return g.writeCSV(filepath.Join(rawDir, "03_retail_trade", "retail_trade.csv"), t)
}

func (g *Generator) writeCrime(rawDir string) error {
	t := table.New("REF_DATE", "GEO", "DGUID", "Violations", "Statistics", "UOM", "VALUE")
	for _, month := range months() {
		for _, prov := range sortedProvinceCodes() {
			t.Append([]string{
				month, geo.ProvinceNames[prov], provinceDGUID(prov),
				Choose(g.faker, violations), "Actual incidents", "Number",
				fmt.Sprintf("%d", g.faker.Int(0, 400)),
			})
		}
	}
	// City-level rows carry DGUIDs absent from the sales series.
	for i := 0; i < g.rows; i++ {
		t.Append([]string{
			Choose(g.faker, months()), g.faker.City(),
			fmt.Sprintf("2016A0005%05d", g.faker.Int(10000, 99999)),
			Choose(g.faker, violations), "Actual incidents", "Number",
			fmt.Sprintf("%d", g.faker.Int(0, 60)),
		})
	}
	return g.writeCSV(filepath.Join(rawDir, "04_crime_data", "crime_data.csv"), t)
}

func (g *Generator) writeCityCrime(rawDir string) error {
	dir := filepath.Join(rawDir, "05_crime_by_city_data")
	yesNo := []string{"YES", "NO"}

	traffic := table.New("OBJECTID", "OCC_DATE", "LAT_WGS84", "LONG_WGS84",
		"FATALITIES", "INJURY_COLLISIONS", "FTR_COLLISIONS", "PD_COLLISIONS",
		"NEIGHBOURHOOD_158")
	for i := 0; i < g.rows; i++ {
		traffic.Append([]string{
			fmt.Sprintf("%d", i+1),
			g.faker.DateRange(time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)).Format("2006-01-02"),
			fmt.Sprintf("%.6f", g.faker.Float64(43.58, 43.85)),
			fmt.Sprintf("%.6f", g.faker.Float64(-79.64, -79.12)),
			fmt.Sprintf("%d", g.faker.Int(0, 2)),
			Choose(g.faker, yesNo), Choose(g.faker, yesNo), Choose(g.faker, yesNo),
			g.faker.Word(),
		})
	}
	if err := g.writeCSV(filepath.Join(dir, "Toronto", "Toronto_Traffic_Collisions.csv"), traffic); err != nil {
		return err
	}

	crisis := table.New("OBJECTID", "EVENT_DATE", "EVENT_TYPE", "NEIGHBOURHOOD_158")
	for i := 0; i < g.rows/2; i++ {
		crisis.Append([]string{
			fmt.Sprintf("%d", i+1),
			g.faker.DateRange(time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)).Format("2006-01-02"),
			Choose(g.faker, crisisEventTypes), g.faker.Word(),
		})
	}
	if err := g.writeCSV(filepath.Join(dir, "Toronto", "Toronto_Persons_in_Crisis_Calls_for_Service_Attended.csv"), crisis); err != nil {
		return err
	}

	calls := table.New("ObjectId", "EVENT_YEAR", "EVENT_COUNT", "NEIGHBOURHOOD_158", "HOOD_158")
	for i := 0; i < g.rows/2; i++ {
		calls.Append([]string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", g.faker.Int(2018, 2025)),
			fmt.Sprintf("%d", g.faker.Int(1, 900)),
			g.faker.Word(),
			fmt.Sprintf("%d", g.faker.Int(1, 158)),
		})
	}
	if err := g.writeCSV(filepath.Join(dir, "Toronto", "Toronto_Calls_for_Service_Attended.csv"), calls); err != nil {
		return err
	}

	for year := 2022; year <= 2025; year++ {
		t := table.New("Intersection", "Occurrence_Category", "Reported_Date")
		for i := 0; i < g.rows/8; i++ {
			t.Append([]string{
				fmt.Sprintf("%s & %s", g.faker.Street(), g.faker.Street()),
				Choose(g.faker, violations),
				fmt.Sprintf("%d-%02d-%02d", year, g.faker.Int(1, 12), g.faker.Int(1, 28)),
			})
		}
		if err := g.writeCSV(filepath.Join(dir, "Edmonton", fmt.Sprintf("Crimes_%d.csv", year)), t); err != nil {
			return err
		}
	}

	for year := 2014; year <= 2025; year++ {
		t := table.New("TYPE", "YEAR", "MONTH", "DAY", "HOUR", "MINUTE",
			"HUNDRED_BLOCK", "NEIGHBOURHOOD", "X", "Y")
		for i := 0; i < g.rows/8; i++ {
			t.Append([]string{
				Choose(g.faker, []string{"Theft from Vehicle", "Mischief", "Break and Enter Commercial"}),
				fmt.Sprintf("%d", year),
				fmt.Sprintf("%d", g.faker.Int(1, 12)),
				fmt.Sprintf("%d", g.faker.Int(1, 28)),
				fmt.Sprintf("%d", g.faker.Int(0, 23)),
				fmt.Sprintf("%d", g.faker.Int(0, 59)),
				g.faker.Street(), g.faker.Word(),
				fmt.Sprintf("%.2f", g.faker.Float64(483000, 498000)),
				fmt.Sprintf("%.2f", g.faker.Float64(5450000, 5462000)),
			})
		}
		if err := g.writeCSV(filepath.Join(dir, "Vancouver", fmt.Sprintf("Crimes_%d.csv", year)), t); err != nil {
			return err
		}
	}
	return nil
}

// writeXLSX writes rows to the first sheet of a new workbook.
func writeXLSX(path string, rows [][]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
