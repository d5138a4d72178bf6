//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package citycrime

import (
	"github.com/cannalytics/cannetl/internal/etl"
	"github.com/cannalytics/cannetl/internal/table"
)

// processToronto cleans the three Toronto Police Service extracts:
// traffic collisions, persons in crisis, and calls for service.
func processToronto(env *etl.Env) ([]etl.Output, error) {
	traffic, err := torontoTraffic(env)
	if err != nil {
		return nil, err
	}
	crisis, err := torontoCrisis(env)
	if err != nil {
		return nil, err
	}
	calls, err := torontoCalls(env)
	if err != nil {
		return nil, err
	}
	return []etl.Output{
		{Name: "toronto_traffic_collisions", Table: traffic},
		{Name: "toronto_person_in_crisis", Table: crisis},
		{Name: "toronto_calls_for_service", Table: calls},
	}, nil
}

func torontoTraffic(env *etl.Env) (*table.Table, error) {
	t, err := table.ReadCSV(env.RawPath(rawDir, "Toronto", "Toronto_Traffic_Collisions.csv"), table.ReadOptions{
		Required: []string{"OBJECTID", "OCC_DATE"},
	})
	if err != nil {
		return nil, err
	}

	t.Rename(map[string]string{
		"OBJECTID":          "Object_ID",
		"OCC_DATE":          "Accident_Date",
		"LAT_WGS84":         "Latitude",
		"LONG_WGS84":        "Longitude",
		"FATALITIES":        "Fatalities",
		"INJURY_COLLISIONS": "Injuries",
		"FTR_COLLISIONS":    "Fatal_And_Injury_Collisions",
		"PD_COLLISIONS":     "Property_Damage_Only_Collisions",
		"NEIGHBOURHOOD_158": "Neighbourhood",
	})
	for _, col := range []string{
		"Latitude", "Longitude", "Fatalities", "Injuries",
		"Fatal_And_Injury_Collisions", "Property_Damage_Only_Collisions", "Neighbourhood",
	} {
		if !t.Has(col) {
			t.AddColumn(col, func(table.Row) string { return "" })
		}
	}

	t.AddColumn("Collision_Type", func(r table.Row) string {
		switch {
		case r.Get("Fatal_And_Injury_Collisions") == "YES":
			return "Fatal & Injury"
		case r.Get("Injuries") == "YES":
			return "Injury"
		case r.Get("Property_Damage_Only_Collisions") == "YES":
			return "Property Damage Only"
		}
		return "None"
	})

	return t.Select(
		"Object_ID", "Accident_Date", "Latitude", "Longitude",
		"Fatalities", "Collision_Type", "Neighbourhood",
	)
}

func torontoCrisis(env *etl.Env) (*table.Table, error) {
	t, err := table.ReadCSV(
		env.RawPath(rawDir, "Toronto", "Toronto_Persons_in_Crisis_Calls_for_Service_Attended.csv"),
		table.ReadOptions{Required: []string{"OBJECTID", "EVENT_DATE", "EVENT_TYPE"}},
	)
	if err != nil {
		return nil, err
	}

	t.Rename(map[string]string{
		"OBJECTID":          "Object_ID",
		"EVENT_DATE":        "Event_Date",
		"EVENT_TYPE":        "Event_Type",
		"NEIGHBOURHOOD_158": "Neighbourhood",
	})
	if !t.Has("Neighbourhood") {
		t.AddColumn("Neighbourhood", func(table.Row) string { return "" })
	}

	return t.Select("Object_ID", "Event_Date", "Event_Type", "Neighbourhood")
}

func torontoCalls(env *etl.Env) (*table.Table, error) {
	t, err := table.ReadCSV(
		env.RawPath(rawDir, "Toronto", "Toronto_Calls_for_Service_Attended.csv"),
		table.ReadOptions{Required: []string{"ObjectId", "EVENT_YEAR", "EVENT_COUNT", "NEIGHBOURHOOD_158", "HOOD_158"}},
	)
	if err != nil {
		return nil, err
	}

	t.Rename(map[string]string{
		"ObjectId":          "Object_ID",
		"EVENT_YEAR":        "Year",
		"EVENT_COUNT":       "Event_Count",
		"NEIGHBOURHOOD_158": "Neighbourhood",
	})

	// The hood number disambiguates neighbourhoods that share a name.
	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)
		if row.Get("Neighbourhood") != "" && row.Get("HOOD_158") != "" {
			t.SetCell(i, "Neighbourhood", row.Get("Neighbourhood")+" ("+row.Get("HOOD_158")+")")
		}
	}

	return t.Select("Object_ID", "Year", "Event_Count", "Neighbourhood")
}
