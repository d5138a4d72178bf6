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
	"fmt"

	"github.com/im7mortal/UTM"
)

// UTMZone10ToWGS84 converts NAD83 UTM zone 10N coordinates (as published
// in Vancouver's crime extracts) to WGS84 latitude/longitude. The datum
// difference between NAD83 and WGS84 is below the precision of the
// source data.
func UTMZone10ToWGS84(easting, northing float64) (Location, error) {
	lat, lng, err := UTM.ToLatLon(easting, northing, 10, "U")
	if err != nil {
		return Location{}, fmt.Errorf("utm conversion: %w", err)
	}
	return Location{Latitude: lat, Longitude: lng}, nil
}
