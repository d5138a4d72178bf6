//-------------------------------------------------------------------------
//
// cannetl - Cannabis Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, Cannalytics
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package geo

import "testing"

func TestNormalizeProvince(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AB", "AB"},
		{"ab", "AB"},
		{"Alberta", "AB"},
		{"alberta", "AB"},
		{"British Columbia", "BC"},
		{"B.C.", "BC"},
		{"Ont", "ON"},
		{"Ont.", "ON"},
		{"PEI", "PE"},
		{"P.E.I.", "PE"},
		{"Que", "QC"},
		{"Quebec", "QC"},
		{"Sask", "SK"},
		{"Nfld", "NL"},
		{"Yukon Territory", "YT"},
		{"Northwest Territories including Nunavut", "NT"},
		{" on ", "ON"},
		{"", ""},
		{"Canada", ""},
		{"Texas", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeProvince(tt.in); got != tt.want {
				t.Errorf("NormalizeProvince(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestInCanada(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		want     bool
	}{
		{"Toronto", 43.65, -79.38, true},
		{"Vancouver", 49.28, -123.12, true},
		{"Iqaluit", 63.75, -68.52, true},
		{"New York", 40.71, -74.01, false},
		{"London UK", 51.51, -0.13, false},
		{"null island", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InCanada(tt.lat, tt.lng); got != tt.want {
				t.Errorf("InCanada(%v, %v) = %v, want %v", tt.lat, tt.lng, got, tt.want)
			}
		})
	}
}
