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

func TestExtractPostalCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123 Main St, Vancouver, BC V6B 1A1", "V6B 1A1"},
		{"123 Main St V6B1A1", "V6B1A1"},
		{"no postal code here", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExtractPostalCode(tt.in); got != tt.want {
			t.Errorf("ExtractPostalCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanFullAddress(t *testing.T) {
	tests := []struct {
		name       string
		full       string
		city       string
		province   string
		wantStreet string
		wantPostal string
	}{
		{
			name:       "full suffix with postal",
			full:       "123 Main St, Vancouver, BC V6B 1A1",
			city:       "Vancouver",
			province:   "BC",
			wantStreet: "123 Main St",
			wantPostal: "V6B 1A1",
		},
		{
			name:       "suffix without postal",
			full:       "456 Oak Ave, Kelowna, BC",
			city:       "Kelowna",
			province:   "BC",
			wantStreet: "456 Oak Ave",
			wantPostal: "",
		},
		{
			name:       "case-insensitive city match",
			full:       "789 Pine Rd, VICTORIA, BC V8W 2B7",
			city:       "Victoria",
			province:   "BC",
			wantStreet: "789 Pine Rd",
			wantPostal: "V8W 2B7",
		},
		{
			name:       "no suffix to strip",
			full:       "10 Elm St",
			city:       "Surrey",
			province:   "BC",
			wantStreet: "10 Elm St",
			wantPostal: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			street, postal := CleanFullAddress(tt.full, tt.city, tt.province)
			if street != tt.wantStreet {
				t.Errorf("street = %q, want %q", street, tt.wantStreet)
			}
			if postal != tt.wantPostal {
				t.Errorf("postal = %q, want %q", postal, tt.wantPostal)
			}
		})
	}
}
