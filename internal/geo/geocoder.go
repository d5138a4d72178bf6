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
	"errors"
	"time"

	"github.com/kelvins/geocoder"

	"github.com/cannalytics/cannetl/internal/logging"
)

// ErrGeocodeFailure is returned when an address cannot be resolved.
// Callers retain the row with null coordinates instead of dropping it.
var ErrGeocodeFailure = errors.New("geocode failure")

// Location is a WGS84 point.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Resolver is the external geocoding collaborator.
type Resolver interface {
	// Geocode resolves a free-form address to coordinates.
	Geocode(address string) (Location, error)

	// ReversePostal returns the postal code at a location, or "" when
	// none is known.
	ReversePostal(loc Location) (string, error)
}

// GoogleResolver resolves addresses through the Google Maps Geocoding
// API.
type GoogleResolver struct{}

// NewGoogleResolver configures the Google geocoding backend with the
// given API key.
func NewGoogleResolver(apiKey string) *GoogleResolver {
	geocoder.ApiKey = apiKey
	return &GoogleResolver{}
}

// Geocode resolves a free-form address.
func (g *GoogleResolver) Geocode(address string) (Location, error) {
	loc, err := geocoder.Geocoding(geocoder.Address{Street: address})
	if err != nil {
		return Location{}, errors.Join(ErrGeocodeFailure, err)
	}
	return Location{Latitude: loc.Latitude, Longitude: loc.Longitude}, nil
}

// ReversePostal returns the postal code at a location.
func (g *GoogleResolver) ReversePostal(loc Location) (string, error) {
	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	})
	if err != nil {
		return "", errors.Join(ErrGeocodeFailure, err)
	}
	for _, a := range addresses {
		if a.PostalCode != "" {
			return a.PostalCode, nil
		}
	}
	return "", nil
}

// Client wraps a Resolver with an in-memory cache, bounded retries, and a
// request delay. A failed lookup is logged and reported as ok=false, not
// an error: the cleaning contract keeps the row with null coordinates.
type Client struct {
	resolver Resolver
	delay    time.Duration
	retries  int
	cache    map[string]cachedLookup
}

type cachedLookup struct {
	loc Location
	ok  bool
}

// NewClient creates a geocoding client around the given resolver.
func NewClient(resolver Resolver, delay time.Duration, retries int) *Client {
	if retries < 1 {
		retries = 1
	}
	return &Client{
		resolver: resolver,
		delay:    delay,
		retries:  retries,
		cache:    make(map[string]cachedLookup),
	}
}

// Locate resolves an address, retrying up to the configured attempt
// count. Results, including failures, are cached per address.
func (c *Client) Locate(address string) (Location, bool) {
	if address == "" {
		return Location{}, false
	}
	if hit, ok := c.cache[address]; ok {
		return hit.loc, hit.ok
	}

	var loc Location
	var err error
	for attempt := 1; attempt <= c.retries; attempt++ {
		loc, err = c.resolver.Geocode(address)
		if err == nil {
			break
		}
		logging.Debug().
			Str("address", address).
			Int("attempt", attempt).
			Int("max", c.retries).
			Msg("Geocoding attempt failed")
		time.Sleep(c.delay)
	}
	if err != nil {
		logging.Warn().
			Str("address", address).
			Err(err).
			Msg("Geocoding failed; keeping null coordinates")
		c.cache[address] = cachedLookup{}
		return Location{}, false
	}
	if !InCanada(loc.Latitude, loc.Longitude) {
		logging.Warn().
			Str("address", address).
			Float64("lat", loc.Latitude).
			Float64("lng", loc.Longitude).
			Msg("Geocoded point outside Canada; keeping null coordinates")
		c.cache[address] = cachedLookup{}
		return Location{}, false
	}

	time.Sleep(c.delay)
	c.cache[address] = cachedLookup{loc: loc, ok: true}
	return loc, true
}

// PostalCode reverse-geocodes the postal code at a location.
func (c *Client) PostalCode(loc Location) (string, bool) {
	postal, err := c.resolver.ReversePostal(loc)
	if err != nil || postal == "" {
		return "", false
	}
	time.Sleep(c.delay)
	return postal, true
}
