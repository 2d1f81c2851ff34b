package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/apimgr/ipweather/src/models"
	"github.com/apimgr/ipweather/src/services/geoiptest"
)

func TestOpenMMDBResolverMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.mmdb")

	if _, err := OpenMMDBResolver(path); err == nil {
		t.Error("Expected error for missing database")
	}
}

func TestOpenMMDBResolverInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.mmdb")
	if err := os.WriteFile(path, []byte("this is not a maxmind database"), 0600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := OpenMMDBResolver(path); err == nil {
		t.Error("Expected error for invalid database")
	}
}

func TestMMDBResolverResolveLocation(t *testing.T) {
	path := geoiptest.WriteCityDB(t,
		geoiptest.City{
			Network:  "81.2.69.0/24",
			City:     "London",
			Country:  "United Kingdom",
			Location: &geoiptest.Location{Latitude: 51.5142, Longitude: -0.0931},
		},
		geoiptest.City{
			Network:  "81.2.70.0/24",
			Country:  "United Kingdom",
			Location: &geoiptest.Location{Latitude: 51.4964, Longitude: -0.1224},
		},
		geoiptest.City{
			Network: "81.2.71.0/24",
			City:    "Bristol",
			Country: "United Kingdom",
		},
		geoiptest.City{
			Network:  "81.2.72.0/24",
			City:     "Reading",
			Location: &geoiptest.Location{Latitude: 51.4543, Longitude: -0.9781},
		},
	)

	resolver, err := OpenMMDBResolver(path)
	if err != nil {
		t.Fatalf("OpenMMDBResolver() failed: %v", err)
	}
	defer resolver.Close()

	tests := []struct {
		name     string
		ip       string
		expected models.Location
		field    string
	}{
		{
			name:     "complete record",
			ip:       "81.2.69.142",
			expected: models.Location{Latitude: 51.5142, Longitude: -0.0931, City: "London", Country: "United Kingdom"},
		},
		{name: "no city", ip: "81.2.70.1", field: "city"},
		{name: "no location", ip: "81.2.71.1", field: "location"},
		{name: "no country", ip: "81.2.72.1", field: "country"},
		{name: "not in database", ip: "198.51.100.1", field: "city"},
		{name: "invalid address", ip: "not-an-ip", field: "ip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := resolver.ResolveLocation(context.Background(), tt.ip)
			if tt.field == "" {
				if err != nil {
					t.Fatalf("ResolveLocation() failed: %v", err)
				}
				if loc != tt.expected {
					t.Errorf("Expected %+v, got %+v", tt.expected, loc)
				}
				return
			}

			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Expected *ParseError, got %T: %v", err, err)
			}
			if parseErr.Field != tt.field {
				t.Errorf("Expected field %q, got %q", tt.field, parseErr.Field)
			}
			if parseErr.Stage != StageGeolocation {
				t.Errorf("Expected stage %s, got %s", StageGeolocation, parseErr.Stage)
			}
		})
	}
}
