// Package geoiptest writes small GeoLite2-City compatible databases for tests.
package geoiptest

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/maxmind/mmdbwriter"
	"github.com/maxmind/mmdbwriter/mmdbtype"
)

// City is one network's record. Empty names and a nil Location are left out
// of the written record.
type City struct {
	Network  string
	City     string
	Country  string
	Location *Location
}

// Location is a coordinate pair
type Location struct {
	Latitude  float64
	Longitude float64
}

// WriteCityDB writes records to a new database in t.TempDir and returns its path
func WriteCityDB(t testing.TB, records ...City) string {
	t.Helper()

	tree, err := mmdbwriter.New(mmdbwriter.Options{
		DatabaseType:            "GeoLite2-City",
		RecordSize:              24,
		IncludeReservedNetworks: true,
	})
	if err != nil {
		t.Fatalf("mmdbwriter.New() failed: %v", err)
	}

	for _, rec := range records {
		_, network, err := net.ParseCIDR(rec.Network)
		if err != nil {
			t.Fatalf("invalid network %q: %v", rec.Network, err)
		}
		if err := tree.Insert(network, rec.value()); err != nil {
			t.Fatalf("Insert(%s) failed: %v", rec.Network, err)
		}
	}

	path := filepath.Join(t.TempDir(), "city.mmdb")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	defer f.Close()
	if _, err := tree.WriteTo(f); err != nil {
		t.Fatalf("WriteTo() failed: %v", err)
	}
	return path
}

func (c City) value() mmdbtype.Map {
	m := mmdbtype.Map{}
	if c.City != "" {
		m["city"] = names(c.City)
	}
	if c.Country != "" {
		m["country"] = names(c.Country)
	}
	if c.Location != nil {
		m["location"] = mmdbtype.Map{
			"latitude":  mmdbtype.Float64(c.Location.Latitude),
			"longitude": mmdbtype.Float64(c.Location.Longitude),
		}
	}
	return m
}

func names(en string) mmdbtype.Map {
	return mmdbtype.Map{"names": mmdbtype.Map{"en": mmdbtype.String(en)}}
}
