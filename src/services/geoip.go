package services

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"

	"github.com/apimgr/ipweather/src/models"
)

// MMDBResolver resolves locations from a local GeoLite2-City compatible
// database instead of the geolocation API
type MMDBResolver struct {
	reader *geoip2.Reader
	locale string
}

// Ensure MMDBResolver implements LocationResolver.
var _ LocationResolver = (*MMDBResolver)(nil)

// OpenMMDBResolver opens the city database at path
func OpenMMDBResolver(path string) (*MMDBResolver, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip database %s: %w", path, err)
	}
	return &MMDBResolver{reader: reader, locale: "en"}, nil
}

// ResolveLocation looks ip up in the database. A record without city,
// country or coordinates is a ParseError, same as an incomplete API answer.
func (r *MMDBResolver) ResolveLocation(_ context.Context, ip string) (models.Location, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return models.Location{}, &ParseError{Stage: StageGeolocation, Field: "ip", Err: fmt.Errorf("invalid address %q", ip)}
	}

	record, err := r.reader.City(parsed)
	if err != nil {
		return models.Location{}, &ParseError{Stage: StageGeolocation, Field: "record", Err: err}
	}

	city := record.City.Names[r.locale]
	if city == "" {
		return models.Location{}, &ParseError{Stage: StageGeolocation, Field: "city", Err: ErrMissingField}
	}
	country := record.Country.Names[r.locale]
	if country == "" {
		return models.Location{}, &ParseError{Stage: StageGeolocation, Field: "country", Err: ErrMissingField}
	}
	// the reader reports absent coordinates as 0,0
	if record.Location.Latitude == 0 && record.Location.Longitude == 0 {
		return models.Location{}, &ParseError{Stage: StageGeolocation, Field: "location", Err: errors.New("no coordinates for address")}
	}

	return models.Location{
		Latitude:  record.Location.Latitude,
		Longitude: record.Location.Longitude,
		City:      city,
		Country:   country,
	}, nil
}

// Close releases the database
func (r *MMDBResolver) Close() error {
	return r.reader.Close()
}
