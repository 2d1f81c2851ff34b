package services

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/apimgr/ipweather/src/models"
)

// DefaultGeolocationURL is the ip-api.com JSON endpoint; the address is appended as a path segment
const DefaultGeolocationURL = "http://ip-api.com/json/"

// LocationResolver maps a public address to a coarse location
type LocationResolver interface {
	ResolveLocation(ctx context.Context, ip string) (models.Location, error)
}

// IPAPIResolver queries ip-api.com (or a compatible service)
type IPAPIResolver struct {
	http    *HTTPClient
	baseURL string
}

// Ensure IPAPIResolver implements LocationResolver.
var _ LocationResolver = (*IPAPIResolver)(nil)

// NewIPAPIResolver creates a resolver rooted at baseURL (DefaultGeolocationURL when empty)
func NewIPAPIResolver(client *HTTPClient, baseURL string) *IPAPIResolver {
	if baseURL == "" {
		baseURL = DefaultGeolocationURL
	}
	return &IPAPIResolver{http: client, baseURL: baseURL}
}

// LookupURL returns the request URL for ip
func (r *IPAPIResolver) LookupURL(ip string) string {
	return strings.TrimSuffix(r.baseURL, "/") + "/" + url.PathEscape(ip)
}

// ResolveLocation issues one GET and strictly decodes lat, lon, city and country
func (r *IPAPIResolver) ResolveLocation(ctx context.Context, ip string) (models.Location, error) {
	body, err := r.http.Get(ctx, StageGeolocation, r.LookupURL(ip))
	if err != nil {
		return models.Location{}, err
	}
	return decodeLocation(body)
}

func decodeLocation(body []byte) (models.Location, error) {
	obj, err := parseObject(StageGeolocation, body)
	if err != nil {
		return models.Location{}, err
	}

	// ip-api.com answers 200 with status "fail" for private and reserved ranges
	if obj.OptionalString("status") == "fail" {
		msg := obj.OptionalString("message")
		if msg == "" {
			msg = "lookup failed"
		}
		return models.Location{}, &ParseError{Stage: StageGeolocation, Field: "status", Err: errors.New(msg)}
	}

	fr := &fieldReader{obj: obj}
	loc := models.Location{
		Latitude:  fr.number("lat"),
		Longitude: fr.number("lon"),
		City:      fr.str("city"),
		Country:   fr.str("country"),
	}
	if fr.err != nil {
		return models.Location{}, fr.err
	}
	return loc, nil
}
