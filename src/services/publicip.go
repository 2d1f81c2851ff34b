package services

import (
	"context"
	"fmt"

	"github.com/apimgr/ipweather/src/models"
)

// DefaultIPURL is the ipify JSON endpoint
const DefaultIPURL = "https://api.ipify.org?format=json"

// PublicIPResolver returns the caller's public address
type PublicIPResolver interface {
	ResolvePublicIP(ctx context.Context) (models.PublicAddress, error)
}

// HTTPIPResolver asks an echo service that answers {"ip": "..."}
type HTTPIPResolver struct {
	http *HTTPClient
	url  string
}

// Ensure HTTPIPResolver implements PublicIPResolver.
var _ PublicIPResolver = (*HTTPIPResolver)(nil)

// NewHTTPIPResolver creates a resolver for the echo service at url (DefaultIPURL when empty)
func NewHTTPIPResolver(client *HTTPClient, url string) *HTTPIPResolver {
	if url == "" {
		url = DefaultIPURL
	}
	return &HTTPIPResolver{http: client, url: url}
}

// ResolvePublicIP issues one GET and returns the "ip" field verbatim
func (r *HTTPIPResolver) ResolvePublicIP(ctx context.Context) (models.PublicAddress, error) {
	body, err := r.http.Get(ctx, StageIP, r.url)
	if err != nil {
		return models.PublicAddress{}, err
	}
	return decodePublicAddress(body)
}

func decodePublicAddress(body []byte) (models.PublicAddress, error) {
	obj, err := parseObject(StageIP, body)
	if err != nil {
		return models.PublicAddress{}, err
	}
	ip, err := obj.String("ip")
	if err != nil {
		return models.PublicAddress{}, err
	}
	if ip == "" {
		return models.PublicAddress{}, &ParseError{Stage: StageIP, Field: "ip", Err: fmt.Errorf("empty address")}
	}
	return models.PublicAddress{IP: ip}, nil
}
