package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

// newTestHTTPClient returns a client with a short timeout that logs through t
func newTestHTTPClient(t *testing.T) *HTTPClient {
	t.Helper()
	client, err := NewHTTPClient(HTTPOptions{Timeout: 2 * time.Second, UserAgent: "ipweather-test/1.0"}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewHTTPClient() failed: %v", err)
	}
	return client
}

// jsonServer serves body with status for every request
func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

// closedServerURL returns the URL of a server that no longer accepts connections
func closedServerURL(t *testing.T) string {
	t.Helper()
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	return url
}
