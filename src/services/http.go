package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/net/proxy"
)

// DefaultTimeout is the default per-request timeout
const DefaultTimeout = 30 * time.Second

// HTTPOptions configures an HTTPClient
type HTTPOptions struct {
	Timeout   time.Duration
	UserAgent string
	// Proxy is a socks5://, socks5h://, http:// or https:// URL; empty means direct
	Proxy string
}

// HTTPClient issues the GET requests of every HTTP-backed stage
type HTTPClient struct {
	client *resty.Client
	logger *zap.Logger
}

// NewHTTPClient creates a new HTTP client. Retries are disabled.
func NewHTTPClient(opts HTTPOptions, logger *zap.Logger) (*HTTPClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	rc := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	if opts.UserAgent != "" {
		rc.SetHeader("User-Agent", opts.UserAgent)
	}

	if opts.Proxy != "" {
		transport, err := proxyTransport(opts.Proxy)
		if err != nil {
			return nil, err
		}
		rc.SetTransport(transport)
	}

	rc.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		logger.Debug("http request",
			zap.String("method", req.Method),
			zap.String("url", req.URL),
		)
		return nil
	})
	rc.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug("http response",
			zap.String("method", resp.Request.Method),
			zap.String("url", resp.Request.URL),
			zap.Int("status", resp.StatusCode()),
			zap.Duration("duration", resp.Time()),
			zap.Int("bytes", len(resp.Body())),
		)
		return nil
	})

	return &HTTPClient{client: rc, logger: logger}, nil
}

// proxyTransport builds a transport that routes every request through proxyURL
func proxyTransport(proxyURL string) (*http.Transport, error) {
	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL %q: %w", proxyURL, err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	switch u.Scheme {
	case "http", "https":
		transport.Proxy = http.ProxyURL(u)
	case "socks5", "socks5h":
		dialer, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", proxyURL, err)
		}
		transport.Proxy = nil
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q (want socks5, socks5h, http or https)", u.Scheme)
	}
	return transport, nil
}

// Get fetches rawURL and returns the response body.
// Transport failures and non-2xx statuses are NetworkErrors tagged with stage.
func (c *HTTPClient) Get(ctx context.Context, stage Stage, rawURL string) ([]byte, error) {
	resp, err := c.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, &NetworkError{Stage: stage, Err: err}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, &NetworkError{Stage: stage, Err: statusError(resp)}
	}

	return resp.Body(), nil
}

// statusError describes a non-2xx response, using the upstream's own
// error text when the body carries one
func statusError(resp *resty.Response) error {
	var errorResp struct {
		Reason  string `json:"reason"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	// Open-Meteo sends "error": true next to "reason", so a type error on
	// one field must not discard the others
	_ = json.Unmarshal(resp.Body(), &errorResp)
	switch {
	case errorResp.Reason != "":
		return fmt.Errorf("%w %d: %s", ErrUpstreamStatus, resp.StatusCode(), errorResp.Reason)
	case errorResp.Message != "":
		return fmt.Errorf("%w %d: %s", ErrUpstreamStatus, resp.StatusCode(), errorResp.Message)
	case errorResp.Error != "":
		return fmt.Errorf("%w %d: %s", ErrUpstreamStatus, resp.StatusCode(), errorResp.Error)
	}
	return fmt.Errorf("%w %d", ErrUpstreamStatus, resp.StatusCode())
}
