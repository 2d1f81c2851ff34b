package client

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/apimgr/ipweather/src/services"
)

// CLIConfig represents the CLI configuration
type CLIConfig struct {
	// Upstream service URLs
	Endpoints EndpointsConfig `yaml:"endpoints,omitempty"`
	// Public IP provider
	IP IPConfig `yaml:"ip,omitempty"`
	// Local geolocation database
	GeoIP GeoIPConfig `yaml:"geoip,omitempty"`
	// HTTP transport
	HTTP HTTPConfig `yaml:"http,omitempty"`
	// Output preferences
	Output OutputConfig `yaml:"output,omitempty"`
	// Logging
	Logging LoggingConfig `yaml:"logging,omitempty"`
	// Metrics
	Metrics MetricsConfig `yaml:"metrics,omitempty"`
	// Debug mode
	Debug bool `yaml:"debug,omitempty"`
}

// EndpointsConfig holds upstream service URLs
type EndpointsConfig struct {
	IP          string `yaml:"ip,omitempty"`
	Geolocation string `yaml:"geolocation,omitempty"`
	Weather     string `yaml:"weather,omitempty"`
	UserAgent   string `yaml:"user_agent,omitempty"`
}

// IPConfig selects how the public address is learned
type IPConfig struct {
	// http or dns
	Provider  string `yaml:"provider,omitempty"`
	DNSServer string `yaml:"dns_server,omitempty"`
	DNSName   string `yaml:"dns_name,omitempty"`
	DNSIPv6   bool   `yaml:"dns_ipv6,omitempty"`
}

// GeoIPConfig points at a local city database
type GeoIPConfig struct {
	Database string `yaml:"database,omitempty"`
}

// HTTPConfig holds transport settings
type HTTPConfig struct {
	Timeout string `yaml:"timeout,omitempty"`
	Proxy   string `yaml:"proxy,omitempty"`
}

// OutputConfig holds output preferences
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
	Color  string `yaml:"color,omitempty"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Empty or "off" disables logging
	Level string `yaml:"level,omitempty"`
}

// MetricsConfig holds metrics settings
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		Endpoints: EndpointsConfig{
			IP:          services.DefaultIPURL,
			Geolocation: services.DefaultGeolocationURL,
			Weather:     services.DefaultWeatherURL,
		},
		IP: IPConfig{
			Provider:  "http",
			DNSServer: services.DefaultDNSServer,
			DNSName:   services.DefaultDNSName,
		},
		HTTP: HTTPConfig{
			Timeout: "30s",
		},
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
	}
}

// LoadConfig loads the configuration from path, or from the default config
// file when path is empty. A missing default file yields the defaults; a
// missing explicit file is an error. IPWEATHER_* variables are applied last.
func LoadConfig(path string) (*CLIConfig, error) {
	explicit := path != ""
	if !explicit {
		path = CLIConfigFile()
	}

	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decodeConfig(data, config); err != nil {
			return nil, NewConfigError(fmt.Sprintf("failed to parse config %s: %v", path, err))
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// defaults
	default:
		return nil, NewConfigError(fmt.Sprintf("failed to read config: %v", err))
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// decodeConfig rejects unknown keys so typos do not pass silently
func decodeConfig(data []byte, config *CLIConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnv overrides values from IPWEATHER_{SECTION}_{KEY} variables
func (c *CLIConfig) applyEnv() error {
	if v := os.Getenv("IPWEATHER_IP_URL"); v != "" {
		c.Endpoints.IP = v
	}
	if v := os.Getenv("IPWEATHER_GEOLOCATION_URL"); v != "" {
		c.Endpoints.Geolocation = v
	}
	if v := os.Getenv("IPWEATHER_WEATHER_URL"); v != "" {
		c.Endpoints.Weather = v
	}
	if v := os.Getenv("IPWEATHER_IP_PROVIDER"); v != "" {
		c.IP.Provider = v
	}
	if v := os.Getenv("IPWEATHER_PROXY"); v != "" {
		c.HTTP.Proxy = v
	}
	if v := os.Getenv("IPWEATHER_TIMEOUT"); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return NewConfigError(fmt.Sprintf("IPWEATHER_TIMEOUT: %v", err))
		}
		c.HTTP.Timeout = d.String()
	}
	if v := os.Getenv("IPWEATHER_GEOIP_DB"); v != "" {
		c.GeoIP.Database = v
	}
	if v := os.Getenv("IPWEATHER_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("IPWEATHER_METRICS_FILE"); v != "" {
		c.Metrics.Textfile = v
	}
	if v := os.Getenv("IPWEATHER_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("IPWEATHER_DEBUG"); v != "" {
		c.Debug = isTruthy(v)
	}
	return nil
}

// Validate checks every value that has a closed set of options
func (c *CLIConfig) Validate() error {
	switch c.Output.Format {
	case "text", "json":
	default:
		return NewConfigError("output.format must be text or json")
	}

	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return NewConfigError("output.color must be auto, always, or never")
	}

	switch c.IP.Provider {
	case "http", "dns":
	default:
		return NewConfigError("ip.provider must be http or dns")
	}

	if _, err := c.HTTPTimeout(); err != nil {
		return err
	}

	if c.Logging.Level != "" && c.Logging.Level != "off" {
		if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
			return NewConfigError(fmt.Sprintf("logging.level: %v", err))
		}
	}

	endpoints := map[string]string{
		"endpoints.ip":          c.Endpoints.IP,
		"endpoints.geolocation": c.Endpoints.Geolocation,
		"endpoints.weather":     c.Endpoints.Weather,
	}
	for key, raw := range endpoints {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return NewConfigError(fmt.Sprintf("%s must be an http(s) URL, got %q", key, raw))
		}
	}

	return nil
}

// HTTPTimeout returns the per-request timeout
func (c *CLIConfig) HTTPTimeout() (time.Duration, error) {
	if c.HTTP.Timeout == "" {
		return services.DefaultTimeout, nil
	}
	d, err := parseTimeout(c.HTTP.Timeout)
	if err != nil {
		return 0, NewConfigError(fmt.Sprintf("http.timeout: %v", err))
	}
	return d, nil
}

// GetUserAgent returns the configured User-Agent or the built-in one
func (c *CLIConfig) GetUserAgent() string {
	if c.Endpoints.UserAgent != "" {
		return c.Endpoints.UserAgent
	}
	return UserAgent()
}

// parseTimeout accepts plain seconds ("30") or a duration ("1m30s")
func parseTimeout(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	var d time.Duration
	if secs, err := strconv.Atoi(value); err == nil {
		d = time.Duration(secs) * time.Second
	} else {
		d, err = time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid timeout %q", value)
		}
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %q", value)
	}
	return d, nil
}

// LoadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return NewConfigError(fmt.Sprintf("failed to load %s: %v", path, err))
	}
	return nil
}

// isTruthy parses a boolean string value
// Supports: true/false, yes/no, 1/0, on/off, enable/disable
func isTruthy(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "true", "yes", "1", "on", "enable", "enabled", "yep", "yup", "yeah", "aye", "si", "oui", "da", "hai", "affirmative":
		return true
	default:
		return false
	}
}
