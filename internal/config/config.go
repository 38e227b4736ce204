// Package config provides application configuration.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Default configuration values.
const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 8080
	DefaultLogLevel       = "INFO"
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxBodyBytes   = 1 << 20
	DefaultCORSOrigins    = "*"
)

// DefaultWorkers returns the default number of concurrent validations.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// OutputFormat selects how the CLI prints results.
type OutputFormat string

// OutputFormat values.
const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// ParseOutputFormat parses an output format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputTable, OutputJSON, OutputYAML:
		return f, nil
	case "":
		return OutputTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host           string
	port           int
	logLevel       string
	logFormat      LogFormat
	openAPIPath    string
	outputFormat   OutputFormat
	workers        int
	corsOrigins    []string
	requestTimeout time.Duration
	maxBodyBytes   int64
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:           DefaultHost,
		port:           DefaultPort,
		logLevel:       DefaultLogLevel,
		logFormat:      LogFormatPretty,
		outputFormat:   OutputTable,
		workers:        DefaultWorkers(),
		corsOrigins:    ParseList(DefaultCORSOrigins),
		requestTimeout: DefaultRequestTimeout,
		maxBodyBytes:   DefaultMaxBodyBytes,
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// LogLevel returns the log verbosity.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// OpenAPIPath returns the path of an OpenAPI document overriding the
// embedded one. Empty means embedded.
func (c AppConfig) OpenAPIPath() string { return c.openAPIPath }

// OutputFormat returns the CLI output format.
func (c AppConfig) OutputFormat() OutputFormat { return c.outputFormat }

// Workers returns the number of concurrent validations.
func (c AppConfig) Workers() int { return c.workers }

// CORSOrigins returns the allowed CORS origins.
func (c AppConfig) CORSOrigins() []string {
	origins := make([]string, len(c.corsOrigins))
	copy(origins, c.corsOrigins)
	return origins
}

// RequestTimeout returns the per-request timeout of the HTTP API.
func (c AppConfig) RequestTimeout() time.Duration { return c.requestTimeout }

// MaxBodyBytes returns the largest request body the HTTP API accepts.
func (c AppConfig) MaxBodyBytes() int64 { return c.maxBodyBytes }

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithOpenAPIPath sets the OpenAPI document path.
func WithOpenAPIPath(path string) AppConfigOption {
	return func(c *AppConfig) { c.openAPIPath = path }
}

// WithOutputFormat sets the CLI output format.
func WithOutputFormat(format OutputFormat) AppConfigOption {
	return func(c *AppConfig) { c.outputFormat = format }
}

// WithWorkers sets the number of concurrent validations.
func WithWorkers(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		c.corsOrigins = make([]string, len(origins))
		copy(c.corsOrigins, origins)
	}
}

// WithRequestTimeout sets the HTTP request timeout.
func WithRequestTimeout(d time.Duration) AppConfigOption {
	return func(c *AppConfig) {
		if d > 0 {
			c.requestTimeout = d
		}
	}
}

// WithMaxBodyBytes sets the request body limit.
func WithMaxBodyBytes(n int64) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (c AppConfig) MarshalZerologObject(e *zerolog.Event) {
	openAPI := c.openAPIPath
	if openAPI == "" {
		openAPI = "(embedded)"
	}
	e.Str("addr", c.Addr()).
		Str("log_level", c.logLevel).
		Str("log_format", string(c.logFormat)).
		Str("openapi", openAPI).
		Str("output", string(c.outputFormat)).
		Int("workers", c.workers).
		Strs("cors_origins", c.corsOrigins).
		Dur("request_timeout", c.requestTimeout).
		Int64("max_body_bytes", c.maxBodyBytes)
}

// ParseList parses a comma-separated list, dropping empty entries.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
