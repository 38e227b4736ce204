package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable, e.g. TRIEVE_PORT.
const EnvPrefix = "TRIEVE"

// EnvConfig holds all environment-based configuration.
// Field names map to environment variables with the TRIEVE_ prefix removed.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: TRIEVE_HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: TRIEVE_PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// LogLevel is the log verbosity level.
	// Env: TRIEVE_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: TRIEVE_LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// OpenAPIPath points at an OpenAPI document to use instead of the
	// embedded one.
	// Env: TRIEVE_OPENAPI_PATH
	OpenAPIPath string `envconfig:"OPENAPI_PATH"`

	// OutputFormat is the CLI output format (table, json or yaml).
	// Env: TRIEVE_OUTPUT_FORMAT (default: table)
	OutputFormat string `envconfig:"OUTPUT_FORMAT" default:"table"`

	// Workers bounds concurrent validations.
	// Env: TRIEVE_WORKERS (default: GOMAXPROCS)
	Workers int `envconfig:"WORKERS"`

	// CORSOrigins is a comma-separated list of allowed origins.
	// Env: TRIEVE_CORS_ORIGINS (default: *)
	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"*"`

	// RequestTimeout is the HTTP request timeout in seconds.
	// Env: TRIEVE_REQUEST_TIMEOUT (default: 30)
	RequestTimeout float64 `envconfig:"REQUEST_TIMEOUT" default:"30"`

	// MaxBodyBytes limits request bodies.
	// Env: TRIEVE_MAX_BODY_BYTES (default: 1048576)
	MaxBodyBytes int64 `envconfig:"MAX_BODY_BYTES" default:"1048576"`
}

// LoadFromEnv loads configuration from TRIEVE_ prefixed environment
// variables. envconfig falls back to the unprefixed name, so PORT works too.
func LoadFromEnv() (EnvConfig, error) {
	return LoadFromEnvWithPrefix(EnvPrefix)
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig. Invalid output formats fall
// back to the table default.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.OpenAPIPath != "" {
		cfg = applyOption(cfg, WithOpenAPIPath(e.OpenAPIPath))
	}
	if format, err := ParseOutputFormat(e.OutputFormat); err == nil {
		cfg = applyOption(cfg, WithOutputFormat(format))
	}
	cfg = applyOption(cfg, WithWorkers(e.Workers))
	if e.CORSOrigins != "" {
		cfg = applyOption(cfg, WithCORSOrigins(ParseList(e.CORSOrigins)))
	}
	cfg = applyOption(cfg, WithRequestTimeout(time.Duration(e.RequestTimeout*float64(time.Second))))
	cfg = applyOption(cfg, WithMaxBodyBytes(e.MaxBodyBytes))

	return cfg
}

func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
