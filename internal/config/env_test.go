package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.Equal(t, "", cfg.OpenAPIPath)
	assert.Equal(t, "table", cfg.OutputFormat)
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, "*", cfg.CORSOrigins)
	assert.Equal(t, 30.0, cfg.RequestTimeout)
	assert.Equal(t, int64(1048576), cfg.MaxBodyBytes)
}

func TestEnvDefaults_MatchConfigDefaults(t *testing.T) {
	// Struct tag defaults must be literals, so keep them in sync with the constants.
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultCORSOrigins, cfg.CORSOrigins)
	assert.Equal(t, DefaultRequestTimeout.Seconds(), cfg.RequestTimeout)
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.MaxBodyBytes)
}

func TestLoadFromEnv_OverrideValues(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("TRIEVE_HOST", "127.0.0.1")
	t.Setenv("TRIEVE_PORT", "9000")
	t.Setenv("TRIEVE_LOG_LEVEL", "DEBUG")
	t.Setenv("TRIEVE_LOG_FORMAT", "json")
	t.Setenv("TRIEVE_OPENAPI_PATH", "/etc/trieve/openapi.json")
	t.Setenv("TRIEVE_OUTPUT_FORMAT", "yaml")
	t.Setenv("TRIEVE_WORKERS", "3")
	t.Setenv("TRIEVE_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("TRIEVE_REQUEST_TIMEOUT", "2.5")
	t.Setenv("TRIEVE_MAX_BODY_BYTES", "2048")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/etc/trieve/openapi.json", cfg.OpenAPIPath)
	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.Equal(t, 3, cfg.Workers)

	app := cfg.ToAppConfig()
	assert.Equal(t, "127.0.0.1:9000", app.Addr())
	assert.Equal(t, LogFormatJSON, app.LogFormat())
	assert.Equal(t, OutputYAML, app.OutputFormat())
	assert.Equal(t, 3, app.Workers())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, app.CORSOrigins())
	assert.Equal(t, 2500*time.Millisecond, app.RequestTimeout())
	assert.Equal(t, int64(2048), app.MaxBodyBytes())
}

func TestLoadFromEnv_UnprefixedFallback(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("PORT", "7070")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
}

func TestLoadFromEnv_InvalidPort(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("TRIEVE_PORT", "eighty")

	_, err := LoadFromEnv()
	assert.Error(t, err)
}

func TestLoadFromEnvWithPrefix(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("SEARCH_LOG_LEVEL", "WARN")

	cfg, err := LoadFromEnvWithPrefix("SEARCH")
	require.NoError(t, err)
	assert.Equal(t, "WARN", cfg.LogLevel)
}

func TestToAppConfig_InvalidOutputFormatKeepsDefault(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("TRIEVE_OUTPUT_FORMAT", "xml")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, OutputTable, cfg.ToAppConfig().OutputFormat())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnvVars(t)

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TRIEVE_PORT=9191\nTRIEVE_LOG_FORMAT=json\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("TRIEVE_PORT")
		_ = os.Unsetenv("TRIEVE_LOG_FORMAT")
	})

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Port())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
}

func TestLoadConfig_EnvironmentWinsOverDotEnv(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("TRIEVE_PORT", "6000")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TRIEVE_PORT=9191\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 6000, cfg.Port())
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
	assert.NoError(t, LoadDotEnvFromFiles(filepath.Join(t.TempDir(), "a.env"), filepath.Join(t.TempDir(), "b.env")))
}

func clearEnvVars(t *testing.T) {
	t.Helper()

	keys := []string{
		"HOST",
		"PORT",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"OPENAPI_PATH",
		"OUTPUT_FORMAT",
		"WORKERS",
		"CORS_ORIGINS",
		"REQUEST_TIMEOUT",
		"MAX_BODY_BYTES",
	}

	for _, k := range keys {
		for _, v := range []string{k, EnvPrefix + "_" + k, "SEARCH_" + k} {
			if old, ok := os.LookupEnv(v); ok {
				t.Cleanup(func() { _ = os.Setenv(v, old) })
			}
			_ = os.Unsetenv(v)
		}
	}
}
