package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	assert.Equal(t, DefaultHost, cfg.Host())
	assert.Equal(t, DefaultPort, cfg.Port())
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel())
	assert.Equal(t, LogFormatPretty, cfg.LogFormat())
	assert.Equal(t, "", cfg.OpenAPIPath())
	assert.Equal(t, OutputTable, cfg.OutputFormat())
	assert.Equal(t, DefaultWorkers(), cfg.Workers())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins())
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout())
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.MaxBodyBytes())
}

func TestAppConfig_Options(t *testing.T) {
	cfg := NewAppConfigWithOptions(
		WithHost("localhost"),
		WithPort(9999),
		WithWorkers(0),
		WithRequestTimeout(-time.Second),
		WithMaxBodyBytes(0),
		WithOpenAPIPath("spec.yaml"),
	)

	assert.Equal(t, "localhost:9999", cfg.Addr())
	assert.Equal(t, DefaultWorkers(), cfg.Workers(), "non-positive workers are ignored")
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout())
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.MaxBodyBytes())
	assert.Equal(t, "spec.yaml", cfg.OpenAPIPath())

	next := cfg.Apply(WithWorkers(2))
	assert.Equal(t, 2, next.Workers())
	assert.Equal(t, DefaultWorkers(), cfg.Workers(), "Apply must not mutate the receiver")
}

func TestAppConfig_CORSOriginsIsACopy(t *testing.T) {
	origins := []string{"https://a.example"}
	cfg := NewAppConfigWithOptions(WithCORSOrigins(origins))
	origins[0] = "changed"

	got := cfg.CORSOrigins()
	assert.Equal(t, []string{"https://a.example"}, got)
	got[0] = "changed"
	assert.Equal(t, []string{"https://a.example"}, cfg.CORSOrigins())
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{input: "", want: OutputTable},
		{input: "table", want: OutputTable},
		{input: "JSON", want: OutputJSON},
		{input: " yaml ", want: OutputYAML},
		{input: "xml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{}, ParseList(""))
	assert.Equal(t, []string{"a", "b"}, ParseList(" a, ,b "))
}

func TestAppConfig_MarshalZerologObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logger.Info().EmbedObject(NewAppConfigWithOptions(WithWorkers(2))).Msg("config")

	out := buf.String()
	assert.Contains(t, out, `"addr":"0.0.0.0:8080"`)
	assert.Contains(t, out, `"openapi":"(embedded)"`)
	assert.Contains(t, out, `"workers":2`)
	assert.Contains(t, out, `"cors_origins":["*"]`)
}
