// Package log provides structured logging with correlation IDs.
package log

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/helixml/trieve-go/internal/config"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for logging.
const (
	CorrelationIDKey ContextKey = "correlation_id"
	RequestIDKey     ContextKey = "request_id"
)

// TimeFormat is the timestamp layout of pretty output.
const TimeFormat = "15:04:05.000"

// NewLogger creates a logger based on configuration. Logs go to stderr so
// that stdout stays free for command output and the MCP stdio transport.
func NewLogger(cfg config.AppConfig) zerolog.Logger {
	return NewLoggerWithWriter(os.Stderr, cfg.LogFormat(), cfg.LogLevel())
}

// NewLoggerWithWriter creates a logger that writes to w.
func NewLoggerWithWriter(w io.Writer, format config.LogFormat, level string) zerolog.Logger {
	if format != config.LogFormatJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: TimeFormat, NoColor: !isTerminal(w)}
	}
	return zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// FromContext returns the logger attached to ctx, or fallback when ctx
// carries none.
func FromContext(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	return fallback
}

// Contextual returns l enriched with the correlation and request IDs found
// in ctx.
func Contextual(ctx context.Context, l zerolog.Logger) zerolog.Logger {
	corrID := CorrelationID(ctx)
	reqID := RequestID(ctx)
	if corrID == "" && reqID == "" {
		return l
	}
	c := l.With()
	if corrID != "" {
		c = c.Str(string(CorrelationIDKey), corrID)
	}
	if reqID != "" {
		c = c.Str(string(RequestIDKey), reqID)
	}
	return c.Logger()
}

// WithCorrelationID adds a correlation ID to the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// CorrelationID extracts the correlation ID from context.
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return id
	}
	return ""
}

// RequestID extracts the request ID from context.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
