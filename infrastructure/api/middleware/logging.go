// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/helixml/trieve-go/internal/log"
)

// Logging returns a middleware that logs HTTP requests. The request-scoped
// logger, tagged with the request ID, is stored on the request context.
func Logging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := middleware.GetReqID(r.Context())
			l := logger.With().Str("request_id", requestID).Logger()
			ctx := log.WithRequestID(l.WithContext(r.Context()), requestID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				l.Info().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Int64("duration_ms", time.Since(start).Milliseconds()).
					Str("remote_addr", r.RemoteAddr).
					Msg("request completed")
			}()

			next.ServeHTTP(ww, r.WithContext(ctx))
		})
	}
}
