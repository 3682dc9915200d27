package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/rs/zerolog/log"

	"github.com/suistake/bridge-saga-service/internal/observability/tracing"
)

const healthCheckPath = "/healthcheck"

// LoggingMiddleware attaches a request scoped logger carrying the trace id,
// so saga submissions can be followed from the HTTP call into the logs.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := log.With().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("traceId", tracing.TraceId(ctx)).
			Logger()
		r = r.WithContext(logger.WithContext(ctx))

		// Probes run every few seconds and stay out of the logs.
		if r.URL.Path == healthCheckPath {
			next.ServeHTTP(w, r)
			return
		}

		startTime := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		event := logger.Info()
		if ww.Status() >= http.StatusInternalServerError {
			event = logger.Error()
		}
		if tracingInfo, ok := r.Context().Value(tracing.TracingInfoKey).(*tracing.TracingInfo); ok {
			event = event.Interface("tracingInfo", tracingInfo)
		}
		event.
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Int64("requestDuration", time.Since(startTime).Milliseconds()).
			Msg("Request completed")
	})
}
