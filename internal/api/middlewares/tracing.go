package middlewares

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/suistake/bridge-saga-service/internal/observability/tracing"
)

const traceIdHeader = "X-Trace-Id"

func TracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceId := r.Header.Get(traceIdHeader)
		if traceId == "" {
			traceId = uuid.NewString()
		}
		ctx, _ := tracing.AttachTracingInfo(r.Context(), traceId)
		w.Header().Set(traceIdHeader, traceId)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
