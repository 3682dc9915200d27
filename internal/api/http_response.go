package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	logger "github.com/rs/zerolog"

	"github.com/suistake/bridge-saga-service/internal/api/handlers"
	"github.com/suistake/bridge-saga-service/internal/observability/metrics"
	"github.com/suistake/bridge-saga-service/internal/observability/tracing"
	"github.com/suistake/bridge-saga-service/internal/types"
)

const hiddenErrorMessage = "Internal service error"

// ErrorResponse carries the trace id so a failed submission can be matched
// with the service logs.
type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
	TraceId   string `json:"traceId,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

type handlerFunc func(*http.Request) (*handlers.Result, *types.Error)

// registerHandler adapts a handler to chi. Metrics are labelled by route
// pattern so query strings never reach the label set.
func registerHandler(handle handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		timer := metrics.StartHttpRequestDurationTimer(routePattern(r))
		status, body := dispatch(handle, r)
		timer(status)
		writeResponse(w, r, status, body)
	}
}

func dispatch(handle handlerFunc, r *http.Request) (int, interface{}) {
	ctx := r.Context()
	result, err := handle(r)
	if err != nil {
		status := err.StatusCode
		if http.StatusText(status) == "" {
			logger.Ctx(ctx).Error().Err(err).Int("status_code", status).Msg("invalid status code")
			status = http.StatusInternalServerError
		}
		res := &ErrorResponse{
			ErrorCode: string(err.ErrorCode),
			Message:   err.Err.Error(),
			TraceId:   tracing.TraceId(ctx),
		}
		if status >= http.StatusInternalServerError {
			logger.Ctx(ctx).Error().Err(res).Str("errorCode", res.ErrorCode).Msg("request failed with 5xx error")
			res.Message = hiddenErrorMessage
		}
		return status, res
	}

	if result == nil || http.StatusText(result.Status) == "" {
		logger.Ctx(ctx).Error().Msg("handler returned neither a result nor an error")
		return http.StatusInternalServerError, &ErrorResponse{
			ErrorCode: types.InternalServiceError.String(),
			Message:   hiddenErrorMessage,
			TraceId:   tracing.TraceId(ctx),
		}
	}
	return result.Status, result.Data
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func writeResponse(w http.ResponseWriter, r *http.Request, statusCode int, res interface{}) {
	respBytes, err := json.Marshal(res)
	if err != nil {
		logger.Ctx(r.Context()).Err(err).Msg("failed to marshal response")
		http.Error(w, "Failed to process the request. Please try again later.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(respBytes); err != nil {
		logger.Ctx(r.Context()).Debug().Err(err).Msg("client went away before the response was written")
	}
}
