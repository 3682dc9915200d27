package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/suistake/bridge-saga-service/internal/observability/tracing"
	"github.com/suistake/bridge-saga-service/internal/queue/client"
)

// StakeRequestHandler runs the outbound saga for one stake request. It is
// idempotent on the request id, a redelivered message is skipped by the
// service once its run left the pending state.
func (h *QueueHandler) StakeRequestHandler(ctx context.Context, messageBody string) error {
	var event client.StakeRequestEvent
	if err := json.Unmarshal([]byte(messageBody), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal the message body into StakeRequestEvent")
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if event.EventType != client.StakeRequestEventType || event.RequestId == "" {
		return fmt.Errorf("%w: unexpected stake request event type %d", ErrMalformedMessage, event.EventType)
	}

	ctx, done := withRequestTracing(ctx, event.RequestId)
	defer done()
	return h.Services.ProcessStakeRequest(ctx, event)
}

// FinalizeRequestHandler runs the inbound saga for one finalize request.
func (h *QueueHandler) FinalizeRequestHandler(ctx context.Context, messageBody string) error {
	var event client.FinalizeRequestEvent
	if err := json.Unmarshal([]byte(messageBody), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal the message body into FinalizeRequestEvent")
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	if event.EventType != client.FinalizeRequestEventType || event.RequestId == "" {
		return fmt.Errorf("%w: unexpected finalize request event type %d", ErrMalformedMessage, event.EventType)
	}

	ctx, done := withRequestTracing(ctx, event.RequestId)
	defer done()
	return h.Services.ProcessFinalizeRequest(ctx, event)
}

// withRequestTracing scopes the logger and the span collector to one request.
// The request id doubles as the trace id, it is what API callers poll with.
func withRequestTracing(ctx context.Context, requestId string) (context.Context, func()) {
	ctx, info := tracing.AttachTracingInfo(ctx, requestId)
	logger := log.Ctx(ctx).With().Str("requestId", requestId).Logger()
	ctx = logger.WithContext(ctx)
	return ctx, func() {
		logger.Debug().Interface("tracingInfo", info).Msg("Request processed")
	}
}
