package handlers

import (
	"context"
	"errors"

	"github.com/suistake/bridge-saga-service/internal/queue/client"
)

// ErrMalformedMessage marks a message that can never be processed, retrying it is pointless.
var ErrMalformedMessage = errors.New("malformed queue message")

// SagaService is the part of the service layer the queue handlers drive.
type SagaService interface {
	ProcessStakeRequest(ctx context.Context, event client.StakeRequestEvent) error
	ProcessFinalizeRequest(ctx context.Context, event client.FinalizeRequestEvent) error
	SaveUnprocessableMessages(ctx context.Context, messageBody, receipt string) error
}

type QueueHandler struct {
	Services SagaService
}

type MessageHandler func(ctx context.Context, messageBody string) error
type UnprocessableMessageHandler func(ctx context.Context, messageBody, receipt string) error

func NewQueueHandler(services SagaService) *QueueHandler {
	return &QueueHandler{
		Services: services,
	}
}

// HandleUnprocessedMessage parks a message so it can be inspected and replayed later.
func (h *QueueHandler) HandleUnprocessedMessage(ctx context.Context, messageBody, receipt string) error {
	return h.Services.SaveUnprocessableMessages(ctx, messageBody, receipt)
}
