package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suistake/bridge-saga-service/internal/queue/client"
	"github.com/suistake/bridge-saga-service/internal/queue/handlers"
	"github.com/suistake/bridge-saga-service/internal/types"
)

type recordingService struct {
	stakes    []client.StakeRequestEvent
	finalizes []client.FinalizeRequestEvent
	saved     []string
	err       error
}

func (r *recordingService) ProcessStakeRequest(_ context.Context, event client.StakeRequestEvent) error {
	r.stakes = append(r.stakes, event)
	return r.err
}

func (r *recordingService) ProcessFinalizeRequest(_ context.Context, event client.FinalizeRequestEvent) error {
	r.finalizes = append(r.finalizes, event)
	return r.err
}

func (r *recordingService) SaveUnprocessableMessages(_ context.Context, body, receipt string) error {
	r.saved = append(r.saved, receipt)
	return r.err
}

func marshal(t *testing.T, v any) string {
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return string(body)
}

func TestStakeRequestHandler(t *testing.T) {
	service := &recordingService{}
	h := handlers.NewQueueHandler(service)

	event := client.NewStakeRequestEvent("req-1", types.StakeRequest{
		UserAddress: "0xu", UsdcAmountToStake: "100", SourceChainId: "ethereum",
	})
	require.NoError(t, h.StakeRequestHandler(context.Background(), marshal(t, event)))
	require.Len(t, service.stakes, 1)
	assert.Equal(t, event, service.stakes[0])
}

func TestStakeRequestHandlerPropagatesServiceError(t *testing.T) {
	service := &recordingService{err: errors.New("db unavailable")}
	h := handlers.NewQueueHandler(service)

	err := h.StakeRequestHandler(context.Background(), marshal(t, client.NewStakeRequestEvent("req-1", types.StakeRequest{})))
	require.Error(t, err)
	assert.NotErrorIs(t, err, handlers.ErrMalformedMessage)
}

func TestFinalizeRequestHandler(t *testing.T) {
	service := &recordingService{}
	h := handlers.NewQueueHandler(service)

	event := client.NewFinalizeRequestEvent("req-2", "0xu", "base")
	require.NoError(t, h.FinalizeRequestHandler(context.Background(), marshal(t, event)))
	require.Len(t, service.finalizes, 1)
	assert.Equal(t, "base", service.finalizes[0].SourceChainId)
}

func TestHandlersRejectMalformedMessages(t *testing.T) {
	service := &recordingService{}
	h := handlers.NewQueueHandler(service)
	ctx := context.Background()

	tests := []struct {
		name    string
		handler handlers.MessageHandler
		body    string
	}{
		{"stake invalid json", h.StakeRequestHandler, "{"},
		{"stake wrong event type", h.StakeRequestHandler, marshal(t, client.NewFinalizeRequestEvent("req", "0xu", "base"))},
		{"stake missing request id", h.StakeRequestHandler, marshal(t, client.NewStakeRequestEvent("", types.StakeRequest{}))},
		{"finalize invalid json", h.FinalizeRequestHandler, "[]"},
		{"finalize wrong event type", h.FinalizeRequestHandler, marshal(t, client.NewStakeRequestEvent("req", types.StakeRequest{}))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.handler(ctx, tt.body), handlers.ErrMalformedMessage)
		})
	}
	assert.Empty(t, service.stakes)
	assert.Empty(t, service.finalizes)
}

func TestHandleUnprocessedMessage(t *testing.T) {
	service := &recordingService{}
	h := handlers.NewQueueHandler(service)

	require.NoError(t, h.HandleUnprocessedMessage(context.Background(), "{", "9"))
	assert.Equal(t, []string{"9"}, service.saved)
}
