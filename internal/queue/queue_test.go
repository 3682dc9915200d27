package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/suistake/bridge-saga-service/internal/config"
	"github.com/suistake/bridge-saga-service/internal/queue/client"
	"github.com/suistake/bridge-saga-service/internal/queue/handlers"
	"github.com/suistake/bridge-saga-service/internal/types"
	"github.com/suistake/bridge-saga-service/tests/mocks"
)

const maxRetries int32 = 2

func queueClient(t *testing.T, name string) *mocks.QueueClient {
	c := mocks.NewQueueClient(t)
	c.On("GetQueueName").Return(name).Maybe()
	return c
}

func unprocessable(saved *[]string, err error) handlers.UnprocessableMessageHandler {
	return func(_ context.Context, body, receipt string) error {
		if err != nil {
			return err
		}
		*saved = append(*saved, receipt)
		return nil
	}
}

func process(c client.QueueClient, message client.QueueMessage, handler handlers.MessageHandler, saved *[]string, saveErr error) {
	processMessage(c, message, handler, unprocessable(saved, saveErr), zerolog.Nop(), time.Second, maxRetries)
}

func TestProcessMessageAcksOnSuccess(t *testing.T) {
	c := queueClient(t, client.StakeRequestQueueName)
	c.On("DeleteMessage", "1").Return(nil).Once()

	var deadline bool
	handler := func(ctx context.Context, body string) error {
		_, deadline = ctx.Deadline()
		assert.Equal(t, "{}", body)
		return nil
	}
	var saved []string
	process(c, client.QueueMessage{Body: "{}", Receipt: "1"}, handler, &saved, nil)
	assert.True(t, deadline)
	assert.Empty(t, saved)
}

func TestProcessMessageRequeuesOnFailure(t *testing.T) {
	c := queueClient(t, client.StakeRequestQueueName)
	c.On("RequeueMessage", "2").Return(nil).Once()

	var saved []string
	process(c, client.QueueMessage{Body: "{}", Receipt: "2", RetryAttempts: 1}, func(context.Context, string) error {
		return errors.New("db unavailable")
	}, &saved, nil)
	assert.Empty(t, saved)
}

func TestProcessMessageParksMalformedMessage(t *testing.T) {
	c := queueClient(t, client.StakeRequestQueueName)
	c.On("DeleteMessage", "3").Return(nil).Once()

	var saved []string
	process(c, client.QueueMessage{Body: "not json", Receipt: "3"}, func(context.Context, string) error {
		return handlers.ErrMalformedMessage
	}, &saved, nil)
	assert.Equal(t, []string{"3"}, saved)
}

func TestProcessMessageParksAfterMaxRetries(t *testing.T) {
	c := queueClient(t, client.FinalizeRequestQueueName)
	c.On("DeleteMessage", "4").Return(nil).Once()

	called := false
	var saved []string
	process(c, client.QueueMessage{Body: "{}", Receipt: "4", RetryAttempts: maxRetries + 1}, func(context.Context, string) error {
		called = true
		return nil
	}, &saved, nil)
	assert.False(t, called)
	assert.Equal(t, []string{"4"}, saved)
}

func TestProcessMessageRequeuesWhenParkingFails(t *testing.T) {
	c := queueClient(t, client.FinalizeRequestQueueName)
	c.On("RequeueMessage", "5").Return(nil).Once()

	var saved []string
	process(c, client.QueueMessage{Body: "x", Receipt: "5"}, func(context.Context, string) error {
		return handlers.ErrMalformedMessage
	}, &saved, errors.New("mongo down"))
	assert.Empty(t, saved)
}

func newTestQueues(t *testing.T) (*Queues, *mocks.QueueClient, *mocks.QueueClient, *mocks.QueueClient) {
	stake := queueClient(t, client.StakeRequestQueueName)
	finalize := queueClient(t, client.FinalizeRequestQueueName)
	outcome := queueClient(t, client.SagaOutcomeQueueName)
	q := newQueues(
		config.QueueConfig{QueueProcessingTimeout: 60, MaxRetryAttempts: maxRetries},
		handlers.NewQueueHandler(nil), stake, finalize, outcome,
	)
	return q, stake, finalize, outcome
}

func TestPublishRoutesByQueueName(t *testing.T) {
	q, _, _, outcome := newTestQueues(t)
	event := client.NewStakeOutcomeEvent("req-1", "0xu", &types.StakeResult{Success: true, StakedAmount: "20"})
	outcome.On("SendMessage", mock.Anything, mock.MatchedBy(func(body string) bool {
		var decoded client.SagaOutcomeEvent
		if err := json.Unmarshal([]byte(body), &decoded); err != nil {
			return false
		}
		return decoded.RequestId == "req-1" && decoded.Kind == types.StakeSaga && decoded.StakeResult.StakedAmount == "20"
	})).Return(nil).Once()

	require.NoError(t, q.Publish(context.Background(), client.SagaOutcomeQueueName, event))
	assert.EqualError(t, q.Publish(context.Background(), "nope", event), "unknown queue nope")
}

func TestIsConnectionHealthy(t *testing.T) {
	q, stake, finalize, outcome := newTestQueues(t)
	stake.On("Ping").Return(nil)
	finalize.On("Ping").Return(nil)
	outcome.On("Ping").Return(nil).Once()
	require.NoError(t, q.IsConnectionHealthy())

	outcome.On("Ping").Return(errors.New("rabbitmq channel for saga_outcome_queue is closed")).Once()
	err := q.IsConnectionHealthy()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue saga_outcome_queue")
}

func TestStartAndStopReceivingMessages(t *testing.T) {
	q, stake, finalize, outcome := newTestQueues(t)
	service := &fakeService{processed: make(chan string, 1)}
	q.Handlers = handlers.NewQueueHandler(service)

	stakeMessages := make(chan client.QueueMessage, 1)
	finalizeMessages := make(chan client.QueueMessage)
	stake.On("ReceiveMessages").Return((<-chan client.QueueMessage)(stakeMessages), nil).Once()
	finalize.On("ReceiveMessages").Return((<-chan client.QueueMessage)(finalizeMessages), nil).Once()
	acked := make(chan struct{})
	stake.On("DeleteMessage", "7").Run(func(mock.Arguments) { close(acked) }).Return(nil).Once()

	q.StartReceivingMessages()
	body, err := json.Marshal(client.NewStakeRequestEvent("req-7", types.StakeRequest{UserAddress: "0xu"}))
	require.NoError(t, err)
	stakeMessages <- client.QueueMessage{Body: string(body), Receipt: "7"}

	select {
	case id := <-service.processed:
		assert.Equal(t, "req-7", id)
	case <-time.After(time.Second):
		t.Fatal("stake request was not processed")
	}
	select {
	case <-acked:
	case <-time.After(time.Second):
		t.Fatal("stake request was not acknowledged")
	}

	stake.On("Stop").Return(nil).Once()
	finalize.On("Stop").Return(nil).Once()
	outcome.On("Stop").Return(errors.New("already closed")).Once()
	q.StopReceivingMessages()
	close(stakeMessages)
	close(finalizeMessages)
}

type fakeService struct {
	processed chan string
}

func (f *fakeService) ProcessStakeRequest(_ context.Context, event client.StakeRequestEvent) error {
	f.processed <- event.RequestId
	return nil
}

func (f *fakeService) ProcessFinalizeRequest(_ context.Context, event client.FinalizeRequestEvent) error {
	f.processed <- event.RequestId
	return nil
}

func (f *fakeService) SaveUnprocessableMessages(context.Context, string, string) error {
	return nil
}
