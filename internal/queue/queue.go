package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/suistake/bridge-saga-service/internal/config"
	"github.com/suistake/bridge-saga-service/internal/observability/metrics"
	"github.com/suistake/bridge-saga-service/internal/queue/client"
	"github.com/suistake/bridge-saga-service/internal/queue/handlers"
	"github.com/suistake/bridge-saga-service/internal/services"
)

type Queues struct {
	StakeRequestQueueClient    client.QueueClient
	FinalizeRequestQueueClient client.QueueClient
	SagaOutcomeQueueClient     client.QueueClient
	Handlers                   *handlers.QueueHandler
	processingTimeout          time.Duration
	maxRetryAttempts           int32
}

func New(cfg config.QueueConfig, service *services.Services) *Queues {
	stakeRequestQueueClient, err := client.NewQueueClient(
		cfg.Url, cfg.QueueUser, cfg.QueuePassword, client.StakeRequestQueueName,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating StakeRequestQueueClient")
	}
	finalizeRequestQueueClient, err := client.NewQueueClient(
		cfg.Url, cfg.QueueUser, cfg.QueuePassword, client.FinalizeRequestQueueName,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating FinalizeRequestQueueClient")
	}
	sagaOutcomeQueueClient, err := client.NewQueueClient(
		cfg.Url, cfg.QueueUser, cfg.QueuePassword, client.SagaOutcomeQueueName,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating SagaOutcomeQueueClient")
	}
	return newQueues(
		cfg, handlers.NewQueueHandler(service),
		stakeRequestQueueClient, finalizeRequestQueueClient, sagaOutcomeQueueClient,
	)
}

func newQueues(
	cfg config.QueueConfig, queueHandler *handlers.QueueHandler,
	stakeRequests, finalizeRequests, sagaOutcomes client.QueueClient,
) *Queues {
	return &Queues{
		StakeRequestQueueClient:    stakeRequests,
		FinalizeRequestQueueClient: finalizeRequests,
		SagaOutcomeQueueClient:     sagaOutcomes,
		Handlers:                   queueHandler,
		processingTimeout:          time.Duration(cfg.QueueProcessingTimeout) * time.Second,
		maxRetryAttempts:           cfg.MaxRetryAttempts,
	}
}

// Start all message processing
func (q *Queues) StartReceivingMessages() {
	startQueueMessageProcessing(
		q.StakeRequestQueueClient, q.Handlers.StakeRequestHandler, q.Handlers.HandleUnprocessedMessage,
		log.Logger, q.processingTimeout, q.maxRetryAttempts,
	)
	startQueueMessageProcessing(
		q.FinalizeRequestQueueClient, q.Handlers.FinalizeRequestHandler, q.Handlers.HandleUnprocessedMessage,
		log.Logger, q.processingTimeout, q.maxRetryAttempts,
	)
}

// Turn off all message processing
func (q *Queues) StopReceivingMessages() {
	for _, c := range q.clients() {
		if err := c.Stop(); err != nil {
			log.Error().Err(err).Str("queueName", c.GetQueueName()).Msg("error while stopping queue client")
		}
	}
}

// Publish sends event as JSON to the queue named queueName.
func (q *Queues) Publish(ctx context.Context, queueName string, event any) error {
	var target client.QueueClient
	for _, c := range q.clients() {
		if c.GetQueueName() == queueName {
			target = c
			break
		}
	}
	if target == nil {
		return fmt.Errorf("unknown queue %s", queueName)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event for %s: %w", queueName, err)
	}
	return target.SendMessage(ctx, string(body))
}

// IsConnectionHealthy pings every queue client.
func (q *Queues) IsConnectionHealthy() error {
	var errs []error
	for _, c := range q.clients() {
		if err := c.Ping(); err != nil {
			errs = append(errs, fmt.Errorf("queue %s: %w", c.GetQueueName(), err))
		}
	}
	return errors.Join(errs...)
}

func (q *Queues) clients() []client.QueueClient {
	return []client.QueueClient{
		q.StakeRequestQueueClient,
		q.FinalizeRequestQueueClient,
		q.SagaOutcomeQueueClient,
	}
}

func startQueueMessageProcessing(
	queueClient client.QueueClient,
	handler handlers.MessageHandler, unprocessableHandler handlers.UnprocessableMessageHandler,
	logger zerolog.Logger, timeout time.Duration, maxRetryAttempts int32,
) {
	messagesChan, err := queueClient.ReceiveMessages()
	if err != nil {
		logger.Fatal().Err(err).Str("queueName", queueClient.GetQueueName()).Msg("error setting up message channel from queue")
	}

	go func() {
		for message := range messagesChan {
			processMessage(queueClient, message, handler, unprocessableHandler, logger, timeout, maxRetryAttempts)
		}
	}()
}

func processMessage(
	queueClient client.QueueClient, message client.QueueMessage,
	handler handlers.MessageHandler, unprocessableHandler handlers.UnprocessableMessageHandler,
	logger zerolog.Logger, timeout time.Duration, maxRetryAttempts int32,
) {
	queueName := queueClient.GetQueueName()
	logger = logger.With().Str("queueName", queueName).Str("receipt", message.Receipt).Logger()
	// For each message, create a new context with a deadline or timeout
	ctx, cancel := context.WithTimeout(logger.WithContext(context.Background()), timeout)
	defer cancel()

	if message.RetryAttempts > maxRetryAttempts {
		logger.Warn().Int32("retryAttempts", message.RetryAttempts).Msg("message exceeded max retry attempts")
		park(ctx, queueClient, message, unprocessableHandler, logger)
		return
	}

	err := handler(ctx, message.Body)
	switch {
	case err == nil:
		metrics.RecordQueueMessage(queueName, metrics.Success)
		deleteMessage(queueClient, message, logger)
	case errors.Is(err, handlers.ErrMalformedMessage):
		logger.Error().Err(err).Msg("unprocessable message received from queue")
		park(ctx, queueClient, message, unprocessableHandler, logger)
	default:
		outcome := metrics.Error
		if errors.Is(err, context.DeadlineExceeded) {
			outcome = metrics.Timeout
		}
		metrics.RecordQueueMessage(queueName, outcome)
		logger.Error().Err(err).Msg("error while processing message from queue")
		if requeueErr := queueClient.RequeueMessage(message.Receipt); requeueErr != nil {
			logger.Error().Err(requeueErr).Msg("error while requeueing message")
		}
	}
}

func park(
	ctx context.Context, queueClient client.QueueClient, message client.QueueMessage,
	unprocessableHandler handlers.UnprocessableMessageHandler, logger zerolog.Logger,
) {
	metrics.RecordQueueMessage(queueClient.GetQueueName(), metrics.Error)
	if err := unprocessableHandler(ctx, message.Body, message.Receipt); err != nil {
		logger.Error().Err(err).Msg("error while saving unprocessable message")
		if requeueErr := queueClient.RequeueMessage(message.Receipt); requeueErr != nil {
			logger.Error().Err(requeueErr).Msg("error while requeueing message")
		}
		return
	}
	deleteMessage(queueClient, message, logger)
}

func deleteMessage(queueClient client.QueueClient, message client.QueueMessage, logger zerolog.Logger) {
	if err := queueClient.DeleteMessage(message.Receipt); err != nil {
		logger.Error().Err(err).Msg("error while deleting message from queue")
	}
}
