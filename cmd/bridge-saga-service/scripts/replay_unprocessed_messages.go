package scripts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/suistake/bridge-saga-service/internal/db"
	"github.com/suistake/bridge-saga-service/internal/queue"
	queueClient "github.com/suistake/bridge-saga-service/internal/queue/client"
)

type GenericEvent struct {
	EventType queueClient.EventType `json:"event_type"`
}

// ReplayUnprocessableMessages sends every parked request back to its queue.
// Replayed messages are removed from the store only once re-enqueued.
func ReplayUnprocessableMessages(ctx context.Context, queues *queue.Queues, dbClient db.DBClient) error {
	unprocessableMessages, err := dbClient.FindUnprocessableMessages(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve unprocessable messages: %w", err)
	}

	messageCount := len(unprocessableMessages)
	log.Info().Int("count", messageCount).Msg("Found unprocessable messages")
	if messageCount == 0 {
		return errors.New("no unprocessable messages to replay")
	}

	for _, msg := range unprocessableMessages {
		var genericEvent GenericEvent
		if err := json.Unmarshal([]byte(msg.MessageBody), &genericEvent); err != nil {
			return fmt.Errorf("failed to unmarshal event message %s: %w", msg.Receipt, err)
		}

		if err := processEventMessage(ctx, queues, genericEvent, msg.MessageBody); err != nil {
			return fmt.Errorf("failed to replay message %s: %w", msg.Receipt, err)
		}

		if err := dbClient.DeleteUnprocessableMessage(ctx, msg.Id); err != nil {
			return fmt.Errorf("failed to delete unprocessable message %s: %w", msg.Receipt, err)
		}
	}

	log.Info().Msg("Reprocessing of unprocessable messages completed.")
	return nil
}

func processEventMessage(ctx context.Context, queues *queue.Queues, event GenericEvent, messageBody string) error {
	switch event.EventType {
	case queueClient.StakeRequestEventType:
		return queues.StakeRequestQueueClient.SendMessage(ctx, messageBody)
	case queueClient.FinalizeRequestEventType:
		return queues.FinalizeRequestQueueClient.SendMessage(ctx, messageBody)
	default:
		return fmt.Errorf("unknown event type: %v", event.EventType)
	}
}
