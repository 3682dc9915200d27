package client

import (
	"context"
)

type QueueMessage struct {
	Body    string
	Receipt string
	// Number of times the broker delivered this message before.
	RetryAttempts int32
}

// A common interface for queue clients regardless if it's a SQS, RabbitMQ, etc.
type QueueClient interface {
	SendMessage(ctx context.Context, messageBody string) error
	ReceiveMessages() (<-chan QueueMessage, error)
	DeleteMessage(receipt string) error
	// RequeueMessage hands the delivery back to the broker for redelivery.
	RequeueMessage(receipt string) error
	Stop() error
	GetQueueName() string
	Ping() error
}

func NewQueueClient(url, user, pass, queueName string) (QueueClient, error) {
	return NewRabbitMqClient(url, user, pass, queueName)
}
