package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// set by quorum queues on redelivery
	deliveryCountHeader = "x-delivery-count"
	defaultPrefetch     = 1
	jsonContentType     = "application/json"
)

type RabbitMqClient struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string

	mu       sync.Mutex
	stopped  bool
	messages chan QueueMessage
}

func NewRabbitMqClient(url, user, pass, queueName string) (*RabbitMqClient, error) {
	amqpURI := fmt.Sprintf("amqp://%s:%s@%s", user, pass, url)

	conn, err := amqp.Dial(amqpURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	// Sagas are long, one unacknowledged message per consumer at a time.
	if err := ch.Qos(defaultPrefetch, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set qos: %w", err)
	}
	if _, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		amqp.Table{"x-queue-type": "quorum"},
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	return &RabbitMqClient{
		connection: conn,
		channel:    ch,
		queueName:  queueName,
	}, nil
}

func (c *RabbitMqClient) ReceiveMessages() (<-chan QueueMessage, error) {
	deliveries, err := c.channel.Consume(
		c.queueName,
		"",    // consumer
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to consume from %s: %w", c.queueName, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.messages != nil {
		return nil, errors.New("already receiving messages")
	}
	c.messages = make(chan QueueMessage)
	go func() {
		defer close(c.messages)
		for d := range deliveries {
			c.messages <- QueueMessage{
				Body:          string(d.Body),
				Receipt:       strconv.FormatUint(d.DeliveryTag, 10),
				RetryAttempts: retryAttempts(d),
			}
		}
	}()
	return c.messages, nil
}

func retryAttempts(d amqp.Delivery) int32 {
	if count, ok := d.Headers[deliveryCountHeader]; ok {
		switch v := count.(type) {
		case int64:
			return int32(v)
		case int32:
			return v
		}
	}
	if d.Redelivered {
		return 1
	}
	return 0
}

// DeleteMessage acknowledges the delivery identified by receipt.
func (c *RabbitMqClient) DeleteMessage(receipt string) error {
	tag, err := strconv.ParseUint(receipt, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid receipt %q: %w", receipt, err)
	}
	return c.channel.Ack(tag, false)
}

func (c *RabbitMqClient) RequeueMessage(receipt string) error {
	tag, err := strconv.ParseUint(receipt, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid receipt %q: %w", receipt, err)
	}
	return c.channel.Nack(tag, false, true)
}

func (c *RabbitMqClient) SendMessage(ctx context.Context, messageBody string) error {
	return c.channel.PublishWithContext(
		ctx,
		"",          // exchange
		c.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  jsonContentType,
			DeliveryMode: amqp.Persistent,
			Body:         []byte(messageBody),
		},
	)
}

func (c *RabbitMqClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return nil
	}
	c.stopped = true
	if err := c.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	if err := c.connection.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	return nil
}

func (c *RabbitMqClient) GetQueueName() string {
	return c.queueName
}

func (c *RabbitMqClient) Ping() error {
	if c.connection.IsClosed() {
		return fmt.Errorf("rabbitmq connection for %s is closed", c.queueName)
	}
	if c.channel.IsClosed() {
		return fmt.Errorf("rabbitmq channel for %s is closed", c.queueName)
	}
	return nil
}
