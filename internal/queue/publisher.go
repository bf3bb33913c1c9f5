package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

const entryQueueName = "catalog.entry.changed"

// Publisher publishes entry change events to RabbitMQ.  Errors are logged
// and returned so callers can ignore failures without interrupting the main
// request flow; a broken broker never fails a CRUD request.
type Publisher struct {
	url string
}

// NewPublisher returns a Publisher for the given broker URL, or nil when the
// URL is empty.  A nil Publisher is valid to pass around: handlers check for
// nil and skip publishing.
func NewPublisher(url string) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url}
}

// PublishEntryChanged publishes an EntryChangedEvent to the
// catalog.entry.changed queue.  Each publish uses a short-lived connection
// so a broker restart between requests needs no reconnect handling here.
// Messages are marked persistent.
func (p *Publisher) PublishEntryChanged(ctx context.Context, event EntryChangedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		entryQueueName, // name
		true,           // durable
		false,          // autoDelete
		false,          // exclusive
		false,          // noWait
		nil,            // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	if err := ch.PublishWithContext(ctx,
		"",             // default exchange
		entryQueueName, // routing key = queue name
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
