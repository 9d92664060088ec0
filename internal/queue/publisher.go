package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher publishes email events to RabbitMQ.  A fresh connection is
// dialed per publish so a broker restart never wedges the API process;
// publish volume here is one message per signup or password reset, far
// below the point where connection reuse would matter.  Errors are
// logged and returned so callers can ignore failures without
// interrupting the main request flow.
type Publisher struct {
	url string
}

// NewPublisher creates a publisher for the given AMQP URL.
func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

// PublishEmail publishes an EmailEvent to the email.send queue.
// Messages are marked persistent and the queue is declared durable so
// pending mail survives broker restarts.
func (p *Publisher) PublishEmail(ctx context.Context, event EmailEvent) error {
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

	// Ensure the queue exists (idempotent).
	if _, err := ch.QueueDeclare(
		EmailQueue, // name
		true,       // durable
		false,      // autoDelete
		false,      // exclusive
		false,      // noWait
		nil,        // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",         // default exchange
		EmailQueue, // routing key = queue name
		false,      // mandatory
		false,      // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
