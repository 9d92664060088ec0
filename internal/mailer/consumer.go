package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/blog-auth-api/internal/queue"
)

// Consumer drains the email.send queue and hands each event to the
// Sender.  Delivery is at-most-once from the user's point of view: a
// send failure is logged and the message acked anyway, matching the
// fire-and-forget contract of the signup and reset flows.  The store
// records behind the links already exist, so the user can retrigger the
// email by restarting the flow.
type Consumer struct {
	url    string
	sender *Sender
}

// NewConsumer creates a consumer for the given AMQP URL.
func NewConsumer(url string, sender *Sender) *Consumer {
	return &Consumer{url: url, sender: sender}
}

// Run consumes events until the context is cancelled or the broker
// connection drops.  The caller decides whether to reconnect.
func (c *Consumer) Run(ctx context.Context) error {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Same durable declaration as the publisher; whichever side starts
	// first creates the queue.
	if _, err := ch.QueueDeclare(queue.EmailQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	// One unacked message at a time; SMTP is the bottleneck anyway.
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, queue.EmailQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for d := range deliveries {
		var event queue.EmailEvent
		if err := json.Unmarshal(d.Body, &event); err != nil {
			log.Printf("mailer: drop malformed event: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		if err := c.sender.Send(event); err != nil {
			log.Printf("mailer: send %s mail to %s failed: %v", event.Kind, event.Email, err)
		} else {
			log.Printf("mailer: sent %s mail to %s", event.Kind, event.Email)
		}
		_ = d.Ack(false)
	}
	return ctx.Err()
}
