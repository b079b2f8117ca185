package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Aleph-Alpha/open-mds/pkg/runs"
)

// RoutingKey returns the key a run event is published under.
func (rb *Rabbit) RoutingKey(perturbation string) string {
	return rb.cfg.Channel.RoutingKeyPrefix + "." + perturbation
}

// PublishRun publishes a persistent JSON event and waits for the broker to confirm it.
func (rb *Rabbit) PublishRun(ctx context.Context, event runs.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding run event: %w", err)
	}
	return rb.Publish(ctx, rb.RoutingKey(event.Perturbation), body)
}

// Publish sends body to the events exchange and waits for the broker ack.
func (rb *Rabbit) Publish(ctx context.Context, routingKey string, body []byte) error {
	rb.mu.Lock()
	confirm, err := rb.Channel.PublishWithDeferredConfirmWithContext(ctx,
		rb.cfg.Channel.ExchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	rb.mu.Unlock()
	if err != nil {
		rb.logger.Error("error in publishing msg into rabbit", err, map[string]interface{}{"routing_key": routingKey})
		return err
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return fmt.Errorf("rabbit: broker nacked message for %s", routingKey)
	}
	return nil
}
