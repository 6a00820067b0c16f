// Package events publishes data store changes as notifications.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/AMULYA007-hub/campus-hire/internal/lib/sl"
	"github.com/AMULYA007-hub/campus-hire/internal/metrics"
	"github.com/AMULYA007-hub/campus-hire/internal/rabbitmq"
)

// Routing keys.
const (
	JobCreated               = "job.created"
	ApplicationCreated       = "application.created"
	ApplicationStatusChanged = "application.status_changed"
	PlacementCreated         = "placement.created"
	AccountRegistered        = "account.registered"
)

// Keys lists every routing key in publishing order.
func Keys() []string {
	return []string{JobCreated, ApplicationCreated, ApplicationStatusChanged, PlacementCreated, AccountRegistered}
}

// Event is the message body.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// Publisher sends events. Publish never fails the caller.
type Publisher interface {
	Publish(ctx context.Context, key string, data any)
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) {}

// AMQP publishes events to a RabbitMQ exchange.
type AMQP struct {
	log      *slog.Logger
	ch       rabbitmq.Channel
	exchange string
	now      func() time.Time
}

// NewAMQP creates a publisher writing to exchange over ch.
func NewAMQP(log *slog.Logger, ch rabbitmq.Channel, exchange string) *AMQP {
	return &AMQP{
		log:      log,
		ch:       ch,
		exchange: exchange,
		now:      time.Now,
	}
}

// Publish sends data under key. Failures are logged and counted.
func (p *AMQP) Publish(ctx context.Context, key string, data any) {
	const op = "events.AMQP.Publish"

	evt := Event{Type: key, OccurredAt: p.now().UTC(), Data: data}
	if err := rabbitmq.PublishMessage(p.ch, p.exchange, key, evt); err != nil {
		metrics.EventsPublished.WithLabelValues(key, metrics.OutcomeError).Inc()
		p.log.ErrorContext(ctx, "failed to publish event",
			slog.String("op", op),
			slog.String("routing_key", key),
			sl.Err(err),
		)
		return
	}
	metrics.EventsPublished.WithLabelValues(key, metrics.OutcomeSuccess).Inc()
}
