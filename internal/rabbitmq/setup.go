package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// QueueConfig binds a durable queue to a routing key.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// QueuesFor returns one queue per routing key, named exchange.key.
func QueuesFor(exchange string, keys ...string) []QueueConfig {
	queues := make([]QueueConfig, 0, len(keys))
	for _, key := range keys {
		queues = append(queues, QueueConfig{QueueName: exchange + "." + key, RoutingKey: key})
	}
	return queues
}

// SetupChannel opens a channel, declares the direct exchange and binds queues to it.
func SetupChannel(conn *amqp.Connection, exchange string, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			q.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
		}

		err = ch.QueueBind(q.QueueName, q.RoutingKey, exchange, false, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.QueueName, q.RoutingKey, err)
		}
	}

	return ch, nil
}
