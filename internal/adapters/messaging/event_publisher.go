package messaging

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/ports"
)

// Publish sends one outbox event as a persistent message. The outbox id
// becomes the MessageId so consumers can drop redeliveries.
func (rmq *RabbitMQBroker) Publish(ctx context.Context, evt ports.OutboxEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    evt.ID,
		Type:         evt.Type,
		Timestamp:    evt.CreatedAt,
		Body:         evt.Payload,
	}

	_, err := rmq.cb.Execute(func() (interface{}, error) {
		return nil, rmq.ch.PublishWithContext(
			ctx,
			"",            // default exchange
			rmq.queueName, // routing key == queue name
			false,         // mandatory
			false,         // immediate
			msg,
		)
	})
	return err
}
