package messaging

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/AssiaOU26/Cars-front/internal/core/ports"
)

func (b *DispatchBroker) NotifyAssigned(ctx context.Context, evt ports.AssignmentEvent) error {
	if b.ch == nil {
		return ErrBrokerClosed
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	// Respect context deadline
	if deadline, ok := ctx.Deadline(); ok {
		if time.Until(deadline) <= 0 {
			return ctx.Err()
		}
	}

	_, err = b.cb.Execute(func() (interface{}, error) {
		err := b.ch.PublishWithContext(
			ctx,
			"",          // exchange (default)
			b.queueName, // routing key == queue name
			false,       // mandatory
			false,       // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Timestamp:    time.Now().UTC(),
				Type:         "request.assigned",
				Body:         body,
			},
		)
		return nil, err
	})
	return err
}
