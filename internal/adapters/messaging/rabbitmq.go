package messaging

import (
	"context"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"

	"github.com/AssiaOU26/Cars-front/internal/config"
	"github.com/AssiaOU26/Cars-front/internal/core/ports"
)

var ErrBrokerClosed = errors.New("dispatch broker is closed")

// amqpChannel is the part of *amqp.Channel the publisher needs.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// DispatchBroker implements ports.DispatchNotifier using RabbitMQ.
type DispatchBroker struct {
	conn      *amqp.Connection
	ch        amqpChannel
	queueName string
	cb        *gobreaker.CircuitBreaker
}

var _ ports.DispatchNotifier = (*DispatchBroker)(nil)

func NewDispatchBroker(cfg config.DispatchConfig) (*DispatchBroker, error) {
	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	// Declare the queue (idempotent)
	_, err = ch.QueueDeclare(
		cfg.QueueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	broker := newDispatchBroker(ch, cfg.QueueName)
	broker.conn = conn
	return broker, nil
}

func newDispatchBroker(ch amqpChannel, queueName string) *DispatchBroker {
	return &DispatchBroker{
		ch:        ch,
		queueName: queueName,
		cb:        config.NewCircuitBreaker(config.BreakerDispatch, nil),
	}
}

func (b *DispatchBroker) Close() error {
	if b.ch != nil {
		if err := b.ch.Close(); err != nil {
			return err
		}
		b.ch = nil
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
