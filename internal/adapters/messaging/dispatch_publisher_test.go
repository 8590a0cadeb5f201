package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AssiaOU26/Cars-front/internal/core/ports"
)

type fakeChannel struct {
	mu        sync.Mutex
	published []amqp.Publishing
	keys      []string
	err       error
	closed    bool
}

func (c *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.keys = append(c.keys, key)
	c.published = append(c.published, msg)
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func TestDispatchBroker_PublishesJSON(t *testing.T) {
	ch := &fakeChannel{}
	b := newDispatchBroker(ch, "dispatch.assignments")

	evt := ports.AssignmentEvent{RequestID: "12", OperatorID: "c1", AssignedBy: "2", Status: "Assigned"}
	require.NoError(t, b.NotifyAssigned(context.Background(), evt))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "dispatch.assignments", ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "request.assigned", msg.Type)

	var got ports.AssignmentEvent
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, evt, got)
}

func TestDispatchBroker_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	b := newDispatchBroker(ch, "q")

	err := b.NotifyAssigned(context.Background(), ports.AssignmentEvent{RequestID: "1"})

	assert.EqualError(t, err, "channel closed")
}

func TestDispatchBroker_ExpiredContext(t *testing.T) {
	ch := &fakeChannel{}
	b := newDispatchBroker(ch, "q")
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	err := b.NotifyAssigned(ctx, ports.AssignmentEvent{RequestID: "1"})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, ch.published)
}

func TestDispatchBroker_Closed(t *testing.T) {
	ch := &fakeChannel{}
	b := newDispatchBroker(ch, "q")

	require.NoError(t, b.Close())
	assert.True(t, ch.closed)
	assert.ErrorIs(t, b.NotifyAssigned(context.Background(), ports.AssignmentEvent{}), ErrBrokerClosed)
}
