package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AssiaOU26/Cars-front/internal/core/ports"
	"github.com/AssiaOU26/Cars-front/internal/logger"
)

const (
	// StorageKey holds the pending events as a JSON array.
	StorageKey = "outbox.assignments"

	eventPublishTimeout     = 10 * time.Second
	periodicProcessInterval = 30 * time.Second
	maxEventsPerBatch       = 100
	maxPendingEvents        = 500
)

type record struct {
	ID       string                `json:"id"`
	Event    ports.AssignmentEvent `json:"event"`
	QueuedAt int64                 `json:"queuedAt"`
	Attempts int                   `json:"attempts"`
}

// Relay is a DispatchNotifier that parks events the broker refused in local
// storage and republishes them later.
type Relay struct {
	store     ports.LocalStorage
	publisher ports.DispatchNotifier
	log       *logger.Logger
	interval  time.Duration
	now       func() time.Time

	mu            sync.Mutex
	lastProcessed time.Time
}

var _ ports.DispatchNotifier = (*Relay)(nil)

func NewRelay(store ports.LocalStorage, publisher ports.DispatchNotifier, log *logger.Logger) *Relay {
	if log == nil {
		log = logger.Discard()
	}
	return &Relay{
		store:         store,
		publisher:     publisher,
		log:           log,
		interval:      periodicProcessInterval,
		now:           time.Now,
		lastProcessed: time.Now(),
	}
}

// NotifyAssigned publishes evt, queueing it when the broker is unavailable.
// Only a failure to queue is reported.
func (r *Relay) NotifyAssigned(ctx context.Context, evt ports.AssignmentEvent) error {
	pubCtx, cancel := context.WithTimeout(ctx, eventPublishTimeout)
	err := r.publisher.NotifyAssigned(pubCtx, evt)
	cancel()
	if err == nil {
		return nil
	}

	r.log.Warnf("outbox: publish for request %s failed, queued: %v", evt.RequestID, err)
	r.mu.Lock()
	defer r.mu.Unlock()

	pending, err := r.load(ctx)
	if err != nil {
		return err
	}
	if len(pending) >= maxPendingEvents {
		r.log.Warnf("outbox: dropping oldest of %d pending events", len(pending))
		pending = pending[1:]
	}
	pending = append(pending, record{
		ID:       uuid.NewString(),
		Event:    evt,
		QueuedAt: r.now().UnixMilli(),
	})
	return r.save(ctx, pending)
}

// Pending returns the number of queued events.
func (r *Relay) Pending(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pending, err := r.load(ctx)
	return len(pending), err
}

func (r *Relay) LastProcessed() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastProcessed
}

// Start flushes the queue on startup and then periodically until ctx is done.
func (r *Relay) Start(ctx context.Context) error {
	if err := r.Flush(ctx); err != nil {
		r.log.Warnf("outbox: startup flush: %v", err)
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.Flush(ctx); err != nil {
				r.log.Warnf("outbox: periodic flush: %v", err)
			}
		}
	}
}

// Flush republishes up to a batch of queued events in order. It stops at the
// first failure so ordering is kept.
func (r *Relay) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending, err := r.load(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		r.lastProcessed = r.now()
		return nil
	}

	sent := 0
	var publishErr error
	for i := range pending {
		if i >= maxEventsPerBatch {
			break
		}
		pubCtx, cancel := context.WithTimeout(ctx, eventPublishTimeout)
		publishErr = r.publisher.NotifyAssigned(pubCtx, pending[i].Event)
		cancel()
		if publishErr != nil {
			pending[i].Attempts++
			break
		}
		r.log.Debugf("outbox: published queued event %s", pending[i].ID)
		sent++
	}

	if err := r.save(ctx, pending[sent:]); err != nil {
		return err
	}
	if sent > 0 {
		r.lastProcessed = r.now()
	}
	if publishErr != nil {
		return fmt.Errorf("publish queued event: %w", publishErr)
	}
	return nil
}

func (r *Relay) load(ctx context.Context) ([]record, error) {
	raw, ok, err := r.store.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read outbox: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var pending []record
	if err := json.Unmarshal([]byte(raw), &pending); err != nil {
		r.log.Warnf("outbox: discarding unreadable queue: %v", err)
		return nil, nil
	}
	return pending, nil
}

func (r *Relay) save(ctx context.Context, pending []record) error {
	if len(pending) == 0 {
		if err := r.store.Remove(ctx, StorageKey); err != nil {
			return fmt.Errorf("clear outbox: %w", err)
		}
		return nil
	}
	payload, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("encode outbox: %w", err)
	}
	if err := r.store.Set(ctx, StorageKey, string(payload)); err != nil {
		return fmt.Errorf("write outbox: %w", err)
	}
	return nil
}
