package mocks

import (
	"context"
	"sync"

	"github.com/AssiaOU26/Cars-front/internal/core/ports"
)

// MockDispatchNotifier implements ports.DispatchNotifier for testing.
// It stands in for the RabbitMQ broker so assignment flows can be tested
// without a running broker.
type MockDispatchNotifier struct {
	mu sync.RWMutex

	// Track published events for verification
	Events []ports.AssignmentEvent

	// Error injection for testing error scenarios
	NotifyError error

	// Track number of calls
	NotifyCallCount int
}

var _ ports.DispatchNotifier = (*MockDispatchNotifier)(nil)

func NewMockDispatchNotifier() *MockDispatchNotifier {
	return &MockDispatchNotifier{Events: make([]ports.AssignmentEvent, 0)}
}

func (m *MockDispatchNotifier) NotifyAssigned(_ context.Context, evt ports.AssignmentEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.NotifyCallCount++
	if m.NotifyError != nil {
		return m.NotifyError
	}
	m.Events = append(m.Events, evt)
	return nil
}

// GetEvents returns a copy of the published events.
func (m *MockDispatchNotifier) GetEvents() []ports.AssignmentEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]ports.AssignmentEvent, len(m.Events))
	copy(events, m.Events)
	return events
}
