package mocks

import (
	"sync"

	"github.com/AssiaOU26/Cars-front/internal/core/ports"
)

// MockToaster records toasts instead of printing them.
type MockToaster struct {
	mu        sync.RWMutex
	successes []string
	errors    []string
}

var _ ports.Toaster = (*MockToaster)(nil)

func NewMockToaster() *MockToaster {
	return &MockToaster{}
}

func (m *MockToaster) Success(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.successes = append(m.successes, msg)
}

func (m *MockToaster) Error(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

func (m *MockToaster) Successes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.successes...)
}

func (m *MockToaster) Errors() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.errors...)
}

// LastError returns the most recent error toast, or "".
func (m *MockToaster) LastError() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.errors) == 0 {
		return ""
	}
	return m.errors[len(m.errors)-1]
}
