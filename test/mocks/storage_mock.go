package mocks

import (
	"context"
	"sync"

	"github.com/AssiaOU26/Cars-front/internal/core/ports"
)

// MockLocalStorage implements ports.LocalStorage in memory.
type MockLocalStorage struct {
	mu   sync.RWMutex
	data map[string]string

	// Error injection
	GetError    error
	SetError    error
	RemoveError error
	PingError   error
}

var _ ports.LocalStorage = (*MockLocalStorage)(nil)

func NewMockLocalStorage() *MockLocalStorage {
	return &MockLocalStorage{data: make(map[string]string)}
}

// Seed stores a value without going through Set.
func (m *MockLocalStorage) Seed(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Value returns the stored value for assertions.
func (m *MockLocalStorage) Value(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MockLocalStorage) Get(_ context.Context, key string) (string, bool, error) {
	if m.GetError != nil {
		return "", false, m.GetError
	}
	v, ok := m.Value(key)
	return v, ok, nil
}

func (m *MockLocalStorage) Set(_ context.Context, key, value string) error {
	if m.SetError != nil {
		return m.SetError
	}
	m.Seed(key, value)
	return nil
}

func (m *MockLocalStorage) Remove(_ context.Context, key string) error {
	if m.RemoveError != nil {
		return m.RemoveError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockLocalStorage) Ping(context.Context) error {
	return m.PingError
}
