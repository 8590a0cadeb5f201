package config

import (
	"log"
	"time"

	"github.com/sony/gobreaker"
)

const (
	BreakerBackendAPI = "Backend-API"
	BreakerRedis      = "Redis-Storage"
	BreakerDispatch   = "RabbitMQ-Dispatch"
)

// NewCircuitBreaker creates a circuit breaker with standard settings.
// isSuccessful may be nil, in which case every non-nil error counts as a failure.
func NewCircuitBreaker(name string, isSuccessful func(err error) bool) *gobreaker.CircuitBreaker {
	var timeout time.Duration

	switch name {
	case BreakerRedis:
		timeout = time.Second * 5
	case BreakerBackendAPI:
		timeout = time.Second * 10
	default:
		timeout = time.Second * 30
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Second * 10,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Open circuit after 3 consecutive failures
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[CRITICAL] Circuit Breaker %s: %s -> %s", name, from, to)
		},
		IsSuccessful: isSuccessful,
	})
}
