package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/AssiaOU26/Cars-front/internal/core/ports"
	"github.com/AssiaOU26/Cars-front/internal/logger"
)

// BreakerReporter exposes a circuit breaker's state.
type BreakerReporter interface {
	BreakerState() gobreaker.State
}

// OutboxReporter exposes the backlog of undelivered dispatch events.
type OutboxReporter interface {
	Pending(ctx context.Context) (int, error)
	LastProcessed() time.Time
}

// outboxStaleAfter is how long queued events may sit without any delivery
// before readiness fails.
const outboxStaleAfter = 5 * time.Minute

type HealthHandler struct {
	storage   ports.LocalStorage
	gateway   BreakerReporter
	outbox    OutboxReporter
	log       *logger.Logger
	startTime time.Time
	version   string
}

func NewHealthHandler(storage ports.LocalStorage, gateway BreakerReporter, version string, log *logger.Logger) *HealthHandler {
	if version == "" {
		version = "unknown"
	}
	if log == nil {
		log = logger.Discard()
	}
	return &HealthHandler{
		storage:   storage,
		gateway:   gateway,
		log:       log,
		startTime: time.Now(),
		version:   version,
	}
}

// WithOutbox adds the dispatch outbox to the readiness checks.
func (h *HealthHandler) WithOutbox(o OutboxReporter) *HealthHandler {
	h.outbox = o
	return h
}

// HealthResponse follows Kubernetes/OpenShift health check conventions
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health is a simple liveness check - just confirms the process is running
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    map[string]Check{"process": {Status: "UP"}},
	})
}

// Ready reports whether local storage answers, the backend breaker is closed
// and, when dispatch is enabled, the outbox is draining.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Check{
		"storage": h.checkStorage(r.Context()),
		"backend": h.checkBackend(),
	}
	if h.outbox != nil {
		checks["outbox"] = h.checkOutbox(r.Context())
	}

	status := "UP"
	httpStatus := http.StatusOK
	for _, c := range checks {
		if c.Status != "UP" {
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		}
	}

	h.writeJSON(w, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    checks,
	})
}

// Live is an alias for Health - simple liveness check
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}

func (h *HealthHandler) checkStorage(ctx context.Context) Check {
	if h.storage == nil {
		return Check{Status: "DOWN", Message: "Storage is not initialized"}
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		return Check{Status: "DOWN", Message: "Cannot reach local storage"}
	}
	return Check{Status: "UP"}
}

func (h *HealthHandler) checkBackend() Check {
	if h.gateway == nil {
		return Check{Status: "DOWN", Message: "Gateway is not initialized"}
	}
	switch state := h.gateway.BreakerState(); state {
	case gobreaker.StateClosed:
		return Check{Status: "UP"}
	case gobreaker.StateHalfOpen:
		return Check{Status: "UP", Message: "Backend circuit is half-open"}
	default:
		return Check{Status: "DOWN", Message: "Backend circuit is " + state.String()}
	}
}

func (h *HealthHandler) checkOutbox(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pending, err := h.outbox.Pending(ctx)
	if err != nil {
		return Check{Status: "DOWN", Message: "Cannot read dispatch outbox"}
	}
	if pending == 0 {
		return Check{Status: "UP"}
	}
	idle := time.Since(h.outbox.LastProcessed())
	msg := fmt.Sprintf("%d queued, last delivery %s ago", pending, idle.Round(time.Second))
	if idle > outboxStaleAfter {
		return Check{Status: "DOWN", Message: msg}
	}
	return Check{Status: "UP", Message: msg}
}

func (h *HealthHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Errorf("status: encode response: %v", err)
	}
}
