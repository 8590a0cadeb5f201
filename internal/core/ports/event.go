package ports

import (
	"context"
)

type AssignmentEvent struct {
	RequestID  string `json:"request_id"`
	OperatorID string `json:"operator_id,omitempty"`
	AssigneeID string `json:"assignee_id,omitempty"`
	AssignedBy string `json:"assigned_by,omitempty"`
	Status     string `json:"status"`
	Notes      string `json:"notes,omitempty"`
}

type DispatchNotifier interface {
	NotifyAssigned(ctx context.Context, evt AssignmentEvent) error
}

// NopNotifier is used when no broker is configured.
type NopNotifier struct{}

func (NopNotifier) NotifyAssigned(context.Context, AssignmentEvent) error { return nil }
