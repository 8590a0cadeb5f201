package domain

import "time"

type AssignmentStatus string

const (
	AssignmentAssigned   AssignmentStatus = "assigned"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentCompleted  AssignmentStatus = "completed"
)

func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentAssigned, AssignmentInProgress, AssignmentCompleted:
		return true
	}
	return false
}

// Assignment links a request, an operator and the staff member involved.
// The client never edits one; a new assignment supersedes the old.
type Assignment struct {
	ID         ID               `json:"id,omitempty"`
	RequestID  ID               `json:"requestId"`
	OperatorID ID               `json:"operatorId,omitempty"`
	UserID     ID               `json:"userId,omitempty"`
	Status     AssignmentStatus `json:"status"`
	Notes      string           `json:"notes,omitempty"`
	CreatedAt  *time.Time       `json:"createdAt,omitempty"`
}
