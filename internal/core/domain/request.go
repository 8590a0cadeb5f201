package domain

import "time"

type RequestStatus string

const (
	StatusSubmitted  RequestStatus = "Submitted"
	StatusInProgress RequestStatus = "In Progress"
	StatusCompleted  RequestStatus = "Completed"
)

var requestStatuses = []RequestStatus{StatusSubmitted, StatusInProgress, StatusCompleted}

func RequestStatuses() []RequestStatus {
	out := make([]RequestStatus, len(requestStatuses))
	copy(out, requestStatuses)
	return out
}

func (s RequestStatus) Valid() bool {
	for _, known := range requestStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ServiceRequest is a roadside assistance request. UserInfo is the free-text
// customer block; see ParseCustomerInfo for its positional layout.
type ServiceRequest struct {
	ID          ID            `json:"id"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	UserInfo    string        `json:"userInfo"`
	Status      RequestStatus `json:"status"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	CreatedAt   *time.Time    `json:"createdAt,omitempty"`

	// Populated by the backend when the request has an assignment.
	ContactName string `json:"contactName,omitempty"`
	UserName    string `json:"userName,omitempty"`
}

func (r ServiceRequest) IsCompleted() bool {
	return r.Status == StatusCompleted
}

func (r ServiceRequest) IsAssigned() bool {
	return r.ContactName != ""
}

// NewRequest is the JSON body for POST /api/requests.
type NewRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	UserInfo    string  `json:"userInfo"`
	ImageURL    *string `json:"imageUrl"`
}

// Photo is an image attached to a request submission.
type Photo struct {
	Filename    string
	ContentType string
	Data        []byte
}

type RequestFilter struct {
	Status RequestStatus
	Query  string
	Limit  int
	Offset int
}
