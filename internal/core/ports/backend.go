package ports

import (
	"context"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
)

// Backend is the REST surface the dashboards and forms talk to.
type Backend interface {
	FetchRequests(ctx context.Context, filter domain.RequestFilter) ([]domain.ServiceRequest, error)
	CreateRequest(ctx context.Context, req domain.NewRequest) (*domain.ServiceRequest, error)
	CreateRequestMultipart(ctx context.Context, req domain.NewRequest, photo *domain.Photo) (*domain.ServiceRequest, error)
	UpdateRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus) error
	DeleteRequest(ctx context.Context, requestID string) error

	FetchContacts(ctx context.Context) ([]domain.Contact, error)
	CreateContact(ctx context.Context, in domain.ContactInput) (*domain.Contact, error)
	UpdateContact(ctx context.Context, contactID string, in domain.ContactInput) (*domain.Contact, error)
	DeleteContact(ctx context.Context, contactID string) error

	FetchUsers(ctx context.Context) ([]domain.Account, error)
	UpdateUserStatus(ctx context.Context, userID string, status domain.AccountStatus) (string, error)
	UpdateUserRole(ctx context.Context, userID string, role domain.Role) (string, error)

	FetchAssignments(ctx context.Context) ([]domain.Assignment, error)
	SubmitAssignment(ctx context.Context, a domain.Assignment) (*domain.Assignment, error)

	Login(ctx context.Context, creds domain.Credentials) (string, error)
	Register(ctx context.Context, reg domain.Registration) (RegisterResult, error)
	FetchMe(ctx context.Context) (*domain.Account, error)
	FetchOverviewStats(ctx context.Context) (domain.OverviewStats, error)
}

// RegisterResult carries the server message and, when the backend returns
// it, the id of the new account.
type RegisterResult struct {
	Message string    `json:"message"`
	UserID  domain.ID `json:"id,omitempty"`
}
