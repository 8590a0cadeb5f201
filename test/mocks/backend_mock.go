// Package mocks provides mock implementations of port interfaces for testing.
// In hexagonal architecture, ports define the contracts between the core domain
// and external adapters. Mocks implement these interfaces to enable isolated testing.
package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/core/ports"
)

// Operation names used for call tracking and error injection.
const (
	OpFetchRequests          = "FetchRequests"
	OpCreateRequest          = "CreateRequest"
	OpCreateRequestMultipart = "CreateRequestMultipart"
	OpUpdateRequestStatus    = "UpdateRequestStatus"
	OpDeleteRequest          = "DeleteRequest"
	OpFetchContacts          = "FetchContacts"
	OpCreateContact          = "CreateContact"
	OpUpdateContact          = "UpdateContact"
	OpDeleteContact          = "DeleteContact"
	OpFetchUsers             = "FetchUsers"
	OpUpdateUserStatus       = "UpdateUserStatus"
	OpUpdateUserRole         = "UpdateUserRole"
	OpFetchAssignments       = "FetchAssignments"
	OpSubmitAssignment       = "SubmitAssignment"
	OpLogin                  = "Login"
	OpRegister               = "Register"
	OpFetchMe                = "FetchMe"
	OpFetchOverviewStats     = "FetchOverviewStats"
)

// StatusChange records an UpdateRequestStatus or UpdateUserStatus call.
type StatusChange struct {
	ID     string
	Status string
}

// MockBackend implements ports.Backend for testing.
// The service under test talks to it exactly as it would to the HTTP gateway.
type MockBackend struct {
	mu sync.RWMutex

	// Canned data returned by the fetch calls
	Requests    []domain.ServiceRequest
	Contacts    []domain.Contact
	Users       []domain.Account
	Assignments []domain.Assignment
	Stats       domain.OverviewStats
	Me          *domain.Account
	Token       string
	RegisterOut ports.RegisterResult
	NextID      int

	// Call tracking for verification
	Calls            []string
	StatusUpdates    []StatusChange
	UserStatusCalls  []StatusChange
	UserRoleCalls    []StatusChange
	CreatedRequests  []domain.NewRequest
	UploadedPhotos   []*domain.Photo
	SubmittedAssigns []domain.Assignment
	SavedContacts    []domain.ContactInput
	Registrations    []domain.Registration
	Filters          []domain.RequestFilter

	// Error injection for testing error scenarios, keyed by operation name
	Errors map[string]error

	// Hook runs before every call; a non-nil result is returned as the error.
	Hook func(ctx context.Context, op string) error
}

// Ensure MockBackend implements ports.Backend at compile time.
var _ ports.Backend = (*MockBackend)(nil)

// NewMockBackend creates a backend with no data.
func NewMockBackend() *MockBackend {
	return &MockBackend{
		Errors: make(map[string]error),
		NextID: 100,
	}
}

// Fail makes every following call to op return err.
func (m *MockBackend) Fail(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[op] = err
}

// CallCount returns how many times op was called.
func (m *MockBackend) CallCount(op string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.Calls {
		if c == op {
			n++
		}
	}
	return n
}

// TotalCalls returns the number of calls of any kind.
func (m *MockBackend) TotalCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Calls)
}

func (m *MockBackend) begin(ctx context.Context, op string) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, op)
	hook := m.Hook
	err := m.Errors[op]
	m.mu.Unlock()

	if hook != nil {
		if herr := hook(ctx, op); herr != nil {
			return herr
		}
	}
	return err
}

func (m *MockBackend) nextID() domain.ID {
	m.NextID++
	return domain.ID(fmt.Sprint(m.NextID))
}

func (m *MockBackend) FetchRequests(ctx context.Context, filter domain.RequestFilter) ([]domain.ServiceRequest, error) {
	if err := m.begin(ctx, OpFetchRequests); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Filters = append(m.Filters, filter)
	return append([]domain.ServiceRequest{}, m.Requests...), nil
}

func (m *MockBackend) CreateRequest(ctx context.Context, req domain.NewRequest) (*domain.ServiceRequest, error) {
	if err := m.begin(ctx, OpCreateRequest); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreatedRequests = append(m.CreatedRequests, req)
	created := domain.ServiceRequest{
		ID:          m.nextID(),
		Title:       req.Title,
		Description: req.Description,
		UserInfo:    req.UserInfo,
		Status:      domain.StatusSubmitted,
	}
	if req.ImageURL != nil {
		created.ImageURL = *req.ImageURL
	}
	m.Requests = append(m.Requests, created)
	return &created, nil
}

func (m *MockBackend) CreateRequestMultipart(ctx context.Context, req domain.NewRequest, photo *domain.Photo) (*domain.ServiceRequest, error) {
	if err := m.begin(ctx, OpCreateRequestMultipart); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreatedRequests = append(m.CreatedRequests, req)
	m.UploadedPhotos = append(m.UploadedPhotos, photo)
	created := domain.ServiceRequest{
		ID:       m.nextID(),
		Title:    req.Title,
		UserInfo: req.UserInfo,
		Status:   domain.StatusSubmitted,
	}
	if photo != nil {
		created.ImageURL = "/uploads/" + photo.Filename
	}
	m.Requests = append(m.Requests, created)
	return &created, nil
}

func (m *MockBackend) UpdateRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus) error {
	if err := m.begin(ctx, OpUpdateRequestStatus); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatusUpdates = append(m.StatusUpdates, StatusChange{ID: requestID, Status: string(status)})
	for i := range m.Requests {
		if m.Requests[i].ID.String() == requestID {
			m.Requests[i].Status = status
		}
	}
	return nil
}

func (m *MockBackend) DeleteRequest(ctx context.Context, requestID string) error {
	if err := m.begin(ctx, OpDeleteRequest); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.Requests[:0]
	for _, r := range m.Requests {
		if r.ID.String() != requestID {
			out = append(out, r)
		}
	}
	m.Requests = out
	return nil
}

func (m *MockBackend) FetchContacts(ctx context.Context) ([]domain.Contact, error) {
	if err := m.begin(ctx, OpFetchContacts); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Contact{}, m.Contacts...), nil
}

func (m *MockBackend) CreateContact(ctx context.Context, in domain.ContactInput) (*domain.Contact, error) {
	if err := m.begin(ctx, OpCreateContact); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SavedContacts = append(m.SavedContacts, in)
	c := domain.Contact{ID: m.nextID(), Name: in.Name, Phone: in.Phone, Email: in.Email, Role: in.Role}
	m.Contacts = append(m.Contacts, c)
	return &c, nil
}

func (m *MockBackend) UpdateContact(ctx context.Context, contactID string, in domain.ContactInput) (*domain.Contact, error) {
	if err := m.begin(ctx, OpUpdateContact); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SavedContacts = append(m.SavedContacts, in)
	c := domain.Contact{ID: domain.ID(contactID), Name: in.Name, Phone: in.Phone, Email: in.Email, Role: in.Role}
	for i := range m.Contacts {
		if m.Contacts[i].ID.String() == contactID {
			m.Contacts[i] = c
		}
	}
	return &c, nil
}

func (m *MockBackend) DeleteContact(ctx context.Context, contactID string) error {
	if err := m.begin(ctx, OpDeleteContact); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.Contacts[:0]
	for _, c := range m.Contacts {
		if c.ID.String() != contactID {
			out = append(out, c)
		}
	}
	m.Contacts = out
	return nil
}

func (m *MockBackend) FetchUsers(ctx context.Context) ([]domain.Account, error) {
	if err := m.begin(ctx, OpFetchUsers); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Account{}, m.Users...), nil
}

func (m *MockBackend) UpdateUserStatus(ctx context.Context, userID string, status domain.AccountStatus) (string, error) {
	if err := m.begin(ctx, OpUpdateUserStatus); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UserStatusCalls = append(m.UserStatusCalls, StatusChange{ID: userID, Status: string(status)})
	for i := range m.Users {
		if m.Users[i].ID.String() == userID {
			m.Users[i].Status = status
		}
	}
	return "User status updated to " + string(status), nil
}

func (m *MockBackend) UpdateUserRole(ctx context.Context, userID string, role domain.Role) (string, error) {
	if err := m.begin(ctx, OpUpdateUserRole); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UserRoleCalls = append(m.UserRoleCalls, StatusChange{ID: userID, Status: string(role)})
	for i := range m.Users {
		if m.Users[i].ID.String() == userID {
			m.Users[i].Role = role
		}
	}
	return "User role updated to " + string(role), nil
}

func (m *MockBackend) FetchAssignments(ctx context.Context) ([]domain.Assignment, error) {
	if err := m.begin(ctx, OpFetchAssignments); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Assignment{}, m.Assignments...), nil
}

func (m *MockBackend) SubmitAssignment(ctx context.Context, a domain.Assignment) (*domain.Assignment, error) {
	if err := m.begin(ctx, OpSubmitAssignment); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubmittedAssigns = append(m.SubmittedAssigns, a)
	a.ID = m.nextID()
	m.Assignments = append(m.Assignments, a)
	return &a, nil
}

func (m *MockBackend) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	if err := m.begin(ctx, OpLogin); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Token, nil
}

func (m *MockBackend) Register(ctx context.Context, reg domain.Registration) (ports.RegisterResult, error) {
	if err := m.begin(ctx, OpRegister); err != nil {
		return ports.RegisterResult{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Registrations = append(m.Registrations, reg)
	return m.RegisterOut, nil
}

func (m *MockBackend) FetchMe(ctx context.Context) (*domain.Account, error) {
	if err := m.begin(ctx, OpFetchMe); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Me == nil {
		return nil, nil
	}
	me := *m.Me
	return &me, nil
}

func (m *MockBackend) FetchOverviewStats(ctx context.Context) (domain.OverviewStats, error) {
	if err := m.begin(ctx, OpFetchOverviewStats); err != nil {
		return domain.OverviewStats{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Stats, nil
}

// Reset clears call tracking and injected errors.
// Use this between steps to ensure isolation.
func (m *MockBackend) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = nil
	m.StatusUpdates = nil
	m.UserStatusCalls = nil
	m.UserRoleCalls = nil
	m.CreatedRequests = nil
	m.UploadedPhotos = nil
	m.SubmittedAssigns = nil
	m.SavedContacts = nil
	m.Registrations = nil
	m.Filters = nil
	m.Errors = make(map[string]error)
	m.Hook = nil
}
