package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/core/ports"
)

var ErrNoToken = errors.New("login response did not include a token")

func (c *Client) FetchRequests(ctx context.Context, filter domain.RequestFilter) ([]domain.ServiceRequest, error) {
	endpoint := "/api/requests"
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Query != "" {
		query.Set("q", filter.Query)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	raw, err := c.Call(ctx, endpoint, CallOptions{Operation: "fetch_requests"})
	if err != nil {
		return nil, err
	}
	return normalizeList[domain.ServiceRequest](raw, "requests", c.log), nil
}

func (c *Client) CreateRequest(ctx context.Context, req domain.NewRequest) (*domain.ServiceRequest, error) {
	raw, err := c.Call(ctx, "/api/requests", CallOptions{
		Method:    http.MethodPost,
		Body:      req,
		Operation: "create_request",
	})
	if err != nil {
		return nil, err
	}
	return decodeObject[domain.ServiceRequest](raw)
}

func (c *Client) UpdateRequestStatus(ctx context.Context, requestID string, status domain.RequestStatus) error {
	_, err := c.Call(ctx, "/api/requests/"+url.PathEscape(requestID)+"/status", CallOptions{
		Method:    http.MethodPut,
		Body:      map[string]string{"status": string(status)},
		Operation: "update_request_status",
	})
	return err
}

func (c *Client) DeleteRequest(ctx context.Context, requestID string) error {
	_, err := c.Call(ctx, "/api/requests/"+url.PathEscape(requestID), CallOptions{
		Method:    http.MethodDelete,
		Operation: "delete_request",
	})
	return err
}

func (c *Client) FetchContacts(ctx context.Context) ([]domain.Contact, error) {
	raw, err := c.Call(ctx, "/api/contacts", CallOptions{Operation: "fetch_contacts"})
	if err != nil {
		return nil, err
	}
	return normalizeList[domain.Contact](raw, "contacts", c.log), nil
}

func (c *Client) CreateContact(ctx context.Context, in domain.ContactInput) (*domain.Contact, error) {
	raw, err := c.Call(ctx, "/api/contacts", CallOptions{
		Method:    http.MethodPost,
		Body:      in,
		Operation: "create_contact",
	})
	if err != nil {
		return nil, err
	}
	return decodeObject[domain.Contact](raw)
}

func (c *Client) UpdateContact(ctx context.Context, contactID string, in domain.ContactInput) (*domain.Contact, error) {
	raw, err := c.Call(ctx, "/api/contacts/"+url.PathEscape(contactID), CallOptions{
		Method:    http.MethodPut,
		Body:      in,
		Operation: "update_contact",
	})
	if err != nil {
		return nil, err
	}
	return decodeObject[domain.Contact](raw)
}

func (c *Client) DeleteContact(ctx context.Context, contactID string) error {
	_, err := c.Call(ctx, "/api/contacts/"+url.PathEscape(contactID), CallOptions{
		Method:    http.MethodDelete,
		Operation: "delete_contact",
	})
	return err
}

func (c *Client) FetchUsers(ctx context.Context) ([]domain.Account, error) {
	raw, err := c.Call(ctx, "/api/users", CallOptions{Operation: "fetch_users"})
	if err != nil {
		return nil, err
	}
	return normalizeList[domain.Account](raw, "users", c.log), nil
}

// UpdateUserStatus returns the server's confirmation message.
func (c *Client) UpdateUserStatus(ctx context.Context, userID string, status domain.AccountStatus) (string, error) {
	raw, err := c.Call(ctx, "/api/users/"+url.PathEscape(userID)+"/status", CallOptions{
		Method:    http.MethodPut,
		Body:      map[string]string{"status": string(status)},
		Operation: "update_user_status",
	})
	if err != nil {
		return "", err
	}
	return messageOf(raw), nil
}

func (c *Client) UpdateUserRole(ctx context.Context, userID string, role domain.Role) (string, error) {
	raw, err := c.Call(ctx, "/api/users/"+url.PathEscape(userID)+"/role", CallOptions{
		Method:    http.MethodPut,
		Body:      map[string]string{"role": string(role)},
		Operation: "update_user_role",
	})
	if err != nil {
		return "", err
	}
	return messageOf(raw), nil
}

func (c *Client) FetchAssignments(ctx context.Context) ([]domain.Assignment, error) {
	raw, err := c.Call(ctx, "/api/assignments", CallOptions{Operation: "fetch_assignments"})
	if err != nil {
		return nil, err
	}
	return normalizeList[domain.Assignment](raw, "assignments", c.log), nil
}

func (c *Client) SubmitAssignment(ctx context.Context, a domain.Assignment) (*domain.Assignment, error) {
	raw, err := c.Call(ctx, "/api/assignments", CallOptions{
		Method:    http.MethodPost,
		Body:      a,
		Operation: "submit_assignment",
	})
	if err != nil {
		return nil, err
	}
	return decodeObject[domain.Assignment](raw)
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	raw, err := c.Call(ctx, "/api/login", CallOptions{
		Method:    http.MethodPost,
		Body:      creds,
		Operation: "login",
	})
	if err != nil {
		return "", err
	}
	resp, err := decodeObject[struct {
		Token string `json:"token"`
	}](raw)
	if err != nil {
		return "", err
	}
	if resp == nil || resp.Token == "" {
		return "", ErrNoToken
	}
	return resp.Token, nil
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) (ports.RegisterResult, error) {
	raw, err := c.Call(ctx, "/api/register", CallOptions{
		Method:    http.MethodPost,
		Body:      reg,
		Operation: "register",
	})
	if err != nil {
		return ports.RegisterResult{}, err
	}
	resp, err := decodeObject[ports.RegisterResult](raw)
	if err != nil || resp == nil {
		return ports.RegisterResult{}, err
	}
	return *resp, nil
}

func (c *Client) FetchMe(ctx context.Context) (*domain.Account, error) {
	raw, err := c.Call(ctx, "/api/me", CallOptions{Operation: "fetch_me"})
	if err != nil {
		return nil, err
	}
	return decodeObject[domain.Account](raw)
}

func (c *Client) FetchOverviewStats(ctx context.Context) (domain.OverviewStats, error) {
	raw, err := c.Call(ctx, "/api/stats/overview", CallOptions{Operation: "fetch_overview_stats"})
	if err != nil {
		return domain.OverviewStats{}, err
	}
	return normalizeStats(raw), nil
}
