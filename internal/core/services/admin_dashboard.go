package services

import (
	"context"
	"sort"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/core/ports"
)

// AdminDashboard lets operators resolve, assign and create requests.
type AdminDashboard struct {
	*Dashboard
	identity IdentityProvider

	Assignment    *AssignmentForm
	CreateRequest *CreateRequestForm
}

func NewAdminDashboard(api ports.Backend, identity IdentityProvider, opts DashboardOptions) *AdminDashboard {
	d := newDashboard(api, opts)
	deps := d.formDeps(identity)
	return &AdminDashboard{
		Dashboard:     d,
		identity:      identity,
		Assignment:    NewAssignmentForm(deps, d.reload),
		CreateRequest: NewCreateRequestForm(deps, d.reload),
	}
}

func (d *Dashboard) formDeps(identity IdentityProvider) FormDeps {
	return FormDeps{
		API:      d.api,
		Toaster:  d.toast,
		Identity: identity,
		Notifier: d.notifier,
		Logger:   d.log,
	}
}

// OpenAssign opens the assignment form for a request.
func (a *AdminDashboard) OpenAssign(_ context.Context, id domain.ID) error {
	a.Assignment.Open(id)
	return nil
}

// AssignmentHistory returns the earlier assignments of one request, newest
// first. Entries without a timestamp sort last.
func (a *AdminDashboard) AssignmentHistory(ctx context.Context, requestID domain.ID) ([]domain.Assignment, error) {
	all, err := a.api.FetchAssignments(ctx)
	if err != nil {
		a.log.Warnf("dashboard: assignment history for %s: %v", requestID, err)
		return nil, err
	}
	out := make([]domain.Assignment, 0, len(all))
	for _, as := range all {
		if as.RequestID == requestID {
			out = append(out, as)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].CreatedAt, out[j].CreatedAt
		if ti == nil || tj == nil {
			return ti != nil
		}
		return ti.After(*tj)
	})
	return out, nil
}

// Assignees lists the loaded accounts that may take an assignment.
func (a *AdminDashboard) Assignees() []domain.Account {
	return FilterAssignees(a.Snapshot().Users)
}

func (a *AdminDashboard) Cards() []RequestCard {
	return buildCards(a.Snapshot().Requests, CardActions{
		Resolve: a.Resolve,
		Assign:  a.OpenAssign,
	})
}

func buildCards(requests []domain.ServiceRequest, actions CardActions) []RequestCard {
	cards := make([]RequestCard, 0, len(requests))
	for _, r := range requests {
		cards = append(cards, NewRequestCard(r, actions))
	}
	return cards
}
