package services

import (
	"context"
	"sync"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/core/ports"
)

type Panel string

const (
	PanelOperators Panel = "operators"
	PanelRequests  Panel = "requests"
	PanelUsers     Panel = "users"
)

func Panels() []Panel {
	return []Panel{PanelOperators, PanelRequests, PanelUsers}
}

// UserAction is a status transition offered for an account.
type UserAction struct {
	Label  string
	Target domain.AccountStatus
}

// SuperAdminDashboard adds operator, request and account management on top
// of the admin dashboard.
type SuperAdminDashboard struct {
	*AdminDashboard

	Contact *ContactForm
	Admin   *AdminForm

	panelMu sync.RWMutex
	panel   Panel
}

func NewSuperAdminDashboard(api ports.Backend, identity IdentityProvider, opts DashboardOptions) *SuperAdminDashboard {
	admin := NewAdminDashboard(api, identity, opts)
	deps := admin.formDeps(identity)
	return &SuperAdminDashboard{
		AdminDashboard: admin,
		Contact:        NewContactForm(deps, admin.reload),
		Admin:          NewAdminForm(deps, admin.reload),
		panel:          PanelOperators,
	}
}

func (s *SuperAdminDashboard) Panel() Panel {
	s.panelMu.RLock()
	defer s.panelMu.RUnlock()
	return s.panel
}

func (s *SuperAdminDashboard) SetPanel(p Panel) error {
	for _, known := range Panels() {
		if p == known {
			s.panelMu.Lock()
			s.panel = p
			s.panelMu.Unlock()
			return nil
		}
	}
	return ErrInvalidOption
}

func (s *SuperAdminDashboard) Cards() []RequestCard {
	return buildCards(s.Snapshot().Requests, CardActions{
		Resolve: s.Resolve,
		Assign:  s.OpenAssign,
		Delete:  s.DeleteRequest,
	})
}

func (s *SuperAdminDashboard) DeleteRequest(ctx context.Context, id domain.ID) error {
	if err := s.api.DeleteRequest(ctx, id.String()); err != nil {
		s.log.Errorf("dashboard: delete request %s: %v", id, err)
		s.toast.Error(failureText(err, MsgRequestDeleteFailed))
		return err
	}
	s.toast.Success(MsgRequestDeleted)
	s.reload(ctx)
	return nil
}

// OpenContact opens the operator form; nil starts a new operator.
func (s *SuperAdminDashboard) OpenContact(c *domain.Contact) {
	s.Contact.Open(c)
}

func (s *SuperAdminDashboard) DeleteContact(ctx context.Context, id domain.ID) error {
	if err := s.api.DeleteContact(ctx, id.String()); err != nil {
		s.log.Errorf("dashboard: delete contact %s: %v", id, err)
		s.toast.Error(failureText(err, MsgContactDeleteFailed))
		return err
	}
	s.toast.Success(MsgContactDeleted)
	s.reload(ctx)
	return nil
}

// OpenAdmin opens the account form; nil starts a new staff account.
func (s *SuperAdminDashboard) OpenAdmin(a *domain.Account) {
	s.Admin.Open(a)
}

// PendingUsers are accounts awaiting approval. A missing status counts as
// pending.
func (s *SuperAdminDashboard) PendingUsers() []domain.Account {
	var out []domain.Account
	for _, u := range s.Snapshot().Users {
		if u.EffectiveStatus() == domain.AccountPending {
			out = append(out, u)
		}
	}
	return out
}

func (s *SuperAdminDashboard) ManagedUsers() []domain.Account {
	var out []domain.Account
	for _, u := range s.Snapshot().Users {
		if u.EffectiveStatus() != domain.AccountPending {
			out = append(out, u)
		}
	}
	return out
}

func (s *SuperAdminDashboard) isSelf(id domain.ID) bool {
	me, ok := s.identity.Identity()
	return ok && me.ID != "" && me.ID == id
}

// UserActions lists the transitions offered for an account. Deactivation is
// never offered on the caller's own account.
func (s *SuperAdminDashboard) UserActions(a domain.Account) []UserAction {
	switch a.EffectiveStatus() {
	case domain.AccountPending:
		return []UserAction{
			{Label: "Approve", Target: domain.AccountActive},
			{Label: "Deny", Target: domain.AccountDenied},
		}
	case domain.AccountActive:
		if s.isSelf(a.ID) {
			return nil
		}
		return []UserAction{{Label: "Deactivate", Target: domain.AccountInactive}}
	case domain.AccountInactive, domain.AccountDenied:
		if s.isSelf(a.ID) {
			return nil
		}
		return []UserAction{{Label: "Reactivate", Target: domain.AccountActive}}
	default:
		return nil
	}
}

// SetUserStatus moves an account to status. Revoking the caller's own
// account is refused before any backend call.
func (s *SuperAdminDashboard) SetUserStatus(ctx context.Context, id domain.ID, status domain.AccountStatus) error {
	if !status.Valid() {
		return ErrInvalidOption
	}
	if status.Revokes() && s.isSelf(id) {
		s.toast.Error(MsgSelfProtection)
		return domain.ErrSelfProtection
	}

	msg, err := s.api.UpdateUserStatus(ctx, id.String(), status)
	if err != nil {
		s.log.Errorf("dashboard: user %s -> %s: %v", id, status, err)
		s.toast.Error(failureText(err, MsgUpdateStatusFailed))
		return err
	}
	if msg == "" {
		msg = MsgUserStatusUpdated
	}
	s.toast.Success(msg)
	s.reload(ctx)
	return nil
}

func (s *SuperAdminDashboard) Approve(ctx context.Context, id domain.ID) error {
	return s.SetUserStatus(ctx, id, domain.AccountActive)
}

func (s *SuperAdminDashboard) Deny(ctx context.Context, id domain.ID) error {
	return s.SetUserStatus(ctx, id, domain.AccountDenied)
}

func (s *SuperAdminDashboard) Deactivate(ctx context.Context, id domain.ID) error {
	return s.SetUserStatus(ctx, id, domain.AccountInactive)
}

func (s *SuperAdminDashboard) Reactivate(ctx context.Context, id domain.ID) error {
	return s.SetUserStatus(ctx, id, domain.AccountActive)
}

// SetUserRole changes an account's role. Demoting oneself is refused.
func (s *SuperAdminDashboard) SetUserRole(ctx context.Context, id domain.ID, role domain.Role) error {
	if _, ok := domain.ParseRole(string(role)); !ok {
		return ErrInvalidOption
	}
	if s.isSelf(id) && role != domain.RoleSuperAdmin {
		s.toast.Error(MsgSelfProtection)
		return domain.ErrSelfProtection
	}

	msg, err := s.api.UpdateUserRole(ctx, id.String(), role)
	if err != nil {
		s.log.Errorf("dashboard: user %s role %s: %v", id, role, err)
		s.toast.Error(failureText(err, MsgAdminSaveFailed))
		return err
	}
	if msg == "" {
		msg = MsgUserRoleUpdated
	}
	s.toast.Success(msg)
	s.reload(ctx)
	return nil
}
