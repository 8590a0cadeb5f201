package services

import (
	"context"
	"strings"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
)

type AdminDraft struct {
	Name     string
	Username string
	Email    string
	Phone    string
	Password string
	Level    domain.Role
	Status   domain.AccountStatus
}

func defaultAdminDraft() AdminDraft {
	return AdminDraft{Level: domain.RoleAdmin, Status: domain.AccountActive}
}

// AdminForm adds a staff account or edits the role and status of one.
type AdminForm struct {
	deps      FormDeps
	onSuccess func(context.Context)

	open       bool
	submitting bool
	initial    *domain.Account
	draft      AdminDraft
}

func NewAdminForm(deps FormDeps, onSuccess func(context.Context)) *AdminForm {
	return &AdminForm{deps: deps.withDefaults(), onSuccess: onSuccess, draft: defaultAdminDraft()}
}

func (f *AdminForm) Open(initial *domain.Account) {
	f.open = true
	f.initial = nil
	f.draft = defaultAdminDraft()
	if initial != nil {
		acc := *initial
		f.initial = &acc
		f.draft.Username = acc.Username
		f.draft.Email = acc.Email
		if acc.Role.IsStaff() {
			f.draft.Level = acc.Role
		}
		f.draft.Status = acc.EffectiveStatus()
	}
}

func (f *AdminForm) Close() {
	f.open = false
	f.initial = nil
	f.draft = defaultAdminDraft()
}

func (f *AdminForm) IsOpen() bool         { return f.open }
func (f *AdminForm) Editing() bool        { return f.initial != nil }
func (f *AdminForm) Draft() AdminDraft    { return f.draft }
func (f *AdminForm) SetName(v string)     { f.draft.Name = v }
func (f *AdminForm) SetUsername(v string) { f.draft.Username = v }
func (f *AdminForm) SetEmail(v string)    { f.draft.Email = v }
func (f *AdminForm) SetPhone(v string)    { f.draft.Phone = v }
func (f *AdminForm) SetPassword(v string) { f.draft.Password = v }

func (f *AdminForm) SetLevel(r domain.Role) error {
	if !r.IsStaff() {
		return ErrInvalidOption
	}
	f.draft.Level = r
	return nil
}

func (f *AdminForm) SetStatus(s domain.AccountStatus) error {
	if s != domain.AccountActive && s != domain.AccountInactive {
		return ErrInvalidOption
	}
	f.draft.Status = s
	return nil
}

func (f *AdminForm) Submit(ctx context.Context) error {
	if !f.open {
		return ErrFormClosed
	}
	if f.submitting {
		return ErrSubmitting
	}

	var err error
	if f.Editing() {
		err = f.submitEdit(ctx)
	} else {
		err = f.submitCreate(ctx)
	}
	if err != nil {
		return err
	}

	f.deps.Toaster.Success(MsgAdminSaved)
	f.Close()
	if f.onSuccess != nil {
		f.onSuccess(ctx)
	}
	return nil
}

// submitEdit sends only the fields that changed.
func (f *AdminForm) submitEdit(ctx context.Context) error {
	target := f.initial.ID
	me, _ := f.deps.Identity.Identity()
	if me.ID != "" && me.ID == target &&
		(f.draft.Status.Revokes() || f.draft.Level != f.initial.Role) {
		f.deps.Toaster.Error(MsgSelfProtection)
		return domain.ErrSelfProtection
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	if f.draft.Level != f.initial.Role {
		if _, err := f.deps.API.UpdateUserRole(ctx, target.String(), f.draft.Level); err != nil {
			f.deps.Logger.Errorf("accounts: role %s: %v", target, err)
			f.deps.Toaster.Error(failureText(err, MsgAdminSaveFailed))
			return err
		}
	}
	if f.draft.Status != f.initial.EffectiveStatus() {
		if _, err := f.deps.API.UpdateUserStatus(ctx, target.String(), f.draft.Status); err != nil {
			f.deps.Logger.Errorf("accounts: status %s: %v", target, err)
			f.deps.Toaster.Error(failureText(err, MsgAdminSaveFailed))
			return err
		}
	}
	return nil
}

// submitCreate registers the account and then promotes it. Registered
// accounts start as pending users.
func (f *AdminForm) submitCreate(ctx context.Context) error {
	reg := domain.Registration{
		Username: strings.TrimSpace(f.draft.Username),
		Email:    strings.TrimSpace(f.draft.Email),
		Password: f.draft.Password,
		Name:     strings.TrimSpace(f.draft.Name),
		Phone:    strings.TrimSpace(f.draft.Phone),
	}
	if reg.Username == "" || reg.Email == "" {
		f.deps.Toaster.Error(MsgMissingAccountFields)
		return ErrMissingFields
	}
	if len(reg.Password) < minPasswordLength {
		f.deps.Toaster.Error(MsgPasswordTooShort)
		return ErrPasswordTooShort
	}

	f.submitting = true
	defer func() { f.submitting = false }()

	result, err := f.deps.API.Register(ctx, reg)
	if err != nil {
		f.deps.Logger.Errorf("accounts: register %s: %v", reg.Email, err)
		f.deps.Toaster.Error(failureText(err, MsgAdminSaveFailed))
		return err
	}
	if result.UserID == "" {
		f.deps.Logger.Warnf("accounts: register %s returned no id, role and status left to approval", reg.Email)
		return nil
	}

	// A retry after a failed promotion edits the new account instead of
	// registering it twice.
	f.initial = &domain.Account{
		ID:       result.UserID,
		Username: reg.Username,
		Email:    reg.Email,
		Role:     domain.RoleUser,
		Status:   domain.AccountPending,
	}
	id := result.UserID.String()
	if _, err := f.deps.API.UpdateUserRole(ctx, id, f.draft.Level); err != nil {
		f.deps.Logger.Errorf("accounts: role %s: %v", id, err)
		f.deps.Toaster.Error(failureText(err, MsgAdminSaveFailed))
		return err
	}
	f.initial.Role = f.draft.Level
	if _, err := f.deps.API.UpdateUserStatus(ctx, id, f.draft.Status); err != nil {
		f.deps.Logger.Errorf("accounts: status %s: %v", id, err)
		f.deps.Toaster.Error(failureText(err, MsgAdminSaveFailed))
		return err
	}
	return nil
}
