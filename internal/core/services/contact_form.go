package services

import (
	"context"
	"strings"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
)

// ContactForm creates or edits an operator contact.
type ContactForm struct {
	deps      FormDeps
	onSuccess func(context.Context)

	open       bool
	submitting bool
	editingID  domain.ID
	draft      domain.ContactInput
}

func NewContactForm(deps FormDeps, onSuccess func(context.Context)) *ContactForm {
	return &ContactForm{deps: deps.withDefaults(), onSuccess: onSuccess}
}

// Open seeds the form from initial, or starts a new contact when nil.
func (f *ContactForm) Open(initial *domain.Contact) {
	f.open = true
	f.editingID = ""
	f.draft = domain.ContactInput{Role: domain.ContactMechanic}
	if initial != nil {
		f.editingID = initial.ID
		f.draft = domain.ContactInput{
			Name:  initial.Name,
			Phone: initial.Phone,
			Email: initial.Email,
			Role:  initial.Role,
		}
		if !f.draft.Role.Valid() {
			f.draft.Role = domain.ContactMechanic
		}
	}
}

func (f *ContactForm) Close() {
	f.open = false
	f.editingID = ""
	f.draft = domain.ContactInput{}
}

func (f *ContactForm) IsOpen() bool               { return f.open }
func (f *ContactForm) Editing() bool              { return f.editingID != "" }
func (f *ContactForm) Draft() domain.ContactInput { return f.draft }
func (f *ContactForm) SetName(v string)           { f.draft.Name = v }
func (f *ContactForm) SetPhone(v string)          { f.draft.Phone = v }
func (f *ContactForm) SetEmail(v string)          { f.draft.Email = v }

func (f *ContactForm) SetRole(r domain.ContactRole) error {
	if !r.Valid() {
		return ErrInvalidOption
	}
	f.draft.Role = r
	return nil
}

func (f *ContactForm) Submit(ctx context.Context) error {
	if !f.open {
		return ErrFormClosed
	}
	in := domain.ContactInput{
		Name:  strings.TrimSpace(f.draft.Name),
		Phone: strings.TrimSpace(f.draft.Phone),
		Email: strings.TrimSpace(f.draft.Email),
		Role:  f.draft.Role,
	}
	if in.Name == "" || in.Phone == "" {
		f.deps.Toaster.Error(MsgMissingContactFields)
		return ErrMissingFields
	}
	if !in.Role.Valid() {
		f.deps.Toaster.Error(MsgContactSaveFailed)
		return ErrInvalidOption
	}
	if f.submitting {
		return ErrSubmitting
	}
	f.submitting = true
	defer func() { f.submitting = false }()

	var err error
	if f.Editing() {
		_, err = f.deps.API.UpdateContact(ctx, f.editingID.String(), in)
	} else {
		_, err = f.deps.API.CreateContact(ctx, in)
	}
	if err != nil {
		f.deps.Logger.Errorf("contacts: save %q: %v", in.Name, err)
		f.deps.Toaster.Error(failureText(err, MsgContactSaveFailed))
		return err
	}

	f.deps.Toaster.Success(MsgContactSaved)
	f.Close()
	if f.onSuccess != nil {
		f.onSuccess(ctx)
	}
	return nil
}
