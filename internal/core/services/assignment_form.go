package services

import (
	"context"
	"strings"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/core/ports"
	"github.com/AssiaOU26/Cars-front/internal/logger"
)

// FormDeps are the collaborators shared by the modal forms.
type FormDeps struct {
	API      ports.Backend
	Toaster  ports.Toaster
	Identity IdentityProvider
	Notifier ports.DispatchNotifier
	Logger   *logger.Logger
}

func (d FormDeps) withDefaults() FormDeps {
	if d.Toaster == nil {
		d.Toaster = nopToaster{}
	}
	if d.Identity == nil {
		d.Identity = StaticIdentity{}
	}
	if d.Notifier == nil {
		d.Notifier = ports.NopNotifier{}
	}
	if d.Logger == nil {
		d.Logger = logger.Discard()
	}
	return d
}

// notifyAssigned publishes to dispatch. Broker trouble never fails the
// assignment that already succeeded.
func (d FormDeps) notifyAssigned(ctx context.Context, a domain.Assignment) {
	by, _ := d.Identity.Identity()
	evt := ports.AssignmentEvent{
		RequestID:  a.RequestID.String(),
		OperatorID: a.OperatorID.String(),
		AssigneeID: a.UserID.String(),
		AssignedBy: by.ID.String(),
		Status:     string(a.Status),
		Notes:      a.Notes,
	}
	if err := d.Notifier.NotifyAssigned(ctx, evt); err != nil {
		d.Logger.Warnf("dispatch: notify request %s: %v", a.RequestID, err)
	}
}

// FilterAssignees keeps staff accounts only.
func FilterAssignees(users []domain.Account) []domain.Account {
	out := make([]domain.Account, 0, len(users))
	for _, u := range users {
		if u.Role.IsStaff() {
			out = append(out, u)
		}
	}
	return out
}

type AssignmentDraft struct {
	RequestID  domain.ID
	AssigneeID domain.ID
	OperatorID domain.ID
	Status     domain.AssignmentStatus
	Notes      string
}

// AssignmentForm assigns a request to a staff member.
type AssignmentForm struct {
	deps      FormDeps
	onSuccess func(context.Context)

	open       bool
	submitting bool
	draft      AssignmentDraft
}

func NewAssignmentForm(deps FormDeps, onSuccess func(context.Context)) *AssignmentForm {
	return &AssignmentForm{deps: deps.withDefaults(), onSuccess: onSuccess}
}

func (f *AssignmentForm) Open(requestID domain.ID) {
	f.open = true
	f.draft = AssignmentDraft{RequestID: requestID, Status: domain.AssignmentAssigned}
}

func (f *AssignmentForm) Close() {
	f.open = false
	f.draft = AssignmentDraft{}
}

func (f *AssignmentForm) IsOpen() bool             { return f.open }
func (f *AssignmentForm) Draft() AssignmentDraft   { return f.draft }
func (f *AssignmentForm) SetAssignee(id domain.ID) { f.draft.AssigneeID = id }
func (f *AssignmentForm) SetOperator(id domain.ID) { f.draft.OperatorID = id }
func (f *AssignmentForm) SetNotes(notes string)    { f.draft.Notes = notes }

func (f *AssignmentForm) SetStatus(s domain.AssignmentStatus) error {
	if !s.Valid() {
		return ErrInvalidOption
	}
	f.draft.Status = s
	return nil
}

func (f *AssignmentForm) Submit(ctx context.Context) error {
	if !f.open {
		return ErrFormClosed
	}
	if f.draft.AssigneeID == "" {
		f.deps.Toaster.Error(MsgSelectAssignee)
		return ErrNoAssignee
	}
	if f.submitting {
		return ErrSubmitting
	}
	f.submitting = true
	defer func() { f.submitting = false }()

	a := domain.Assignment{
		RequestID:  f.draft.RequestID,
		UserID:     f.draft.AssigneeID,
		OperatorID: f.draft.OperatorID,
		Status:     f.draft.Status,
		Notes:      strings.TrimSpace(f.draft.Notes),
	}
	if _, err := f.deps.API.SubmitAssignment(ctx, a); err != nil {
		f.deps.Logger.Errorf("assignment: request %s: %v", a.RequestID, err)
		f.deps.Toaster.Error(failureText(err, MsgAssignmentFailed))
		return err
	}

	f.deps.Toaster.Success(MsgRequestAssigned)
	f.deps.notifyAssigned(ctx, a)
	f.Close()
	if f.onSuccess != nil {
		f.onSuccess(ctx)
	}
	return nil
}
