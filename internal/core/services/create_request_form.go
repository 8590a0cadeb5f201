package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
)

// MaxPhotoBytes caps attached photos at 10 MB.
const MaxPhotoBytes = 10 * 1000 * 1000

type RequestDraft struct {
	CustomerName     string
	CustomerPhone    string
	Location         string
	CarModel         string
	CarYear          string
	IssueDescription string
	Urgency          domain.Urgency
	ImageURL         string
	Photo            *domain.Photo
	OperatorID       domain.ID
	// CustomerInfoText holds raw edits until they are parsed on blur.
	CustomerInfoText string
}

func defaultRequestDraft() RequestDraft {
	return RequestDraft{Urgency: domain.UrgencyMedium}
}

// CreateRequestForm collects a new service request for a customer.
type CreateRequestForm struct {
	deps      FormDeps
	onSuccess func(context.Context)

	open       bool
	submitting bool
	infoDirty  bool
	draft      RequestDraft
}

func NewCreateRequestForm(deps FormDeps, onSuccess func(context.Context)) *CreateRequestForm {
	return &CreateRequestForm{deps: deps.withDefaults(), onSuccess: onSuccess, draft: defaultRequestDraft()}
}

func (f *CreateRequestForm) Open() {
	f.open = true
	f.infoDirty = false
	f.draft = defaultRequestDraft()
}

func (f *CreateRequestForm) Close() {
	f.open = false
	f.infoDirty = false
	f.draft = defaultRequestDraft()
}

func (f *CreateRequestForm) IsOpen() bool        { return f.open }
func (f *CreateRequestForm) Draft() RequestDraft { return f.draft }

func (f *CreateRequestForm) SetIssue(v string)        { f.draft.IssueDescription = v }
func (f *CreateRequestForm) SetOperator(id domain.ID) { f.draft.OperatorID = id }

// SetCustomer replaces the structured customer fields and drops raw edits.
func (f *CreateRequestForm) SetCustomer(name, phone, location string) {
	f.draft.CustomerName = name
	f.draft.CustomerPhone = phone
	f.draft.Location = location
	f.draft.CustomerInfoText = ""
	f.infoDirty = false
}

func (f *CreateRequestForm) SetVehicle(model, year string) {
	f.draft.CarModel = model
	f.draft.CarYear = year
	f.draft.CustomerInfoText = ""
	f.infoDirty = false
}

func (f *CreateRequestForm) SetUrgency(raw string) error {
	u, err := domain.ParseUrgency(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}
	f.draft.Urgency = u
	return nil
}

// EditCustomerInfo records raw text; the structured fields follow on blur.
func (f *CreateRequestForm) EditCustomerInfo(text string) {
	f.draft.CustomerInfoText = text
	f.infoDirty = true
}

// BlurCustomerInfo parses the raw text by line position: name, vehicle,
// phone, location. A trailing 4-digit year on the vehicle line becomes the
// car year.
func (f *CreateRequestForm) BlurCustomerInfo() {
	fields := domain.ParseCustomerFields(f.draft.CustomerInfoText)
	model, year := domain.SplitVehicle(fields.Vehicle)
	f.draft.CustomerName = fields.Name
	f.draft.CarModel = model
	f.draft.CarYear = year
	f.draft.CustomerPhone = fields.Phone
	f.draft.Location = fields.Location
	f.infoDirty = false
}

// CustomerInfoText is what the customer box shows: raw text while it is
// being edited, otherwise the structured fields one per line.
func (f *CreateRequestForm) CustomerInfoText() string {
	if f.draft.CustomerInfoText != "" {
		return f.draft.CustomerInfoText
	}
	lines := make([]string, 0, 4)
	for _, v := range []string{
		f.draft.CustomerName,
		domain.JoinVehicle(f.draft.CarModel, f.draft.CarYear),
		f.draft.CustomerPhone,
		f.draft.Location,
	} {
		if v != "" {
			lines = append(lines, v)
		}
	}
	return strings.Join(lines, "\n")
}

// AttachPhoto switches to file mode and clears any image URL.
func (f *CreateRequestForm) AttachPhoto(p domain.Photo) error {
	if err := validatePhoto(&p); err != nil {
		return err
	}
	f.draft.Photo = &p
	f.draft.ImageURL = ""
	return nil
}

// SetImageURL switches to URL mode and drops any attached photo.
func (f *CreateRequestForm) SetImageURL(url string) {
	f.draft.ImageURL = strings.TrimSpace(url)
	if f.draft.ImageURL != "" {
		f.draft.Photo = nil
	}
}

func (f *CreateRequestForm) ClearImage() {
	f.draft.ImageURL = ""
	f.draft.Photo = nil
}

// ImagePreview describes the current image choice.
func (f *CreateRequestForm) ImagePreview() string {
	switch {
	case f.draft.Photo != nil:
		return fmt.Sprintf("%s (%s)", f.draft.Photo.Filename, humanize.Bytes(uint64(len(f.draft.Photo.Data))))
	case f.draft.ImageURL != "":
		return f.draft.ImageURL
	default:
		return ""
	}
}

func (f *CreateRequestForm) fields() domain.CustomerFields {
	return domain.CustomerFields{
		Name:     strings.TrimSpace(f.draft.CustomerName),
		Vehicle:  domain.JoinVehicle(strings.TrimSpace(f.draft.CarModel), strings.TrimSpace(f.draft.CarYear)),
		Phone:    strings.TrimSpace(f.draft.CustomerPhone),
		Location: strings.TrimSpace(f.draft.Location),
	}
}

// UserInfo is the block stored on the request.
func (f *CreateRequestForm) UserInfo() string {
	return domain.ComposeCustomerInfo(f.fields(), strings.TrimSpace(f.draft.IssueDescription), f.draft.Urgency)
}

// Submit creates the request and, when an operator was picked, a dependent
// assignment. A failed assignment does not undo the request; the created
// request is returned together with ErrAssignmentPartial.
func (f *CreateRequestForm) Submit(ctx context.Context) (*domain.ServiceRequest, error) {
	if !f.open {
		return nil, ErrFormClosed
	}
	if f.infoDirty {
		f.BlurCustomerInfo()
	}

	fields := f.fields()
	if fields.Name == "" && fields.Vehicle == "" && fields.Phone == "" && fields.Location == "" {
		f.deps.Toaster.Error(MsgMissingCustomerInfo)
		return nil, ErrMissingCustomer
	}
	issue := strings.TrimSpace(f.draft.IssueDescription)
	if issue == "" {
		f.deps.Toaster.Error(MsgMissingIssue)
		return nil, ErrMissingIssue
	}
	if f.submitting {
		return nil, ErrSubmitting
	}
	f.submitting = true
	defer func() { f.submitting = false }()

	userInfo := f.UserInfo()
	req := domain.NewRequest{
		Title:       issue,
		Description: userInfo,
		UserInfo:    userInfo,
	}

	var (
		created *domain.ServiceRequest
		err     error
	)
	if f.draft.Photo != nil {
		created, err = f.deps.API.CreateRequestMultipart(ctx, req, f.draft.Photo)
	} else {
		if f.draft.ImageURL != "" {
			url := f.draft.ImageURL
			req.ImageURL = &url
		}
		created, err = f.deps.API.CreateRequest(ctx, req)
	}
	if err != nil {
		f.deps.Logger.Errorf("requests: create: %v", err)
		f.deps.Toaster.Error(MsgCreateRequestFailed)
		return nil, err
	}
	f.deps.Toaster.Success(MsgRequestCreated)

	var partial error
	if f.draft.OperatorID != "" && created != nil && created.ID != "" {
		partial = f.assignOperator(ctx, created.ID)
	}

	f.Close()
	if f.onSuccess != nil {
		f.onSuccess(ctx)
	}
	return created, partial
}

func (f *CreateRequestForm) assignOperator(ctx context.Context, requestID domain.ID) error {
	me, _ := f.deps.Identity.Identity()
	a := domain.Assignment{
		RequestID:  requestID,
		OperatorID: f.draft.OperatorID,
		UserID:     me.ID,
		Status:     domain.AssignmentAssigned,
	}
	if _, err := f.deps.API.SubmitAssignment(ctx, a); err != nil {
		f.deps.Logger.Warnf("requests: assign operator %s to %s: %v", a.OperatorID, requestID, err)
		f.deps.Toaster.Error(MsgAssignmentPartial)
		return fmt.Errorf("%w: %v", ErrAssignmentPartial, err)
	}
	f.deps.notifyAssigned(ctx, a)
	return nil
}

// validatePhoto enforces the size cap and image content types, sniffing the
// type when the caller did not provide one.
func validatePhoto(p *domain.Photo) error {
	if len(p.Data) > MaxPhotoBytes {
		return fmt.Errorf("%w: %s exceeds %s", ErrPhotoTooLarge,
			humanize.Bytes(uint64(len(p.Data))), humanize.Bytes(MaxPhotoBytes))
	}
	if p.ContentType == "" {
		p.ContentType = http.DetectContentType(p.Data)
	}
	if !strings.HasPrefix(p.ContentType, "image/") {
		return fmt.Errorf("%w: got %s", ErrPhotoNotImage, p.ContentType)
	}
	return nil
}
