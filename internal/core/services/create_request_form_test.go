package services_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/core/services"
	"github.com/AssiaOU26/Cars-front/test/mocks"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func openCreateForm(api *mocks.MockBackend, toast *mocks.MockToaster, notifier *mocks.MockDispatchNotifier) *services.CreateRequestForm {
	if notifier == nil {
		notifier = mocks.NewMockDispatchNotifier()
	}
	f := services.NewCreateRequestForm(services.FormDeps{
		API:      api,
		Toaster:  toast,
		Identity: services.StaticIdentity{ID: "2", Role: domain.RoleAdmin},
		Notifier: notifier,
	}, nil)
	f.Open()
	return f
}

func TestCreateRequestForm_BlurParsesPositionalLines(t *testing.T) {
	f := openCreateForm(mocks.NewMockBackend(), mocks.NewMockToaster(), mocks.NewMockDispatchNotifier())

	f.EditCustomerInfo("Jane Doe\nToyota Corolla 2020\n555-1000\nMain St")
	f.BlurCustomerInfo()

	d := f.Draft()
	assert.Equal(t, "Jane Doe", d.CustomerName)
	assert.Equal(t, "Toyota Corolla", d.CarModel)
	assert.Equal(t, "2020", d.CarYear)
	assert.Equal(t, "555-1000", d.CustomerPhone)
	assert.Equal(t, "Main St", d.Location)
	assert.Equal(t, domain.UrgencyMedium, d.Urgency)
}

func TestCreateRequestForm_CustomerInfoText(t *testing.T) {
	f := openCreateForm(mocks.NewMockBackend(), mocks.NewMockToaster(), nil)

	f.SetCustomer("Jane", "", "Main St")
	f.SetVehicle("Honda Civic", "2018")

	assert.Equal(t, "Jane\nHonda Civic 2018\nMain St", f.CustomerInfoText())

	f.EditCustomerInfo("raw text")
	assert.Equal(t, "raw text", f.CustomerInfoText())
}

func TestCreateRequestForm_SubmitComposesBlock(t *testing.T) {
	api := mocks.NewMockBackend()
	toast := mocks.NewMockToaster()
	f := openCreateForm(api, toast, nil)

	f.EditCustomerInfo("Jane Doe\nToyota Corolla 2020\n555-1000\nMain St")
	f.SetIssue("Flat tire")
	require.NoError(t, f.SetUrgency("high"))
	f.SetImageURL("https://img.example/car.jpg")

	created, err := f.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, created)

	require.Len(t, api.CreatedRequests, 1)
	sent := api.CreatedRequests[0]
	assert.Equal(t, "Flat tire", sent.Title)
	assert.Equal(t, sent.UserInfo, sent.Description)
	require.NotNil(t, sent.ImageURL)
	assert.Equal(t, "https://img.example/car.jpg", *sent.ImageURL)

	info := domain.ParseCustomerInfo(sent.UserInfo)
	assert.Equal(t, "Jane Doe", info.Name)
	assert.Equal(t, "Toyota Corolla 2020", info.Vehicle)
	assert.Equal(t, "Flat tire", info.Issue)
	assert.Equal(t, domain.UrgencyHigh, info.Urgency)

	assert.Equal(t, []string{services.MsgRequestCreated}, toast.Successes())
	assert.False(t, f.IsOpen())
	assert.Zero(t, api.CallCount(mocks.OpSubmitAssignment))
}

func TestCreateRequestForm_Validation(t *testing.T) {
	api := mocks.NewMockBackend()
	toast := mocks.NewMockToaster()
	f := openCreateForm(api, toast, nil)

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, services.ErrMissingCustomer)

	f.EditCustomerInfo("Jane")
	_, err = f.Submit(context.Background())
	assert.ErrorIs(t, err, services.ErrMissingIssue)
	assert.Equal(t, services.MsgMissingIssue, toast.LastError())

	assert.Zero(t, api.TotalCalls())
	assert.True(t, f.IsOpen())
}

func TestCreateRequestForm_ClosedForm(t *testing.T) {
	f := openCreateForm(mocks.NewMockBackend(), mocks.NewMockToaster(), nil)
	f.Close()

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, services.ErrFormClosed)
}

func TestCreateRequestForm_PhotoGoesMultipart(t *testing.T) {
	api := mocks.NewMockBackend()
	f := openCreateForm(api, mocks.NewMockToaster(), nil)

	f.SetImageURL("https://img.example/old.jpg")
	require.NoError(t, f.AttachPhoto(domain.Photo{Filename: "car.png", Data: pngHeader}))
	assert.Empty(t, f.Draft().ImageURL)
	assert.Contains(t, f.ImagePreview(), "car.png")

	f.EditCustomerInfo("Jane")
	f.SetIssue("Dead battery")
	_, err := f.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, api.CallCount(mocks.OpCreateRequestMultipart))
	assert.Zero(t, api.CallCount(mocks.OpCreateRequest))
	require.Len(t, api.UploadedPhotos, 1)
	assert.Equal(t, "image/png", api.UploadedPhotos[0].ContentType)
}

func TestCreateRequestForm_PhotoValidation(t *testing.T) {
	f := openCreateForm(mocks.NewMockBackend(), mocks.NewMockToaster(), nil)

	err := f.AttachPhoto(domain.Photo{Filename: "notes.txt", Data: []byte("plain text")})
	assert.ErrorIs(t, err, services.ErrPhotoNotImage)

	big := bytes.Repeat([]byte{0}, services.MaxPhotoBytes+1)
	err = f.AttachPhoto(domain.Photo{Filename: "huge.png", ContentType: "image/png", Data: big})
	assert.ErrorIs(t, err, services.ErrPhotoTooLarge)

	assert.Nil(t, f.Draft().Photo)
}

func TestCreateRequestForm_AssignsOperator(t *testing.T) {
	api := mocks.NewMockBackend()
	notifier := mocks.NewMockDispatchNotifier()
	f := openCreateForm(api, mocks.NewMockToaster(), notifier)

	f.EditCustomerInfo("Jane")
	f.SetIssue("Tow needed")
	f.SetOperator("c1")
	created, err := f.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, api.SubmittedAssigns, 1)
	a := api.SubmittedAssigns[0]
	assert.Equal(t, created.ID, a.RequestID)
	assert.Equal(t, domain.ID("c1"), a.OperatorID)
	assert.Equal(t, domain.ID("2"), a.UserID)
	assert.Equal(t, domain.AssignmentAssigned, a.Status)

	events := notifier.GetEvents()
	require.Len(t, events, 1)
	assert.Equal(t, created.ID.String(), events[0].RequestID)
	assert.Equal(t, "2", events[0].AssignedBy)
}

func TestCreateRequestForm_PartialAssignment(t *testing.T) {
	api := mocks.NewMockBackend()
	toast := mocks.NewMockToaster()
	reloaded := 0
	f := services.NewCreateRequestForm(services.FormDeps{API: api, Toaster: toast}, func(context.Context) { reloaded++ })
	f.Open()
	api.Fail(mocks.OpSubmitAssignment, errors.New("boom"))

	f.EditCustomerInfo("Jane")
	f.SetIssue("Tow needed")
	f.SetOperator("c1")
	created, err := f.Submit(context.Background())

	require.NotNil(t, created)
	assert.ErrorIs(t, err, services.ErrAssignmentPartial)
	assert.Equal(t, services.MsgAssignmentPartial, toast.LastError())
	assert.Contains(t, toast.Successes(), services.MsgRequestCreated)
	assert.Len(t, api.Requests, 1)
	assert.False(t, f.IsOpen())
	assert.Equal(t, 1, reloaded)
}

func TestAssignmentForm_RequiresAssignee(t *testing.T) {
	api := mocks.NewMockBackend()
	toast := mocks.NewMockToaster()
	f := services.NewAssignmentForm(services.FormDeps{API: api, Toaster: toast}, nil)

	assert.ErrorIs(t, f.Submit(context.Background()), services.ErrFormClosed)

	f.Open("1")
	assert.ErrorIs(t, f.Submit(context.Background()), services.ErrNoAssignee)
	assert.Equal(t, services.MsgSelectAssignee, toast.LastError())
	assert.Zero(t, api.TotalCalls())
}

func TestAssignmentForm_Submit(t *testing.T) {
	api := mocks.NewMockBackend()
	toast := mocks.NewMockToaster()
	notifier := mocks.NewMockDispatchNotifier()
	notifier.NotifyError = errors.New("broker down")
	f := services.NewAssignmentForm(services.FormDeps{API: api, Toaster: toast, Notifier: notifier}, nil)

	f.Open("1")
	f.SetAssignee("2")
	f.SetNotes("  bring jack  ")
	require.ErrorIs(t, f.SetStatus("done"), services.ErrInvalidOption)
	require.NoError(t, f.SetStatus(domain.AssignmentInProgress))
	require.NoError(t, f.Submit(context.Background()))

	require.Len(t, api.SubmittedAssigns, 1)
	a := api.SubmittedAssigns[0]
	assert.Equal(t, domain.ID("2"), a.UserID)
	assert.Equal(t, "bring jack", a.Notes)
	assert.Equal(t, domain.AssignmentInProgress, a.Status)
	assert.Equal(t, []string{services.MsgRequestAssigned}, toast.Successes())
	assert.Equal(t, 1, notifier.NotifyCallCount)
	assert.False(t, f.IsOpen())
}
