package console

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/core/ports"
	"github.com/AssiaOU26/Cars-front/internal/core/services"
	"github.com/AssiaOU26/Cars-front/test/mocks"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func seeded() *mocks.MockBackend {
	api := mocks.NewMockBackend()
	api.Requests = []domain.ServiceRequest{
		mocks.CreateTestRequest("1", domain.StatusSubmitted),
		mocks.CreateTestRequest("2", domain.StatusCompleted),
	}
	api.Contacts = []domain.Contact{{ID: "c1", Name: "Bob's Towing", Phone: "555", Role: domain.ContactTowing}}
	api.Users = []domain.Account{
		mocks.CreateTestAccount("1", domain.RoleSuperAdmin, domain.AccountActive),
		mocks.CreateTestAccount("2", domain.RoleAdmin, domain.AccountActive),
		mocks.CreateTestAccount("3", domain.RoleUser, ""),
	}
	return api
}

func loadedAdmin(t *testing.T, api *mocks.MockBackend) *services.AdminDashboard {
	t.Helper()
	d := services.NewAdminDashboard(api, services.StaticIdentity{ID: "2", Role: domain.RoleAdmin}, services.DashboardOptions{
		Toaster: mocks.NewMockToaster(),
	})
	require.NoError(t, d.Load(context.Background()))
	return d
}

func TestShell_EndOfInputLeavesLoop(t *testing.T) {
	var out bytes.Buffer
	sh := NewShell(strings.NewReader(""), &out, nil)

	err := sh.RunAdmin(context.Background(), loadedAdmin(t, seeded()))

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "leave the console")
}

func TestShell_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sh := NewShell(script("list"), &bytes.Buffer{}, nil)

	err := sh.RunAdmin(ctx, loadedAdmin(t, seeded()))

	assert.ErrorIs(t, err, context.Canceled)
}

func runUntilDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("shell still waiting for input after cancel")
		return nil
	}
}

func TestShell_CancelWhileIdleAtPrompt(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	sh := NewShell(pr, &bytes.Buffer{}, nil)
	d := loadedAdmin(t, seeded())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sh.RunAdmin(ctx, d) }()
	time.AfterFunc(20*time.Millisecond, cancel)

	assert.ErrorIs(t, runUntilDone(t, done), context.Canceled)
}

func TestShell_CancelInterruptsPendingQuestion(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	api := seeded()
	sh := NewShell(pr, &bytes.Buffer{}, nil)
	d := loadedAdmin(t, api)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sh.RunAdmin(ctx, d) }()

	_, err := pw.Write([]byte("create\n"))
	require.NoError(t, err)
	cancel()

	assert.ErrorIs(t, runUntilDone(t, done), context.Canceled)
	assert.Zero(t, api.CallCount(mocks.OpCreateRequest))
}

func TestShell_AdminCommands(t *testing.T) {
	api := seeded()
	d := loadedAdmin(t, api)
	var out bytes.Buffer
	sh := NewShell(script(
		"bogus",
		"filter sideways",
		"resolve",
		"resolve 2",
		"resolve 1",
		"list",
		"quit",
		"list",
	), &out, nil)

	require.NoError(t, sh.RunAdmin(context.Background(), d))

	text := out.String()
	assert.Contains(t, text, `unknown command "bogus"`)
	assert.Contains(t, text, "invalid option")
	assert.Contains(t, text, "usage: resolve <id>")
	assert.Contains(t, text, domain.ErrRequestCompleted.Error())
	assert.Equal(t, []mocks.StatusChange{{ID: "1", Status: string(domain.StatusCompleted)}}, api.StatusUpdates)
	assert.Contains(t, text, "Overview")
	assert.Equal(t, 1, strings.Count(text, "filter: all"))
}

func TestShell_FilterReloads(t *testing.T) {
	api := seeded()
	d := loadedAdmin(t, api)
	sh := NewShell(script("filter in-progress", "search flat tire", "quit"), &bytes.Buffer{}, nil)

	require.NoError(t, sh.RunAdmin(context.Background(), d))

	f := d.Snapshot().Filter
	assert.Equal(t, domain.StatusInProgress, f.Status)
	assert.Equal(t, "flat tire", f.Query)
	assert.Len(t, api.Filters, 3)
}

func TestShell_CreateRequest(t *testing.T) {
	api := seeded()
	d := loadedAdmin(t, api)
	var out bytes.Buffer
	sh := NewShell(script(
		"create",
		"Jane Doe",
		"Toyota Corolla 2020",
		"555-1000",
		"Main St",
		"",
		"Flat tire",
		"high",
		"https://img.example/car.jpg",
		"",
		"quit",
	), &out, nil)

	require.NoError(t, sh.RunAdmin(context.Background(), d))

	require.Len(t, api.CreatedRequests, 1)
	sent := api.CreatedRequests[0]
	info := domain.ParseCustomerInfo(sent.UserInfo)
	assert.Equal(t, "Jane Doe", info.Name)
	assert.Equal(t, "Flat tire", info.Issue)
	assert.Equal(t, domain.UrgencyHigh, info.Urgency)
	require.NotNil(t, sent.ImageURL)
	assert.Equal(t, "https://img.example/car.jpg", *sent.ImageURL)
	assert.Contains(t, out.String(), "parsed: Jane Doe / Toyota Corolla 2020 / 555-1000 / Main St")
	assert.Contains(t, out.String(), "created request #")
	assert.False(t, d.CreateRequest.IsOpen())
}

func TestShell_AssignRequest(t *testing.T) {
	api := seeded()
	api.Assignments = []domain.Assignment{{ID: "a1", RequestID: "1", UserID: "3", Status: domain.AssignmentAssigned, Notes: "first tow"}}
	d := loadedAdmin(t, api)
	var out bytes.Buffer
	sh := NewShell(script("assign 1", "2", "c1", "in_progress", "bring a jack", "quit"), &out, nil)

	require.NoError(t, sh.RunAdmin(context.Background(), d))
	assert.Contains(t, out.String(), "first tow")
	assert.Equal(t, 1, api.CallCount(mocks.OpFetchAssignments))

	require.Len(t, api.SubmittedAssigns, 1)
	a := api.SubmittedAssigns[0]
	assert.Equal(t, domain.ID("1"), a.RequestID)
	assert.Equal(t, domain.ID("2"), a.UserID)
	assert.Equal(t, domain.ID("c1"), a.OperatorID)
	assert.Equal(t, domain.AssignmentInProgress, a.Status)
	assert.False(t, d.Assignment.IsOpen())
}

func TestShell_SuperAdminCommands(t *testing.T) {
	api := seeded()
	d := services.NewSuperAdminDashboard(api, services.StaticIdentity{ID: "1", Role: domain.RoleSuperAdmin}, services.DashboardOptions{
		Toaster: mocks.NewMockToaster(),
	})
	require.NoError(t, d.Load(context.Background()))
	var out bytes.Buffer
	sh := NewShell(script(
		"panel users",
		"approve 3",
		"delete 2",
		"n",
		"delete 2",
		"y",
		"role 1 admin",
		"quit",
	), &out, nil)

	require.NoError(t, sh.RunSuperAdmin(context.Background(), d))

	assert.Equal(t, services.PanelUsers, d.Panel())
	assert.Contains(t, out.String(), "Pending approval")
	assert.Equal(t, []mocks.StatusChange{{ID: "3", Status: "active"}}, api.UserStatusCalls)
	assert.Equal(t, 1, api.CallCount(mocks.OpDeleteRequest))
	assert.Zero(t, api.CallCount(mocks.OpUpdateUserRole))
}

func TestShell_OperatorAdd(t *testing.T) {
	api := seeded()
	d := services.NewSuperAdminDashboard(api, services.StaticIdentity{ID: "1", Role: domain.RoleSuperAdmin}, services.DashboardOptions{
		Toaster: mocks.NewMockToaster(),
	})
	require.NoError(t, d.Load(context.Background()))
	sh := NewShell(script("operator add", "Ace", "555-2000", "", "emergency", "quit"), &bytes.Buffer{}, nil)

	require.NoError(t, sh.RunSuperAdmin(context.Background(), d))

	require.Len(t, api.SavedContacts, 1)
	assert.Equal(t, "Ace", api.SavedContacts[0].Name)
	assert.Equal(t, domain.ContactEmergency, api.SavedContacts[0].Role)
}

func TestShell_RunOnboarding(t *testing.T) {
	store := mocks.NewMockLocalStorage()
	wiz := services.NewOnboardingWizard(context.Background(), store, nil)
	var out bytes.Buffer
	sh := NewShell(script(
		"Fast roadside fixes",
		"Towing",
		"Towing",
		"Tires",
		"",
		services.HourlyOptions[0],
		"https://example.com/me",
		"",
		"",
	), &out, nil)

	require.NoError(t, sh.RunOnboarding(context.Background(), wiz))

	p := wiz.Profile()
	assert.Equal(t, "Fast roadside fixes", p.OneLiner)
	assert.Equal(t, []string{"Towing", "Tires"}, p.Skills)
	assert.Equal(t, services.HourlyOptions[0], p.Hourly)
	assert.Equal(t, "https://example.com/me", p.Links[0])
	assert.Contains(t, out.String(), "skill already listed")
	assert.Contains(t, out.String(), "completed")
	done, _ := store.Value(ports.KeyOnboardingCompleted)
	assert.Equal(t, "true", done)
}

func TestShell_SubmitUserRequest(t *testing.T) {
	api := mocks.NewMockBackend()
	svc := services.NewUserRequestService(api, mocks.NewMockToaster(), nil)
	photo := filepath.Join(t.TempDir(), "car.png")
	require.NoError(t, os.WriteFile(photo, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o600))
	sh := NewShell(script("Jane", "Stuck on I-5", "", photo), &bytes.Buffer{}, nil)

	require.NoError(t, sh.SubmitUserRequest(context.Background(), svc))

	require.Len(t, api.CreatedRequests, 1)
	assert.Equal(t, "Jane\nStuck on I-5", api.CreatedRequests[0].UserInfo)
	require.Len(t, api.UploadedPhotos, 1)
	assert.Equal(t, "car.png", api.UploadedPhotos[0].Filename)
}

func TestReadPhoto_Missing(t *testing.T) {
	_, err := ReadPhoto(filepath.Join(t.TempDir(), "absent.png"))
	assert.Error(t, err)
}

func TestParseRequestStatus(t *testing.T) {
	tests := []struct {
		in   string
		want domain.RequestStatus
		ok   bool
	}{
		{"all", "", true},
		{"Submitted", domain.StatusSubmitted, true},
		{"in-progress", domain.StatusInProgress, true},
		{"done", domain.StatusCompleted, true},
		{"In Progress", domain.StatusInProgress, true},
		{"completed", domain.StatusCompleted, true},
		{"paused", "", false},
	}
	for _, tt := range tests {
		got, err := parseRequestStatus(tt.in)
		if !tt.ok {
			assert.ErrorIs(t, err, services.ErrInvalidOption, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestUsageStrings(t *testing.T) {
	assert.Equal(t, "<all|submitted|in-progress|completed>", statusUsage())
	assert.Equal(t, "<operators|requests|users>", panelUsage())
}
