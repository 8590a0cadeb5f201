package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
	"github.com/AssiaOU26/Cars-front/internal/core/ports"
	"github.com/AssiaOU26/Cars-front/internal/logger"
)

type fakeTokens struct {
	mu          sync.Mutex
	token       string
	invalidated int
}

func (f *fakeTokens) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeTokens) Invalidate(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.invalidated++
}

func newTestClient(t *testing.T, h http.HandlerFunc, tokens ports.TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL + "/", Tokens: tokens, HTTPClient: srv.Client()})
}

func TestClient_SendsBearerToken(t *testing.T) {
	var auth, requestID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		requestID = r.Header.Get("X-Request-ID")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`[]`))
	}, &fakeTokens{token: "abc"})

	_, err := c.FetchContacts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", auth)
	assert.NotEmpty(t, requestID)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}, &fakeTokens{})

	_, err := c.FetchUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, auth)
}

func TestClient_UnauthorizedInvalidatesSession(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		tokens := &fakeTokens{token: "stale"}
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":"Token expired"}`))
		}, tokens)

		_, err := c.FetchMe(context.Background())

		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, status, reqErr.Status)
		assert.Equal(t, "Token expired", reqErr.Message)
		assert.True(t, ports.IsSessionExpired(err))
		assert.Equal(t, 1, tokens.invalidated)
		assert.Empty(t, tokens.Token())
	}
}

func TestClient_ErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"Request not found"}`, "Request not found"},
		{"message field", `{"message":"Bad status"}`, "Bad status"},
		{"empty object", `{}`, MsgUnknownError},
		{"not json", `<html>oops</html>`, MsgNetworkNotOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			}, nil)

			err := c.DeleteRequest(context.Background(), "7")

			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			assert.False(t, ports.IsSessionExpired(err))
		})
	}
}

func TestClient_NoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/contacts/3", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}, nil)

	require.NoError(t, c.DeleteContact(context.Background(), "3"))
}

func TestClient_InvalidJSONOnSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}, nil)

	_, err := c.FetchMe(context.Background())

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, MsgNetworkNotOK, reqErr.Message)
}

func TestClient_FetchRequestsQuery(t *testing.T) {
	var query map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{"requests":[{"id":1,"userInfo":"Jane","status":"Submitted"}]}`))
	}, nil)

	got, err := c.FetchRequests(context.Background(), domain.RequestFilter{
		Status: domain.StatusInProgress,
		Query:  "jane",
		Limit:  100,
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.ID("1"), got[0].ID)
	assert.Equal(t, []string{"In Progress"}, query["status"])
	assert.Equal(t, []string{"jane"}, query["q"])
	assert.Equal(t, []string{"100"}, query["limit"])
	_, hasOffset := query["offset"]
	assert.False(t, hasOffset)
}

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"bare array", `[{"id":1},{"id":2}]`, 2},
		{"envelope", `{"contacts":[{"id":1}]}`, 1},
		{"wrong envelope", `{"items":[{"id":1}]}`, 0},
		{"null", `null`, 0},
		{"empty", ``, 0},
		{"scalar", `"nope"`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeList[domain.Contact](json.RawMessage(tt.raw), "contacts", logger.Discard())
			assert.NotNil(t, got)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestClient_FetchAssignments(t *testing.T) {
	for _, body := range []string{
		`[{"id":1,"requestId":7,"userId":"2","status":"assigned"}]`,
		`{"assignments":[{"id":1,"requestId":7,"userId":"2","status":"assigned"}]}`,
	} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/assignments", r.URL.Path)
			_, _ = w.Write([]byte(body))
		}, nil)

		got, err := c.FetchAssignments(context.Background())

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, domain.ID("7"), got[0].RequestID)
		assert.Equal(t, domain.ID("2"), got[0].UserID)
		assert.Equal(t, domain.AssignmentAssigned, got[0].Status)
	}
}

func TestNormalizeStats_LegacyFields(t *testing.T) {
	got := normalizeStats(json.RawMessage(`{"totalRequests":5,"pendingRequests":2}`))
	assert.Equal(t, domain.OverviewStats{TotalRequests: 5, Submitted: 2}, got)

	got = normalizeStats(json.RawMessage(`{"totalRequests":"9","submitted":3,"inProgress":4,"completedRequests":2}`))
	assert.Equal(t, domain.OverviewStats{TotalRequests: 9, Submitted: 3, InProgress: 4, Completed: 2}, got)

	assert.Equal(t, domain.OverviewStats{}, normalizeStats(nil))
}

func TestClient_LoginRequiresToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var creds domain.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Password == "secret" {
			_, _ = w.Write([]byte(`{"token":"jwt"}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}, nil)

	token, err := c.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "jwt", token)

	_, err = c.Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "other"})
	assert.True(t, errors.Is(err, ErrNoToken))
}

func TestClient_UpdateUserStatusMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/users/12/status", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"status":"active"}`, string(body))
		_, _ = w.Write([]byte(`{"message":"User approved"}`))
	}, nil)

	msg, err := c.UpdateUserStatus(context.Background(), "12", domain.AccountActive)
	require.NoError(t, err)
	assert.Equal(t, "User approved", msg)
}

func TestClient_MultipartUpload(t *testing.T) {
	var fields map[string]string
	var photo []byte
	var photoType, filename string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		fields = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			fields[k] = v[0]
		}
		f, hdr, err := r.FormFile("photo")
		require.NoError(t, err)
		defer f.Close()
		photo, _ = io.ReadAll(f)
		photoType = hdr.Header.Get("Content-Type")
		filename = hdr.Filename
		_, _ = w.Write([]byte(`{"id":"r-1","userInfo":"x","status":"Submitted"}`))
	}, nil)

	url := "https://img.example/1.png"
	created, err := c.CreateRequestMultipart(context.Background(), domain.NewRequest{
		Title:    "Flat",
		UserInfo: "Jane",
		ImageURL: &url,
	}, &domain.Photo{Filename: "car.png", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}})

	require.NoError(t, err)
	assert.Equal(t, domain.ID("r-1"), created.ID)
	assert.Equal(t, "Flat", fields["title"])
	assert.Equal(t, "Jane", fields["userInfo"])
	assert.Equal(t, url, fields["imageUrl"])
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, photo)
	assert.Equal(t, "image/png", photoType)
	assert.Equal(t, "car.png", filename)
}

func TestClient_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalRequests":1}`))
	}))
	defer srv.Close()
	c := NewClient(Options{BaseURL: srv.URL, HTTPClient: srv.Client(), Metrics: NewMetrics(reg)})

	_, err := c.FetchOverviewStats(context.Background())
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	var calls float64
	for _, mf := range families {
		if mf.GetName() != "cars_front_gateway_calls_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			calls += m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 1.0, calls)
}
