package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AssiaOU26/Cars-front/internal/core/domain"
)

func TestResolveViewer(t *testing.T) {
	tests := []struct {
		name string
		id   domain.Identity
		want domain.ViewerKind
	}{
		{"pending super admin", domain.Identity{Role: domain.RoleSuperAdmin, Status: domain.AccountPending}, domain.ViewerPending},
		{"super admin", domain.Identity{Role: domain.RoleSuperAdmin, Status: domain.AccountActive}, domain.ViewerSuperAdmin},
		{"admin", domain.Identity{Role: domain.RoleAdmin, Status: domain.AccountActive}, domain.ViewerAdmin},
		{"user", domain.Identity{Role: domain.RoleUser, Status: domain.AccountActive}, domain.ViewerUser},
		{"missing status", domain.Identity{Role: domain.RoleAdmin}, domain.ViewerAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ResolveViewer(tt.id))
		})
	}
}

func TestAccount_EffectiveStatus(t *testing.T) {
	assert.Equal(t, domain.AccountPending, domain.Account{}.EffectiveStatus())
	assert.Equal(t, domain.AccountDenied, domain.Account{Status: domain.AccountDenied}.EffectiveStatus())
}

func TestAccountStatus_Revokes(t *testing.T) {
	assert.True(t, domain.AccountInactive.Revokes())
	assert.True(t, domain.AccountDenied.Revokes())
	assert.False(t, domain.AccountActive.Revokes())
	assert.False(t, domain.AccountPending.Revokes())
}

func TestParseRole(t *testing.T) {
	r, ok := domain.ParseRole(" Super_Admin ")
	assert.True(t, ok)
	assert.Equal(t, domain.RoleSuperAdmin, r)
	assert.True(t, r.IsStaff())

	_, ok = domain.ParseRole("owner")
	assert.False(t, ok)
	assert.False(t, domain.RoleUser.IsStaff())
}

func TestID_UnmarshalNumberAndString(t *testing.T) {
	var payload struct {
		A domain.ID `json:"a"`
		B domain.ID `json:"b"`
		C domain.ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 42, "b": "abc", "c": null}`), &payload))

	assert.Equal(t, domain.ID("42"), payload.A)
	assert.Equal(t, domain.ID("abc"), payload.B)
	assert.Equal(t, domain.ID(""), payload.C)
}

func TestServiceRequest_Flags(t *testing.T) {
	r := domain.ServiceRequest{Status: domain.StatusCompleted, ContactName: "Bob"}
	assert.True(t, r.IsCompleted())
	assert.True(t, r.IsAssigned())
	assert.False(t, domain.ServiceRequest{}.IsAssigned())
}
