package domain

import "strings"

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole normalizes a role string.
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return r, true
	}
	return r, false
}

// IsStaff reports whether the role may receive assignments.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

func (r Role) Label() string {
	switch r {
	case RoleSuperAdmin:
		return "Super Admin"
	case RoleAdmin:
		return "Admin"
	default:
		return "User"
	}
}

type AccountStatus string

const (
	AccountPending  AccountStatus = "pending"
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
	AccountDenied   AccountStatus = "denied"
)

func (s AccountStatus) Valid() bool {
	switch s {
	case AccountPending, AccountActive, AccountInactive, AccountDenied:
		return true
	}
	return false
}

// Revokes reports whether moving to s takes access away from the account.
func (s AccountStatus) Revokes() bool {
	return s == AccountInactive || s == AccountDenied
}

// Account is a platform user as returned by /api/users and /api/me.
type Account struct {
	ID       ID            `json:"id"`
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Role     Role          `json:"role"`
	Status   AccountStatus `json:"status"`
}

// EffectiveStatus treats a missing status as pending.
func (a Account) EffectiveStatus() AccountStatus {
	if a.Status == "" {
		return AccountPending
	}
	return a.Status
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
}
