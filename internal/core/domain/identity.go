package domain

// Identity is decoded from the session token payload. It is a display hint
// and never an authorization decision; /api/me is authoritative.
type Identity struct {
	ID       ID
	Username string
	Email    string
	Role     Role
	Status   AccountStatus
}

// FromAccount converts the /api/me answer into an Identity.
func FromAccount(a Account) Identity {
	return Identity{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		Role:     a.Role,
		Status:   a.Status,
	}
}
