package domain

// ViewerKind selects the dashboard shown to the signed-in user. It is
// resolved once at the root and handed down.
type ViewerKind int

const (
	ViewerPending ViewerKind = iota
	ViewerUser
	ViewerAdmin
	ViewerSuperAdmin
)

func (k ViewerKind) String() string {
	switch k {
	case ViewerPending:
		return "pending"
	case ViewerAdmin:
		return "admin"
	case ViewerSuperAdmin:
		return "super_admin"
	default:
		return "user"
	}
}

// ResolveViewer applies the pending check before the role switch.
func ResolveViewer(id Identity) ViewerKind {
	if id.Status == AccountPending {
		return ViewerPending
	}
	switch id.Role {
	case RoleSuperAdmin:
		return ViewerSuperAdmin
	case RoleAdmin:
		return ViewerAdmin
	default:
		return ViewerUser
	}
}
