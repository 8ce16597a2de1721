package auth

// Permission es el nivel de acceso del owner autenticado.
type Permission int

const (
	PermissionAdmin Permission = 1 // acceso completo
	PermissionOwner Permission = 2 // solo ve sus propios gatos
)

func (p Permission) Valid() bool {
	return p == PermissionAdmin || p == PermissionOwner
}

func (p Permission) String() string {
	switch p {
	case PermissionAdmin:
		return "admin"
	case PermissionOwner:
		return "owner"
	default:
		return "unknown"
	}
}

// Claims representa la información asociada a la sesión.
type Claims struct {
	OwnerID    int64
	Email      string
	Permission Permission
}

func (c Claims) IsAdmin() bool {
	return c.Permission == PermissionAdmin
}
