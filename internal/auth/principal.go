package auth

// Role names granted to authenticated principals.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Principal is the request-scoped identity reconstructed from a verified
// session token. It lives for exactly one request.
type Principal struct {
	Email   string
	Name    string
	IsAdmin bool
	Roles   []string
}

// NewPrincipal derives a principal and its roles from token claims.
// Every principal holds USER; admins additionally hold ADMIN.
func NewPrincipal(email, name string, isAdmin bool) Principal {
	roles := []string{RoleUser}
	if isAdmin {
		roles = append(roles, RoleAdmin)
	}
	return Principal{
		Email:   email,
		Name:    name,
		IsAdmin: isAdmin,
		Roles:   roles,
	}
}

// HasRole reports whether the principal carries the named role.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
