package domain

// Identity is the decoded payload of an access token: everything the gate
// knows about the caller. Claims are trusted as-is for the token lifetime;
// nothing here is re-checked against storage per request.
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  Role
}

// IsAdmin reports whether the identity carries the administrator role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
