package models

// Identity is the authenticated caller handed to the resource handlers
type Identity struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// HasRole reports whether the identity holds role.
func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Credential is a stored login: a bcrypt hash and the granted role names
type Credential struct {
	Username     string   `json:"username" db:"username"`
	PasswordHash string   `json:"-" db:"password_hash"` // never send to client
	Roles        []string `json:"roles" db:"roles"`
}

// Identity returns the identity this credential authenticates as.
func (c Credential) Identity() Identity {
	roles := make([]string, len(c.Roles))
	copy(roles, c.Roles)
	return Identity{Username: c.Username, Roles: roles}
}
