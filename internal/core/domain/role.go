package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of access categories carried in session tokens.
type Role string

const (
	RoleFilm  Role = "film"
	RoleActor Role = "actor"
	RoleAdmin Role = "admin"
	// RoleUser is assigned to identities created through an external provider
	// until an administrator grants a domain role.
	RoleUser Role = "user"
)

// ParseRole converts a raw claim value into a Role. Matching is exact after
// trimming and lower-casing; anything outside the enumeration is rejected.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleFilm, RoleActor, RoleAdmin, RoleUser:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string { return string(r) }

// Admits reports whether r may invoke an operation gated by required.
// An empty required set admits any known role. Admin is a superset of the
// film and actor roles.
func (r Role) Admits(required ...Role) bool {
	if len(required) == 0 {
		return r != ""
	}
	for _, want := range required {
		if r == want {
			return true
		}
		if r == RoleAdmin && (want == RoleFilm || want == RoleActor) {
			return true
		}
	}
	return false
}
