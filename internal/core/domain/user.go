package domain

import "time"

// Identity providers.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// Identity is the resolved caller, independent of how it authenticated.
type Identity struct {
	Username    string `json:"username"`
	Role        Role   `json:"role"`
	DisplayName string `json:"displayName,omitempty"`
}

// User is a known account in the identity store.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Subject      string    `json:"-"`
	Role         Role      `json:"role"`
	DisplayName  string    `json:"displayName,omitempty"`
	Provider     string    `json:"provider"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity projects the user onto the fields carried by a session token.
func (u *User) Identity() Identity {
	return Identity{Username: u.Username, Role: u.Role, DisplayName: u.DisplayName}
}

// ExternalProfile is what a verified third-party identity token asserts.
type ExternalProfile struct {
	Subject string
	Email   string
	Name    string
}

// SessionToken is a signed bearer credential.
type SessionToken struct {
	Value     string    `json:"token"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
