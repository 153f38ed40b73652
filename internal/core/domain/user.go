package domain

import "time"

// User is the persisted identity record of a logged-in customer.
type User struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// Session is the authenticated identity plus the bearer credential held for it.
// A Session is only valid while Token is non-empty.
type Session struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Token    string `json:"-"`
}

// User returns the identity part of the session, the shape that gets persisted.
func (s Session) User() User {
	return User{Username: s.Username, FullName: s.FullName}
}

// Valid reports whether the session carries a bearer credential.
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

// SessionState is the lifecycle stage of the console session.
type SessionState int32

const (
	Anonymous SessionState = iota
	Authenticating
	Authenticated
)

func (s SessionState) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// TokenInfo is what can be read from the bearer token without verifying it.
// It is informational and never used to decide access.
type TokenInfo struct {
	Subject   string     `json:"subject,omitempty"`
	Issuer    string     `json:"issuer,omitempty"`
	IssuedAt  *time.Time `json:"issuedAt,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}
