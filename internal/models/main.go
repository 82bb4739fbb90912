// Package models defines the core data structures for users and sessions.
package models

import "time"

// User represents a registered identity with credentials.
type User struct {
	// ID is the unique identifier for the user, generated at registration.
	ID string
	// Username is the login name chosen by the user. Unique, case-sensitive.
	Username string
	// PasswordHash is the salted bcrypt hash of the user's password.
	PasswordHash []byte
}

// PublicUser is the identity view exposed outside the auth core.
// It never carries the password hash.
type PublicUser struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Username is the login name of the user.
	Username string `json:"username"`
}

// Public returns the externally visible view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}

// SessionState defines the lifecycle state of a session record.
type SessionState int

const (
	// StateUnbound is a live session with no user attached.
	StateUnbound SessionState = iota
	// StateBound is a live session attached to a user.
	StateBound
	// StateDestroyed is the terminal state after logout or expiry.
	StateDestroyed
)

// String returns the state name for logging.
func (s SessionState) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateBound:
		return "bound"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Session is a server-side record binding a transport-level session
// identifier to a user (or none).
type Session struct {
	// ID is the opaque identifier carried by the client's cookie.
	ID string
	// State tracks the session lifecycle: Unbound, Bound or Destroyed.
	State SessionState
	// User is the bound identity. Nil unless State is StateBound.
	User *PublicUser
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time
	// ExpiresAt is the fixed expiry (creation time + TTL, not sliding).
	ExpiresAt time.Time
}
