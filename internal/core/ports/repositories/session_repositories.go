package repositories

import "context"

// Keys of the persisted session entries.
const (
	AuthTokenKey     = "authToken"
	CurrentUserKey   = "currentUser"
	LastLoginTimeKey = "lastLoginTime"
)

// SessionStore is a string key-value store scoped to one client session.
type SessionStore interface {
	// Get returns the value stored under key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
