package services

import (
	"context"

	"github.com/SscSPs/bank_console/internal/core/domain"
)

// SessionReaderSvc exposes the current session without changing it.
type SessionReaderSvc interface {
	// Current returns the active session, or nil when anonymous.
	Current() *domain.Session

	// State reports the lifecycle stage of the session.
	State() domain.SessionState

	// Claims decodes the bearer token of the active session for display.
	Claims() (*domain.TokenInfo, error)
}

// SessionSvc owns the authentication lifecycle.
type SessionSvc interface {
	SessionReaderSvc

	// Login authenticates against the ledger and persists the resulting session.
	Login(ctx context.Context, username, password string) (*domain.Session, error)

	// Register creates a customer at the ledger. It does not log in.
	Register(ctx context.Context, in domain.RegistrationInput) error

	// RestoreSession reinstates a persisted session without contacting the ledger.
	RestoreSession(ctx context.Context) bool

	// Logout discards the session and its persisted entries.
	Logout(ctx context.Context)

	// OnLogout registers a callback run after every logout, forced or not.
	OnLogout(fn func(ctx context.Context))
}
