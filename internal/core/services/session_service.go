package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SscSPs/bank_console/internal/apperrors"
	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/SscSPs/bank_console/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/bank_console/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_console/internal/core/ports/services"
	"github.com/SscSPs/bank_console/internal/dto"
	"github.com/SscSPs/bank_console/internal/utils"
	"github.com/SscSPs/bank_console/internal/validation"
)

type ledgerSessionGateway interface {
	gateways.LedgerCredentialHolder
	gateways.LedgerAuthGateway
}

// sessionService implements SessionSvc. The session is replaced as a whole
// value so concurrent readers never see a half-built one.
type sessionService struct {
	BaseService
	ledger ledgerSessionGateway
	store  portsrepo.SessionStore
	now    func() time.Time

	session atomic.Pointer[domain.Session]
	state   atomic.Int32

	mu       sync.Mutex
	onLogout []func(ctx context.Context)
}

// SessionOption is a functional option for configuring the session service
type SessionOption func(*sessionService)

// WithSessionClock overrides the clock used for the last-login timestamp.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *sessionService) {
		s.now = now
	}
}

// NewSessionService creates the session manager and registers it as the
// ledger's session-expiry hook.
func NewSessionService(ledger ledgerSessionGateway, store portsrepo.SessionStore, options ...SessionOption) portssvc.SessionSvc {
	svc := &sessionService{
		ledger: ledger,
		store:  store,
		now:    time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	ledger.OnSessionExpired(svc.handleSessionExpired)
	return svc
}

var _ portssvc.SessionSvc = (*sessionService)(nil)

func (s *sessionService) Current() *domain.Session {
	session := s.session.Load()
	if !session.Valid() {
		return nil
	}
	return session
}

func (s *sessionService) State() domain.SessionState {
	return domain.SessionState(s.state.Load())
}

func (s *sessionService) Claims() (*domain.TokenInfo, error) {
	session := s.Current()
	if session == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	claims, err := utils.ParseUnverifiedClaims(session.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session token: %w", err)
	}
	info := &domain.TokenInfo{Subject: claims.Subject, Issuer: claims.Issuer}
	if claims.IssuedAt != nil {
		info.IssuedAt = &claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = &claims.ExpiresAt.Time
	}
	return info, nil
}

func (s *sessionService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if err := validation.Login(username, password); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)

	s.state.Store(int32(domain.Authenticating))
	resp, err := s.ledger.Login(ctx, dto.LoginRequest{Username: username, Password: password})
	if err != nil {
		s.settleState()
		s.LogWarn(ctx, err, "Login rejected", slog.String("username", username))
		return nil, err
	}
	if resp.Token == "" {
		s.settleState()
		err := &apperrors.APIError{Kind: apperrors.ErrRemoteRejected, Message: "Login failed: no token received"}
		s.LogError(ctx, err, "Ledger login response carried no token", slog.String("username", username))
		return nil, err
	}

	session := sessionFromLogin(resp, username)
	if err := s.persist(ctx, session); err != nil {
		s.settleState()
		s.LogError(ctx, err, "Failed to persist session", slog.String("username", username))
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	s.ledger.SetToken(session.Token)
	s.session.Store(session)
	s.state.Store(int32(domain.Authenticated))
	s.LogInfo(ctx, "User logged in", slog.String("username", session.Username))
	return session, nil
}

// sessionFromLogin builds the session from a login response. The display name
// falls back to the username when the ledger sent none.
func sessionFromLogin(resp *dto.LoginResponse, submitted string) *domain.Session {
	username := resp.Username
	if username == "" {
		username = submitted
	}
	fullName := resp.FullName
	if fullName == "" {
		fullName = resp.Username
	}
	if fullName == "" {
		fullName = submitted
	}
	return &domain.Session{Username: username, FullName: fullName, Token: resp.Token}
}

// settleState leaves the Authenticating stage after a failed attempt. A session
// that was already active stays active.
func (s *sessionService) settleState() {
	if s.Current() != nil {
		s.state.Store(int32(domain.Authenticated))
		return
	}
	s.state.Store(int32(domain.Anonymous))
}

func (s *sessionService) persist(ctx context.Context, session *domain.Session) error {
	user, err := json.Marshal(session.User())
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, portsrepo.AuthTokenKey, session.Token); err != nil {
		return err
	}
	if err := s.store.Set(ctx, portsrepo.CurrentUserKey, string(user)); err != nil {
		s.clearStorage(ctx)
		return err
	}
	return s.store.Set(ctx, portsrepo.LastLoginTimeKey, s.now().UTC().Format(time.RFC3339))
}

func (s *sessionService) Register(ctx context.Context, in domain.RegistrationInput) error {
	if err := validation.Registration(in); err != nil {
		return err
	}
	req := dto.RegisterRequest{
		Username: strings.TrimSpace(in.Username),
		Password: in.Password,
		FullName: strings.TrimSpace(in.FullName),
	}
	if err := s.ledger.Register(ctx, req); err != nil {
		s.LogWarn(ctx, err, "Registration rejected", slog.String("username", req.Username))
		return err
	}
	s.LogInfo(ctx, "User registered", slog.String("username", req.Username))
	return nil
}

func (s *sessionService) RestoreSession(ctx context.Context) bool {
	token, hasToken, err := s.store.Get(ctx, portsrepo.AuthTokenKey)
	if err != nil {
		s.LogError(ctx, err, "Failed to read stored token")
		return false
	}
	rawUser, hasUser, err := s.store.Get(ctx, portsrepo.CurrentUserKey)
	if err != nil {
		s.LogError(ctx, err, "Failed to read stored user")
		return false
	}
	if !hasToken || !hasUser || token == "" {
		return false
	}

	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil || user.Username == "" {
		s.LogInfo(ctx, "Discarding malformed stored session")
		s.clearStorage(ctx)
		return false
	}

	s.ledger.SetToken(token)
	s.session.Store(&domain.Session{Username: user.Username, FullName: user.FullName, Token: token})
	s.state.Store(int32(domain.Authenticated))
	s.LogInfo(ctx, "Session restored", slog.String("username", user.Username))
	return true
}

func (s *sessionService) Logout(ctx context.Context) {
	s.clear(ctx)
	s.LogInfo(ctx, "User logged out")
}

func (s *sessionService) OnLogout(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = append(s.onLogout, fn)
}

// handleSessionExpired runs after the ledger rejected the bearer token. The
// transport has already dropped the token.
func (s *sessionService) handleSessionExpired(ctx context.Context) {
	s.clear(ctx)
	s.LogInfo(ctx, "Session expired, user logged out")
}

func (s *sessionService) clear(ctx context.Context) {
	s.session.Store(nil)
	s.state.Store(int32(domain.Anonymous))
	s.ledger.SetToken("")
	s.clearStorage(ctx)

	s.mu.Lock()
	callbacks := append([]func(context.Context){}, s.onLogout...)
	s.mu.Unlock()
	for _, fn := range callbacks {
		fn(ctx)
	}
}

func (s *sessionService) clearStorage(ctx context.Context) {
	for _, key := range []string{portsrepo.AuthTokenKey, portsrepo.CurrentUserKey} {
		if err := s.store.Delete(ctx, key); err != nil {
			s.LogError(ctx, err, "Failed to delete stored session entry", slog.String("key", key))
		}
	}
}
