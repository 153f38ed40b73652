package services_test

import (
	"context"
	"sync"

	"github.com/SscSPs/bank_console/internal/apperrors"
	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/SscSPs/bank_console/internal/core/ports/gateways"
	"github.com/SscSPs/bank_console/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerGateway ---
// Credential handling is tracked directly rather than through expectations,
// mirroring what the real transport does with the token.
type MockLedger struct {
	mock.Mock

	mu        sync.Mutex
	token     string
	onExpired gateways.SessionExpiredHandler
}

var _ gateways.LedgerGateway = (*MockLedger)(nil)

func (m *MockLedger) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

func (m *MockLedger) HasToken() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != ""
}

func (m *MockLedger) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *MockLedger) OnSessionExpired(handler gateways.SessionExpiredHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpired = handler
}

// expire behaves like the transport receiving a 401 for a request carrying a token.
func (m *MockLedger) expire(ctx context.Context) error {
	m.mu.Lock()
	m.token = ""
	handler := m.onExpired
	m.mu.Unlock()
	if handler != nil {
		handler(ctx)
	}
	return &apperrors.APIError{Kind: apperrors.ErrSessionExpired, StatusCode: 401, Message: apperrors.SessionExpiredMessage}
}

func (m *MockLedger) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	var resp *dto.LoginResponse
	if args.Get(0) != nil {
		resp = args.Get(0).(*dto.LoginResponse)
	}
	return resp, args.Error(1)
}

func (m *MockLedger) Register(ctx context.Context, req dto.RegisterRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockLedger) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if err := args.Error(1); isExpiredSignal(err) {
		return nil, m.expire(ctx)
	}
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockLedger) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockLedger) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (*domain.Account, error) {
	args := m.Called(ctx, accountID, amount)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockLedger) DeleteAccount(ctx context.Context, accountID int64) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockLedger) Transfer(ctx context.Context, req dto.TransferRequest) error {
	args := m.Called(ctx, req)
	if isExpiredSignal(args.Error(0)) {
		return m.expire(ctx)
	}
	return args.Error(0)
}

func (m *MockLedger) AccountTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if err := args.Error(1); isExpiredSignal(err) {
		return nil, m.expire(ctx)
	}
	var txs []domain.Transaction
	if args.Get(0) != nil {
		txs = args.Get(0).([]domain.Transaction)
	}
	return txs, args.Error(1)
}

// errExpired tells the mock to run the full 401 path instead of returning an error as is.
var errExpired = apperrors.ErrSessionExpired

func isExpiredSignal(err error) bool {
	return err != nil && err == errExpired
}

// --- Fake session reader for the store tests ---
type fakeSession struct {
	session *domain.Session
}

func (f *fakeSession) Current() *domain.Session {
	if !f.session.Valid() {
		return nil
	}
	return f.session
}

func (f *fakeSession) State() domain.SessionState {
	if f.Current() == nil {
		return domain.Anonymous
	}
	return domain.Authenticated
}

func (f *fakeSession) Claims() (*domain.TokenInfo, error) {
	return &domain.TokenInfo{}, nil
}

func loggedIn() *fakeSession {
	return &fakeSession{session: &domain.Session{Username: "testuser", FullName: "Test User", Token: "abc"}}
}

func ptr(v int64) *int64 { return &v }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
