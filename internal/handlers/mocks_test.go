package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/bank_console/internal/apperrors"
	"github.com/SscSPs/bank_console/internal/core/domain"
	portssvc "github.com/SscSPs/bank_console/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock SessionSvc ---
type MockSession struct {
	mock.Mock
	current *domain.Session
}

var _ portssvc.SessionSvc = (*MockSession)(nil)

func (m *MockSession) Current() *domain.Session { return m.current }

func (m *MockSession) State() domain.SessionState {
	if m.current == nil {
		return domain.Anonymous
	}
	return domain.Authenticated
}

func (m *MockSession) Claims() (*domain.TokenInfo, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenInfo), args.Error(1)
}

func (m *MockSession) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSession) Register(ctx context.Context, in domain.RegistrationInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockSession) RestoreSession(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *MockSession) Logout(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockSession) OnLogout(fn func(ctx context.Context)) {}

// --- Mock AccountStoreSvc ---
type MockAccountStore struct {
	mock.Mock
}

var _ portssvc.AccountStoreSvc = (*MockAccountStore)(nil)

func (m *MockAccountStore) Refresh(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountStore) Accounts() []domain.Account {
	return m.Called().Get(0).([]domain.Account)
}

func (m *MockAccountStore) Find(accountID int64) (domain.Account, bool) {
	args := m.Called(accountID)
	return args.Get(0).(domain.Account), args.Bool(1)
}

func (m *MockAccountStore) Reset() { m.Called() }

func (m *MockAccountStore) OnChange(fn func(accounts []domain.Account)) {}

// --- Mock TransactionAggregatorSvc ---
type MockTransactions struct {
	mock.Mock
}

var _ portssvc.TransactionAggregatorSvc = (*MockTransactions)(nil)

func (m *MockTransactions) Refresh(ctx context.Context, accounts []domain.Account) ([]domain.Transaction, error) {
	args := m.Called(ctx, accounts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactions) Transactions() []domain.Transaction {
	return m.Called().Get(0).([]domain.Transaction)
}

func (m *MockTransactions) Filter(accountID int64) []domain.Transaction {
	return m.Called(accountID).Get(0).([]domain.Transaction)
}

func (m *MockTransactions) Failures() []apperrors.PartialFetchFailure {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]apperrors.PartialFetchFailure)
}

func (m *MockTransactions) Loaded() bool { return m.Called().Bool(0) }

func (m *MockTransactions) Snapshot() time.Time { return m.Called().Get(0).(time.Time) }

func (m *MockTransactions) Reset() { m.Called() }

// --- Mock ConsoleSvcFacade ---
type MockConsole struct {
	mock.Mock
}

var _ portssvc.ConsoleSvcFacade = (*MockConsole)(nil)

func (m *MockConsole) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockConsole) Register(ctx context.Context, in domain.RegistrationInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockConsole) Logout(ctx context.Context) { m.Called(ctx) }

func (m *MockConsole) LoadAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockConsole) LoadTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockConsole) Transfer(ctx context.Context, in domain.TransferInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockConsole) Deposit(ctx context.Context, in domain.DepositInput) (*domain.Account, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockConsole) CreateAccount(ctx context.Context, in domain.CreateAccountInput) (*domain.Account, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockConsole) DeleteAccount(ctx context.Context, accountID int64) error {
	return m.Called(ctx, accountID).Error(0)
}
