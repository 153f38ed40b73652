package gateways

import (
	"context"

	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/SscSPs/bank_console/internal/dto"
	"github.com/shopspring/decimal"
)

// SessionExpiredHandler is invoked by the transport after a 401 response, once the
// held token has been cleared.
type SessionExpiredHandler func(ctx context.Context)

// LedgerCredentialHolder manages the bearer credential attached to ledger requests.
type LedgerCredentialHolder interface {
	// SetToken installs the bearer token sent on subsequent requests. An empty token clears it.
	SetToken(token string)

	// HasToken reports whether a bearer token is currently held.
	HasToken() bool

	// OnSessionExpired registers the handler called after a 401 response.
	OnSessionExpired(handler SessionExpiredHandler)
}

// LedgerAuthGateway covers the unauthenticated endpoints of the ledger.
type LedgerAuthGateway interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) error
}

// LedgerAccountGateway covers account listing and money movement.
type LedgerAccountGateway interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID int64) error
	Transfer(ctx context.Context, req dto.TransferRequest) error
}

// LedgerTransactionGateway covers per-account transaction logs.
type LedgerTransactionGateway interface {
	AccountTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// LedgerGateway is the full contract of the remote ledger service as seen by the core.
type LedgerGateway interface {
	LedgerCredentialHolder
	LedgerAuthGateway
	LedgerAccountGateway
	LedgerTransactionGateway
}
