package services

import (
	"context"

	"github.com/SscSPs/bank_console/internal/core/domain"
)

// ConsoleSvcFacade runs the user-facing actions. Every action pushes exactly one
// notification describing its outcome and returns the underlying error as well.
type ConsoleSvcFacade interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Register(ctx context.Context, in domain.RegistrationInput) error
	Logout(ctx context.Context)

	LoadAccounts(ctx context.Context) ([]domain.Account, error)
	LoadTransactions(ctx context.Context) ([]domain.Transaction, error)

	Transfer(ctx context.Context, in domain.TransferInput) error
	Deposit(ctx context.Context, in domain.DepositInput) (*domain.Account, error)
	CreateAccount(ctx context.Context, in domain.CreateAccountInput) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID int64) error
}
