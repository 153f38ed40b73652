package services

import (
	"context"

	"github.com/SscSPs/bank_console/internal/core/domain"
)

// AccountStoreSvc is the cached view of the customer's accounts.
type AccountStoreSvc interface {
	// Refresh replaces the cached list with the ledger's current one.
	Refresh(ctx context.Context) ([]domain.Account, error)

	// Accounts returns the last fetched list.
	Accounts() []domain.Account

	// Find returns the cached account with the given id.
	Find(accountID int64) (domain.Account, bool)

	// Reset drops the cached list.
	Reset()

	// OnChange registers a callback run with every replacement of the list.
	OnChange(fn func(accounts []domain.Account))
}
