package services

import (
	"context"
	"time"

	"github.com/SscSPs/bank_console/internal/apperrors"
	"github.com/SscSPs/bank_console/internal/core/domain"
)

// TransactionAggregatorSvc merges the per-account transaction logs into one timeline.
type TransactionAggregatorSvc interface {
	// Refresh fetches the log of every given account and replaces the merged timeline.
	Refresh(ctx context.Context, accounts []domain.Account) ([]domain.Transaction, error)

	// Transactions returns the merged timeline, newest first.
	Transactions() []domain.Transaction

	// Filter returns the entries touching accountID, or all of them for 0.
	Filter(accountID int64) []domain.Transaction

	// Failures lists the accounts skipped by the last refresh.
	Failures() []apperrors.PartialFetchFailure

	// Loaded reports whether a refresh has completed since the last reset.
	Loaded() bool

	// Snapshot is the time of the last completed refresh.
	Snapshot() time.Time

	// Reset drops the merged timeline.
	Reset()
}
