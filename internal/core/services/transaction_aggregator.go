package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/SscSPs/bank_console/internal/apperrors"
	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/SscSPs/bank_console/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/bank_console/internal/core/ports/services"
)

// timeline is one completed aggregation. The accounts it was built from are
// kept so filtering can match on account numbers as well as ids.
type timeline struct {
	transactions []domain.Transaction
	accounts     []domain.Account
	failures     []apperrors.PartialFetchFailure
	snapshot     time.Time
}

type transactionAggregator struct {
	BaseService
	ledger  gateways.LedgerTransactionGateway
	session portssvc.SessionReaderSvc
	now     func() time.Time

	current atomic.Pointer[timeline]
}

// AggregatorOption is a functional option for configuring the transaction aggregator
type AggregatorOption func(*transactionAggregator)

// WithAggregatorClock overrides the clock used to stamp snapshots.
func WithAggregatorClock(now func() time.Time) AggregatorOption {
	return func(a *transactionAggregator) {
		a.now = now
	}
}

// NewTransactionAggregator creates an aggregator gated by session.
func NewTransactionAggregator(ledger gateways.LedgerTransactionGateway, session portssvc.SessionReaderSvc, options ...AggregatorOption) portssvc.TransactionAggregatorSvc {
	a := &transactionAggregator{ledger: ledger, session: session, now: time.Now}
	for _, option := range options {
		option(a)
	}
	return a
}

var _ portssvc.TransactionAggregatorSvc = (*transactionAggregator)(nil)

// Refresh fetches the accounts one after another. A failing account is logged
// and skipped; only an expired session stops the loop.
func (a *transactionAggregator) Refresh(ctx context.Context, accounts []domain.Account) ([]domain.Transaction, error) {
	if a.session.Current() == nil {
		return nil, apperrors.ErrNotAuthenticated
	}

	merged := make([]domain.Transaction, 0)
	var failures []apperrors.PartialFetchFailure
	for _, account := range accounts {
		txs, err := a.ledger.AccountTransactions(ctx, account.ID)
		if err != nil {
			if errors.Is(err, apperrors.ErrSessionExpired) {
				return nil, err
			}
			a.LogWarn(ctx, err, "Skipping transactions of account", slog.Int64("account_id", account.ID))
			failures = append(failures, apperrors.PartialFetchFailure{AccountID: account.ID, Err: err})
			continue
		}
		merged = append(merged, txs...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].TransactionDate.After(merged[j].TransactionDate)
	})

	captured := make([]domain.Account, len(accounts))
	copy(captured, accounts)
	a.current.Store(&timeline{
		transactions: merged,
		accounts:     captured,
		failures:     failures,
		snapshot:     a.now(),
	})
	a.LogDebug(ctx, "Transactions aggregated",
		slog.Int("accounts", len(accounts)),
		slog.Int("transactions", len(merged)),
		slog.Int("failures", len(failures)))
	return a.Transactions(), nil
}

func (a *transactionAggregator) Transactions() []domain.Transaction {
	return a.Filter(0)
}

// Filter is a pure view over the last timeline.
func (a *transactionAggregator) Filter(accountID int64) []domain.Transaction {
	current := a.current.Load()
	if current == nil {
		return []domain.Transaction{}
	}
	if accountID == 0 {
		out := make([]domain.Transaction, len(current.transactions))
		copy(out, current.transactions)
		return out
	}

	account := domain.Account{ID: accountID}
	for _, known := range current.accounts {
		if known.ID == accountID {
			account = known
			break
		}
	}
	out := make([]domain.Transaction, 0)
	for _, tx := range current.transactions {
		if tx.Touches(account) {
			out = append(out, tx)
		}
	}
	return out
}

func (a *transactionAggregator) Failures() []apperrors.PartialFetchFailure {
	current := a.current.Load()
	if current == nil {
		return nil
	}
	out := make([]apperrors.PartialFetchFailure, len(current.failures))
	copy(out, current.failures)
	return out
}

func (a *transactionAggregator) Loaded() bool {
	return a.current.Load() != nil
}

func (a *transactionAggregator) Snapshot() time.Time {
	current := a.current.Load()
	if current == nil {
		return time.Time{}
	}
	return current.snapshot
}

func (a *transactionAggregator) Reset() {
	a.current.Store(nil)
}
