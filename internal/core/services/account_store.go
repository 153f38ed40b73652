package services

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/SscSPs/bank_console/internal/apperrors"
	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/SscSPs/bank_console/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/bank_console/internal/core/ports/services"
)

// accountStore implements AccountStoreSvc. The list is only ever replaced as a
// whole; balances are never adjusted locally.
type accountStore struct {
	BaseService
	ledger  gateways.LedgerAccountGateway
	session portssvc.SessionReaderSvc

	accounts atomic.Pointer[[]domain.Account]

	mu       sync.Mutex
	onChange []func(accounts []domain.Account)
}

// NewAccountStore creates an empty account store gated by session.
func NewAccountStore(ledger gateways.LedgerAccountGateway, session portssvc.SessionReaderSvc) portssvc.AccountStoreSvc {
	return &accountStore{ledger: ledger, session: session}
}

var _ portssvc.AccountStoreSvc = (*accountStore)(nil)

func (s *accountStore) Refresh(ctx context.Context) ([]domain.Account, error) {
	if s.session.Current() == nil {
		return nil, apperrors.ErrNotAuthenticated
	}
	accounts, err := s.ledger.ListAccounts(ctx)
	if err != nil {
		s.LogWarn(ctx, err, "Failed to refresh accounts")
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	s.replace(accounts)
	s.LogDebug(ctx, "Accounts refreshed", slog.Int("count", len(accounts)))
	return s.Accounts(), nil
}

func (s *accountStore) Accounts() []domain.Account {
	current := s.accounts.Load()
	if current == nil {
		return []domain.Account{}
	}
	out := make([]domain.Account, len(*current))
	copy(out, *current)
	return out
}

func (s *accountStore) Find(accountID int64) (domain.Account, bool) {
	current := s.accounts.Load()
	if current == nil {
		return domain.Account{}, false
	}
	for _, a := range *current {
		if a.ID == accountID {
			return a, true
		}
	}
	return domain.Account{}, false
}

func (s *accountStore) Reset() {
	s.replace(nil)
}

func (s *accountStore) OnChange(fn func(accounts []domain.Account)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

func (s *accountStore) replace(accounts []domain.Account) {
	if accounts == nil {
		s.accounts.Store(nil)
	} else {
		s.accounts.Store(&accounts)
	}

	s.mu.Lock()
	callbacks := append([]func([]domain.Account){}, s.onChange...)
	s.mu.Unlock()
	for _, fn := range callbacks {
		fn(s.Accounts())
	}
}
