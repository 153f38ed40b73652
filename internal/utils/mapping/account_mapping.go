package mapping

import (
	"time"

	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/SscSPs/bank_console/internal/dto"
)

// ToDomainAccount converts a ledger account payload to a domain Account.
func ToDomainAccount(r dto.AccountResponse) domain.Account {
	return domain.Account{
		ID:            r.ID,
		AccountNumber: r.AccountNumber,
		AccountType:   domain.AccountType(r.AccountType),
		Balance:       r.Balance,
		UserID:        r.UserID,
		AuditFields: domain.AuditFields{
			CreatedAt: timePtr(r.CreatedAt),
			UpdatedAt: timePtr(r.UpdatedAt),
		},
	}
}

// ToDomainAccounts converts a slice of ledger account payloads.
func ToDomainAccounts(rs []dto.AccountResponse) []domain.Account {
	accounts := make([]domain.Account, len(rs))
	for i, r := range rs {
		accounts[i] = ToDomainAccount(r)
	}
	return accounts
}

func timePtr(t *dto.LedgerTime) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}
