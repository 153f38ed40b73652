package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType is the product kind of a bank account.
type AccountType string

const (
	Savings  AccountType = "Savings"
	Checking AccountType = "Checking"
)

// AccountTypes lists the account types the ledger accepts, in display order.
var AccountTypes = []AccountType{Savings, Checking}

// IsValid reports whether t is one of the recognised account types.
func (t AccountType) IsValid() bool {
	for _, known := range AccountTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Account is a customer account as last reported by the ledger.
// Balance is a display cache; it is only ever replaced by a full refresh.
type Account struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   AccountType     `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	UserID        *int64          `json:"userId,omitempty"`
	AuditFields
}

// Label is the short "type - number" form used in selectors.
func (a Account) Label() string {
	return string(a.AccountType) + " - " + a.AccountNumber
}
