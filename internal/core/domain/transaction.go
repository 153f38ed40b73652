package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the ledger's classification of a movement. The set is open-ended.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Transfer   TransactionType = "TRANSFER"
	Withdrawal TransactionType = "WITHDRAWAL"
	Received   TransactionType = "RECEIVED"
)

// IsCredit reports whether money arrives in the account for this type.
// Unknown types are treated as debits.
func (t TransactionType) IsCredit() bool {
	return t == Deposit || t == Received
}

// Sign returns "+" for credits and "-" for debits.
func (t TransactionType) Sign() string {
	if t.IsCredit() {
		return "+"
	}
	return "-"
}

// Transaction is one immutable entry of an account's transaction log.
// Either side of the movement may be absent depending on the type.
type Transaction struct {
	ID                       int64           `json:"id"`
	TransactionType          TransactionType `json:"transactionType"`
	Amount                   decimal.Decimal `json:"amount"`
	TransactionDate          time.Time       `json:"transactionDate"`
	Description              string          `json:"description,omitempty"`
	SourceAccountID          *int64          `json:"sourceAccountId,omitempty"`
	SourceAccountNumber      string          `json:"sourceAccountNumber,omitempty"`
	DestinationAccountID     *int64          `json:"destinationAccountId,omitempty"`
	DestinationAccountNumber string          `json:"destinationAccountNumber,omitempty"`
}

// Touches reports whether the transaction involves the given account, matching on
// ids first and falling back to account numbers when the ledger omitted the ids.
func (t Transaction) Touches(account Account) bool {
	if t.SourceAccountID != nil && *t.SourceAccountID == account.ID {
		return true
	}
	if t.DestinationAccountID != nil && *t.DestinationAccountID == account.ID {
		return true
	}
	if account.AccountNumber == "" {
		return false
	}
	if t.SourceAccountID == nil && t.SourceAccountNumber == account.AccountNumber {
		return true
	}
	return t.DestinationAccountID == nil && t.DestinationAccountNumber == account.AccountNumber
}
