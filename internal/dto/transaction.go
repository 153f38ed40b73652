package dto

import "github.com/shopspring/decimal"

// TransactionResponse is a transaction log entry as serialised by the ledger.
//
// The ledger is not consistent about the account-number keys: some responses use
// sourceAccountNumber/destinationAccountNumber, others fromAccountNumber/toAccountNumber.
// Both are decoded here and folded into the canonical source/destination pair by
// mapping.ToDomainTransaction.
type TransactionResponse struct {
	ID                       int64           `json:"id"`
	TransactionType          string          `json:"transactionType"`
	Amount                   decimal.Decimal `json:"amount"`
	TransactionDate          LedgerTime      `json:"transactionDate"`
	Description              string          `json:"description,omitempty"`
	SourceAccountID          *int64          `json:"sourceAccountId,omitempty"`
	DestinationAccountID     *int64          `json:"destinationAccountId,omitempty"`
	SourceAccountNumber      string          `json:"sourceAccountNumber,omitempty"`
	DestinationAccountNumber string          `json:"destinationAccountNumber,omitempty"`
	FromAccountNumber        string          `json:"fromAccountNumber,omitempty"`
	ToAccountNumber          string          `json:"toAccountNumber,omitempty"`
}
