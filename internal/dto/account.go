package dto

import (
	"encoding/json"

	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountResponse is an account as serialised by the ledger.
type AccountResponse struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	UserID        *int64          `json:"userId,omitempty"`
	CreatedAt     *LedgerTime     `json:"createdAt,omitempty"`
	UpdatedAt     *LedgerTime     `json:"updatedAt,omitempty"`
}

// CreateAccountRequest is the body of POST /accounts/create.
type CreateAccountRequest struct {
	Username       string             `json:"username,omitempty"`
	AccountType    domain.AccountType `json:"accountType" binding:"required"`
	InitialDeposit json.Number        `json:"initialDeposit"`
}

// DepositRequest is the body of POST /accounts/{id}/deposit.
type DepositRequest struct {
	Amount json.Number `json:"amount" binding:"required"`
}

// TransferRequest is the body of POST /accounts/transfer.
type TransferRequest struct {
	FromAccountID   int64       `json:"fromAccountId" binding:"required"`
	ToAccountNumber string      `json:"toAccountNumber" binding:"required"`
	Amount          json.Number `json:"amount" binding:"required"`
	Description     string      `json:"description"`
}

// Number renders a decimal as a bare JSON number, which is what the ledger expects.
func Number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
