package domain

import "github.com/shopspring/decimal"

// TransferInput is a pending transfer as entered by the user.
// A nil Amount means the field was left empty.
type TransferInput struct {
	FromAccountID   int64            `json:"fromAccountId"`
	ToAccountNumber string           `json:"toAccountNumber"`
	Amount          *decimal.Decimal `json:"amount"`
	Description     string           `json:"description"`
}

// DepositInput is a pending deposit into one of the user's accounts.
type DepositInput struct {
	AccountID int64            `json:"accountId"`
	Amount    *decimal.Decimal `json:"amount"`
}

// CreateAccountInput is a pending account opening.
type CreateAccountInput struct {
	AccountType    AccountType      `json:"accountType" validate:"required,oneof=Savings Checking"`
	InitialDeposit *decimal.Decimal `json:"initialDeposit"`
}

// RegistrationInput is a pending customer registration.
type RegistrationInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
}
