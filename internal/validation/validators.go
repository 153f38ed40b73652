// Package validation holds the client-side business rules applied to money
// movement and registration before anything is sent to the ledger.
//
// These checks are a convenience for the user. The ledger re-validates
// everything and remains the authority.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/bank_console/internal/apperrors"
	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/SscSPs/bank_console/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// MaxAmount is the largest amount accepted for a single transfer, deposit or initial deposit.
var MaxAmount = decimal.NewFromInt(1_000_000)

const (
	MinUsernameLength = 3
	MinPasswordLength = 8
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Login checks that both credentials were entered.
func Login(username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return apperrors.ErrEmptyCredentials
	}
	return nil
}

// Registration checks the sign-up form: every field filled in, a username of at
// least 3 characters and a password of at least 8.
func Registration(in domain.RegistrationInput) error {
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)

	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate registration: %w", err)
	}

	failed := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed[fe.Field()] = fe.Tag()
		if fe.Tag() == "required" {
			return apperrors.NewValidationError("Validation Error", "Please complete all fields")
		}
	}
	if failed["Password"] == "min" {
		return apperrors.NewValidationError("Weak Password", fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}
	if failed["Username"] == "min" {
		return apperrors.NewValidationError("Invalid Username", fmt.Sprintf("Username must be at least %d characters", MinUsernameLength))
	}
	return apperrors.NewValidationError("Validation Error", "Please check the registration details")
}

// Transfer checks a pending transfer. source is the locally cached source
// account, or nil when it is not known; when known, the amount must not exceed
// its cached balance. That check is optimistic: the ledger may still reject.
func Transfer(in domain.TransferInput, source *domain.Account) error {
	if in.FromAccountID == 0 || strings.TrimSpace(in.ToAccountNumber) == "" || in.Amount == nil {
		return apperrors.NewValidationError("Validation Error", "Please complete all required fields")
	}
	if err := amountInRange(*in.Amount, "transfer"); err != nil {
		return err
	}
	if source != nil && in.Amount.GreaterThan(source.Balance) {
		return apperrors.NewValidationError("Insufficient Funds",
			fmt.Sprintf("Insufficient funds: your balance is %s", utils.FormatMoney(source.Balance)))
	}
	return nil
}

// Deposit checks a pending deposit.
func Deposit(in domain.DepositInput) error {
	if in.AccountID == 0 || in.Amount == nil {
		return apperrors.NewValidationError("Validation Error", "Please select an account and enter an amount")
	}
	return amountInRange(*in.Amount, "deposit")
}

// CreateAccount checks a pending account opening. A missing initial deposit counts as zero.
func CreateAccount(in domain.CreateAccountInput) error {
	if strings.TrimSpace(string(in.AccountType)) == "" {
		return apperrors.NewValidationError("Validation Error", "Please select an account type")
	}
	if err := validate.Struct(in); err != nil {
		return apperrors.NewValidationError("Invalid Account Type",
			fmt.Sprintf("Invalid account type '%s'. Valid types are: %s", in.AccountType, accountTypeList()))
	}
	if in.InitialDeposit == nil {
		return nil
	}
	if in.InitialDeposit.IsNegative() {
		return apperrors.NewValidationError("Invalid Deposit", "Initial deposit must be 0 or greater")
	}
	if in.InitialDeposit.GreaterThan(MaxAmount) {
		return apperrors.NewValidationError("Deposit Too Large",
			fmt.Sprintf("Maximum initial deposit is %s", utils.FormatMoney(MaxAmount)))
	}
	return nil
}

// amountInRange enforces 0 < amount <= MaxAmount.
func amountInRange(amount decimal.Decimal, operation string) error {
	if !amount.IsPositive() {
		return apperrors.NewValidationError("Invalid Amount", "Amount must be greater than $0")
	}
	if amount.GreaterThan(MaxAmount) {
		return apperrors.NewValidationError("Amount Too Large",
			fmt.Sprintf("Maximum %s amount is %s", operation, utils.FormatMoney(MaxAmount)))
	}
	return nil
}

func accountTypeList() string {
	names := make([]string, len(domain.AccountTypes))
	for i, t := range domain.AccountTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
