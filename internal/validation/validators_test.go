package validation_test

import (
	"testing"

	"github.com/SscSPs/bank_console/internal/apperrors"
	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/SscSPs/bank_console/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func reasonOf(t *testing.T, err error) string {
	t.Helper()
	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	return vErr.Reason
}

func TestAmountBounds_TransferAndDeposit(t *testing.T) {
	tests := []struct {
		amount string
		ok     bool
	}{
		{"-5", false},
		{"0", false},
		{"0.01", true},
		{"1", true},
		{"999999.99", true},
		{"1000000", true},
		{"1000000.01", false},
		{"1500000", false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			transferErr := validation.Transfer(domain.TransferInput{
				FromAccountID: 1, ToAccountNumber: "X-2", Amount: dec(tt.amount),
			}, nil)
			depositErr := validation.Deposit(domain.DepositInput{AccountID: 5, Amount: dec(tt.amount)})

			if tt.ok {
				assert.NoError(t, transferErr)
				assert.NoError(t, depositErr)
				return
			}
			assert.ErrorIs(t, transferErr, apperrors.ErrValidation)
			assert.ErrorIs(t, depositErr, apperrors.ErrValidation)
		})
	}
}

func TestTransfer_InsufficientCachedBalance(t *testing.T) {
	source := &domain.Account{ID: 1, AccountNumber: "X-1", Balance: decimal.RequireFromString("100.00")}

	err := validation.Transfer(domain.TransferInput{
		FromAccountID: 1, ToAccountNumber: "X-2", Amount: dec("150.00"),
	}, source)

	assert.Equal(t, "Insufficient funds: your balance is $100.00", reasonOf(t, err))

	err = validation.Transfer(domain.TransferInput{
		FromAccountID: 1, ToAccountNumber: "X-2", Amount: dec("100.00"),
	}, source)
	assert.NoError(t, err, "spending the whole cached balance is allowed")
}

func TestTransfer_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		in   domain.TransferInput
	}{
		{"no source", domain.TransferInput{ToAccountNumber: "X-2", Amount: dec("1")}},
		{"blank destination", domain.TransferInput{FromAccountID: 1, ToAccountNumber: "   ", Amount: dec("1")}},
		{"no amount", domain.TransferInput{FromAccountID: 1, ToAccountNumber: "X-2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "Please complete all required fields", reasonOf(t, validation.Transfer(tt.in, nil)))
		})
	}
}

func TestDeposit_ExceedsCeiling(t *testing.T) {
	err := validation.Deposit(domain.DepositInput{AccountID: 5, Amount: dec("1500000")})
	assert.Equal(t, "Maximum deposit amount is $1,000,000.00", reasonOf(t, err))
}

func TestCreateAccount(t *testing.T) {
	tests := []struct {
		name   string
		in     domain.CreateAccountInput
		reason string
	}{
		{"savings without deposit", domain.CreateAccountInput{AccountType: domain.Savings}, ""},
		{"checking zero deposit", domain.CreateAccountInput{AccountType: domain.Checking, InitialDeposit: dec("0")}, ""},
		{"max deposit", domain.CreateAccountInput{AccountType: domain.Savings, InitialDeposit: dec("1000000")}, ""},
		{"missing type", domain.CreateAccountInput{}, "Please select an account type"},
		{"unknown type", domain.CreateAccountInput{AccountType: "Brokerage"}, "Invalid account type 'Brokerage'. Valid types are: Savings, Checking"},
		{"negative deposit", domain.CreateAccountInput{AccountType: domain.Savings, InitialDeposit: dec("-1")}, "Initial deposit must be 0 or greater"},
		{"deposit too large", domain.CreateAccountInput{AccountType: domain.Savings, InitialDeposit: dec("1000000.01")}, "Maximum initial deposit is $1,000,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.CreateAccount(tt.in)
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.reason, reasonOf(t, err))
		})
	}
}

func TestRegistration(t *testing.T) {
	tests := []struct {
		name   string
		in     domain.RegistrationInput
		reason string
	}{
		{"valid", domain.RegistrationInput{Username: "bob", Password: "password", FullName: "Bob B"}, ""},
		{"missing full name", domain.RegistrationInput{Username: "bob", Password: "password", FullName: "  "}, "Please complete all fields"},
		{"missing password", domain.RegistrationInput{Username: "bob", FullName: "Bob B"}, "Please complete all fields"},
		{"short password", domain.RegistrationInput{Username: "bob", Password: "short", FullName: "Bob B"}, "Password must be at least 8 characters"},
		{"short username", domain.RegistrationInput{Username: "bo", Password: "password", FullName: "Bob B"}, "Username must be at least 3 characters"},
		{"short username after trim", domain.RegistrationInput{Username: " bo ", Password: "password", FullName: "Bob B"}, "Username must be at least 3 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Registration(tt.in)
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.reason, reasonOf(t, err))
		})
	}
}

func TestLogin(t *testing.T) {
	assert.NoError(t, validation.Login("testuser", "password"))
	assert.ErrorIs(t, validation.Login("", "password"), apperrors.ErrEmptyCredentials)
	assert.ErrorIs(t, validation.Login("  ", "password"), apperrors.ErrEmptyCredentials)
	assert.ErrorIs(t, validation.Login("testuser", ""), apperrors.ErrValidation)
}
