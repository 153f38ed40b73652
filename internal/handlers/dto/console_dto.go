// Package dto holds the request and response bodies of the console API.
// Amounts are accepted as JSON numbers or numeric strings.
package dto

import (
	"time"

	"github.com/SscSPs/bank_console/internal/apperrors"
	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/SscSPs/bank_console/internal/utils"
	"github.com/shopspring/decimal"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// SessionResponse describes the console session. Token details are decoded
// without verification and are informational.
type SessionResponse struct {
	State    string            `json:"state"`
	Username string            `json:"username,omitempty"`
	FullName string            `json:"fullName,omitempty"`
	Token    *domain.TokenInfo `json:"token,omitempty"`
}

type CreateAccountRequest struct {
	AccountType    string           `json:"accountType"`
	InitialDeposit *decimal.Decimal `json:"initialDeposit"`
}

type DepositRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

type TransferRequest struct {
	FromAccountID   int64            `json:"fromAccountId"`
	ToAccountNumber string           `json:"toAccountNumber"`
	Amount          *decimal.Decimal `json:"amount"`
	Description     string           `json:"description"`
}

type AccountResponse struct {
	ID             int64              `json:"id"`
	AccountNumber  string             `json:"accountNumber"`
	AccountType    domain.AccountType `json:"accountType"`
	Balance        decimal.Decimal    `json:"balance"`
	BalanceDisplay string             `json:"balanceDisplay"`
	Label          string             `json:"label"`
	CreatedAt      *time.Time         `json:"createdAt,omitempty"`
}

type TransactionResponse struct {
	ID                       int64                  `json:"id"`
	TransactionType          domain.TransactionType `json:"transactionType"`
	Amount                   decimal.Decimal        `json:"amount"`
	AmountDisplay            string                 `json:"amountDisplay"`
	Credit                   bool                   `json:"credit"`
	TransactionDate          time.Time              `json:"transactionDate"`
	Description              string                 `json:"description,omitempty"`
	SourceAccountNumber      string                 `json:"sourceAccountNumber,omitempty"`
	DestinationAccountNumber string                 `json:"destinationAccountNumber,omitempty"`
}

type FetchFailure struct {
	AccountID int64  `json:"accountId"`
	Error     string `json:"error"`
}

type TransactionPageResponse struct {
	Transactions  []TransactionResponse `json:"transactions"`
	NextPageToken string                `json:"nextPageToken,omitempty"`
	Failures      []FetchFailure        `json:"failures,omitempty"`
}

func ToAccountResponse(a domain.Account) AccountResponse {
	return AccountResponse{
		ID:             a.ID,
		AccountNumber:  a.AccountNumber,
		AccountType:    a.AccountType,
		Balance:        a.Balance,
		BalanceDisplay: utils.FormatMoney(a.Balance),
		Label:          a.Label(),
		CreatedAt:      a.CreatedAt,
	}
}

func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = ToAccountResponse(a)
	}
	return out
}

func ToTransactionResponse(tx domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                       tx.ID,
		TransactionType:          tx.TransactionType,
		Amount:                   tx.Amount,
		AmountDisplay:            utils.FormatSignedAmount(tx),
		Credit:                   tx.TransactionType.IsCredit(),
		TransactionDate:          tx.TransactionDate,
		Description:              tx.Description,
		SourceAccountNumber:      tx.SourceAccountNumber,
		DestinationAccountNumber: tx.DestinationAccountNumber,
	}
}

func ToTransactionResponses(txs []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = ToTransactionResponse(tx)
	}
	return out
}

func ToFetchFailures(failures []apperrors.PartialFetchFailure) []FetchFailure {
	if len(failures) == 0 {
		return nil
	}
	out := make([]FetchFailure, len(failures))
	for i, f := range failures {
		out[i] = FetchFailure{AccountID: f.AccountID, Error: apperrors.UserMessage(f.Err, "")}
	}
	return out
}
