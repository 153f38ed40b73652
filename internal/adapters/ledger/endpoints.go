package ledger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/SscSPs/bank_console/internal/dto"
	"github.com/SscSPs/bank_console/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const (
	loginPath         = "/auth/login"
	registerPath      = "/auth/register"
	accountsPath      = "/accounts"
	createAccountPath = "/accounts/create"
	transferPath      = "/accounts/transfer"
)

func accountPath(accountID int64) string {
	return fmt.Sprintf("%s/%d", accountsPath, accountID)
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	if err := c.Send(ctx, http.MethodPost, loginPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a customer. The ledger answers with a message only.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) error {
	return c.Send(ctx, http.MethodPost, registerPath, req, nil)
}

// ListAccounts returns every account of the authenticated customer.
func (c *Client) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var resp []dto.AccountResponse
	if err := c.Send(ctx, http.MethodGet, accountsPath, nil, &resp); err != nil {
		return nil, err
	}
	return mapping.ToDomainAccounts(resp), nil
}

// CreateAccount opens an account and returns it as created by the ledger.
func (c *Client) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	var resp dto.AccountResponse
	if err := c.Send(ctx, http.MethodPost, createAccountPath, req, &resp); err != nil {
		return nil, err
	}
	account := mapping.ToDomainAccount(resp)
	return &account, nil
}

// Deposit credits amount to the account and returns the updated account.
func (c *Client) Deposit(ctx context.Context, accountID int64, amount decimal.Decimal) (*domain.Account, error) {
	var resp dto.AccountResponse
	body := dto.DepositRequest{Amount: dto.Number(amount)}
	if err := c.Send(ctx, http.MethodPost, accountPath(accountID)+"/deposit", body, &resp); err != nil {
		return nil, err
	}
	account := mapping.ToDomainAccount(resp)
	return &account, nil
}

// DeleteAccount closes the account.
func (c *Client) DeleteAccount(ctx context.Context, accountID int64) error {
	return c.Send(ctx, http.MethodDelete, accountPath(accountID), nil, nil)
}

// Transfer moves money to another account number. The ledger answers with an acknowledgement only.
func (c *Client) Transfer(ctx context.Context, req dto.TransferRequest) error {
	return c.Send(ctx, http.MethodPost, transferPath, req, nil)
}

// AccountTransactions returns the transaction log of one account.
func (c *Client) AccountTransactions(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	var resp []dto.TransactionResponse
	if err := c.Send(ctx, http.MethodGet, accountPath(accountID)+"/transactions", nil, &resp); err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactions(resp), nil
}
