package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/bank_console/internal/apperrors"
	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/SscSPs/bank_console/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/bank_console/internal/core/ports/services"
	"github.com/SscSPs/bank_console/internal/dto"
	"github.com/SscSPs/bank_console/internal/utils"
	"github.com/SscSPs/bank_console/internal/validation"
)

const defaultTransferDescription = "Transfer"

// consoleService runs user actions end to end: validate, call the ledger,
// refresh the cached views, then report the outcome as one notification.
type consoleService struct {
	BaseService
	ledger        gateways.LedgerAccountGateway
	session       portssvc.SessionSvc
	accounts      portssvc.AccountStoreSvc
	transactions  portssvc.TransactionAggregatorSvc
	notifications portssvc.NotificationSink
}

func NewConsoleService(
	ledger gateways.LedgerAccountGateway,
	session portssvc.SessionSvc,
	accounts portssvc.AccountStoreSvc,
	transactions portssvc.TransactionAggregatorSvc,
	notifications portssvc.NotificationSink,
) portssvc.ConsoleSvcFacade {
	return &consoleService{
		ledger:        ledger,
		session:       session,
		accounts:      accounts,
		transactions:  transactions,
		notifications: notifications,
	}
}

var _ portssvc.ConsoleSvcFacade = (*consoleService)(nil)

func (s *consoleService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	session, err := s.session.Login(ctx, username, password)
	if err != nil {
		return nil, s.fail(ctx, "Login Failed", "Login failed. Please try again.", err)
	}
	if err := s.syncViews(ctx); err != nil {
		return nil, s.fail(ctx, "Login Failed", "", err)
	}
	s.notifications.Push("Login Successful", fmt.Sprintf("Welcome back, %s!", session.FullName), domain.SeveritySuccess)
	return session, nil
}

func (s *consoleService) Register(ctx context.Context, in domain.RegistrationInput) error {
	if err := s.session.Register(ctx, in); err != nil {
		return s.fail(ctx, "Registration Failed", "Registration failed. Please try again.", err)
	}
	s.notifications.Push("Registration Successful", "Your account has been created. Please login.", domain.SeveritySuccess)
	return nil
}

func (s *consoleService) Logout(ctx context.Context) {
	s.session.Logout(ctx)
	s.notifications.Push("Logged Out", "You have been logged out successfully.", domain.SeverityInfo)
}

func (s *consoleService) LoadAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accounts.Refresh(ctx)
	if err != nil {
		return nil, s.fail(ctx, "Error Loading Accounts", "Failed to load accounts.", err)
	}
	if len(accounts) == 0 {
		s.notifications.Push("No Accounts", "You don't have any accounts yet. Create one to get started.", domain.SeverityInfo)
		return accounts, nil
	}
	s.notifications.Push("Accounts Loaded", fmt.Sprintf("%d account(s) loaded.", len(accounts)), domain.SeveritySuccess)
	return accounts, nil
}

func (s *consoleService) LoadTransactions(ctx context.Context) ([]domain.Transaction, error) {
	accounts := s.accounts.Accounts()
	if len(accounts) == 0 {
		refreshed, err := s.accounts.Refresh(ctx)
		if err != nil {
			return nil, s.fail(ctx, "Error Loading Transactions", "Failed to load transactions.", err)
		}
		accounts = refreshed
	}

	txs, err := s.transactions.Refresh(ctx, accounts)
	if err != nil {
		return nil, s.fail(ctx, "Error Loading Transactions", "Failed to load transactions.", err)
	}
	if failures := s.transactions.Failures(); len(failures) > 0 {
		s.notifications.Push("Some Transactions Unavailable",
			fmt.Sprintf("Transactions for %d account(s) could not be loaded.", len(failures)), domain.SeverityWarning)
		return txs, nil
	}
	if len(txs) == 0 {
		s.notifications.Push("No Transactions", "No transactions found for your accounts.", domain.SeverityInfo)
		return txs, nil
	}
	s.notifications.Push("Transactions Loaded", fmt.Sprintf("%d transaction(s) loaded.", len(txs)), domain.SeveritySuccess)
	return txs, nil
}

func (s *consoleService) Transfer(ctx context.Context, in domain.TransferInput) error {
	if s.session.Current() == nil {
		return s.fail(ctx, "Transfer Failed", "", apperrors.ErrNotAuthenticated)
	}
	var source *domain.Account
	if cached, ok := s.accounts.Find(in.FromAccountID); ok {
		source = &cached
	}
	if err := validation.Transfer(in, source); err != nil {
		return s.fail(ctx, "Transfer Failed", "", err)
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = defaultTransferDescription
	}
	req := dto.TransferRequest{
		FromAccountID:   in.FromAccountID,
		ToAccountNumber: strings.TrimSpace(in.ToAccountNumber),
		Amount:          dto.Number(*in.Amount),
		Description:     description,
	}
	if err := s.ledger.Transfer(ctx, req); err != nil {
		return s.fail(ctx, "Transfer Failed", "Transfer failed. Please try again.", err)
	}

	s.LogInfo(ctx, "Transfer completed",
		slog.Int64("from_account_id", req.FromAccountID),
		slog.String("to_account_number", req.ToAccountNumber))
	if err := s.syncViews(ctx); err != nil {
		return s.fail(ctx, "Transfer Failed", "", err)
	}
	s.notifications.Push("Transfer Successful",
		fmt.Sprintf("Transferred %s to %s.", utils.FormatMoney(*in.Amount), req.ToAccountNumber), domain.SeveritySuccess)
	return nil
}

func (s *consoleService) Deposit(ctx context.Context, in domain.DepositInput) (*domain.Account, error) {
	if s.session.Current() == nil {
		return nil, s.fail(ctx, "Deposit Failed", "", apperrors.ErrNotAuthenticated)
	}
	if err := validation.Deposit(in); err != nil {
		return nil, s.fail(ctx, "Deposit Failed", "", err)
	}

	account, err := s.ledger.Deposit(ctx, in.AccountID, *in.Amount)
	if err != nil {
		return nil, s.fail(ctx, "Deposit Failed", "Deposit failed. Please try again.", err)
	}

	s.LogInfo(ctx, "Deposit completed", slog.Int64("account_id", in.AccountID))
	if err := s.syncViews(ctx); err != nil {
		return nil, s.fail(ctx, "Deposit Failed", "", err)
	}
	s.notifications.Push("Deposit Successful",
		fmt.Sprintf("Deposited %s into %s.", utils.FormatMoney(*in.Amount), account.AccountNumber), domain.SeveritySuccess)
	return account, nil
}

func (s *consoleService) CreateAccount(ctx context.Context, in domain.CreateAccountInput) (*domain.Account, error) {
	session := s.session.Current()
	if session == nil {
		return nil, s.fail(ctx, "Account Creation Failed", "", apperrors.ErrNotAuthenticated)
	}
	if err := validation.CreateAccount(in); err != nil {
		return nil, s.fail(ctx, "Account Creation Failed", "", err)
	}

	req := dto.CreateAccountRequest{Username: session.Username, AccountType: in.AccountType}
	if in.InitialDeposit != nil {
		req.InitialDeposit = dto.Number(*in.InitialDeposit)
	}
	account, err := s.ledger.CreateAccount(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, "Account Creation Failed", "Failed to create account. Please try again.", err)
	}

	s.LogInfo(ctx, "Account created", slog.Int64("account_id", account.ID), slog.String("account_type", string(account.AccountType)))
	if err := s.syncViews(ctx); err != nil {
		return nil, s.fail(ctx, "Account Creation Failed", "", err)
	}
	s.notifications.Push("Account Created",
		fmt.Sprintf("Your new %s account %s is ready.", account.AccountType, account.AccountNumber), domain.SeveritySuccess)
	return account, nil
}

func (s *consoleService) DeleteAccount(ctx context.Context, accountID int64) error {
	if s.session.Current() == nil {
		return s.fail(ctx, "Delete Failed", "", apperrors.ErrNotAuthenticated)
	}
	if accountID == 0 {
		return s.fail(ctx, "Delete Failed", "", apperrors.NewValidationError("Validation Error", "Please select an account"))
	}
	label := fmt.Sprintf("#%d", accountID)
	if cached, ok := s.accounts.Find(accountID); ok {
		label = cached.AccountNumber
	}

	if err := s.ledger.DeleteAccount(ctx, accountID); err != nil {
		return s.fail(ctx, "Delete Failed", "Failed to delete account. Please try again.", err)
	}

	s.LogInfo(ctx, "Account deleted", slog.Int64("account_id", accountID))
	if err := s.syncViews(ctx); err != nil {
		return s.fail(ctx, "Delete Failed", "", err)
	}
	s.notifications.Push("Account Deleted", fmt.Sprintf("Account %s has been deleted.", label), domain.SeveritySuccess)
	return nil
}

// syncViews re-fetches the account list, and the transactions when they have
// been loaded, after a change at the ledger. Only an expired session is
// returned; the session is gone by then and the action must not report success.
// Other failures are logged and leave the previous views in place.
func (s *consoleService) syncViews(ctx context.Context) error {
	accounts, err := s.accounts.Refresh(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrSessionExpired) {
			return err
		}
		s.LogWarn(ctx, err, "Failed to refresh accounts after update")
		return nil
	}
	if !s.transactions.Loaded() {
		return nil
	}
	if _, err := s.transactions.Refresh(ctx, accounts); err != nil {
		if errors.Is(err, apperrors.ErrSessionExpired) {
			return err
		}
		s.LogWarn(ctx, err, "Failed to refresh transactions after update")
	}
	return nil
}

// fail pushes the error notification for a failed action and hands err back.
// Validation titles win over the action title; an expired session gets its own.
func (s *consoleService) fail(ctx context.Context, title, fallback string, err error) error {
	var vErr *apperrors.ValidationError
	switch {
	case errors.As(err, &vErr) && vErr.Title != "":
		title = vErr.Title
	case errors.Is(err, apperrors.ErrSessionExpired):
		title = "Session Expired"
	}
	s.LogDebug(ctx, "Action failed", slog.String("title", title), slog.String("error", err.Error()))
	s.notifications.Push(title, apperrors.UserMessage(err, fallback), domain.SeverityError)
	return err
}
