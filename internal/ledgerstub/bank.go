// Package ledgerstub is an in-memory stand-in for the remote ledger service,
// for local development and end-to-end tests of the console. It speaks the
// same HTTP contract but is not meant to hold real money.
package ledgerstub

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/SscSPs/bank_console/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const minPasswordLength = 8

// RuleError is a rejected request together with the status the ledger answers with.
type RuleError struct {
	Status  int
	Message string
}

func (e *RuleError) Error() string { return e.Message }

func rejected(status int, format string, args ...any) *RuleError {
	return &RuleError{Status: status, Message: fmt.Sprintf(format, args...)}
}

type user struct {
	id           int64
	username     string
	fullName     string
	passwordHash string
}

type entry struct {
	id                int64
	amount            decimal.Decimal
	date              time.Time
	description       string
	sourceID          *int64
	sourceNumber      string
	destinationID     *int64
	destinationNumber string
}

// Bank holds users, accounts and the transaction journal.
type Bank struct {
	mu  sync.Mutex
	now func() time.Time

	users       map[string]*user
	accounts    map[int64]*domain.Account
	entries     []entry
	nextUserID  int64
	nextAcctID  int64
	nextEntryID int64
}

// NewBank creates an empty bank.
func NewBank() *Bank {
	return &Bank{
		now:      time.Now,
		users:    make(map[string]*user),
		accounts: make(map[int64]*domain.Account),
	}
}

// Register creates a customer with a bcrypt-hashed password.
func (b *Bank) Register(username, password, fullName string) error {
	username = strings.TrimSpace(username)
	fullName = strings.TrimSpace(fullName)
	if username == "" || fullName == "" || password == "" {
		return rejected(http.StatusBadRequest, "Username, password and full name are required")
	}
	if err := checkPassword(password); err != nil {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.users[username]; exists {
		return rejected(http.StatusBadRequest, "Username already exists. Please choose a different username.")
	}
	b.nextUserID++
	b.users[username] = &user{id: b.nextUserID, username: username, fullName: fullName, passwordHash: hash}
	return nil
}

func checkPassword(password string) error {
	if len(password) < minPasswordLength {
		return rejected(http.StatusBadRequest, "Password must be at least %d characters long", minPasswordLength)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		return rejected(http.StatusBadRequest, "Password must contain at least one letter")
	}
	if !hasDigit {
		return rejected(http.StatusBadRequest, "Password must contain at least one number")
	}
	return nil
}

// Authenticate checks credentials and returns the customer's id and full name.
func (b *Bank) Authenticate(username, password string) (int64, string, error) {
	b.mu.Lock()
	u, ok := b.users[strings.TrimSpace(username)]
	b.mu.Unlock()
	if !ok || !utils.CheckPasswordHash(password, u.passwordHash) {
		return 0, "", rejected(http.StatusUnauthorized, "Invalid username or password")
	}
	return u.id, u.fullName, nil
}

// Accounts lists the customer's accounts ordered by id.
func (b *Bank) Accounts(userID int64) []domain.Account {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Account, 0)
	for _, a := range b.accounts {
		if a.UserID != nil && *a.UserID == userID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreateAccount opens an account. username, when given, must be the caller.
func (b *Bank) CreateAccount(userID int64, username string, accountType domain.AccountType, initialDeposit decimal.Decimal) (domain.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if username != "" {
		owner, ok := b.users[username]
		if !ok || owner.id != userID {
			return domain.Account{}, rejected(http.StatusForbidden, "You can only create accounts for yourself")
		}
	}
	if !accountType.IsValid() {
		return domain.Account{}, rejected(http.StatusBadRequest, "Invalid account type: %s. Valid types are: Savings, Checking", accountType)
	}
	if initialDeposit.IsNegative() {
		return domain.Account{}, rejected(http.StatusBadRequest, "Initial deposit must be 0 or greater")
	}

	now := b.now()
	b.nextAcctID++
	owner := userID
	account := &domain.Account{
		ID:            b.nextAcctID,
		AccountNumber: accountNumber(userID),
		AccountType:   accountType,
		Balance:       initialDeposit,
		UserID:        &owner,
		AuditFields:   domain.AuditFields{CreatedAt: &now, UpdatedAt: &now},
	}
	b.accounts[account.ID] = account

	if initialDeposit.IsPositive() {
		b.record(initialDeposit, "Initial deposit", nil, account)
	}
	return *account, nil
}

// accountNumber follows the SEC<user>-<random> scheme of the ledger.
func accountNumber(userID int64) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("SEC%d-%s", userID, suffix)
}

// Deposit credits an account of the customer.
func (b *Bank) Deposit(userID, accountID int64, amount decimal.Decimal) (domain.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	account, err := b.owned(userID, accountID)
	if err != nil {
		return domain.Account{}, err
	}
	if !amount.IsPositive() {
		return domain.Account{}, rejected(http.StatusBadRequest, "Deposit amount must be greater than 0")
	}
	account.Balance = account.Balance.Add(amount)
	b.touch(account)
	b.record(amount, "Deposit", nil, account)
	return *account, nil
}

// DeleteAccount closes an empty account of the customer.
func (b *Bank) DeleteAccount(userID, accountID int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	account, err := b.owned(userID, accountID)
	if err != nil {
		return err
	}
	if account.Balance.IsPositive() {
		return rejected(http.StatusBadRequest, "Cannot delete account with positive balance")
	}
	delete(b.accounts, accountID)
	return nil
}

// Transfer moves money from one of the customer's accounts to any account number.
func (b *Bank) Transfer(userID, fromAccountID int64, toAccountNumber string, amount decimal.Decimal, description string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	source, err := b.owned(userID, fromAccountID)
	if err != nil {
		return err
	}
	destination := b.byNumber(strings.TrimSpace(toAccountNumber))
	if destination == nil {
		return rejected(http.StatusNotFound, "Destination account not found: %s", toAccountNumber)
	}
	if destination.ID == source.ID {
		return rejected(http.StatusBadRequest, "Cannot transfer to the same account")
	}
	if !amount.IsPositive() {
		return rejected(http.StatusBadRequest, "Transfer amount must be greater than 0")
	}
	if amount.GreaterThan(source.Balance) {
		return rejected(http.StatusBadRequest, "Insufficient funds")
	}

	source.Balance = source.Balance.Sub(amount)
	destination.Balance = destination.Balance.Add(amount)
	b.touch(source)
	b.touch(destination)
	b.record(amount, description, source, destination)
	return nil
}

// Statement is one journal entry seen from a given account.
type Statement struct {
	ID                       int64
	Type                     domain.TransactionType
	Amount                   decimal.Decimal
	Date                     time.Time
	Description              string
	SourceAccountID          *int64
	SourceAccountNumber      string
	DestinationAccountID     *int64
	DestinationAccountNumber string
}

// Transactions returns the journal entries touching one of the customer's accounts, oldest first.
func (b *Bank) Transactions(userID, accountID int64) ([]Statement, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.owned(userID, accountID); err != nil {
		return nil, err
	}
	out := make([]Statement, 0)
	for _, e := range b.entries {
		var txType domain.TransactionType
		switch {
		case e.sourceID != nil && *e.sourceID == accountID:
			txType = domain.Transfer
		case e.destinationID != nil && *e.destinationID == accountID && e.sourceID == nil:
			txType = domain.Deposit
		case e.destinationID != nil && *e.destinationID == accountID:
			txType = domain.Received
		default:
			continue
		}
		out = append(out, Statement{
			ID:                       e.id,
			Type:                     txType,
			Amount:                   e.amount,
			Date:                     e.date,
			Description:              e.description,
			SourceAccountID:          e.sourceID,
			SourceAccountNumber:      e.sourceNumber,
			DestinationAccountID:     e.destinationID,
			DestinationAccountNumber: e.destinationNumber,
		})
	}
	return out, nil
}

// owned returns the account if it exists and belongs to userID; callers hold mu.
func (b *Bank) owned(userID, accountID int64) (*domain.Account, error) {
	account, ok := b.accounts[accountID]
	if !ok || account.UserID == nil || *account.UserID != userID {
		return nil, rejected(http.StatusNotFound, "Account not found: %d", accountID)
	}
	return account, nil
}

func (b *Bank) byNumber(number string) *domain.Account {
	for _, a := range b.accounts {
		if a.AccountNumber == number {
			return a
		}
	}
	return nil
}

func (b *Bank) touch(account *domain.Account) {
	now := b.now()
	account.UpdatedAt = &now
}

// record appends a journal entry; a nil source is an external deposit. Callers hold mu.
func (b *Bank) record(amount decimal.Decimal, description string, source, destination *domain.Account) {
	b.nextEntryID++
	e := entry{id: b.nextEntryID, amount: amount, date: b.now(), description: description}
	if source != nil {
		id := source.ID
		e.sourceID = &id
		e.sourceNumber = source.AccountNumber
	}
	if destination != nil {
		id := destination.ID
		e.destinationID = &id
		e.destinationNumber = destination.AccountNumber
	}
	b.entries = append(b.entries, e)
}
