package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/bank_console/internal/apperrors"
	"github.com/SscSPs/bank_console/internal/core/domain"
	portssvc "github.com/SscSPs/bank_console/internal/core/ports/services"
	"github.com/SscSPs/bank_console/internal/core/services"
	"github.com/SscSPs/bank_console/internal/handlers"
	"github.com/SscSPs/bank_console/internal/handlers/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HandlersTestSuite struct {
	suite.Suite
	router        *gin.Engine
	session       *MockSession
	accounts      *MockAccountStore
	transactions  *MockTransactions
	console       *MockConsole
	notifications portssvc.NotificationSink
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.session = new(MockSession)
	suite.accounts = new(MockAccountStore)
	suite.transactions = new(MockTransactions)
	suite.console = new(MockConsole)
	suite.notifications = services.NewNotificationService()

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &portssvc.ServiceContainer{
		Session:       suite.session,
		Accounts:      suite.accounts,
		Transactions:  suite.transactions,
		Notifications: suite.notifications,
		Console:       suite.console,
	})
}

func (suite *HandlersTestSuite) loggedIn() {
	suite.session.current = &domain.Session{Username: "testuser", FullName: "Test User", Token: "abc"}
}

func (suite *HandlersTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlersTestSuite) errorOf(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

// --- Health & session ---
func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlersTestSuite) TestGetSession_Anonymous() {
	w := suite.do(http.MethodGet, "/api/session", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"state":"anonymous"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestLogin_Success() {
	suite.console.On("Login", mock.Anything, "testuser", "password").
		Run(func(mock.Arguments) { suite.loggedIn() }).
		Return(&domain.Session{Username: "testuser", FullName: "Test User", Token: "abc"}, nil).Once()
	suite.session.On("Claims").Return(nil, assert.AnError).Once()

	w := suite.do(http.MethodPost, "/api/session/login", dto.LoginRequest{Username: "testuser", Password: "password"})

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"state":"authenticated","username":"testuser","fullName":"Test User"}`, w.Body.String())
	suite.console.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestLogin_Errors() {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apperrors.ErrEmptyCredentials, http.StatusBadRequest, "Please enter your username and password"},
		{"rejected", &apperrors.APIError{Kind: apperrors.ErrRemoteRejected, StatusCode: 401, Message: "Invalid credentials"}, http.StatusBadGateway, "Invalid credentials"},
		{"unreachable", &apperrors.APIError{Kind: apperrors.ErrConnectionFailure, Message: apperrors.ConnectionFailureMessage}, http.StatusServiceUnavailable, apperrors.ConnectionFailureMessage},
		{"expired during sync", &apperrors.APIError{Kind: apperrors.ErrSessionExpired, StatusCode: 401, Message: apperrors.SessionExpiredMessage}, http.StatusUnauthorized, apperrors.SessionExpiredMessage},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.console.On("Login", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/session/login", dto.LoginRequest{Username: "u", Password: "p"})

			suite.Equal(tt.status, w.Code)
			suite.Equal(tt.message, suite.errorOf(w))
		})
	}
}

func (suite *HandlersTestSuite) TestLogin_SessionGoneBeforeResponse() {
	suite.console.On("Login", mock.Anything, "testuser", "password").
		Return(&domain.Session{Username: "testuser", FullName: "Test User", Token: "abc"}, nil).Once()

	w := suite.do(http.MethodPost, "/api/session/login", dto.LoginRequest{Username: "testuser", Password: "password"})

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"state":"anonymous"}`, w.Body.String())
}

func (suite *HandlersTestSuite) TestLogin_MalformedBody() {
	w := suite.do(http.MethodPost, "/api/session/login", "{")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.console.AssertNotCalled(suite.T(), "Login", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestRegister() {
	in := domain.RegistrationInput{Username: "bob", Password: "password1", FullName: "Bob"}
	suite.console.On("Register", mock.Anything, in).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/session/register", dto.RegisterRequest{Username: "bob", Password: "password1", FullName: "Bob"})

	suite.Equal(http.StatusCreated, w.Code)
	suite.console.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestLogout() {
	suite.loggedIn()
	suite.console.On("Logout", mock.Anything).Return().Once()

	w := suite.do(http.MethodPost, "/api/session/logout", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.console.AssertExpectations(suite.T())
}

// --- Accounts ---
func (suite *HandlersTestSuite) TestListAccounts_RequiresSession() {
	w := suite.do(http.MethodGet, "/api/accounts", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.accounts.AssertNotCalled(suite.T(), "Accounts")
}

func (suite *HandlersTestSuite) TestListAccounts() {
	suite.loggedIn()
	suite.accounts.On("Accounts").Return([]domain.Account{
		{ID: 1, AccountNumber: "ACC-1", AccountType: domain.Checking, Balance: decimal.RequireFromString("1234.5")},
	}).Once()

	w := suite.do(http.MethodGet, "/api/accounts", nil)

	suite.Equal(http.StatusOK, w.Code)
	var got []dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Require().Len(got, 1)
	suite.Equal("$1,234.50", got[0].BalanceDisplay)
	suite.Equal("Checking - ACC-1", got[0].Label)
}

func (suite *HandlersTestSuite) TestRefreshAccounts_SessionExpired() {
	suite.console.On("LoadAccounts", mock.Anything).
		Return(nil, &apperrors.APIError{Kind: apperrors.ErrSessionExpired, StatusCode: 401, Message: apperrors.SessionExpiredMessage}).Once()

	w := suite.do(http.MethodPost, "/api/accounts/refresh", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(apperrors.SessionExpiredMessage, suite.errorOf(w))
}

func (suite *HandlersTestSuite) TestCreateAccount() {
	suite.loggedIn()
	created := &domain.Account{ID: 9, AccountNumber: "NEW-9", AccountType: domain.Savings, Balance: decimal.NewFromInt(50)}
	suite.console.On("CreateAccount", mock.Anything, mock.MatchedBy(func(in domain.CreateAccountInput) bool {
		return in.AccountType == domain.Savings && in.InitialDeposit != nil && in.InitialDeposit.Equal(decimal.NewFromInt(50))
	})).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/accounts", `{"accountType":"Savings","initialDeposit":50}`)

	suite.Equal(http.StatusCreated, w.Code)
	suite.console.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestDeposit_StringAmount() {
	suite.loggedIn()
	updated := &domain.Account{ID: 5, AccountNumber: "A-5", Balance: decimal.RequireFromString("250.50")}
	suite.console.On("Deposit", mock.Anything, mock.MatchedBy(func(in domain.DepositInput) bool {
		return in.AccountID == 5 && in.Amount != nil && in.Amount.Equal(decimal.RequireFromString("250.50"))
	})).Return(updated, nil).Once()

	w := suite.do(http.MethodPost, "/api/accounts/5/deposit", `{"amount":"250.50"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.console.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestDeposit_InvalidID() {
	w := suite.do(http.MethodPost, "/api/accounts/abc/deposit", `{"amount":1}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.console.AssertNotCalled(suite.T(), "Deposit", mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestDeleteAccount() {
	suite.console.On("DeleteAccount", mock.Anything, int64(3)).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/accounts/3", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlersTestSuite) TestTransfer() {
	suite.console.On("Transfer", mock.Anything, mock.MatchedBy(func(in domain.TransferInput) bool {
		return in.FromAccountID == 1 && in.ToAccountNumber == "B-2" && in.Amount.Equal(decimal.NewFromInt(25)) && in.Description == "rent"
	})).Return(nil).Once()

	w := suite.do(http.MethodPost, "/api/transfers", `{"fromAccountId":1,"toAccountNumber":"B-2","amount":25,"description":"rent"}`)

	suite.Equal(http.StatusOK, w.Code)
	suite.console.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestTransfer_Insufficient() {
	suite.console.On("Transfer", mock.Anything, mock.Anything).
		Return(apperrors.NewValidationError("Insufficient Funds", "Insufficient funds: your balance is $100.00")).Once()

	w := suite.do(http.MethodPost, "/api/transfers", `{"fromAccountId":1,"toAccountNumber":"B-2","amount":150}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Insufficient funds: your balance is $100.00", suite.errorOf(w))
}

// --- Transactions ---
func (suite *HandlersTestSuite) TestListTransactions_Pages() {
	suite.loggedIn()
	snapshot := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		{ID: 3, TransactionType: domain.Deposit, Amount: decimal.NewFromInt(30)},
		{ID: 2, TransactionType: domain.Transfer, Amount: decimal.NewFromInt(20)},
		{ID: 1, TransactionType: domain.Received, Amount: decimal.NewFromInt(10)},
	}
	suite.transactions.On("Filter", int64(0)).Return(txs)
	suite.transactions.On("Snapshot").Return(snapshot)
	suite.transactions.On("Failures").Return(nil)

	w := suite.do(http.MethodGet, "/api/transactions?limit=2", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var first dto.TransactionPageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &first))
	suite.Require().Len(first.Transactions, 2)
	suite.Equal("+$30.00", first.Transactions[0].AmountDisplay)
	suite.Equal("-$20.00", first.Transactions[1].AmountDisplay)
	suite.Require().NotEmpty(first.NextPageToken)

	w = suite.do(http.MethodGet, "/api/transactions?limit=2&pageToken="+first.NextPageToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var second dto.TransactionPageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &second))
	suite.Require().Len(second.Transactions, 1)
	suite.Equal(int64(1), second.Transactions[0].ID)
	suite.True(second.Transactions[0].Credit)
	suite.Empty(second.NextPageToken)
}

func (suite *HandlersTestSuite) TestListTransactions_StaleToken() {
	suite.loggedIn()
	suite.transactions.On("Snapshot").Return(time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC))
	suite.transactions.On("Filter", mock.Anything).Return([]domain.Transaction{})

	token := "MnwyMDI0LTA1LTEwVDExOjAwOjAwWg" // "2|2024-05-10T11:00:00Z"
	w := suite.do(http.MethodGet, "/api/transactions?pageToken="+token, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Transactions were reloaded. Please start from the first page.", suite.errorOf(w))
}

func (suite *HandlersTestSuite) TestListTransactions_BadFilter() {
	suite.loggedIn()

	w := suite.do(http.MethodGet, "/api/transactions?accountId=x", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestRefreshTransactions_ReportsFailures() {
	suite.console.On("LoadTransactions", mock.Anything).Return([]domain.Transaction{}, nil).Once()
	suite.transactions.On("Filter", int64(7)).Return([]domain.Transaction{})
	suite.transactions.On("Failures").Return([]apperrors.PartialFetchFailure{
		{AccountID: 8, Err: &apperrors.APIError{Kind: apperrors.ErrRemoteRejected, Message: "HTTP 500: Internal Server Error"}},
	})

	w := suite.do(http.MethodPost, "/api/transactions/refresh?accountId=7", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"transactions":[],"failures":[{"accountId":8,"error":"HTTP 500: Internal Server Error"}]}`, w.Body.String())
}

// --- Notifications ---
func (suite *HandlersTestSuite) TestNotifications() {
	n := suite.notifications.Push("Deposit Successful", "Deposited $10.00 into A-5.", domain.SeveritySuccess)

	w := suite.do(http.MethodGet, "/api/notifications", nil)
	suite.Equal(http.StatusOK, w.Code)
	var got []domain.Notification
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	suite.Require().Len(got, 1)
	suite.Equal(n.ID, got[0].ID)

	w = suite.do(http.MethodDelete, "/api/notifications/"+n.ID, nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodDelete, "/api/notifications/"+n.ID, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
