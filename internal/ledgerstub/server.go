package ledgerstub

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/bank_console/internal/core/domain"
	"github.com/SscSPs/bank_console/internal/dto"
	"github.com/SscSPs/bank_console/internal/middleware"
	"github.com/SscSPs/bank_console/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// localDateTime is the zone-less layout the ledger uses for timestamps.
const localDateTime = "2006-01-02T15:04:05.000000"

// Config holds the stub's token and throttling settings.
type Config struct {
	JWTSecret      string
	JWTExpiry      time.Duration
	JWTIssuer      string
	LoginRateLimit string
}

type server struct {
	bank *Bank
	cfg  Config
}

type accountView struct {
	ID            int64           `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	UserID        *int64          `json:"userId,omitempty"`
	CreatedAt     string          `json:"createdAt,omitempty"`
	UpdatedAt     string          `json:"updatedAt,omitempty"`
}

type transactionView struct {
	ID                       int64           `json:"id"`
	TransactionType          string          `json:"transactionType"`
	Amount                   decimal.Decimal `json:"amount"`
	TransactionDate          string          `json:"transactionDate"`
	Description              string          `json:"description,omitempty"`
	SourceAccountID          *int64          `json:"sourceAccountId,omitempty"`
	SourceAccountNumber      string          `json:"sourceAccountNumber,omitempty"`
	DestinationAccountID     *int64          `json:"destinationAccountId,omitempty"`
	DestinationAccountNumber string          `json:"destinationAccountNumber,omitempty"`
}

// NewRouter builds the stub's HTTP API under /api.
func NewRouter(bank *Bank, cfg Config, logger *slog.Logger) (*gin.Engine, error) {
	s := &server{bank: bank, cfg: cfg}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger))
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		loginHandlers := []gin.HandlerFunc{}
		if cfg.LoginRateLimit != "" {
			limiter, err := middleware.NewRateLimiter(cfg.LoginRateLimit)
			if err != nil {
				return nil, err
			}
			loginHandlers = append(loginHandlers, middleware.RateLimit(limiter))
		}
		auth.POST("/login", append(loginHandlers, s.login)...)
		auth.POST("/register", s.register)
	}

	accounts := api.Group("/accounts", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		accounts.GET("", s.listAccounts)
		accounts.POST("/create", s.createAccount)
		accounts.POST("/transfer", s.transfer)
		accounts.POST("/:id/deposit", s.deposit)
		accounts.DELETE("/:id", s.deleteAccount)
		accounts.GET("/:id/transactions", s.transactions)
	}
	return r, nil
}

func respond(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		logger.Info("Ledger rule rejected request", slog.Int("status", ruleErr.Status), slog.String("reason", ruleErr.Message))
		c.JSON(ruleErr.Status, dto.MessageResponse{Message: ruleErr.Message})
		return
	}
	logger.Error("Ledger request failed", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Internal server error"})
}

func bindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind ledger request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request format"})
}

func callerID(c *gin.Context) (int64, bool) {
	raw, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func parseAmount(n string) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(n)
}

func toAccountView(a domain.Account) accountView {
	return accountView{
		ID:            a.ID,
		AccountNumber: a.AccountNumber,
		AccountType:   string(a.AccountType),
		Balance:       a.Balance,
		UserID:        a.UserID,
		CreatedAt:     formatLocal(a.CreatedAt),
		UpdatedAt:     formatLocal(a.UpdatedAt),
	}
}

func formatLocal(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(localDateTime)
}

func (s *server) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, fullName, err := s.bank.Authenticate(req.Username, req.Password)
	if err != nil {
		respond(c, err)
		return
	}
	token, err := utils.GenerateJWT(strconv.FormatInt(userID, 10), req.Username, s.cfg.JWTSecret, s.cfg.JWTExpiry, s.cfg.JWTIssuer)
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, Username: req.Username, FullName: fullName})
}

func (s *server) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := s.bank.Register(req.Username, req.Password, req.FullName); err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "User registered successfully"})
}

func (s *server) listAccounts(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Unauthorized"})
		return
	}
	accounts := s.bank.Accounts(userID)
	out := make([]accountView, len(accounts))
	for i, a := range accounts {
		out[i] = toAccountView(a)
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) createAccount(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Unauthorized"})
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	initial, err := parseAmount(req.InitialDeposit.String())
	if err != nil {
		bindError(c, err)
		return
	}
	account, err := s.bank.CreateAccount(userID, req.Username, req.AccountType, initial)
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAccountView(account))
}

func (s *server) deposit(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Unauthorized"})
		return
	}
	accountID, err := pathID(c)
	if err != nil {
		bindError(c, err)
		return
	}
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	amount, err := parseAmount(req.Amount.String())
	if err != nil {
		bindError(c, err)
		return
	}
	account, err := s.bank.Deposit(userID, accountID, amount)
	if err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountView(account))
}

func (s *server) deleteAccount(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Unauthorized"})
		return
	}
	accountID, err := pathID(c)
	if err != nil {
		bindError(c, err)
		return
	}
	if err := s.bank.DeleteAccount(userID, accountID); err != nil {
		respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *server) transfer(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Unauthorized"})
		return
	}
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	amount, err := parseAmount(req.Amount.String())
	if err != nil {
		bindError(c, err)
		return
	}
	if err := s.bank.Transfer(userID, req.FromAccountID, req.ToAccountNumber, amount, req.Description); err != nil {
		respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Transfer successful"})
}

func (s *server) transactions(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Unauthorized"})
		return
	}
	accountID, err := pathID(c)
	if err != nil {
		bindError(c, err)
		return
	}
	statements, err := s.bank.Transactions(userID, accountID)
	if err != nil {
		respond(c, err)
		return
	}
	out := make([]transactionView, len(statements))
	for i, st := range statements {
		out[i] = transactionView{
			ID:                       st.ID,
			TransactionType:          string(st.Type),
			Amount:                   st.Amount,
			TransactionDate:          formatLocal(&st.Date),
			Description:              st.Description,
			SourceAccountID:          st.SourceAccountID,
			SourceAccountNumber:      st.SourceAccountNumber,
			DestinationAccountID:     st.DestinationAccountID,
			DestinationAccountNumber: st.DestinationAccountNumber,
		}
	}
	c.JSON(http.StatusOK, out)
}
