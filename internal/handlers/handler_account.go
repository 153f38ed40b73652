package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SscSPs/bank_console/internal/core/domain"
	portssvc "github.com/SscSPs/bank_console/internal/core/ports/services"
	"github.com/SscSPs/bank_console/internal/handlers/dto"
	"github.com/SscSPs/bank_console/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles console requests about accounts and money movement.
type accountHandler struct {
	accounts portssvc.AccountStoreSvc
	console  portssvc.ConsoleSvcFacade
}

func registerAccountRoutes(rg *gin.RouterGroup, session portssvc.SessionReaderSvc, accounts portssvc.AccountStoreSvc, console portssvc.ConsoleSvcFacade) {
	h := &accountHandler{accounts: accounts, console: console}

	a := rg.Group("/accounts")
	{
		a.GET("", middleware.RequireSession(session), h.listAccounts)
		a.POST("", h.createAccount)
		a.POST("/refresh", h.refreshAccounts)
		a.POST("/:id/deposit", h.deposit)
		a.DELETE("/:id", h.deleteAccount)
	}
	rg.POST("/transfers", h.transfer)
}

func parseAccountID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid account id")
	}
	return id, nil
}

// listAccounts returns the cached account list without contacting the ledger.
func (h *accountHandler) listAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToAccountResponses(h.accounts.Accounts()))
}

func (h *accountHandler) refreshAccounts(c *gin.Context) {
	accounts, err := h.console.LoadAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// createAccount godoc
// @Summary Open an account
// @Description Opens a Savings or Checking account for the logged-in customer
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Not logged in or session expired"
// @Failure 502 {object} map[string]string "Rejected by the ledger"
// @Router /api/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	in := domain.CreateAccountInput{AccountType: domain.AccountType(req.AccountType), InitialDeposit: req.InitialDeposit}
	account, err := h.console.CreateAccount(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(*account))
}

// deposit godoc
// @Summary Deposit into an account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path int true "Account ID"
// @Param   deposit body dto.DepositRequest true "Amount"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Not logged in or session expired"
// @Router /api/accounts/{id}/deposit [post]
func (h *accountHandler) deposit(c *gin.Context) {
	accountID, err := parseAccountID(c)
	if err != nil {
		badRequest(c, "Invalid account id", err)
		return
	}
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	account, err := h.console.Deposit(c.Request.Context(), domain.DepositInput{AccountID: accountID, Amount: req.Amount})
	if err != nil {
		respondError(c, err, "Deposit failed")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(*account))
}

func (h *accountHandler) deleteAccount(c *gin.Context) {
	accountID, err := parseAccountID(c)
	if err != nil {
		badRequest(c, "Invalid account id", err)
		return
	}

	if err := h.console.DeleteAccount(c.Request.Context(), accountID); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}
	c.Status(http.StatusNoContent)
}

// transfer godoc
// @Summary Transfer money
// @Description Moves money from one of the customer's accounts to any account number
// @Tags transfers
// @Accept  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Produce  json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Validation error, e.g. insufficient funds"
// @Failure 401 {object} map[string]string "Not logged in or session expired"
// @Failure 502 {object} map[string]string "Rejected by the ledger"
// @Router /api/transfers [post]
func (h *accountHandler) transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	in := domain.TransferInput{
		FromAccountID:   req.FromAccountID,
		ToAccountNumber: req.ToAccountNumber,
		Amount:          req.Amount,
		Description:     req.Description,
	}
	if err := h.console.Transfer(c.Request.Context(), in); err != nil {
		respondError(c, err, "Transfer failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transfer completed successfully"})
}
