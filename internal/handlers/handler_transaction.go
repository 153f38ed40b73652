package handlers

import (
	"net/http"
	"strconv"

	"github.com/SscSPs/bank_console/internal/apperrors"
	"github.com/SscSPs/bank_console/internal/core/domain"
	portssvc "github.com/SscSPs/bank_console/internal/core/ports/services"
	"github.com/SscSPs/bank_console/internal/handlers/dto"
	"github.com/SscSPs/bank_console/internal/middleware"
	"github.com/SscSPs/bank_console/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type transactionHandler struct {
	transactions portssvc.TransactionAggregatorSvc
	console      portssvc.ConsoleSvcFacade
}

func registerTransactionRoutes(rg *gin.RouterGroup, session portssvc.SessionReaderSvc, transactions portssvc.TransactionAggregatorSvc, console portssvc.ConsoleSvcFacade) {
	h := &transactionHandler{transactions: transactions, console: console}

	t := rg.Group("/transactions")
	{
		t.GET("", middleware.RequireSession(session), h.listTransactions)
		t.POST("/refresh", h.refreshTransactions)
	}
}

type listParams struct {
	accountID int64
	limit     int
	offset    int
}

func parseListParams(c *gin.Context) (listParams, error) {
	p := listParams{limit: defaultPageSize}
	if raw := c.Query("accountId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			return p, apperrors.NewValidationError("Invalid Filter", "accountId must be a non-negative number")
		}
		p.accountID = id
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return p, apperrors.NewValidationError("Invalid Limit", "limit must be a positive number")
		}
		p.limit = min(limit, maxPageSize)
	}
	return p, nil
}

// listTransactions godoc
// @Summary List transactions
// @Description Pages through the cached timeline. Page tokens are bound to the refresh they were issued for and are rejected after the next one
// @Tags transactions
// @Produce  json
// @Param   accountId query int false "Only transactions touching this account"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   pageToken query string false "Token from the previous page"
// @Success 200 {object} dto.TransactionPageResponse
// @Failure 400 {object} map[string]string "Bad filter or stale page token"
// @Failure 401 {object} map[string]string "Not logged in"
// @Router /api/transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	p, err := parseListParams(c)
	if err != nil {
		respondError(c, err, "")
		return
	}

	snapshot := h.transactions.Snapshot()
	if token := c.Query("pageToken"); token != "" {
		offset, issuedFor, err := pagination.DecodeOffsetToken(token)
		if err != nil {
			badRequest(c, "Invalid page token", err)
			return
		}
		if !issuedFor.Equal(snapshot) {
			respondError(c, apperrors.NewValidationError("Stale Page", "Transactions were reloaded. Please start from the first page."), "")
			return
		}
		p.offset = offset
	}

	c.JSON(http.StatusOK, h.page(h.transactions.Filter(p.accountID), p))
}

func (h *transactionHandler) refreshTransactions(c *gin.Context) {
	p, err := parseListParams(c)
	if err != nil {
		respondError(c, err, "")
		return
	}
	if _, err := h.console.LoadTransactions(c.Request.Context()); err != nil {
		respondError(c, err, "Failed to load transactions")
		return
	}
	c.JSON(http.StatusOK, h.page(h.transactions.Filter(p.accountID), p))
}

func (h *transactionHandler) page(txs []domain.Transaction, p listParams) dto.TransactionPageResponse {
	items, next := pagination.Page(txs, p.offset, p.limit)
	resp := dto.TransactionPageResponse{
		Transactions: dto.ToTransactionResponses(items),
		Failures:     dto.ToFetchFailures(h.transactions.Failures()),
	}
	if next >= 0 {
		resp.NextPageToken = pagination.EncodeOffsetToken(next, h.transactions.Snapshot())
	}
	return resp
}
