package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
	"cashflow/internal/pagination"
	"cashflow/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService    services.TransactionServicer
	reconciliationService services.ReconciliationServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, reconciliationService services.ReconciliationServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, reconciliationService: reconciliationService}
}

// TransactionRequest represents the request payload for creating or editing a transaction
type TransactionRequest struct {
	Amount      decimal.Decimal        `json:"amount" swaggertype:"string" example:"1200.50"`
	Description string                 `json:"description" binding:"max=500"`
	Direction   models.Direction       `json:"direction" binding:"required,direction"`
	TypeID      *string                `json:"type_id"`
	DueDate     models.Date            `json:"due_date" swaggertype:"string" example:"2024-01-31"`
	PaymentDate *models.Date           `json:"payment_date" swaggertype:"string" example:"2024-02-01"`
	IsRepeating bool                   `json:"is_repeating"`
	Rule        *models.RecurrenceRule `json:"rule"`
}

func (r TransactionRequest) template() models.TransactionTemplate {
	tmpl := models.TransactionTemplate{
		Amount:      r.Amount,
		Description: r.Description,
		Direction:   r.Direction,
		TypeID:      r.TypeID,
		DueDate:     r.DueDate,
		PaymentDate: r.PaymentDate,
		IsRepeating: r.IsRepeating,
	}
	if r.Rule != nil {
		tmpl.Rule = *r.Rule
	}
	return tmpl
}

// UpdateTransactionRequest represents the request payload for editing a transaction
type UpdateTransactionRequest struct {
	TransactionRequest
	// ExpectedVersion rejects the edit with 409 when the transaction changed since it was read.
	ExpectedVersion *int64 `json:"expected_version"`
}

// TransactionResponse wraps a single transaction
type TransactionResponse struct {
	Transaction models.Transaction `json:"transaction"`
}

// TransactionListResponse wraps a list of transactions
type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

// CreateTransaction handles the creation of a transaction or a recurring series
// @Summary     Create a transaction
// @Description Create a one-off transaction, or a whole linked series when is_repeating is set
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransactionRequest true "Transaction details"
// @Success     201 {object} TransactionListResponse "Transactions created, master first"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	created, err := h.transactionService.CreateTransaction(c.Request.Context(), req.template())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TransactionListResponse{Transactions: created})
}

// ListTransactions handles the paginated listing of transactions
// @Summary     List transactions
// @Description Get a page of transactions ordered by date, newest first
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTransaction handles the retrieval of a single transaction
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} TransactionResponse "Transaction"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tx, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Transaction: *tx})
}

// GetSeries handles the listing of every member of a transaction's series
// @Summary     Get a transaction's series
// @Description List the members of the recurring series the transaction belongs to, by recurring index
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} TransactionListResponse "Series members"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id}/series [get]
func (h *TransactionHandler) GetSeries(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	series, err := h.transactionService.ListSeries(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Transactions: series})
}

// UpdateTransaction handles an edit of a stored transaction
// @Summary     Edit a transaction
// @Description Apply an edit. Changing whether or how a transaction repeats regenerates its series.
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Edited fields"
// @Success     200 {object} services.ReconciliationResult "Edit applied"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     409 {object} ErrorResponse "Transaction changed since it was read"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	target, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	session := services.NewEditSession(h.reconciliationService, *target)
	result, err := session.Submit(c.Request.Context(), req.template(), req.ExpectedVersion)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteTransaction handles the deletion of a single transaction
// @Summary     Delete a transaction
// @Description Delete one transaction. Other members of its series are kept.
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction deleted successfully"})
}

// StreamTransactions streams the transaction list as server-sent events
// @Summary     Stream transactions
// @Description Send the full transaction list, newest first, now and after every change
// @Tags        transactions
// @Produce     text/event-stream
// @Security    BearerAuth
// @Success     200 {array} models.Transaction "transactions events"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/stream [get]
func (h *TransactionHandler) StreamTransactions(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	sub, err := h.transactionService.SubscribeTransactions(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer sub.Unsubscribe()

	streamEvents(c, "transactions", sub.Snapshots())
}
