package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
	"cashflow/internal/services"
)

// TransactionTypeHandler handles transaction type requests.
type TransactionTypeHandler struct {
	typeService services.TransactionTypeServicer
}

// NewTransactionTypeHandler creates a new TransactionTypeHandler.
func NewTransactionTypeHandler(typeService services.TransactionTypeServicer) *TransactionTypeHandler {
	return &TransactionTypeHandler{typeService: typeService}
}

// CreateTransactionTypeRequest represents the request payload for creating a transaction type
type CreateTransactionTypeRequest struct {
	Name     string           `json:"name" binding:"required,notblank,max=100"`
	Category models.Direction `json:"category" binding:"required,direction"`
}

// UpdateTransactionTypeRequest represents the request payload for updating a transaction type
type UpdateTransactionTypeRequest struct {
	Name     *string           `json:"name" binding:"omitempty,notblank,max=100"`
	Category *models.Direction `json:"category" binding:"omitempty,direction"`
}

// ListTransactionTypesQuery holds the optional category filter.
type ListTransactionTypesQuery struct {
	Category models.Direction `form:"category" binding:"omitempty,direction"`
}

// TransactionTypeResponse wraps a single transaction type
type TransactionTypeResponse struct {
	TransactionType models.TransactionType `json:"transaction_type"`
}

// TransactionTypeListResponse wraps a list of transaction types
type TransactionTypeListResponse struct {
	TransactionTypes []models.TransactionType `json:"transaction_types"`
}

// CreateTransactionType handles the creation of a transaction type
// @Summary     Create a transaction type
// @Tags        transaction-types
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionTypeRequest true "Type details"
// @Success     201 {object} TransactionTypeResponse "Type created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transaction-types [post]
func (h *TransactionTypeHandler) CreateTransactionType(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tt, err := h.typeService.CreateTransactionType(c.Request.Context(), req.Name, req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TransactionTypeResponse{TransactionType: *tt})
}

// ListTransactionTypes handles the listing of transaction types
// @Summary     List transaction types
// @Description List all transaction types by name, optionally only those of one category
// @Tags        transaction-types
// @Produce     json
// @Security    BearerAuth
// @Param       category query string false "income or expense"
// @Success     200 {object} TransactionTypeListResponse "Types"
// @Failure     400 {object} ErrorResponse "Invalid category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transaction-types [get]
func (h *TransactionTypeHandler) ListTransactionTypes(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	var q ListTransactionTypesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var category *models.Direction
	if q.Category != "" {
		category = &q.Category
	}

	types, err := h.typeService.ListTransactionTypes(c.Request.Context(), category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionTypeListResponse{TransactionTypes: types})
}

// GetTransactionType handles the retrieval of a transaction type
// @Summary     Get a transaction type
// @Tags        transaction-types
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Type ID"
// @Success     200 {object} TransactionTypeResponse "Type"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Type not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transaction-types/{id} [get]
func (h *TransactionTypeHandler) GetTransactionType(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	tt, err := h.typeService.GetTransactionType(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionTypeResponse{TransactionType: *tt})
}

// UpdateTransactionType handles the update of a transaction type
// @Summary     Update a transaction type
// @Description Rename a type or move it to the other category. Existing transactions keep their stored type name.
// @Tags        transaction-types
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                       true "Type ID"
// @Param       request body UpdateTransactionTypeRequest true "Changed fields"
// @Success     200 {object} TransactionTypeResponse "Type updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Type not found"
// @Failure     409 {object} ErrorResponse "Type in use"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transaction-types/{id} [put]
func (h *TransactionTypeHandler) UpdateTransactionType(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tt, err := h.typeService.UpdateTransactionType(c.Request.Context(), id, req.Name, req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionTypeResponse{TransactionType: *tt})
}

// DeleteTransactionType handles the deletion of a transaction type
// @Summary     Delete a transaction type
// @Tags        transaction-types
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Type ID"
// @Success     200 {object} MessageResponse "Type deleted"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Type not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transaction-types/{id} [delete]
func (h *TransactionTypeHandler) DeleteTransactionType(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.typeService.DeleteTransactionType(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction type deleted successfully"})
}
