package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
	"cashflow/internal/store"
)

// transactionTypeService handles transaction type management.
type transactionTypeService struct {
	types        store.Store[models.TransactionType]
	transactions store.Store[models.Transaction]
}

// NewTransactionTypeService creates a new TransactionTypeServicer.
func NewTransactionTypeService(
	types store.Store[models.TransactionType],
	transactions store.Store[models.Transaction],
) TransactionTypeServicer {
	return &transactionTypeService{types: types, transactions: transactions}
}

// CreateTransactionType creates a new transaction type
func (s *transactionTypeService) CreateTransactionType(ctx context.Context, name string, category models.Direction) (*models.TransactionType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "name is required")
	}
	if !category.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "category must be income or expense")
	}

	tt := &models.TransactionType{Name: name, Category: category}
	if _, err := s.types.Create(ctx, tt); err != nil {
		return nil, writeError("create", err, apperrors.ErrTransactionTypeNotFound)
	}
	return tt, nil
}

// GetTransactionType retrieves a transaction type by ID
func (s *transactionTypeService) GetTransactionType(ctx context.Context, id string) (*models.TransactionType, error) {
	tt, err := s.types.Get(ctx, id)
	if err != nil {
		return nil, readError(err, apperrors.ErrTransactionTypeNotFound)
	}
	return tt, nil
}

// ListTransactionTypes lists types by name, optionally restricted to one category.
func (s *transactionTypeService) ListTransactionTypes(ctx context.Context, category *models.Direction) ([]models.TransactionType, error) {
	if category != nil {
		if !category.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "category must be income or expense")
		}
		types, err := s.types.QueryByField(ctx, "category", string(*category))
		if err != nil {
			return nil, readError(err, apperrors.ErrTransactionTypeNotFound)
		}
		sortTypesByName(types)
		return types, nil
	}

	types, _, err := s.types.List(ctx, store.ListOptions{OrderBy: store.OrderBy{Field: "name"}})
	if err != nil {
		return nil, readError(err, apperrors.ErrTransactionTypeNotFound)
	}
	return types, nil
}

// UpdateTransactionType renames a type or moves it to another category. A type
// that transactions already use keeps its category.
func (s *transactionTypeService) UpdateTransactionType(ctx context.Context, id string, name *string, category *models.Direction) (*models.TransactionType, error) {
	fields := map[string]any{}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "name cannot be empty")
		}
		fields["name"] = trimmed
	}
	if category != nil {
		if !category.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "category must be income or expense")
		}
		if err := s.checkCategoryChange(ctx, id, *category); err != nil {
			return nil, err
		}
		fields["category"] = string(*category)
	}

	if len(fields) > 0 {
		if err := s.types.Update(ctx, id, fields); err != nil {
			return nil, writeError("update", err, apperrors.ErrTransactionTypeNotFound)
		}
	}
	return s.GetTransactionType(ctx, id)
}

// DeleteTransactionType deletes a transaction type. Transactions keep their
// copied type name.
func (s *transactionTypeService) DeleteTransactionType(ctx context.Context, id string) error {
	if err := s.types.Delete(ctx, id); err != nil {
		return writeError("delete", err, apperrors.ErrTransactionTypeNotFound)
	}
	return nil
}

// checkCategoryChange rejects moving type id to category while any
// transaction still carries the type.
func (s *transactionTypeService) checkCategoryChange(ctx context.Context, id string, category models.Direction) error {
	current, err := s.GetTransactionType(ctx, id)
	if err != nil {
		return err
	}
	if current.Category == category {
		return nil
	}
	used, err := s.transactions.QueryByField(ctx, ColumnTypeID, id)
	if err != nil {
		return readError(err, apperrors.ErrTransactionTypeNotFound)
	}
	if len(used) > 0 {
		return apperrors.WithMessage(apperrors.ErrTransactionTypeInUse,
			fmt.Sprintf("transaction type is used by %d transactions", len(used)))
	}
	return nil
}

func sortTypesByName(types []models.TransactionType) {
	sort.SliceStable(types, func(i, j int) bool { return types[i].Name < types[j].Name })
}
