package services

import (
	"context"
	"errors"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/metrics"
	"cashflow/internal/models"
	"cashflow/internal/store"
	"cashflow/internal/validator"
)

// templateChecker validates templates before anything is written and fills in
// the canonical type name of a referenced transaction type.
type templateChecker struct {
	types store.Store[models.TransactionType]
}

func (c templateChecker) check(ctx context.Context, tmpl *models.TransactionTemplate) error {
	if err := validator.ValidateStruct(tmpl); err != nil {
		return apperrors.WithMessage(apperrors.ErrValidation, err.Error())
	}
	if !tmpl.Amount.IsPositive() {
		return apperrors.WithMessage(apperrors.ErrValidation, "amount must be greater than zero")
	}
	if !tmpl.Amount.Equal(tmpl.Amount.Round(2)) {
		return apperrors.WithMessage(apperrors.ErrValidation, "amount cannot have more than two decimal places")
	}
	if tmpl.DueDate.IsZero() {
		return apperrors.WithMessage(apperrors.ErrValidation, "due_date is required")
	}

	if tmpl.IsRepeating {
		if err := checkRule(tmpl.Rule, tmpl.DueDate); err != nil {
			return err
		}
	} else {
		tmpl.Rule = models.RecurrenceRule{}
	}

	if tmpl.TypeID == nil || *tmpl.TypeID == "" {
		tmpl.TypeID = nil
		tmpl.TypeName = ""
		return nil
	}

	tt, err := c.types.Get(ctx, *tmpl.TypeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.WithMessage(apperrors.ErrValidation, "type_id does not reference an existing transaction type")
		}
		return apperrors.Wrap(apperrors.ErrStoreRead, err)
	}
	if tt.Category != tmpl.Direction {
		return apperrors.ErrTypeDirectionMismatch
	}
	tmpl.TypeName = tt.Name
	return nil
}

func checkRule(rule models.RecurrenceRule, due models.Date) error {
	if err := validator.ValidateStruct(rule); err != nil {
		return apperrors.WithMessage(apperrors.ErrValidation, err.Error())
	}
	switch rule.EndCondition {
	case models.EndNever:
	case models.EndAfterOccurrences:
		if rule.Occurrences < 1 {
			return apperrors.WithMessage(apperrors.ErrValidation, "occurrences must be at least 1")
		}
	case models.EndOnDate:
		if rule.EndDate == nil || rule.EndDate.IsZero() {
			return apperrors.WithMessage(apperrors.ErrValidation, "end_date is required when the series ends on a date")
		}
		if rule.EndDate.Before(due) {
			return apperrors.WithMessage(apperrors.ErrValidation, "end_date cannot be before due_date")
		}
	}
	return nil
}

// writeError maps a failed store write onto an AppError.
func writeError(op string, err error, notFound *apperrors.AppError) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return notFound
	case errors.Is(err, store.ErrVersionConflict):
		return apperrors.ErrVersionConflict
	}
	metrics.IncStoreFailure(op)
	return apperrors.Wrap(apperrors.ErrStoreWrite, err)
}

// readError maps a failed store read onto an AppError.
func readError(err error, notFound *apperrors.AppError) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound
	}
	metrics.IncStoreFailure("read")
	return apperrors.Wrap(apperrors.ErrStoreRead, err)
}
