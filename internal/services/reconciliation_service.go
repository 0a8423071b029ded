package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/logger"
	"cashflow/internal/metrics"
	"cashflow/internal/models"
	"cashflow/internal/recurrence"
	"cashflow/internal/store"
)

// EditedFields are the new values submitted for an edited transaction.
type EditedFields = models.TransactionTemplate

// ReconciliationRequest is one edit of a stored transaction.
type ReconciliationRequest struct {
	// Target is the transaction as it was before the edit.
	Target models.Transaction
	Edit   EditedFields
	// ExpectedVersion, when set, makes the edit fail with VERSION_CONFLICT
	// unless the stored target still has this version.
	ExpectedVersion *int64
}

// ReconciliationResult describes what an edit changed.
type ReconciliationResult struct {
	Updated     models.Transaction   `json:"updated"`
	Regenerated bool                 `json:"regenerated"`
	Deleted     int                  `json:"deleted"`
	Created     []models.Transaction `json:"created"`
}

// ReconciliationOptions configures a ReconciliationServicer.
type ReconciliationOptions struct {
	// LegacyMatch also deletes unlinked repeating transactions whose
	// description, amount and type equal the target's. It exists for series
	// written before instances carried a recurring ID.
	LegacyMatch bool
}

// reconciliationService handles transaction edits.
type reconciliationService struct {
	transactions store.Store[models.Transaction]
	templates    templateChecker
	opts         ReconciliationOptions
	log          *zap.SugaredLogger
}

// NewReconciliationService creates a new ReconciliationServicer.
func NewReconciliationService(
	transactions store.Store[models.Transaction],
	types store.Store[models.TransactionType],
	opts ReconciliationOptions,
) ReconciliationServicer {
	return &reconciliationService{
		transactions: transactions,
		templates:    templateChecker{types: types},
		opts:         opts,
		log:          logger.Named("reconcile"),
	}
}

// Reconcile applies req.Edit to req.Target.
//
// When the edit makes the target repeat, or changes the rule of a repeating
// target, every other member of the target's series is deleted, the series is
// expanded again from the new due date and written, and the target takes the
// master slot of the new series. Steps run in that order and the first failure
// stops the rest; nothing is rolled back.
func (s *reconciliationService) Reconcile(ctx context.Context, req ReconciliationRequest) (*ReconciliationResult, error) {
	result, err := s.reconcile(ctx, req)
	switch {
	case err == nil && result.Regenerated:
		metrics.IncReconciliation(metrics.OutcomeRegenerated)
	case err == nil:
		metrics.IncReconciliation(metrics.OutcomeUpdated)
	case errors.Is(err, apperrors.ErrVersionConflict):
		metrics.IncReconciliation(metrics.OutcomeConflict)
	default:
		metrics.IncReconciliation(metrics.OutcomeFailed)
	}
	return result, err
}

func (s *reconciliationService) reconcile(ctx context.Context, req ReconciliationRequest) (*ReconciliationResult, error) {
	target := req.Target
	if target.ID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "edit target has no id")
	}
	edit := req.Edit
	if err := s.templates.check(ctx, &edit); err != nil {
		return nil, err
	}

	if req.ExpectedVersion != nil {
		current, err := s.transactions.Get(ctx, target.ID)
		if err != nil {
			return nil, readError(err, apperrors.ErrTransactionNotFound)
		}
		if current.Version != *req.ExpectedVersion {
			return nil, apperrors.ErrVersionConflict
		}
	}

	result := &ReconciliationResult{
		Regenerated: needsRegeneration(target, edit),
		Created:     []models.Transaction{},
	}
	fields := patchFields(edit)

	if result.Regenerated {
		deleted, err := s.deleteSeries(ctx, target)
		result.Deleted = deleted
		if err != nil {
			return nil, err
		}

		series := recurrence.Expand(edit, edit.Rule, edit.DueDate)
		recurrence.Link(series, target.ID)
		metrics.ObserveSeries(len(series))

		// The target is reused as the master; only the rest is created.
		for i := 1; i < len(series); i++ {
			if _, err := s.transactions.Create(ctx, &series[i]); err != nil {
				s.log.Errorw("failed to persist regenerated instance",
					"error", err,
					"recurring_id", target.ID,
					"recurring_index", series[i].RecurringIndex,
				)
				return nil, writeError("create", err, apperrors.ErrTransactionNotFound)
			}
			result.Created = append(result.Created, series[i])
		}

		master := series[0]
		fields["is_master"] = master.IsMaster
		fields["recurring_index"] = master.RecurringIndex
		fields[ColumnRecurringID] = master.RecurringID
	}

	var opts []store.UpdateOption
	if req.ExpectedVersion != nil {
		opts = append(opts, store.IfVersion(*req.ExpectedVersion))
	}
	if err := s.transactions.Update(ctx, target.ID, fields, opts...); err != nil {
		return nil, writeError("update", err, apperrors.ErrTransactionNotFound)
	}

	updated, err := s.transactions.Get(ctx, target.ID)
	if err != nil {
		return nil, readError(err, apperrors.ErrTransactionNotFound)
	}
	result.Updated = *updated

	s.log.Infow("reconciled transaction",
		"id", target.ID,
		"regenerated", result.Regenerated,
		"deleted", result.Deleted,
		"created", len(result.Created),
	)
	return result, nil
}

// needsRegeneration reports whether edit changes how target's series repeats.
func needsRegeneration(target models.Transaction, edit EditedFields) bool {
	wasRecurring := target.IsRepeating
	isNowRecurring := edit.IsRepeating
	ruleChanged := wasRecurring && isNowRecurring && !target.RecurrenceRule.Equal(edit.Rule)
	return ruleChanged || (!wasRecurring && isNowRecurring)
}

// deleteSeries removes every member of target's series except target itself.
// Members already gone are skipped.
func (s *reconciliationService) deleteSeries(ctx context.Context, target models.Transaction) (int, error) {
	key := target.SeriesKey()
	linked, err := s.transactions.QueryByField(ctx, ColumnRecurringID, key)
	if err != nil {
		return 0, readError(err, apperrors.ErrTransactionNotFound)
	}

	if s.opts.LegacyMatch {
		legacy, err := s.legacyMembers(ctx, target)
		if err != nil {
			return 0, err
		}
		linked = append(linked, legacy...)
	}

	deleted := 0
	for _, tx := range linked {
		if tx.ID == target.ID {
			continue
		}
		if err := s.transactions.Delete(ctx, tx.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			s.log.Errorw("failed to delete stale instance", "error", err, "id", tx.ID, "recurring_id", key)
			return deleted, writeError("delete", err, apperrors.ErrTransactionNotFound)
		}
		deleted++
	}
	return deleted, nil
}

// legacyMembers finds unlinked repeating transactions that look like they
// were generated from the same template as target. Unlinked rows carry an
// empty recurring_id; the column is NOT NULL.
func (s *reconciliationService) legacyMembers(ctx context.Context, target models.Transaction) ([]models.Transaction, error) {
	unlinked, err := s.transactions.QueryByField(ctx, ColumnRecurringID, "")
	if err != nil {
		return nil, readError(err, apperrors.ErrTransactionNotFound)
	}

	var matches []models.Transaction
	for _, tx := range unlinked {
		if tx.ID == target.ID || !tx.IsRepeating {
			continue
		}
		if tx.Description != target.Description || !tx.Amount.Equal(target.Amount) || !sameType(tx.TypeID, target.TypeID) {
			continue
		}
		s.log.Warnw("deleting unlinked transaction matched by description, amount and type",
			"id", tx.ID,
			"target_id", target.ID,
			"description", tx.Description,
		)
		matches = append(matches, tx)
	}
	return matches, nil
}

func sameType(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// patchFields lists the columns an edit writes on its target. Date, month and
// year follow the new due date.
func patchFields(edit EditedFields) map[string]any {
	rule := edit.Rule
	if !edit.IsRepeating {
		rule = models.RecurrenceRule{}
	}
	return map[string]any{
		"amount":        edit.Amount,
		"description":   edit.Description,
		"direction":     string(edit.Direction),
		"type_id":       edit.TypeID,
		"type_name":     edit.TypeName,
		"due_date":      edit.DueDate,
		"payment_date":  edit.PaymentDate,
		"is_repeating":  edit.IsRepeating,
		"frequency":     string(rule.Frequency),
		"end_condition": string(rule.EndCondition),
		"occurrences":   rule.Occurrences,
		"end_date":      rule.EndDate,
		"date":          edit.DueDate,
		"month":         int(edit.DueDate.Month()),
		"year":          edit.DueDate.Year(),
	}
}
