package services

import (
	"context"
	"sort"

	"go.uber.org/zap"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/logger"
	"cashflow/internal/metrics"
	"cashflow/internal/models"
	"cashflow/internal/pagination"
	"cashflow/internal/recurrence"
	"cashflow/internal/store"
	"cashflow/internal/uuid"
)

// ColumnRecurringID links series members to their master.
const ColumnRecurringID = "recurring_id"

// ColumnTypeID holds a transaction's type reference.
const ColumnTypeID = "type_id"

var newestFirst = store.OrderBy{Field: "date", Desc: true}

// transactionService handles transaction-related business logic.
type transactionService struct {
	transactions store.Store[models.Transaction]
	templates    templateChecker
	log          *zap.SugaredLogger
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(
	transactions store.Store[models.Transaction],
	types store.Store[models.TransactionType],
) TransactionServicer {
	return &transactionService{
		transactions: transactions,
		templates:    templateChecker{types: types},
		log:          logger.Named("transactions"),
	}
}

// CreateTransaction validates tmpl, expands it when it repeats and writes the
// result in index order. A failed write stops the batch; instances already
// written are kept.
func (s *transactionService) CreateTransaction(ctx context.Context, tmpl models.TransactionTemplate) ([]models.Transaction, error) {
	if err := s.templates.check(ctx, &tmpl); err != nil {
		return nil, err
	}

	var series []models.Transaction
	if tmpl.IsRepeating {
		series = recurrence.Expand(tmpl, tmpl.Rule, tmpl.DueDate)
		recurrence.Link(series, uuid.New())
		metrics.ObserveSeries(len(series))
	} else {
		single := models.NewInstance(tmpl, tmpl.DueDate)
		single.ID = uuid.New()
		series = []models.Transaction{single}
	}

	for i := range series {
		if _, err := s.transactions.Create(ctx, &series[i]); err != nil {
			s.log.Errorw("failed to persist transaction",
				"error", err,
				"recurring_id", series[i].RecurringID,
				"recurring_index", series[i].RecurringIndex,
				"written", i,
				"total", len(series),
			)
			return nil, writeError("create", err, apperrors.ErrTransactionNotFound)
		}
	}

	if tmpl.IsRepeating {
		s.log.Infow("created recurring series",
			"recurring_id", series[0].RecurringID,
			"frequency", tmpl.Rule.Frequency,
			"instances", len(series),
		)
	}
	return series, nil
}

// GetTransaction retrieves a transaction by ID.
func (s *transactionService) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	tx, err := s.transactions.Get(ctx, id)
	if err != nil {
		return nil, readError(err, apperrors.ErrTransactionNotFound)
	}
	return tx, nil
}

// ListTransactions retrieves a page of transactions, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	txs, total, err := s.transactions.List(ctx, page.ListOptions(newestFirst))
	if err != nil {
		return nil, readError(err, apperrors.ErrTransactionNotFound)
	}

	result := pagination.NewPageResponse(txs, page.Page, page.PageSize, total)
	return &result, nil
}

// ListSeries returns the series that id belongs to. An unlinked transaction is
// its own one-element series.
func (s *transactionService) ListSeries(ctx context.Context, id string) ([]models.Transaction, error) {
	tx, err := s.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.RecurringID == "" {
		return []models.Transaction{*tx}, nil
	}

	members, err := s.transactions.QueryByField(ctx, ColumnRecurringID, tx.RecurringID)
	if err != nil {
		return nil, readError(err, apperrors.ErrTransactionNotFound)
	}
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].RecurringIndex < members[j].RecurringIndex
	})
	return members, nil
}

// DeleteTransaction removes one transaction. Other members of its series are
// left untouched.
func (s *transactionService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.transactions.Delete(ctx, id); err != nil {
		return writeError("delete", err, apperrors.ErrTransactionNotFound)
	}
	return nil
}

// SubscribeTransactions streams the transactions collection, newest first.
func (s *transactionService) SubscribeTransactions(ctx context.Context) (*store.Subscription[models.Transaction], error) {
	sub, err := s.transactions.Subscribe(ctx, store.SubscribeOptions{OrderBy: newestFirst})
	if err != nil {
		return nil, readError(err, apperrors.ErrTransactionNotFound)
	}
	return sub, nil
}
