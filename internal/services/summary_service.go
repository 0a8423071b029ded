package services

import (
	"context"

	"cashflow/internal/aggregation"
	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
	"cashflow/internal/store"
)

// summaryService handles summary read models.
type summaryService struct {
	transactions store.Store[models.Transaction]
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(transactions store.Store[models.Transaction]) SummaryServicer {
	return &summaryService{transactions: transactions}
}

// GetSummary summarizes the stored transactions matched by filter.
func (s *summaryService) GetSummary(ctx context.Context, filter aggregation.Filter) (*aggregation.Summary, error) {
	txs, _, err := s.transactions.List(ctx, store.ListOptions{OrderBy: newestFirst})
	if err != nil {
		return nil, readError(err, apperrors.ErrTransactionNotFound)
	}
	summary := aggregation.Summarize(txs, filter)
	return &summary, nil
}

// WatchSummary subscribes to the transactions and re-summarizes every snapshot.
func (s *summaryService) WatchSummary(ctx context.Context, filter aggregation.Filter) (<-chan aggregation.Summary, func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	sub, err := s.transactions.Subscribe(ctx, store.SubscribeOptions{OrderBy: newestFirst})
	if err != nil {
		cancel()
		return nil, nil, readError(err, apperrors.ErrTransactionNotFound)
	}
	stop := func() {
		cancel()
		sub.Unsubscribe()
	}
	return aggregation.Watch(ctx, sub.Snapshots(), filter), stop, nil
}
