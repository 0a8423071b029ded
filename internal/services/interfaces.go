package services

import (
	"context"

	"cashflow/internal/aggregation"
	"cashflow/internal/models"
	"cashflow/internal/pagination"
	"cashflow/internal/store"
)

// TransactionServicer defines the contract for creating, reading and deleting
// transactions and recurring series.
type TransactionServicer interface {
	// CreateTransaction persists one transaction, or a whole linked series when
	// tmpl repeats. The master is written first.
	CreateTransaction(ctx context.Context, tmpl models.TransactionTemplate) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	// ListSeries returns every member of the series id belongs to, by index.
	ListSeries(ctx context.Context, id string) ([]models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	// SubscribeTransactions streams the collection ordered by date, newest first.
	SubscribeTransactions(ctx context.Context) (*store.Subscription[models.Transaction], error)
}

// TransactionTypeServicer defines the contract for transaction type management.
type TransactionTypeServicer interface {
	CreateTransactionType(ctx context.Context, name string, category models.Direction) (*models.TransactionType, error)
	GetTransactionType(ctx context.Context, id string) (*models.TransactionType, error)
	// ListTransactionTypes returns all types, or only those of category when set.
	ListTransactionTypes(ctx context.Context, category *models.Direction) ([]models.TransactionType, error)
	UpdateTransactionType(ctx context.Context, id string, name *string, category *models.Direction) (*models.TransactionType, error)
	DeleteTransactionType(ctx context.Context, id string) error
}

// ReconciliationServicer applies edits to stored transactions, regenerating
// recurring series when the edit changes how they repeat.
type ReconciliationServicer interface {
	Reconcile(ctx context.Context, req ReconciliationRequest) (*ReconciliationResult, error)
}

// SummaryServicer derives income and expense summaries.
type SummaryServicer interface {
	GetSummary(ctx context.Context, filter aggregation.Filter) (*aggregation.Summary, error)
	// WatchSummary emits a fresh summary after every change to the
	// transactions. Call stop to release the underlying subscription.
	WatchSummary(ctx context.Context, filter aggregation.Filter) (summaries <-chan aggregation.Summary, stop func(), err error)
}
