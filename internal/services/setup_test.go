package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cashflow/internal/events"
	"cashflow/internal/models"
	"cashflow/internal/store"
	"cashflow/internal/store/gormstore"
	"cashflow/internal/testutil"
)

type testStores struct {
	db           *gorm.DB
	transactions *gormstore.Store[models.Transaction]
	types        *gormstore.Store[models.TransactionType]
}

func setupStores(t *testing.T) testStores {
	t.Helper()
	db := testutil.SetupTestDB(t)
	b := events.NewBroadcaster()
	return testStores{
		db:           db,
		transactions: gormstore.New[models.Transaction](db, models.CollectionTransactions, b, b),
		types:        gormstore.New[models.TransactionType](db, models.CollectionTransactionTypes, b, b),
	}
}

var errInjected = errors.New("injected failure")

// failingStore wraps a store and fails chosen writes.
type failingStore struct {
	store.Store[models.Transaction]
	// failCreateAfter fails every Create once this many have succeeded; -1 disables.
	failCreateAfter int
	failDelete      bool
	creates         int
}

func (f *failingStore) Create(ctx context.Context, rec *models.Transaction) (string, error) {
	if f.failCreateAfter >= 0 && f.creates >= f.failCreateAfter {
		return "", errInjected
	}
	f.creates++
	return f.Store.Create(ctx, rec)
}

func (f *failingStore) Delete(ctx context.Context, id string) error {
	if f.failDelete {
		return errInjected
	}
	return f.Store.Delete(ctx, id)
}

func ptr[T any](v T) *T {
	return &v
}

func testDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
