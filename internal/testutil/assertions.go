package testutil

import (
	"errors"
	"testing"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/models"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertSeries checks that series is one linked series in index order: the
// first element is the master, every element points at it and indexes count
// up from zero.
func AssertSeries(t *testing.T, series []models.Transaction) {
	t.Helper()

	if len(series) == 0 {
		t.Fatal("expected a non-empty series")
	}
	master := series[0]
	if !master.IsMaster || master.RecurringID != master.ID {
		t.Fatalf("first element is not a self-linked master: is_master=%v id=%q recurring_id=%q",
			master.IsMaster, master.ID, master.RecurringID)
	}
	for i, tx := range series {
		if tx.RecurringIndex != i {
			t.Errorf("element %d has recurring_index %d", i, tx.RecurringIndex)
		}
		if tx.RecurringID != master.ID {
			t.Errorf("element %d links to %q, want %q", i, tx.RecurringID, master.ID)
		}
		if i > 0 && tx.IsMaster {
			t.Errorf("element %d is marked as master", i)
		}
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
