package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"cashflow/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Day is a shorthand for models.NewDate in table tests.
func Day(year, month, day int) models.Date {
	return models.NewDate(year, time.Month(month), day)
}

// CreateTestTransactionType creates a transaction type of the given category.
func CreateTestTransactionType(t *testing.T, db *gorm.DB, category models.Direction) *models.TransactionType {
	t.Helper()

	tt := &models.TransactionType{
		Name:     fmt.Sprintf("Test Type %d", nextID()),
		Category: category,
	}
	if err := db.Create(tt).Error; err != nil {
		t.Fatalf("failed to create test transaction type: %v", err)
	}
	return tt
}

// NewTemplate returns a valid non-repeating template for the given direction.
func NewTemplate(direction models.Direction, amount string, due models.Date) models.TransactionTemplate {
	return models.TransactionTemplate{
		Amount:      decimal.RequireFromString(amount),
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Direction:   direction,
		DueDate:     due,
	}
}

// NewMonthlyTemplate returns a template repeating monthly for n occurrences.
func NewMonthlyTemplate(direction models.Direction, amount string, due models.Date, n int) models.TransactionTemplate {
	tmpl := NewTemplate(direction, amount, due)
	tmpl.IsRepeating = true
	tmpl.Rule = models.RecurrenceRule{
		Frequency:    models.FrequencyMonthly,
		EndCondition: models.EndAfterOccurrences,
		Occurrences:  n,
	}
	return tmpl
}

// CreateTestTransaction writes a single unlinked transaction built from tmpl.
func CreateTestTransaction(t *testing.T, db *gorm.DB, tmpl models.TransactionTemplate) *models.Transaction {
	t.Helper()

	tx := models.NewInstance(tmpl, tmpl.DueDate)
	if err := db.Create(&tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return &tx
}

// CountTransactions returns the number of stored transactions matching query.
func CountTransactions(t *testing.T, db *gorm.DB, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	q := db.Model(&models.Transaction{})
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&count).Error; err != nil {
		t.Fatalf("failed to count transactions: %v", err)
	}
	return count
}
