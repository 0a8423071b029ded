package aggregation

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashflow/internal/models"
)

func day(y, m, d int) models.Date {
	return models.NewDate(y, time.Month(m), d)
}

func tx(dir models.Direction, amount string, date models.Date) models.Transaction {
	return models.Transaction{
		Amount:    decimal.RequireFromString(amount),
		Direction: dir,
		Date:      date,
		DueDate:   date,
		Month:     int(date.Month()),
		Year:      date.Year(),
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestSummarize(t *testing.T) {
	t.Run("income and expenses", func(t *testing.T) {
		s := Summarize([]models.Transaction{
			tx(models.DirectionIncome, "100", day(2024, 5, 1)),
			tx(models.DirectionExpense, "30", day(2024, 5, 2)),
			tx(models.DirectionExpense, "20", day(2024, 5, 3)),
		}, All())

		assertDecimal(t, "100", s.TotalIncome)
		assertDecimal(t, "50", s.TotalExpense)
		assertDecimal(t, "50", s.Balance)
		assertDecimal(t, "50", s.SavingsRate)
		assert.Equal(t, 3, s.Count)
	})

	t.Run("no income has zero savings rate", func(t *testing.T) {
		s := Summarize([]models.Transaction{
			tx(models.DirectionExpense, "40", day(2024, 5, 2)),
		}, All())

		assertDecimal(t, "-40", s.Balance)
		assert.True(t, s.SavingsRate.IsZero())
	})

	t.Run("empty set", func(t *testing.T) {
		s := Summarize(nil, All())
		assert.True(t, s.TotalIncome.IsZero())
		assert.True(t, s.SavingsRate.IsZero())
		assert.Empty(t, s.ByType)
	})

	t.Run("decimal accumulation", func(t *testing.T) {
		var txs []models.Transaction
		for i := 0; i < 10; i++ {
			txs = append(txs, tx(models.DirectionExpense, "0.10", day(2024, 5, 1)))
		}
		txs = append(txs, tx(models.DirectionIncome, "3", day(2024, 5, 1)))

		s := Summarize(txs, All())
		assertDecimal(t, "1.00", s.TotalExpense)
		assertDecimal(t, "66.67", s.SavingsRate)
	})
}

func TestSummarize_ByType(t *testing.T) {
	rent := "type-rent"
	a := tx(models.DirectionExpense, "800", day(2024, 5, 1))
	a.TypeID, a.TypeName = &rent, "Rent"
	b := tx(models.DirectionExpense, "800", day(2024, 6, 1))
	b.TypeID, b.TypeName = &rent, "Rent"
	c := tx(models.DirectionExpense, "15", day(2024, 6, 2))

	s := Summarize([]models.Transaction{a, b, c}, All())
	require.Len(t, s.ByType, 2)
	assert.Equal(t, "Rent", s.ByType[0].TypeName)
	assertDecimal(t, "1600", s.ByType[0].Total)
	assert.Equal(t, 2, s.ByType[0].Count)
	assert.Equal(t, "", s.ByType[1].TypeID)
	assertDecimal(t, "15", s.ByType[1].Total)
}

func TestFilters(t *testing.T) {
	now := time.Date(2024, time.May, 20, 15, 0, 0, 0, time.UTC)
	may := tx(models.DirectionIncome, "1", day(2024, 5, 31))
	april := tx(models.DirectionIncome, "1", day(2024, 4, 30))
	lastYear := tx(models.DirectionIncome, "1", day(2023, 5, 15))

	paid := day(2024, 5, 10)
	paymentOnly := models.Transaction{Direction: models.DirectionIncome, Amount: decimal.NewFromInt(1), PaymentDate: &paid}
	undated := models.Transaction{Direction: models.DirectionIncome, Amount: decimal.NewFromInt(1)}

	tests := []struct {
		name   string
		filter Filter
		tx     models.Transaction
		want   bool
	}{
		{"current month match", CurrentMonth(now), may, true},
		{"current month other month", CurrentMonth(now), april, false},
		{"current month other year", CurrentMonth(now), lastYear, false},
		{"rolling month match", RollingMonth(func() time.Time { return now }), may, true},
		{"rolling month other month", RollingMonth(func() time.Time { return now }), april, false},
		{"range inclusive start", Range(day(2024, 4, 30), day(2024, 5, 1)), april, true},
		{"range inclusive end", Range(day(2024, 5, 1), day(2024, 5, 31)), may, true},
		{"range excludes outside", Range(day(2024, 5, 1), day(2024, 5, 30)), may, false},
		{"range falls back to payment date", Range(day(2024, 5, 1), day(2024, 5, 31)), paymentOnly, true},
		{"range skips undated", Range(day(2000, 1, 1), day(2100, 1, 1)), undated, false},
		{"all", All(), undated, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.tx))
		})
	}
}

func TestWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots := make(chan []models.Transaction)
	out := Watch(ctx, snapshots, All())

	snapshots <- []models.Transaction{tx(models.DirectionIncome, "10", day(2024, 1, 1))}
	s := <-out
	assertDecimal(t, "10", s.TotalIncome)

	snapshots <- []models.Transaction{
		tx(models.DirectionIncome, "10", day(2024, 1, 1)),
		tx(models.DirectionExpense, "4", day(2024, 1, 2)),
	}
	s = <-out
	assertDecimal(t, "6", s.Balance)

	close(snapshots)
	_, ok := <-out
	assert.False(t, ok)
}

func TestWatch_RollingMonthFollowsClock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Date(2024, time.January, 31, 23, 59, 0, 0, time.UTC)
	snapshots := make(chan []models.Transaction)
	out := Watch(ctx, snapshots, RollingMonth(func() time.Time { return now }))

	snapshot := []models.Transaction{
		tx(models.DirectionIncome, "100", day(2024, 1, 15)),
		tx(models.DirectionIncome, "7", day(2024, 2, 1)),
	}

	snapshots <- snapshot
	s := <-out
	assertDecimal(t, "100", s.TotalIncome)

	// The clock is read after the next snapshot is received.
	now = time.Date(2024, time.February, 1, 0, 1, 0, 0, time.UTC)
	snapshots <- snapshot
	s = <-out
	assertDecimal(t, "7", s.TotalIncome)
	require.Equal(t, 1, s.Count)
}
