// Package aggregation derives period summaries from a set of transactions.
package aggregation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"cashflow/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Filter selects the transactions that belong to a period.
type Filter struct {
	kind  filterKind
	month time.Month
	year  int
	start models.Date
	end   models.Date
	clock func() time.Time
}

type filterKind int

const (
	filterAll filterKind = iota
	filterMonth
	filterRange
	filterRollingMonth
)

// All matches every transaction.
func All() Filter {
	return Filter{kind: filterAll}
}

// CurrentMonth matches transactions whose Month and Year equal those of now.
func CurrentMonth(now time.Time) Filter {
	return Filter{kind: filterMonth, month: now.Month(), year: now.Year()}
}

// RollingMonth matches the calendar month clock reports at the time of use,
// so a long-lived Watch moves on to the next month when the month turns.
func RollingMonth(clock func() time.Time) Filter {
	return Filter{kind: filterRollingMonth, clock: clock}
}

// resolve pins a rolling filter to the current month.
func (f Filter) resolve() Filter {
	if f.kind == filterRollingMonth {
		return CurrentMonth(f.clock())
	}
	return f
}

// Range matches transactions whose effective date lies in [start, end].
// Transactions without any date never match.
func Range(start, end models.Date) Filter {
	return Filter{kind: filterRange, start: start, end: end}
}

// Match reports whether tx falls inside the filter's period.
func (f Filter) Match(tx models.Transaction) bool {
	f = f.resolve()
	switch f.kind {
	case filterMonth:
		return tx.Month == int(f.month) && tx.Year == f.year
	case filterRange:
		d, ok := tx.EffectiveDate()
		return ok && !d.Before(f.start) && !d.After(f.end)
	default:
		return true
	}
}

// TypeTotal is the per-type breakdown line of a Summary.
type TypeTotal struct {
	TypeID    string           `json:"type_id"`
	TypeName  string           `json:"type_name"`
	Direction models.Direction `json:"direction"`
	Total     decimal.Decimal  `json:"total"`
	Count     int              `json:"count"`
}

// Summary is the income/expense picture of one period.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	// SavingsRate is balance as a percentage of income, or zero without income.
	SavingsRate decimal.Decimal `json:"savings_rate"`
	ByType      []TypeTotal     `json:"by_type"`
	Count       int             `json:"count"`
}

// Summarize totals the transactions matched by filter. Untyped transactions
// are grouped under an empty TypeID. ByType keeps first-seen order.
func Summarize(instances []models.Transaction, filter Filter) Summary {
	filter = filter.resolve()
	s := Summary{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		ByType:       []TypeTotal{},
	}
	index := make(map[typeKey]int)

	for _, tx := range instances {
		if !filter.Match(tx) {
			continue
		}
		switch tx.Direction {
		case models.DirectionIncome:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
		case models.DirectionExpense:
			s.TotalExpense = s.TotalExpense.Add(tx.Amount)
		default:
			continue
		}
		s.Count++

		key := typeKey{direction: tx.Direction}
		if tx.TypeID != nil {
			key.id = *tx.TypeID
		}
		i, ok := index[key]
		if !ok {
			i = len(s.ByType)
			index[key] = i
			s.ByType = append(s.ByType, TypeTotal{
				TypeID:    key.id,
				TypeName:  tx.TypeName,
				Direction: tx.Direction,
				Total:     decimal.Zero,
			})
		}
		s.ByType[i].Total = s.ByType[i].Total.Add(tx.Amount)
		s.ByType[i].Count++
	}

	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	s.SavingsRate = decimal.Zero
	if s.TotalIncome.IsPositive() {
		s.SavingsRate = s.Balance.Div(s.TotalIncome).Mul(hundred).Round(2)
	}
	return s
}

type typeKey struct {
	id        string
	direction models.Direction
}

// Watch re-derives a Summary from every snapshot received. The returned
// channel is closed when snapshots is closed or ctx is done.
func Watch(ctx context.Context, snapshots <-chan []models.Transaction, filter Filter) <-chan Summary {
	out := make(chan Summary)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case snapshot, ok := <-snapshots:
				if !ok {
					return
				}
				select {
				case out <- Summarize(snapshot, filter):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
