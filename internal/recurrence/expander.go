// Package recurrence expands a transaction template into a bounded, dated
// series of instances and links the series to its master.
package recurrence

import (
	"cashflow/internal/models"
)

const (
	// HardCap bounds every generated series, whatever its end condition.
	HardCap = 60
	// NeverCap is the series length used when a rule never ends.
	NeverCap = 12
)

// Expand materializes the instances produced by rule starting at anchor.
//
// The result is ordered by RecurringIndex (0..n-1) and therefore by due date.
// Instances are not linked; see Link. Expand is pure: the same arguments always
// yield the same sequence and tmpl is not modified.
func Expand(tmpl models.TransactionTemplate, rule models.RecurrenceRule, anchor models.Date) []models.Transaction {
	limit := effectiveMax(rule)
	if limit <= 0 {
		return []models.Transaction{}
	}

	instances := make([]models.Transaction, 0, limit)
	current := anchor
	for count := 0; count < limit; {
		if pastEnd(rule, current) {
			break
		}

		tx := models.NewInstance(tmpl, current)
		tx.RecurringIndex = count
		if count > 0 {
			// Later occurrences have not been paid yet.
			tx.PaymentDate = nil
		}
		instances = append(instances, tx)

		count++
		current = Advance(anchor, rule.Frequency, count)

		if rule.EndCondition == models.EndNever && count >= NeverCap {
			break
		}
		if pastEnd(rule, current) {
			break
		}
	}
	return instances
}

// Advance returns the due date of occurrence n of a series anchored at anchor.
//
// Month and year steps are counted from the anchor, not from the previous
// occurrence, and clamp to the last day of shorter months: a monthly series
// anchored on Jan 31 falls on Feb 28 (29 in leap years), Mar 31, Apr 30.
// A yearly series anchored on Feb 29 falls on Feb 28 in common years.
func Advance(anchor models.Date, freq models.Frequency, n int) models.Date {
	switch freq {
	case models.FrequencyDaily:
		return anchor.AddDays(n)
	case models.FrequencyWeekly:
		return anchor.AddDays(7 * n)
	case models.FrequencyMonthly:
		return anchor.AddMonthsClamped(n)
	case models.FrequencyYearly:
		return anchor.AddMonthsClamped(12 * n)
	default:
		// Unknown frequencies never advance; the caps still terminate the loop.
		return anchor
	}
}

func effectiveMax(rule models.RecurrenceRule) int {
	if rule.EndCondition == models.EndAfterOccurrences {
		return min(HardCap, rule.Occurrences)
	}
	return HardCap
}

func pastEnd(rule models.RecurrenceRule, current models.Date) bool {
	return rule.EndCondition == models.EndOnDate && rule.EndDate != nil && current.After(*rule.EndDate)
}
