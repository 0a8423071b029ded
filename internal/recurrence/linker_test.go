package recurrence

import (
	"testing"
	"time"

	"cashflow/internal/models"
)

func TestLink(t *testing.T) {
	t.Run("exactly one master and shared linkage", func(t *testing.T) {
		rule := models.RecurrenceRule{Frequency: models.FrequencyWeekly, EndCondition: models.EndNever}
		series := Expand(testTemplate(), rule, models.NewDate(2025, time.January, 1))
		masterID := "0190a6d2-3c1b-7c6e-8f00-0000000000aa"

		Link(series, masterID)

		masters := 0
		for _, tx := range series {
			if tx.IsMaster {
				masters++
				if tx.ID != masterID {
					t.Errorf("expected master identity %s, got %s", masterID, tx.ID)
				}
				if tx.RecurringIndex != 0 {
					t.Errorf("expected master at index 0, got %d", tx.RecurringIndex)
				}
			} else if tx.ID != "" {
				t.Errorf("expected non-master %d to have no identity yet, got %s", tx.RecurringIndex, tx.ID)
			}
			if tx.RecurringID != masterID {
				t.Errorf("instance %d: expected recurring id %s, got %s", tx.RecurringIndex, masterID, tx.RecurringID)
			}
		}
		if masters != 1 {
			t.Fatalf("expected exactly 1 master, got %d", masters)
		}

		master, ok := Master(series)
		if !ok || master.ID != masterID {
			t.Errorf("Master returned %+v, %v", master, ok)
		}
	})

	t.Run("empty series", func(t *testing.T) {
		var series []models.Transaction
		Link(series, "id")
		if _, ok := Master(series); ok {
			t.Error("expected no master in an empty series")
		}
	})
}
