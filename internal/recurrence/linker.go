package recurrence

import "cashflow/internal/models"

// Link stamps the linkage fields on a freshly expanded series in place.
//
// The element with RecurringIndex 0 becomes the master and receives masterID as
// its own identity; every element, master included, gets RecurringID = masterID.
// Because identities are client-generated, the master's identity is known before
// anything is written and no follow-up patch of the master is needed.
func Link(series []models.Transaction, masterID string) {
	for i := range series {
		series[i].IsMaster = series[i].RecurringIndex == 0
		series[i].RecurringID = masterID
		if series[i].IsMaster {
			series[i].ID = masterID
		}
	}
}

// Master returns the master of a linked series, or false if there is none.
func Master(series []models.Transaction) (models.Transaction, bool) {
	for _, tx := range series {
		if tx.IsMaster {
			return tx, true
		}
	}
	return models.Transaction{}, false
}
