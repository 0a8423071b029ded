package models

import "github.com/shopspring/decimal"

// CollectionTransactions is the store collection holding Transaction records.
const CollectionTransactions = "transactions"

// TransactionTemplate is the user-entered intent behind one or more transactions.
type TransactionTemplate struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"notblank,max=500"`
	Direction   Direction       `json:"direction" validate:"required,direction"`
	TypeID      *string         `json:"type_id,omitempty"`
	TypeName    string          `json:"type_name,omitempty"`
	DueDate     Date            `json:"due_date"`
	PaymentDate *Date           `json:"payment_date,omitempty"`
	IsRepeating bool            `json:"is_repeating"`
	// Rule is validated only for repeating templates.
	Rule        RecurrenceRule  `json:"rule" validate:"-"`
}

// Transaction is one persisted, dated occurrence. A non-repeating transaction is
// its own template; a repeating one belongs to the series identified by RecurringID.
type Transaction struct {
	Base
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Description string          `gorm:"not null" json:"description"`
	Direction   Direction       `gorm:"not null;index" json:"direction"`
	TypeID      *string         `gorm:"type:varchar(36)" json:"type_id,omitempty"`
	TypeName    string          `json:"type_name,omitempty"`
	DueDate     Date            `gorm:"not null" json:"due_date"`
	PaymentDate *Date           `json:"payment_date,omitempty"`
	IsRepeating bool            `gorm:"not null;default:false" json:"is_repeating"`
	RecurrenceRule `gorm:"embedded"`

	Date           Date   `gorm:"not null;index" json:"date"`
	Month          int    `gorm:"not null;index:idx_transactions_period" json:"month"`
	Year           int    `gorm:"not null;index:idx_transactions_period" json:"year"`
	RecurringIndex int    `gorm:"not null;default:0" json:"recurring_index"`
	IsMaster       bool   `gorm:"not null;default:false" json:"is_master"`
	RecurringID    string `gorm:"type:varchar(36);not null;default:'';index" json:"recurring_id,omitempty"`
	Version        int64  `gorm:"not null;default:1" json:"version"`
}

// TableName maps the model onto its collection.
func (Transaction) TableName() string { return CollectionTransactions }

// GetVersion returns the optimistic concurrency version.
func (t *Transaction) GetVersion() int64 { return t.Version }

// Template returns the template fields carried by t.
func (t Transaction) Template() TransactionTemplate {
	return TransactionTemplate{
		Amount:      t.Amount,
		Description: t.Description,
		Direction:   t.Direction,
		TypeID:      t.TypeID,
		TypeName:    t.TypeName,
		DueDate:     t.DueDate,
		PaymentDate: t.PaymentDate,
		IsRepeating: t.IsRepeating,
		Rule:        t.RecurrenceRule,
	}
}

// SeriesKey returns the linkage value shared by t's series, or t's own identity
// when t has not been linked.
func (t Transaction) SeriesKey() string {
	if t.RecurringID != "" {
		return t.RecurringID
	}
	return t.ID
}

// EffectiveDate returns the best available date for period filtering: Date,
// falling back to PaymentDate. ok is false when neither is set.
func (t Transaction) EffectiveDate() (d Date, ok bool) {
	if !t.Date.IsZero() {
		return t.Date, true
	}
	if t.PaymentDate != nil && !t.PaymentDate.IsZero() {
		return *t.PaymentDate, true
	}
	return Date{}, false
}

// NewInstance builds an unlinked transaction from tmpl dated on due.
// Date, Month and Year are derived from due.
func NewInstance(tmpl TransactionTemplate, due Date) Transaction {
	tx := Transaction{
		Amount:      tmpl.Amount,
		Description: tmpl.Description,
		Direction:   tmpl.Direction,
		TypeName:    tmpl.TypeName,
		DueDate:     due,
		IsRepeating: tmpl.IsRepeating,
		Date:        due,
		Month:       int(due.Month()),
		Year:        due.Year(),
		Version:     1,
	}
	if tmpl.TypeID != nil {
		id := *tmpl.TypeID
		tx.TypeID = &id
	}
	if tmpl.PaymentDate != nil {
		pd := *tmpl.PaymentDate
		tx.PaymentDate = &pd
	}
	if tmpl.IsRepeating {
		tx.RecurrenceRule = tmpl.Rule
		if tmpl.Rule.EndDate != nil {
			ed := *tmpl.Rule.EndDate
			tx.RecurrenceRule.EndDate = &ed
		}
	}
	return tx
}
