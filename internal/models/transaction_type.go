package models

// Direction is the money flow of a transaction.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// Valid reports whether d is a known direction.
func (d Direction) Valid() bool {
	return d == DirectionIncome || d == DirectionExpense
}

// CollectionTransactionTypes is the store collection holding TransactionType records.
const CollectionTransactionTypes = "transaction_types"

// TransactionType is a user-defined label for transactions of one direction.
type TransactionType struct {
	Base
	Name     string    `gorm:"not null" json:"name"`
	Category Direction `gorm:"not null;index" json:"category"`
}

// TableName maps the model onto its collection.
func (TransactionType) TableName() string { return CollectionTransactionTypes }
