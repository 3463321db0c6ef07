package types

import "errors"

var ErrTransactionTypeInvalid = errors.New("the transaction type must be either income or expense")

// TransactionType is the direction of money for a category or transaction.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Valid reports whether t is one of the known types.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Validate returns ErrTransactionTypeInvalid when t is not a known type.
func (t TransactionType) Validate() error {
	if !t.Valid() {
		return ErrTransactionTypeInvalid
	}
	return nil
}

func (t TransactionType) String() string {
	return string(t)
}
