package models

import (
	"errors"

	"github.com/cycle-ledger/backend/internal/apperror"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = apperror.ErrNotFound
)

// User errors
var (
	ErrEmailInUse            = errors.New("this email address is already registered")
	ErrEmailInvalid          = errors.New("the email address is not valid")
	ErrVerificationTokenUsed = errors.New("this verification token is already in use")
)

// Ledger errors
var (
	ErrLedgerNameLength        = errors.New("the ledger name must be between 1 and 100 characters long")
	ErrLedgerDescriptionLength = errors.New("the ledger description must be at most 500 characters long")
	ErrCurrencyInvalid         = errors.New("the currency must be a three letter ISO 4217 code")
)

// Category errors
var (
	ErrCategoryNameLength      = errors.New("the category name must be between 1 and 50 characters long")
	ErrCategoryHasTransactions = errors.New("the category still has transactions and cannot be deleted")
	ErrCategoryInactive        = errors.New("the category has been deleted")
	ErrCategoryTypeMismatch    = errors.New("the transaction type must match the type of its category")
	ErrCategoryOtherLedger     = errors.New("the category does not belong to the ledger of the transaction")
)

// Transaction errors
var (
	ErrAmountNotPositive            = errors.New("the amount must be greater than zero")
	ErrTransactionDateMissing       = errors.New("the transaction date must be set")
	ErrTransactionDescriptionLength = errors.New("the description must be at most 500 characters long")
	ErrTransactionTagsLength        = errors.New("the tags must be at most 500 characters long")
)
