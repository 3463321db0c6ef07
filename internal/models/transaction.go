package models

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/cycle-ledger/backend/internal/apperror"
	"github.com/cycle-ledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionPageSize is the number of transactions on one page of the list.
const TransactionPageSize = 20

// maxTransactionPage keeps the offset of a page from overflowing.
const maxTransactionPage = math.MaxInt / TransactionPageSize

// Transaction is an income or expense in a ledger.
//
// The amount is always positive, the direction is given by the type.
type Transaction struct {
	DefaultModel
	LedgerID    uuid.UUID             `json:"ledgerId" gorm:"index;not null"`
	Ledger      Ledger                `json:"-"`
	CategoryID  uuid.UUID             `json:"categoryId" gorm:"index;not null"`
	Category    Category              `json:"category"`
	Amount      decimal.Decimal       `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.03"`
	Type        types.TransactionType `json:"type" gorm:"size:10;not null" example:"expense"`
	Date        types.Date            `json:"date" gorm:"index" example:"2024-03-14"`
	Description string                `json:"description" example:"Weekly shopping"`
	Tags        string                `json:"tags" example:"food,family"`
}

// BeforeSave
//   - trims whitespace from string fields
//   - validates amount, type, date and field lengths
//   - verifies that the category is an active category of the same ledger
//     with the same type as the transaction
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)
	t.Tags = normalizeTags(t.Tags)

	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if err := t.Type.Validate(); err != nil {
		return err
	}

	if t.Date.IsZero() {
		return ErrTransactionDateMissing
	}

	if utf8.RuneCountInString(t.Description) > 500 {
		return ErrTransactionDescriptionLength
	}

	if utf8.RuneCountInString(t.Tags) > 500 {
		return ErrTransactionTagsLength
	}

	var category Category
	err := tx.Session(&gorm.Session{NewDB: true}).Where("id = ?", t.CategoryID).First(&category).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return apperror.Missing("category", t.CategoryID.String())
		}
		return err
	}

	switch {
	case category.LedgerID != t.LedgerID:
		return ErrCategoryOtherLedger
	case !category.Active:
		return ErrCategoryInactive
	case category.Type != t.Type:
		return ErrCategoryTypeMismatch
	}

	return nil
}

// normalizeTags trims every tag and drops empty ones.
func normalizeTags(tags string) string {
	parts := strings.Split(tags, ",")
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, ",")
}

// TagList returns the tags of the transaction.
func (t Transaction) TagList() []string {
	if t.Tags == "" {
		return []string{}
	}
	return strings.Split(t.Tags, ",")
}

// MatchesTag reports whether any tag matches the glob pattern.
//
// An empty pattern matches every transaction.
func (t Transaction) MatchesTag(pattern string) bool {
	if pattern == "" {
		return true
	}

	for _, tag := range t.TagList() {
		if glob.Glob(pattern, tag) {
			return true
		}
	}

	return false
}

// CreateTransaction stores a new transaction. The preloaded category is
// never written.
func CreateTransaction(t *Transaction) error {
	return DB.Omit(clause.Associations).Create(t).Error
}

// Update saves all fields of the transaction.
func (t *Transaction) Update() error {
	return DB.Omit(clause.Associations).Save(t).Error
}

// Delete removes the transaction.
func (t *Transaction) Delete() error {
	return DB.Delete(t).Error
}

// TransactionOf returns the transaction with id in the ledger.
func TransactionOf(ledgerID, id uuid.UUID) (Transaction, error) {
	var transaction Transaction
	err := DB.Preload("Category").Where("id = ? AND ledger_id = ?", id, ledgerID).First(&transaction).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return Transaction{}, apperror.Missing("transaction", id.String())
		}
		return Transaction{}, err
	}

	return transaction, nil
}

// TransactionFilter restricts the transactions returned by TransactionsOf.
type TransactionFilter struct {
	Type       types.TransactionType
	CategoryID uuid.UUID
	Tag        string // glob pattern matched against every tag
	Page       int    // 1-based
}

// TransactionPage is one page of transactions.
type TransactionPage struct {
	Transactions []Transaction
	Page         int
	HasNext      bool
}

// TransactionsOf returns a page of the transactions of a ledger, newest first.
func TransactionsOf(ledgerID uuid.UUID, filter TransactionFilter) (TransactionPage, error) {
	page := min(max(1, filter.Page), maxTransactionPage)

	query := DB.Preload("Category").Where("ledger_id = ?", ledgerID)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	if filter.CategoryID != uuid.Nil {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	query = query.Order("date DESC, created_at DESC")

	transactions := make([]Transaction, 0)

	// Tag patterns are evaluated in Go, so the whole result is loaded
	if filter.Tag != "" {
		var all []Transaction
		if err := query.Find(&all).Error; err != nil {
			return TransactionPage{}, err
		}

		for _, t := range all {
			if t.MatchesTag(filter.Tag) {
				transactions = append(transactions, t)
			}
		}

		start := min(len(transactions), (page-1)*TransactionPageSize)
		end := min(len(transactions), start+TransactionPageSize)

		return TransactionPage{
			Transactions: transactions[start:end],
			Page:         page,
			HasNext:      end < len(transactions),
		}, nil
	}

	// Load one more than needed to know if there is a next page
	err := query.Offset((page - 1) * TransactionPageSize).Limit(TransactionPageSize + 1).Find(&transactions).Error
	if err != nil {
		return TransactionPage{}, err
	}

	hasNext := len(transactions) > TransactionPageSize
	if hasNext {
		transactions = transactions[:TransactionPageSize]
	}

	return TransactionPage{
		Transactions: transactions,
		Page:         page,
		HasNext:      hasNext,
	}, nil
}
