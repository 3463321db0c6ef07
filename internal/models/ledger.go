package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cycle-ledger/backend/internal/apperror"
	"github.com/cycle-ledger/backend/internal/cycle"
	"github.com/cycle-ledger/backend/internal/report"
	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger is a collection of categories and transactions with its own
// currency and billing cycle.
type Ledger struct {
	DefaultModel
	UserID        uuid.UUID `json:"userId" gorm:"index;not null"`
	User          User      `json:"-"`
	Name          string    `json:"name" example:"Household"`
	Description   string    `json:"description" example:"Shared expenses"`
	Currency      string    `json:"currency" gorm:"size:3" example:"EUR"`
	CycleStartDay int       `json:"cycleStartDay" example:"25"` // Day of month on which a billing cycle starts
	Active        bool      `json:"active" gorm:"default:true"`
}

// BeforeSave
//   - trims whitespace from string fields
//   - validates name and description lengths
//   - validates and upper-cases the currency code
//   - validates the cycle start day
func (l *Ledger) BeforeSave(_ *gorm.DB) error {
	l.Name = strings.TrimSpace(l.Name)
	l.Description = strings.TrimSpace(l.Description)
	l.Currency = strings.ToUpper(strings.TrimSpace(l.Currency))

	if n := utf8.RuneCountInString(l.Name); n < 1 || n > 100 {
		return ErrLedgerNameLength
	}

	if utf8.RuneCountInString(l.Description) > 500 {
		return ErrLedgerDescriptionLength
	}

	if err := ValidateCurrency(l.Currency); err != nil {
		return err
	}

	return cycle.ValidateStartDay(l.CycleStartDay)
}

// ValidateCurrency checks that code is a known ISO 4217 currency code.
func ValidateCurrency(code string) error {
	if len(code) != 3 {
		return ErrCurrencyInvalid
	}

	if _, err := currency.ParseISO(code); err != nil {
		return ErrCurrencyInvalid
	}

	return nil
}

// CurrencySymbol returns the symbol for the currency of the ledger, falling
// back to the ISO code.
func (l Ledger) CurrencySymbol() string {
	unit, err := currency.ParseISO(l.Currency)
	if err != nil {
		return l.Currency
	}

	return fmt.Sprint(currency.Symbol(unit))
}

// LedgerOf returns the active ledger with id if it belongs to the user.
//
// Ledgers of other users are reported as not found.
func LedgerOf(userID, id uuid.UUID) (Ledger, error) {
	var ledger Ledger
	err := DB.Where("id = ? AND user_id = ? AND active = ?", id, userID, true).First(&ledger).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return Ledger{}, apperror.Missing("ledger", id.String())
		}
		return Ledger{}, err
	}

	return ledger, nil
}

// LedgersOf returns all active ledgers of the user, oldest first.
func LedgersOf(userID uuid.UUID) ([]Ledger, error) {
	ledgers := make([]Ledger, 0)
	err := DB.Where("user_id = ? AND active = ?", userID, true).Order("created_at ASC").Find(&ledgers).Error
	return ledgers, err
}

// CreateLedger stores a new active ledger.
func CreateLedger(l *Ledger) error {
	l.Active = true
	return DB.Omit(clause.Associations).Create(l).Error
}

// Update saves all fields of the ledger.
func (l *Ledger) Update() error {
	return DB.Omit(clause.Associations).Save(l).Error
}

// Deactivate soft deletes the ledger.
func (l *Ledger) Deactivate() error {
	l.Active = false
	return DB.Model(l).Update("active", false).Error
}

// CurrentCycle returns the cycle containing today.
func (l Ledger) CurrentCycle() (cycle.Range, error) {
	return cycle.Current(l.CycleStartDay)
}

// ReportRows returns all transactions of the ledger in rng, both ends
// included, with the name and color of their category.
func (l Ledger) ReportRows(rng cycle.Range) ([]report.Row, error) {
	rows := make([]report.Row, 0)

	err := DB.Table("transactions").
		Select("transactions.date, transactions.type, transactions.amount, transactions.category_id, COALESCE(categories.name, '') AS category_name, COALESCE(categories.color, '') AS color").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.ledger_id = ?", l.ID).
		Where("transactions.date >= ? AND transactions.date < ?", rng.Start.String(), rng.End.AddDays(1).String()).
		Order("transactions.date ASC, transactions.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// Report builds the report for rng.
func (l Ledger) Report(rng cycle.Range) (report.Report, error) {
	rng, err := cycle.NewRange(rng.Start, rng.End)
	if err != nil {
		return report.Report{}, err
	}

	rows, err := l.ReportRows(rng)
	if err != nil {
		return report.Report{}, err
	}

	return report.Build(rows, rng, l.CycleStartDay)
}
