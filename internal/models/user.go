package models

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var validate = validator.New()

// User is a person using Cycle Ledger.
type User struct {
	DefaultModel
	Email                string     `json:"email" gorm:"uniqueIndex;not null" example:"jane@example.com"`
	Username             string     `json:"username" example:"Jane"`
	PasswordHash         string     `json:"-"`
	Verified             bool       `json:"verified"`
	VerificationToken    *string    `json:"-" gorm:"uniqueIndex"`
	LastSelectedLedgerID *uuid.UUID `json:"lastSelectedLedgerId"` // The ledger shown on the dashboard
}

// NormalizeEmail returns the canonical form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BeforeSave normalizes the email address and trims the username.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	u.Username = strings.TrimSpace(u.Username)

	if err := validate.Var(u.Email, "required,email"); err != nil {
		return ErrEmailInvalid
	}

	if u.VerificationToken != nil && *u.VerificationToken == "" {
		u.VerificationToken = nil
	}

	return nil
}

// CreateUser stores a new user.
func CreateUser(u *User) error {
	return DB.Omit(clause.Associations).Create(u).Error
}

// UserByID returns the user with the given ID.
func UserByID(id uuid.UUID) (User, error) {
	var user User
	err := DB.Where("id = ?", id).First(&user).Error
	return user, err
}

// UserByEmail returns the user with the given email address.
func UserByEmail(email string) (User, error) {
	var user User
	err := DB.Where(&User{Email: NormalizeEmail(email)}).First(&user).Error
	return user, err
}

// UserByVerificationToken returns the user holding token.
func UserByVerificationToken(token string) (User, error) {
	var user User
	err := DB.Where("verification_token = ?", token).First(&user).Error
	return user, err
}

// Verify marks the user as verified and removes the verification token.
func (u *User) Verify() error {
	u.Verified = true
	u.VerificationToken = nil

	return DB.Model(u).Updates(map[string]any{
		"verified":           true,
		"verification_token": nil,
	}).Error
}

// SetVerificationToken replaces the verification token of the user.
func (u *User) SetVerificationToken(token string) error {
	u.VerificationToken = &token
	return DB.Model(u).Update("verification_token", token).Error
}

// SelectLedger stores ledger as the preferred ledger of the user.
//
// The ledger must be an active ledger of the user, otherwise a NotFound
// error is returned.
func (u *User) SelectLedger(ledgerID uuid.UUID) error {
	if _, err := LedgerOf(u.ID, ledgerID); err != nil {
		return err
	}

	u.LastSelectedLedgerID = &ledgerID
	return DB.Model(u).Update("last_selected_ledger_id", ledgerID).Error
}

// PreferredLedger returns the ledger for the dashboard. This is the last
// selected ledger if it is still active, otherwise the oldest active ledger.
//
// ok is false if the user has no active ledgers.
func (u User) PreferredLedger() (ledger Ledger, ok bool, err error) {
	if u.LastSelectedLedgerID != nil {
		ledger, err = LedgerOf(u.ID, *u.LastSelectedLedgerID)
		if err == nil {
			return ledger, true, nil
		}
		if !errors.Is(err, ErrResourceNotFound) {
			return Ledger{}, false, err
		}
	}

	ledgers, err := LedgersOf(u.ID)
	if err != nil {
		return Ledger{}, false, err
	}

	if len(ledgers) == 0 {
		return Ledger{}, false, nil
	}

	return ledgers[0], true, nil
}
