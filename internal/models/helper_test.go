package models_test

import (
	"time"

	"github.com/cycle-ledger/backend/internal/models"
	"github.com/cycle-ledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createTestUser(u models.User) models.User {
	if u.Email == "" {
		u.Email = uuid.NewString() + "@example.com"
	}

	if u.Username == "" {
		u.Username = "Test User"
	}

	err := models.CreateUser(&u)
	if err != nil {
		suite.Assert().FailNowf("User could not be saved", "Error: %s, User: %#v", err, u)
	}

	return u
}

func (suite *TestSuiteStandard) createTestLedger(l models.Ledger) models.Ledger {
	if l.UserID == uuid.Nil {
		l.UserID = suite.createTestUser(models.User{}).ID
	}

	if l.Name == "" {
		l.Name = "Household"
	}

	if l.Currency == "" {
		l.Currency = "EUR"
	}

	if l.CycleStartDay == 0 {
		l.CycleStartDay = 1
	}

	err := models.CreateLedger(&l)
	if err != nil {
		suite.Assert().FailNowf("Ledger could not be saved", "Error: %s, Ledger: %#v", err, l)
	}

	return l
}

func (suite *TestSuiteStandard) createTestCategory(c models.Category) models.Category {
	if c.LedgerID == uuid.Nil {
		c.LedgerID = suite.createTestLedger(models.Ledger{}).ID
	}

	if c.Name == "" {
		c.Name = "Groceries"
	}

	if c.Type == "" {
		c.Type = types.Expense
	}

	err := models.CreateCategory(&c)
	if err != nil {
		suite.Assert().FailNowf("Category could not be saved", "Error: %s, Category: %#v", err, c)
	}

	return c
}

func (suite *TestSuiteStandard) createTestTransaction(t models.Transaction) models.Transaction {
	if t.CategoryID == uuid.Nil {
		category := suite.createTestCategory(models.Category{LedgerID: t.LedgerID, Type: t.Type})
		t.CategoryID = category.ID
		t.LedgerID = category.LedgerID
		t.Type = category.Type
	}

	if t.Amount.IsZero() {
		t.Amount = decimal.NewFromFloat(12.5)
	}

	if t.Date.IsZero() {
		t.Date = types.DateOf(time.Now())
	}

	err := models.CreateTransaction(&t)
	if err != nil {
		suite.Assert().FailNowf("Transaction could not be saved", "Error: %s, Transaction: %#v", err, t)
	}

	return t
}
