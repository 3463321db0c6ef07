package controllers_test

import (
	"github.com/cycle-ledger/backend/internal/auth"
	"github.com/cycle-ledger/backend/internal/models"
	"github.com/cycle-ledger/backend/internal/test"
	"github.com/cycle-ledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const testPassword = "correct-horse"

// createTestUser creates a verified user and returns it with the headers
// of an authenticated request.
func (suite *TestSuiteStandard) createTestUser(email string) (models.User, map[string]string) {
	hash, err := auth.HashPassword(testPassword)
	suite.Require().Nil(err)

	user := models.User{
		Email:        email,
		Username:     "Test",
		PasswordHash: hash,
		Verified:     true,
	}
	suite.Require().Nil(models.CreateUser(&user))

	return user, test.AuthCookie(suite.T(), user.ID, user.Email)
}

func (suite *TestSuiteStandard) createTestLedger(userID uuid.UUID, startDay int) models.Ledger {
	ledger := models.Ledger{
		UserID:        userID,
		Name:          "Household",
		Currency:      "EUR",
		CycleStartDay: startDay,
	}
	suite.Require().Nil(models.CreateLedger(&ledger))

	return ledger
}

func (suite *TestSuiteStandard) createTestCategory(ledgerID uuid.UUID, name string, t types.TransactionType) models.Category {
	category := models.Category{
		LedgerID: ledgerID,
		Name:     name,
		Type:     t,
		Color:    "#28a745",
	}
	suite.Require().Nil(models.CreateCategory(&category))

	return category
}

func (suite *TestSuiteStandard) createTestTransaction(category models.Category, amount string, date types.Date, tags string) models.Transaction {
	transaction := models.Transaction{
		LedgerID:   category.LedgerID,
		CategoryID: category.ID,
		Type:       category.Type,
		Amount:     decimal.RequireFromString(amount),
		Date:       date,
		Tags:       tags,
	}
	suite.Require().Nil(models.CreateTransaction(&transaction))

	return transaction
}
