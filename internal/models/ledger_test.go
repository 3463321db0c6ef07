package models_test

import (
	"strings"
	"time"

	"github.com/cycle-ledger/backend/internal/apperror"
	"github.com/cycle-ledger/backend/internal/cycle"
	"github.com/cycle-ledger/backend/internal/models"
	"github.com/cycle-ledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestLedgerNormalizes() {
	ledger := suite.createTestLedger(models.Ledger{
		Name:        "\t Household  ",
		Description: " Shared costs ",
		Currency:    " usd",
	})

	assert.Equal(suite.T(), "Household", ledger.Name)
	assert.Equal(suite.T(), "Shared costs", ledger.Description)
	assert.Equal(suite.T(), "USD", ledger.Currency)
	assert.True(suite.T(), ledger.Active)
}

func (suite *TestSuiteStandard) TestLedgerValidation() {
	user := suite.createTestUser(models.User{})

	tests := []struct {
		name   string
		ledger models.Ledger
		err    error
	}{
		{"Empty name", models.Ledger{Name: " ", Currency: "EUR", CycleStartDay: 1}, models.ErrLedgerNameLength},
		{"Long name", models.Ledger{Name: strings.Repeat("a", 101), Currency: "EUR", CycleStartDay: 1}, models.ErrLedgerNameLength},
		{"Long description", models.Ledger{Name: "L", Description: strings.Repeat("a", 501), Currency: "EUR", CycleStartDay: 1}, models.ErrLedgerDescriptionLength},
		{"Unknown currency", models.Ledger{Name: "L", Currency: "ABC", CycleStartDay: 1}, models.ErrCurrencyInvalid},
		{"Short currency", models.Ledger{Name: "L", Currency: "EU", CycleStartDay: 1}, models.ErrCurrencyInvalid},
		{"Start day zero", models.Ledger{Name: "L", Currency: "EUR", CycleStartDay: 0}, apperror.ErrInvalidConfiguration},
		{"Start day 32", models.Ledger{Name: "L", Currency: "EUR", CycleStartDay: 32}, apperror.ErrInvalidConfiguration},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			tt.ledger.UserID = user.ID
			err := models.CreateLedger(&tt.ledger)
			assert.ErrorIs(suite.T(), err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestLedgerCurrencySymbol() {
	assert.Contains(suite.T(), models.Ledger{Currency: "EUR"}.CurrencySymbol(), "€")
	assert.Contains(suite.T(), models.Ledger{Currency: "USD"}.CurrencySymbol(), "$")
	assert.NotContains(suite.T(), models.Ledger{Currency: "EUR"}.CurrencySymbol(), "%!")
	assert.Equal(suite.T(), "XYZ", models.Ledger{Currency: "XYZ"}.CurrencySymbol())
}

func (suite *TestSuiteStandard) TestLedgerOwnership() {
	ledger := suite.createTestLedger(models.Ledger{})
	other := suite.createTestUser(models.User{})

	found, err := models.LedgerOf(ledger.UserID, ledger.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), ledger.Name, found.Name)

	_, err = models.LedgerOf(other.ID, ledger.ID)
	assert.ErrorIs(suite.T(), err, apperror.ErrNotFound)
	assert.Contains(suite.T(), err.Error(), ledger.ID.String())
}

func (suite *TestSuiteStandard) TestLedgerDeactivate() {
	ledger := suite.createTestLedger(models.Ledger{})
	require.Nil(suite.T(), ledger.Deactivate())

	_, err := models.LedgerOf(ledger.UserID, ledger.ID)
	assert.ErrorIs(suite.T(), err, apperror.ErrNotFound)

	ledgers, err := models.LedgersOf(ledger.UserID)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), ledgers, 0)
}

func (suite *TestSuiteStandard) TestLedgerUpdate() {
	ledger := suite.createTestLedger(models.Ledger{})
	ledger.Name = "Renamed"
	ledger.CycleStartDay = 25
	require.Nil(suite.T(), ledger.Update())

	found, err := models.LedgerOf(ledger.UserID, ledger.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "Renamed", found.Name)
	assert.Equal(suite.T(), 25, found.CycleStartDay)
}

func (suite *TestSuiteStandard) TestLedgerReportRows() {
	ledger := suite.createTestLedger(models.Ledger{CycleStartDay: 25})
	groceries := suite.createTestCategory(models.Category{LedgerID: ledger.ID, Name: "Groceries", Color: "#ff0000"})
	salary := suite.createTestCategory(models.Category{LedgerID: ledger.ID, Name: "Salary", Type: types.Income})

	for _, t := range []models.Transaction{
		{CategoryID: groceries.ID, Type: types.Expense, Amount: decimal.RequireFromString("10.10"), Date: types.NewDate(2024, time.January, 24)},
		{CategoryID: groceries.ID, Type: types.Expense, Amount: decimal.RequireFromString("20.05"), Date: types.NewDate(2024, time.January, 25)},
		{CategoryID: salary.ID, Type: types.Income, Amount: decimal.RequireFromString("1000"), Date: types.NewDate(2024, time.February, 24)},
		{CategoryID: groceries.ID, Type: types.Expense, Amount: decimal.RequireFromString("7"), Date: types.NewDate(2024, time.February, 25)},
	} {
		t.LedgerID = ledger.ID
		suite.createTestTransaction(t)
	}

	// Transactions of other ledgers are never included
	suite.createTestTransaction(models.Transaction{Date: types.NewDate(2024, time.February, 1)})

	rng, err := cycle.Resolve(types.NewDate(2024, time.February, 1), ledger.CycleStartDay)
	require.Nil(suite.T(), err)

	rows, err := ledger.ReportRows(rng)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), rows, 2, "Range boundaries are not inclusive")

	assert.Equal(suite.T(), types.NewDate(2024, time.January, 25), rows[0].Date)
	assert.True(suite.T(), decimal.RequireFromString("20.05").Equal(rows[0].Amount))
	assert.Equal(suite.T(), "Groceries", rows[0].CategoryName)
	assert.Equal(suite.T(), "#ff0000", rows[0].Color)
	assert.Equal(suite.T(), types.Income, rows[1].Type)
	assert.Equal(suite.T(), salary.ID, rows[1].CategoryID)

	r, err := ledger.Report(rng)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), decimal.RequireFromString("1000").Equal(r.Summary.Income))
	assert.True(suite.T(), decimal.RequireFromString("20.05").Equal(r.Summary.Expense))
	require.Len(suite.T(), r.Periods, 1)
	assert.Equal(suite.T(), "2024-01", r.Periods[0].Key.String())
}

func (suite *TestSuiteStandard) TestLedgerReportInvalidRange() {
	ledger := suite.createTestLedger(models.Ledger{})

	_, err := ledger.Report(cycle.Range{Start: types.NewDate(2024, time.March, 1), End: types.NewDate(2024, time.February, 1)})
	assert.ErrorIs(suite.T(), err, apperror.ErrInvalidDateRange)
}

func (suite *TestSuiteStandard) TestLedgerReportDBClosed() {
	ledger := suite.createTestLedger(models.Ledger{})
	suite.CloseDB()

	_, err := ledger.Report(cycle.Range{Start: types.NewDate(2024, time.March, 1), End: types.NewDate(2024, time.March, 31)})
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}
