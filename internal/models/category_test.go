package models_test

import (
	"strings"

	"github.com/cycle-ledger/backend/internal/apperror"
	"github.com/cycle-ledger/backend/internal/models"
	"github.com/cycle-ledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoryTrimWhitespace() {
	category := suite.createTestCategory(models.Category{
		Name:  "\t Whitespace galore!   ",
		Color: " #123456 ",
	})

	assert.Equal(suite.T(), "Whitespace galore!", category.Name)
	assert.Equal(suite.T(), "#123456", category.Color)
}

func (suite *TestSuiteStandard) TestCategoryValidation() {
	ledger := suite.createTestLedger(models.Ledger{})

	err := models.CreateCategory(&models.Category{LedgerID: ledger.ID, Name: strings.Repeat("a", 51), Type: types.Expense})
	assert.ErrorIs(suite.T(), err, models.ErrCategoryNameLength)

	err = models.CreateCategory(&models.Category{LedgerID: ledger.ID, Name: "Transfer", Type: "transfer"})
	assert.ErrorIs(suite.T(), err, types.ErrTransactionTypeInvalid)
}

func (suite *TestSuiteStandard) TestCategoryDisplayDefaults() {
	category := models.Category{}
	assert.Equal(suite.T(), models.DefaultCategoryColor, category.DisplayColor())
	assert.Equal(suite.T(), models.DefaultCategoryIcon, category.DisplayIcon())

	category = models.Category{Color: "#000000", Icon: "cart"}
	assert.Equal(suite.T(), "#000000", category.DisplayColor())
	assert.Equal(suite.T(), "cart", category.DisplayIcon())
}

func (suite *TestSuiteStandard) TestCategorySortOrder() {
	ledger := suite.createTestLedger(models.Ledger{})

	a := suite.createTestCategory(models.Category{LedgerID: ledger.ID, Name: "A"})
	b := suite.createTestCategory(models.Category{LedgerID: ledger.ID, Name: "B"})
	c := suite.createTestCategory(models.Category{LedgerID: ledger.ID, Name: "C", Type: types.Income})

	assert.Equal(suite.T(), 1, a.SortOrder)
	assert.Equal(suite.T(), 2, b.SortOrder)
	assert.Equal(suite.T(), 3, c.SortOrder)

	require.Nil(suite.T(), models.SortCategories(ledger.ID, []uuid.UUID{c.ID, b.ID, a.ID}))

	categories, err := models.CategoriesOf(ledger.ID, "")
	require.Nil(suite.T(), err)
	require.Len(suite.T(), categories, 3)
	assert.Equal(suite.T(), []string{"C", "B", "A"}, []string{categories[0].Name, categories[1].Name, categories[2].Name})

	expenses, err := models.CategoriesOf(ledger.ID, types.Expense)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), expenses, 2)
}

func (suite *TestSuiteStandard) TestCategorySortForeign() {
	ledger := suite.createTestLedger(models.Ledger{})
	own := suite.createTestCategory(models.Category{LedgerID: ledger.ID, Name: "Own"})
	foreign := suite.createTestCategory(models.Category{})

	err := models.SortCategories(ledger.ID, []uuid.UUID{foreign.ID, own.ID})
	assert.ErrorIs(suite.T(), err, apperror.ErrNotFound)

	found, err := models.CategoryOf(ledger.ID, own.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), 1, found.SortOrder, "Sort order was changed by a failed sort")
}

func (suite *TestSuiteStandard) TestCategoryOfOtherLedger() {
	category := suite.createTestCategory(models.Category{})
	other := suite.createTestLedger(models.Ledger{})

	_, err := models.CategoryOf(other.ID, category.ID)
	assert.ErrorIs(suite.T(), err, apperror.ErrNotFound)
}

func (suite *TestSuiteStandard) TestCategoryDeactivate() {
	category := suite.createTestCategory(models.Category{})
	require.Nil(suite.T(), category.Deactivate())

	_, err := models.CategoryOf(category.LedgerID, category.ID)
	assert.ErrorIs(suite.T(), err, apperror.ErrNotFound)
}

func (suite *TestSuiteStandard) TestCategoryDeactivateWithTransactions() {
	transaction := suite.createTestTransaction(models.Transaction{})
	category, err := models.CategoryOf(transaction.LedgerID, transaction.CategoryID)
	require.Nil(suite.T(), err)

	err = category.Deactivate()
	assert.ErrorIs(suite.T(), err, models.ErrCategoryHasTransactions)
}
