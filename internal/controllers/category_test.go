package controllers_test

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/cycle-ledger/backend/internal/models"
	"github.com/cycle-ledger/backend/internal/test"
	"github.com/cycle-ledger/backend/internal/types"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestCategories() {
	user, headers := suite.createTestUser("jane@example.com")
	ledger := suite.createTestLedger(user.ID, 1)
	path := fmt.Sprintf("/ledgers/%s/categories", ledger.ID)

	r := test.Request(suite.T(), http.MethodGet, path+"/new?type=income", nil, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPost, path+"/new", url.Values{
		"name":  {"Salary"},
		"type":  {"income"},
		"icon":  {"briefcase"},
		"color": {"#28a745"},
	}, headers)
	test.AssertRedirect(suite.T(), &r, path)

	r = test.Request(suite.T(), http.MethodPost, path+"/new", url.Values{"name": {"Rent"}, "type": {"expense"}}, headers)
	test.AssertRedirect(suite.T(), &r, path)

	income, err := models.CategoriesOf(ledger.ID, types.Income)
	suite.Require().Nil(err)
	suite.Require().Len(income, 1)
	suite.Assert().Equal("Salary", income[0].Name)
	suite.Assert().Equal(1, income[0].SortOrder)

	expense, err := models.CategoriesOf(ledger.ID, types.Expense)
	suite.Require().Nil(err)
	suite.Require().Len(expense, 1)
	suite.Assert().Equal(2, expense[0].SortOrder)

	r = test.Request(suite.T(), http.MethodGet, path, nil, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().Contains(r.Body.String(), "Salary")
	suite.Assert().Contains(r.Body.String(), "Rent")

	// Categories without a color are shown with the default color
	suite.Assert().Contains(r.Body.String(), models.DefaultCategoryColor)
}

func (suite *TestSuiteStandard) TestCreateCategoryInvalid() {
	user, headers := suite.createTestUser("jane@example.com")
	ledger := suite.createTestLedger(user.ID, 1)
	path := fmt.Sprintf("/ledgers/%s/categories", ledger.ID)

	forms := []url.Values{
		{"name": {""}, "type": {"expense"}},
		{"name": {"Rent"}, "type": {"transfer"}},
		{"name": {"Rent"}},
	}

	for _, form := range forms {
		r := test.Request(suite.T(), http.MethodPost, path+"/new", form, headers)
		location := test.AssertRedirect(suite.T(), &r, path+"/new")
		suite.Assert().NotEmpty(location.Query().Get("error"), form)
	}

	categories, err := models.CategoriesOf(ledger.ID, "")
	suite.Require().Nil(err)
	suite.Assert().Empty(categories)
}

func (suite *TestSuiteStandard) TestUpdateCategory() {
	user, headers := suite.createTestUser("jane@example.com")
	ledger := suite.createTestLedger(user.ID, 1)
	category := suite.createTestCategory(ledger.ID, "Food", types.Expense)
	path := fmt.Sprintf("/ledgers/%s/categories/%s/edit", ledger.ID, category.ID)

	r := test.Request(suite.T(), http.MethodGet, path, nil, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().Contains(r.Body.String(), "Food")

	// The type cannot be changed
	r = test.Request(suite.T(), http.MethodPost, path, url.Values{"name": {"Groceries"}, "type": {"income"}, "icon": {"cart"}}, headers)
	test.AssertRedirect(suite.T(), &r, fmt.Sprintf("/ledgers/%s/categories", ledger.ID))

	updated, err := models.CategoryOf(ledger.ID, category.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("Groceries", updated.Name)
	suite.Assert().Equal("cart", updated.Icon)
	suite.Assert().Equal(types.Expense, updated.Type)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/ledgers/%s/categories/%s/edit", ledger.ID, uuid.New()), nil, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteCategory() {
	user, headers := suite.createTestUser("jane@example.com")
	ledger := suite.createTestLedger(user.ID, 1)
	used := suite.createTestCategory(ledger.ID, "Food", types.Expense)
	unused := suite.createTestCategory(ledger.ID, "Hobby", types.Expense)
	suite.createTestTransaction(used, "10", types.NewDate(2024, 3, 1), "")
	path := fmt.Sprintf("/ledgers/%s/categories", ledger.ID)

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("%s/%s/delete", path, used.ID), nil, headers)
	location := test.AssertRedirect(suite.T(), &r, path)
	suite.Assert().Contains(location.Query().Get("error"), "still has transactions")

	r = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("%s/%s/delete", path, unused.ID), nil, headers)
	location = test.AssertRedirect(suite.T(), &r, path)
	suite.Assert().NotEmpty(location.Query().Get("success"))

	categories, err := models.CategoriesOf(ledger.ID, "")
	suite.Require().Nil(err)
	suite.Require().Len(categories, 1)
	suite.Assert().Equal(used.ID, categories[0].ID)
}

func (suite *TestSuiteStandard) TestSortCategories() {
	user, headers := suite.createTestUser("jane@example.com")
	ledger := suite.createTestLedger(user.ID, 1)
	a := suite.createTestCategory(ledger.ID, "A", types.Expense)
	b := suite.createTestCategory(ledger.ID, "B", types.Expense)
	c := suite.createTestCategory(ledger.ID, "C", types.Expense)
	path := fmt.Sprintf("/ledgers/%s/categories", ledger.ID)

	r := test.Request(suite.T(), http.MethodPost, path+"/sort", url.Values{"ids": {c.ID.String(), a.ID.String(), b.ID.String()}}, headers)
	test.AssertRedirect(suite.T(), &r, path)

	categories, err := models.CategoriesOf(ledger.ID, types.Expense)
	suite.Require().Nil(err)
	suite.Require().Len(categories, 3)
	suite.Assert().Equal([]string{"C", "A", "B"}, []string{categories[0].Name, categories[1].Name, categories[2].Name})

	// Categories of other ledgers are rejected
	other := suite.createTestLedger(user.ID, 1)
	foreign := suite.createTestCategory(other.ID, "Foreign", types.Expense)

	r = test.Request(suite.T(), http.MethodPost, path+"/sort", url.Values{"ids": {foreign.ID.String(), a.ID.String()}}, headers)
	location := test.AssertRedirect(suite.T(), &r, path)
	suite.Assert().NotEmpty(location.Query().Get("error"))

	r = test.Request(suite.T(), http.MethodPost, path+"/sort", url.Values{"ids": {"nope"}}, headers)
	location = test.AssertRedirect(suite.T(), &r, path)
	suite.Assert().Contains(location.Query().Get("error"), "not a valid UUID")

	categories, err = models.CategoriesOf(ledger.ID, types.Expense)
	suite.Require().Nil(err)
	suite.Assert().Equal("C", categories[0].Name, "A failed sort must not change the order")
}
