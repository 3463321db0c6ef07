package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cycle-ledger/backend/internal/httputil"
	"github.com/cycle-ledger/backend/internal/models"
	"github.com/cycle-ledger/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type TransactionForm struct {
	CategoryID  string `form:"category_id" binding:"required,uuid"`
	Amount      string `form:"amount" binding:"required"`
	Date        string `form:"date" binding:"required"`
	Description string `form:"description" binding:"max=500"`
	Tags        string `form:"tags" binding:"max=500"`
}

// TransactionQuery contains the filters of the transaction list.
type TransactionQuery struct {
	Page     int    `form:"page" binding:"omitempty,gte=1"`
	Type     string `form:"type" binding:"omitempty,oneof=income expense"`
	Category string `form:"category" binding:"omitempty,uuid"`
	Tags     string `form:"tags"`
}

func (q TransactionQuery) filter() models.TransactionFilter {
	// Both fields have been validated by binding
	id, _ := httputil.UUIDFromString(q.Category)

	return models.TransactionFilter{
		Type:       types.TransactionType(q.Type),
		CategoryID: id,
		Tag:        q.Tags,
		Page:       q.Page,
	}
}

// pageURL returns the list URL for page with the same filters.
func (q TransactionQuery) pageURL(base string, page int) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Tags != "" {
		v.Set("tags", q.Tags)
	}

	return base + "?" + v.Encode()
}

func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	r.GET("", co.ListTransactions)
	r.GET("/new", co.NewTransactionPage)
	r.POST("/new", co.CreateTransaction)
	r.GET("/:transactionId/edit", co.EditTransactionPage)
	r.POST("/:transactionId/edit", co.UpdateTransaction)
	r.POST("/:transactionId/delete", co.DeleteTransaction)
}

// transaction returns the transaction from the :transactionId parameter within ledger.
func (co Controller) transaction(c *gin.Context, ledger models.Ledger) (models.Transaction, bool) {
	id, err := httputil.UUIDParam(c, "transactionId")
	if err != nil {
		co.renderError(c, err)
		return models.Transaction{}, false
	}

	transaction, err := models.TransactionOf(ledger.ID, id)
	if err != nil {
		co.renderError(c, err)
		return models.Transaction{}, false
	}

	return transaction, true
}

// apply parses the form into t. The type of the transaction is the type of
// its category.
func (f TransactionForm) apply(ledger models.Ledger, t *models.Transaction) error {
	amount, err := decimal.NewFromString(f.Amount)
	if err != nil {
		return httputil.ErrInvalidAmount
	}

	date, err := types.ParseDate(f.Date)
	if err != nil {
		return httputil.ErrInvalidDate
	}

	categoryID, err := httputil.UUIDFromString(f.CategoryID)
	if err != nil {
		return err
	}

	category, err := models.CategoryOf(ledger.ID, categoryID)
	if err != nil {
		return err
	}

	t.LedgerID = ledger.ID
	t.CategoryID = category.ID
	t.Category = category
	t.Type = category.Type
	t.Amount = amount
	t.Date = date
	t.Description = f.Description
	t.Tags = f.Tags

	return nil
}

// ListTransactions shows one page of the transactions of a ledger.
func (co Controller) ListTransactions(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	var query TransactionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		redirect(c, transactionsPath(ledger), "error", httputil.ErrInvalidQuery.Error())
		return
	}

	page, err := models.TransactionsOf(ledger.ID, query.filter())
	if err != nil {
		co.renderError(c, err)
		return
	}

	categories, err := models.CategoriesOf(ledger.ID, "")
	if err != nil {
		co.renderError(c, err)
		return
	}

	data := gin.H{
		"Ledger":     ledger,
		"Page":       page,
		"Query":      query,
		"Categories": categories,
	}

	if page.Page > 1 {
		data["PreviousURL"] = query.pageURL(transactionsPath(ledger), page.Page-1)
	}

	if page.HasNext {
		data["NextURL"] = query.pageURL(transactionsPath(ledger), page.Page+1)
	}

	render(c, http.StatusOK, "transaction_list.html", "Transactions", data)
}

func (co Controller) NewTransactionPage(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	categories, err := models.CategoriesOf(ledger.ID, "")
	if err != nil {
		co.renderError(c, err)
		return
	}

	render(c, http.StatusOK, "transaction_form.html", "New transaction", gin.H{
		"Ledger":      ledger,
		"Categories":  categories,
		"Transaction": models.Transaction{Date: types.Today()},
		"Action":      transactionsPath(ledger) + "/new",
	})
}

func (co Controller) CreateTransaction(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	back := transactionsPath(ledger) + "/new"

	var form TransactionForm
	if msg, ok := httputil.BindForm(c, &form); !ok {
		redirect(c, back, "error", msg)
		return
	}

	var transaction models.Transaction
	if err := form.apply(ledger, &transaction); err != nil {
		co.formError(c, back, err)
		return
	}

	if err := models.CreateTransaction(&transaction); err != nil {
		co.formError(c, back, err)
		return
	}

	redirect(c, transactionsPath(ledger), "success", "Transaction created")
}

func (co Controller) EditTransactionPage(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	transaction, ok := co.transaction(c, ledger)
	if !ok {
		return
	}

	categories, err := models.CategoriesOf(ledger.ID, "")
	if err != nil {
		co.renderError(c, err)
		return
	}

	render(c, http.StatusOK, "transaction_form.html", "Edit transaction", gin.H{
		"Ledger":      ledger,
		"Categories":  categories,
		"Transaction": transaction,
		"Action":      transactionPath(ledger, transaction) + "/edit",
	})
}

func (co Controller) UpdateTransaction(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	transaction, ok := co.transaction(c, ledger)
	if !ok {
		return
	}

	back := transactionPath(ledger, transaction) + "/edit"

	var form TransactionForm
	if msg, ok := httputil.BindForm(c, &form); !ok {
		redirect(c, back, "error", msg)
		return
	}

	if err := form.apply(ledger, &transaction); err != nil {
		co.formError(c, back, err)
		return
	}

	if err := transaction.Update(); err != nil {
		co.formError(c, back, err)
		return
	}

	redirect(c, transactionsPath(ledger), "success", "Transaction updated")
}

func (co Controller) DeleteTransaction(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	transaction, ok := co.transaction(c, ledger)
	if !ok {
		return
	}

	if err := transaction.Delete(); err != nil {
		co.renderError(c, err)
		return
	}

	redirect(c, transactionsPath(ledger), "success", "Transaction deleted")
}

// formError redirects to the form for client errors and shows the error
// page for everything else.
func (co Controller) formError(c *gin.Context, back string, err error) {
	if httputil.Status(err) < http.StatusInternalServerError {
		redirect(c, back, "error", err.Error())
		return
	}

	co.renderError(c, err)
}

func transactionsPath(l models.Ledger) string {
	return ledgerPath(l) + "/transactions"
}

func transactionPath(l models.Ledger, t models.Transaction) string {
	return fmt.Sprintf("%s/%s", transactionsPath(l), t.ID)
}
