package controllers

import (
	"net/http"

	"github.com/cycle-ledger/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// recentTransactions is the number of transactions shown on the dashboard.
const recentTransactions = 5

// Index is the landing page.
func (co Controller) Index(c *gin.Context) {
	if _, ok := currentUser(c); ok {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	render(c, http.StatusOK, "index.html", "Cycle Ledger", nil)
}

// Dashboard shows the ledgers of the user and the current cycle of the
// preferred ledger.
func (co Controller) Dashboard(c *gin.Context) {
	user := mustUser(c)

	ledgers, err := models.LedgersOf(user.ID)
	if err != nil {
		co.renderError(c, err)
		return
	}

	data := gin.H{"Ledgers": ledgers}

	ledger, ok, err := user.PreferredLedger()
	if err != nil {
		co.renderError(c, err)
		return
	}

	if ok {
		rng, err := ledger.CurrentCycle()
		if err != nil {
			co.renderError(c, err)
			return
		}

		rep, err := ledger.Report(rng)
		if err != nil {
			co.renderError(c, err)
			return
		}

		page, err := models.TransactionsOf(ledger.ID, models.TransactionFilter{})
		if err != nil {
			co.renderError(c, err)
			return
		}

		recent := page.Transactions
		if len(recent) > recentTransactions {
			recent = recent[:recentTransactions]
		}

		data["Ledger"] = ledger
		data["Cycle"] = rng
		data["Summary"] = rep.Summary
		data["Categories"] = rep.ExpenseCategories
		data["Recent"] = recent
	}

	render(c, http.StatusOK, "dashboard.html", "Dashboard", data)
}
