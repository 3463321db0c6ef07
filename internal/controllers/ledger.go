package controllers

import (
	"fmt"
	"net/http"

	"github.com/cycle-ledger/backend/internal/httputil"
	"github.com/cycle-ledger/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type LedgerForm struct {
	Name          string `form:"name" binding:"required,max=100"`
	Description   string `form:"description" binding:"max=500"`
	Currency      string `form:"currency" binding:"required,len=3"`
	CycleStartDay int    `form:"cycle_start_day" binding:"required,gte=1,lte=31"`
}

func (f LedgerForm) apply(l *models.Ledger) {
	l.Name = f.Name
	l.Description = f.Description
	l.Currency = f.Currency
	l.CycleStartDay = f.CycleStartDay
}

// RegisterLedgerRoutes registers the routes for ledgers and everything
// that belongs to a ledger.
func (co Controller) RegisterLedgerRoutes(r *gin.RouterGroup) {
	r.GET("", co.ListLedgers)
	r.GET("/new", co.NewLedgerPage)
	r.POST("/new", co.CreateLedger)

	ledger := r.Group("/:id")
	{
		ledger.GET("", co.ShowLedger)
		ledger.GET("/edit", co.EditLedgerPage)
		ledger.POST("/edit", co.UpdateLedger)
		ledger.POST("/delete", co.DeleteLedger)

		co.RegisterCategoryRoutes(ledger.Group("/categories"))
		co.RegisterTransactionRoutes(ledger.Group("/transactions"))
		co.RegisterReportRoutes(ledger.Group("/reports"))
	}
}

func (co Controller) ListLedgers(c *gin.Context) {
	ledgers, err := models.LedgersOf(mustUser(c).ID)
	if err != nil {
		co.renderError(c, err)
		return
	}

	render(c, http.StatusOK, "ledger_list.html", "Ledgers", gin.H{"Ledgers": ledgers})
}

func (co Controller) NewLedgerPage(c *gin.Context) {
	render(c, http.StatusOK, "ledger_form.html", "New ledger", gin.H{
		"Ledger": models.Ledger{Currency: "EUR", CycleStartDay: 1},
		"Action": "/ledgers/new",
	})
}

func (co Controller) CreateLedger(c *gin.Context) {
	var form LedgerForm
	if msg, ok := httputil.BindForm(c, &form); !ok {
		redirect(c, "/ledgers/new", "error", msg)
		return
	}

	user := mustUser(c)
	ledger := models.Ledger{UserID: user.ID}
	form.apply(&ledger)

	if err := models.CreateLedger(&ledger); err != nil {
		if httputil.Status(err) == http.StatusBadRequest {
			redirect(c, "/ledgers/new", "error", err.Error())
			return
		}

		co.renderError(c, err)
		return
	}

	// The first ledger becomes the preferred one
	if user.LastSelectedLedgerID == nil {
		if err := user.SelectLedger(ledger.ID); err != nil {
			co.renderError(c, err)
			return
		}
	}

	redirect(c, ledgerPath(ledger), "success", "Ledger created")
}

// ShowLedger shows the ledger with its current cycle.
func (co Controller) ShowLedger(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

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

	categories, err := models.CategoriesOf(ledger.ID, "")
	if err != nil {
		co.renderError(c, err)
		return
	}

	render(c, http.StatusOK, "ledger_show.html", ledger.Name, gin.H{
		"Ledger":     ledger,
		"Cycle":      rng,
		"Summary":    rep.Summary,
		"Categories": categories,
	})
}

func (co Controller) EditLedgerPage(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	render(c, http.StatusOK, "ledger_form.html", "Edit ledger", gin.H{
		"Ledger": ledger,
		"Action": ledgerPath(ledger) + "/edit",
	})
}

func (co Controller) UpdateLedger(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	var form LedgerForm
	if msg, ok := httputil.BindForm(c, &form); !ok {
		redirect(c, ledgerPath(ledger)+"/edit", "error", msg)
		return
	}

	form.apply(&ledger)
	if err := ledger.Update(); err != nil {
		if httputil.Status(err) == http.StatusBadRequest {
			redirect(c, ledgerPath(ledger)+"/edit", "error", err.Error())
			return
		}

		co.renderError(c, err)
		return
	}

	redirect(c, ledgerPath(ledger), "success", "Ledger updated")
}

// DeleteLedger deactivates the ledger. Its categories and transactions
// are kept.
func (co Controller) DeleteLedger(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	if err := ledger.Deactivate(); err != nil {
		co.renderError(c, err)
		return
	}

	redirect(c, "/ledgers", "success", "Ledger deleted")
}

func ledgerPath(l models.Ledger) string {
	return fmt.Sprintf("/ledgers/%s", l.ID)
}
