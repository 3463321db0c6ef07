package controllers

import (
	"net/http"

	"github.com/cycle-ledger/backend/internal/cycle"
	"github.com/cycle-ledger/backend/internal/httputil"
	"github.com/cycle-ledger/backend/internal/models"
	"github.com/cycle-ledger/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PreferenceEditable struct {
	LedgerID string `json:"ledgerId" binding:"required" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
}

type PreferenceData struct {
	LedgerID uuid.UUID `json:"ledgerId" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`
}

type PreferenceResponse struct {
	Success bool           `json:"success" example:"true"`
	Message string         `json:"message" example:"Preferred ledger saved"`
	Data    PreferenceData `json:"data"`
}

// Cycle is the billing cycle containing Date. Label is the year and month
// in which the cycle starts.
type Cycle struct {
	Date  types.Date      `json:"date" example:"2024-02-03"`
	Label cycle.PeriodKey `json:"label" swaggertype:"string" example:"2024-01"`
	Start types.Date      `json:"start" example:"2024-01-25"`
	End   types.Date      `json:"end" example:"2024-02-24"`
	Days  int             `json:"days" example:"31"`
}

type CycleResponse struct {
	Data Cycle `json:"data"`
}

// RegisterAPIRoutes registers the JSON API. OPTIONS requests do not
// need a session.
func (co Controller) RegisterAPIRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/preferences/ledger", httputil.OptionsPost)
	r.OPTIONS("/preferences/ledger/:id", httputil.OptionsGet)
	r.OPTIONS("/ledgers/:id/cycle", httputil.OptionsGet)

	authenticated := r.Group("", co.RequireAPIUser)
	{
		authenticated.POST("/preferences/ledger", co.SetPreferredLedger)
		authenticated.GET("/preferences/ledger/:id", co.SelectPreferredLedger)
		authenticated.GET("/ledgers/:id/cycle", co.GetCycle)
	}
}

// @Summary		Set preferred ledger
// @Description	Stores the ledger shown on the dashboard
// @Tags			Preferences
// @Accept			json
// @Produce		json
// @Success		200		{object}	PreferenceResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		401		{object}	httputil.HTTPError
// @Failure		404		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			ledger	body		PreferenceEditable	true	"Ledger"
// @Router			/api/preferences/ledger [post]
func (co Controller) SetPreferredLedger(c *gin.Context) {
	var editable PreferenceEditable
	if err := httputil.BindJSON(c, &editable); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	id, err := httputil.UUIDFromString(editable.LedgerID)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	co.selectLedger(c, id)
}

// @Summary		Select preferred ledger
// @Description	Stores the ledger with the ID from the path as the ledger shown on the dashboard
// @Tags			Preferences
// @Produce		json
// @Success		200	{object}	PreferenceResponse
// @Failure		400	{object}	httputil.HTTPError
// @Failure		401	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/api/preferences/ledger/{id} [get]
func (co Controller) SelectPreferredLedger(c *gin.Context) {
	id, err := httputil.UUIDParam(c, "id")
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	co.selectLedger(c, id)
}

func (co Controller) selectLedger(c *gin.Context, id uuid.UUID) {
	user := mustUser(c)
	if err := user.SelectLedger(id); err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, PreferenceResponse{
		Success: true,
		Message: "Preferred ledger saved",
		Data:    PreferenceData{LedgerID: id},
	})
}

// @Summary		Get cycle
// @Description	Returns the billing cycle of the ledger containing the date. Without a date, the cycle containing today is returned.
// @Tags			Ledgers
// @Produce		json
// @Success		200		{object}	CycleResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		401		{object}	httputil.HTTPError
// @Failure		404		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			id		path		string	true	"ID formatted as string"
// @Param			date	query		string	false	"Date in YYYY-MM-DD format"
// @Router			/api/ledgers/{id}/cycle [get]
func (co Controller) GetCycle(c *gin.Context) {
	id, err := httputil.UUIDParam(c, "id")
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	ledger, err := models.LedgerOf(mustUser(c).ID, id)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	date := types.Today()
	if s := c.Query("date"); s != "" {
		date, err = types.ParseDate(s)
		if err != nil {
			httputil.ErrorHandler(c, httputil.ErrInvalidDate)
			return
		}
	}

	rng, err := cycle.Resolve(date, ledger.CycleStartDay)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	key, err := cycle.Label(date, ledger.CycleStartDay)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, CycleResponse{Data: Cycle{
		Date:  date,
		Label: key,
		Start: rng.Start,
		End:   rng.End,
		Days:  rng.Days(),
	}})
}
