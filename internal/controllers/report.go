package controllers

import (
	"errors"
	"net/http"

	"github.com/cycle-ledger/backend/internal/chart"
	"github.com/cycle-ledger/backend/internal/cycle"
	"github.com/cycle-ledger/backend/internal/httputil"
	"github.com/cycle-ledger/backend/internal/models"
	"github.com/cycle-ledger/backend/internal/types"
	"github.com/gin-gonic/gin"
)

const (
	// DefaultReportCycles is the number of cycles shown without a query.
	DefaultReportCycles = 6

	// MaxReportCycles limits the cycles query parameter.
	MaxReportCycles = 24
)

// ReportQuery selects the range of a report.
//
// Start and End take precedence over Cycles.
type ReportQuery struct {
	Start  string `form:"start"`
	End    string `form:"end"`
	Cycles int    `form:"cycles"`
}

// Range resolves the query to a date range for a ledger with the given
// cycle start day.
//
//   - start and end: exactly that range
//   - only start: from start to the end of its cycle
//   - only end: from the start of its cycle to end
//   - neither: the last Cycles cycles up to today
func (q ReportQuery) Range(today types.Date, startDay int) (cycle.Range, error) {
	var start, end types.Date
	var err error

	if q.Start != "" {
		if start, err = types.ParseDate(q.Start); err != nil {
			return cycle.Range{}, httputil.ErrInvalidDate
		}
	}

	if q.End != "" {
		if end, err = types.ParseDate(q.End); err != nil {
			return cycle.Range{}, httputil.ErrInvalidDate
		}
	}

	switch {
	case q.Start != "" && q.End != "":
		return cycle.NewRange(start, end)

	case q.Start != "":
		rng, err := cycle.Resolve(start, startDay)
		if err != nil {
			return cycle.Range{}, err
		}
		return cycle.NewRange(start, rng.End)

	case q.End != "":
		rng, err := cycle.Resolve(end, startDay)
		if err != nil {
			return cycle.Range{}, err
		}
		return cycle.NewRange(rng.Start, end)
	}

	return cycle.Span(today, startDay, q.cycles())
}

// cycles returns the number of cycles clamped to the allowed values.
func (q ReportQuery) cycles() int {
	if q.Cycles == 0 {
		return DefaultReportCycles
	}

	return min(max(q.Cycles, 1), MaxReportCycles)
}

func (co Controller) RegisterReportRoutes(r *gin.RouterGroup) {
	r.GET("", co.Report)
	r.GET("/trend.svg", co.Trend)
}

// reportOf binds the query and resolves the range of the report.
func reportOf(c *gin.Context, ledger models.Ledger) (cycle.Range, ReportQuery, error) {
	var query ReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return cycle.Range{}, query, httputil.ErrInvalidQuery
	}

	rng, err := query.Range(types.Today(), ledger.CycleStartDay)
	return rng, query, err
}

// Report shows the summary, the per-cycle totals and the category
// breakdown for a range.
func (co Controller) Report(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	rng, query, err := reportOf(c, ledger)
	if err != nil {
		co.formError(c, reportsPath(ledger), err)
		return
	}

	rep, err := ledger.Report(rng)
	if err != nil {
		co.renderError(c, err)
		return
	}

	trend := reportsPath(ledger) + "/trend.svg"
	if c.Request.URL.RawQuery != "" {
		trend += "?" + c.Request.URL.RawQuery
	}

	render(c, http.StatusOK, "report.html", "Report", gin.H{
		"Ledger":   ledger,
		"Report":   rep,
		"Range":    rng,
		"Query":    query,
		"Cycles":   query.cycles(),
		"TrendURL": trend,
	})
}

// Trend renders the per-cycle totals of the report as SVG.
func (co Controller) Trend(c *gin.Context) {
	ledger, ok := co.ledger(c)
	if !ok {
		return
	}

	rng, _, err := reportOf(c, ledger)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	rep, err := ledger.Report(rng)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	svg, err := chart.Trend(rep.Periods)
	if err != nil {
		if errors.Is(err, chart.ErrNoData) {
			c.Status(http.StatusNoContent)
			return
		}

		httputil.ErrorHandler(c, err)
		return
	}

	c.Data(http.StatusOK, "image/svg+xml", svg)
}

func reportsPath(l models.Ledger) string {
	return ledgerPath(l) + "/reports"
}
