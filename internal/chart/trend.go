// Package chart renders report charts as SVG.
package chart

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cycle-ledger/backend/internal/report"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("there is no data to draw")

var (
	incomeColor  = drawing.ColorFromHex("28a745")
	expenseColor = drawing.ColorFromHex("dc3545")
)

// Trend renders income and expense per cycle as a bar chart.
//
// Each cycle is drawn as a pair of bars labeled with the cycle key.
// ErrNoData is returned if periods is empty or all totals are zero.
func Trend(periods []report.Period) ([]byte, error) {
	bars := make([]gochart.Value, 0, 2*len(periods))
	empty := true

	for _, p := range periods {
		income := p.Income.InexactFloat64()
		expense := p.Expense.InexactFloat64()
		if income != 0 || expense != 0 {
			empty = false
		}

		bars = append(bars,
			gochart.Value{
				Label: p.Key.String() + " +",
				Value: income,
				Style: gochart.Style{FillColor: incomeColor, StrokeColor: incomeColor},
			},
			gochart.Value{
				Label: p.Key.String() + " -",
				Value: expense,
				Style: gochart.Style{FillColor: expenseColor, StrokeColor: expenseColor},
			},
		)
	}

	if empty {
		return nil, ErrNoData
	}

	graph := gochart.BarChart{
		Width:      max(480, 60*len(bars)+120),
		Height:     360,
		BarWidth:   30,
		BarSpacing: 20,
		Background: gochart.Style{
			Padding: gochart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
			FillColor: gochart.ColorWhite,
		},
		YAxis: gochart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(gochart.SVG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render trend chart: %w", err)
	}

	return buffer.Bytes(), nil
}
