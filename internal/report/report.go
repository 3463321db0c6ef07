// Package report folds transaction rows into per-cycle, per-category and
// per-day totals.
//
// All functions are pure and safe for concurrent use.
package report

import (
	"github.com/cycle-ledger/backend/internal/cycle"
	"github.com/cycle-ledger/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopCategories is the maximum number of categories returned by ByCategory.
const TopCategories = 10

// DefaultColor is used for categories without a color.
const DefaultColor = "#007bff"

// Row is a transaction as needed for aggregation.
type Row struct {
	Date         types.Date
	Type         types.TransactionType
	Amount       decimal.Decimal
	CategoryID   uuid.UUID
	CategoryName string
	Color        string
}

// Period contains the totals of one cycle.
type Period struct {
	Key     cycle.PeriodKey `json:"key"`
	Range   cycle.Range     `json:"range"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Count   int             `json:"count"`
}

// Net returns income minus expense.
func (p Period) Net() decimal.Decimal {
	return p.Income.Sub(p.Expense)
}

// Category contains the totals for one category.
type Category struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Amount     decimal.Decimal `json:"amount"`
	Count      int             `json:"count"`
	Percentage int             `json:"percentage"`
}

// Day is the expense total of a single date.
type Day struct {
	Date   types.Date      `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// Summary contains the totals over a whole range.
type Summary struct {
	Range               cycle.Range     `json:"range"`
	Days                int             `json:"days"`
	Income              decimal.Decimal `json:"income"`
	Expense             decimal.Decimal `json:"expense"`
	Count               int             `json:"count"`
	AverageDailyExpense decimal.Decimal `json:"averageDailyExpense"`
	NetBalance          decimal.Decimal `json:"netBalance"`
	NetBalanceAbs       decimal.Decimal `json:"netBalanceAbs"`
	IsPositive          bool            `json:"isPositive"`
}

// Report is the complete aggregation of a range.
type Report struct {
	Summary           Summary    `json:"summary"`
	Periods           []Period   `json:"periods"`
	IncomeCategories  []Category `json:"incomeCategories"`
	ExpenseCategories []Category `json:"expenseCategories"`
	Days              []Day      `json:"days"`
}

// ByPeriod groups rows by the cycle they fall into. Only cycles with at
// least one row are returned, in ascending order.
func ByPeriod(rows []Row, startDay int) ([]Period, error) {
	if err := cycle.ValidateStartDay(startDay); err != nil {
		return nil, err
	}

	index := make(map[cycle.PeriodKey]int)
	periods := make([]Period, 0)

	for _, row := range rows {
		key, err := cycle.Label(row.Date, startDay)
		if err != nil {
			return nil, err
		}

		i, ok := index[key]
		if !ok {
			i = len(periods)
			index[key] = i
			periods = append(periods, newPeriod(key))
		}

		periods[i].add(row)
	}

	sortPeriods(periods)
	return periods, nil
}

func newPeriod(key cycle.PeriodKey) Period {
	return Period{
		Key:     key,
		Range:   key.Range(),
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}
}

func (p *Period) add(row Row) {
	switch row.Type {
	case types.Income:
		p.Income = p.Income.Add(row.Amount)
	case types.Expense:
		p.Expense = p.Expense.Add(row.Amount)
	default:
		return
	}
	p.Count++
}

// ByCategory groups rows of type t by category.
//
// The percentage of each category is its share of the total of all
// categories, rounded half up. At most TopCategories are returned, ordered
// by amount descending. Categories with equal amounts keep the order in
// which they first appear in rows.
func ByCategory(rows []Row, t types.TransactionType) []Category {
	index := make(map[uuid.UUID]int)
	categories := make([]Category, 0)
	total := decimal.Zero

	for _, row := range rows {
		if row.Type != t {
			continue
		}

		i, ok := index[row.CategoryID]
		if !ok {
			i = len(categories)
			index[row.CategoryID] = i

			color := row.Color
			if color == "" {
				color = DefaultColor
			}
			categories = append(categories, Category{
				ID:     row.CategoryID,
				Name:   row.CategoryName,
				Color:  color,
				Amount: decimal.Zero,
			})
		}

		categories[i].Amount = categories[i].Amount.Add(row.Amount)
		categories[i].Count++
		total = total.Add(row.Amount)
	}

	if !total.IsZero() {
		hundred := decimal.NewFromInt(100)
		for i := range categories {
			categories[i].Percentage = int(categories[i].Amount.Mul(hundred).Div(total).Round(0).IntPart())
		}
	}

	sortCategories(categories)
	if len(categories) > TopCategories {
		categories = categories[:TopCategories]
	}

	return categories
}

// ByDay sums expenses per date in ascending order.
func ByDay(rows []Row) []Day {
	index := make(map[types.Date]int)
	days := make([]Day, 0)

	for _, row := range rows {
		if row.Type != types.Expense {
			continue
		}

		i, ok := index[row.Date]
		if !ok {
			i = len(days)
			index[row.Date] = i
			days = append(days, Day{Date: row.Date, Amount: decimal.Zero})
		}

		days[i].Amount = days[i].Amount.Add(row.Amount)
		days[i].Count++
	}

	sortDays(days)
	return days
}

// Summarize computes the totals of rows over rng.
//
// The average daily expense is rounded half up to two decimal places.
func Summarize(rows []Row, rng cycle.Range) Summary {
	s := Summary{
		Range:   rng,
		Days:    max(1, rng.Days()),
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}

	for _, row := range rows {
		switch row.Type {
		case types.Income:
			s.Income = s.Income.Add(row.Amount)
		case types.Expense:
			s.Expense = s.Expense.Add(row.Amount)
		default:
			continue
		}
		s.Count++
	}

	s.AverageDailyExpense = s.Expense.Div(decimal.NewFromInt(int64(s.Days))).Round(2)
	s.NetBalance = s.Income.Sub(s.Expense)
	s.NetBalanceAbs = s.NetBalance.Abs()
	s.IsPositive = !s.NetBalance.IsNegative()

	return s
}

// Build validates the input and produces the full Report for rng.
//
// Unlike ByPeriod, the Periods of the report contain every cycle that
// overlaps rng, with zero totals for cycles without rows. Rows are expected
// to lie within rng, cycles of rows outside of it are not listed.
func Build(rows []Row, rng cycle.Range, startDay int) (Report, error) {
	if err := cycle.ValidateStartDay(startDay); err != nil {
		return Report{}, err
	}

	rng, err := cycle.NewRange(rng.Start, rng.End)
	if err != nil {
		return Report{}, err
	}

	keys, err := cycle.Periods(rng, startDay)
	if err != nil {
		return Report{}, err
	}

	filled, err := ByPeriod(rows, startDay)
	if err != nil {
		return Report{}, err
	}

	byKey := make(map[cycle.PeriodKey]Period, len(filled))
	for _, p := range filled {
		byKey[p.Key] = p
	}

	periods := make([]Period, 0, len(keys))
	for _, k := range keys {
		p, ok := byKey[k]
		if !ok {
			p = newPeriod(k)
		}
		periods = append(periods, p)
	}

	return Report{
		Summary:           Summarize(rows, rng),
		Periods:           periods,
		IncomeCategories:  ByCategory(rows, types.Income),
		ExpenseCategories: ByCategory(rows, types.Expense),
		Days:              ByDay(rows),
	}, nil
}
