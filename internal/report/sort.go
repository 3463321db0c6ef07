package report

import (
	"golang.org/x/exp/slices"
)

func sortPeriods(periods []Period) {
	slices.SortFunc(periods, func(a, b Period) int {
		return a.Key.Compare(b.Key)
	})
}

// sortCategories orders by amount descending. It is stable so that ties
// keep their first-seen order.
func sortCategories(categories []Category) {
	slices.SortStableFunc(categories, func(a, b Category) int {
		return b.Amount.Cmp(a.Amount)
	})
}

func sortDays(days []Day) {
	slices.SortFunc(days, func(a, b Day) int {
		return a.Date.Compare(b.Date)
	})
}
