// Package cycle resolves monthly billing cycles that start on an arbitrary
// day of the month.
//
// A cycle with start day 31 starts on the last day of every month that has
// fewer than 31 days. Every cycle ends one day before the next one starts,
// so cycles tile the calendar without gaps or overlaps.
package cycle

import (
	"github.com/cycle-ledger/backend/internal/apperror"
	"github.com/cycle-ledger/backend/internal/types"
)

const (
	MinStartDay = 1
	MaxStartDay = 31
)

// Range is an inclusive date range.
type Range struct {
	Start types.Date `json:"start" example:"2024-01-25"`
	End   types.Date `json:"end" example:"2024-02-24"`
}

// NewRange returns the range [start, end]. It fails with an
// InvalidDateRange error if end is before start.
func NewRange(start, end types.Date) (Range, error) {
	if end.Before(start) {
		return Range{}, apperror.DateRange(start, end)
	}

	return Range{Start: start, End: end}, nil
}

// Days returns the number of days in the range, counting both ends.
func (r Range) Days() int {
	return r.Start.DaysUntil(r.End) + 1
}

// Contains reports whether d lies within the range.
func (r Range) Contains(d types.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Overlaps reports whether the ranges share at least one day.
func (r Range) Overlaps(o Range) bool {
	return !r.End.Before(o.Start) && !o.End.Before(r.Start)
}

func (r Range) String() string {
	return r.Start.String() + " - " + r.End.String()
}

// ValidateStartDay returns an InvalidConfiguration error if day is not
// a day of month number.
func ValidateStartDay(day int) error {
	if day < MinStartDay || day > MaxStartDay {
		return apperror.Configuration("cycle_start_day", day, "must be between 1 and 31")
	}

	return nil
}

// startIn returns the first day of the cycle that begins in month m.
func startIn(m types.Month, startDay int) types.Date {
	return m.Day(startDay)
}

// Resolve returns the cycle containing ref.
func Resolve(ref types.Date, startDay int) (Range, error) {
	if err := ValidateStartDay(startDay); err != nil {
		return Range{}, err
	}

	month := types.MonthOf(ref)
	candidate := startIn(month, startDay)

	if ref.Before(candidate) {
		return Range{
			Start: startIn(month.AddDate(0, -1), startDay),
			End:   candidate.AddDays(-1),
		}, nil
	}

	return Range{
		Start: candidate,
		End:   startIn(month.AddDate(0, 1), startDay).AddDays(-1),
	}, nil
}

// Current returns the cycle containing today's date.
func Current(startDay int) (Range, error) {
	return Resolve(types.Today(), startDay)
}

// Span returns the last n cycles up to and including the cycle containing
// ref, as a single range. n values below 1 are treated as 1.
func Span(ref types.Date, startDay, n int) (Range, error) {
	last, err := Label(ref, startDay)
	if err != nil {
		return Range{}, err
	}

	n = max(1, n)
	first := PeriodKey{Month: last.Month.AddDate(0, -(n - 1)), StartDay: startDay}

	return Range{
		Start: first.Range().Start,
		End:   last.Range().End,
	}, nil
}

// Periods returns the keys of all cycles overlapping r in ascending order.
func Periods(r Range, startDay int) ([]PeriodKey, error) {
	first, err := Label(r.Start, startDay)
	if err != nil {
		return nil, err
	}

	last, err := Label(r.End, startDay)
	if err != nil {
		return nil, err
	}

	var keys []PeriodKey
	for k := first; !last.Before(k); k = k.Next() {
		keys = append(keys, k)
	}

	return keys, nil
}
