package cycle

import (
	"github.com/cycle-ledger/backend/internal/types"
)

// PeriodKey identifies a cycle by the month in which it starts.
type PeriodKey struct {
	Month    types.Month
	StartDay int
}

// Label returns the key of the cycle containing d.
func Label(d types.Date, startDay int) (PeriodKey, error) {
	r, err := Resolve(d, startDay)
	if err != nil {
		return PeriodKey{}, err
	}

	return PeriodKey{Month: types.MonthOf(r.Start), StartDay: startDay}, nil
}

// Range returns the boundaries of the cycle.
func (k PeriodKey) Range() Range {
	return Range{
		Start: startIn(k.Month, k.StartDay),
		End:   startIn(k.Month.AddDate(0, 1), k.StartDay).AddDays(-1),
	}
}

// Next returns the key of the following cycle.
func (k PeriodKey) Next() PeriodKey {
	return PeriodKey{Month: k.Month.AddDate(0, 1), StartDay: k.StartDay}
}

// Previous returns the key of the preceding cycle.
func (k PeriodKey) Previous() PeriodKey {
	return PeriodKey{Month: k.Month.AddDate(0, -1), StartDay: k.StartDay}
}

// Compare orders keys chronologically by year, then month.
func (k PeriodKey) Compare(o PeriodKey) int {
	return k.Month.Compare(o.Month)
}

// Before reports whether k is a cycle before o.
func (k PeriodKey) Before(o PeriodKey) bool {
	return k.Compare(o) < 0
}

// String returns the label as YYYY-MM.
func (k PeriodKey) String() string {
	return k.Month.String()
}

// MarshalText implements encoding.TextMarshaler so that keys can be
// used in JSON output.
func (k PeriodKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
