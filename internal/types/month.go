// Package types implements special types for Cycle Ledger.
package types

import (
	"fmt"
	"time"
)

// Month is a month in a specific year.
//
// It is always set to 00:00 UTC on the first of the month.
type Month time.Time

// NewMonth returns a new Month. Months outside of 1-12 are normalized,
// e.g. month 13 of 2023 is January 2024.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a Date lies.
func MonthOf(d Date) Month {
	return NewMonth(d.Year(), d.Month())
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, err
	}

	return NewMonth(t.Year(), t.Month()), nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year(), m.Month())
}

// Year returns the year of the month.
func (m Month) Year() int {
	return time.Time(m).Year()
}

// Month returns the month of the year.
func (m Month) Month() time.Month {
	return time.Time(m).Month()
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return NewMonth(m.Year()+years, m.Month()+time.Month(months))
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	// Day 0 of the next month is the last day of this month
	return time.Date(m.Year(), m.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Day returns the date for a day of the month. Days beyond the end of the
// month are clamped to the last day of the month, days before the first
// are clamped to the first.
func (m Month) Day(day int) Date {
	day = max(1, min(day, m.Days()))
	return NewDate(m.Year(), m.Month(), day)
}

// Compare returns -1 if m is before n, 0 if they are the same month and +1 if m is after n.
//
// Only year and month are compared.
func (m Month) Compare(n Month) int {
	switch {
	case m.Year() < n.Year():
		return -1
	case m.Year() > n.Year():
		return 1
	case m.Month() < n.Month():
		return -1
	case m.Month() > n.Month():
		return 1
	}

	return 0
}

// Before reports whether the month m is before n.
func (m Month) Before(n Month) bool {
	return m.Compare(n) < 0
}

// After reports whether the month m is after n.
func (m Month) After(n Month) bool {
	return m.Compare(n) > 0
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return m.Compare(n) == 0
}

// Contains reports whether the date is in the month.
func (m Month) Contains(d Date) bool {
	return d.Year() == m.Year() && d.Month() == m.Month()
}
