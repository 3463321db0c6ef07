package router

import (
	"errors"
	"html/template"

	"github.com/cycle-ledger/backend/internal/types"
	"github.com/shopspring/decimal"
)

var templateFuncs = template.FuncMap{
	"money": money,
	"date":  date,
	"dict":  dict,
}

// money formats an amount with two decimal places.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// date formats a date as YYYY-MM-DD. The zero date is empty.
func date(d types.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

// dict builds a map from alternating keys and values so that templates
// can pass more than one value to another template.
func dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, errors.New("dict needs an even number of arguments")
	}

	m := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, errors.New("dict keys must be strings")
		}
		m[key] = values[i+1]
	}

	return m, nil
}
