// Package apperror defines the error kinds shared by the cycle calculator,
// the aggregator and the web layer.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error.
type Kind int

const (
	InvalidConfiguration Kind = iota + 1
	InvalidDateRange
	NotFound
	Unauthorized
)

func (k Kind) String() string {
	switch k {
	case InvalidConfiguration:
		return "invalid configuration"
	case InvalidDateRange:
		return "invalid date range"
	case NotFound:
		return "not found"
	case Unauthorized:
		return "unauthorized"
	}

	return "unknown"
}

// Sentinels for use with errors.Is. Any *Error matches the sentinel of its Kind.
var (
	ErrInvalidConfiguration = &Error{Kind: InvalidConfiguration}
	ErrInvalidDateRange     = &Error{Kind: InvalidDateRange}
	ErrNotFound             = &Error{Kind: NotFound}
	ErrUnauthorized         = &Error{Kind: Unauthorized}
)

// Error is a classified error with the context needed to render a message.
//
// Only the fields relevant for the Kind are set.
type Error struct {
	Kind Kind

	// InvalidConfiguration
	Field string
	Value any

	// NotFound
	Resource string
	ID       string

	// InvalidDateRange, dates formatted as YYYY-MM-DD
	Start string
	End   string

	// Free text detail, used by Unauthorized and as a fallback
	Reason string
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidConfiguration:
		if e.Field == "" {
			return "invalid configuration"
		}
		if e.Reason != "" {
			return fmt.Sprintf("invalid configuration: %s is %v, %s", e.Field, e.Value, e.Reason)
		}
		return fmt.Sprintf("invalid configuration: %s is %v", e.Field, e.Value)

	case InvalidDateRange:
		if e.Start == "" && e.End == "" {
			return "invalid date range"
		}
		return fmt.Sprintf("invalid date range: end %s is before start %s", e.End, e.Start)

	case NotFound:
		switch {
		case e.Resource == "":
			return "resource not found"
		case e.ID == "":
			return fmt.Sprintf("there is no %s matching your query", e.Resource)
		}
		return fmt.Sprintf("there is no %s with ID %s", e.Resource, e.ID)

	case Unauthorized:
		if e.Reason == "" {
			return "unauthorized"
		}
		return "unauthorized: " + e.Reason
	}

	return e.Reason
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Kind == e.Kind
}

// Configuration returns an InvalidConfiguration error for field.
func Configuration(field string, value any, reason string) *Error {
	return &Error{Kind: InvalidConfiguration, Field: field, Value: value, Reason: reason}
}

// DateRange returns an InvalidDateRange error for the given boundaries.
func DateRange(start, end fmt.Stringer) *Error {
	return &Error{Kind: InvalidDateRange, Start: start.String(), End: end.String()}
}

// Missing returns a NotFound error for a resource. id may be empty.
func Missing(resource, id string) *Error {
	return &Error{Kind: NotFound, Resource: resource, ID: id}
}

// Unauthenticated returns an Unauthorized error.
func Unauthenticated(reason string) *Error {
	return &Error{Kind: Unauthorized, Reason: reason}
}

// Status returns the HTTP status code for err.
//
// Errors that are not an *Error are reported as 500.
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}

	switch e.Kind {
	case InvalidConfiguration, InvalidDateRange:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	}

	return http.StatusInternalServerError
}
