package httputil

import "errors"

var (
	ErrInvalidBody      = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrRequestBodyEmpty = errors.New("the request body must not be empty")
	ErrInvalidUUID      = errors.New("the specified resource ID is not a valid UUID")
	ErrInvalidDate      = errors.New("dates must be given in YYYY-MM-DD format")
	ErrInvalidAmount    = errors.New("the amount must be a decimal number")
	ErrInvalidQuery     = errors.New("the query string contains invalid values")
)
