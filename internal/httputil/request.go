package httputil

import (
	"errors"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestHost returns the scheme, host and prefix of the request.
//
// The scheme defaults to http and only switches to https
// if the x-forwarded-proto header is set to "https".
func RequestHost(c *gin.Context) string {
	scheme := "http"
	if c.Request.Header.Get("x-forwarded-proto") == "https" {
		scheme = "https"
	}

	// We can reasonably expect a reverse proxy to set x-forwarded-host
	// as it is a de-facto standard.
	//
	// If it is set, we use it to construct the links and use the
	// x-forwarded-prefix header as prefix.
	host := c.Request.Host
	var forwardedPrefix string

	xForwardedHost := c.Request.Header.Get("x-forwarded-host")
	if xForwardedHost != "" {
		host = xForwardedHost
		forwardedPrefix = c.Request.Header.Get("x-forwarded-prefix")
	}

	return scheme + "://" + host + forwardedPrefix
}

// UUIDParam parses the URI parameter param as UUID.
func UUIDParam(c *gin.Context, param string) (uuid.UUID, error) {
	return UUIDFromString(c.Param(param))
}

// UUIDFromString parses s as UUID. The empty string is uuid.Nil.
func UUIDFromString(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}

	return id, nil
}

// WithFlash returns path with a flash message in the query string.
//
// kind is either "success" or "error".
func WithFlash(path, kind, message string) string {
	u, err := url.Parse(path)
	if err != nil {
		return path
	}

	q := u.Query()
	q.Set(kind, message)
	u.RawQuery = q.Encode()

	return u.String()
}

// Flash reads the flash messages from the query string.
func Flash(c *gin.Context) (success, failure string) {
	return c.Query("success"), c.Query("error")
}

// IsUUIDError reports whether err is a UUID parsing error.
func IsUUIDError(err error) bool {
	return errors.Is(err, ErrInvalidUUID)
}
