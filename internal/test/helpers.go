// Package test contains helpers for tests that need a database or
// make HTTP requests against the router.
package test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/cycle-ledger/backend/internal/auth"
	"github.com/cycle-ledger/backend/internal/controllers"
	"github.com/cycle-ledger/backend/internal/httputil"
	"github.com/cycle-ledger/backend/internal/mail"
	"github.com/cycle-ledger/backend/internal/router"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// BaseURL is the URL the router is configured with in tests.
const BaseURL = "http://example.com"

// JWTSecret signs the session tokens in tests.
const JWTSecret = "a-secret-for-tests-only-0123456789"

// TmpFile returns the path to a unique file to be used in tests
func TmpFile(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String())
}

// Outbox records all mails sent by the controller returned by Controller.
var Outbox = &Mailer{}

// Mailer records messages instead of sending them. If Err is set,
// Send fails with it.
type Mailer struct {
	mu       sync.Mutex
	Err      error
	messages []mail.Message
}

func (m *Mailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	m.messages = append(m.messages, msg)
	return nil
}

// Messages returns all recorded messages.
func (m *Mailer) Messages() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]mail.Message(nil), m.messages...)
}

// Reset removes all recorded messages and the error.
func (m *Mailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = nil
	m.Err = nil
}

// Controller returns the controller used by Request.
func Controller() controllers.Controller {
	return controllers.Controller{
		Tokens: auth.NewIssuer(JWTSecret, time.Hour),
		Mailer: Outbox,
	}
}

// AuthCookie returns the headers for a request authenticated as the user.
func AuthCookie(t *testing.T, userID uuid.UUID, email string) map[string]string {
	token, err := Controller().Tokens.Issue(userID, email)
	require.Nil(t, err, "Session token could not be issued")

	return map[string]string{"Cookie": auth.CookieName + "=" + token}
}

// Request is a helper method to simplify making a HTTP request for tests.
//
// Bodies that are url.Values are sent as form, all other structs, maps
// and slices are sent as JSON.
func Request(t *testing.T, method, reqURL string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	return RequestWith(t, Controller(), method, reqURL, body, headers...)
}

// RequestWith makes the request against a router using co.
func RequestWith(t *testing.T, co controllers.Controller, method, reqURL string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	var byteBuffer *bytes.Buffer
	contentType := ""

	switch b := body.(type) {
	case nil:
		byteBuffer = &bytes.Buffer{}
	case string:
		byteBuffer = bytes.NewBufferString(b)
	case url.Values:
		byteBuffer = bytes.NewBufferString(b.Encode())
		contentType = "application/x-www-form-urlencoded"
	default:
		kind := reflect.TypeOf(body).Kind()
		if kind != reflect.Struct && kind != reflect.Map && kind != reflect.Slice {
			assert.FailNow(t, "Request body must be a string, url.Values, struct, map or slice")
		}

		byteStr, err := json.Marshal(body)
		if err != nil {
			assert.FailNow(t, "Request body could not be marshalled from struct input", err)
		}
		byteBuffer = bytes.NewBuffer(byteStr)
		contentType = "application/json"
	}

	baseURL, _ := url.Parse(BaseURL)

	r, teardown, err := router.Config(baseURL, router.Options{})
	defer teardown()

	if err != nil {
		assert.FailNow(t, "Router could not be initialized", err)
	}
	router.AttachRoutes(co, r.Group("/"))

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest(method, reqURL, byteBuffer)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	for _, headerMap := range headers {
		for header, value := range headerMap {
			req.Header.Set(header, value)
		}
	}

	r.ServeHTTP(recorder, req)

	return *recorder
}

// DecodeResponse decodes an HTTP response into a target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.Unmarshal(r.Body.Bytes(), &target)
	if err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v', Request ID: %s", r.Body, reflect.TypeOf(target), err, r.Result().Header.Get("x-request-id"))
	}
}

// DecodeError returns the error message of a JSON error response.
func DecodeError(t *testing.T, body []byte) string {
	var e httputil.HTTPError
	if err := json.Unmarshal(body, &e); err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse error response %q: %v", string(body), err)
	}

	return e.Error
}

// AssertHTTPStatus verifies that the HTTP response status is correct
func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expectedStatus ...int) {
	require.Contains(t, expectedStatus, r.Code, "HTTP status is wrong. Request ID: '%s' Response body: %s", r.Result().Header.Get("x-request-id"), r.Body.String())
}

// AssertRedirect verifies that the response redirects to path. The query
// string of the location is ignored.
func AssertRedirect(t *testing.T, r *httptest.ResponseRecorder, path string) *url.URL {
	AssertHTTPStatus(t, r, http.StatusSeeOther, http.StatusFound)

	location, err := url.Parse(r.Header().Get("Location"))
	require.Nil(t, err, "Location header is not a valid URL")
	assert.Equal(t, path, location.Path, "Redirect target is wrong. Response body: %s", r.Body.String())

	return location
}
