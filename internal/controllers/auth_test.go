package controllers_test

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/cycle-ledger/backend/internal/auth"
	"github.com/cycle-ledger/backend/internal/models"
	"github.com/cycle-ledger/backend/internal/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func registerForm(email, password, confirm string) url.Values {
	return url.Values{
		"email":            {email},
		"username":         {"Jane"},
		"password":         {password},
		"confirm_password": {confirm},
	}
}

func (suite *TestSuiteStandard) TestAuthPages() {
	for _, path := range []string{"/", "/auth/login", "/auth/register"} {
		r := test.Request(suite.T(), http.MethodGet, path, nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
		suite.Assert().Contains(r.Body.String(), "Cycle Ledger", path)
	}
}

func (suite *TestSuiteStandard) TestAuthPagesLoggedIn() {
	_, headers := suite.createTestUser("jane@example.com")

	for _, path := range []string{"/", "/auth/login", "/auth/register"} {
		r := test.Request(suite.T(), http.MethodGet, path, nil, headers)
		test.AssertRedirect(suite.T(), &r, "/dashboard")
	}
}

func (suite *TestSuiteStandard) TestRegister() {
	r := test.Request(suite.T(), http.MethodPost, "/auth/register", registerForm("Jane@Example.com", "secret", "secret"))
	location := test.AssertRedirect(suite.T(), &r, "/auth/login")
	suite.Assert().NotEmpty(location.Query().Get("success"))

	user, err := models.UserByEmail("jane@example.com")
	suite.Require().Nil(err)
	suite.Assert().False(user.Verified)
	suite.Require().NotNil(user.VerificationToken)
	suite.Assert().Nil(auth.CheckPassword(user.PasswordHash, "secret"))

	messages := test.Outbox.Messages()
	suite.Require().Len(messages, 1)
	suite.Assert().Equal("jane@example.com", messages[0].To)
	suite.Assert().Contains(messages[0].Body, test.BaseURL+"/auth/verify/"+*user.VerificationToken)
}

func (suite *TestSuiteStandard) TestRegisterMailFailure() {
	co := test.Controller()
	co.Mailer = &test.Mailer{Err: errors.New("smtp is down")}

	r := test.RequestWith(suite.T(), co, http.MethodPost, "/auth/register", registerForm("jane@example.com", "secret", "secret"))
	test.AssertRedirect(suite.T(), &r, "/auth/login")

	_, err := models.UserByEmail("jane@example.com")
	suite.Assert().Nil(err, "User must be created even if the mail cannot be sent")
}

func (suite *TestSuiteStandard) TestRegisterInvalid() {
	suite.createTestUser("taken@example.com")

	tests := []struct {
		name    string
		form    url.Values
		message string
	}{
		{"Password too short", registerForm("jane@example.com", "short", "short"), "Password must be at least 6"},
		{"Passwords differ", registerForm("jane@example.com", "secret", "secrets"), "ConfirmPassword must match Password"},
		{"Invalid email", registerForm("jane", "secret", "secret"), "Invalid email format"},
		{"Email in use", registerForm("Taken@example.com", "secret", "secret"), "already registered"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "/auth/register", tt.form)
			location := test.AssertRedirect(t, &r, "/auth/register")
			assert.Contains(t, location.Query().Get("error"), tt.message)
		})
	}

	suite.Assert().Empty(test.Outbox.Messages())
}

func (suite *TestSuiteStandard) TestLogin() {
	suite.createTestUser("jane@example.com")

	r := test.Request(suite.T(), http.MethodPost, "/auth/login", url.Values{
		"email":    {"JANE@example.com"},
		"password": {testPassword},
	})
	test.AssertRedirect(suite.T(), &r, "/dashboard")

	var token string
	for _, cookie := range r.Result().Cookies() {
		if cookie.Name == auth.CookieName {
			token = cookie.Value
			suite.Assert().True(cookie.HttpOnly)
			suite.Assert().Equal(http.SameSiteLaxMode, cookie.SameSite)
		}
	}
	suite.Require().NotEmpty(token)

	// The cookie opens the dashboard
	r = test.Request(suite.T(), http.MethodGet, "/dashboard", nil, map[string]string{"Cookie": auth.CookieName + "=" + token})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestLoginFailures() {
	suite.createTestUser("jane@example.com")

	unverified := models.User{Email: "new@example.com", Username: "New"}
	hash, _ := auth.HashPassword(testPassword)
	unverified.PasswordHash = hash
	suite.Require().Nil(models.CreateUser(&unverified))

	tests := []struct {
		name     string
		email    string
		password string
		message  string
	}{
		{"Wrong password", "jane@example.com", "wrong-password", "Invalid email or password"},
		{"Unknown user", "nobody@example.com", testPassword, "Invalid email or password"},
		{"Unverified", "new@example.com", testPassword, "verify your email"},
		{"Missing password", "jane@example.com", "", "Password is required"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "/auth/login", url.Values{"email": {tt.email}, "password": {tt.password}})
			location := test.AssertRedirect(t, &r, "/auth/login")
			assert.Contains(t, location.Query().Get("error"), tt.message)
			assert.Empty(t, r.Result().Cookies())
		})
	}
}

func (suite *TestSuiteStandard) TestLogout() {
	_, headers := suite.createTestUser("jane@example.com")

	r := test.Request(suite.T(), http.MethodPost, "/auth/logout", nil, headers)
	test.AssertRedirect(suite.T(), &r, "/auth/login")

	cookies := r.Result().Cookies()
	suite.Require().Len(cookies, 1)
	suite.Assert().Equal(auth.CookieName, cookies[0].Name)
	suite.Assert().Empty(cookies[0].Value)
	suite.Assert().True(cookies[0].MaxAge < 0)
}

func (suite *TestSuiteStandard) TestVerify() {
	r := test.Request(suite.T(), http.MethodPost, "/auth/register", registerForm("jane@example.com", "secret", "secret"))
	test.AssertRedirect(suite.T(), &r, "/auth/login")

	user, err := models.UserByEmail("jane@example.com")
	suite.Require().Nil(err)
	token := *user.VerificationToken

	r = test.Request(suite.T(), http.MethodGet, "/auth/verify/"+token, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().Contains(r.Body.String(), "has been verified")

	user, err = models.UserByEmail("jane@example.com")
	suite.Require().Nil(err)
	suite.Assert().True(user.Verified)
	suite.Assert().Nil(user.VerificationToken)

	// A token can only be used once
	r = test.Request(suite.T(), http.MethodGet, "/auth/verify/"+token, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	suite.Assert().Contains(r.Body.String(), "invalid or has already been used")
}

func (suite *TestSuiteStandard) TestResendVerification() {
	r := test.Request(suite.T(), http.MethodPost, "/auth/register", registerForm("jane@example.com", "secret", "secret"))
	test.AssertRedirect(suite.T(), &r, "/auth/login")

	before, err := models.UserByEmail("jane@example.com")
	suite.Require().Nil(err)

	r = test.Request(suite.T(), http.MethodPost, "/auth/resend-verification", url.Values{"email": {"jane@example.com"}})
	location := test.AssertRedirect(suite.T(), &r, "/auth/login")
	suite.Assert().NotEmpty(location.Query().Get("success"))

	after, err := models.UserByEmail("jane@example.com")
	suite.Require().Nil(err)
	suite.Require().NotNil(after.VerificationToken)
	suite.Assert().NotEqual(*before.VerificationToken, *after.VerificationToken)

	messages := test.Outbox.Messages()
	suite.Require().Len(messages, 2)
	suite.Assert().True(strings.Contains(messages[1].Body, *after.VerificationToken))
}

func (suite *TestSuiteStandard) TestResendVerificationUnknownOrVerified() {
	suite.createTestUser("jane@example.com")

	for _, email := range []string{"jane@example.com", "nobody@example.com"} {
		r := test.Request(suite.T(), http.MethodPost, "/auth/resend-verification", url.Values{"email": {email}})
		location := test.AssertRedirect(suite.T(), &r, "/auth/login")
		suite.Assert().NotEmpty(location.Query().Get("success"))
	}

	suite.Assert().Empty(test.Outbox.Messages())
}

func (suite *TestSuiteStandard) TestRequireUser() {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"No cookie", map[string]string{}},
		{"Invalid token", map[string]string{"Cookie": auth.CookieName + "=not-a-token"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "/dashboard", nil, tt.headers)
			test.AssertRedirect(t, &r, "/auth/login")
		})
	}

	// Users that have been deleted from the database
	r := test.Request(suite.T(), http.MethodGet, "/ledgers", nil, test.AuthCookie(suite.T(), uuid.New(), "gone@example.com"))
	test.AssertRedirect(suite.T(), &r, "/auth/login")
}
