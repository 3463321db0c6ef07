// Package controllers implements the HTML pages and the JSON API.
package controllers

import (
	"errors"
	"net/http"

	"github.com/cycle-ledger/backend/internal/apperror"
	"github.com/cycle-ledger/backend/internal/auth"
	"github.com/cycle-ledger/backend/internal/httputil"
	"github.com/cycle-ledger/backend/internal/mail"
	"github.com/cycle-ledger/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// contextUser is the gin context key of the authenticated user.
const contextUser = "cl-user"

// Controller holds the dependencies of the handlers.
type Controller struct {
	Tokens       *auth.Issuer
	Mailer       mail.Sender
	CookieSecure bool
}

// authenticate returns the verified user of the session cookie.
func (co Controller) authenticate(c *gin.Context) (models.User, error) {
	token, _ := c.Cookie(auth.CookieName)

	claims, err := co.Tokens.Verify(token)
	if err != nil {
		return models.User{}, err
	}

	user, err := models.UserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return models.User{}, apperror.Unauthenticated("the user does not exist")
		}
		return models.User{}, err
	}

	if !user.Verified {
		return models.User{}, apperror.Unauthenticated("the email address has not been verified")
	}

	return user, nil
}

// RequireUser redirects to the login page unless the request has a valid session.
func (co Controller) RequireUser(c *gin.Context) {
	user, err := co.authenticate(c)
	if err != nil {
		if httputil.Status(err) == http.StatusUnauthorized {
			co.clearCookie(c)
			c.Redirect(http.StatusSeeOther, "/auth/login")
			c.Abort()
			return
		}

		co.renderError(c, err)
		return
	}

	c.Set(contextUser, user)
	c.Next()
}

// RequireAPIUser responds with 401 unless the request has a valid session.
func (co Controller) RequireAPIUser(c *gin.Context) {
	user, err := co.authenticate(c)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.Set(contextUser, user)
	c.Next()
}

// OptionalUser sets the user if the request has a valid session.
func (co Controller) OptionalUser(c *gin.Context) {
	if user, err := co.authenticate(c); err == nil {
		c.Set(contextUser, user)
	}
	c.Next()
}

// currentUser returns the user set by one of the authentication middlewares.
func currentUser(c *gin.Context) (models.User, bool) {
	value, ok := c.Get(contextUser)
	if !ok {
		return models.User{}, false
	}

	user, ok := value.(models.User)
	return user, ok
}

func mustUser(c *gin.Context) models.User {
	return c.MustGet(contextUser).(models.User)
}

func (co Controller) setCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, int(co.Tokens.TTL().Seconds()), "/", "", co.CookieSecure, true)
}

func (co Controller) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, "", -1, "/", "", co.CookieSecure, true)
}

// page returns the data shared by all templates.
func page(c *gin.Context, title string) gin.H {
	success, failure := httputil.Flash(c)
	data := gin.H{
		"Title":   title,
		"Success": success,
		"Error":   failure,
	}

	if user, ok := currentUser(c); ok {
		data["User"] = user
	}

	return data
}

// render writes an HTML page with the shared data merged into data.
func render(c *gin.Context, status int, name, title string, data gin.H) {
	h := page(c, title)
	for k, v := range data {
		h[k] = v
	}

	c.HTML(status, name, h)
}

// renderError shows the error page and aborts the request.
func (co Controller) renderError(c *gin.Context, err error) {
	status := httputil.Status(err)
	render(c, status, "error.html", http.StatusText(status), gin.H{
		"Status":  status,
		"Message": httputil.Message(c, err),
	})
	c.Abort()
}

// redirect sends the client to path with a flash message.
func redirect(c *gin.Context, path, kind, message string) {
	if message != "" {
		path = httputil.WithFlash(path, kind, message)
	}
	c.Redirect(http.StatusSeeOther, path)
}

// ledger returns the ledger from the :id parameter if it belongs to the user.
//
// On failure, the error page is rendered and ok is false.
func (co Controller) ledger(c *gin.Context) (models.Ledger, bool) {
	id, err := httputil.UUIDParam(c, "id")
	if err != nil {
		co.renderError(c, err)
		return models.Ledger{}, false
	}

	ledger, err := models.LedgerOf(mustUser(c).ID, id)
	if err != nil {
		co.renderError(c, err)
		return models.Ledger{}, false
	}

	return ledger, true
}
