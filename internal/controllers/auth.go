package controllers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/cycle-ledger/backend/internal/apperror"
	"github.com/cycle-ledger/backend/internal/auth"
	"github.com/cycle-ledger/backend/internal/httputil"
	"github.com/cycle-ledger/backend/internal/mail"
	"github.com/cycle-ledger/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type RegisterForm struct {
	Email           string `form:"email" binding:"required,email"`
	Username        string `form:"username" binding:"required,max=50"`
	Password        string `form:"password" binding:"required,min=6"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
}

type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type ResendForm struct {
	Email string `form:"email" binding:"required,email"`
}

const errInvalidCredentials = "Invalid email or password"

// RegisterAuthRoutes registers the routes for authentication.
func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	r.GET("/register", co.RegisterPage)
	r.POST("/register", co.Register)
	r.GET("/login", co.LoginPage)
	r.POST("/login", co.Login)
	r.POST("/logout", co.Logout)
	r.GET("/verify/:token", co.Verify)
	r.POST("/resend-verification", co.ResendVerification)
}

func (co Controller) RegisterPage(c *gin.Context) {
	if _, ok := currentUser(c); ok {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	render(c, http.StatusOK, "register.html", "Register", nil)
}

// Register creates an unverified user and sends the verification email.
//
// A failure to send the email is logged, the registration still succeeds.
func (co Controller) Register(c *gin.Context) {
	var form RegisterForm
	if msg, ok := httputil.BindForm(c, &form); !ok {
		redirect(c, "/auth/register", "error", msg)
		return
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		co.renderError(c, err)
		return
	}

	token := auth.NewVerificationToken()
	user := models.User{
		Email:             form.Email,
		Username:          form.Username,
		PasswordHash:      hash,
		VerificationToken: &token,
	}

	if err := models.CreateUser(&user); err != nil {
		if httputil.Status(err) == http.StatusBadRequest {
			redirect(c, "/auth/register", "error", err.Error())
			return
		}

		co.renderError(c, err)
		return
	}

	co.sendVerification(c, user, token)
	redirect(c, "/auth/login", "success", "Registration successful. Please check your email to verify your account")
}

// sendVerification sends the verification email with a link based on the
// URL set by the router.
func (co Controller) sendVerification(c *gin.Context, user models.User, token string) {
	base, err := url.Parse(c.GetString(string(models.DBContextURL)))
	if err != nil {
		log.Error().Err(err).Msg("Invalid base URL for the verification email")
		return
	}

	msg := mail.VerificationMessage(base, user.Email, user.Username, token)
	if err := co.Mailer.Send(c.Request.Context(), msg); err != nil {
		log.Error().Err(err).Str("user", user.ID.String()).Msg("Sending the verification email failed")
	}
}

func (co Controller) LoginPage(c *gin.Context) {
	if _, ok := currentUser(c); ok {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	render(c, http.StatusOK, "login.html", "Login", nil)
}

// Login checks the credentials and sets the session cookie.
func (co Controller) Login(c *gin.Context) {
	var form LoginForm
	if msg, ok := httputil.BindForm(c, &form); !ok {
		redirect(c, "/auth/login", "error", msg)
		return
	}

	user, err := models.UserByEmail(form.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			redirect(c, "/auth/login", "error", errInvalidCredentials)
			return
		}

		co.renderError(c, err)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, form.Password); err != nil {
		redirect(c, "/auth/login", "error", errInvalidCredentials)
		return
	}

	if !user.Verified {
		redirect(c, "/auth/login", "error", "Please verify your email address before logging in")
		return
	}

	token, err := co.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		co.renderError(c, err)
		return
	}

	co.setCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (co Controller) Logout(c *gin.Context) {
	co.clearCookie(c)
	redirect(c, "/auth/login", "success", "You have been logged out")
}

// Verify marks the email address of the user holding the token as verified.
func (co Controller) Verify(c *gin.Context) {
	user, err := models.UserByVerificationToken(c.Param("token"))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			render(c, http.StatusNotFound, "verify.html", "Email verification", gin.H{
				"Error": "The verification link is invalid or has already been used",
			})
			return
		}

		co.renderError(c, err)
		return
	}

	if err := user.Verify(); err != nil {
		co.renderError(c, err)
		return
	}

	render(c, http.StatusOK, "verify.html", "Email verification", gin.H{
		"Success": "Your email address has been verified. You can now log in",
	})
}

// ResendVerification issues a new verification token for an unverified user.
//
// The response does not reveal whether the address is registered.
func (co Controller) ResendVerification(c *gin.Context) {
	var form ResendForm
	if msg, ok := httputil.BindForm(c, &form); !ok {
		redirect(c, "/auth/login", "error", msg)
		return
	}

	const sent = "If an unverified account exists for this address, a new verification email has been sent"

	user, err := models.UserByEmail(form.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			redirect(c, "/auth/login", "success", sent)
			return
		}

		co.renderError(c, err)
		return
	}

	if !user.Verified {
		token := auth.NewVerificationToken()
		if err := user.SetVerificationToken(token); err != nil {
			co.renderError(c, err)
			return
		}

		co.sendVerification(c, user, token)
	}

	redirect(c, "/auth/login", "success", sent)
}
