package controllers

import (
	"net/http"

	"github.com/cycle-ledger/backend/internal/httputil"
	"github.com/cycle-ledger/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			Healthz
// @Success		204
// @Failure		503	{object}	httputil.HTTPError
// @Router			/healthz [get]
func GetHealthz(c *gin.Context) {
	if err := models.Ping(); err != nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, httputil.HTTPError{Error: httputil.Message(c, err)})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Healthz
// @Success		204
// @Router			/healthz [options]
func OptionsHealthz(c *gin.Context) {
	httputil.OptionsGet(c)
}
