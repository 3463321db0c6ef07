package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cycle-ledger/backend/internal/apperror"
	"github.com/cycle-ledger/backend/internal/models"
	"github.com/cycle-ledger/backend/internal/types"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"there is no ledger with ID 65392deb-5e92-4268-b114-297faad6cdce"`
}

// clientErrors are returned by models for invalid input.
var clientErrors = []error{
	ErrInvalidBody,
	ErrRequestBodyEmpty,
	ErrInvalidUUID,
	ErrInvalidDate,
	ErrInvalidAmount,
	ErrInvalidQuery,
	types.ErrTransactionTypeInvalid,
	models.ErrEmailInUse,
	models.ErrEmailInvalid,
	models.ErrLedgerNameLength,
	models.ErrLedgerDescriptionLength,
	models.ErrCurrencyInvalid,
	models.ErrCategoryNameLength,
	models.ErrCategoryHasTransactions,
	models.ErrCategoryInactive,
	models.ErrCategoryTypeMismatch,
	models.ErrCategoryOtherLedger,
	models.ErrAmountNotPositive,
	models.ErrTransactionDateMissing,
	models.ErrTransactionDescriptionLength,
	models.ErrTransactionTagsLength,
}

// Status returns the HTTP status for err.
func Status(err error) int {
	for _, e := range clientErrors {
		if errors.Is(err, e) {
			return http.StatusBadRequest
		}
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return http.StatusBadRequest
	}

	return apperror.Status(err)
}

// Message returns the message for err that is safe to show to users.
//
// Server errors are logged together with the request ID, the message
// only contains the request ID.
func Message(c *gin.Context, err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return ValidationErrorsToText(validationErrors)
	}

	if Status(err) != http.StatusInternalServerError {
		return err.Error()
	}

	if !errors.Is(err, models.ErrGeneral) {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	}

	return fmt.Sprintf("an error occurred on the server during your request, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", requestid.Get(c))
}

// ErrorHandler writes err as JSON response and aborts the request.
func ErrorHandler(c *gin.Context, err error) {
	c.AbortWithStatusJSON(Status(err), HTTPError{Error: Message(c, err)})
}

// BindJSON binds the JSON body of the request to data.
func BindJSON(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		var validationErrors validator.ValidationErrors
		var typeError *json.UnmarshalTypeError
		if errors.As(err, &validationErrors) || errors.As(err, &typeError) {
			return err
		}

		log.Debug().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}
