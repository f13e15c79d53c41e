package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/kalekundert/two-cents/internal/importer"
	"github.com/kalekundert/two-cents/internal/ledger"
	"github.com/kalekundert/two-cents/internal/models"
	"github.com/kalekundert/two-cents/internal/money"
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error"`
}

// NewError writes an error response with the given status.
func NewError(c *gin.Context, status int, err error) {
	c.JSON(status, HTTPError{
		Error: err.Error(),
	})
}

// ErrorHandler maps an error from the models layer to the right HTTP
// status and writes the response.
func ErrorHandler(c *gin.Context, err error) {
	NewError(c, status(c, err), err)
}

// badRequest collects the errors callers can fix by correcting their
// input.
var badRequest = []error{
	money.ErrMoneyFormat,
	money.ErrRateFormat,
	ledger.ErrNoAssignmentGiven,
	ledger.ErrOverassigned,
	ledger.ErrUnderassigned,
	ledger.ErrImplicitShareTooSmall,
	models.ErrBudgetNameNotUnique,
	models.ErrBudgetNameReserved,
	models.ErrBankConnectorNotUnique,
	models.ErrPaymentAlreadyAssigned,
	models.ErrPaymentNotUnique,
	importer.ErrUnknownConnector,
}

func status(c *gin.Context, err error) int {
	switch {
	case errors.Is(err, models.ErrResourceNotFound),
		errors.Is(err, models.ErrBudgetNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound

	case isBadRequest(err):
		return http.StatusBadRequest

	default:
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return http.StatusInternalServerError
	}
}

func isBadRequest(err error) bool {
	for _, candidate := range badRequest {
		if errors.Is(err, candidate) {
			return true
		}
	}

	return false
}
