package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	journaldomain "github.com/sunugrid/voltara/internal/journal/domain"
	meterdomain "github.com/sunugrid/voltara/internal/meter/domain"
	purchasedomain "github.com/sunugrid/voltara/internal/purchase/domain"
	tariffdomain "github.com/sunugrid/voltara/internal/tariff/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// envelope is the uniform response body. Code carries the HTTP status so
// terminal clients reading only the body can still branch on the outcome.
type envelope struct {
	Data    interface{} `json:"data"`
	Code    int         `json:"code"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

func respondOK(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, envelope{
		Data:    data,
		Code:    http.StatusOK,
		Status:  statusSuccess,
		Message: message,
	})
}

func respondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, envelope{
		Data:    data,
		Code:    http.StatusCreated,
		Status:  statusSuccess,
		Message: message,
	})
}

func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, envelope{
		Data:    nil,
		Code:    code,
		Status:  statusError,
		Message: message,
	})
}

// respondDomainError maps service errors onto HTTP statuses. Unrecognized
// errors are infrastructure failures and never leak their detail.
func (s *Server) respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, meterdomain.ErrNotFound),
		errors.Is(err, tariffdomain.ErrNotFound),
		errors.Is(err, purchasedomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		respondError(c, http.StatusNotFound, "not found")
	case errors.Is(err, meterdomain.ErrDuplicate),
		errors.Is(err, tariffdomain.ErrDuplicateOrdinal):
		respondError(c, http.StatusConflict, "already exists")
	case errors.Is(err, meterdomain.ErrInvalidIdentifier),
		errors.Is(err, meterdomain.ErrInvalidClient),
		errors.Is(err, meterdomain.ErrInvalidStatus),
		errors.Is(err, meterdomain.ErrInvalidDelta),
		errors.Is(err, tariffdomain.ErrInvalidOrdinal),
		errors.Is(err, tariffdomain.ErrInvalidBounds),
		errors.Is(err, tariffdomain.ErrInvalidUnitPrice),
		errors.Is(err, tariffdomain.ErrInvalidSchedule),
		errors.Is(err, purchasedomain.ErrInvalidReference),
		errors.Is(err, journaldomain.ErrInvalidRange):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		s.log.Error("request failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}

// purchaseFailureStatus maps a recorded business failure to the HTTP status
// the vending terminals expect.
func purchaseFailureStatus(reason purchasedomain.FailureReason) (int, string) {
	switch reason {
	case purchasedomain.ReasonMeterNotFound:
		return http.StatusNotFound, "meter not found"
	case purchasedomain.ReasonMeterInactive:
		return http.StatusBadRequest, "meter is not active"
	case purchasedomain.ReasonInvalidArgument:
		return http.StatusBadRequest, "invalid purchase request"
	case purchasedomain.ReasonNoApplicableTariff:
		return http.StatusInternalServerError, "no applicable tariff"
	default:
		return http.StatusInternalServerError, "purchase failed"
	}
}
