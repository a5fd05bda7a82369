package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/metro-ticketing/internal/metro"
	"github.com/smarttransit/metro-ticketing/internal/services"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

var kindStatus = map[string]int{
	metro.KindUnreachable:         http.StatusUnprocessableEntity,
	metro.KindNotFound:            http.StatusNotFound,
	metro.KindInvalidOperation:    http.StatusBadRequest,
	metro.KindCapacityExhausted:   http.StatusConflict,
	metro.KindInvalidConstruction: http.StatusInternalServerError,
}

// respondError maps a service error to its HTTP status and writes it
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var authErr *services.AuthError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: authErr.Reason,
			Code:    "INVALID_CREDENTIALS",
		})
		return
	}

	kind := metro.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		logger.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Internal server error",
			Code:    "INTERNAL_ERROR",
		})
		return
	}

	if status >= http.StatusInternalServerError {
		logger.WithError(err).WithField("path", c.Request.URL.Path).Error("Network is inconsistent")
	}
	c.JSON(status, ErrorResponse{
		Error:   kind,
		Message: err.Error(),
		Code:    strings.ToUpper(kind),
	})
}

func validationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation_error",
		Message: message,
		Code:    "VALIDATION_ERROR",
	})
}
