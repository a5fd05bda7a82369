package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/metro-ticketing/internal/services"
	"github.com/smarttransit/metro-ticketing/pkg/validator"
)

// ReportsHandler serves income reports to admin terminals
type ReportsHandler struct {
	ticketing *services.TicketingService
	validator *validator.SerialValidator
	logger    *logrus.Logger
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(ticketing *services.TicketingService, v *validator.SerialValidator, logger *logrus.Logger) *ReportsHandler {
	return &ReportsHandler{
		ticketing: ticketing,
		validator: v,
		logger:    logger,
	}
}

// Income handles GET /api/v1/reports/income
func (h *ReportsHandler) Income(c *gin.Context) {
	c.JSON(http.StatusOK, h.ticketing.IncomeReport())
}

// StationIncome handles GET /api/v1/reports/stations/:name/income
func (h *ReportsHandler) StationIncome(c *gin.Context) {
	name, err := h.validator.ValidateStation(c.Param("name"))
	if err != nil {
		validationError(c, err.Error())
		return
	}

	report, err := h.ticketing.StationIncome(name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
