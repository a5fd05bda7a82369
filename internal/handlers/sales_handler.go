package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/metro-ticketing/internal/middleware"
	"github.com/smarttransit/metro-ticketing/internal/models"
	"github.com/smarttransit/metro-ticketing/internal/services"
	"github.com/smarttransit/metro-ticketing/pkg/validator"
)

// SalesHandler sells tickets and passes at the logged-in terminal's station
type SalesHandler struct {
	ticketing *services.TicketingService
	validator *validator.SerialValidator
	logger    *logrus.Logger
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(ticketing *services.TicketingService, v *validator.SerialValidator, logger *logrus.Logger) *SalesHandler {
	return &SalesHandler{
		ticketing: ticketing,
		validator: v,
		logger:    logger,
	}
}

// seller returns the station office the terminal sells for
func seller(c *gin.Context) (services.Seller, bool) {
	terminal, exists := middleware.GetTerminalContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Terminal context not found",
			Code:    "MISSING_TERMINAL_CONTEXT",
		})
		return services.Seller{}, false
	}
	return services.Seller{Station: terminal.Station, TerminalID: terminal.TerminalID}, true
}

// SellTicket handles POST /api/v1/tickets
func (h *SalesHandler) SellTicket(c *gin.Context) {
	seller, ok := seller(c)
	if !ok {
		return
	}

	var req models.SellTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "Invalid request body")
		return
	}

	from, err := h.validator.ValidateStation(req.From)
	if err != nil {
		validationError(c, "from: "+err.Error())
		return
	}
	to, err := h.validator.ValidateStation(req.To)
	if err != nil {
		validationError(c, "to: "+err.Error())
		return
	}

	response, err := h.ticketing.SellTicket(c.Request.Context(), seller, from, to, req.SaleDate)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// SellPass handles POST /api/v1/passes
func (h *SalesHandler) SellPass(c *gin.Context) {
	seller, ok := seller(c)
	if !ok {
		return
	}

	req, ok := bindPassRequest(c)
	if !ok {
		return
	}

	response, err := h.ticketing.SellPass(c.Request.Context(), seller, req.SaleDate)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// RenewPass handles POST /api/v1/passes/:serial/renew
func (h *SalesHandler) RenewPass(c *gin.Context) {
	seller, ok := seller(c)
	if !ok {
		return
	}

	serial, err := h.validator.Validate(c.Param("serial"))
	if err != nil {
		validationError(c, err.Error())
		return
	}

	req, ok := bindPassRequest(c)
	if !ok {
		return
	}

	response, err := h.ticketing.RenewPass(c.Request.Context(), seller, serial, req.SaleDate)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// PassValidity handles GET /api/v1/passes/:serial/validity?date=
func (h *SalesHandler) PassValidity(c *gin.Context) {
	serial, err := h.validator.Validate(c.Param("serial"))
	if err != nil {
		validationError(c, err.Error())
		return
	}

	var date *models.Date
	if raw := c.Query("date"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			validationError(c, err.Error())
			return
		}
		date = &parsed
	}

	response, err := h.ticketing.CheckPass(serial, date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// bindPassRequest reads an optional body; an empty body sells for today
func bindPassRequest(c *gin.Context) (models.SellPassRequest, bool) {
	var req models.SellPassRequest
	if c.Request.ContentLength == 0 {
		return req, true
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "Invalid request body")
		return req, false
	}
	return req, true
}
