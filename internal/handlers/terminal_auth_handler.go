package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/metro-ticketing/internal/models"
	"github.com/smarttransit/metro-ticketing/internal/services"
	"github.com/smarttransit/metro-ticketing/internal/utils"
)

// TerminalAuthHandler handles cashier terminal authentication
type TerminalAuthHandler struct {
	authService *services.TerminalAuthService
	rateLimiter *services.RateLimitService
	logger      *logrus.Logger
}

// NewTerminalAuthHandler creates a new terminal auth handler. A nil rate
// limiter disables failed-login throttling.
func NewTerminalAuthHandler(authService *services.TerminalAuthService, rateLimiter *services.RateLimitService, logger *logrus.Logger) *TerminalAuthHandler {
	return &TerminalAuthHandler{
		authService: authService,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// Login handles terminal login requests
// @Summary Terminal login
// @Description Authenticate a cashier terminal with its PIN and return an access token bound to its station
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginRequest body models.TerminalLoginRequest true "Terminal credentials"
// @Success 200 {object} models.TerminalLoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/terminal-login [post]
func (h *TerminalAuthHandler) Login(c *gin.Context) {
	var req models.TerminalLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "Invalid request body")
		return
	}

	clientIP := utils.ClientIP(c)
	ctx := c.Request.Context()

	if h.rateLimiter != nil {
		if err := h.rateLimiter.CheckLoginRateLimit(ctx, req.TerminalID, clientIP); err != nil {
			var rateLimitErr *services.RateLimitError
			if errors.As(err, &rateLimitErr) {
				h.logger.WithFields(logrus.Fields{
					"terminal_id": req.TerminalID,
					"ip":          clientIP,
					"type":        rateLimitErr.Type,
				}).Warn("Terminal login rate limited")
				c.Header("Retry-After", strconv.Itoa(int(time.Until(rateLimitErr.RetryAfter).Seconds())+1))
				c.JSON(http.StatusTooManyRequests, ErrorResponse{
					Error:   "rate_limit_exceeded",
					Message: rateLimitErr.Message,
					Code:    "RATE_LIMIT_EXCEEDED",
				})
				return
			}
			respondError(c, h.logger, err)
			return
		}
	}

	response, err := h.authService.Login(ctx, req.TerminalID, req.PIN)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"terminal_id": req.TerminalID,
			"ip":          clientIP,
			"error":       err.Error(),
		}).Warn("Terminal login failed")

		var authErr *services.AuthError
		if h.rateLimiter != nil && errors.As(err, &authErr) {
			if recordErr := h.rateLimiter.RecordFailedLogin(ctx, req.TerminalID, clientIP); recordErr != nil {
				h.logger.WithError(recordErr).Warn("Failed to record failed login")
			}
		}
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
