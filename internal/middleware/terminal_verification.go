package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/metro-ticketing/internal/database"
	"github.com/smarttransit/metro-ticketing/internal/models"
)

// TerminalLookup loads a registered terminal
type TerminalLookup interface {
	GetByID(ctx context.Context, id string) (*models.Terminal, error)
}

// RequireActiveTerminal rejects tokens whose terminal was disabled or moved
// to another station after the token was issued.
// Must be used after AuthMiddleware to have the terminal context available
func RequireActiveTerminal(terminals TerminalLookup, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		terminalCtx, exists := GetTerminalContext(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Terminal context not found",
				"code":    "MISSING_TERMINAL_CONTEXT",
			})
			c.Abort()
			return
		}

		terminal, err := terminals.GetByID(c.Request.Context(), terminalCtx.TerminalID)
		if errors.Is(err, database.ErrTerminalNotFound) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "terminal_not_registered",
				"message": "Terminal is not registered",
				"code":    "TERMINAL_NOT_REGISTERED",
			})
			c.Abort()
			return
		}
		if err != nil {
			logger.WithError(err).WithField("terminal_id", terminalCtx.TerminalID).Error("Failed to load terminal for verification")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal_error",
				"message": "Failed to verify terminal",
				"code":    "INTERNAL_ERROR",
			})
			c.Abort()
			return
		}

		if !terminal.IsActive {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "terminal_disabled",
				"message": "Terminal is disabled",
				"code":    "TERMINAL_DISABLED",
			})
			c.Abort()
			return
		}

		if !strings.EqualFold(terminal.Station, terminalCtx.Station) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "terminal_moved",
				"message": "Terminal is registered at another station, please log in again",
				"code":    "TERMINAL_MOVED",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
