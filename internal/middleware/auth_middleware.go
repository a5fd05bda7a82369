package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/metro-ticketing/internal/utils"
	"github.com/smarttransit/metro-ticketing/pkg/jwt"
)

// TerminalContextKey is the key used to store terminal information in Gin context
const TerminalContextKey = "terminal"

// TerminalContext represents the authenticated terminal's information
type TerminalContext struct {
	TerminalID string   `json:"terminal_id"`
	Station    string   `json:"station"`
	Roles      []string `json:"roles"`
}

// HasRole reports whether the terminal was granted role
func (t TerminalContext) HasRole(role string) bool {
	for _, r := range t.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// AuthMiddleware creates a middleware that validates terminal tokens
func AuthMiddleware(jwtService *jwt.Service, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		entry := logger.WithFields(logrus.Fields{
			"path": c.Request.URL.Path,
			"ip":   utils.ClientIP(c),
		})

		// Get Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			entry.Warn("Auth failed: missing authorization header")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Authorization header is required",
				"code":    "MISSING_AUTH_HEADER",
			})
			c.Abort()
			return
		}

		// Check Bearer token format
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			entry.Warn("Auth failed: invalid authorization format")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Invalid authorization header format. Expected: Bearer <token>",
				"code":    "INVALID_AUTH_FORMAT",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			if errors.Is(err, gojwt.ErrTokenExpired) {
				entry.WithError(err).Info("Auth failed: token expired")
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "token_expired",
					"message": "Terminal session has expired. Please log in again.",
					"code":    "TOKEN_EXPIRED",
				})
			} else {
				entry.WithError(err).Warn("Auth failed: invalid token")
				c.JSON(http.StatusUnauthorized, gin.H{
					"error":   "invalid_token",
					"message": "Invalid access token",
					"code":    "INVALID_TOKEN",
				})
			}
			c.Abort()
			return
		}

		c.Set(TerminalContextKey, TerminalContext{
			TerminalID: claims.TerminalID,
			Station:    claims.Station,
			Roles:      claims.Roles,
		})

		c.Next()
	}
}

// RequireRole creates a middleware that checks if the terminal has any of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		terminal, exists := GetTerminalContext(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "Terminal context not found. Auth middleware may not be applied.",
				"code":    "MISSING_TERMINAL_CONTEXT",
			})
			c.Abort()
			return
		}

		for _, role := range roles {
			if terminal.HasRole(role) {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "This terminal is not allowed to access this resource",
			"code":    "INSUFFICIENT_PERMISSIONS",
		})
		c.Abort()
	}
}

// GetTerminalContext retrieves the terminal context from Gin context
func GetTerminalContext(c *gin.Context) (TerminalContext, bool) {
	value, exists := c.Get(TerminalContextKey)
	if !exists {
		return TerminalContext{}, false
	}

	terminal, ok := value.(TerminalContext)
	if !ok {
		return TerminalContext{}, false
	}

	return terminal, true
}
