package services

import (
	"context"
	"fmt"
	"time"

	"github.com/smarttransit/metro-ticketing/internal/database"
)

// RateLimitService throttles failed terminal logins
type RateLimitService struct {
	db     database.DB
	config RateLimitConfig
	now    func() time.Time
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	MaxTerminalFailures int           // Max failed logins per terminal
	TerminalWindow      time.Duration // Time window for terminal rate limit
	MaxIPFailures       int           // Max failed logins per IP
	IPWindow            time.Duration // Time window for IP rate limit
}

// DefaultRateLimitConfig returns the default rate limit configuration
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxTerminalFailures: 5,                // 5 failures
		TerminalWindow:      15 * time.Minute, // per 15 minutes
		MaxIPFailures:       20,               // 20 failures
		IPWindow:            1 * time.Hour,    // per hour
	}
}

// NewRateLimitService creates a new rate limit service
func NewRateLimitService(db database.DB, config RateLimitConfig) *RateLimitService {
	return &RateLimitService{
		db:     db,
		config: config,
		now:    time.Now,
	}
}

// RateLimitError represents a rate limit exceeded error
type RateLimitError struct {
	Message    string
	RetryAfter time.Time
	Type       string // "terminal" or "ip"
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// CheckLoginRateLimit fails with a RateLimitError once a terminal or IP has
// too many recent failed logins
func (s *RateLimitService) CheckLoginRateLimit(ctx context.Context, terminalID, ip string) error {
	if terminalID != "" {
		if err := s.check(ctx, terminalID, "terminal", s.config.MaxTerminalFailures, s.config.TerminalWindow); err != nil {
			return err
		}
	}
	if ip != "" {
		if err := s.check(ctx, ip, "ip", s.config.MaxIPFailures, s.config.IPWindow); err != nil {
			return err
		}
	}
	return nil
}

func (s *RateLimitService) check(ctx context.Context, identifier, identifierType string, limit int, window time.Duration) error {
	windowStart := s.now().UTC().Add(-window)

	var count int
	query := s.db.Rebind(`
		SELECT COUNT(*) FROM login_attempts
		WHERE identifier = ? AND identifier_type = ? AND created_at > ?`)
	if err := s.db.GetContext(ctx, &count, query, identifier, identifierType, windowStart); err != nil {
		return fmt.Errorf("failed to check %s rate limit: %w", identifierType, err)
	}
	if count < limit {
		return nil
	}

	// The limit lifts when the oldest failure in the window expires
	var oldest time.Time
	query = s.db.Rebind(`
		SELECT created_at FROM login_attempts
		WHERE identifier = ? AND identifier_type = ? AND created_at > ?
		ORDER BY created_at LIMIT 1`)
	if err := s.db.GetContext(ctx, &oldest, query, identifier, identifierType, windowStart); err != nil {
		return fmt.Errorf("failed to check %s rate limit: %w", identifierType, err)
	}

	retryAfter := oldest.Add(window)
	return &RateLimitError{
		Message:    fmt.Sprintf("Too many failed logins for this %s. Please try again after %s", identifierType, retryAfter.Format("15:04:05")),
		RetryAfter: retryAfter,
		Type:       identifierType,
	}
}

// RecordFailedLogin records a failed login for the terminal and the IP
func (s *RateLimitService) RecordFailedLogin(ctx context.Context, terminalID, ip string) error {
	if terminalID != "" {
		if err := s.record(ctx, terminalID, "terminal"); err != nil {
			return fmt.Errorf("failed to record terminal attempt: %w", err)
		}
	}
	if ip != "" {
		if err := s.record(ctx, ip, "ip"); err != nil {
			return fmt.Errorf("failed to record IP attempt: %w", err)
		}
	}
	return nil
}

func (s *RateLimitService) record(ctx context.Context, identifier, identifierType string) error {
	query := s.db.Rebind(`
		INSERT INTO login_attempts (identifier, identifier_type, created_at)
		VALUES (?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query, identifier, identifierType, s.now().UTC())
	return err
}

// CleanupExpired removes attempts older than the longest window
func (s *RateLimitService) CleanupExpired(ctx context.Context) (int64, error) {
	maxWindow := s.config.IPWindow
	if s.config.TerminalWindow > maxWindow {
		maxWindow = s.config.TerminalWindow
	}

	query := s.db.Rebind(`DELETE FROM login_attempts WHERE created_at < ?`)
	result, err := s.db.ExecContext(ctx, query, s.now().UTC().Add(-maxWindow))
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup rate limits: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}
