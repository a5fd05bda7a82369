package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/metro-ticketing/internal/models"
)

// CronService manages scheduled background jobs
type CronService struct {
	cron        *cron.Cron
	rateLimiter *RateLimitService
	ticketing   *TicketingService
	logger      *logrus.Logger
}

// NewCronService creates a new CronService. Jobs run in the ticketing
// service's time zone.
func NewCronService(rateLimiter *RateLimitService, ticketing *TicketingService, logger *logrus.Logger) *CronService {
	c := cron.New(cron.WithSeconds(), cron.WithLocation(ticketing.location))

	return &CronService{
		cron:        c,
		rateLimiter: rateLimiter,
		ticketing:   ticketing,
		logger:      logger,
	}
}

// Start starts all cron jobs
func (s *CronService) Start() error {
	s.logger.Info("Starting cron service...")

	// Job 1: Prune expired login attempts every hour
	// Cron format: second minute hour day month weekday
	_, err := s.cron.AddFunc("0 0 * * * *", s.cleanupLoginAttemptsJob)
	if err != nil {
		return fmt.Errorf("failed to schedule login attempts cleanup: %w", err)
	}

	// Job 2: Log yesterday's income shortly after midnight
	// "0 5 0 * * *" = At 00:05 every day
	_, err = s.cron.AddFunc("0 5 0 * * *", s.dailyIncomeJob)
	if err != nil {
		return fmt.Errorf("failed to schedule daily income job: %w", err)
	}

	s.cron.Start()
	s.logger.WithField("jobs", len(s.cron.Entries())).Info("Cron service started")

	return nil
}

// Stop stops all cron jobs and waits for running ones
func (s *CronService) Stop() {
	s.logger.Info("Stopping cron service...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron service stopped")
}

func (s *CronService) cleanupLoginAttemptsJob() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	deleted, err := s.rateLimiter.CleanupExpired(ctx)
	if err != nil {
		s.logger.WithError(err).Error("[CRON] Failed to cleanup login attempts")
		return
	}
	s.logger.WithField("deleted", deleted).Debug("[CRON] Login attempts cleaned up")
}

func (s *CronService) dailyIncomeJob() {
	yesterday := models.NewDate(s.ticketing.Today().AddDate(0, 0, -1))
	s.logger.WithFields(logrus.Fields{
		"date":   yesterday.String(),
		"amount": s.ticketing.IncomeOn(yesterday).StringFixed(2),
	}).Info("[CRON] Daily income")
}
