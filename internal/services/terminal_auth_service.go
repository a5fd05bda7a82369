package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/smarttransit/metro-ticketing/internal/database"
	"github.com/smarttransit/metro-ticketing/internal/metro"
	"github.com/smarttransit/metro-ticketing/internal/models"
	"github.com/smarttransit/metro-ticketing/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// AuthError is returned when a terminal cannot log in
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return e.Reason
}

// TerminalStore reads and writes cashier terminals
type TerminalStore interface {
	GetByID(ctx context.Context, id string) (*models.Terminal, error)
	Create(ctx context.Context, terminal *models.Terminal) error
	UpdateLastLogin(ctx context.Context, id string) error
}

// TerminalAuthService handles terminal authentication business logic
type TerminalAuthService struct {
	terminals  TerminalStore
	network    *metro.Network
	jwtService *jwt.Service
	logger     *logrus.Logger
}

// NewTerminalAuthService creates a new terminal auth service
func NewTerminalAuthService(
	terminals TerminalStore,
	network *metro.Network,
	jwtService *jwt.Service,
	logger *logrus.Logger,
) *TerminalAuthService {
	return &TerminalAuthService{
		terminals:  terminals,
		network:    network,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login checks the terminal PIN and issues a token bound to its station
func (s *TerminalAuthService) Login(ctx context.Context, terminalID, pin string) (*models.TerminalLoginResponse, error) {
	terminal, err := s.terminals.GetByID(ctx, terminalID)
	if errors.Is(err, database.ErrTerminalNotFound) {
		return nil, &AuthError{Reason: "invalid terminal or PIN"}
	}
	if err != nil {
		return nil, err
	}

	// Check if terminal is active
	if !terminal.IsActive {
		return nil, &AuthError{Reason: "terminal is disabled"}
	}

	// Verify PIN
	if err := bcrypt.CompareHashAndPassword([]byte(terminal.PinHash), []byte(pin)); err != nil {
		return nil, &AuthError{Reason: "invalid terminal or PIN"}
	}

	station, err := s.network.FindStation(terminal.Station)
	if err != nil {
		return nil, &AuthError{Reason: fmt.Sprintf("terminal station %s is not on the network", terminal.Station)}
	}

	roles := terminal.Roles()
	token, err := s.jwtService.GenerateToken(terminal.ID, station.Name(), roles)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	if err := s.terminals.UpdateLastLogin(ctx, terminal.ID); err != nil {
		s.logger.WithError(err).WithField("terminal_id", terminal.ID).Warn("Failed to update last login")
	}

	s.logger.WithFields(logrus.Fields{
		"terminal_id": terminal.ID,
		"station":     station.Name(),
	}).Info("Terminal logged in")

	return &models.TerminalLoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.jwtService.TokenExpiry().Seconds()),
		TerminalID:  terminal.ID,
		Station:     station.Name(),
		Roles:       roles,
	}, nil
}

// Register creates a terminal at a network station with a bcrypt-hashed PIN
func (s *TerminalAuthService) Register(ctx context.Context, terminalID, stationName, pin, role string) (*models.Terminal, error) {
	if role != models.RoleCashier && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", metro.ErrInvalidOperation, role)
	}
	if len(pin) < 4 || len(pin) > 12 {
		return nil, fmt.Errorf("%w: PIN must have 4 to 12 characters", metro.ErrInvalidOperation)
	}

	station, err := s.network.FindStation(stationName)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash PIN: %w", err)
	}

	terminal := &models.Terminal{
		ID:       terminalID,
		Station:  station.Name(),
		PinHash:  string(hash),
		Role:     role,
		IsActive: true,
	}
	if err := s.terminals.Create(ctx, terminal); err != nil {
		return nil, err
	}
	return terminal, nil
}
