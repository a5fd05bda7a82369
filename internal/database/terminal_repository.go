package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/smarttransit/metro-ticketing/internal/models"
)

// ErrTerminalNotFound is returned when no terminal has the requested ID
var ErrTerminalNotFound = errors.New("terminal not found")

// TerminalRepository handles database operations for cashier terminals
type TerminalRepository struct {
	db DB
}

// NewTerminalRepository creates a new TerminalRepository
func NewTerminalRepository(db DB) *TerminalRepository {
	return &TerminalRepository{db: db}
}

// GetByID retrieves a terminal by ID
func (r *TerminalRepository) GetByID(ctx context.Context, id string) (*models.Terminal, error) {
	query := r.db.Rebind(`
		SELECT id, station, pin_hash, role, is_active, last_login_at, created_at
		FROM terminals
		WHERE id = ?`)

	terminal := &models.Terminal{}
	err := r.db.GetContext(ctx, terminal, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTerminalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get terminal: %w", err)
	}
	return terminal, nil
}

// Create registers a new terminal
func (r *TerminalRepository) Create(ctx context.Context, terminal *models.Terminal) error {
	if terminal.CreatedAt.IsZero() {
		terminal.CreatedAt = time.Now().UTC()
	}
	if terminal.Role == "" {
		terminal.Role = models.RoleCashier
	}

	query := r.db.Rebind(`
		INSERT INTO terminals (id, station, pin_hash, role, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		terminal.ID, terminal.Station, terminal.PinHash, terminal.Role, terminal.IsActive, terminal.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	return nil
}

// UpdateLastLogin stamps the last successful login
func (r *TerminalRepository) UpdateLastLogin(ctx context.Context, id string) error {
	query := r.db.Rebind(`UPDATE terminals SET last_login_at = ? WHERE id = ?`)
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}
