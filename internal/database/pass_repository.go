package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/smarttransit/metro-ticketing/internal/models"
)

// ErrPassNotFound is returned when no pass has the requested serial
var ErrPassNotFound = errors.New("pass not found")

// PassRepository handles database operations for the passes table
type PassRepository struct {
	db DB
}

// NewPassRepository creates a new PassRepository
func NewPassRepository(db DB) *PassRepository {
	return &PassRepository{db: db}
}

// Upsert stores the current expiry of a pass
func (r *PassRepository) Upsert(ctx context.Context, pass *models.PassRecord) error {
	if pass.UpdatedAt.IsZero() {
		pass.UpdatedAt = time.Now().UTC()
	}

	query := r.db.Rebind(`
		INSERT INTO passes (serial, expires_on, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (serial) DO UPDATE
		SET expires_on = excluded.expires_on, updated_at = excluded.updated_at`)

	if _, err := r.db.ExecContext(ctx, query, pass.Serial, pass.ExpiresOn, pass.UpdatedAt); err != nil {
		return fmt.Errorf("failed to store pass %s: %w", pass.Serial, err)
	}
	return nil
}

// GetBySerial retrieves one pass
func (r *PassRepository) GetBySerial(ctx context.Context, serial string) (*models.PassRecord, error) {
	query := r.db.Rebind(`SELECT serial, expires_on, updated_at FROM passes WHERE serial = ?`)

	pass := &models.PassRecord{}
	err := r.db.GetContext(ctx, pass, query, serial)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPassNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pass: %w", err)
	}
	return pass, nil
}

// ListAll returns every stored pass ordered by serial
func (r *PassRepository) ListAll(ctx context.Context) ([]models.PassRecord, error) {
	passes := []models.PassRecord{}
	err := r.db.SelectContext(ctx, &passes, `SELECT serial, expires_on, updated_at FROM passes ORDER BY serial`)
	if err != nil {
		return nil, fmt.Errorf("failed to list passes: %w", err)
	}
	return passes, nil
}
