package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smarttransit/metro-ticketing/internal/models"
)

const saleColumns = `id, kind, station, from_station, to_station, hops, pass_serial,
	amount, sale_date, terminal_id, created_at`

// SaleRepository handles database operations for the ticket_sales journal
type SaleRepository struct {
	db DB
}

// NewSaleRepository creates a new SaleRepository
func NewSaleRepository(db DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// Create appends a sale to the journal
func (r *SaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	if sale == nil {
		return fmt.Errorf("sale cannot be nil")
	}

	// Ensure ID and timestamp are set
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now().UTC()
	}

	query := r.db.Rebind(`
		INSERT INTO ticket_sales (` + saleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		sale.ID, sale.Kind, sale.Station, sale.FromStation, sale.ToStation, sale.Hops, sale.PassSerial,
		sale.Amount, sale.SaleDate, sale.TerminalID, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

// ListAll returns the whole journal in insertion order
func (r *SaleRepository) ListAll(ctx context.Context) ([]models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM ticket_sales ORDER BY created_at, id`

	sales := []models.Sale{}
	if err := r.db.SelectContext(ctx, &sales, query); err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

// ListByDate returns the sales of one day
func (r *SaleRepository) ListByDate(ctx context.Context, date models.Date) ([]models.Sale, error) {
	query := r.db.Rebind(`SELECT ` + saleColumns + ` FROM ticket_sales WHERE sale_date = ? ORDER BY created_at, id`)

	sales := []models.Sale{}
	if err := r.db.SelectContext(ctx, &sales, query, date); err != nil {
		return nil, fmt.Errorf("failed to list sales for %s: %w", date, err)
	}
	return sales, nil
}

// IncomeByDate aggregates the journal per sale date, ascending
func (r *SaleRepository) IncomeByDate(ctx context.Context) ([]models.IncomeRow, error) {
	query := `
		SELECT sale_date AS date, SUM(amount) AS amount
		FROM ticket_sales
		GROUP BY sale_date
		ORDER BY sale_date`

	rows := []models.IncomeRow{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to aggregate income: %w", err)
	}
	return rows, nil
}
