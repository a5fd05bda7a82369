package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver registered as "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/smarttransit/metro-ticketing/internal/config"
	_ "modernc.org/sqlite" // SQLite driver for local journals
)

//go:embed schema.sql
var schemaSQL string

// DB interface defines database operations
type DB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	Rebind(query string) string
	Ping() error
	Close() error
}

// SQLDB implements the DB interface using sqlx
type SQLDB struct {
	*sqlx.DB
}

// NewConnection creates a new database connection
func NewConnection(cfg config.DatabaseConfig) (*SQLDB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	connectionURL := cfg.URL
	switch cfg.Driver {
	case "postgres":
		// Connection pooler compatibility (Supavisor and friends)
		if !strings.Contains(connectionURL, "prefer_simple_protocol") {
			separator := "?"
			if strings.Contains(connectionURL, "?") {
				separator = "&"
			}
			connectionURL = connectionURL + separator + "prefer_simple_protocol=true"
		}
	case "sqlite":
		if !strings.Contains(connectionURL, "?") {
			connectionURL += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		}
	case "pgx":
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := sqlx.Connect(cfg.Driver, connectionURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// SQLite allows a single writer
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxConnections)
		db.SetMaxIdleConns(cfg.MaxIdleConnections)
		db.SetConnMaxIdleTime(cfg.ConnMaxLifetime / 2)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return &SQLDB{DB: db}, nil
}

// EnsureSchema creates the journal tables if they don't exist
func EnsureSchema(ctx context.Context, db DB) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
