package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/smarttransit/metro-ticketing/internal/config"
	"github.com/smarttransit/metro-ticketing/internal/database"
)

func main() {
	var driverFlag, dbURLFlag string
	var withTerminals bool
	flag.StringVar(&driverFlag, "driver", "", "database driver: postgres, pgx or sqlite (overrides DATABASE_DRIVER)")
	flag.StringVar(&dbURLFlag, "database-url", "", "connection string (overrides DATABASE_URL)")
	flag.BoolVar(&withTerminals, "terminals", false, "also remove registered terminals")
	flag.Parse()

	// Try loading .env from current working directory (optional)
	// This avoids having to pass secrets on the command line.
	_ = godotenv.Load()

	driver := firstNonEmpty(driverFlag, os.Getenv("DATABASE_DRIVER"), "sqlite")
	dbURL := firstNonEmpty(dbURLFlag, os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set and -database-url was not provided")
	}

	// Build minimal database config without loading full app config
	db, err := database.NewConnection(config.DatabaseConfig{
		Driver:             driver,
		URL:                dbURL,
		MaxConnections:     2,
		MaxIdleConnections: 1,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	tables := []string{"ticket_sales", "passes"}
	if withTerminals {
		tables = append(tables, "terminals")
	}

	fmt.Println("Connected to database. Clearing the sales journal...")
	for _, table := range tables {
		// DELETE works the same on every supported driver
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			log.Fatalf("failed to clear %s: %v", table, err)
		}
	}

	fmt.Println("Post-clear row counts:")
	for _, table := range tables {
		var count int
		if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM "+table); err != nil {
			log.Printf("  %s: error: %v", table, err)
			continue
		}
		fmt.Printf("  %s: %d\n", table, count)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
