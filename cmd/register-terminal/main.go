package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/metro-ticketing/internal/config"
	"github.com/smarttransit/metro-ticketing/internal/database"
	"github.com/smarttransit/metro-ticketing/internal/models"
	"github.com/smarttransit/metro-ticketing/internal/services"
)

func main() {
	var id, station, pin, role, layoutPath string
	flag.StringVar(&id, "id", "", "terminal identifier")
	flag.StringVar(&station, "station", "", "station the terminal sells at")
	flag.StringVar(&pin, "pin", "", "terminal PIN (4 to 12 characters)")
	flag.StringVar(&role, "role", models.RoleCashier, "cashier or admin")
	flag.StringVar(&layoutPath, "layout", "", "network layout file (overrides NETWORK_LAYOUT_PATH)")
	flag.Parse()

	if id == "" || station == "" || pin == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	layout, err := config.LoadLayout(firstNonEmpty(layoutPath, os.Getenv("NETWORK_LAYOUT_PATH"), "configs/perm.yml"))
	if err != nil {
		log.Fatalf("Failed to load layout: %v", err)
	}
	network, err := services.BuildNetwork(layout)
	if err != nil {
		log.Fatalf("Failed to build network: %v", err)
	}

	db, err := database.NewConnection(config.DatabaseConfig{
		Driver:             firstNonEmpty(os.Getenv("DATABASE_DRIVER"), "sqlite"),
		URL:                firstNonEmpty(os.Getenv("DATABASE_URL"), "metro.db"),
		MaxConnections:     2,
		MaxIdleConnections: 1,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}

	auth := services.NewTerminalAuthService(database.NewTerminalRepository(db), network, nil, logger)
	terminal, err := auth.Register(ctx, id, station, pin, role)
	if err != nil {
		log.Fatalf("Failed to register terminal: %v", err)
	}

	fmt.Printf("Registered terminal %s at %s (%s)\n", terminal.ID, terminal.Station, terminal.Role)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
