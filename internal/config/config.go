package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// JWT configuration
	JWT JWTConfig

	// Network layout and prices
	Network NetworkConfig

	// Redis quote cache configuration
	Redis RedisConfig

	// RabbitMQ sales event configuration
	RabbitMQ RabbitMQConfig

	// CORS configuration
	CORS CORSConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error
	Timezone    string // sale dates are taken in this zone
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver             string // postgres, pgx or sqlite
	URL                string
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
}

// NetworkConfig holds the metro layout file and tariff
type NetworkConfig struct {
	LayoutPath   string
	BaseFare     decimal.Decimal
	StageFare    decimal.Decimal
	PassPrice    decimal.Decimal
	PassCapacity int
}

// RedisConfig holds quote cache configuration. An empty Addr disables the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	QuoteTTL time.Duration
}

// RabbitMQConfig holds sales event configuration. An empty URL disables publishing.
type RabbitMQConfig struct {
	URL        string
	SalesQueue string
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Timezone:    getEnv("METRO_TIMEZONE", "Asia/Yekaterinburg"),
		},
		Database: DatabaseConfig{
			Driver:             getEnv("DATABASE_DRIVER", "sqlite"),
			URL:                getEnv("DATABASE_URL", "metro.db"),
			MaxConnections:     getEnvAsInt("DATABASE_MAX_CONNECTIONS", 10),
			MaxIdleConnections: getEnvAsInt("DATABASE_MAX_IDLE_CONNECTIONS", 5),
			ConnMaxLifetime:    time.Duration(getEnvAsInt("DATABASE_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", ""),
			TokenExpiry: time.Duration(getEnvAsInt("JWT_TOKEN_EXPIRY", 43200)) * time.Second,
		},
		Network: NetworkConfig{
			LayoutPath:   getEnv("NETWORK_LAYOUT_PATH", "configs/perm.yml"),
			BaseFare:     getEnvAsDecimal("FARE_BASE", decimal.NewFromInt(20)),
			StageFare:    getEnvAsDecimal("FARE_STAGE", decimal.NewFromInt(5)),
			PassPrice:    getEnvAsDecimal("PASS_PRICE", decimal.NewFromInt(3000)),
			PassCapacity: getEnvAsInt("PASS_CAPACITY", 10000),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			QuoteTTL: time.Duration(getEnvAsInt("QUOTE_CACHE_TTL", 3600)) * time.Second,
		},
		RabbitMQ: RabbitMQConfig{
			URL:        getEnv("RABBITMQ_URL", ""),
			SalesQueue: getEnv("SALES_QUEUE", "metro.sales"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "OPTIONS"}),
			AllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "pgx", "sqlite":
	default:
		return fmt.Errorf("invalid DATABASE_DRIVER: %s (must be 'postgres', 'pgx' or 'sqlite')", c.Database.Driver)
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.Network.LayoutPath == "" {
		return fmt.Errorf("NETWORK_LAYOUT_PATH is required")
	}

	if c.Network.BaseFare.IsNegative() || c.Network.StageFare.IsNegative() || c.Network.PassPrice.IsNegative() {
		return fmt.Errorf("fares must not be negative")
	}

	if c.Network.PassCapacity < 2 {
		return fmt.Errorf("PASS_CAPACITY must be at least 2")
	}

	return nil
}

// Location returns the configured time zone, falling back to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		log.Printf("Unknown METRO_TIMEZONE %q, using UTC", c.Server.Timezone)
		return time.UTC
	}
	return loc
}

// Helper functions to get environment variables

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		log.Printf("Invalid decimal value for %s, using default: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
