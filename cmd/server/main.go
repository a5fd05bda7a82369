package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/smarttransit/metro-ticketing/internal/config"
	"github.com/smarttransit/metro-ticketing/internal/database"
	"github.com/smarttransit/metro-ticketing/internal/events"
	"github.com/smarttransit/metro-ticketing/internal/handlers"
	"github.com/smarttransit/metro-ticketing/internal/middleware"
	"github.com/smarttransit/metro-ticketing/internal/services"
	"github.com/smarttransit/metro-ticketing/internal/utils"
	"github.com/smarttransit/metro-ticketing/pkg/jwt"
	"github.com/smarttransit/metro-ticketing/pkg/validator"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting metro ticketing service")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Build the network from its layout file
	layout, err := config.LoadLayout(cfg.Network.LayoutPath)
	if err != nil {
		logger.Fatalf("Failed to load network layout: %v", err)
	}
	network, err := services.BuildNetwork(layout, services.NetworkOptions(cfg.Network)...)
	if err != nil {
		logger.Fatalf("Failed to build network: %v", err)
	}
	logger.WithFields(logrus.Fields{
		"city":  network.City(),
		"lines": len(network.Lines()),
	}).Info("Network loaded")

	// Initialize database connection
	logger.WithField("driver", cfg.Database.Driver).Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		logger.Fatalf("Failed to prepare schema: %v", err)
	}
	logger.Info("Database connection established")

	saleRepository := database.NewSaleRepository(db)
	passRepository := database.NewPassRepository(db)
	terminalRepository := database.NewTerminalRepository(db)

	// Quote cache (optional)
	var quoteCache services.QuoteCache = services.NoopQuoteCache{}
	if redisClient := services.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); redisClient != nil {
		defer redisClient.Close()
		quoteCache = services.NewRedisQuoteCache(redisClient, network.City(), cfg.Redis.QuoteTTL)
		logger.WithField("addr", cfg.Redis.Addr).Info("Quote cache enabled")
	} else if cfg.Redis.Addr != "" {
		logger.WithField("addr", cfg.Redis.Addr).Warn("Redis unreachable, quote cache disabled")
	}

	// Sales events (optional)
	var publisher events.SalePublisher = events.NoopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.SalesQueue)
		if err != nil {
			logger.WithError(err).Warn("RabbitMQ unreachable, sale events disabled")
		} else {
			publisher = amqpPublisher
			logger.WithField("queue", cfg.RabbitMQ.SalesQueue).Info("Sale events enabled")
		}
	}
	defer publisher.Close()

	// Initialize services
	logger.Info("Initializing services...")
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	ticketingService := services.NewTicketingService(
		network,
		saleRepository,
		passRepository,
		quoteCache,
		publisher,
		logger,
		cfg.Location(),
	)
	if err := ticketingService.Restore(context.Background()); err != nil {
		logger.Fatalf("Failed to restore ticket offices: %v", err)
	}
	authService := services.NewTerminalAuthService(terminalRepository, network, jwtService, logger)
	serialValidator := validator.NewSerialValidator()
	rateLimiter := services.NewRateLimitService(db, services.DefaultRateLimitConfig())

	// Background jobs
	cronService := services.NewCronService(rateLimiter, ticketingService, logger)
	if err := cronService.Start(); err != nil {
		logger.Fatalf("Failed to start cron service: %v", err)
	}
	defer cronService.Stop()

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	handlers.Routes{
		Auth:       handlers.NewTerminalAuthHandler(authService, rateLimiter, logger),
		Network:    handlers.NewNetworkHandler(ticketingService, serialValidator, logger),
		Sales:      handlers.NewSalesHandler(ticketingService, serialValidator, logger),
		Reports:    handlers.NewReportsHandler(ticketingService, serialValidator, logger),
		JWTService: jwtService,
		Logger:     logger,
		Terminals:  terminalRepository,
	}.Register(router.Group("/api/v1"))

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// requestLogger middleware for logging HTTP requests
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"query":      query,
			"ip":         utils.ClientIP(c),
			"latency_ms": time.Since(start).Milliseconds(),
		}

		// Add terminal context if available
		if terminal, exists := middleware.GetTerminalContext(c); exists {
			fields["terminal"] = terminal.TerminalID
			fields["station"] = terminal.Station
		}

		entry := logger.WithFields(fields)

		// Log errors with more details
		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
			return
		}

		// Log based on status code
		status := c.Writer.Status()
		if status >= 500 {
			entry.Error("Request completed with server error")
		} else if status >= 400 {
			entry.Warn("Request completed with client error")
		} else {
			entry.Info("Request completed successfully")
		}
	}
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check database connection
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "unhealthy",
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  "healthy",
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
