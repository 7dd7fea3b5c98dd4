package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/getmentor/mentorlink-api/config"
	"github.com/getmentor/mentorlink-api/pkg/db"
	"github.com/getmentor/mentorlink-api/pkg/logger"
	"go.uber.org/zap"
)

// Usage: migrate [up|down]
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		ServiceName: "mentorlink-migrate",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	arg := ""
	if len(os.Args) > 1 {
		arg = os.Args[1]
	}
	direction, err := db.ParseDirection(arg)
	if err != nil {
		logger.Error("Invalid arguments", zap.Error(err))
		os.Exit(2)
	}

	logger.Info("Starting database migrations",
		zap.String("direction", string(direction)),
		zap.String("database", maskDatabaseURL(cfg.Database.URL)))

	if err := db.RunMigrations(cfg.Database.URL, "file://migrations", direction); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Database migrations completed successfully")
}

// maskDatabaseURL hides credentials in the database URL for logging
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}
	return u.Redacted()
}
