// Package main is the entry point for the pgbridge API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"

	"pgbridge/src/app/server"
	"pgbridge/src/infra/config"
	"pgbridge/src/infra/db"
	"pgbridge/src/infra/logger"
	"pgbridge/src/infra/migrate"
	"pgbridge/src/infra/repo"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
	)

	ctx := context.Background()

	// Initialize the process-wide connection pool
	if err := db.Setup(ctx, cfg.Database, logger.WithComponent(log, "db")); err != nil {
		return err
	}
	defer func() {
		if err := db.Teardown(); err != nil {
			log.Error("database teardown failed", "error", err)
		}
	}()

	// Apply pending migrations
	if cfg.Database.Migrate {
		if err := migrate.Up(ctx, cfg.Database.DSN(), logger.WithComponent(log, "migrate")); err != nil {
			return err
		}
	}

	// Wire the gateway and repositories
	gateway := repo.NewGateway(logger.WithComponent(log, "gateway"))
	auditRepo := repo.NewAuditRepository(logger.WithComponent(log, "audit"))

	// Create and run HTTP server
	srv := server.New(cfg, log, gateway, auditRepo, gateway)

	// Run blocks until shutdown signal is received
	return srv.Run()
}
