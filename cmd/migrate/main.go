package main

import (
	"context" // Context for migration

	"sharewallet/internal/config" // Custom import path (Config)
	"sharewallet/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	if cfg.DBDriver == config.DriverMemory {
		logrus.Info("In-memory store needs no migration") // Nothing to migrate
		return
	}
	gdb, err := db.Open(cfg) // Connect to the configured database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := db.Migrate(context.Background(), gdb, cfg.SeedCategories); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
}
