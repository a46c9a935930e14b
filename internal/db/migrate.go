package db

import (
	"context" // Context for seeding

	"sharewallet/internal/domain" // Importing domain models
	"sharewallet/internal/store"  // Category catalog

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate performs automatic migration for the database schema and seeds
// the given categories
func Migrate(ctx context.Context, db *gorm.DB, categories map[int64]string) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.WithContext(ctx).AutoMigrate(&domain.Transaction{}, &domain.Split{}, &domain.Category{}); err != nil {
		return err
	}
	// Seed or rename categories listed in the configuration
	if err := store.NewCategoryCatalog(db).Upsert(ctx, categories); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"categories": len(categories), // Seeded categories
	}).Info("Migration completed.") // Log successful migration
	return nil
}
