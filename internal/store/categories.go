package store

import (
	"context" // Context for lookups
	"errors"  // Error matching

	"sharewallet/internal/domain" // Persistence models
	"sharewallet/internal/ledger" // Ledger types

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Upsert clauses
)

// CategoryCatalog resolves category names from the categories table.
// Ids missing from the table get the stub name.
type CategoryCatalog struct {
	db *gorm.DB
}

// NewCategoryCatalog wraps an open GORM connection
func NewCategoryCatalog(db *gorm.DB) *CategoryCatalog {
	return &CategoryCatalog{db: db}
}

// CategoryName implements ledger.CategoryResolver
func (c *CategoryCatalog) CategoryName(ctx context.Context, id int64) (string, error) {
	var cat domain.Category
	if err := c.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ledger.StubName(id), nil // Unknown id, fall back to the stub
		}
		return "", err
	}
	return cat.Name, nil
}

// Upsert inserts or renames categories
func (c *CategoryCatalog) Upsert(ctx context.Context, categories map[int64]string) error {
	if len(categories) == 0 {
		return nil // Nothing to seed
	}
	rows := make([]domain.Category, 0, len(categories))
	for id, name := range categories {
		rows = append(rows, domain.Category{ID: id, Name: name})
	}
	return c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&rows).Error
}
