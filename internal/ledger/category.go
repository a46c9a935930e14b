package ledger

import (
	"context" // Context for resolver lookups
	"fmt"     // Name formatting
)

// CategoryResolver turns a category id into its display name
type CategoryResolver interface {
	CategoryName(ctx context.Context, id int64) (string, error)
}

// StubResolver names every category "Category {id}"
type StubResolver struct{}

// CategoryName implements CategoryResolver
func (StubResolver) CategoryName(_ context.Context, id int64) (string, error) {
	return StubName(id), nil
}

// StubName is the placeholder display name for a category id
func StubName(id int64) string {
	return fmt.Sprintf("Category %d", id)
}

// resolveCategory builds the category projection for id
func resolveCategory(ctx context.Context, r CategoryResolver, id int64) (Category, error) {
	name, err := r.CategoryName(ctx, id)
	if err != nil {
		return Category{}, fmt.Errorf("resolve category %d: %w", id, err)
	}
	return Category{ID: id, Name: name}, nil
}
