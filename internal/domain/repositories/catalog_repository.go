package repositories

import (
	"context"

	"github.com/edutour/discovery/backend/internal/domain/entities"
)

// CatalogRepository is the backing source of tours and categories.
// Implementations return collections in their authored order.
type CatalogRepository interface {
	// ListTours returns every tour in the catalog
	ListTours(ctx context.Context) ([]entities.Tour, error)

	// ListCategories returns every category in the catalog
	ListCategories(ctx context.Context) ([]entities.Category, error)
}

// CatalogWriter replaces catalog content, used by the importer
type CatalogWriter interface {
	// ReplaceCatalog upserts tours and categories and removes rows that are
	// no longer present, keeping the given order
	ReplaceCatalog(ctx context.Context, tours []entities.Tour, categories []entities.Category) error
}
