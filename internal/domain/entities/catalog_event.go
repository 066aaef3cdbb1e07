package entities

import (
	"time"

	"github.com/google/uuid"
)

// CatalogEventType represents the type of catalog event
type CatalogEventType string

const (
	CatalogEventTypeImported CatalogEventType = "catalog_imported"
	CatalogEventTypeReloaded CatalogEventType = "catalog_reloaded"
)

// CatalogEvent announces that the tour catalog changed and derived caches
// must be dropped
type CatalogEvent struct {
	ID            string           `json:"id"`
	EventType     CatalogEventType `json:"event_type"`
	Timestamp     time.Time        `json:"timestamp"`
	TourCount     int              `json:"tour_count"`
	CategoryCount int              `json:"category_count"`
}

// NewCatalogEvent creates a new catalog event
func NewCatalogEvent(eventType CatalogEventType, tourCount, categoryCount int) *CatalogEvent {
	return &CatalogEvent{
		ID:            uuid.NewString(),
		EventType:     eventType,
		Timestamp:     time.Now().UTC(),
		TourCount:     tourCount,
		CategoryCount: categoryCount,
	}
}
