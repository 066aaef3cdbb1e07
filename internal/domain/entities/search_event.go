package entities

import (
	"time"
)

// SearchEvent represents a single catalog evaluation for analytics.
type SearchEvent struct {
	ID             string    `json:"id" db:"id"`
	SearchText     string    `json:"search_text" db:"search_text"`
	CategoryID     string    `json:"category_id" db:"category_id"`
	MinPrice       float64   `json:"min_price" db:"min_price"`
	MaxPrice       float64   `json:"max_price" db:"max_price"`
	DurationBucket string    `json:"duration" db:"duration_bucket"`
	SortKey        string    `json:"sort" db:"sort_key"`
	ResultCount    int       `json:"result_count" db:"result_count"`
	LatencyMs      int       `json:"latency_ms" db:"latency_ms"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// NewSearchEvent snapshots a resolved query and its outcome
func NewSearchEvent(query Query, resultCount int, latency time.Duration) *SearchEvent {
	return &SearchEvent{
		SearchText:     query.SearchText,
		CategoryID:     query.CategoryID,
		MinPrice:       query.PriceRange.Min,
		MaxPrice:       query.PriceRange.Max,
		DurationBucket: string(query.DurationBucket),
		SortKey:        string(query.SortKey),
		ResultCount:    resultCount,
		LatencyMs:      int(latency.Milliseconds()),
	}
}
