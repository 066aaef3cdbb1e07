package services

import (
	"sort"
	"strings"

	"github.com/edutour/discovery/backend/internal/domain/entities"
)

// ResolveQuery normalizes malformed query fields and resolves the category
// against the known category set. An unknown category degrades to "all"
// when categories is non-empty; with no categories the ID is kept and
// matched exactly against tours.
func ResolveQuery(query entities.Query, categories []entities.Category) entities.Query {
	q := query.Normalize()
	if q.CategoryID == entities.CategoryAll || len(categories) == 0 {
		return q
	}
	for _, c := range categories {
		if c.ID == q.CategoryID {
			return q
		}
	}
	return q.WithCategory(entities.CategoryAll)
}

// Evaluate filters and orders tours for query. It has no side effects: tours
// is never modified and identical inputs always produce identical output.
// Sorting is stable, so tours with equal keys keep their input order.
func Evaluate(tours []entities.Tour, categories []entities.Category, query entities.Query) []entities.Tour {
	q := ResolveQuery(query, categories)
	needle := strings.ToLower(q.SearchText)

	result := make([]entities.Tour, 0, len(tours))
	for _, t := range tours {
		if matches(t, q, needle) {
			result = append(result, t)
		}
	}

	sort.SliceStable(result, lessFunc(result, q.SortKey))
	return result
}

func matches(t entities.Tour, q entities.Query, needle string) bool {
	if needle != "" &&
		!strings.Contains(strings.ToLower(t.Title), needle) &&
		!strings.Contains(strings.ToLower(t.DestinationLabel), needle) {
		return false
	}
	if q.CategoryID != entities.CategoryAll && t.CategoryID != q.CategoryID {
		return false
	}
	if !q.PriceRange.Contains(t.Price) {
		return false
	}
	return q.DurationBucket.Contains(t.DurationDays)
}

func lessFunc(tours []entities.Tour, key entities.SortKey) func(i, j int) bool {
	switch key {
	case entities.SortPriceLow:
		return func(i, j int) bool { return tours[i].Price < tours[j].Price }
	case entities.SortPriceHigh:
		return func(i, j int) bool { return tours[i].Price > tours[j].Price }
	case entities.SortRating:
		return func(i, j int) bool { return tours[i].Rating > tours[j].Rating }
	case entities.SortDuration:
		return func(i, j int) bool { return tours[i].DurationDays < tours[j].DurationDays }
	default:
		// featured first, then rating descending
		return func(i, j int) bool {
			a, b := tours[i], tours[j]
			if a.Featured != b.Featured {
				return a.Featured
			}
			return a.Rating > b.Rating
		}
	}
}

// CategoryCounts pairs each category with the number of tours that actually
// reference it. Tours pointing at categories outside the set are not counted.
func CategoryCounts(tours []entities.Tour, categories []entities.Category) []entities.CategoryCount {
	live := make(map[string]int, len(categories))
	for _, t := range tours {
		live[t.CategoryID]++
	}

	counts := make([]entities.CategoryCount, 0, len(categories))
	for _, c := range categories {
		counts = append(counts, entities.CategoryCount{Category: c, LiveCount: live[c.ID]})
	}
	return counts
}

// DurationCount is the number of catalog tours in a duration bucket
type DurationCount struct {
	Bucket entities.DurationBucket `json:"bucket"`
	Count  int                     `json:"count"`
}

// FilterMetadata describes the facets available for the current catalog
type FilterMetadata struct {
	PriceBounds  entities.PriceRange      `json:"price_bounds"`
	Categories   []entities.CategoryCount `json:"categories"`
	Durations    []DurationCount          `json:"durations"`
	DefaultQuery entities.Query           `json:"default_query"`
}

// BuildFilterMetadata summarizes the catalog for facet rendering. Price
// bounds span the cheapest and most expensive tour; an empty catalog reports
// the default slider bounds.
func BuildFilterMetadata(tours []entities.Tour, categories []entities.Category) FilterMetadata {
	bounds := entities.PriceRange{Min: entities.DefaultMinPrice, Max: entities.DefaultMaxPrice}
	if len(tours) > 0 {
		bounds = entities.PriceRange{Min: tours[0].Price, Max: tours[0].Price}
		for _, t := range tours[1:] {
			if t.Price < bounds.Min {
				bounds.Min = t.Price
			}
			if t.Price > bounds.Max {
				bounds.Max = t.Price
			}
		}
	}

	durations := make([]DurationCount, 0, len(entities.DurationBuckets))
	for _, bucket := range entities.DurationBuckets {
		n := 0
		for _, t := range tours {
			if bucket.Contains(t.DurationDays) {
				n++
			}
		}
		durations = append(durations, DurationCount{Bucket: bucket, Count: n})
	}

	return FilterMetadata{
		PriceBounds:  bounds,
		Categories:   CategoryCounts(tours, categories),
		Durations:    durations,
		DefaultQuery: entities.ResetQuery(),
	}
}

// DecorateTours joins favorites onto tours by ID for rendering
func DecorateTours(tours []entities.Tour, favorites entities.FavoriteSet) []entities.TourCard {
	cards := make([]entities.TourCard, 0, len(tours))
	for _, t := range tours {
		cards = append(cards, entities.TourCard{Tour: t, IsFavorite: favorites.Contains(t.ID)})
	}
	return cards
}
