package entities

import (
	"math"
)

// CategoryAll selects every category
const CategoryAll = "all"

// Default price slider bounds, in USD
const (
	DefaultMinPrice = 0.0
	DefaultMaxPrice = 5000.0
)

// DurationBucket is a named, mutually exclusive range of tour lengths
type DurationBucket string

const (
	DurationAll    DurationBucket = "all"
	DurationShort  DurationBucket = "short"
	DurationMedium DurationBucket = "medium"
	DurationLong   DurationBucket = "long"
)

// DurationBuckets lists the concrete buckets in display order
var DurationBuckets = []DurationBucket{DurationShort, DurationMedium, DurationLong}

// Valid reports whether b is a recognized bucket
func (b DurationBucket) Valid() bool {
	switch b {
	case DurationAll, DurationShort, DurationMedium, DurationLong:
		return true
	}
	return false
}

// Contains reports whether a tour lasting days falls in the bucket.
// short is up to 5 days, medium is 6 and 7 days, long is more than 7.
// Unrecognized buckets behave like DurationAll.
func (b DurationBucket) Contains(days int) bool {
	switch b {
	case DurationShort:
		return days <= 5
	case DurationMedium:
		return days > 5 && days <= 7
	case DurationLong:
		return days > 7
	default:
		return true
	}
}

// SortKey selects the ordering of the filtered catalog
type SortKey string

const (
	SortPopular   SortKey = "popular"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortDuration  SortKey = "duration"
)

// Valid reports whether k is a recognized sort key
func (k SortKey) Valid() bool {
	switch k {
	case SortPopular, SortPriceLow, SortPriceHigh, SortRating, SortDuration:
		return true
	}
	return false
}

// PriceRange is an inclusive price interval
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price lies within the range, bounds included.
// An inverted range contains nothing.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// Inverted reports whether Min is greater than Max
func (r PriceRange) Inverted() bool {
	return r.Min > r.Max
}

// Query is an immutable snapshot of the catalog search, filter and sort
// selections. Every With* method returns a modified copy.
type Query struct {
	SearchText     string         `json:"search_text"`
	CategoryID     string         `json:"category_id"`
	PriceRange     PriceRange     `json:"price_range"`
	DurationBucket DurationBucket `json:"duration"`
	SortKey        SortKey        `json:"sort"`
}

// ResetQuery returns the default query. Every "reset filters" affordance
// must use it so they all restore the same state.
func ResetQuery() Query {
	return Query{
		SearchText:     "",
		CategoryID:     CategoryAll,
		PriceRange:     PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice},
		DurationBucket: DurationAll,
		SortKey:        SortPopular,
	}
}

// WithSearchText returns a copy of q with the search text replaced
func (q Query) WithSearchText(text string) Query {
	q.SearchText = text
	return q
}

// WithCategory returns a copy of q filtered to categoryID
func (q Query) WithCategory(categoryID string) Query {
	q.CategoryID = categoryID
	return q
}

// WithPriceRange returns a copy of q with new price bounds
func (q Query) WithPriceRange(min, max float64) Query {
	q.PriceRange = PriceRange{Min: min, Max: max}
	return q
}

// WithDurationBucket returns a copy of q with a new duration bucket
func (q Query) WithDurationBucket(bucket DurationBucket) Query {
	q.DurationBucket = bucket
	return q
}

// WithSortKey returns a copy of q with a new sort key
func (q Query) WithSortKey(key SortKey) Query {
	q.SortKey = key
	return q
}

// Normalize replaces malformed fields with their defaults: an empty
// category, unknown bucket or unknown sort key fall back to all/all/popular,
// and a negative or NaN price bound falls back to the default bound.
// The search text is matched literally and never altered. An inverted
// range is preserved as given.
func (q Query) Normalize() Query {
	if q.CategoryID == "" {
		q.CategoryID = CategoryAll
	}
	if !q.DurationBucket.Valid() {
		q.DurationBucket = DurationAll
	}
	if !q.SortKey.Valid() {
		q.SortKey = SortPopular
	}
	if q.PriceRange.Min < 0 || math.IsNaN(q.PriceRange.Min) {
		q.PriceRange.Min = DefaultMinPrice
	}
	if q.PriceRange.Max < 0 || math.IsNaN(q.PriceRange.Max) {
		q.PriceRange.Max = DefaultMaxPrice
	}
	return q
}
