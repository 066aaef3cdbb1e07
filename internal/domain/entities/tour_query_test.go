package entities

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetQuery_ReturnsLiteralDefaults(t *testing.T) {
	expected := Query{
		SearchText:     "",
		CategoryID:     "all",
		PriceRange:     PriceRange{Min: 0, Max: 5000},
		DurationBucket: "all",
		SortKey:        "popular",
	}

	assert.Equal(t, expected, ResetQuery())

	// Mutating a derived query must not leak into later resets.
	modified := ResetQuery().WithSearchText("rome").WithCategory("culture").WithSortKey(SortRating)
	assert.NotEqual(t, expected, modified)
	assert.Equal(t, expected, ResetQuery())
}

func TestQuery_WithMethodsReturnCopies(t *testing.T) {
	base := ResetQuery()

	narrowed := base.
		WithPriceRange(100, 900).
		WithDurationBucket(DurationMedium)

	assert.Equal(t, PriceRange{Min: 0, Max: 5000}, base.PriceRange)
	assert.Equal(t, DurationAll, base.DurationBucket)
	assert.Equal(t, PriceRange{Min: 100, Max: 900}, narrowed.PriceRange)
	assert.Equal(t, DurationMedium, narrowed.DurationBucket)
}

func TestQuery_NormalizeFallsBackToDefaults(t *testing.T) {
	q := Query{
		SearchText:     "  Kyoto ",
		CategoryID:     "",
		PriceRange:     PriceRange{Min: -10, Max: math.NaN()},
		DurationBucket: "fortnight",
		SortKey:        "cheapest",
	}.Normalize()

	assert.Equal(t, "  Kyoto ", q.SearchText)
	assert.Equal(t, CategoryAll, q.CategoryID)
	assert.Equal(t, PriceRange{Min: DefaultMinPrice, Max: DefaultMaxPrice}, q.PriceRange)
	assert.Equal(t, DurationAll, q.DurationBucket)
	assert.Equal(t, SortPopular, q.SortKey)
}

func TestQuery_NormalizeKeepsInvertedRange(t *testing.T) {
	q := ResetQuery().WithPriceRange(800, 200).Normalize()
	assert.True(t, q.PriceRange.Inverted())
	assert.Equal(t, PriceRange{Min: 800, Max: 200}, q.PriceRange)
}

func TestDurationBucket_Boundaries(t *testing.T) {
	cases := []struct {
		days   int
		bucket DurationBucket
		want   bool
	}{
		{1, DurationShort, true},
		{5, DurationShort, true},
		{5, DurationMedium, false},
		{6, DurationShort, false},
		{6, DurationMedium, true},
		{7, DurationMedium, true},
		{7, DurationLong, false},
		{8, DurationMedium, false},
		{8, DurationLong, true},
		{30, DurationAll, true},
		{3, DurationBucket("unknown"), true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.bucket.Contains(tc.days), "%d days in %q", tc.days, tc.bucket)
	}
}

func TestDurationBucket_ExactlyOneConcreteBucketPerDuration(t *testing.T) {
	for days := 1; days <= 30; days++ {
		matches := 0
		for _, bucket := range DurationBuckets {
			if bucket.Contains(days) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "days=%d", days)
	}
}

func TestPriceRange_Contains(t *testing.T) {
	assert.True(t, PriceRange{Min: 100, Max: 100}.Contains(100))
	assert.False(t, PriceRange{Min: 100, Max: 100}.Contains(100.01))
	assert.True(t, PriceRange{Min: 0, Max: 5000}.Contains(5000))
	assert.False(t, PriceRange{Min: 900, Max: 100}.Contains(500))
}

func TestSortKey_Valid(t *testing.T) {
	for _, k := range []SortKey{SortPopular, SortPriceLow, SortPriceHigh, SortRating, SortDuration} {
		assert.True(t, k.Valid())
	}
	assert.False(t, SortKey("newest").Valid())
}
