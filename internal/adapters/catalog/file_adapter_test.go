package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/edutour/discovery/backend/pkg/errors"
)

const sampleCatalog = `{
  "categories": [
    {"id": "culture", "name": "Culture & History", "count": 2},
    {"id": "nature", "name": "Nature & Wildlife", "count": 5}
  ],
  "tours": [
    {
      "id": "rome-classics",
      "title": "Roman Classics",
      "destination": "Rome, Italy",
      "category": "culture",
      "duration": "7 Days",
      "price": 1450,
      "rating": 4.8,
      "reviews": 212,
      "highlights": ["Colosseum", "Vatican Museums"],
      "featured": true
    },
    {
      "id": "patagonia-trek",
      "title": "Patagonia Trek",
      "destination": "Torres del Paine, Chile",
      "category": "nature",
      "duration": "12-Day",
      "price": 3200,
      "rating": 4.7,
      "reviews": 64
    }
  ]
}`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileAdapter_Load(t *testing.T) {
	adapter := NewFileAdapter(writeCatalog(t, sampleCatalog))

	tours, categories, err := adapter.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, categories, 2)
	assert.Equal(t, "culture", categories[0].ID)
	assert.Equal(t, 5, categories[1].Count)

	require.Len(t, tours, 2)
	assert.Equal(t, "Rome, Italy", tours[0].DestinationLabel)
	assert.Equal(t, 7, tours[0].DurationDays)
	assert.True(t, tours[0].Featured)
	assert.Equal(t, 12, tours[1].DurationDays)
	assert.Equal(t, []string{}, tours[1].Highlights)
}

func TestFileAdapter_ListMethods(t *testing.T) {
	adapter := NewFileAdapter(writeCatalog(t, sampleCatalog))
	ctx := context.Background()

	tours, err := adapter.ListTours(ctx)
	require.NoError(t, err)
	assert.Len(t, tours, 2)

	categories, err := adapter.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestFileAdapter_MissingFile(t *testing.T) {
	adapter := NewFileAdapter(filepath.Join(t.TempDir(), "absent.json"))

	_, err := adapter.ListTours(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeExternal, apperrors.TypeOf(err))
}

func TestDecode_RejectsInvalidRecords(t *testing.T) {
	cases := map[string]string{
		"bad duration":       `{"tours":[{"id":"t","duration":"a week"}]}`,
		"negative price":     `{"tours":[{"id":"t","duration":"3 Days","price":-1}]}`,
		"rating too high":    `{"tours":[{"id":"t","duration":"3 Days","rating":5.5}]}`,
		"missing id":         `{"tours":[{"duration":"3 Days"}]}`,
		"duplicate tour":     `{"tours":[{"id":"t","duration":"3 Days"},{"id":"t","duration":"4 Days"}]}`,
		"reserved category":  `{"categories":[{"id":"all","name":"All"}]}`,
		"duplicate category": `{"categories":[{"id":"c","name":"A"},{"id":"c","name":"B"}]}`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := Decode([]byte(doc))
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
		})
	}
}

func TestDecode_MalformedJSON(t *testing.T) {
	_, _, err := Decode([]byte(`{"tours": [`))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeExternal, apperrors.TypeOf(err))
}

func TestDecode_EmptyDocument(t *testing.T) {
	tours, categories, err := Decode([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, tours)
	assert.Empty(t, categories)
}

func TestBundledCatalog_IsValid(t *testing.T) {
	tours, categories, err := NewFileAdapter(filepath.Join("..", "..", "..", "data", "catalog.json")).Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, tours, 10)
	assert.Len(t, categories, 4)

	authored := make(map[string]int)
	for _, c := range categories {
		authored[c.ID] = c.Count
	}
	live := make(map[string]int)
	for _, tour := range tours {
		live[tour.CategoryID]++
	}
	assert.Equal(t, authored, live)
}
