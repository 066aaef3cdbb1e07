package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutour/discovery/backend/internal/domain/entities"
	"github.com/edutour/discovery/backend/internal/infrastructure/clients/postgres"
)

func TestSearchAnalyticsAdapter_LogEvent_AssignsIDAndTimestamp(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewSearchAnalyticsAdapter(postgres.NewClientFromDB(db))

	mock.ExpectExec(`INSERT INTO "search_analytics"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	event := entities.NewSearchEvent(entities.ResetQuery().WithSearchText("lisbon"), 0, 3*time.Millisecond)
	require.NoError(t, adapter.LogEvent(context.Background(), event))

	assert.NotEmpty(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
	assert.Equal(t, 3, event.LatencyMs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchAnalyticsAdapter_GetZeroResultQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewSearchAnalyticsAdapter(postgres.NewClientFromDB(db))
	createdAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM "search_analytics" WHERE \("result_count" = \$1\) ORDER BY "created_at" DESC LIMIT \$2`).
		WithArgs(0, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "search_text", "category_id", "min_price", "max_price",
			"duration_bucket", "sort_key", "result_count", "latency_ms", "created_at",
		}).AddRow("e-1", "adventure", "all", 0.0, 5000.0, "all", "popular", 0, 1, createdAt))

	events, err := adapter.GetZeroResultQueries(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "adventure", events[0].SearchText)
	assert.Equal(t, createdAt, events[0].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
