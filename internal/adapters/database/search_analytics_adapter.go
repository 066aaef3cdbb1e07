package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/edutour/discovery/backend/internal/domain/entities"
	"github.com/edutour/discovery/backend/internal/domain/repositories"
	"github.com/edutour/discovery/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/edutour/discovery/backend/pkg/errors"
)

const (
	searchAnalyticsTable    = "search_analytics"
	defaultZeroResultsLimit = 100
)

type SearchAnalyticsAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

func NewSearchAnalyticsAdapter(client *postgres.Client) repositories.SearchAnalyticsRepository {
	return &SearchAnalyticsAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func (a *SearchAnalyticsAdapter) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query, args, err := a.db.Insert(searchAnalyticsTable).
		Prepared(true).
		Rows(goqu.Record{
			"id":              event.ID,
			"search_text":     event.SearchText,
			"category_id":     event.CategoryID,
			"min_price":       event.MinPrice,
			"max_price":       event.MaxPrice,
			"duration_bucket": event.DurationBucket,
			"sort_key":        event.SortKey,
			"result_count":    event.ResultCount,
			"latency_ms":      event.LatencyMs,
			"created_at":      event.CreatedAt,
		}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build search event insert", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to log search event", err)
	}

	return nil
}

func (a *SearchAnalyticsAdapter) GetZeroResultQueries(ctx context.Context, limit int) ([]*entities.SearchEvent, error) {
	if limit <= 0 {
		limit = defaultZeroResultsLimit
	}

	query, args, err := a.db.From(searchAnalyticsTable).
		Prepared(true).
		Select(
			"id", "search_text", "category_id", "min_price", "max_price",
			"duration_bucket", "sort_key", "result_count", "latency_ms", "created_at",
		).
		Where(goqu.Ex{"result_count": 0}).
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build zero result query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get zero result queries", err)
	}
	defer rows.Close()

	events := make([]*entities.SearchEvent, 0)
	for rows.Next() {
		e := &entities.SearchEvent{}
		err := rows.Scan(
			&e.ID,
			&e.SearchText,
			&e.CategoryID,
			&e.MinPrice,
			&e.MaxPrice,
			&e.DurationBucket,
			&e.SortKey,
			&e.ResultCount,
			&e.LatencyMs,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan search event", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate search events", err)
	}

	return events, nil
}
