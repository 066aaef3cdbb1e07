package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"

	"github.com/edutour/discovery/backend/internal/domain/entities"
	"github.com/edutour/discovery/backend/internal/domain/repositories"
	"github.com/edutour/discovery/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/edutour/discovery/backend/pkg/errors"
)

const (
	toursTable      = "tours"
	categoriesTable = "categories"
)

// CatalogAdapter reads and replaces the tour catalog in Postgres
type CatalogAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCatalogAdapter creates a new catalog adapter
func NewCatalogAdapter(client *postgres.Client) *CatalogAdapter {
	return &CatalogAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var (
	_ repositories.CatalogRepository = (*CatalogAdapter)(nil)
	_ repositories.CatalogWriter     = (*CatalogAdapter)(nil)
)

// ListTours returns every tour in authored order
func (a *CatalogAdapter) ListTours(ctx context.Context) ([]entities.Tour, error) {
	query, args, err := a.db.From(toursTable).
		Select(
			"id", "title", "destination_label", "category_id", "duration_days",
			"price", "rating", "review_count", "highlights", "featured",
		).
		Order(goqu.I("position").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build tours query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list tours", err)
	}
	defer rows.Close()

	tours := make([]entities.Tour, 0)
	for rows.Next() {
		var t entities.Tour
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.DestinationLabel,
			&t.CategoryID,
			&t.DurationDays,
			&t.Price,
			&t.Rating,
			&t.ReviewCount,
			pq.Array(&t.Highlights),
			&t.Featured,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan tour", err)
		}
		if t.Highlights == nil {
			t.Highlights = []string{}
		}
		tours = append(tours, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate tours", err)
	}

	return tours, nil
}

// ListCategories returns every category in authored order
func (a *CatalogAdapter) ListCategories(ctx context.Context) ([]entities.Category, error) {
	query, args, err := a.db.From(categoriesTable).
		Select("id", "name", "count").
		Order(goqu.I("position").Asc(), goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build categories query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list categories", err)
	}
	defer rows.Close()

	categories := make([]entities.Category, 0)
	for rows.Next() {
		var c entities.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate categories", err)
	}

	return categories, nil
}

// ReplaceCatalog upserts the given tours and categories in one transaction
// and deletes rows that are no longer present. Slice order is stored as the
// position column so reads return the authored order.
func (a *CatalogAdapter) ReplaceCatalog(ctx context.Context, tours []entities.Tour, categories []entities.Category) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin catalog transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := a.replaceCategories(ctx, tx, categories); err != nil {
		return err
	}
	if err := a.replaceTours(ctx, tx, tours); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit catalog transaction", err)
	}
	return nil
}

func (a *CatalogAdapter) replaceCategories(ctx context.Context, tx *sql.Tx, categories []entities.Category) error {
	ids := make([]string, 0, len(categories))
	if len(categories) > 0 {
		rows := make([]interface{}, 0, len(categories))
		for i, c := range categories {
			ids = append(ids, c.ID)
			rows = append(rows, goqu.Record{
				"id":       c.ID,
				"name":     c.Name,
				"count":    c.Count,
				"position": i,
			})
		}

		query, args, err := a.db.Insert(categoriesTable).
			Prepared(true).
			Rows(rows...).
			OnConflict(goqu.DoUpdate("id", goqu.Record{
				"name":     goqu.L("EXCLUDED.name"),
				"count":    goqu.L("EXCLUDED.count"),
				"position": goqu.L("EXCLUDED.position"),
			})).
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build category upsert", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to upsert categories", err)
		}
	}

	return a.deleteMissing(ctx, tx, categoriesTable, ids)
}

func (a *CatalogAdapter) replaceTours(ctx context.Context, tx *sql.Tx, tours []entities.Tour) error {
	ids := make([]string, 0, len(tours))
	if len(tours) > 0 {
		rows := make([]interface{}, 0, len(tours))
		for i, t := range tours {
			ids = append(ids, t.ID)
			rows = append(rows, goqu.Record{
				"id":                t.ID,
				"title":             t.Title,
				"destination_label": t.DestinationLabel,
				"category_id":       t.CategoryID,
				"duration_days":     t.DurationDays,
				"price":             t.Price,
				"rating":            t.Rating,
				"review_count":      t.ReviewCount,
				"highlights":        pq.Array(t.Highlights),
				"featured":          t.Featured,
				"position":          i,
			})
		}

		query, args, err := a.db.Insert(toursTable).
			Prepared(true).
			Rows(rows...).
			OnConflict(goqu.DoUpdate("id", goqu.Record{
				"title":             goqu.L("EXCLUDED.title"),
				"destination_label": goqu.L("EXCLUDED.destination_label"),
				"category_id":       goqu.L("EXCLUDED.category_id"),
				"duration_days":     goqu.L("EXCLUDED.duration_days"),
				"price":             goqu.L("EXCLUDED.price"),
				"rating":            goqu.L("EXCLUDED.rating"),
				"review_count":      goqu.L("EXCLUDED.review_count"),
				"highlights":        goqu.L("EXCLUDED.highlights"),
				"featured":          goqu.L("EXCLUDED.featured"),
				"position":          goqu.L("EXCLUDED.position"),
			})).
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build tour upsert", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to upsert tours", err)
		}
	}

	return a.deleteMissing(ctx, tx, toursTable, ids)
}

func (a *CatalogAdapter) deleteMissing(ctx context.Context, tx *sql.Tx, table string, keep []string) error {
	ds := a.db.Delete(table).Prepared(true)
	if len(keep) > 0 {
		ds = ds.Where(goqu.C("id").NotIn(keep))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete for "+table, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete stale rows from "+table, err)
	}
	return nil
}
