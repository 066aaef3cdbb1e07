package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/edutour/discovery/backend/internal/domain/entities"
	"github.com/edutour/discovery/backend/internal/domain/repositories"
	apperrors "github.com/edutour/discovery/backend/pkg/errors"
)

// fileTour is the authored shape of a tour. Durations are written as labels
// such as "7 Days".
type fileTour struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Destination string   `json:"destination"`
	CategoryID  string   `json:"category"`
	Duration    string   `json:"duration"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviews"`
	Highlights  []string `json:"highlights"`
	Featured    bool     `json:"featured"`
}

type fileCatalog struct {
	Categories []entities.Category `json:"categories"`
	Tours      []fileTour          `json:"tours"`
}

// FileAdapter serves the catalog from a JSON document on disk. The file is
// read on every call so edits are picked up without a restart.
type FileAdapter struct {
	path string
}

// NewFileAdapter creates a catalog source backed by the JSON file at path
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

var _ repositories.CatalogRepository = (*FileAdapter)(nil)

// ListTours returns every tour in file order
func (a *FileAdapter) ListTours(ctx context.Context) ([]entities.Tour, error) {
	tours, _, err := a.Load(ctx)
	return tours, err
}

// ListCategories returns every category in file order
func (a *FileAdapter) ListCategories(ctx context.Context) ([]entities.Category, error) {
	_, categories, err := a.Load(ctx)
	return categories, err
}

// Load reads and validates the whole catalog file
func (a *FileAdapter) Load(ctx context.Context) ([]entities.Tour, []entities.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, nil, apperrors.NewExternalError(fmt.Sprintf("failed to read catalog file %s", a.path), err)
	}

	return Decode(data)
}

// Decode parses a catalog document, converting duration labels to days and
// rejecting records that break the tour invariants
func Decode(data []byte) ([]entities.Tour, []entities.Category, error) {
	var doc fileCatalog
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, apperrors.NewExternalError("failed to decode catalog file", err)
	}

	categories := make([]entities.Category, 0, len(doc.Categories))
	seenCategories := make(map[string]struct{}, len(doc.Categories))
	for _, c := range doc.Categories {
		if c.ID == "" {
			return nil, nil, apperrors.NewValidationError("category id is required")
		}
		if c.ID == entities.CategoryAll {
			return nil, nil, apperrors.NewValidationError(fmt.Sprintf("category id %q is reserved", c.ID))
		}
		if _, dup := seenCategories[c.ID]; dup {
			return nil, nil, apperrors.NewValidationError(fmt.Sprintf("duplicate category id %q", c.ID))
		}
		seenCategories[c.ID] = struct{}{}
		categories = append(categories, c)
	}

	tours := make([]entities.Tour, 0, len(doc.Tours))
	seenTours := make(map[string]struct{}, len(doc.Tours))
	for _, ft := range doc.Tours {
		tour, err := ft.toTour()
		if err != nil {
			return nil, nil, err
		}
		if _, dup := seenTours[tour.ID]; dup {
			return nil, nil, apperrors.NewValidationError(fmt.Sprintf("duplicate tour id %q", tour.ID))
		}
		seenTours[tour.ID] = struct{}{}
		tours = append(tours, tour)
	}

	return tours, categories, nil
}

func (ft fileTour) toTour() (entities.Tour, error) {
	if ft.ID == "" {
		return entities.Tour{}, apperrors.NewValidationError("tour id is required")
	}

	days, err := entities.ParseDurationLabel(ft.Duration)
	if err != nil {
		return entities.Tour{}, apperrors.NewValidationError(fmt.Sprintf("tour %s: invalid duration %q", ft.ID, ft.Duration))
	}

	switch {
	case ft.Price < 0:
		return entities.Tour{}, apperrors.NewValidationError(fmt.Sprintf("tour %s: price must not be negative", ft.ID))
	case ft.Rating < 0 || ft.Rating > 5:
		return entities.Tour{}, apperrors.NewValidationError(fmt.Sprintf("tour %s: rating must be between 0 and 5", ft.ID))
	case ft.ReviewCount < 0:
		return entities.Tour{}, apperrors.NewValidationError(fmt.Sprintf("tour %s: review count must not be negative", ft.ID))
	}

	highlights := ft.Highlights
	if highlights == nil {
		highlights = []string{}
	}

	return entities.Tour{
		ID:               ft.ID,
		Title:            ft.Title,
		DestinationLabel: ft.Destination,
		CategoryID:       ft.CategoryID,
		DurationDays:     days,
		Price:            ft.Price,
		Rating:           ft.Rating,
		ReviewCount:      ft.ReviewCount,
		Highlights:       highlights,
		Featured:         ft.Featured,
	}, nil
}
