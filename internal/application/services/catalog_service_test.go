package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edutour/discovery/backend/internal/application/services"
	"github.com/edutour/discovery/backend/internal/domain/entities"
	apperrors "github.com/edutour/discovery/backend/pkg/errors"
)

func TestCatalogService_GetTours(t *testing.T) {
	repo := &MockCatalogRepository{}
	repo.On("ListTours", mock.Anything).Return(scenarioTours(), nil)

	svc := services.NewCatalogService(repo, nil)
	assert.Equal(t, scenarioTours(), svc.GetTours(context.Background()))
}

func TestCatalogService_SourceFailureYieldsEmptyCollections(t *testing.T) {
	repo := &MockCatalogRepository{}
	repo.On("ListTours", mock.Anything).Return(nil, errors.New("connection refused"))
	repo.On("ListCategories", mock.Anything).Return(nil, errors.New("connection refused"))

	svc := services.NewCatalogService(repo, nil)

	tours := svc.GetTours(context.Background())
	assert.NotNil(t, tours)
	assert.Empty(t, tours)

	categories := svc.GetCategories(context.Background())
	assert.NotNil(t, categories)
	assert.Empty(t, categories)
}

func TestCatalogService_NilCollectionsBecomeEmpty(t *testing.T) {
	repo := &MockCatalogRepository{}
	repo.On("ListCategories", mock.Anything).Return(nil, nil)

	svc := services.NewCatalogService(repo, nil)
	assert.Equal(t, []entities.Category{}, svc.GetCategories(context.Background()))
}

func TestCatalogService_GetTour(t *testing.T) {
	repo := &MockCatalogRepository{}
	repo.On("ListTours", mock.Anything).Return(scenarioTours(), nil)
	svc := services.NewCatalogService(repo, nil)

	tour, err := svc.GetTour(context.Background(), "B")
	require.NoError(t, err)
	assert.Equal(t, "Patagonia Trek", tour.Title)

	_, err = svc.GetTour(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.GetTour(context.Background(), "")
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}
