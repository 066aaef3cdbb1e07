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
)

func TestCatalogImportService_ImportPublishesEvent(t *testing.T) {
	writer := &MockCatalogWriter{}
	writer.On("ReplaceCatalog", mock.Anything, scenarioTours(), scenarioCategories).Return(nil)
	bus := NewMockEventBus()

	svc := services.NewCatalogImportService(writer, bus)
	event, err := svc.Import(context.Background(), scenarioTours(), scenarioCategories)
	require.NoError(t, err)

	assert.Equal(t, entities.CatalogEventTypeImported, event.EventType)
	assert.Equal(t, 3, event.TourCount)
	assert.Equal(t, 2, event.CategoryCount)
	require.Len(t, bus.Published(), 1)
	assert.Equal(t, event.ID, bus.Published()[0].ID)
	writer.AssertExpectations(t)
}

func TestCatalogImportService_WriteFailureSkipsPublish(t *testing.T) {
	writer := &MockCatalogWriter{}
	writer.On("ReplaceCatalog", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("tx aborted"))
	bus := NewMockEventBus()

	svc := services.NewCatalogImportService(writer, bus)
	event, err := svc.Import(context.Background(), nil, nil)

	assert.Error(t, err)
	assert.Nil(t, event)
	assert.Empty(t, bus.Published())
}

func TestCatalogImportService_PublishFailureIsNotFatal(t *testing.T) {
	writer := &MockCatalogWriter{}
	writer.On("ReplaceCatalog", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	bus := NewMockEventBus()
	bus.publishErr = errors.New("redis down")

	svc := services.NewCatalogImportService(writer, bus)
	_, err := svc.Import(context.Background(), scenarioTours(), nil)
	assert.NoError(t, err)
}

func TestCatalogImportService_NilEventBus(t *testing.T) {
	writer := &MockCatalogWriter{}
	writer.On("ReplaceCatalog", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := services.NewCatalogImportService(writer, nil)
	_, err := svc.Import(context.Background(), scenarioTours(), scenarioCategories)
	assert.NoError(t, err)
}
