package services_test

import (
	"context"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/edutour/discovery/backend/internal/domain/entities"
	"github.com/edutour/discovery/backend/internal/domain/providers"
)

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListTours(ctx context.Context) ([]entities.Tour, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]entities.Tour), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCatalogRepository) ListCategories(ctx context.Context) ([]entities.Category, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]entities.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockCatalogWriter struct {
	mock.Mock
}

func (m *MockCatalogWriter) ReplaceCatalog(ctx context.Context, tours []entities.Tour, categories []entities.Category) error {
	return m.Called(ctx, tours, categories).Error(0)
}

type MockSearchAnalyticsRepository struct {
	mock.Mock
}

func (m *MockSearchAnalyticsRepository) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockSearchAnalyticsRepository) GetZeroResultQueries(ctx context.Context, limit int) ([]*entities.SearchEvent, error) {
	args := m.Called(ctx, limit)
	if v := args.Get(0); v != nil {
		return v.([]*entities.SearchEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

type recordingTracker struct {
	mu     sync.Mutex
	events []*entities.SearchEvent
}

func (r *recordingTracker) TrackSearch(ctx context.Context, event *entities.SearchEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// MockCacheProvider is an in-memory cache. DeletePattern supports trailing
// wildcard patterns only.
type MockCacheProvider struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMockCacheProvider() *MockCacheProvider {
	return &MockCacheProvider{data: make(map[string][]byte)}
}

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, providers.ErrCacheMiss
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCacheProvider) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheProvider) DeletePattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.data {
		if strings.HasPrefix(key, strings.TrimSuffix(pattern, "*")) {
			delete(m.data, key)
		}
	}
	return nil
}

func (m *MockCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *MockCacheProvider) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}

// MockEventBus delivers published events to in-process subscribers
type MockEventBus struct {
	mu          sync.Mutex
	subscribers map[string][]chan *entities.CatalogEvent
	published   []*entities.CatalogEvent
	publishErr  error
}

func NewMockEventBus() *MockEventBus {
	return &MockEventBus{subscribers: make(map[string][]chan *entities.CatalogEvent)}
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.CatalogEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, event)
	for _, ch := range m.subscribers[channel] {
		ch <- event
	}
	return nil
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.CatalogEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan *entities.CatalogEvent, 10)
	m.subscribers[channel] = append(m.subscribers[channel], ch)
	return ch, nil
}

func (m *MockEventBus) Close() error {
	return nil
}

func (m *MockEventBus) Published() []*entities.CatalogEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entities.CatalogEvent(nil), m.published...)
}
