package services_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutour/discovery/backend/internal/application/services"
)

type countingWarmer struct {
	calls atomic.Int32
	err   error
}

func (w *countingWarmer) Warm(ctx context.Context) error {
	w.calls.Add(1)
	return w.err
}

func TestCacheWarmingService_WarmCache(t *testing.T) {
	warmer := &countingWarmer{}
	svc := services.NewCacheWarmingService(warmer)

	require.NoError(t, svc.WarmCache(context.Background()))
	assert.Equal(t, int32(1), warmer.calls.Load())
}

func TestCacheWarmingService_WarmCacheReturnsError(t *testing.T) {
	warmer := &countingWarmer{err: errors.New("db down")}
	svc := services.NewCacheWarmingService(warmer)

	assert.Error(t, svc.WarmCache(context.Background()))
}

func TestCacheWarmingService_PeriodicWarmingStopsOnCancel(t *testing.T) {
	warmer := &countingWarmer{}
	svc := services.NewCacheWarmingService(warmer)

	ctx, cancel := context.WithCancel(context.Background())
	done := svc.StartPeriodicWarming(ctx, 10*time.Millisecond)

	assert.GreaterOrEqual(t, warmer.calls.Load(), int32(1))
	require.Eventually(t, func() bool { return warmer.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("warming loop did not stop")
	}
}
