package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_JSONOutsideDevelopment(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	initLogger(&buf, "tour-discovery", "production", "debug")

	LoggerFromContext(context.Background()).Info().Str("tour_id", "t-1").Msg("loaded")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tour-discovery", entry["service"])
	assert.Equal(t, "t-1", entry["tour_id"])
	assert.Equal(t, "loaded", entry["message"])
	assert.NotContains(t, entry, "trace_id")
}

func TestInitLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	initLogger(&buf, "tour-discovery", "production", "verbose")

	GetLogger().Debug().Msg("hidden")
	assert.Zero(t, buf.Len())

	GetLogger().Info().Msg("shown")
	assert.NotZero(t, buf.Len())
}

func TestRecordHelpers_TolerateNilMetrics(t *testing.T) {
	ctx := context.Background()
	assert.NotPanics(t, func() {
		RecordRequestMetric(ctx, nil, "GET", "/api/tours", 200, 0)
		RecordCatalogLoad(ctx, nil, "tours", 0)
		RecordCacheHit(ctx, nil, "k")
		RecordCacheMiss(ctx, nil, "k")
		RecordZeroResult(ctx, nil, "all")
	})
}

func TestInitMetrics(t *testing.T) {
	metrics, err := InitMetrics()
	require.NoError(t, err)
	assert.NotNil(t, metrics.ZeroResultCount)

	assert.NotPanics(t, func() {
		RecordZeroResult(context.Background(), metrics, "culture")
	})
}
