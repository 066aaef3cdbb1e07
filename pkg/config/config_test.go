package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("CATALOG_CACHE_TTL_SECONDS", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, CatalogSourcePostgres, cfg.Catalog.Source)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, 4*time.Minute, cfg.Catalog.WarmInterval)
	assert.Equal(t, "tour-discovery", cfg.OTEL.ServiceName)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_CatalogFromEnv(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", CatalogSourceFile)
	t.Setenv("CATALOG_FILE", "/srv/catalog.json")
	t.Setenv("CATALOG_CACHE_TTL_SECONDS", "60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, CatalogSourceFile, cfg.Catalog.Source)
	assert.Equal(t, "/srv/catalog.json", cfg.Catalog.FilePath)
	assert.Equal(t, time.Minute, cfg.Catalog.CacheTTL)
}

func TestLoad_RejectsUnknownCatalogSource(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "cms")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("SERVER_PORT", "eighty")
	t.Setenv("REDIS_ENABLED", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "tours", SSLMode: "require"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=tours sslmode=require", cfg.DatabaseDSN())
}
