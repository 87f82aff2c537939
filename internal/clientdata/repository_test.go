package clientdata

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *Repository {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db)
	require.NoError(t, repo.InitSchema())

	return repo
}

func TestStoreAndGetIfFresh(t *testing.T) {
	repo := setupTestDB(t)

	data := map[string]interface{}{
		"id":    "bitcoin",
		"price": 64123.45,
	}

	err := repo.Store("coingecko_asset", "bitcoin", data, TTLAssetDetail)
	require.NoError(t, err)

	raw, err := repo.GetIfFresh("coingecko_asset", "bitcoin")
	require.NoError(t, err)
	require.NotNil(t, raw)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, "bitcoin", parsed["id"])
	assert.InDelta(t, 64123.45, parsed["price"].(float64), 1e-9)
}

func TestGetIfFresh_MissingKey(t *testing.T) {
	repo := setupTestDB(t)

	raw, err := repo.GetIfFresh("coingecko_asset", "no-such-coin")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestGetIfFresh_ExpiredReturnsNil(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.Store("coingecko_global", "global", map[string]float64{"x": 1}, -time.Minute)
	require.NoError(t, err)

	raw, err := repo.GetIfFresh("coingecko_global", "global")
	require.NoError(t, err)
	assert.Nil(t, raw)

	// Stale read still returns the data.
	raw, err = repo.Get("coingecko_global", "global")
	require.NoError(t, err)
	assert.NotNil(t, raw)
}

func TestStore_InvalidTable(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.Store("sqlite_master", "key", "data", time.Minute)
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.Store("coingecko_trending", "trending", []string{"a"}, time.Minute))
	require.NoError(t, repo.Delete("coingecko_trending", "trending"))

	raw, err := repo.Get("coingecko_trending", "trending")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestDeleteAllExpired(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.Store("coingecko_markets", "top_20", "fresh", time.Hour))
	require.NoError(t, repo.Store("coingecko_markets", "top_10", "stale", -time.Hour))
	require.NoError(t, repo.Store("coingecko_chart", "bitcoin_30", "stale", -time.Hour))

	results, err := repo.DeleteAllExpired()
	require.NoError(t, err)

	assert.Equal(t, int64(1), results["coingecko_markets"])
	assert.Equal(t, int64(1), results["coingecko_chart"])
	assert.Equal(t, int64(0), results["coingecko_global"])

	// Fresh entry survives.
	raw, err := repo.GetIfFresh("coingecko_markets", "top_20")
	require.NoError(t, err)
	assert.NotNil(t, raw)
}

func TestStats(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.Store("coingecko_markets", "top_20", "a", time.Hour))
	require.NoError(t, repo.Store("coingecko_markets", "top_10", "b", time.Hour))
	require.NoError(t, repo.Store("coingecko_global", "global", "c", time.Hour))

	counts, err := repo.Stats()
	require.NoError(t, err)

	assert.Equal(t, int64(2), counts["coingecko_markets"])
	assert.Equal(t, int64(1), counts["coingecko_global"])
	assert.Equal(t, int64(0), counts["coingecko_asset"])
	assert.Len(t, counts, len(AllTables))
}

func TestCleanupJob(t *testing.T) {
	repo := setupTestDB(t)

	require.NoError(t, repo.Store("coingecko_asset", "ethereum", "stale", -time.Minute))

	job := NewCleanupJob(repo, zerolog.Nop())
	assert.Equal(t, "client_data_cleanup", job.Name())
	require.NoError(t, job.Run())

	raw, err := repo.Get("coingecko_asset", "ethereum")
	require.NoError(t, err)
	assert.Nil(t, raw)
}
