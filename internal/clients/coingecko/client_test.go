package coingecko

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/akyriacou/cryptosage/internal/clientdata"
)

const marketsBody = `[
	{"id":"bitcoin","name":"Bitcoin","symbol":"btc","current_price":64000.5,
	 "price_change_percentage_24h":2.1,
	 "price_change_percentage_7d_in_currency":5.3,
	 "price_change_percentage_30d_in_currency":-1.2,
	 "market_cap_rank":1},
	{"id":"ethereum","name":"Ethereum","symbol":"eth","current_price":3100.0,
	 "price_change_percentage_24h":-0.5,
	 "market_cap_rank":2}
]`

const detailBody = `{
	"id":"cardano","name":"Cardano","symbol":"ada",
	"market_data":{
		"current_price":{"usd":0.45,"eur":0.41},
		"price_change_percentage_24h":1.5,
		"price_change_percentage_7d":-2.0,
		"price_change_percentage_30d":9.9,
		"market_cap_rank":9
	}
}`

const chartBody = `{"prices":[[1700000000000,100.0],[1700086400000,110.0],[1700172800000,121.0]]}`

const globalBody = `{"data":{
	"total_market_cap":{"usd":2500000000000},
	"total_volume":{"usd":98000000000},
	"market_cap_percentage":{"btc":52.3,"eth":17.1},
	"market_cap_change_percentage_24h_usd":1.8
}}`

const trendingBody = `{"coins":[{"item":{"name":"Pepe","symbol":"PEPE"}},{"item":{"name":"Sui","symbol":"SUI"}}]}`

func newCacheRepo(t *testing.T) *clientdata.Repository {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := clientdata.NewRepository(db)
	require.NoError(t, repo.InitSchema())
	return repo
}

func newTestServer(t *testing.T, hits *int32) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/coins/markets":
			_, _ = w.Write([]byte(marketsBody))
		case "/coins/cardano":
			_, _ = w.Write([]byte(detailBody))
		case "/coins/cardano/market_chart":
			_, _ = w.Write([]byte(chartBody))
		case "/global":
			_, _ = w.Write([]byte(globalBody))
		case "/search/trending":
			_, _ = w.Write([]byte(trendingBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTopAssets(t *testing.T) {
	srv := newTestServer(t, nil)
	client := NewClient(srv.URL, nil, zerolog.Nop())

	records, err := client.TopAssets(context.Background(), 20)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "bitcoin", records[0].ID)
	assert.Equal(t, 1, records[0].MarketCapRank)
	assert.InDelta(t, 5.3, records[0].PriceChange7d, 1e-9)
	assert.InDelta(t, -1.2, records[0].PriceChange30d, 1e-9)

	// Missing optional change fields default to zero.
	assert.Equal(t, 0.0, records[1].PriceChange7d)
}

func TestTopAssets_CacheHitSkipsAPI(t *testing.T) {
	var hits int32
	srv := newTestServer(t, &hits)
	client := NewClient(srv.URL, newCacheRepo(t), zerolog.Nop())

	_, err := client.TopAssets(context.Background(), 20)
	require.NoError(t, err)
	_, err = client.TopAssets(context.Background(), 20)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestAssetDetail(t *testing.T) {
	srv := newTestServer(t, nil)
	client := NewClient(srv.URL, nil, zerolog.Nop())

	record, err := client.AssetDetail(context.Background(), "cardano")
	require.NoError(t, err)

	assert.Equal(t, "Cardano", record.Name)
	assert.InDelta(t, 0.45, record.CurrentPrice, 1e-9)
	assert.Equal(t, 9, record.MarketCapRank)
	assert.InDelta(t, 9.9, record.PriceChange30d, 1e-9)
}

func TestPriceSeries(t *testing.T) {
	srv := newTestServer(t, nil)
	client := NewClient(srv.URL, nil, zerolog.Nop())

	series, err := client.PriceSeries(context.Background(), "cardano", 30)
	require.NoError(t, err)
	require.Len(t, series, 3)

	assert.Equal(t, []float64{100, 110, 121}, series.Prices())
	assert.False(t, series[0].Timestamp.IsZero())
}

func TestGlobalSnapshot(t *testing.T) {
	srv := newTestServer(t, nil)
	client := NewClient(srv.URL, nil, zerolog.Nop())

	snapshot, err := client.GlobalSnapshot(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 2500.0, snapshot.TotalMarketCapB, 1e-9)
	assert.InDelta(t, 98.0, snapshot.TotalVolumeB, 1e-9)
	assert.InDelta(t, 52.3, snapshot.DominanceBySymbol["btc"], 1e-9)
	assert.InDelta(t, 1.8, snapshot.MarketCapChange24, 1e-9)
}

func TestTrending(t *testing.T) {
	srv := newTestServer(t, nil)
	client := NewClient(srv.URL, nil, zerolog.Nop())

	coins, err := client.Trending(context.Background())
	require.NoError(t, err)
	require.Len(t, coins, 2)
	assert.Equal(t, "Pepe", coins[0].Name)
	assert.Equal(t, "SUI", coins[1].Symbol)
}

func TestStaleCacheFallbackOnAPIFailure(t *testing.T) {
	repo := newCacheRepo(t)

	// Seed stale data directly.
	require.NoError(t, repo.Store("coingecko_global", "global",
		map[string]interface{}{"total_market_cap_b": 1000.0}, -1))

	// Server that always fails.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, repo, zerolog.Nop())

	snapshot, err := client.GlobalSnapshot(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, snapshot.TotalMarketCapB, 1e-9)
}

func TestErrorWithoutCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, nil, zerolog.Nop())

	_, err := client.TopAssets(context.Background(), 10)
	assert.Error(t, err)

	_, err = client.AssetDetail(context.Background(), "bitcoin")
	assert.Error(t, err)

	_, err = client.PriceSeries(context.Background(), "bitcoin", 30)
	assert.Error(t, err)
}
