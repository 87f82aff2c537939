// Package coingecko provides market data fetching and caching for the
// CoinGecko API. It implements domain.MarketDataProvider.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/akyriacou/cryptosage/internal/clientdata"
	"github.com/akyriacou/cryptosage/internal/domain"
)

// DefaultBaseURL is the public CoinGecko API root.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Client for the CoinGecko API.
type Client struct {
	baseURL   string
	client    *http.Client
	log       zerolog.Logger
	cacheRepo *clientdata.Repository
}

// NewClient creates a new CoinGecko client.
// cacheRepo is optional - if nil, caching is disabled.
// baseURL is optional - if empty, the public API is used.
func NewClient(baseURL string, cacheRepo *clientdata.Repository, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log.With().Str("client", "coingecko").Logger(),
		cacheRepo: cacheRepo,
	}
}

// marketRow is the wire format of one /coins/markets entry.
type marketRow struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Symbol         string   `json:"symbol"`
	CurrentPrice   float64  `json:"current_price"`
	PriceChange24h float64  `json:"price_change_percentage_24h"`
	PriceChange7d  *float64 `json:"price_change_percentage_7d_in_currency"`
	PriceChange30d *float64 `json:"price_change_percentage_30d_in_currency"`
	MarketCapRank  int      `json:"market_cap_rank"`
}

func (m marketRow) toRecord() domain.MarketRecord {
	rec := domain.MarketRecord{
		ID:             m.ID,
		Name:           m.Name,
		Symbol:         m.Symbol,
		CurrentPrice:   m.CurrentPrice,
		PriceChange24h: m.PriceChange24h,
		MarketCapRank:  m.MarketCapRank,
	}
	if m.PriceChange7d != nil {
		rec.PriceChange7d = *m.PriceChange7d
	}
	if m.PriceChange30d != nil {
		rec.PriceChange30d = *m.PriceChange30d
	}
	return rec
}

// TopAssets returns the top assets by market capitalization.
func (c *Client) TopAssets(ctx context.Context, limit int) ([]domain.MarketRecord, error) {
	cacheKey := "top_" + strconv.Itoa(limit)

	var records []domain.MarketRecord
	if c.fromCacheFresh("coingecko_markets", cacheKey, &records) {
		return records, nil
	}

	params := url.Values{}
	params.Set("vs_currency", "usd")
	params.Set("order", "market_cap_desc")
	params.Set("per_page", strconv.Itoa(limit))
	params.Set("page", "1")
	params.Set("sparkline", "false")
	params.Set("price_change_percentage", "24h,7d,30d")

	var rows []marketRow
	if err := c.getJSON(ctx, "/coins/markets", params, &rows); err != nil {
		if c.fromCacheStale("coingecko_markets", cacheKey, &records) {
			c.log.Warn().Err(err).Int("limit", limit).Msg("API failed, using stale cached markets")
			return records, nil
		}
		return nil, fmt.Errorf("failed to fetch top assets: %w", err)
	}

	records = make([]domain.MarketRecord, len(rows))
	for i, row := range rows {
		records[i] = row.toRecord()
	}

	c.toCache("coingecko_markets", cacheKey, records, clientdata.TTLMarkets)
	return records, nil
}

// coinDetail is the wire format of /coins/{id}.
type coinDetail struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	MarketData struct {
		CurrentPrice   map[string]float64 `json:"current_price"`
		PriceChange24h float64            `json:"price_change_percentage_24h"`
		PriceChange7d  float64            `json:"price_change_percentage_7d"`
		PriceChange30d float64            `json:"price_change_percentage_30d"`
		MarketCapRank  int                `json:"market_cap_rank"`
	} `json:"market_data"`
}

// AssetDetail returns the current snapshot for a single asset id.
func (c *Client) AssetDetail(ctx context.Context, id string) (*domain.MarketRecord, error) {
	var record domain.MarketRecord
	if c.fromCacheFresh("coingecko_asset", id, &record) {
		return &record, nil
	}

	params := url.Values{}
	params.Set("localization", "false")
	params.Set("tickers", "false")
	params.Set("market_data", "true")

	var detail coinDetail
	if err := c.getJSON(ctx, "/coins/"+url.PathEscape(id), params, &detail); err != nil {
		if c.fromCacheStale("coingecko_asset", id, &record) {
			c.log.Warn().Err(err).Str("id", id).Msg("API failed, using stale cached asset detail")
			return &record, nil
		}
		return nil, fmt.Errorf("failed to fetch asset %s: %w", id, err)
	}

	record = domain.MarketRecord{
		ID:             detail.ID,
		Name:           detail.Name,
		Symbol:         detail.Symbol,
		CurrentPrice:   detail.MarketData.CurrentPrice["usd"],
		PriceChange24h: detail.MarketData.PriceChange24h,
		PriceChange7d:  detail.MarketData.PriceChange7d,
		PriceChange30d: detail.MarketData.PriceChange30d,
		MarketCapRank:  detail.MarketData.MarketCapRank,
	}

	c.toCache("coingecko_asset", id, record, clientdata.TTLAssetDetail)
	return &record, nil
}

// marketChart is the wire format of /coins/{id}/market_chart.
type marketChart struct {
	Prices [][2]float64 `json:"prices"` // [timestamp_ms, price]
}

// PriceSeries returns historical daily prices for the asset over the given
// number of days.
func (c *Client) PriceSeries(ctx context.Context, id string, days int) (domain.PriceSeries, error) {
	cacheKey := id + "_" + strconv.Itoa(days)

	var series domain.PriceSeries
	if c.fromCacheFresh("coingecko_chart", cacheKey, &series) {
		return series, nil
	}

	interval := "daily"
	if days <= 1 {
		interval = "hourly"
	}

	params := url.Values{}
	params.Set("vs_currency", "usd")
	params.Set("days", strconv.Itoa(days))
	params.Set("interval", interval)

	var chart marketChart
	if err := c.getJSON(ctx, "/coins/"+url.PathEscape(id)+"/market_chart", params, &chart); err != nil {
		if c.fromCacheStale("coingecko_chart", cacheKey, &series) {
			c.log.Warn().Err(err).Str("id", id).Int("days", days).Msg("API failed, using stale cached chart")
			return series, nil
		}
		return nil, fmt.Errorf("failed to fetch price series for %s: %w", id, err)
	}

	series = make(domain.PriceSeries, len(chart.Prices))
	for i, p := range chart.Prices {
		series[i] = domain.PricePoint{
			Timestamp: time.UnixMilli(int64(p[0])).UTC(),
			Price:     p[1],
		}
	}

	c.toCache("coingecko_chart", cacheKey, series, clientdata.TTLChart)
	return series, nil
}

// globalData is the wire format of /global.
type globalData struct {
	Data struct {
		TotalMarketCap      map[string]float64 `json:"total_market_cap"`
		TotalVolume         map[string]float64 `json:"total_volume"`
		MarketCapPercentage map[string]float64 `json:"market_cap_percentage"`
		MarketCapChange24h  float64            `json:"market_cap_change_percentage_24h_usd"`
	} `json:"data"`
}

// GlobalSnapshot returns market-wide statistics with USD amounts converted to
// billions.
func (c *Client) GlobalSnapshot(ctx context.Context) (*domain.GlobalSnapshot, error) {
	var snapshot domain.GlobalSnapshot
	if c.fromCacheFresh("coingecko_global", "global", &snapshot) {
		return &snapshot, nil
	}

	var global globalData
	if err := c.getJSON(ctx, "/global", nil, &global); err != nil {
		if c.fromCacheStale("coingecko_global", "global", &snapshot) {
			c.log.Warn().Err(err).Msg("API failed, using stale cached global snapshot")
			return &snapshot, nil
		}
		return nil, fmt.Errorf("failed to fetch global snapshot: %w", err)
	}

	snapshot = domain.GlobalSnapshot{
		TotalMarketCapB:   global.Data.TotalMarketCap["usd"] / 1e9,
		TotalVolumeB:      global.Data.TotalVolume["usd"] / 1e9,
		MarketCapChange24: global.Data.MarketCapChange24h,
		DominanceBySymbol: global.Data.MarketCapPercentage,
	}

	c.toCache("coingecko_global", "global", snapshot, clientdata.TTLGlobal)
	return &snapshot, nil
}

// trendingData is the wire format of /search/trending.
type trendingData struct {
	Coins []struct {
		Item struct {
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
		} `json:"item"`
	} `json:"coins"`
}

// Trending returns currently trending assets.
func (c *Client) Trending(ctx context.Context) ([]domain.TrendingCoin, error) {
	var coins []domain.TrendingCoin
	if c.fromCacheFresh("coingecko_trending", "trending", &coins) {
		return coins, nil
	}

	var trending trendingData
	if err := c.getJSON(ctx, "/search/trending", nil, &trending); err != nil {
		if c.fromCacheStale("coingecko_trending", "trending", &coins) {
			c.log.Warn().Err(err).Msg("API failed, using stale cached trending coins")
			return coins, nil
		}
		return nil, fmt.Errorf("failed to fetch trending coins: %w", err)
	}

	coins = make([]domain.TrendingCoin, len(trending.Coins))
	for i, coin := range trending.Coins {
		coins[i] = domain.TrendingCoin{
			Name:   coin.Item.Name,
			Symbol: coin.Item.Symbol,
		}
	}

	c.toCache("coingecko_trending", "trending", coins, clientdata.TTLTrending)
	return coins, nil
}

// getJSON performs a GET request against the API and decodes the JSON body.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("url", endpoint).Msg("Fetching")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// fromCacheFresh loads an unexpired cached value into out.
func (c *Client) fromCacheFresh(table, key string, out interface{}) bool {
	if c.cacheRepo == nil {
		return false
	}

	data, err := c.cacheRepo.GetIfFresh(table, key)
	if err != nil || data == nil {
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false
	}

	c.log.Debug().Str("table", table).Str("key", key).Msg("Cache hit")
	return true
}

// fromCacheStale loads a cached value regardless of expiration.
// Use this as a fallback when API calls fail - stale data is better than no data.
func (c *Client) fromCacheStale(table, key string, out interface{}) bool {
	if c.cacheRepo == nil {
		return false
	}

	data, err := c.cacheRepo.Get(table, key)
	if err != nil || data == nil {
		return false
	}

	return json.Unmarshal(data, out) == nil
}

// toCache stores a value, logging rather than failing on cache errors.
func (c *Client) toCache(table, key string, data interface{}, ttl time.Duration) {
	if c.cacheRepo == nil {
		return
	}

	if err := c.cacheRepo.Store(table, key, data, ttl); err != nil {
		c.log.Warn().Err(err).Str("table", table).Str("key", key).Msg("Failed to cache response")
	}
}
