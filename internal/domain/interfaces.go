package domain

import "context"

// MarketDataProvider defines the narrow contract the advisory engine has with
// the market data layer. Implementations are best-effort: any upstream
// failure surfaces as an error, and callers must treat it as a first-class
// "no data" branch rather than a fault. Implementations must be safe for
// concurrent use.
type MarketDataProvider interface {
	// TopAssets returns the top assets by market capitalization.
	TopAssets(ctx context.Context, limit int) ([]MarketRecord, error)

	// AssetDetail returns the current snapshot for a single asset id.
	AssetDetail(ctx context.Context, id string) (*MarketRecord, error)

	// PriceSeries returns historical prices for the asset over the given
	// number of days.
	PriceSeries(ctx context.Context, id string, days int) (PriceSeries, error)

	// GlobalSnapshot returns market-wide statistics.
	GlobalSnapshot(ctx context.Context) (*GlobalSnapshot, error)

	// Trending returns currently trending assets.
	Trending(ctx context.Context) ([]TrendingCoin, error)
}
