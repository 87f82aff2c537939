package clientdata

import "time"

// TTL constants for different data types.
// These are added to time.Now() when storing to calculate expires_at.
//
// Market data from the upstream API moves quickly; everything is short-lived
// so the advisor never reasons over prices more than a few minutes old.
const (
	TTLMarkets     = 5 * time.Minute  // Top-assets listings
	TTLAssetDetail = 5 * time.Minute  // Per-asset market snapshots
	TTLChart       = 10 * time.Minute // Historical price series (daily granularity)
	TTLGlobal      = 5 * time.Minute  // Market-wide statistics
	TTLTrending    = 15 * time.Minute // Trending coin lists
)
