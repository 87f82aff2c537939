// Package domain provides core domain models and types for the advisory engine.
package domain

import "time"

// RiskTolerance represents an investor risk tier
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "Conservative"
	RiskModerate     RiskTolerance = "Moderate"
	RiskAggressive   RiskTolerance = "Aggressive"
)

// Valid reports whether the tier is one of the three known values.
func (r RiskTolerance) Valid() bool {
	switch r {
	case RiskConservative, RiskModerate, RiskAggressive:
		return true
	}
	return false
}

// TimeHorizon represents an investment time horizon
type TimeHorizon string

const (
	HorizonShortTerm  TimeHorizon = "Short-term (< 1 year)"
	HorizonMediumTerm TimeHorizon = "Medium-term (1-3 years)"
	HorizonLongTerm   TimeHorizon = "Long-term (> 3 years)"
)

// MarketRecord is one asset's current market snapshot as returned by the data
// provider. It is read-only to the engine and has no identity beyond the call
// that produced it.
type MarketRecord struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Symbol         string  `json:"symbol"`
	CurrentPrice   float64 `json:"current_price"`
	PriceChange24h float64 `json:"price_change_percentage_24h"`
	PriceChange7d  float64 `json:"price_change_percentage_7d"`
	PriceChange30d float64 `json:"price_change_percentage_30d"`
	MarketCapRank  int     `json:"market_cap_rank"`
}

// PricePoint is a single (timestamp, price) observation.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// PriceSeries is a chronological sequence of price points. No deduplication
// is assumed; indicator computations must tolerate series shorter than their
// analysis window.
type PriceSeries []PricePoint

// Prices returns the raw price values in order.
func (s PriceSeries) Prices() []float64 {
	prices := make([]float64, len(s))
	for i, p := range s {
		prices[i] = p.Price
	}
	return prices
}

// GlobalSnapshot holds market-wide statistics.
type GlobalSnapshot struct {
	TotalMarketCapB   float64            `json:"total_market_cap_b"` // billions USD
	TotalVolumeB      float64            `json:"total_volume_b"`     // billions USD
	MarketCapChange24 float64            `json:"market_cap_change_percentage_24h"`
	DominanceBySymbol map[string]float64 `json:"dominance_by_symbol"`
}

// TrendingCoin is a trending asset entry from the provider.
type TrendingCoin struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Allocation is one entry of a portfolio recommendation.
type Allocation struct {
	Name       string  `json:"name"`
	Allocation float64 `json:"allocation"` // percent of portfolio
	Reasoning  string  `json:"reasoning"`
}

// TotalAllocation sums the allocation percentages of the given entries.
// Any shortfall from 100% is implicitly a cash reserve.
func TotalAllocation(allocations []Allocation) float64 {
	var total float64
	for _, a := range allocations {
		total += a.Allocation
	}
	return total
}
