package advisor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/akyriacou/cryptosage/internal/domain"
	"github.com/akyriacou/cryptosage/pkg/formulas"
)

const maxComparisonAssets = 3

// handleComparison answers "compare X vs Y" queries with per-asset analysis
// blocks followed by ranking sections.
func (e *Engine) handleComparison(ctx context.Context, query string, tier domain.RiskTolerance) string {
	names := extractAssetNames(query)
	if len(names) < 2 {
		return "Please specify at least two cryptocurrencies to compare. For example: 'Compare Bitcoin vs Ethereum'"
	}
	if len(names) > maxComparisonAssets {
		names = names[:maxComparisonAssets]
	}

	var b strings.Builder
	b.WriteString("## 🔍 Cryptocurrency Comparison\n\n")

	for _, name := range names {
		id := canonicalID(name)
		if id == "" {
			continue
		}
		fmt.Fprintf(&b, "### %s\n%s\n\n", titleWords(name), e.analyzeSingle(ctx, id))
	}

	b.WriteString(e.comparisonSummary(ctx, names, tier))
	return b.String()
}

// analyzeSingle produces the metrics block for one asset. Indicator values
// fall back to neutral defaults when the price history is unavailable; the
// snapshot itself is required.
func (e *Engine) analyzeSingle(ctx context.Context, id string) string {
	detail, err := e.provider.AssetDetail(ctx, id)
	if err != nil {
		e.log.Warn().Err(err).Str("asset", id).Msg("Asset detail unavailable")
		return "Unable to fetch data for this cryptocurrency."
	}

	volatility := 0.0
	rsi := 50.0
	if series, err := e.provider.PriceSeries(ctx, id, 30); err == nil && len(series) > 0 {
		prices := series.Prices()
		volatility = formulas.Volatility(prices)
		rsi = formulas.RSI(prices, 14)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Current Price:** %s\n", money(detail.CurrentPrice))
	fmt.Fprintf(&b, "**24h Change:** %s\n", signedPct(detail.PriceChange24h))
	fmt.Fprintf(&b, "**Market Cap Rank:** #%d\n", detail.MarketCapRank)
	fmt.Fprintf(&b, "**30-day Volatility:** %.1f%%\n", volatility)
	fmt.Fprintf(&b, "**RSI (14):** %.1f\n", rsi)
	fmt.Fprintf(&b, "**Recommendation:** %s\n", Recommend(detail.MarketCapRank, detail.PriceChange24h))
	return b.String()
}

type comparisonEntry struct {
	name           string
	marketCapRank  int
	priceChange24h float64
	sustainability float64
}

// comparisonSummary renders the three ranking sections (market position, 24h
// performance, sustainability) and the top recommendation by rank.
func (e *Engine) comparisonSummary(ctx context.Context, names []string, tier domain.RiskTolerance) string {
	var b strings.Builder
	b.WriteString("### 📋 Comparison Summary\n\n")

	var entries []comparisonEntry
	for _, name := range names {
		id := canonicalID(name)
		if id == "" {
			continue
		}
		detail, err := e.provider.AssetDetail(ctx, id)
		if err != nil {
			continue
		}
		entries = append(entries, comparisonEntry{
			name:           titleWords(name),
			marketCapRank:  detail.MarketCapRank,
			priceChange24h: detail.PriceChange24h,
			sustainability: e.scorer.Score(id).TotalScore,
		})
	}

	if len(entries) == 0 {
		b.WriteString("Unable to compare the specified cryptocurrencies.")
		return b.String()
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].marketCapRank < entries[j].marketCapRank
	})
	b.WriteString("**Market Position Ranking:**\n")
	for i, entry := range entries {
		fmt.Fprintf(&b, "%d. %s (Rank #%d)\n", i+1, entry.name, entry.marketCapRank)
	}

	byPerformance := make([]comparisonEntry, len(entries))
	copy(byPerformance, entries)
	sort.SliceStable(byPerformance, func(i, j int) bool {
		return byPerformance[i].priceChange24h > byPerformance[j].priceChange24h
	})
	b.WriteString("\n**24h Performance:**\n")
	for i, entry := range byPerformance {
		emoji := "🟡"
		if entry.priceChange24h > 0 {
			emoji = "🟢"
		} else if entry.priceChange24h < 0 {
			emoji = "🔴"
		}
		fmt.Fprintf(&b, "%d. %s: %s %s\n", i+1, entry.name, signedPct(entry.priceChange24h), emoji)
	}

	bySustainability := make([]comparisonEntry, len(entries))
	copy(bySustainability, entries)
	sort.SliceStable(bySustainability, func(i, j int) bool {
		return bySustainability[i].sustainability > bySustainability[j].sustainability
	})
	b.WriteString("\n**Sustainability Ranking:**\n")
	for i, entry := range bySustainability {
		emoji := "🟠"
		if entry.sustainability >= 70 {
			emoji = "🌱"
		} else if entry.sustainability >= 50 {
			emoji = "🟡"
		}
		fmt.Fprintf(&b, "%d. %s: %.1f/100 %s\n", i+1, entry.name, entry.sustainability, emoji)
	}

	fmt.Fprintf(&b, "\n**For %s Risk Profile:**\n", tier)
	fmt.Fprintf(&b, "**Recommended:** %s - Most established with lowest risk\n", entries[0].name)
	return b.String()
}
