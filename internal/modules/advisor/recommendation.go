package advisor

// Recommend maps an asset's market cap rank and 24h change onto a one-line
// recommendation label. Rank bands are checked top down, so an asset ranked 8
// never reaches the mid-cap rules.
func Recommend(marketCapRank int, priceChange24h float64) string {
	switch {
	case marketCapRank <= 10:
		switch {
		case priceChange24h > 5:
			return "🟢 STRONG BUY - Top crypto with positive momentum"
		case priceChange24h > 0:
			return "🟢 BUY - Stable top crypto showing growth"
		case priceChange24h > -5:
			return "🟡 HOLD - Top crypto with minor decline"
		default:
			return "🟠 CAUTION - Top crypto showing weakness"
		}
	case marketCapRank <= 25:
		switch {
		case priceChange24h > 10:
			return "🟢 BUY - Strong momentum in established crypto"
		case priceChange24h > 0:
			return "🟡 CONSIDER - Positive movement in mid-cap crypto"
		default:
			return "🟠 HOLD - Established crypto under pressure"
		}
	default:
		if priceChange24h > 15 {
			return "🟡 SPECULATIVE BUY - High risk, high reward potential"
		}
		return "🔴 AVOID - High risk with limited upside"
	}
}
