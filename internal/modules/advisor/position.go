package advisor

import "math"

// PositionSize computes the suggested portfolio percentage for one asset.
// Adjustments compound multiplicatively in a fixed order (volatility, then
// market position, then sustainability) before the per-profile cap applies.
// The result is rounded to two decimals for display stability.
func (p RiskProfile) PositionSize(volatility float64, marketCapRank int, sustainabilityScore float64) float64 {
	allocation := p.BaseAllocation

	switch {
	case volatility > 40:
		allocation *= 0.5
	case volatility > 25:
		allocation *= 0.7
	case volatility < 15:
		allocation *= 1.2
	}

	switch {
	case marketCapRank <= 5:
		allocation *= 1.3
	case marketCapRank <= 20:
		allocation *= 1.1
	case marketCapRank > 50:
		allocation *= 0.7
	}

	if sustainabilityScore >= 80 {
		allocation *= 1.1
	} else if sustainabilityScore < 40 {
		allocation *= 0.9
	}

	allocation = math.Round(allocation*100) / 100
	if allocation > p.MaxAllocation {
		return p.MaxAllocation
	}
	return allocation
}
