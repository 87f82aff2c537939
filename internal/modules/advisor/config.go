// Package advisor implements the rule-based recommendation engine: query
// routing, single-asset analysis, position sizing, and portfolio allocation.
package advisor

import "github.com/akyriacou/cryptosage/internal/domain"

// RiskProfile holds the thresholds and caps for one risk tier.
type RiskProfile struct {
	MaxVolatility      float64 // percent; suitability warnings above this
	PreferredRankLimit int     // market-cap rank ceiling for "established" assets
	BaseAllocation     float64 // percent; position sizing starting point
	MaxAllocation      float64 // percent; single-position cap
	MaxTotalAllocation float64 // percent; total crypto allocation cap
}

// RiskProfiles maps each risk tier to its profile. Passed explicitly into the
// engine at construction so tests can run with alternative configurations.
type RiskProfiles map[domain.RiskTolerance]RiskProfile

// DefaultRiskProfiles are the standard tier configurations.
var DefaultRiskProfiles = RiskProfiles{
	domain.RiskConservative: {
		MaxVolatility:      15,
		PreferredRankLimit: 10,
		BaseAllocation:     5,
		MaxAllocation:      10,
		MaxTotalAllocation: 70,
	},
	domain.RiskModerate: {
		MaxVolatility:      25,
		PreferredRankLimit: 25,
		BaseAllocation:     10,
		MaxAllocation:      20,
		MaxTotalAllocation: 80,
	},
	domain.RiskAggressive: {
		MaxVolatility:      50,
		PreferredRankLimit: 100,
		BaseAllocation:     20,
		MaxAllocation:      30,
		MaxTotalAllocation: 90,
	},
}

// profileFor resolves a tier with a Moderate fallback for unknown values.
func (p RiskProfiles) profileFor(tier domain.RiskTolerance) RiskProfile {
	if profile, ok := p[tier]; ok {
		return profile
	}
	return p[domain.RiskModerate]
}
