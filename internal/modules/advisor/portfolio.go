package advisor

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/akyriacou/cryptosage/internal/domain"
)

// tierAllocation is a candidate portfolio entry before scaling.
type tierAllocation struct {
	symbol     string
	name       string
	allocation float64
	reasoning  string
}

var (
	coreAllocations = []tierAllocation{
		{"btc", "Bitcoin (BTC)", 0, "Digital gold, most established cryptocurrency with institutional adoption"},
		{"eth", "Ethereum (ETH)", 0, "Leading smart contract platform with strong developer ecosystem"},
	}

	growthAllocations = []tierAllocation{
		{"ada", "Cardano (ADA)", 10, "Sustainable PoS blockchain with academic approach"},
		{"dot", "Polkadot (DOT)", 8, "Interoperability-focused with parachain technology"},
		{"sol", "Solana (SOL)", 7, "High-performance blockchain for DeFi and NFTs"},
	}

	speculativeAllocations = []tierAllocation{
		{"link", "Chainlink (LINK)", 5, "Leading oracle network for smart contracts"},
		{"matic", "Polygon (MATIC)", 5, "Ethereum scaling solution with growing adoption"},
	}
)

// PortfolioRecommendation builds the allocation list for a risk tier. Core
// holdings are included only when the provider confirms they are in the top
// assets; the growth and speculative tiers are static. When the raw total
// exceeds the tier's cap, every entry is scaled by cap/total and rounded
// independently, so the final total may drift a point from the cap.
func (e *Engine) PortfolioRecommendation(ctx context.Context, tier domain.RiskTolerance) ([]domain.Allocation, error) {
	top, err := e.provider.TopAssets(ctx, 20)
	if err != nil {
		return nil, fmt.Errorf("fetching top assets: %w", err)
	}

	available := make(map[string]bool, len(top))
	for _, asset := range top {
		available[strings.ToLower(asset.Symbol)] = true
	}

	var portfolio []domain.Allocation

	if tier == domain.RiskConservative || tier == domain.RiskModerate {
		if available["btc"] {
			allocation := 30.0
			if tier == domain.RiskConservative {
				allocation = 40
			}
			portfolio = append(portfolio, domain.Allocation{
				Name:       coreAllocations[0].name,
				Allocation: allocation,
				Reasoning:  coreAllocations[0].reasoning,
			})
		}
		if available["eth"] {
			allocation := 25.0
			if tier == domain.RiskConservative {
				allocation = 30
			}
			portfolio = append(portfolio, domain.Allocation{
				Name:       coreAllocations[1].name,
				Allocation: allocation,
				Reasoning:  coreAllocations[1].reasoning,
			})
		}
	}

	if tier != domain.RiskConservative {
		for _, growth := range growthAllocations {
			if tier == domain.RiskAggressive || growth.allocation <= 10 {
				portfolio = append(portfolio, domain.Allocation{
					Name:       growth.name,
					Allocation: growth.allocation,
					Reasoning:  growth.reasoning,
				})
			}
		}
	}

	if tier == domain.RiskAggressive {
		for _, spec := range speculativeAllocations {
			portfolio = append(portfolio, domain.Allocation{
				Name:       spec.name,
				Allocation: spec.allocation,
				Reasoning:  spec.reasoning,
			})
		}
	}

	maxTotal := e.profiles.profileFor(tier).MaxTotalAllocation
	if total := domain.TotalAllocation(portfolio); total > maxTotal {
		scale := maxTotal / total
		for i := range portfolio {
			portfolio[i].Allocation = math.Round(portfolio[i].Allocation * scale)
		}
	}

	return portfolio, nil
}

// handlePortfolio renders the portfolio recommendation with per-entry dollar
// amounts and the implicit cash remainder.
func (e *Engine) handlePortfolio(ctx context.Context, req Request) string {
	var b strings.Builder
	b.WriteString("## 💼 Portfolio Allocation Recommendation\n\n")

	portfolio, err := e.PortfolioRecommendation(ctx, req.RiskTolerance)
	if err != nil || len(portfolio) == 0 {
		if err != nil {
			e.log.Warn().Err(err).Msg("Portfolio recommendation unavailable")
		}
		b.WriteString("Unable to generate portfolio recommendations at this time. Please try again later.")
		return b.String()
	}

	fmt.Fprintf(&b, "**Based on your %s risk profile and %s portfolio:**\n\n",
		strings.ToLower(string(req.RiskTolerance)), moneyWhole(req.PortfolioSize))

	for _, allocation := range portfolio {
		fmt.Fprintf(&b, "**%s: %v%%**\n", allocation.Name, allocation.Allocation)
		fmt.Fprintf(&b, "- Reasoning: %s\n", allocation.Reasoning)
		fmt.Fprintf(&b, "- Estimated Amount: %s\n\n", money(req.PortfolioSize*allocation.Allocation/100))
	}

	if total := domain.TotalAllocation(portfolio); total < 100 {
		cash := 100 - total
		fmt.Fprintf(&b, "**Cash/Stablecoins: %v%%**\n", cash)
		fmt.Fprintf(&b, "- Keep %s in cash for opportunities and risk management\n\n", money(req.PortfolioSize*cash/100))
	}

	b.WriteString("**⚠️ Important Reminders:**\n")
	b.WriteString("- This is educational guidance, not financial advice\n")
	b.WriteString("- Consider dollar-cost averaging for entry positions\n")
	b.WriteString("- Set stop-losses and take-profit levels\n")
	b.WriteString("- Review and rebalance regularly\n")
	return b.String()
}
