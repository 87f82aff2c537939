package advisor

import (
	"fmt"
	"strings"
)

// handleSustainability answers sustainability queries. Named assets get their
// score breakdowns; a query with no recognizable asset gets the general
// overview instead.
func (e *Engine) handleSustainability(query string) string {
	names := extractAssetNames(query)

	var b strings.Builder
	b.WriteString("## 🌱 Sustainability Analysis\n\n")

	if len(names) == 0 {
		b.WriteString(generalSustainabilityInfo)
		return b.String()
	}

	for _, name := range names {
		id := canonicalID(name)
		if id == "" {
			continue
		}
		score := e.scorer.Score(id)
		fmt.Fprintf(&b, "### %s\n", titleWords(name))
		fmt.Fprintf(&b, "- **Overall Sustainability Score: %.1f/100**\n", score.TotalScore)
		fmt.Fprintf(&b, "- Energy Efficiency: %.1f/100\n", score.EnergyEfficiency)
		fmt.Fprintf(&b, "- Governance: %.1f/100\n", score.Governance)
		fmt.Fprintf(&b, "- Innovation: %.1f/100\n", score.Innovation)
		fmt.Fprintf(&b, "- Key Features: %s\n\n", score.KeyFeatures)
	}

	return b.String()
}

const generalSustainabilityInfo = `**🌱 Cryptocurrency Sustainability Overview:**

**Energy Consumption Concerns:**
- Proof-of-Work cryptocurrencies (like Bitcoin) require significant energy
- Mining operations contribute to carbon emissions
- Environmental impact varies by energy source used

**Sustainable Alternatives:**
- **Proof-of-Stake (PoS)** - 99% less energy than PoW
- Examples: Ethereum 2.0, Cardano, Polkadot, Solana
- **Delegated Proof-of-Stake (DPoS)** - Even more efficient

**🏆 Most Sustainable Cryptocurrencies:**
1. **Cardano (ADA)** - Research-driven PoS blockchain
2. **Polkadot (DOT)** - Interoperable PoS network
3. **Solana (SOL)** - High-performance PoS blockchain
4. **Algorand (ALGO)** - Carbon-negative blockchain
5. **Ethereum (ETH)** - Transitioned to PoS in 2022

**Sustainability Factors to Consider:**
- **Consensus Mechanism** - PoS vs PoW energy usage
- **Carbon Footprint** - Direct and indirect emissions
- **Governance** - Environmental responsibility initiatives
- **Innovation** - Green technology development
- **Transparency** - Environmental impact reporting

**Making Sustainable Choices:**
- Prioritize PoS cryptocurrencies
- Research projects' environmental initiatives
- Consider carbon offset programs
- Support renewable energy mining operations
`
