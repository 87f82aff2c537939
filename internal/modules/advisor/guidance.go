package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/akyriacou/cryptosage/internal/domain"
)

// handleGeneral covers everything the keyword router did not claim: beginner
// guidance, market overviews, risk management, and a capability summary.
func (e *Engine) handleGeneral(ctx context.Context, query string, tier domain.RiskTolerance) string {
	lower := strings.ToLower(query)

	var b strings.Builder
	b.WriteString("## 💡 General Cryptocurrency Guidance\n\n")

	switch {
	case strings.Contains(lower, "beginner") || strings.Contains(lower, "start"):
		b.WriteString(beginnerGuidance(tier))
	case strings.Contains(lower, "market"):
		b.WriteString(e.MarketOverview(ctx))
	case strings.Contains(lower, "risk"):
		b.WriteString(riskManagementAdvice)
	default:
		b.WriteString(helpText)
	}

	return b.String()
}

// MarketOverview renders the global market snapshot with sentiment and
// dominance interpretation. Exported because the market endpoint serves the
// same analysis outside the query flow.
func (e *Engine) MarketOverview(ctx context.Context) string {
	snapshot, err := e.provider.GlobalSnapshot(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("Global snapshot unavailable")
		return "Unable to fetch current market data. Please try again later."
	}

	var b strings.Builder
	b.WriteString("**🌍 Current Market Overview:**\n\n")
	fmt.Fprintf(&b, "**Total Market Cap:** $%.1fB\n", snapshot.TotalMarketCapB)
	fmt.Fprintf(&b, "**24h Volume:** $%.1fB\n", snapshot.TotalVolumeB)
	fmt.Fprintf(&b, "**24h Market Change:** %s\n", signedPct(snapshot.MarketCapChange24))

	btcDominance := snapshot.DominanceBySymbol["btc"]
	fmt.Fprintf(&b, "**Bitcoin Dominance:** %.1f%%\n\n", btcDominance)

	change := snapshot.MarketCapChange24
	var sentiment string
	switch {
	case change > 3:
		sentiment = "🟢 **Very Bullish** - Strong market optimism"
	case change > 1:
		sentiment = "🟢 **Bullish** - Positive market sentiment"
	case change > -1:
		sentiment = "🟡 **Neutral** - Balanced market conditions"
	case change > -3:
		sentiment = "🟠 **Bearish** - Market showing caution"
	default:
		sentiment = "🔴 **Very Bearish** - Strong selling pressure"
	}
	fmt.Fprintf(&b, "**Market Sentiment:** %s\n\n", sentiment)

	var dominance string
	switch {
	case btcDominance > 50:
		dominance = "Bitcoin maintains strong dominance - 'Bitcoin season'"
	case btcDominance > 40:
		dominance = "Moderate Bitcoin dominance - balanced crypto market"
	default:
		dominance = "Low Bitcoin dominance - 'Altcoin season' potential"
	}
	fmt.Fprintf(&b, "**Dominance Analysis:** %s\n\n", dominance)

	b.WriteString("**Investment Implications:**\n")
	if change > 0 {
		b.WriteString("- Positive momentum may continue in short term\n")
		b.WriteString("- Consider taking some profits if heavily invested\n")
		b.WriteString("- Good time for cost averaging if underinvested\n")
	} else {
		b.WriteString("- Market correction may present buying opportunities\n")
		b.WriteString("- Focus on fundamentally strong projects\n")
		b.WriteString("- Consider increasing positions gradually\n")
	}

	return b.String()
}

// beginnerGuidance returns getting-started advice tuned to the risk tier.
func beginnerGuidance(tier domain.RiskTolerance) string {
	var b strings.Builder
	b.WriteString("Welcome to cryptocurrency investing! Here's what you need to know:\n\n")
	b.WriteString("**🎯 Getting Started Steps:**\n")
	b.WriteString("1. **Education First** - Understand blockchain technology and crypto basics\n")
	b.WriteString("2. **Start Small** - Begin with amounts you can afford to lose completely\n")
	b.WriteString("3. **Choose Reputable Exchanges** - Use well-established platforms with good security\n")
	b.WriteString("4. **Secure Storage** - Learn about hot vs cold wallets\n")
	b.WriteString("5. **Diversify** - Don't put everything in one cryptocurrency\n\n")

	fmt.Fprintf(&b, "**📊 For %s Investors:**\n", tier)
	switch tier {
	case domain.RiskConservative:
		b.WriteString("- Start with Bitcoin and Ethereum (70-80% of crypto allocation)\n")
		b.WriteString("- Limit crypto to 5-10% of total portfolio\n")
		b.WriteString("- Focus on established cryptocurrencies (top 10 by market cap)\n")
	case domain.RiskModerate:
		b.WriteString("- Core holdings: Bitcoin, Ethereum (60-70% of crypto allocation)\n")
		b.WriteString("- Add 2-3 alternative cryptocurrencies (20-30%)\n")
		b.WriteString("- Limit crypto to 10-20% of total portfolio\n")
	default:
		b.WriteString("- Diversify across 5-8 different cryptocurrencies\n")
		b.WriteString("- Include some smaller market cap opportunities\n")
		b.WriteString("- Can allocate up to 30% of portfolio to crypto\n")
	}

	b.WriteString("\n**⚠️ Essential Reminders:**\n")
	b.WriteString("- Never invest borrowed money\n")
	b.WriteString("- Don't FOMO (Fear of Missing Out)\n")
	b.WriteString("- Set clear entry and exit strategies\n")
	b.WriteString("- Consider dollar-cost averaging\n")
	b.WriteString("- Keep detailed records for taxes\n")
	return b.String()
}

const riskManagementAdvice = `## ⚖️ Cryptocurrency Risk Management

**🛡️ Essential Risk Management Strategies:**

**1. Position Sizing**
- Never invest more than you can afford to lose completely
- Limit crypto to 5-30% of total portfolio (based on risk tolerance)
- Don't put more than 10% in any single cryptocurrency

**2. Diversification**
- Spread investments across multiple cryptocurrencies
- Include different types: store of value (BTC), platforms (ETH), etc.
- Consider geographic and regulatory diversification

**3. Entry and Exit Strategies**
- Use dollar-cost averaging for entries
- Set clear profit-taking levels
- Implement stop-losses for risk management
- Have a plan before you invest

**4. Emotional Control**
- Avoid FOMO (Fear of Missing Out)
- Don't panic sell during crashes
- Stick to your predetermined strategy
- Take breaks from charts and news

**5. Security Measures**
- Use reputable exchanges with insurance
- Enable two-factor authentication
- Consider hardware wallets for large amounts
- Never share private keys or seed phrases

**6. Regulatory Awareness**
- Understand tax implications in your jurisdiction
- Keep detailed transaction records
- Stay informed about regulatory changes
- Consider regulatory-compliant projects

**⚠️ Red Flags to Avoid:**
- Guaranteed returns or 'get rich quick' schemes
- Pressure to invest immediately
- Unlicensed or suspicious exchanges
- Projects with anonymous teams
- Excessive marketing hype without substance
`

const helpText = `I'd be happy to help! Here are some things I can assist you with:

- **Investment Analysis**: Ask about specific cryptocurrencies
- **Portfolio Recommendations**: Get allocation suggestions
- **Sustainability Reports**: Learn about eco-friendly cryptos
- **Market Trends**: Current market analysis
- **Comparisons**: Compare different cryptocurrencies

Try asking: 'Should I invest in Bitcoin?' or 'Compare Ethereum vs Cardano'`
