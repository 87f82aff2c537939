package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/akyriacou/cryptosage/internal/domain"
	"github.com/akyriacou/cryptosage/pkg/formulas"
)

// handleInvestment answers "should I invest in X" queries with a full
// recommendation: current metrics, risk assessment, technical and
// sustainability signals, position size, and horizon guidance.
func (e *Engine) handleInvestment(ctx context.Context, req Request) string {
	names := extractAssetNames(req.Query)
	if len(names) == 0 {
		return "Please specify which cryptocurrency you're asking about. For example: 'Should I invest in Bitcoin?'"
	}

	name := names[0]
	id := canonicalID(name)
	if id == "" {
		return fmt.Sprintf("I couldn't find information about %s. Please check the spelling or try a different cryptocurrency.", name)
	}

	return fmt.Sprintf("## 💰 Investment Analysis for %s\n\n%s",
		titleWords(name), e.investmentRecommendation(ctx, id, req))
}

func (e *Engine) investmentRecommendation(ctx context.Context, id string, req Request) string {
	detail, err := e.provider.AssetDetail(ctx, id)
	if err != nil {
		e.log.Warn().Err(err).Str("asset", id).Msg("Asset detail unavailable")
		return "Unable to fetch cryptocurrency data for analysis."
	}

	volatility := 0.0
	rsi := 50.0
	if series, err := e.provider.PriceSeries(ctx, id, 30); err == nil && len(series) > 0 {
		prices := series.Prices()
		volatility = formulas.Volatility(prices)
		rsi = formulas.RSI(prices, 14)
	}

	score := e.scorer.Score(id)
	profile := e.profiles.profileFor(req.RiskTolerance)

	var b strings.Builder
	b.WriteString("**Current Metrics:**\n")
	fmt.Fprintf(&b, "- Price: %s\n", money(detail.CurrentPrice))
	fmt.Fprintf(&b, "- 24h: %s, 7d: %s, 30d: %s\n",
		signedPct(detail.PriceChange24h), signedPct(detail.PriceChange7d), signedPct(detail.PriceChange30d))
	fmt.Fprintf(&b, "- Market Cap Rank: #%d\n", detail.MarketCapRank)
	fmt.Fprintf(&b, "- Volatility: %.1f%%\n", volatility)
	fmt.Fprintf(&b, "- RSI: %.1f\n", rsi)
	fmt.Fprintf(&b, "- Sustainability Score: %.1f/100\n\n", score.TotalScore)

	riskLevel := "Low"
	if volatility > 30 {
		riskLevel = "High"
	} else if volatility > 20 {
		riskLevel = "Medium"
	}
	fmt.Fprintf(&b, "**Risk Assessment:** %s\n\n", riskLevel)

	b.WriteString("**Investment Recommendation:**\n")

	if volatility > profile.MaxVolatility {
		fmt.Fprintf(&b, "⚠️ **CAUTION**: This crypto's volatility (%.1f%%) exceeds your %s risk tolerance.\n\n",
			volatility, strings.ToLower(string(req.RiskTolerance)))
	}

	if detail.MarketCapRank <= profile.PreferredRankLimit {
		b.WriteString("✅ **POSITIVE**: Well-established cryptocurrency with good market position.\n")
	} else {
		b.WriteString("⚠️ **CAUTION**: Lower market cap cryptocurrency with higher risk.\n")
	}

	switch {
	case rsi < 30:
		b.WriteString("📈 **TECHNICAL**: Potentially oversold (RSI < 30) - possible buying opportunity.\n")
	case rsi > 70:
		b.WriteString("📉 **TECHNICAL**: Potentially overbought (RSI > 70) - consider waiting.\n")
	default:
		b.WriteString("📊 **TECHNICAL**: Neutral technical indicators.\n")
	}

	switch {
	case score.TotalScore >= 70:
		b.WriteString("🌱 **SUSTAINABILITY**: High sustainability score - good for ESG-conscious investors.\n")
	case score.TotalScore >= 50:
		b.WriteString("🌱 **SUSTAINABILITY**: Moderate sustainability score.\n")
	default:
		b.WriteString("⚠️ **SUSTAINABILITY**: Low sustainability score - consider environmental impact.\n")
	}

	allocation := profile.PositionSize(volatility, detail.MarketCapRank, score.TotalScore)
	amount := req.PortfolioSize * allocation / 100
	fmt.Fprintf(&b, "\n**Suggested Position Size:** %v%% of portfolio (%s)\n\n", allocation, money(amount))

	fmt.Fprintf(&b, "**%s Considerations:**\n", req.TimeHorizon)
	b.WriteString(horizonGuidance(req.TimeHorizon))

	b.WriteString("\n**⚠️ Risk Disclaimer:** This is educational analysis only. Cryptocurrency investments are highly risky and volatile. Never invest more than you can afford to lose.")
	return b.String()
}

// horizonGuidance returns the bullet list for a time horizon. Anything not
// explicitly short or medium term falls through to long-term guidance.
func horizonGuidance(horizon domain.TimeHorizon) string {
	switch {
	case strings.Contains(string(horizon), "Short-term"):
		return "- Focus on technical indicators and market sentiment\n" +
			"- Consider taking profits at resistance levels\n" +
			"- Monitor closely for volatility\n"
	case strings.Contains(string(horizon), "Medium-term"):
		return "- Balance technical and fundamental analysis\n" +
			"- Consider dollar-cost averaging for entry\n" +
			"- Monitor project development and adoption\n"
	default:
		return "- Focus on fundamental strength and adoption potential\n" +
			"- Consider sustainability and regulatory outlook\n" +
			"- Regular rebalancing recommended\n"
	}
}
