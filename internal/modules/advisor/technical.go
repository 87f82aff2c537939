package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/akyriacou/cryptosage/pkg/formulas"
)

// handlePriceAnalysis answers price and technical analysis queries for the
// first recognized asset in the query.
func (e *Engine) handlePriceAnalysis(ctx context.Context, query string) string {
	names := extractAssetNames(query)
	if len(names) == 0 {
		return "Please specify which cryptocurrency you'd like me to analyze. For example: 'Analyze Bitcoin price trends'"
	}

	name := names[0]
	id := canonicalID(name)
	if id == "" {
		return fmt.Sprintf("I couldn't find price data for %s. Please check the spelling.", name)
	}

	return fmt.Sprintf("## 📈 Technical Analysis for %s\n\n%s",
		titleWords(name), e.technicalAnalysis(ctx, id))
}

// technicalAnalysis renders the 30-day price levels, momentum, RSI, and
// support/resistance sections for one asset.
func (e *Engine) technicalAnalysis(ctx context.Context, id string) string {
	series, err := e.provider.PriceSeries(ctx, id, 30)
	if err != nil {
		e.log.Warn().Err(err).Str("asset", id).Msg("Price history unavailable")
		return "Unable to fetch price data for technical analysis."
	}
	prices := series.Prices()
	if len(prices) == 0 {
		return "Insufficient price data for technical analysis."
	}

	volatility := formulas.Volatility(prices)
	rsi := formulas.RSI(prices, 14)
	momentum30d := formulas.Momentum(prices)

	momentum7d := 0.0
	if weekSeries, err := e.provider.PriceSeries(ctx, id, 7); err == nil {
		momentum7d = formulas.Momentum(weekSeries.Prices())
	}

	currentPrice := prices[len(prices)-1]
	high30d, low30d := formulas.HighLow(prices)

	var b strings.Builder
	b.WriteString("**📊 Price Analysis (30 days):**\n")
	fmt.Fprintf(&b, "- Current Price: %s\n", money(currentPrice))
	fmt.Fprintf(&b, "- 30-day High: %s\n", money(high30d))
	fmt.Fprintf(&b, "- 30-day Low: %s\n", money(low30d))
	if high30d > low30d {
		fmt.Fprintf(&b, "- Price Range: %.1f%% of range\n\n", (currentPrice-low30d)/(high30d-low30d)*100)
	} else {
		b.WriteString("- Price Range: flat over the period\n\n")
	}

	b.WriteString("**📈 Momentum Indicators:**\n")
	fmt.Fprintf(&b, "- 7-day Momentum: %s\n", signedPct(momentum7d))
	fmt.Fprintf(&b, "- 30-day Momentum: %s\n", signedPct(momentum30d))
	fmt.Fprintf(&b, "- 30-day Volatility: %.1f%%\n\n", volatility)

	// Moving averages need enough history; the section is omitted otherwise.
	sma7 := formulas.SMA(prices, 7)
	ema14 := formulas.EMA(prices, 14)
	if sma7 != nil || ema14 != nil {
		b.WriteString("**📉 Moving Averages:**\n")
		if sma7 != nil {
			trend := "below"
			if currentPrice >= *sma7 {
				trend = "above"
			}
			fmt.Fprintf(&b, "- 7-day SMA: %s (price %s)\n", money(*sma7), trend)
		}
		if ema14 != nil {
			fmt.Fprintf(&b, "- 14-day EMA: %s\n", money(*ema14))
		}
		b.WriteString("\n")
	}

	b.WriteString("**⚖️ RSI Analysis:**\n")
	fmt.Fprintf(&b, "- Current RSI: %.1f\n", rsi)
	switch {
	case rsi < 30:
		b.WriteString("- Signal: **OVERSOLD** - Potential buying opportunity\n")
	case rsi > 70:
		b.WriteString("- Signal: **OVERBOUGHT** - Consider taking profits\n")
	default:
		b.WriteString("- Signal: **NEUTRAL** - No extreme conditions\n")
	}

	b.WriteString("\n**🎯 Technical Signals:**\n")
	fmt.Fprintf(&b, "- **Resistance Level:** %s\n", money(high30d*0.95))
	fmt.Fprintf(&b, "- **Support Level:** %s\n", money(low30d*1.05))

	var signals []string
	if rsi < 30 {
		signals = append(signals, "Oversold condition (bullish)")
	} else if rsi > 70 {
		signals = append(signals, "Overbought condition (bearish)")
	}
	if momentum7d > 5 {
		signals = append(signals, "Strong short-term momentum (bullish)")
	} else if momentum7d < -5 {
		signals = append(signals, "Weak short-term momentum (bearish)")
	}
	if volatility > 30 {
		signals = append(signals, "High volatility (increased risk)")
	} else if volatility < 15 {
		signals = append(signals, "Low volatility (stable conditions)")
	}

	if len(signals) > 0 {
		b.WriteString("\n**Key Signals:**\n")
		for _, signal := range signals {
			fmt.Fprintf(&b, "- %s\n", signal)
		}
	}

	b.WriteString("\n**⚠️ Technical Analysis Disclaimer:** Technical analysis is not predictive and should be combined with fundamental analysis. Past performance does not guarantee future results.")
	return b.String()
}
