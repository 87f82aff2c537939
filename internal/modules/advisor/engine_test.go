package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akyriacou/cryptosage/internal/domain"
	"github.com/akyriacou/cryptosage/internal/modules/sustainability"
)

// fakeProvider serves canned market data in tests.
type fakeProvider struct {
	assets   map[string]domain.MarketRecord
	series   map[string]domain.PriceSeries
	snapshot *domain.GlobalSnapshot
	top      []domain.MarketRecord
	trending []domain.TrendingCoin
	err      error
}

func (f *fakeProvider) TopAssets(_ context.Context, _ int) ([]domain.MarketRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.top, nil
}

func (f *fakeProvider) AssetDetail(_ context.Context, id string) (*domain.MarketRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	record, ok := f.assets[id]
	if !ok {
		return nil, errors.New("asset not found")
	}
	return &record, nil
}

func (f *fakeProvider) PriceSeries(_ context.Context, id string, _ int) (domain.PriceSeries, error) {
	if f.err != nil {
		return nil, f.err
	}
	series, ok := f.series[id]
	if !ok {
		return nil, errors.New("no price history")
	}
	return series, nil
}

func (f *fakeProvider) GlobalSnapshot(_ context.Context) (*domain.GlobalSnapshot, error) {
	if f.err != nil || f.snapshot == nil {
		return nil, errors.New("snapshot unavailable")
	}
	return f.snapshot, nil
}

func (f *fakeProvider) Trending(_ context.Context) ([]domain.TrendingCoin, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.trending, nil
}

func seriesOf(prices ...float64) domain.PriceSeries {
	series := make(domain.PriceSeries, len(prices))
	for i, p := range prices {
		series[i] = domain.PricePoint{Price: p}
	}
	return series
}

func newTestEngine(provider domain.MarketDataProvider) *Engine {
	scorer := sustainability.NewScorer(sustainability.DefaultWeights)
	return New(provider, scorer, DefaultRiskProfiles, zerolog.Nop())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  intent
	}{
		{"comparison keyword", "Compare Bitcoin vs Ethereum", intentComparison},
		{"versus", "bitcoin versus cardano", intentComparison},
		{"investment phrase", "Should I invest in Bitcoin?", intentInvestment},
		{"buy keyword", "Is now a good time to buy Solana?", intentInvestment},
		{"portfolio keyword", "How should I structure my portfolio?", intentPortfolio},
		{"sustainability keyword", "Which coins are green?", intentSustainability},
		{"price keyword", "Analyze Bitcoin price trends", intentPrice},
		{"no keyword", "Tell me about crypto", intentGeneral},

		// Priority: earlier categories claim queries that also contain
		// later keywords.
		{"comparison beats investment", "Compare which crypto to buy", intentComparison},
		{"investment beats portfolio", "Should I buy for my portfolio?", intentInvestment},
		{"portfolio beats sustainability", "A green portfolio please", intentPortfolio},
		{"sustainability beats price", "Energy cost vs price? versus wins", intentComparison},
		{"sustainability before price", "sustainability of the price rally", intentSustainability},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.query))
		})
	}
}

func TestExtractAssetNames(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"single full name", "Should I invest in Bitcoin?", []string{"bitcoin"}},
		{"ticker only", "what about ada", []string{"ada"}},
		{"full name wins over ticker", "Ethereum or not", []string{"ethereum"}},
		{"two assets sorted", "Compare Ethereum vs Bitcoin", []string{"bitcoin", "ethereum"}},
		{"duplicates collapse", "btc bitcoin BTC", []string{"bitcoin"}},
		{"no assets", "what is a blockchain", []string{}},
		{"matic alias", "thoughts on polygon?", []string{"polygon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractAssetNames(tt.query))
		})
	}
}

func TestProcessQueryMetadata(t *testing.T) {
	engine := newTestEngine(&fakeProvider{})

	resp := engine.ProcessQuery(context.Background(), Request{
		Query:         "hello",
		RiskTolerance: domain.RiskModerate,
	})

	assert.NotEmpty(t, resp.ID)
	assert.False(t, resp.GeneratedAt.IsZero())
	assert.Contains(t, resp.Text, "General Cryptocurrency Guidance")

	other := engine.ProcessQuery(context.Background(), Request{Query: "hello"})
	assert.NotEqual(t, resp.ID, other.ID)
}

func TestProcessQueryInvalidTierDefaultsToModerate(t *testing.T) {
	provider := &fakeProvider{
		top: []domain.MarketRecord{
			{Symbol: "btc"}, {Symbol: "eth"},
		},
	}
	engine := newTestEngine(provider)

	resp := engine.ProcessQuery(context.Background(), Request{
		Query:         "suggest a portfolio allocation",
		PortfolioSize: 10000,
		RiskTolerance: "YOLO",
	})

	assert.Contains(t, resp.Text, "moderate risk profile")
	assert.Contains(t, resp.Text, "Bitcoin (BTC): 30%")
}

func TestComparisonQuery(t *testing.T) {
	provider := &fakeProvider{
		assets: map[string]domain.MarketRecord{
			"bitcoin":  {ID: "bitcoin", MarketCapRank: 1, CurrentPrice: 50000, PriceChange24h: 2.5},
			"ethereum": {ID: "ethereum", MarketCapRank: 2, CurrentPrice: 3000, PriceChange24h: -1.2},
		},
		series: map[string]domain.PriceSeries{
			"bitcoin":  seriesOf(48000, 49000, 50000),
			"ethereum": seriesOf(3100, 3050, 3000),
		},
	}
	engine := newTestEngine(provider)

	text := engine.route(context.Background(), Request{
		Query:         "Compare Bitcoin vs Ethereum",
		RiskTolerance: domain.RiskModerate,
	})

	assert.Contains(t, text, "## 🔍 Cryptocurrency Comparison")
	assert.Contains(t, text, "### Bitcoin")
	assert.Contains(t, text, "### Ethereum")
	assert.Contains(t, text, "Comparison Summary")
	assert.Contains(t, text, "1. Bitcoin (Rank #1)")
	assert.Contains(t, text, "2. Ethereum (Rank #2)")
	// Bitcoin leads 24h performance, Ethereum is negative.
	assert.Contains(t, text, "1. Bitcoin: +2.50% 🟢")
	assert.Contains(t, text, "2. Ethereum: -1.20% 🔴")
	// Ethereum outranks Bitcoin on sustainability.
	assert.Contains(t, text, "1. Ethereum:")
	assert.Contains(t, text, "Recommended:** Bitcoin")
}

func TestComparisonQueryNeedsTwoAssets(t *testing.T) {
	engine := newTestEngine(&fakeProvider{})

	text := engine.route(context.Background(), Request{
		Query:         "compare bitcoin",
		RiskTolerance: domain.RiskModerate,
	})

	assert.Contains(t, text, "at least two cryptocurrencies")
}

func TestInvestmentQuery(t *testing.T) {
	provider := &fakeProvider{
		assets: map[string]domain.MarketRecord{
			"bitcoin": {
				ID: "bitcoin", MarketCapRank: 1, CurrentPrice: 50000,
				PriceChange24h: 1.5, PriceChange7d: 4.2, PriceChange30d: 10.1,
			},
		},
		series: map[string]domain.PriceSeries{
			// Short, calm series: RSI neutral, volatility low.
			"bitcoin": seriesOf(100, 102, 101, 103, 104),
		},
	}
	engine := newTestEngine(provider)

	text := engine.route(context.Background(), Request{
		Query:         "Should I invest in Bitcoin?",
		PortfolioSize: 10000,
		RiskTolerance: domain.RiskConservative,
		TimeHorizon:   domain.HorizonLongTerm,
	})

	assert.Contains(t, text, "## 💰 Investment Analysis for Bitcoin")
	assert.Contains(t, text, "Price: $50,000.00")
	assert.Contains(t, text, "24h: +1.50%, 7d: +4.20%, 30d: +10.10%")
	assert.Contains(t, text, "**Risk Assessment:** Low")
	assert.Contains(t, text, "✅ **POSITIVE**")
	assert.Contains(t, text, "Neutral technical indicators")
	// Bitcoin's PoW profile keeps its sustainability score low.
	assert.Contains(t, text, "consider environmental impact")
	// Conservative base 5 with low volatility and top rank: 5*1.2*1.3=7.8.
	assert.Contains(t, text, "**Suggested Position Size:** 7.8% of portfolio ($780.00)")
	assert.Contains(t, text, "Long-term (> 3 years) Considerations")
	assert.Contains(t, text, "Regular rebalancing recommended")
	assert.Contains(t, text, "Risk Disclaimer")
}

func TestInvestmentQueryUnknownAsset(t *testing.T) {
	engine := newTestEngine(&fakeProvider{})

	text := engine.route(context.Background(), Request{
		Query:         "Should I invest right now?",
		RiskTolerance: domain.RiskModerate,
	})

	assert.Contains(t, text, "Please specify which cryptocurrency")
}

func TestInvestmentQueryProviderDown(t *testing.T) {
	engine := newTestEngine(&fakeProvider{err: errors.New("upstream down")})

	text := engine.route(context.Background(), Request{
		Query:         "Should I buy Ethereum?",
		RiskTolerance: domain.RiskModerate,
	})

	assert.Contains(t, text, "Unable to fetch cryptocurrency data")
}

func TestSustainabilityQueryNamedAsset(t *testing.T) {
	engine := newTestEngine(&fakeProvider{})

	text := engine.route(context.Background(), Request{
		Query:         "How green is Cardano?",
		RiskTolerance: domain.RiskModerate,
	})

	assert.Contains(t, text, "## 🌱 Sustainability Analysis")
	assert.Contains(t, text, "### Cardano")
	assert.Contains(t, text, "Overall Sustainability Score: 100.0/100")
	assert.Contains(t, text, "Energy Efficiency: 100.0/100")
	assert.Contains(t, text, "Key Features:")
}

func TestSustainabilityQueryGeneral(t *testing.T) {
	engine := newTestEngine(&fakeProvider{})

	text := engine.route(context.Background(), Request{
		Query:         "Tell me about crypto sustainability",
		RiskTolerance: domain.RiskModerate,
	})

	assert.Contains(t, text, "Cryptocurrency Sustainability Overview")
	assert.Contains(t, text, "Proof-of-Stake (PoS)")
}

func TestPriceQueryRendersTechnicalAnalysis(t *testing.T) {
	provider := &fakeProvider{
		series: map[string]domain.PriceSeries{
			"bitcoin": seriesOf(100, 110, 90, 105, 120),
		},
	}
	engine := newTestEngine(provider)

	text := engine.route(context.Background(), Request{
		Query:         "Analyze Bitcoin price trends",
		RiskTolerance: domain.RiskModerate,
	})

	assert.Contains(t, text, "## 📈 Technical Analysis for Bitcoin")
	assert.Contains(t, text, "Current Price: $120.00")
	assert.Contains(t, text, "30-day High: $120.00")
	assert.Contains(t, text, "30-day Low: $90.00")
	// Resistance is high*0.95, support is low*1.05.
	assert.Contains(t, text, "**Resistance Level:** $114.00")
	assert.Contains(t, text, "**Support Level:** $94.50")
	// Momentum (120-100)/100 = +20%.
	assert.Contains(t, text, "30-day Momentum: +20.00%")
	assert.Contains(t, text, "Technical Analysis Disclaimer")
}

func TestPriceQueryLongSeriesIncludesMovingAverages(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	provider := &fakeProvider{
		series: map[string]domain.PriceSeries{"ethereum": seriesOf(prices...)},
	}
	engine := newTestEngine(provider)

	text := engine.route(context.Background(), Request{
		Query:         "Ethereum technical analysis",
		RiskTolerance: domain.RiskModerate,
	})

	// Last 7 prices are 123..129, so the 7-day SMA is 126 and the current
	// price of 129 sits above it.
	assert.Contains(t, text, "7-day SMA: $126.00 (price above)")
	assert.Contains(t, text, "14-day EMA: $")
}

func TestPriceQueryNoHistory(t *testing.T) {
	engine := newTestEngine(&fakeProvider{})

	text := engine.route(context.Background(), Request{
		Query:         "Analyze Dogecoin price trends",
		RiskTolerance: domain.RiskModerate,
	})

	assert.Contains(t, text, "Unable to fetch price data")
}

func TestGeneralQueryVariants(t *testing.T) {
	provider := &fakeProvider{
		snapshot: &domain.GlobalSnapshot{
			TotalMarketCapB:   1700.5,
			TotalVolumeB:      90.3,
			MarketCapChange24: 2.1,
			DominanceBySymbol: map[string]float64{"btc": 52.4},
		},
	}
	engine := newTestEngine(provider)

	beginner := engine.route(context.Background(), Request{
		Query:         "I'm a beginner, where do I start?",
		RiskTolerance: domain.RiskConservative,
	})
	assert.Contains(t, beginner, "Getting Started Steps")
	assert.Contains(t, beginner, "For Conservative Investors")

	market := engine.route(context.Background(), Request{
		Query:         "How is the market doing?",
		RiskTolerance: domain.RiskModerate,
	})
	assert.Contains(t, market, "Total Market Cap:** $1700.5B")
	assert.Contains(t, market, "Bitcoin Dominance:** 52.4%")
	assert.Contains(t, market, "🟢 **Bullish**")
	assert.Contains(t, market, "'Bitcoin season'")

	help := engine.route(context.Background(), Request{
		Query:         "what can you do",
		RiskTolerance: domain.RiskModerate,
	})
	assert.Contains(t, help, "I'd be happy to help")
}

func TestRiskQueryWithoutRouterKeywords(t *testing.T) {
	engine := newTestEngine(&fakeProvider{})

	// "risk" alone reaches the general handler; none of the router
	// keyword sets contain it.
	text := engine.route(context.Background(), Request{
		Query:         "How do I manage risk?",
		RiskTolerance: domain.RiskModerate,
	})

	assert.Contains(t, text, "Cryptocurrency Risk Management")
	assert.Contains(t, text, "Position Sizing")
}

type panickyProvider struct{ fakeProvider }

func (p *panickyProvider) GlobalSnapshot(_ context.Context) (*domain.GlobalSnapshot, error) {
	panic("boom")
}

func TestRouteRecoversFromPanic(t *testing.T) {
	engine := newTestEngine(&panickyProvider{})

	resp := engine.ProcessQuery(context.Background(), Request{
		Query:         "How is the market?",
		RiskTolerance: domain.RiskModerate,
	})

	require.NotEmpty(t, resp.Text)
	assert.Contains(t, resp.Text, "something went wrong")
}

func TestMarketOverviewSentimentBands(t *testing.T) {
	tests := []struct {
		change float64
		want   string
	}{
		{4.0, "Very Bullish"},
		{2.0, "Bullish"},
		{0.0, "Neutral"},
		{-2.0, "Bearish"},
		{-5.0, "Very Bearish"},
	}

	for _, tt := range tests {
		provider := &fakeProvider{
			snapshot: &domain.GlobalSnapshot{
				MarketCapChange24: tt.change,
				DominanceBySymbol: map[string]float64{"btc": 45},
			},
		}
		engine := newTestEngine(provider)

		text := engine.MarketOverview(context.Background())
		assert.Contains(t, text, tt.want, "change %.1f", tt.change)
	}
}
