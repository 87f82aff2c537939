package advisor

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/akyriacou/cryptosage/internal/domain"
	"github.com/akyriacou/cryptosage/internal/modules/sustainability"
)

// Engine is the rule-based advisory engine. It holds only immutable
// configuration, so concurrent invocations are safe as long as the provider
// is safe for concurrent use.
type Engine struct {
	provider domain.MarketDataProvider
	scorer   *sustainability.Scorer
	profiles RiskProfiles
	log      zerolog.Logger
}

// New creates an advisory engine. The risk profile table is injected so
// alternative configurations can run side by side in tests.
func New(provider domain.MarketDataProvider, scorer *sustainability.Scorer, profiles RiskProfiles, log zerolog.Logger) *Engine {
	return &Engine{
		provider: provider,
		scorer:   scorer,
		profiles: profiles,
		log:      log.With().Str("module", "advisor").Logger(),
	}
}

// Request carries one advisory query with the caller's parameters.
type Request struct {
	Query         string               `json:"query"`
	PortfolioSize float64              `json:"portfolio_size"`
	RiskTolerance domain.RiskTolerance `json:"risk_tolerance"`
	TimeHorizon   domain.TimeHorizon   `json:"time_horizon"`
}

// Response is the engine's answer: formatted advisory text plus metadata.
type Response struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	GeneratedAt time.Time `json:"generated_at"`
}

// intent is a query category. Queries are classified by a single first-match
// scan over the keyword sets below; each query is independent (no multi-turn
// state).
type intent int

const (
	intentGeneral intent = iota
	intentComparison
	intentInvestment
	intentPortfolio
	intentSustainability
	intentPrice
)

// intentRules is the ordered classification table. Order is significant and
// first match wins; tests pin it down.
var intentRules = []struct {
	intent   intent
	keywords []string
}{
	{intentComparison, []string{"compare", "vs", "versus", "between"}},
	{intentInvestment, []string{"should i invest", "buy", "recommend"}},
	{intentPortfolio, []string{"portfolio", "allocation", "diversify"}},
	{intentSustainability, []string{"sustainability", "environment", "green", "energy"}},
	{intentPrice, []string{"price", "trend", "analysis", "technical"}},
}

// classify returns the intent of a query via the ordered keyword scan.
func classify(query string) intent {
	lower := strings.ToLower(query)
	for _, rule := range intentRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.intent
			}
		}
	}
	return intentGeneral
}

// ProcessQuery routes a query to its handler and returns formatted advisory
// text. It never fails: no-data conditions and internal faults all surface as
// user-facing text.
func (e *Engine) ProcessQuery(ctx context.Context, req Request) Response {
	if !req.RiskTolerance.Valid() {
		req.RiskTolerance = domain.RiskModerate
	}

	return Response{
		ID:          uuid.NewString(),
		Text:        e.route(ctx, req),
		GeneratedAt: time.Now().UTC(),
	}
}

// route dispatches on intent. Any panic inside a handler is converted into an
// apologetic message at this boundary; nothing propagates to the caller.
func (e *Engine) route(ctx context.Context, req Request) (text string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Str("query", req.Query).Msg("Handler panicked")
			text = "I'm sorry, something went wrong while analyzing your question. Please try again."
		}
	}()

	switch classify(req.Query) {
	case intentComparison:
		return e.handleComparison(ctx, req.Query, req.RiskTolerance)
	case intentInvestment:
		return e.handleInvestment(ctx, req)
	case intentPortfolio:
		return e.handlePortfolio(ctx, req)
	case intentSustainability:
		return e.handleSustainability(req.Query)
	case intentPrice:
		return e.handlePriceAnalysis(ctx, req.Query)
	default:
		return e.handleGeneral(ctx, req.Query, req.RiskTolerance)
	}
}
