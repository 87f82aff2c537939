// Package handlers provides HTTP handlers for market-wide data.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/akyriacou/cryptosage/internal/domain"
)

// OverviewAnalyzer renders the market overview as advisory text.
type OverviewAnalyzer interface {
	MarketOverview(ctx context.Context) string
}

// Handler handles market data HTTP requests.
type Handler struct {
	provider domain.MarketDataProvider
	analyzer OverviewAnalyzer
	log      zerolog.Logger
}

// NewHandler creates a new market handler.
func NewHandler(provider domain.MarketDataProvider, analyzer OverviewAnalyzer, log zerolog.Logger) *Handler {
	return &Handler{
		provider: provider,
		analyzer: analyzer,
		log:      log.With().Str("handler", "market").Logger(),
	}
}

// HandleGetOverview returns the global snapshot with the sentiment analysis.
// GET /api/market/overview
func (h *Handler) HandleGetOverview(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.provider.GlobalSnapshot(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Global snapshot unavailable")
		h.writeError(w, http.StatusBadGateway, "Market data unavailable")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshot": snapshot,
		"analysis": h.analyzer.MarketOverview(r.Context()),
	})
}

// HandleGetTrending returns the currently trending assets.
// GET /api/market/trending
func (h *Handler) HandleGetTrending(w http.ResponseWriter, r *http.Request) {
	trending, err := h.provider.Trending(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Trending assets unavailable")
		h.writeError(w, http.StatusBadGateway, "Market data unavailable")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"trending": trending,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
