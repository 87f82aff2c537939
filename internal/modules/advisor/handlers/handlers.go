// Package handlers provides HTTP handlers for the advisory engine.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/akyriacou/cryptosage/internal/domain"
	"github.com/akyriacou/cryptosage/internal/modules/advisor"
)

const defaultPortfolioSize = 10000

// Handler handles advisory HTTP requests.
type Handler struct {
	engine *advisor.Engine
	log    zerolog.Logger
}

// NewHandler creates a new advisory handler.
func NewHandler(engine *advisor.Engine, log zerolog.Logger) *Handler {
	return &Handler{
		engine: engine,
		log:    log.With().Str("handler", "advisor").Logger(),
	}
}

// HandleQuery processes one advisory query.
// POST /api/query
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	var req advisor.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Query == "" {
		h.writeError(w, http.StatusBadRequest, "Query must not be empty")
		return
	}
	if req.PortfolioSize < 0 {
		h.writeError(w, http.StatusBadRequest, "Portfolio size must not be negative")
		return
	}
	if req.PortfolioSize == 0 {
		req.PortfolioSize = defaultPortfolioSize
	}
	if req.TimeHorizon == "" {
		req.TimeHorizon = domain.HorizonMediumTerm
	}

	resp := h.engine.ProcessQuery(r.Context(), req)
	h.writeJSON(w, http.StatusOK, resp)
}

// portfolioResponse is the payload of the portfolio endpoint.
type portfolioResponse struct {
	RiskTolerance domain.RiskTolerance `json:"risk_tolerance"`
	PortfolioSize float64              `json:"portfolio_size"`
	Allocations   []allocationEntry    `json:"allocations"`
	CryptoTotal   float64              `json:"crypto_total_pct"`
	CashReserve   float64              `json:"cash_reserve_pct"`
}

type allocationEntry struct {
	Name            string  `json:"name"`
	Allocation      float64 `json:"allocation_pct"`
	Reasoning       string  `json:"reasoning"`
	EstimatedAmount float64 `json:"estimated_amount"`
}

// HandleGetPortfolio returns the structured portfolio recommendation.
// GET /api/portfolio?risk_tolerance=Moderate&size=10000
func (h *Handler) HandleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	tier := domain.RiskTolerance(r.URL.Query().Get("risk_tolerance"))
	if tier == "" {
		tier = domain.RiskModerate
	}
	if !tier.Valid() {
		h.writeError(w, http.StatusBadRequest, "Unknown risk tolerance")
		return
	}

	size := float64(defaultPortfolioSize)
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, "Invalid portfolio size")
			return
		}
		size = parsed
	}

	portfolio, err := h.engine.PortfolioRecommendation(r.Context(), tier)
	if err != nil {
		h.log.Error().Err(err).Msg("Portfolio recommendation failed")
		h.writeError(w, http.StatusBadGateway, "Market data unavailable")
		return
	}

	entries := make([]allocationEntry, len(portfolio))
	for i, a := range portfolio {
		entries[i] = allocationEntry{
			Name:            a.Name,
			Allocation:      a.Allocation,
			Reasoning:       a.Reasoning,
			EstimatedAmount: size * a.Allocation / 100,
		}
	}

	total := domain.TotalAllocation(portfolio)
	h.writeJSON(w, http.StatusOK, portfolioResponse{
		RiskTolerance: tier,
		PortfolioSize: size,
		Allocations:   entries,
		CryptoTotal:   total,
		CashReserve:   100 - total,
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
