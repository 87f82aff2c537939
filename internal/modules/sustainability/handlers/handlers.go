// Package handlers provides HTTP handlers for sustainability scoring.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/akyriacou/cryptosage/internal/domain"
	"github.com/akyriacou/cryptosage/internal/modules/sustainability"
)

// Handler handles sustainability HTTP requests.
type Handler struct {
	scorer *sustainability.Scorer
	log    zerolog.Logger
}

// NewHandler creates a new sustainability handler.
func NewHandler(scorer *sustainability.Scorer, log zerolog.Logger) *Handler {
	return &Handler{
		scorer: scorer,
		log:    log.With().Str("handler", "sustainability").Logger(),
	}
}

// HandleGetScore returns the score breakdown for one asset. Unknown ids get
// the default profile rather than a 404; scoring never fails.
// GET /api/sustainability/score/{id}
func (h *Handler) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.writeError(w, http.StatusBadRequest, "Asset id is required")
		return
	}
	h.writeJSON(w, http.StatusOK, h.scorer.Score(id))
}

// HandleGetRecommendations returns the sustainable picks for a risk tier.
// GET /api/sustainability/recommendations?risk_tolerance=Moderate
func (h *Handler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	tier := domain.RiskTolerance(r.URL.Query().Get("risk_tolerance"))
	if tier == "" {
		tier = domain.RiskModerate
	}
	if !tier.Valid() {
		h.writeError(w, http.StatusBadRequest, "Unknown risk tolerance")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"risk_tolerance":  tier,
		"recommendations": h.scorer.Recommendations(tier),
	})
}

// HandleGetReport returns the full sustainability report.
// GET /api/sustainability/report
func (h *Handler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.scorer.Report())
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
