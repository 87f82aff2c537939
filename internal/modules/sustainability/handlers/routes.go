package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the sustainability routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/sustainability", func(r chi.Router) {
		r.Get("/score/{id}", h.HandleGetScore)
		r.Get("/recommendations", h.HandleGetRecommendations)
		r.Get("/report", h.HandleGetReport)
	})
}
