package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the market routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/market", func(r chi.Router) {
		r.Get("/overview", h.HandleGetOverview)
		r.Get("/trending", h.HandleGetTrending)
	})
}
