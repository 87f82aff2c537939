package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the advisory routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/query", h.HandleQuery)
	r.Get("/portfolio", h.HandleGetPortfolio)
}
