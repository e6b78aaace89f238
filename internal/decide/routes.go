package decide

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/api/decide", h.HandleDecide)
	r.Get("/api/assistants", h.HandleAssistants)
}
