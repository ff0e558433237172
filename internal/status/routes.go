package status

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)

	router.Get("/api/status", h.getStatus)
	router.Post("/api/sync", h.triggerSync)
	router.Get("/api/queue", h.getQueue)
	router.Post("/api/queue/purge", h.purgeQueue)
	router.Get("/api/cursors", h.getCursors)
	router.Post("/api/reset", h.resetLocalState)

	return router
}
