// Package status exposes the local HTTP status surface: sync health for the
// UI to poll, a manual sync trigger, and the queue inspection and purge
// endpoints. The server listens on localhost only; it is an operator and UI
// surface, not a public API.
package status

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fieldline/syncbox/internal/logger"
	"github.com/fieldline/syncbox/internal/store"
	syncer "github.com/fieldline/syncbox/internal/sync"
)

// Resetter wipes all local state: records, queue and cursors. After a reset
// the next sync behaves like a first sync.
type Resetter interface {
	Reset(ctx context.Context) error
}

type Handler struct {
	coordinator syncer.Coordinator
	queue       store.MutationQueueRepository
	cursors     store.CursorRepository
	local       Resetter
	maxRetries  int

	logger *logger.Logger
}

func NewHandler(coordinator syncer.Coordinator, queue store.MutationQueueRepository, cursors store.CursorRepository, local Resetter, maxRetries int, logger *logger.Logger) *Handler {
	logger.Info().Msg("status handler created")
	return &Handler{
		coordinator: coordinator,
		queue:       queue,
		cursors:     cursors,
		local:       local,
		maxRetries:  maxRetries,
		logger:      logger,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error().
			Str("func", "Handler.writeJSON").
			Err(err).
			Msg("encoding response failed")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, code int, msg string) {
	h.writeJSON(w, code, map[string]string{"error": msg})
}
