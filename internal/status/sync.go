package status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fieldline/syncbox/internal/logger"
	syncer "github.com/fieldline/syncbox/internal/sync"
	"github.com/fieldline/syncbox/models"
)

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.coordinator.Status(r.Context())
	if err != nil {
		logger.FromRequest(r).Error().
			Str("func", "Handler.getStatus").
			Err(err).
			Msg("reading sync status failed")
		h.writeError(w, http.StatusInternalServerError, "reading sync status failed")
		return
	}

	h.writeJSON(w, http.StatusOK, status)
}

// triggerSync runs a sync pass synchronously and returns its result. A pass
// already in flight is reported as a conflict, not an error: the caller's
// intent (get the data synced) is already being served.
func (h *Handler) triggerSync(w http.ResponseWriter, r *http.Request) {
	result, err := h.coordinator.Sync(r.Context())
	if err != nil {
		if errors.Is(err, syncer.ErrSyncInProgress) {
			h.writeError(w, http.StatusConflict, "sync already in progress")
			return
		}
		logger.FromRequest(r).Error().
			Str("func", "Handler.triggerSync").
			Err(err).
			Msg("manual sync failed")
		h.writeError(w, http.StatusInternalServerError, "sync failed")
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) getQueue(w http.ResponseWriter, r *http.Request) {
	pending, err := h.queue.ListPending(r.Context())
	if err != nil {
		logger.FromRequest(r).Error().
			Str("func", "Handler.getQueue").
			Err(err).
			Msg("listing mutation queue failed")
		h.writeError(w, http.StatusInternalServerError, "listing mutation queue failed")
		return
	}

	h.writeJSON(w, http.StatusOK, pending)
}

// purgeQueue drops mutations whose retry count reached the ceiling. This is
// the only purge path in the system: data loss stays an explicit operator
// decision.
func (h *Handler) purgeQueue(w http.ResponseWriter, r *http.Request) {
	maxRetries := h.maxRetries
	if raw := r.URL.Query().Get("max_retries"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "max_retries must be a positive integer")
			return
		}
		maxRetries = parsed
	}

	purged, err := h.queue.PurgeExhausted(r.Context(), maxRetries)
	if err != nil {
		logger.FromRequest(r).Error().
			Str("func", "Handler.purgeQueue").
			Err(err).
			Msg("purging mutation queue failed")
		h.writeError(w, http.StatusInternalServerError, "purging mutation queue failed")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]int{"purged": purged})
}

func (h *Handler) getCursors(w http.ResponseWriter, r *http.Request) {
	cursors, err := h.cursors.List(r.Context())
	if err != nil {
		logger.FromRequest(r).Error().
			Str("func", "Handler.getCursors").
			Err(err).
			Msg("listing sync cursors failed")
		h.writeError(w, http.StatusInternalServerError, "listing sync cursors failed")
		return
	}
	if cursors == nil {
		cursors = []models.SyncCursor{}
	}

	h.writeJSON(w, http.StatusOK, cursors)
}

// resetLocalState wipes records, queue and cursors so the next sync runs as
// a first sync. Like purge, it is refused while a pass is in flight: the
// coordinator and the reset must not race over the same tables.
func (h *Handler) resetLocalState(w http.ResponseWriter, r *http.Request) {
	if h.coordinator.State() != models.StateIdle {
		h.writeError(w, http.StatusConflict, "sync in progress, retry after it completes")
		return
	}

	if err := h.local.Reset(r.Context()); err != nil {
		logger.FromRequest(r).Error().
			Str("func", "Handler.resetLocalState").
			Err(err).
			Msg("local state reset failed")
		h.writeError(w, http.StatusInternalServerError, "local state reset failed")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
