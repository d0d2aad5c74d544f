package delivery

import (
	"errors"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"

	"github.com/maxsound/backend/internal/domain"
	"github.com/maxsound/backend/internal/ports"
)

type TrackHandler struct {
	tracks      ports.TrackRepository
	entitlement ports.EntitlementChecker
	log         *logger.ZapLogger
}

func NewTrackHandler(tracks ports.TrackRepository, entitlement ports.EntitlementChecker, log *logger.ZapLogger) *TrackHandler {
	return &TrackHandler{
		tracks:      tracks,
		entitlement: entitlement,
		log:         log,
	}
}

// GET /api/tracks
func (h *TrackHandler) List(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.tracks.List(r.Context())
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "list tracks failed", Error: err})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}

// GET /api/tracks/{id}
//
// Every fetch counts as a view; repeat views are not deduplicated.
func (h *TrackHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.tracks.IncrementViews(r.Context(), id); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "increment views failed", Error: err})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	track, err := h.tracks.GetByID(r.Context(), id)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "get track failed", Error: err})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if track == nil {
		writeError(w, http.StatusNotFound, "Track not found")
		return
	}

	writeJSON(w, http.StatusOK, track)
}

// DELETE /api/tracks/{id}
func (h *TrackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.tracks.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrTrackNotFound) {
			writeError(w, http.StatusNotFound, "Track not found")
			return
		}
		h.log.Log(logger.LogEntry{Level: "error", Message: "delete track failed", Error: err})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "track deleted",
		Fields:  map[string]any{"trackID": id},
	})

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GET /api/tracks/{id}/purchased?paymentRef=
func (h *TrackHandler) Purchased(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ref := r.URL.Query().Get("paymentRef")

	purchased, err := h.entitlement.IsEntitled(r.Context(), id, ref)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "entitlement check failed", Error: err})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"purchased": purchased})
}
