package delivery

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/maxsound/backend/internal/ports"
)

const maxSubscriptionSize = 16 << 10

type PushHandler struct {
	store     ports.PushStore
	publicKey string
	log       *logger.ZapLogger
}

func NewPushHandler(store ports.PushStore, publicKey string, log *logger.ZapLogger) *PushHandler {
	return &PushHandler{
		store:     store,
		publicKey: publicKey,
		log:       log,
	}
}

// GET /api/push/public-key
func (h *PushHandler) PublicKey(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"publicKey": h.publicKey})
}

// POST /api/push/subscribe
//
// The body is stored verbatim; only the endpoint is parsed out as the key.
func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxSubscriptionSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var sub struct {
		Endpoint string `json:"endpoint"`
	}
	if err := json.Unmarshal(raw, &sub); err != nil || sub.Endpoint == "" {
		writeError(w, http.StatusBadRequest, "Invalid subscription")
		return
	}

	if err := h.store.SaveSubscription(r.Context(), sub.Endpoint, raw); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "subscribe failed", Error: err})
		writeError(w, http.StatusInternalServerError, "Subscribe failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DELETE /api/push/subscribe
func (h *PushHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Endpoint string `json:"endpoint"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Endpoint == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.store.RemoveSubscription(r.Context(), req.Endpoint); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "unsubscribe failed", Error: err})
		writeError(w, http.StatusInternalServerError, "Unsubscribe failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
