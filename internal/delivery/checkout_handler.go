package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/maxsound/backend/internal/domain"
	"github.com/maxsound/backend/internal/ports"
)

type CheckoutHandler struct {
	checkout ports.CheckoutService
	log      *logger.ZapLogger
}

func NewCheckoutHandler(checkout ports.CheckoutService, log *logger.ZapLogger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		log:      log,
	}
}

type verifyResponse struct {
	Success     bool   `json:"success"`
	Purchased   bool   `json:"purchased"`
	DownloadURL string `json:"downloadUrl,omitempty"`
	PaymentRef  string `json:"paymentRef,omitempty"`
}

// POST /api/checkout/intent {trackId}
func (h *CheckoutHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrackID string `json:"trackId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.checkout.InitiateIntent(r.Context(), req.TrackID)
	if err != nil {
		h.fail(w, err, "Failed to create payment intent")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"clientSecret": res.ClientSecret,
		"amount":       res.Amount,
	})
}

// POST /api/checkout/session {trackId}
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrackID string `json:"trackId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	url, err := h.checkout.InitiateSession(r.Context(), req.TrackID)
	if err != nil {
		h.fail(w, err, "Failed to create checkout session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// GET /api/checkout/verify?sessionId=
//
// Used on return from the hosted payment page. A not-yet-paid session is a
// normal outcome here, reported with 200 {success:false}.
func (h *CheckoutHandler) Verify(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "Missing sessionId")
		return
	}

	res, err := h.checkout.Reconcile(r.Context(), sessionID, "")
	if err != nil {
		h.fail(w, err, "Failed to verify payment")
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{
		Success:     res.Success,
		Purchased:   res.Success,
		DownloadURL: res.DownloadURL,
		PaymentRef:  res.PaymentRef,
	})
}

// POST /api/checkout/confirm {paymentRef, email}
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentRef string `json:"paymentRef"`
		Email      string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PaymentRef == "" {
		writeError(w, http.StatusBadRequest, "Missing paymentRef")
		return
	}

	res, err := h.checkout.Reconcile(r.Context(), req.PaymentRef, req.Email)
	if err != nil {
		h.fail(w, err, "Failed to confirm payment")
		return
	}

	if !res.Success {
		writeError(w, http.StatusBadRequest, "Payment not completed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"downloadUrl": res.DownloadURL,
	})
}

// fail maps the error taxonomy to HTTP statuses: unknown track or payment
// reference → 404, provider communication fault → 502, everything else → 500.
func (h *CheckoutHandler) fail(w http.ResponseWriter, err error, msg string) {
	var pErr *domain.ProviderError

	switch {
	case errors.Is(err, domain.ErrTrackNotFound):
		writeError(w, http.StatusNotFound, "Track not found")
	case errors.Is(err, domain.ErrPaymentRefNotFound):
		writeError(w, http.StatusNotFound, "Unknown payment reference")
	case errors.As(err, &pErr):
		h.log.Log(logger.LogEntry{Level: "error", Message: "payment provider error", Error: err})
		writeError(w, http.StatusBadGateway, msg)
	default:
		h.log.Log(logger.LogEntry{Level: "error", Message: "checkout failed", Error: err})
		writeError(w, http.StatusInternalServerError, msg)
	}
}
