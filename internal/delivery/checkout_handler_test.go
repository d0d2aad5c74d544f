package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/maxsound/backend/internal/domain"
	"github.com/maxsound/backend/internal/ports"
)

func checkoutRouter(svc ports.CheckoutService) http.Handler {
	h := NewCheckoutHandler(svc, testLogger())
	r := chi.NewRouter()
	r.Post("/api/checkout/intent", h.CreateIntent)
	r.Post("/api/checkout/session", h.CreateSession)
	r.Get("/api/checkout/verify", h.Verify)
	r.Post("/api/checkout/confirm", h.Confirm)
	return r
}

func TestCreateIntentOK(t *testing.T) {
	svc := &mockCheckoutService{
		initiateIntentFn: func(ctx context.Context, trackID string) (*ports.IntentCheckout, error) {
			if trackID != "abc" {
				t.Fatalf("trackID = %q", trackID)
			}
			return &ports.IntentCheckout{ClientSecret: "secret_1", Amount: 2.99}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/checkout/intent", strings.NewReader(`{"trackId":"abc"}`))
	checkoutRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		ClientSecret string  `json:"clientSecret"`
		Amount       float64 `json:"amount"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.ClientSecret != "secret_1" || body.Amount != 2.99 {
		t.Fatalf("body = %+v", body)
	}
}

func TestCreateIntentUnknownTrack(t *testing.T) {
	svc := &mockCheckoutService{
		initiateIntentFn: func(ctx context.Context, trackID string) (*ports.IntentCheckout, error) {
			return nil, domain.ErrTrackNotFound
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/checkout/intent", strings.NewReader(`{"trackId":"missing-id"}`))
	checkoutRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Fatalf("error body missing: %s", rec.Body.String())
	}
}

func TestCreateSessionProviderDown(t *testing.T) {
	svc := &mockCheckoutService{
		initiateSessionFn: func(ctx context.Context, trackID string) (string, error) {
			return "", &domain.ProviderError{Op: "create checkout session", Err: errors.New("timeout")}
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/checkout/session", strings.NewReader(`{"trackId":"abc"}`))
	checkoutRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestVerifyPaid(t *testing.T) {
	svc := &mockCheckoutService{
		reconcileFn: func(ctx context.Context, ref, email string) (*ports.CheckoutResult, error) {
			if ref != "cs_1" {
				t.Fatalf("ref = %q", ref)
			}
			return &ports.CheckoutResult{
				Success:     true,
				PaymentRef:  "pi_1",
				DownloadURL: "https://cdn.example/full.mp3",
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/checkout/verify?sessionId=cs_1", nil)
	checkoutRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body verifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Success || !body.Purchased || body.DownloadURL == "" || body.PaymentRef != "pi_1" {
		t.Fatalf("body = %+v", body)
	}
}

func TestVerifyUnpaidIsOK(t *testing.T) {
	svc := &mockCheckoutService{
		reconcileFn: func(ctx context.Context, ref, email string) (*ports.CheckoutResult, error) {
			return &ports.CheckoutResult{}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/checkout/verify?sessionId=cs_1", nil)
	checkoutRouter(svc).ServeHTTP(rec, req)

	// not paid is a normal state, not an error status
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body verifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Success || body.Purchased || body.DownloadURL != "" {
		t.Fatalf("body = %+v", body)
	}
}

func TestVerifyUnknownReference(t *testing.T) {
	svc := &mockCheckoutService{
		reconcileFn: func(ctx context.Context, ref, email string) (*ports.CheckoutResult, error) {
			return nil, domain.ErrPaymentRefNotFound
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/checkout/verify?sessionId=cs_bogus", nil)
	checkoutRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Unknown payment reference") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestConfirmUnknownReference(t *testing.T) {
	svc := &mockCheckoutService{
		reconcileFn: func(ctx context.Context, ref, email string) (*ports.CheckoutResult, error) {
			return nil, domain.ErrPaymentRefNotFound
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/checkout/confirm", strings.NewReader(`{"paymentRef":"pi_bogus"}`))
	checkoutRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestVerifyMissingSessionID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/checkout/verify", nil)
	checkoutRouter(&mockCheckoutService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestConfirmNotCompleted(t *testing.T) {
	svc := &mockCheckoutService{
		reconcileFn: func(ctx context.Context, ref, email string) (*ports.CheckoutResult, error) {
			return &ports.CheckoutResult{}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/checkout/confirm", strings.NewReader(`{"paymentRef":"pi_1"}`))
	checkoutRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Payment not completed") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestConfirmOK(t *testing.T) {
	svc := &mockCheckoutService{
		reconcileFn: func(ctx context.Context, ref, email string) (*ports.CheckoutResult, error) {
			if email != "buyer@example.com" {
				t.Fatalf("email = %q", email)
			}
			return &ports.CheckoutResult{
				Success:     true,
				PaymentRef:  ref,
				DownloadURL: "https://cdn.example/full.mp3",
			}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/checkout/confirm",
		strings.NewReader(`{"paymentRef":"pi_1","email":"buyer@example.com"}`))
	checkoutRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success     bool   `json:"success"`
		DownloadURL string `json:"downloadUrl"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if !body.Success || body.DownloadURL == "" {
		t.Fatalf("body = %+v", body)
	}
}

func TestConfirmMissingRef(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/checkout/confirm", strings.NewReader(`{"email":"x@y.z"}`))
	checkoutRouter(&mockCheckoutService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}
