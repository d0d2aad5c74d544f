package domain

import (
	"context"
	"log"
	"math"

	"github.com/maxsound/backend/internal/ports"
)

type checkoutService struct {
	tracks      ports.TrackRepository
	ledger      ports.PurchaseLedger
	provider    ports.PaymentProvider
	frontendURL string
}

func NewCheckoutService(
	tracks ports.TrackRepository,
	ledger ports.PurchaseLedger,
	provider ports.PaymentProvider,
	frontendURL string,
) ports.CheckoutService {
	return &checkoutService{
		tracks:      tracks,
		ledger:      ledger,
		provider:    provider,
		frontendURL: frontendURL,
	}
}

func amountMinor(price float64) int64 {
	return int64(math.Round(price * 100))
}

func (s *checkoutService) InitiateIntent(ctx context.Context, trackID string) (*ports.IntentCheckout, error) {
	track, err := s.tracks.GetByID(ctx, trackID)
	if err != nil {
		return nil, err
	}
	if track == nil {
		return nil, ErrTrackNotFound
	}

	// the price comes from storage, never from the request
	_, clientSecret, err := s.provider.CreateIntent(ctx, amountMinor(track.Price), map[string]string{
		"trackId":    track.ID,
		"trackTitle": track.Title,
		"artist":     track.Artist,
	})
	if err != nil {
		return nil, err
	}

	return &ports.IntentCheckout{
		ClientSecret: clientSecret,
		Amount:       track.Price,
	}, nil
}

func (s *checkoutService) InitiateSession(ctx context.Context, trackID string) (string, error) {
	track, err := s.tracks.GetByID(ctx, trackID)
	if err != nil {
		return "", err
	}
	if track == nil {
		return "", ErrTrackNotFound
	}

	successURL := s.frontendURL + "/track/" + track.ID + "?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := s.frontendURL + "/track/" + track.ID

	_, url, err := s.provider.CreateCheckoutSession(ctx, ports.PaymentLine{
		Name:        track.Artist + " – " + track.Title,
		ImageURL:    track.CoverImageURL,
		AmountMinor: amountMinor(track.Price),
	}, successURL, cancelURL, map[string]string{
		"trackId": track.ID,
	})
	if err != nil {
		return "", err
	}

	return url, nil
}

// Reconcile is the single confirmation path for both checkout variants. The
// provider is the only authority consulted: status, charged amount and the
// track linkage all come from its answer, so a tampered client payload
// cannot claim a purchase it did not pay for.
func (s *checkoutService) Reconcile(ctx context.Context, ref, email string) (*ports.CheckoutResult, error) {
	if ref == "" {
		return nil, ErrPaymentRefNotFound
	}

	status, err := s.provider.RetrievePayment(ctx, ref)
	if err != nil {
		return nil, err
	}

	if !status.Paid {
		log.Printf("[CHECKOUT][PENDING] ref=%s", ref)
		return &ports.CheckoutResult{}, nil
	}

	track, err := s.tracks.GetByID(ctx, status.TrackID)
	if err != nil {
		return nil, err
	}
	if track == nil {
		return nil, ErrTrackNotFound
	}

	if email == "" {
		email = status.Email
	}
	var emailPtr *string
	if email != "" {
		emailPtr = &email
	}

	if err := s.ledger.RecordIfAbsent(ctx, track.ID, status.PaymentRef, emailPtr, float64(status.AmountMinor)/100); err != nil {
		return nil, err
	}

	log.Printf("[CHECKOUT][OK] ref=%s track=%s", status.PaymentRef, track.ID)

	return &ports.CheckoutResult{
		Success:     true,
		PaymentRef:  status.PaymentRef,
		DownloadURL: track.FullAudioURL,
	}, nil
}
