package domain

import (
	"context"
	"errors"
	"sync"

	"github.com/maxsound/backend/internal/models"
	"github.com/maxsound/backend/internal/ports"
)

type mockTrackRepo struct {
	mu     sync.Mutex
	tracks map[string]models.Track
}

func newMockTrackRepo(tracks ...models.Track) *mockTrackRepo {
	m := &mockTrackRepo{tracks: make(map[string]models.Track)}
	for _, t := range tracks {
		m.tracks[t.ID] = t
	}
	return m
}

func (m *mockTrackRepo) Insert(ctx context.Context, track *models.Track) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tracks[track.ID] = *track
	return nil
}

func (m *mockTrackRepo) GetByID(ctx context.Context, id string) (*models.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tracks[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *mockTrackRepo) List(ctx context.Context) ([]models.Track, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Track{}
	for _, t := range m.tracks {
		out = append(out, t)
	}
	return out, nil
}

func (m *mockTrackRepo) IncrementViews(ctx context.Context, id string) error { return nil }

func (m *mockTrackRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tracks[id]; !ok {
		return ErrTrackNotFound
	}
	delete(m.tracks, id)
	return nil
}

// mockLedger mirrors the storage semantics: one row per payment reference,
// duplicate inserts are silent no-ops.
type mockLedger struct {
	mu   sync.Mutex
	rows map[string]models.Purchase
}

func newMockLedger() *mockLedger {
	return &mockLedger{rows: make(map[string]models.Purchase)}
}

func (m *mockLedger) RecordIfAbsent(ctx context.Context, trackID, paymentRef string, email *string, amount float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[paymentRef]; ok {
		return nil
	}
	m.rows[paymentRef] = models.Purchase{
		TrackID:         trackID,
		PaymentIntentID: paymentRef,
		CustomerEmail:   email,
		Amount:          amount,
	}
	return nil
}

func (m *mockLedger) Exists(ctx context.Context, trackID, paymentRef string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[paymentRef]
	return ok && row.TrackID == trackID, nil
}

func (m *mockLedger) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type mockProvider struct {
	createIntentFn  func(ctx context.Context, amountMinor int64, meta map[string]string) (string, string, error)
	createSessionFn func(ctx context.Context, line ports.PaymentLine, successURL, cancelURL string, meta map[string]string) (string, string, error)
	retrieveFn      func(ctx context.Context, ref string) (*ports.PaymentStatus, error)
}

func (m *mockProvider) CreateIntent(ctx context.Context, amountMinor int64, meta map[string]string) (string, string, error) {
	if m.createIntentFn != nil {
		return m.createIntentFn(ctx, amountMinor, meta)
	}
	return "pi_test", "pi_test_secret", nil
}

func (m *mockProvider) CreateCheckoutSession(ctx context.Context, line ports.PaymentLine, successURL, cancelURL string, meta map[string]string) (string, string, error) {
	if m.createSessionFn != nil {
		return m.createSessionFn(ctx, line, successURL, cancelURL, meta)
	}
	return "cs_test", "https://checkout.example/cs_test", nil
}

func (m *mockProvider) RetrievePayment(ctx context.Context, ref string) (*ports.PaymentStatus, error) {
	if m.retrieveFn != nil {
		return m.retrieveFn(ctx, ref)
	}
	return nil, errors.New("retrieveFn not set")
}
