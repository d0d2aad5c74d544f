package delivery

import (
	"context"

	"github.com/Vovarama1992/go-utils/logger"
	"go.uber.org/zap"

	"github.com/maxsound/backend/internal/models"
	"github.com/maxsound/backend/internal/ports"
)

func testLogger() *logger.ZapLogger {
	return logger.NewZapLogger(zap.NewNop().Sugar())
}

type mockCheckoutService struct {
	initiateIntentFn  func(ctx context.Context, trackID string) (*ports.IntentCheckout, error)
	initiateSessionFn func(ctx context.Context, trackID string) (string, error)
	reconcileFn       func(ctx context.Context, ref, email string) (*ports.CheckoutResult, error)
}

func (m *mockCheckoutService) InitiateIntent(ctx context.Context, trackID string) (*ports.IntentCheckout, error) {
	return m.initiateIntentFn(ctx, trackID)
}

func (m *mockCheckoutService) InitiateSession(ctx context.Context, trackID string) (string, error) {
	return m.initiateSessionFn(ctx, trackID)
}

func (m *mockCheckoutService) Reconcile(ctx context.Context, ref, email string) (*ports.CheckoutResult, error) {
	return m.reconcileFn(ctx, ref, email)
}

type mockTrackRepo struct {
	insertFn         func(ctx context.Context, track *models.Track) error
	getByIDFn        func(ctx context.Context, id string) (*models.Track, error)
	listFn           func(ctx context.Context) ([]models.Track, error)
	incrementViewsFn func(ctx context.Context, id string) error
	deleteFn         func(ctx context.Context, id string) error

	viewIncrements []string
}

func (m *mockTrackRepo) Insert(ctx context.Context, track *models.Track) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, track)
	}
	return nil
}

func (m *mockTrackRepo) GetByID(ctx context.Context, id string) (*models.Track, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockTrackRepo) List(ctx context.Context) ([]models.Track, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []models.Track{}, nil
}

func (m *mockTrackRepo) IncrementViews(ctx context.Context, id string) error {
	m.viewIncrements = append(m.viewIncrements, id)
	if m.incrementViewsFn != nil {
		return m.incrementViewsFn(ctx, id)
	}
	return nil
}

func (m *mockTrackRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockEntitlement struct {
	isEntitledFn func(ctx context.Context, trackID, paymentRef string) (bool, error)
}

func (m *mockEntitlement) IsEntitled(ctx context.Context, trackID, paymentRef string) (bool, error) {
	return m.isEntitledFn(ctx, trackID, paymentRef)
}
