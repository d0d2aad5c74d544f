package domain

import (
	"context"

	"github.com/maxsound/backend/internal/ports"
)

type entitlementService struct {
	ledger ports.PurchaseLedger
}

func NewEntitlementService(ledger ports.PurchaseLedger) ports.EntitlementChecker {
	return &entitlementService{ledger: ledger}
}

// IsEntitled reports whether the bearer of paymentRef has paid for trackID.
// An empty reference is never entitled and never reaches the ledger, so it
// cannot accidentally match a row with a null reference.
func (s *entitlementService) IsEntitled(ctx context.Context, trackID, paymentRef string) (bool, error) {
	if trackID == "" || paymentRef == "" {
		return false, nil
	}
	return s.ledger.Exists(ctx, trackID, paymentRef)
}
