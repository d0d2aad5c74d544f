package ports

import "context"

// PurchaseLedger is the append-only record of confirmed purchases.
type PurchaseLedger interface {
	// RecordIfAbsent inserts a purchase row unless one already exists for
	// paymentRef. A duplicate is a successful no-op, not an error, so the
	// call is safe under concurrent duplicate reconciliations.
	RecordIfAbsent(ctx context.Context, trackID, paymentRef string, email *string, amount float64) error

	Exists(ctx context.Context, trackID, paymentRef string) (bool, error)
}
