package ports

import "context"

type IntentCheckout struct {
	ClientSecret string
	Amount       float64 // track price in major units
}

// CheckoutResult is the outcome of reconciling a payment reference.
// Success=false means "not paid (yet)", which is a normal state for the
// caller, never an error.
type CheckoutResult struct {
	Success     bool
	PaymentRef  string
	DownloadURL string
}

type CheckoutService interface {
	InitiateIntent(ctx context.Context, trackID string) (*IntentCheckout, error)
	InitiateSession(ctx context.Context, trackID string) (url string, err error)

	// Reconcile verifies the provider-side status of a session or intent
	// reference and records the purchase exactly once. email is an optional
	// client-supplied fallback when the provider reports none.
	Reconcile(ctx context.Context, ref, email string) (*CheckoutResult, error)
}

type EntitlementChecker interface {
	IsEntitled(ctx context.Context, trackID, paymentRef string) (bool, error)
}
