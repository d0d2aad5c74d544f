package ports

import "context"

// PaymentLine describes the single line item of a hosted checkout page.
type PaymentLine struct {
	Name        string
	ImageURL    string
	AmountMinor int64
}

// PaymentStatus is the provider's authoritative view of a payment attempt.
type PaymentStatus struct {
	Paid        bool
	PaymentRef  string // payment intent id; the ledger idempotency key
	AmountMinor int64  // amount actually charged, minor units
	Email       string
	TrackID     string // from provider-side metadata, never from the client
}

type PaymentProvider interface {
	// CreateIntent registers a payment of amountMinor with the provider and
	// returns its reference plus the client secret for an embedded form.
	CreateIntent(ctx context.Context, amountMinor int64, meta map[string]string) (ref string, clientSecret string, err error)

	// CreateCheckoutSession creates a hosted payment page and returns its
	// session id and redirect URL.
	CreateCheckoutSession(ctx context.Context, line PaymentLine, successURL, cancelURL string, meta map[string]string) (id string, url string, err error)

	// RetrievePayment resolves either a checkout session id or a payment
	// intent reference to the provider's current status. Unknown references
	// yield domain.ErrPaymentRefNotFound; communication faults yield a
	// *domain.ProviderError.
	RetrievePayment(ctx context.Context, ref string) (*PaymentStatus, error)
}
