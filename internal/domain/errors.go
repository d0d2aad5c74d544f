package domain

import "errors"

var (
	ErrTrackNotFound      = errors.New("track not found")
	ErrPaymentRefNotFound = errors.New("payment reference not found")
	ErrUploadsDisabled    = errors.New("media host not configured")
)

// ProviderError marks a payment-provider communication fault (network, auth,
// malformed response). It is retryable and distinct from a legitimate
// "payment not completed" outcome, which is not an error at all.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return "payment provider: " + e.Op + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error { return e.Err }
