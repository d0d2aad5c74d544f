package infra

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/maxsound/backend/internal/domain"
	"github.com/maxsound/backend/internal/ports"
)

// providerTimeout bounds every Stripe call; an expired call surfaces as a
// *domain.ProviderError, never as a hung request.
const providerTimeout = 15 * time.Second

type StripeProvider struct {
	sc *client.API
}

func NewStripeProvider(secretKey string) ports.PaymentProvider {
	sc := &client.API{}
	sc.Init(secretKey, stripe.NewBackends(&http.Client{Timeout: providerTimeout}))
	return &StripeProvider{sc: sc}
}

func (p *StripeProvider) CreateIntent(ctx context.Context, amountMinor int64, meta map[string]string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	params.Context = ctx
	for k, v := range meta {
		params.AddMetadata(k, v)
	}

	pi, err := p.sc.PaymentIntents.New(params)
	if err != nil {
		return "", "", wrapStripeErr("create intent", err)
	}
	return pi.ID, pi.ClientSecret, nil
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, line ports.PaymentLine, successURL, cancelURL string, meta map[string]string) (string, string, error) {
	product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
		Name: stripe.String(line.Name),
	}
	if line.ImageURL != "" {
		product.Images = stripe.StringSlice([]string{line.ImageURL})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount:  stripe.Int64(line.AmountMinor),
				ProductData: product,
			},
		}},
	}
	params.Context = ctx
	for k, v := range meta {
		params.AddMetadata(k, v)
	}

	s, err := p.sc.CheckoutSessions.New(params)
	if err != nil {
		return "", "", wrapStripeErr("create checkout session", err)
	}
	return s.ID, s.URL, nil
}

// RetrievePayment accepts either kind of reference the two checkout paths
// hand back: "cs_" prefixed checkout session ids, anything else a payment
// intent id. Both collapse into the same PaymentStatus shape.
func (p *StripeProvider) RetrievePayment(ctx context.Context, ref string) (*ports.PaymentStatus, error) {
	if strings.HasPrefix(ref, "cs_") {
		return p.retrieveSession(ctx, ref)
	}
	return p.retrieveIntent(ctx, ref)
}

func (p *StripeProvider) retrieveIntent(ctx context.Context, ref string) (*ports.PaymentStatus, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := p.sc.PaymentIntents.Get(ref, params)
	if err != nil {
		return nil, wrapStripeErr("retrieve intent", err)
	}

	return &ports.PaymentStatus{
		Paid:        pi.Status == stripe.PaymentIntentStatusSucceeded,
		PaymentRef:  pi.ID,
		AmountMinor: pi.Amount,
		Email:       pi.ReceiptEmail,
		TrackID:     pi.Metadata["trackId"],
	}, nil
}

func (p *StripeProvider) retrieveSession(ctx context.Context, ref string) (*ports.PaymentStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := p.sc.CheckoutSessions.Get(ref, params)
	if err != nil {
		return nil, wrapStripeErr("retrieve session", err)
	}

	st := &ports.PaymentStatus{
		Paid:        s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		AmountMinor: s.AmountTotal,
		TrackID:     s.Metadata["trackId"],
	}
	if s.PaymentIntent != nil {
		st.PaymentRef = s.PaymentIntent.ID
	}
	if st.PaymentRef == "" {
		// session never produced an intent; the session id still works as a
		// stable unique reference
		st.PaymentRef = s.ID
	}
	if s.CustomerDetails != nil {
		st.Email = s.CustomerDetails.Email
	}

	return st, nil
}

func wrapStripeErr(op string, err error) error {
	var sErr *stripe.Error
	if errors.As(err, &sErr) && sErr.Code == stripe.ErrorCodeResourceMissing {
		return domain.ErrPaymentRefNotFound
	}
	return &domain.ProviderError{Op: op, Err: err}
}
