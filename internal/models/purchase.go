package models

import "time"

// Purchase links a payment provider reference to a track. PaymentIntentID is
// unique in storage and acts as the ledger's idempotency key.
type Purchase struct {
	ID              int       `db:"id" json:"id"`
	TrackID         string    `db:"track_id" json:"track_id"`
	PaymentIntentID string    `db:"payment_intent_id" json:"payment_intent_id"`
	CustomerEmail   *string   `db:"customer_email" json:"customer_email,omitempty"`
	Amount          float64   `db:"amount" json:"amount"`
	PurchasedAt     time.Time `db:"purchased_at" json:"purchased_at"`
}
