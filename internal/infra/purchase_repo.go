package infra

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxsound/backend/internal/ports"
)

type PostgresPurchaseLedger struct {
	pool pgxPool
}

func NewPostgresPurchaseLedger(pool *pgxpool.Pool) ports.PurchaseLedger {
	return &PostgresPurchaseLedger{pool: pool}
}

// RecordIfAbsent relies on the unique index over payment_intent_id instead of
// a check-then-insert: two racing reconciliations of the same payment both
// issue the insert, the loser hits DO NOTHING, and both observe success.
func (r *PostgresPurchaseLedger) RecordIfAbsent(ctx context.Context, trackID, paymentRef string, email *string, amount float64) error {
	query := `
		INSERT INTO purchases (track_id, payment_intent_id, customer_email, amount)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (payment_intent_id) DO NOTHING
	`
	tag, err := r.pool.Exec(ctx, query, trackID, paymentRef, email, amount)
	if err != nil {
		return fmt.Errorf("record purchase: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Printf("[LEDGER][DUP] ref=%s track=%s", paymentRef, trackID)
	}
	return nil
}

func (r *PostgresPurchaseLedger) Exists(ctx context.Context, trackID, paymentRef string) (bool, error) {
	var found bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM purchases WHERE track_id = $1 AND payment_intent_id = $2
		)`,
		trackID, paymentRef,
	).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("check purchase: %w", err)
	}
	return found, nil
}
