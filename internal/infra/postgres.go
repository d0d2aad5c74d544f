package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxPool is the slice of pgxpool.Pool the repos actually use; tests swap in
// a pgxmock pool through it.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

func NewPgxPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, dsn)
}

// InitSchema creates the tables on startup. The UNIQUE constraint on
// purchases.payment_intent_id is load-bearing: it is the idempotency key that
// makes concurrent duplicate reconciliations collapse into one row.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tracks (
			id VARCHAR(255) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			artist VARCHAR(255) NOT NULL,
			price DECIMAL(10, 2) NOT NULL,
			cover_image_url TEXT NOT NULL,
			full_audio_url TEXT NOT NULL,
			preview_audio_url TEXT NOT NULL,
			views INTEGER DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS purchases (
			id SERIAL PRIMARY KEY,
			track_id VARCHAR(255) REFERENCES tracks(id),
			payment_intent_id VARCHAR(255) UNIQUE NOT NULL,
			customer_email VARCHAR(255),
			amount DECIMAL(10, 2) NOT NULL,
			purchased_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_intent ON purchases(payment_intent_id)`,
		`CREATE TABLE IF NOT EXISTS push_subscriptions (
			endpoint TEXT PRIMARY KEY,
			data JSONB NOT NULL
		)`,
	}

	for _, q := range stmts {
		if _, err := pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
