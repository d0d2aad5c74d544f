package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxsound/backend/internal/models"
	"github.com/maxsound/backend/internal/ports"
)

type PostgresPushStore struct {
	pool pgxPool
}

func NewPostgresPushStore(pool *pgxpool.Pool) ports.PushStore {
	return &PostgresPushStore{pool: pool}
}

func (r *PostgresPushStore) SaveSubscription(ctx context.Context, endpoint string, data []byte) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO push_subscriptions (endpoint, data)
		VALUES ($1, $2)
		ON CONFLICT (endpoint) DO UPDATE SET data = EXCLUDED.data
	`, endpoint, data)
	if err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}
	return nil
}

func (r *PostgresPushStore) RemoveSubscription(ctx context.Context, endpoint string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM push_subscriptions WHERE endpoint = $1`, endpoint)
	if err != nil {
		return fmt.Errorf("remove subscription: %w", err)
	}
	return nil
}

func (r *PostgresPushStore) ListSubscriptions(ctx context.Context) ([]models.PushSubscription, error) {
	rows, err := r.pool.Query(ctx, `SELECT endpoint, data FROM push_subscriptions`)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []models.PushSubscription
	for rows.Next() {
		var s models.PushSubscription
		if err := rows.Scan(&s.Endpoint, &s.Data); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, s)
	}

	return subs, rows.Err()
}
