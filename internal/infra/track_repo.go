package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxsound/backend/internal/domain"
	"github.com/maxsound/backend/internal/models"
	"github.com/maxsound/backend/internal/ports"
)

type PostgresTrackRepo struct {
	pool pgxPool
}

func NewPostgresTrackRepo(pool *pgxpool.Pool) ports.TrackRepository {
	return &PostgresTrackRepo{pool: pool}
}

func (r *PostgresTrackRepo) Insert(ctx context.Context, track *models.Track) error {
	query := `
		INSERT INTO tracks (id, title, artist, price, cover_image_url, full_audio_url, preview_audio_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING views, created_at
	`
	row := r.pool.QueryRow(ctx, query,
		track.ID,
		track.Title,
		track.Artist,
		track.Price,
		track.CoverImageURL,
		track.FullAudioURL,
		track.PreviewAudioURL,
	)
	if err := row.Scan(&track.Views, &track.CreatedAt); err != nil {
		return fmt.Errorf("insert track: %w", err)
	}
	return nil
}

func (r *PostgresTrackRepo) GetByID(ctx context.Context, id string) (*models.Track, error) {
	query := `
		SELECT id, title, artist, price, cover_image_url, full_audio_url, preview_audio_url, views, created_at
		FROM tracks
		WHERE id = $1
	`

	var t models.Track

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.Title,
		&t.Artist,
		&t.Price,
		&t.CoverImageURL,
		&t.FullAudioURL,
		&t.PreviewAudioURL,
		&t.Views,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get track by id: %w", err)
	}

	return &t, nil
}

func (r *PostgresTrackRepo) List(ctx context.Context) ([]models.Track, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, artist, price, cover_image_url, full_audio_url, preview_audio_url, views, created_at
		FROM tracks
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}
	defer rows.Close()

	tracks := []models.Track{}
	for rows.Next() {
		var t models.Track
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Artist,
			&t.Price,
			&t.CoverImageURL,
			&t.FullAudioURL,
			&t.PreviewAudioURL,
			&t.Views,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan track: %w", err)
		}
		tracks = append(tracks, t)
	}

	return tracks, rows.Err()
}

func (r *PostgresTrackRepo) IncrementViews(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE tracks SET views = views + 1 WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// Delete removes the purchases first, then the track, in one transaction, so
// no purchase row can ever reference a missing track.
func (r *PostgresTrackRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete track: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM purchases WHERE track_id = $1`, id); err != nil {
		return fmt.Errorf("delete purchases: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM tracks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete track: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTrackNotFound
	}

	return tx.Commit(ctx)
}
