package ports

import (
	"context"

	"github.com/maxsound/backend/internal/models"
)

type TrackRepository interface {
	Insert(ctx context.Context, track *models.Track) error

	// GetByID returns (nil, nil) when no track exists with the given id.
	GetByID(ctx context.Context, id string) (*models.Track, error)

	// List returns all tracks ordered by creation time, newest first.
	List(ctx context.Context) ([]models.Track, error)

	// IncrementViews bumps the advisory view counter. Lost updates under
	// concurrency are acceptable.
	IncrementViews(ctx context.Context, id string) error

	// Delete removes the track and its purchases in one transaction.
	// Returns domain.ErrTrackNotFound when the track does not exist.
	Delete(ctx context.Context, id string) error
}
