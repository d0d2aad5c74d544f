package ports

import (
	"context"

	"github.com/maxsound/backend/internal/models"
)

// Notifier announces a new track to all subscribers. Failures are logged by
// the caller and never block the upload path.
type Notifier interface {
	NotifyNewTrack(ctx context.Context, track *models.Track) error
}

type PushStore interface {
	// SaveSubscription upserts by endpoint, keeping the latest raw payload.
	SaveSubscription(ctx context.Context, endpoint string, data []byte) error
	RemoveSubscription(ctx context.Context, endpoint string) error
	ListSubscriptions(ctx context.Context) ([]models.PushSubscription, error)
}
