package ports

import (
	"context"
	"io"

	"github.com/maxsound/backend/internal/models"
)

type NewTrackInput struct {
	Title  string
	Artist string
	Price  float64
	Audio  io.Reader
	Cover  io.Reader
}

type TrackEvent struct {
	Track models.Track
}

type TrackUploader interface {
	Upload(ctx context.Context, in NewTrackInput) (track *models.Track, shareURL string, err error)
	Events() <-chan TrackEvent
}
