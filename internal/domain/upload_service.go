package domain

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/maxsound/backend/internal/models"
	"github.com/maxsound/backend/internal/ports"
)

type UploadService struct {
	tracks      ports.TrackRepository
	media       ports.MediaHost
	frontendURL string
	events      chan ports.TrackEvent
}

func NewUploadService(tracks ports.TrackRepository, media ports.MediaHost, frontendURL string) *UploadService {
	return &UploadService{
		tracks:      tracks,
		media:       media,
		frontendURL: frontendURL,
		events:      make(chan ports.TrackEvent, 16),
	}
}

func (s *UploadService) Events() <-chan ports.TrackEvent { return s.events }

func (s *UploadService) Upload(ctx context.Context, in ports.NewTrackInput) (*models.Track, string, error) {
	if s.media == nil {
		return nil, "", ErrUploadsDisabled
	}

	trackID := uuid.NewString()

	assets, err := s.media.UploadTrackMedia(ctx, trackID, in.Audio, in.Cover)
	if err != nil {
		return nil, "", err
	}

	track := &models.Track{
		ID:              trackID,
		Title:           in.Title,
		Artist:          in.Artist,
		Price:           in.Price,
		CoverImageURL:   assets.CoverImageURL,
		FullAudioURL:    assets.FullAudioURL,
		PreviewAudioURL: assets.PreviewAudioURL,
	}

	if err := s.tracks.Insert(ctx, track); err != nil {
		return nil, "", err
	}

	// fire-and-forget: a full mailbox must not block the upload response
	select {
	case s.events <- ports.TrackEvent{Track: *track}:
	default:
		log.Printf("[UPLOAD][NOTIFY-SKIP] track=%s reason=event_buffer_full", track.ID)
	}

	log.Printf("[UPLOAD][OK] track=%s title=%q", track.ID, track.Title)

	return track, s.frontendURL + "/track/" + track.ID, nil
}
