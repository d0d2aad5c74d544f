package ports

import (
	"context"
	"io"
)

type UploadedMedia struct {
	CoverImageURL   string
	FullAudioURL    string
	PreviewAudioURL string // bounded-duration preview clip
}

// MediaHost turns raw audio and cover bytes into durable URLs. Transcoding
// and preview clipping happen entirely on the host side.
type MediaHost interface {
	UploadTrackMedia(ctx context.Context, trackID string, audio, cover io.Reader) (*UploadedMedia, error)
}
