package infra

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/maxsound/backend/internal/ports"
)

const previewSeconds = 20

type CloudinaryHost struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryHost(cloudName, apiKey, apiSecret string) (ports.MediaHost, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryHost{cld: cld}, nil
}

func (h *CloudinaryHost) UploadTrackMedia(ctx context.Context, trackID string, audio, cover io.Reader) (*ports.UploadedMedia, error) {
	coverRes, err := h.cld.Upload.Upload(ctx, cover, uploader.UploadParams{
		Folder:       "maxsound/covers",
		PublicID:     "cover_" + trackID,
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("upload cover: %w", err)
	}

	// Cloudinary files audio under the "video" resource type
	audioRes, err := h.cld.Upload.Upload(ctx, audio, uploader.UploadParams{
		Folder:       "maxsound/audio/full",
		PublicID:     "audio_" + trackID,
		ResourceType: "video",
		Format:       "mp3",
	})
	if err != nil {
		return nil, fmt.Errorf("upload audio: %w", err)
	}

	return &ports.UploadedMedia{
		CoverImageURL:   coverRes.SecureURL,
		FullAudioURL:    audioRes.SecureURL,
		PreviewAudioURL: previewURL(audioRes.SecureURL),
	}, nil
}

// previewURL derives the bounded preview clip by injecting a duration
// transformation into the delivery URL; no second asset is stored.
func previewURL(fullURL string) string {
	return strings.Replace(fullURL, "/upload/", fmt.Sprintf("/upload/du_%d/", previewSeconds), 1)
}
