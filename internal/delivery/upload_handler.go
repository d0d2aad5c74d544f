package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/maxsound/backend/internal/domain"
	"github.com/maxsound/backend/internal/ports"
)

const maxUploadSize = 50 << 20 // 50MB, matches the media host limit

type UploadHandler struct {
	uploads ports.TrackUploader
	log     *logger.ZapLogger
}

func NewUploadHandler(uploads ports.TrackUploader, log *logger.ZapLogger) *UploadHandler {
	return &UploadHandler{
		uploads: uploads,
		log:     log,
	}
}

// POST /api/uploads (multipart: title, artist, price, audio, cover)
func (h *UploadHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	title := r.FormValue("title")
	artist := r.FormValue("artist")
	priceStr := r.FormValue("price")

	audio, _, audioErr := r.FormFile("audio")
	if audioErr == nil {
		defer audio.Close()
	}
	cover, _, coverErr := r.FormFile("cover")
	if coverErr == nil {
		defer cover.Close()
	}

	if title == "" || artist == "" || priceStr == "" || audioErr != nil || coverErr != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		writeError(w, http.StatusBadRequest, "Invalid price")
		return
	}

	track, shareURL, err := h.uploads.Upload(r.Context(), ports.NewTrackInput{
		Title:  title,
		Artist: artist,
		Price:  price,
		Audio:  audio,
		Cover:  cover,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUploadsDisabled) {
			h.log.Log(logger.LogEntry{Level: "error", Message: "upload rejected: media host not configured"})
			writeError(w, http.StatusInternalServerError, "Uploads are not configured")
			return
		}
		h.log.Log(logger.LogEntry{Level: "error", Message: "upload failed", Error: err})
		writeError(w, http.StatusInternalServerError, "Failed to upload track")
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "track uploaded",
		Fields:  map[string]any{"trackID": track.ID, "title": track.Title},
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"trackId":  track.ID,
		"shareUrl": shareURL,
	})
}
